// Package read реализует функцию get-user-data: чтение профиля текущего пользователя.
//
// Личность берётся только из контекста запроса; ключ профиля из запроса не принимается.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/profile-functions/internal/http/middlewarectx"
	"github.com/magabrotheeeer/profile-functions/internal/http/response"
	"github.com/magabrotheeeer/profile-functions/internal/lib/sl"
	"github.com/magabrotheeeer/profile-functions/internal/models"
)

// Handler обрабатывает запросы get-user-data.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис чтения профиля
}

// Service описывает чтение профиля по ключу личности.
type Service interface {
	Read(ctx context.Context, netlifyID string) (*models.UserProfile, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить профиль
// @Description Возвращает профиль текущего пользователя по его личности.
// @Tags Profile
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=models.UserProfile} "Профиль пользователя"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Профиль не найден"
// @Failure 405 {object} response.ErrorResponse "Метод не поддерживается"
// @Failure 500 {object} response.ErrorResponse "Ошибка хранилища"
// @Router /.netlify/functions/get-user-data [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if r.Method != http.MethodGet {
		log.Info("method not allowed", slog.String("method", r.Method))
		h.fail(w, r, models.ErrMethodNotAllowed)
		return
	}

	identity, ok := middlewarectx.IdentityFromContext(r.Context())
	if !ok {
		log.Info("request without identity")
		h.fail(w, r, models.ErrUnauthenticated)
		return
	}
	log = log.With(slog.String("netlify_id", identity.ID))

	profile, err := h.service.Read(r.Context(), identity.ID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Info("user profile not found")
		} else {
			log.Error("failed to read user profile", sl.Err(err))
		}
		h.fail(w, r, err)
		return
	}

	log.Info("user profile fetched")
	render.Status(r, http.StatusOK)
	render.JSON(w, r, response.StatusOKWithData(profile))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, body := response.FromError(err)
	if status == http.StatusInternalServerError && body.Details != nil {
		body.Error = "Failed to fetch user profile."
	}
	render.Status(r, status)
	render.JSON(w, r, body)
}
