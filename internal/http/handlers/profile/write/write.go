// Package write реализует функцию set-user-data: создание или частичное обновление
// профиля текущего пользователя.
//
// В теле принимаются username, phone и subscription_plan. Поле, которого нет в теле,
// не меняется; null или пустая строка очищают phone и subscription_plan.
// Ключ и почта всегда берутся из личности, а не из тела.
package write

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/profile-functions/internal/http/middlewarectx"
	"github.com/magabrotheeeer/profile-functions/internal/http/response"
	"github.com/magabrotheeeer/profile-functions/internal/lib/sl"
	"github.com/magabrotheeeer/profile-functions/internal/models"
	"github.com/magabrotheeeer/profile-functions/internal/services/profile"
)

// maxBodySize: предел размера тела запроса.
const maxBodySize = 1 << 20

// Handler обрабатывает запросы set-user-data.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает сверку профиля.
type Service interface {
	Reconcile(ctx context.Context, identity models.Identity, fields models.ProfileFields) (*models.UserProfile, bool, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сохранить профиль
// @Description Создаёт профиль при первом обращении или обновляет переданные поля существующего.
// @Description При создании обязательны username и subscription_plan.
// @Tags Profile
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.ProfileFields true "Поля профиля"
// @Success 200 {object} response.Response{data=response.ProfileData} "Профиль сохранён"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или поле"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 405 {object} response.ErrorResponse "Метод не поддерживается"
// @Failure 500 {object} response.ErrorResponse "Ошибка хранилища"
// @Router /.netlify/functions/set-user-data [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.write"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if r.Method != http.MethodPost {
		log.Info("method not allowed", slog.String("method", r.Method))
		fail(w, r, models.ErrMethodNotAllowed)
		return
	}

	identity, ok := middlewarectx.IdentityFromContext(r.Context())
	if !ok {
		log.Info("request without identity")
		fail(w, r, models.ErrUnauthenticated)
		return
	}
	log = log.With(slog.String("netlify_id", identity.ID))

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		log.Error("failed to read request body", sl.Err(err))
		fail(w, r, models.NewValidationError("", "Bad request: Invalid JSON."))
		return
	}

	fields, err := profile.DecodeFields(body)
	if err != nil {
		log.Info("request rejected", sl.Err(err))
		fail(w, r, err)
		return
	}

	p, created, err := h.service.Reconcile(r.Context(), identity, fields)
	if err != nil {
		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			log.Info("request rejected", sl.Err(err))
		} else {
			log.Error("failed to process user data", sl.Err(err))
		}
		fail(w, r, err)
		return
	}

	log.Info("user data processed", slog.Bool("created", created))
	render.Status(r, http.StatusOK)
	render.JSON(w, r, response.StatusOKWithData(response.ProfileData{
		Message: "User data processed successfully.",
		Profile: p,
	}))
}

func fail(w http.ResponseWriter, r *http.Request, err error) {
	status, body := response.FromError(err)
	render.Status(r, status)
	render.JSON(w, r, body)
}
