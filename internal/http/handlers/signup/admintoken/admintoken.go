// Package admintoken реализует диагностическую функцию test-admin-token.
package admintoken

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/profile-functions/internal/http/response"
	"github.com/magabrotheeeer/profile-functions/internal/lib/sl"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

// Service проверяет токен администратора провайдера.
type Service interface {
	CheckAdminToken(ctx context.Context) (int, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Проверить токен администратора
// @Description Выполняет запрос чтения к API провайдера с настроенным токеном.
// @Tags Diagnostics
// @Produce  json
// @Success 200 {object} response.Response{data=response.MessageData} "Токен принят"
// @Failure 401 {object} response.ErrorResponse "Токен отклонён провайдером"
// @Failure 500 {object} response.ErrorResponse "Не заданы настройки или ошибка сети"
// @Router /.netlify/functions/test-admin-token [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.signup.admintoken"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	n, err := h.service.CheckAdminToken(r.Context())
	if err != nil {
		log.Error("admin token check failed", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response.StatusOKWithData(response.MessageData{
		Message:      "The admin access token is valid.",
		DeploysFound: &n,
	}))
}
