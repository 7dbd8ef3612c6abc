// Package submission реализует функцию submission-created: обработку отправленной формы.
//
// Для формы регистрации создаётся пользователь у провайдера личностей и его профиль,
// остальные формы пропускаются.
package submission

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/profile-functions/internal/http/response"
	"github.com/magabrotheeeer/profile-functions/internal/lib/sl"
	"github.com/magabrotheeeer/profile-functions/internal/models"
)

// maxBodySize: предел размера события формы.
const maxBodySize = 1 << 20

// Handler обрабатывает события отправки форм.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис регистрации
}

// Service описывает обработку события формы.
type Service interface {
	HandleSubmission(ctx context.Context, event models.SubmissionEvent) (*models.SignupResult, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Обработать отправку формы
// @Description Для формы unified-signup создаёт пользователя у провайдера и его профиль.
// @Description Другие формы пропускаются с ответом 200.
// @Tags Signup
// @Accept  json
// @Produce  json
// @Param request body models.SubmissionEvent true "Событие отправки формы"
// @Success 200 {object} response.Response{data=response.ProfileData} "Регистрация завершена или форма пропущена"
// @Failure 400 {object} response.ErrorResponse "Некорректное тело или поля формы"
// @Failure 422 {object} response.ErrorResponse "Провайдер отклонил пользователя"
// @Failure 500 {object} response.ErrorResponse "Пользователь создан, профиль не сохранён, или ошибка сервера"
// @Router /.netlify/functions/submission-created [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.signup.submission"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var event models.SubmissionEvent
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&event); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Bad request: Invalid JSON."))
		return
	}

	res, err := h.service.HandleSubmission(r.Context(), event)
	if err != nil {
		log.Error("failed to process form submission", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	if res.Ignored {
		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.StatusOKWithData(response.MessageData{
			Message: "Ignoring submission for " + res.FormName + ".",
		}))
		return
	}

	log.Info("signup processed", slog.String("netlify_id", res.Profile.NetlifyID))
	render.Status(r, http.StatusOK)
	render.JSON(w, r, response.StatusOKWithData(response.ProfileData{
		Message: "User processing complete.",
		Profile: res.Profile,
	}))
}
