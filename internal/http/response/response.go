// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов функций профиля. Пакет также сопоставляет
// ошибки сервисов с HTTP‑статусами в одном месте.
package response

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/profile-functions/internal/models"
)

// Response описывает стандартную структуру JSON‑ответа сервера.
// Поле Status: статус запроса ("OK" или "Error").
// Поле Error: текст ошибки (опционально, при неуспехе).
// Поле Data: данные ответа (опционально, при успехе).
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// ErrorResponse: тело ответа с ошибкой.
// Details не содержит строк подключения и токенов.
type ErrorResponse struct {
	Status      string `json:"status" example:"Error"`
	Error       string `json:"error" example:"Bad request: Invalid JSON."`
	Details     any    `json:"details,omitempty"`
	Code        string `json:"code,omitempty" example:"partial_signup_failure"`
	IdentityKey string `json:"identity_key,omitempty"`
}

// ProfileData: данные успешного ответа с профилем.
type ProfileData struct {
	Message string              `json:"message" example:"User data processed successfully."`
	Profile *models.UserProfile `json:"profile"`
}

// MessageData: данные успешного ответа с текстовым сообщением.
type MessageData struct {
	Message      string `json:"message"`
	DeploysFound *int   `json:"deploys_found,omitempty"`
}

const (
	// StatusOK: значение статуса для успешного ответа.
	StatusOK = "OK"
	// StatusError: значение статуса для ответа с ошибкой.
	StatusError = "Error"

	// CodePartialSignupFailure: пользователь создан у провайдера, профиль не сохранён.
	CodePartialSignupFailure = "partial_signup_failure"
)

// StatusOKWithData возвращает успешный Response с переданными данными.
func StatusOKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error возвращает ErrorResponse с переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Error:  msg,
	}
}

// ValidationError формирует ответ на основе ошибок валидации.
// Каждое нарушение формируется в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email address", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Error(strings.Join(errsMsgs, ", "))
}

// FromError сопоставляет ошибку сервиса со статусом и телом ответа.
func FromError(err error) (int, ErrorResponse) {
	var (
		vErr      *models.ValidationError
		vErrs     validator.ValidationErrors
		cfgErr    *models.ConfigError
		pErr      *models.IdentityProviderError
		signupErr *models.PartialSignupError
	)

	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest, Error(vErr.Message)
	case errors.As(err, &vErrs):
		return http.StatusBadRequest, ValidationError(vErrs)
	case errors.Is(err, models.ErrUnauthenticated):
		return http.StatusUnauthorized, Error("Unauthorized: You must be logged in.")
	case errors.Is(err, models.ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed, Error("Method Not Allowed")
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, Error("User profile not found.")
	case errors.As(err, &signupErr):
		resp := Error("User account created, but profile data could not be saved.")
		resp.Code = CodePartialSignupFailure
		resp.IdentityKey = signupErr.IdentityKey
		return http.StatusInternalServerError, resp
	case errors.As(err, &pErr):
		status := pErr.StatusCode
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		resp := Error("The identity provider rejected the request.")
		resp.Details = providerDetails(pErr.Details)
		return status, resp
	case errors.As(err, &cfgErr):
		resp := Error("Server configuration error.")
		resp.Details = "missing: " + strings.Join(cfgErr.Missing, ", ")
		return http.StatusInternalServerError, resp
	case errors.Is(err, models.ErrStoreWriteFailed):
		resp := Error("Failed to process user data.")
		resp.Details = "failed to save user profile"
		return http.StatusInternalServerError, resp
	case errors.Is(err, models.ErrReconciliationRace):
		resp := Error("Failed to process user data.")
		resp.Details = "user profile changed concurrently, please retry"
		return http.StatusInternalServerError, resp
	default:
		resp := Error("Internal Server Error")
		resp.Details = "an unexpected server error occurred"
		return http.StatusInternalServerError, resp
	}
}

// providerDetails возвращает тело ответа провайдера как JSON, если это возможно.
func providerDetails(details string) any {
	if details == "" {
		return nil
	}
	if trimmed := strings.TrimSpace(details); strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return rawJSON(trimmed)
	}
	return details
}
