package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnauthenticated: к запросу не приложена проверенная личность.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrMethodNotAllowed: HTTP-метод не соответствует функции.
	ErrMethodNotAllowed = errors.New("method not allowed")
	// ErrNotFound: профиль не найден (хранилище вернуло ноль строк).
	ErrNotFound = errors.New("user profile not found")
	// ErrAlreadyExists: конфликт уникальности по netlify_id при вставке.
	ErrAlreadyExists = errors.New("user profile already exists")
	// ErrReconciliationRace: строка исчезла или появилась между проверкой и записью.
	ErrReconciliationRace = errors.New("reconciliation race")
	// ErrStoreWriteFailed: хранилище вернуло ошибку при записи.
	ErrStoreWriteFailed = errors.New("store write failed")
)

// ValidationError: некорректный запрос с сообщением по конкретному полю.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("field %s: %s", e.Field, e.Message)
}

// NewValidationError создаёт ошибку валидации поля.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

// IdentityProviderError: провайдер личностей отклонил запрос.
// StatusCode: HTTP-статус ответа провайдера, Details: тело ответа.
type IdentityProviderError struct {
	StatusCode int
	Details    string
}

func (e *IdentityProviderError) Error() string {
	return fmt.Sprintf("identity provider responded with status %d", e.StatusCode)
}

// PartialSignupError: пользователь создан у провайдера, но профиль не сохранён.
// IdentityKey нужен для ручной сверки.
type PartialSignupError struct {
	IdentityKey string
	Err         error
}

func (e *PartialSignupError) Error() string {
	return fmt.Sprintf("identity %s created but profile insert failed: %v", e.IdentityKey, e.Err)
}

func (e *PartialSignupError) Unwrap() error { return e.Err }

// ConfigError: не заданы настройки, без которых операция невозможна.
// Missing содержит только имена переменных, без значений.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return "missing required configuration: " + strings.Join(e.Missing, ", ")
}
