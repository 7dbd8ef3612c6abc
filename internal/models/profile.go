// Package models содержит доменные структуры профиля пользователя,
// входные данные запросов и таксономию ошибок сервиса.
package models

import (
	"time"

	"github.com/magabrotheeeer/profile-functions/internal/lib/optional"
)

// UserProfile: строка таблицы user_profiles, одна на каждого пользователя Identity.
type UserProfile struct {
	NetlifyID        string    `json:"netlify_id"`        // Идентификатор пользователя у провайдера, первичный ключ
	Email            string    `json:"email"`             // Почта из проверенного токена
	Name             *string   `json:"name"`              // Полное имя, заполняется при регистрации через форму
	Username         string    `json:"username"`          // Имя пользователя
	Phone            *string   `json:"phone"`             // Телефон, может отсутствовать
	SubscriptionPlan *string   `json:"subscription_plan"` // Тарифный план
	CreatedAt        time.Time `json:"created_at"`        // Время создания, не меняется
	UpdatedAt        time.Time `json:"updated_at"`        // Время последней записи
}

// ProfileFields: частичный набор полей из тела запроса set-user-data.
// Для каждого поля различаются три состояния: не передано, null, значение.
type ProfileFields struct {
	Username         optional.Field[string] `json:"username"`
	Phone            optional.Field[string] `json:"phone"`
	SubscriptionPlan optional.Field[string] `json:"subscription_plan"`
}

// ProfileDelta: набор изменений для UPDATE существующего профиля.
// Email и UpdatedAt пишутся всегда, остальные поля: только если заданы.
type ProfileDelta struct {
	Email            string
	UpdatedAt        time.Time
	Username         *string                // nil: не менять
	Phone            optional.Field[string] // Absent: не менять, Null: очистить
	SubscriptionPlan optional.Field[string] // Absent: не менять, Null: очистить
}
