package profile

import (
	"encoding/json"
	"strings"

	"github.com/magabrotheeeer/profile-functions/internal/models"
)

// DecodeFields разбирает тело запроса set-user-data.
// Тело должно быть JSON-объектом; неизвестные ключи игнорируются,
// в том числе email и netlify_id: они берутся только из личности.
func DecodeFields(body []byte) (models.ProfileFields, error) {
	var fields models.ProfileFields

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return fields, models.NewValidationError("", "Bad request: Invalid JSON.")
	}

	if v, ok := raw["username"]; ok {
		if err := json.Unmarshal(v, &fields.Username); err != nil {
			return fields, models.NewValidationError("username", "username must be a non-empty string")
		}
	}
	if v, ok := raw["phone"]; ok {
		if err := json.Unmarshal(v, &fields.Phone); err != nil {
			return fields, models.NewValidationError("phone", "phone must be a string or null")
		}
	}
	if v, ok := raw["subscription_plan"]; ok {
		if err := json.Unmarshal(v, &fields.SubscriptionPlan); err != nil {
			return fields, models.NewValidationError("subscription_plan", "subscription_plan must be a string or null")
		}
	}

	return fields, ValidateFields(fields)
}

// ValidateFields проверяет ограничения, не зависящие от наличия профиля.
func ValidateFields(fields models.ProfileFields) error {
	if fields.Username.IsSet() {
		username, ok := fields.Username.Get()
		if !ok || strings.TrimSpace(username) == "" {
			return models.NewValidationError("username", "username must be a non-empty string")
		}
	}
	return nil
}
