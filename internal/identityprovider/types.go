package identityprovider

// CreateUserRequest: тело запроса на создание пользователя Identity.
type CreateUserRequest struct {
	Email        string       `json:"email"`
	Password     string       `json:"password"`
	UserMetadata UserMetadata `json:"user_metadata"`
	EmailConfirm bool         `json:"email_confirm"`
}

// UserMetadata: произвольные данные пользователя у провайдера.
type UserMetadata struct {
	FullName string `json:"full_name"`
}

// User: ответ провайдера на создание пользователя.
type User struct {
	ID    string `json:"id"`    // Ключ личности, становится netlify_id профиля
	Email string `json:"email"` // Почта, под которой пользователь создан
}
