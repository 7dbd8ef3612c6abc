package models

// Identity: проверенная личность пользователя, которую платформа
// прикладывает к запросу. Клиент не может передать её в теле запроса.
type Identity struct {
	ID    string // sub из токена, ключ профиля
	Email string // почта из токена
}
