// Package middlewarectx содержит HTTP middleware функций профиля.
//
// IdentityMiddleware разбирает токен личности из заголовка Authorization
// и кладёт личность в контекст запроса. Запрос без токена или с
// непроверенным токеном не отклоняется: решение принимает обработчик,
// чтобы проверка метода выполнялась раньше проверки личности.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/profile-functions/internal/lib/sl"
	"github.com/magabrotheeeer/profile-functions/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// Identity: ключ личности пользователя в контексте.
const Identity Key = "identity"

// Parser описывает проверку токена личности.
type Parser interface {
	ParseIdentity(token string) (*models.Identity, error)
}

// IdentityMiddleware возвращает middleware, который добавляет личность в контекст.
func IdentityMiddleware(parser Parser, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.IdentityMiddleware"

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}
			tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

			identity, err := parser.ParseIdentity(tokenStr)
			if err != nil {
				log.Warn("identity token rejected",
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					sl.Err(err),
				)
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), *identity)))
		})
	}
}

// WithIdentity возвращает контекст с личностью пользователя.
func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, Identity, identity)
}

// IdentityFromContext возвращает личность из контекста.
// ok=false, если личности нет или у неё пустой ключ.
func IdentityFromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(Identity).(models.Identity)
	if !ok || identity.ID == "" {
		return models.Identity{}, false
	}
	return identity, true
}
