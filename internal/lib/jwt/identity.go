// Package jwt разбирает токены личности, которые платформа передаёт вместе с запросом.
//
// Claims содержит стандартные поля JWT и почту пользователя; Subject: ключ профиля.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/magabrotheeeer/profile-functions/internal/models"
)

// Claims описывает данные пользователя в токене личности.
type Claims struct {
	Email                string `json:"email"` // Почта пользователя
	jwt.RegisteredClaims        // sub, exp, iat и прочие стандартные поля
}

// Parser проверяет подпись токена и извлекает из него личность.
type Parser struct {
	secretKey []byte
	tokenTTL  time.Duration
}

// NewParser создаёт Parser с секретом HS256. ttl используется только при выпуске токенов.
func NewParser(secretKey string, ttl time.Duration) *Parser {
	return &Parser{
		secretKey: []byte(secretKey),
		tokenTTL:  ttl,
	}
}

// ParseIdentity проверяет токен и возвращает личность пользователя.
func (p *Parser) ParseIdentity(tokenStr string) (*models.Identity, error) {
	const op = "jwt.ParseIdentity"
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(_ *jwt.Token) (any, error) {
		return p.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%s: %w", op, errors.New("token has no subject"))
	}
	return &models.Identity{ID: claims.Subject, Email: claims.Email}, nil
}

// GenerateToken выпускает токен личности. Нужен для локальной отладки и тестов.
func (p *Parser) GenerateToken(identity models.Identity) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secretKey)
}
