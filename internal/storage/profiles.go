package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/profile-functions/internal/lib/optional"
	"github.com/magabrotheeeer/profile-functions/internal/models"
)

const profileColumns = `netlify_id, email, name, username, phone, subscription_plan, created_at, updated_at`

// ProfileExists проверяет наличие профиля. Ноль строк: это false без ошибки.
func (s *Storage) ProfileExists(ctx context.Context, netlifyID string) (bool, error) {
	const op = "storage.ProfileExists"

	var found string
	err := s.Pool.QueryRow(ctx,
		`SELECT netlify_id FROM user_profiles WHERE netlify_id = $1 LIMIT 1`, netlifyID).Scan(&found)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

// GetProfile возвращает профиль по ключу или models.ErrNotFound.
func (s *Storage) GetProfile(ctx context.Context, netlifyID string) (*models.UserProfile, error) {
	const op = "storage.GetProfile"

	row := s.Pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM user_profiles WHERE netlify_id = $1`, netlifyID)
	p, err := scanProfile(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// InsertProfile вставляет новую строку. Конфликт по netlify_id: models.ErrAlreadyExists.
func (s *Storage) InsertProfile(ctx context.Context, p models.UserProfile) (*models.UserProfile, error) {
	const op = "storage.InsertProfile"

	row := s.Pool.QueryRow(ctx, `
		INSERT INTO user_profiles (netlify_id, email, name, username, phone,
		    subscription_plan, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+profileColumns,
		p.NetlifyID, p.Email, p.Name, p.Username, p.Phone, p.SubscriptionPlan, p.CreatedAt, p.UpdatedAt)
	inserted, err := scanProfile(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, fmt.Errorf("%s: %w", op, models.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return inserted, nil
}

// UpdateProfile применяет delta одним UPDATE по ключу.
// Если строка не найдена, возвращается models.ErrNotFound.
func (s *Storage) UpdateProfile(ctx context.Context, netlifyID string, delta models.ProfileDelta) (*models.UserProfile, error) {
	const op = "storage.UpdateProfile"

	query, args := buildUpdate(netlifyID, delta)
	updated, err := scanProfile(s.Pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

func buildUpdate(netlifyID string, delta models.ProfileDelta) (string, []any) {
	args := []any{delta.Email, delta.UpdatedAt}
	set := []string{"email = $1", "updated_at = $2"}

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if delta.Username != nil {
		add("username", *delta.Username)
	}
	if delta.Phone.IsSet() {
		add("phone", nullable(delta.Phone))
	}
	if delta.SubscriptionPlan.IsSet() {
		add("subscription_plan", nullable(delta.SubscriptionPlan))
	}

	args = append(args, netlifyID)
	query := fmt.Sprintf(`UPDATE user_profiles SET %s WHERE netlify_id = $%d RETURNING %s`,
		strings.Join(set, ", "), len(args), profileColumns)
	return query, args
}

// nullable превращает Null в SQL NULL.
func nullable(f optional.Field[string]) *string {
	if v, ok := f.Get(); ok {
		return &v
	}
	return nil
}

func scanProfile(row pgx.Row) (*models.UserProfile, error) {
	var p models.UserProfile
	if err := row.Scan(&p.NetlifyID, &p.Email, &p.Name, &p.Username, &p.Phone,
		&p.SubscriptionPlan, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
