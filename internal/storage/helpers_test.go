package storage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/magabrotheeeer/profile-functions/internal/migrations"
	"github.com/magabrotheeeer/profile-functions/internal/models"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateProfile создает тестовый профиль и возвращает его ключ
func (f *TestDataFactory) CreateProfile(t *testing.T, username string, phone, plan *string) string {
	t.Helper()
	id := uuid.NewString()
	now := time.Now().UTC().Truncate(time.Microsecond)
	_, err := f.storage.InsertProfile(context.Background(), models.UserProfile{
		NetlifyID:        id,
		Email:            username + "@example.com",
		Username:         username,
		Phone:            phone,
		SubscriptionPlan: plan,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	require.NoError(t, err)
	return id
}

// CountProfiles возвращает число строк с данным ключом
func (f *TestDataFactory) CountProfiles(t *testing.T, netlifyID string) int {
	t.Helper()
	var count int
	err := f.storage.Pool.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM user_profiles WHERE netlify_id = $1", netlifyID).Scan(&count)
	require.NoError(t, err)
	return count
}

func strPtr(s string) *string { return &s }

// setupTestDatabase создает тестовую БД с контейнером PostgreSQL и применяет миграции
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test requires docker")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		postgres.BasicWaitStrategies(),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	storage, err := New(ctx, connStr)
	require.NoError(t, err, "failed to create storage")

	require.NoError(t, migrations.Run(storage.DB()), "failed to apply migrations")

	cleanup := func() {
		storage.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}
	return storage, cleanup
}
