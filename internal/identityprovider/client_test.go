package identityprovider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/profile-functions/internal/models"
)

func TestClient_CreateUser(t *testing.T) {
	userID := uuid.NewString()

	tests := []struct {
		name       string
		status     int
		response   string
		wantStatus int
		wantErr    bool
	}{
		{
			name:     "успешное создание",
			status:   http.StatusCreated,
			response: `{"id":"` + userID + `","email":"alice@example.com"}`,
		},
		{
			name:       "почта уже занята",
			status:     http.StatusUnprocessableEntity,
			response:   `{"msg":"A user with this email address has already been registered"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantErr:    true,
		},
		{
			name:       "токен отклонён",
			status:     http.StatusUnauthorized,
			response:   `{"code":401,"message":"Access Denied"}`,
			wantStatus: http.StatusUnauthorized,
			wantErr:    true,
		},
		{
			name:     "ответ без id",
			status:   http.StatusOK,
			response: `{"email":"alice@example.com"}`,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/api/v1/sites/site-1/users", r.URL.Path)
				assert.Equal(t, "Bearer admin-token", r.Header.Get("Authorization"))

				var body CreateUserRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, "alice@example.com", body.Email)
				assert.Equal(t, "Alice Liddell", body.UserMetadata.FullName)
				assert.True(t, body.EmailConfirm)

				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.response))
			}))
			defer server.Close()

			client := NewClient(server.URL+"/api/v1/", "site-1", "  admin-token\n", time.Second)
			user, err := client.CreateUser(context.Background(), CreateUserRequest{
				Email:        "alice@example.com",
				Password:     "secret",
				UserMetadata: UserMetadata{FullName: "Alice Liddell"},
				EmailConfirm: true,
			})

			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, userID, user.ID)
				return
			}
			require.Error(t, err)
			if tt.wantStatus != 0 {
				var pErr *models.IdentityProviderError
				require.True(t, errors.As(err, &pErr))
				assert.Equal(t, tt.wantStatus, pErr.StatusCode)
				assert.Contains(t, pErr.Details, tt.response[1:10])
			}
		})
	}
}

func TestClient_CreateUserTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(url, "site-1", "token", time.Second)
	_, err := client.CreateUser(context.Background(), CreateUserRequest{Email: "a@b.c"})
	require.Error(t, err)

	var pErr *models.IdentityProviderError
	assert.False(t, errors.As(err, &pErr))
}

func TestClient_ListDeploys(t *testing.T) {
	t.Run("токен принят", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/sites/site-1/deploys", r.URL.Path)
			_, _ = w.Write([]byte(`[{"id":"d1"},{"id":"d2"},{"id":"d3"}]`))
		}))
		defer server.Close()

		n, err := NewClient(server.URL, "site-1", "token", time.Second).ListDeploys(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("токен отклонён", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"code":401,"message":"Access Denied"}`))
		}))
		defer server.Close()

		_, err := NewClient(server.URL, "site-1", "token", time.Second).ListDeploys(context.Background())
		var pErr *models.IdentityProviderError
		require.True(t, errors.As(err, &pErr))
		assert.Equal(t, http.StatusUnauthorized, pErr.StatusCode)
	})
}
