package read

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/profile-functions/internal/http/middlewarectx"
	"github.com/magabrotheeeer/profile-functions/internal/models"
)

// MockService реализует интерфейс read.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Read(ctx context.Context, netlifyID string) (*models.UserProfile, error) {
	args := m.Called(ctx, netlifyID)
	if res := args.Get(0); res != nil {
		return res.(*models.UserProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestReadHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	identity := models.Identity{ID: "user-1", Email: "alice@example.com"}
	phone := "+1 555 0100"

	tests := []struct {
		name           string
		method         string
		identity       *models.Identity
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "успешное чтение профиля",
			method:   http.MethodGet,
			identity: &identity,
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, "user-1").Return(&models.UserProfile{
					NetlifyID: "user-1",
					Email:     "alice@example.com",
					Username:  "alice",
					Phone:     &phone,
				}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"username":"alice","phone":"+1 555 0100","subscription_plan":null`,
		},
		{
			name:           "неверный метод проверяется раньше личности",
			method:         http.MethodPost,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusMethodNotAllowed,
			expectedBody:   `{"status":"Error","error":"Method Not Allowed"}`,
		},
		{
			name:           "нет личности",
			method:         http.MethodGet,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"Unauthorized: You must be logged in."}`,
		},
		{
			name:     "профиль не найден",
			method:   http.MethodGet,
			identity: &identity,
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, "user-1").
					Return(nil, fmt.Errorf("services.profile.Read: %w", models.ErrNotFound)).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"User profile not found."}`,
		},
		{
			name:     "ошибка хранилища",
			method:   http.MethodGet,
			identity: &identity,
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, "user-1").Return(nil, errors.New("db error")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"Failed to fetch user profile."`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(tt.method, "/.netlify/functions/get-user-data", nil)
			if tt.identity != nil {
				req = req.WithContext(middlewarectx.WithIdentity(req.Context(), *tt.identity))
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
