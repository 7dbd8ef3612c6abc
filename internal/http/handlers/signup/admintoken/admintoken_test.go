package admintoken

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/profile-functions/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) CheckAdminToken(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func TestAdminTokenHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		n              int
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "токен принят",
			n:              0,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","data":{"message":"The admin access token is valid.","deploys_found":0}}`,
		},
		{
			name:           "токен отклонён",
			err:            &models.IdentityProviderError{StatusCode: http.StatusUnauthorized, Details: "Access Denied"},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"The identity provider rejected the request.","details":"Access Denied"}`,
		},
		{
			name:           "нет настроек",
			err:            &models.ConfigError{Missing: []string{"NETLIFY_ADMIN_ACCESS_TOKEN", "SITE_ID"}},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"Server configuration error.","details":"missing: NETLIFY_ADMIN_ACCESS_TOKEN, SITE_ID"}`,
		},
		{
			name:           "ошибка сети",
			err:            errors.New("dial tcp: i/o timeout"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"Internal Server Error","details":"an unexpected server error occurred"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			mockService.On("CheckAdminToken", mock.Anything).Return(tt.n, tt.err).Once()

			w := httptest.NewRecorder()
			New(logger, mockService).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/.netlify/functions/test-admin-token", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}
