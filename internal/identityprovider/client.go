// Package identityprovider: клиент административного API провайдера личностей.
package identityprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/magabrotheeeer/profile-functions/internal/models"
)

// maxErrorBody ограничивает размер тела ответа, сохраняемого в ошибке.
const maxErrorBody = 4 << 10

type Client struct {
	apiURL     string
	siteID     string
	token      string
	httpClient *http.Client
}

// NewClient создаёт клиент. Токен администратора обрезается от пробелов.
func NewClient(apiURL, siteID, adminToken string, timeout time.Duration) *Client {
	return &Client{
		apiURL:     strings.TrimRight(apiURL, "/"),
		siteID:     siteID,
		token:      strings.TrimSpace(adminToken),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	url := c.apiURL + "/sites/" + c.siteID + path
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, url, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// CreateUser создаёт подтверждённого пользователя.
// Ответ не 2xx возвращается как *models.IdentityProviderError.
func (c *Client) CreateUser(ctx context.Context, reqParams CreateUserRequest) (*User, error) {
	const op = "identityprovider.CreateUser"
	req, err := c.newRequest(ctx, http.MethodPost, "/users", reqParams)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", op, err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("%s: response has no user id", op)
	}
	return &user, nil
}

// ListDeploys выполняет безопасный запрос чтения и возвращает число деплоев.
// Используется для проверки токена администратора.
func (c *Client) ListDeploys(ctx context.Context) (int, error) {
	const op = "identityprovider.ListDeploys"
	req, err := c.newRequest(ctx, http.MethodGet, "/deploys", nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var deploys []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&deploys); err != nil {
		return 0, fmt.Errorf("%s: decode response: %w", op, err)
	}
	return len(deploys), nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &models.IdentityProviderError{
		StatusCode: resp.StatusCode,
		Details:    strings.TrimSpace(string(body)),
	}
}
