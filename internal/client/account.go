// Package client holds the outbound HTTP clients for the internal account
// and company services. All calls carry the service identity header and a
// request-scoped context; the gateway itself persists nothing.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/smallbiznis/valora-web/internal/domain"
)

// ErrAccountNotFound reports a subject id unknown to the account service.
var ErrAccountNotFound = fmt.Errorf("account not found")

// AccountClient encapsulates outbound calls to the account service.
type AccountClient interface {
	GetAccount(ctx context.Context, accountID string) (domain.Account, error)
	UpdatePassword(ctx context.Context, accountID, password string) error
	RequestPasswordReset(ctx context.Context, email string) error
}

// HTTPAccountClient is the default HTTP implementation.
type HTTPAccountClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

var _ AccountClient = (*HTTPAccountClient)(nil)

// NewHTTPAccountClient constructs the default AccountClient.
func NewHTTPAccountClient(baseURL, apiKey string, client *http.Client) *HTTPAccountClient {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPAccountClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: client,
	}
}

// GetAccount loads the account snapshot for the given id.
func (c *HTTPAccountClient) GetAccount(ctx context.Context, accountID string) (domain.Account, error) {
	var account domain.Account
	endpoint := c.baseURL + "/v1/accounts/" + url.PathEscape(accountID)
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &account); err != nil {
		return domain.Account{}, err
	}
	return account, nil
}

// UpdatePassword replaces the account password with the submitted value.
func (c *HTTPAccountClient) UpdatePassword(ctx context.Context, accountID, password string) error {
	endpoint := c.baseURL + "/v1/accounts/" + url.PathEscape(accountID) + "/password"
	body := map[string]string{"password": password}
	return c.doJSON(ctx, http.MethodPost, endpoint, body, nil)
}

// RequestPasswordReset asks the account service to email a reset link.
func (c *HTTPAccountClient) RequestPasswordReset(ctx context.Context, email string) error {
	endpoint := c.baseURL + "/v1/accounts/password_reset"
	body := map[string]string{"email": email}
	return c.doJSON(ctx, http.MethodPost, endpoint, body, nil)
}

func (c *HTTPAccountClient) doJSON(ctx context.Context, method, endpoint string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Internal "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("account service request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read account response: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return ErrAccountNotFound
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("account service failed: status=%d", resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode account response: %w", err)
		}
	}
	return nil
}
