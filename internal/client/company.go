package client

import (
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

// CompanyClient encapsulates outbound calls to the company service.
type CompanyClient interface {
	GetAdminOf(ctx context.Context, userID string) (domain.AdminOfList, error)
	GetWorkerOf(ctx context.Context, userID string) (domain.WorkerOfList, error)
}

// HTTPCompanyClient is the default HTTP implementation.
type HTTPCompanyClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

var _ CompanyClient = (*HTTPCompanyClient)(nil)

// NewHTTPCompanyClient constructs the default CompanyClient.
func NewHTTPCompanyClient(baseURL, apiKey string, client *http.Client) *HTTPCompanyClient {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPCompanyClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: client,
	}
}

// GetAdminOf lists the companies the user administers.
func (c *HTTPCompanyClient) GetAdminOf(ctx context.Context, userID string) (domain.AdminOfList, error) {
	var list domain.AdminOfList
	endpoint := c.baseURL + "/v1/memberships/admin_of/" + url.PathEscape(userID)
	if err := c.getJSON(ctx, endpoint, &list); err != nil {
		return domain.AdminOfList{}, err
	}
	return list, nil
}

// GetWorkerOf lists the teams the user belongs to.
func (c *HTTPCompanyClient) GetWorkerOf(ctx context.Context, userID string) (domain.WorkerOfList, error) {
	var list domain.WorkerOfList
	endpoint := c.baseURL + "/v1/memberships/worker_of/" + url.PathEscape(userID)
	if err := c.getJSON(ctx, endpoint, &list); err != nil {
		return domain.WorkerOfList{}, err
	}
	return list, nil
}

func (c *HTTPCompanyClient) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Internal "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("company service request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read company response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("company service failed: status=%d", resp.StatusCode)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode company response: %w", err)
	}
	return nil
}
