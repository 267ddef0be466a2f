package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/ilsalary/net-salary-calculator/internal/domain"
)

const (
	// DefaultBaseURL is where the calculator API listens when nothing is configured.
	DefaultBaseURL = "http://localhost:8000"
	// DefaultTimeout bounds every request when no timeout is configured.
	DefaultTimeout = 10 * time.Second

	apiPrefix = "/api/v1"
)

// ErrRemote marks failures reported by the remote calculator.
var ErrRemote = errors.New("remote calculator error")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API Error: %d %s", e.Code, e.Status)
}

func (e *StatusError) Unwrap() error { return ErrRemote }

// Client calls the remote calculator API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client with its own connection pool. Empty or zero arguments fall back to the defaults.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Calculate translates the input to the flattened API shape, posts it and maps the
// answer back. asOf fixes the age sent for the taxpayer.
func (c *Client) Calculate(ctx context.Context, in *domain.CalculationInput, asOf time.Time) (*domain.Outcome, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: input is required", ErrRemote)
	}
	var resp APIResponse
	if err := c.do(ctx, http.MethodPost, apiPrefix+"/calculator/calculate", ToAPIRequest(in, asOf), &resp); err != nil {
		return nil, err
	}
	return &domain.Outcome{Single: FromAPIResponse(resp, in, asOf)}, nil
}

// TaxBrackets fetches the API's bracket table as loosely typed JSON.
func (c *Client) TaxBrackets(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.do(ctx, http.MethodGet, apiPrefix+"/calculator/tax-brackets", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Constants fetches the API's statutory constants as loosely typed JSON.
func (c *Client) Constants(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.do(ctx, http.MethodGet, apiPrefix+"/calculator/constants", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Health calls the unversioned health endpoint.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var out HealthStatus
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrRemote, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Code: resp.StatusCode, Status: http.StatusText(resp.StatusCode)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode %s response: %w", ErrRemote, path, err)
	}
	return nil
}
