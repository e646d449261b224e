package sproutsocial

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"socialmetrics-backend/internal/shared/metrics"
	"socialmetrics-backend/internal/shared/telemetry"
)

// DefaultBaseURL is the Sprout Social public API root.
const DefaultBaseURL = "https://api.sproutsocial.com/v1"

// ProfileMetrics are requested for every analytics fetch.
var ProfileMetrics = []string{"impressions", "likes", "reactions", "comments_count", "shares_count"}

// ErrNoCustomerID is returned when the client metadata lists no customer.
var ErrNoCustomerID = errors.New("no customer ID found in response")

// APIError carries a non-200 upstream response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API Error: %d - %s", e.StatusCode, e.Body)
}

// Client talks to the Sprout Social analytics API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the API root.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if strings.TrimSpace(baseURL) != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// NewClient constructs a client authenticating with a bearer API key.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("SPROUT_API_KEY is required")
	}
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: strings.TrimSpace(apiKey), TokenType: "Bearer"})
	hc := oauth2.NewClient(context.Background(), src)
	hc.Timeout = 30 * time.Second
	c := &Client{baseURL: DefaultBaseURL, httpClient: hc}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// CustomerID resolves the customer id owning the API key.
func (c *Client) CustomerID(ctx context.Context) (string, error) {
	var payload struct {
		Data []struct {
			CustomerID json.RawMessage `json:"customer_id"`
		} `json:"data"`
	}
	body, err := c.do(ctx, http.MethodGet, "/metadata/client", "metadata_client", nil)
	if err != nil {
		return "", err
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decode client metadata: %w", err)
	}
	if len(payload.Data) == 0 {
		return "", ErrNoCustomerID
	}
	id := rawID(payload.Data[0].CustomerID)
	if id == "" {
		return "", ErrNoCustomerID
	}
	return id, nil
}

// Profiles returns the customer's profile metadata as delivered by the API.
func (c *Client) Profiles(ctx context.Context) (json.RawMessage, error) {
	customerID, err := c.CustomerID(ctx)
	if err != nil {
		return nil, err
	}
	body, err := c.do(ctx, http.MethodGet, "/"+customerID+"/metadata/customer", "metadata_customer", nil)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// ProfileStats fetches analytics for one profile over [start, end] (YYYY-MM-DD).
func (c *Client) ProfileStats(ctx context.Context, profileID, start, end string) (json.RawMessage, error) {
	if strings.TrimSpace(profileID) == "" {
		return nil, fmt.Errorf("profile_id is required")
	}
	customerID, err := c.CustomerID(ctx)
	if err != nil {
		return nil, err
	}
	reqBody := analyticsRequest{
		Filters: []string{
			fmt.Sprintf("customer_profile_id.eq(%s)", profileID),
			fmt.Sprintf("reporting_period.in(%s...%s)", start, end),
		},
		Metrics: ProfileMetrics,
	}
	body, err := c.do(ctx, http.MethodPost, "/"+customerID+"/analytics/profiles", "analytics_profiles", reqBody)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

type analyticsRequest struct {
	Filters []string `json:"filters"`
	Metrics []string `json:"metrics"`
}

func (c *Client) do(ctx context.Context, method, path, endpoint string, payload any) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.IncProviderRequest(endpoint, "error")
		telemetry.Error("sprout.request", map[string]any{"endpoint": endpoint, "error": err.Error()})
		return nil, fmt.Errorf("sprout %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	metrics.IncProviderRequest(endpoint, strconv.Itoa(resp.StatusCode/100)+"xx")
	telemetry.Info("sprout.request", map[string]any{
		"endpoint":    endpoint,
		"status":      resp.StatusCode,
		"duration_ms": float64(time.Since(start).Microseconds()) / 1000.0,
	})
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

// rawID accepts customer ids encoded as JSON strings or numbers.
func rawID(raw json.RawMessage) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}
