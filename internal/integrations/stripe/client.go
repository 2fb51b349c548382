package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultBaseURL is the production Stripe API endpoint.
const DefaultBaseURL = "https://api.stripe.com"

// Client handles integration with the Stripe API. One client is bound to one
// secret key; construct a fresh client per request credential rather than
// sharing a global one.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     *logrus.Logger
}

// NewClient initializes a new Stripe client for the given secret key.
func NewClient(baseURL, apiKey string, log *logrus.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// ErrorResponse represents an error returned by the Stripe API.
type ErrorResponse struct {
	StatusCode int `json:"-"`
	Err        struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (e *ErrorResponse) Error() string {
	if e.Err.Message != "" {
		return fmt.Sprintf("stripe api error (%d): %s", e.StatusCode, e.Err.Message)
	}
	return fmt.Sprintf("stripe api error (%d)", e.StatusCode)
}

// get performs an authenticated GET request and decodes the JSON response
// into v. A non-empty stripeAccount is sent as the Stripe-Account header so
// the call is made on behalf of that connected account.
func (c *Client) get(ctx context.Context, path string, query url.Values, stripeAccount string, v any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if stripeAccount != "" {
		req.Header.Set("Stripe-Account", stripeAccount)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errResp := &ErrorResponse{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(body, errResp); err != nil {
			return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}
		c.log.Warnf("Stripe API error on %s: %v", path, errResp)
		return errResp
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
