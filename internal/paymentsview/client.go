package paymentsview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// AdminPaymentsPath is the admin endpoint that lists every order.
const AdminPaymentsPath = "/payment/admin/all"

// MaxResponseBytes bounds the admin payload read by the client.
const MaxResponseBytes = 16 << 20

// Client fetches payment records from the marketplace admin API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

// WithBearerToken authenticates requests with an admin JWT.
func WithBearerToken(token string) ClientOption {
	return func(cl *Client) {
		cl.token = strings.TrimSpace(token)
	}
}

// NewClient builds a client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchPayments requests the admin payments list and decodes it strictly.
func (c *Client) FetchPayments(ctx context.Context) ([]Payment, error) {
	url := c.baseURL + AdminPaymentsPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &NetworkError{URL: url, StatusCode: resp.StatusCode, Err: errors.New(http.StatusText(resp.StatusCode))}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBytes+1))
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}
	if len(body) > MaxResponseBytes {
		return nil, &MalformedResponseError{Index: -1, Err: fmt.Errorf("response exceeds %d bytes", MaxResponseBytes)}
	}
	return DecodePayments(body)
}
