// Package client is a typed HTTP client for the ledger API.
//
// Every mutation that the API accepts is followed by an invalidation for
// the data it changed. Validation that the ledger package can do locally
// happens before the request is sent.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	v1 "github.com/pocketledger/backend/internal/controllers/v1"
	"github.com/pocketledger/backend/internal/notify"
	"github.com/rs/zerolog/log"
)

// StoreError is returned when the API responds with a non-2xx status.
type StoreError struct {
	Status  int
	Message string
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store responded with %d: %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a StoreError for a missing resource.
func IsNotFound(err error) bool {
	var storeErr *StoreError
	return errors.As(err, &storeErr) && storeErr.Status == http.StatusNotFound
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	notifier   notify.Notifier
}

type Option func(*Client)

// WithHTTPClient sets the http.Client used for requests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.httpClient = h
	}
}

// WithNotifier sets the notifier that receives invalidations after
// successful mutations.
func WithNotifier(n notify.Notifier) Option {
	return func(c *Client) {
		c.notifier = n
	}
}

// New returns a client for the API at baseURL, e.g. https://example.com/api.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// envelope is the shape of every API response body.
type envelope[T any] struct {
	Data  T       `json:"data"`
	Error *string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, target any) error {
	if body == nil {
		return c.send(ctx, method, path, query, "", nil, target)
	}

	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	return c.send(ctx, method, path, query, "application/json", bytes.NewReader(b), target)
}

// send sends a request and decodes the response into target. Non-2xx
// responses are returned as *StoreError.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, contentType string, body io.Reader, target any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Creation endpoints report per resource results with errors
		if target != nil {
			_ = json.Unmarshal(data, target)
		}
		return storeError(resp.StatusCode, data)
	}

	if target == nil || len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func storeError(status int, body []byte) *StoreError {
	var e envelope[json.RawMessage]
	if err := json.Unmarshal(body, &e); err == nil && e.Error != nil {
		return &StoreError{Status: status, Message: *e.Error}
	}

	// Creation endpoints report errors per resource
	var list envelope[[]struct {
		Error *string `json:"error"`
	}]
	if err := json.Unmarshal(body, &list); err == nil {
		for _, item := range list.Data {
			if item.Error != nil {
				return &StoreError{Status: status, Message: *item.Error}
			}
		}
	}

	return &StoreError{Status: status, Message: http.StatusText(status)}
}

// emit delivers an invalidation. Failures are logged, the mutation
// already succeeded.
func (c *Client) emit(ctx context.Context, keys ...[]string) {
	if c.notifier == nil || len(keys) == 0 {
		return
	}

	if err := c.notifier.Notify(ctx, notify.Invalidation{Keys: keys}); err != nil {
		log.Warn().Err(err).Interface("keys", keys).Msg("invalidation delivery failed")
	}
}

// Evaluate evaluates an amount expression on the server.
func (c *Client) Evaluate(ctx context.Context, expression string) (v1.Evaluation, error) {
	var r envelope[v1.Evaluation]
	err := c.do(ctx, http.MethodPost, "/v1/evaluate", nil, v1.EvaluateRequest{Expression: expression}, &r)
	return r.Data, err
}
