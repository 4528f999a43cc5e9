package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jobmeet/jobmeet/internal/errors"
	"github.com/jobmeet/jobmeet/internal/log"
)

const (
	csrfCookieName = "csrftoken"
	csrfHeader     = "X-CSRFToken"
)

// Client wraps outbound requests to the JobMeet backend.
//
// A single cookie jar carries the backend session cookie for the lifetime of
// the process, so every call after login is credentialed automatically. For
// any non-GET request the CSRF token is read back out of the jar and echoed
// as a request header. One attempt per call; no retry, no backoff.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  *log.Logger

	// onUnauthorized is invoked when the backend answers 401. It must not
	// mutate session state itself; reacting to the failed operation is the
	// session store's job.
	onUnauthorized func()
}

// Option configures a Client
type Option func(*Client)

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithUnauthorizedHook registers a callback invoked on every 401 response
func WithUnauthorizedHook(fn func()) Option {
	return func(c *Client) {
		c.onUnauthorized = fn
	}
}

// New creates a Client for the backend at baseURL
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	c := &Client{
		baseURL: u,
		http: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
		},
		logger: log.DefaultLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Error is the normalized non-2xx response from the backend.
// Body holds the raw response payload so callers can extract
// field-level rejection messages.
type Error struct {
	Status int
	Body   []byte
}

// Error implements the error interface
func (e *Error) Error() string {
	body := strings.TrimSpace(string(e.Body))
	if body == "" {
		return fmt.Sprintf("backend returned status %d", e.Status)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Status, body)
}

// Decode unmarshals the rejection body into out. A body that is not
// valid JSON is ignored so callers can fall back to a generic message.
func (e *Error) Decode(out any) {
	_ = json.Unmarshal(e.Body, out)
}

// Get issues a credentialed GET request and decodes the JSON response into out
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a credentialed POST request with a JSON body and decodes the
// response into out. Pass a nil body or nil out to skip either side.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(errors.ErrCodeTransportRequest, "marshal request", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.JoinPath(path).String(), reqBody)
	if err != nil {
		return errors.Wrap(errors.ErrCodeTransportRequest, "create request", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	if method != http.MethodGet {
		if token := c.csrfToken(); token != "" {
			req.Header.Set(csrfHeader, token)
		}
	}

	c.logger.DebugContext(ctx, "backend request",
		"method", method,
		"path", path,
		"request_id", requestID,
	)

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.NewBackendUnreachableError(c.baseURL.String(), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(errors.ErrCodeTransportRequest, "read response", err)
	}

	if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
		c.onUnauthorized()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.DebugContext(ctx, "backend rejection",
			"status", resp.StatusCode,
			"path", path,
			"request_id", requestID,
		)
		return &Error{Status: resp.StatusCode, Body: respBody}
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return errors.Wrap(errors.ErrCodeTransportDecode, "unmarshal response", err)
		}
	}

	return nil
}

// csrfToken reads the CSRF cookie the backend set for the base URL.
// Returns "" before the first response that sets one.
func (c *Client) csrfToken() string {
	for _, cookie := range c.http.Jar.Cookies(c.baseURL) {
		if cookie.Name == csrfCookieName {
			return cookie.Value
		}
	}
	return ""
}
