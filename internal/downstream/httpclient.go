package downstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/baechuer/barbershop-admin/internal/logger"
	"github.com/baechuer/barbershop-admin/middleware"
)

// DefaultTimeout bounds every backend call.
const DefaultTimeout = 10 * time.Second

// ClientConfig holds configuration for the backend API client.
type ClientConfig struct {
	BaseURL string
	// Timeout defaults to DefaultTimeout.
	Timeout time.Duration
}

// RequestMiddleware runs before a request is sent. Returning an error
// rejects the request before it reaches the network.
type RequestMiddleware func(req *http.Request) (*http.Request, error)

// ResponseMiddleware runs after every attempt. It receives either a
// response or the error that replaced it and returns what the next stage
// (and finally the caller) sees.
type ResponseMiddleware func(req *http.Request, resp *http.Response, err error) (*http.Response, error)

// Client is the backend API client. Each call runs the request middlewares
// in order, sends the request, classifies the outcome and runs the
// response middlewares in order.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	request    []RequestMiddleware
	response   []ResponseMiddleware
}

type Option func(*Client)

func WithRequestMiddleware(mw ...RequestMiddleware) Option {
	return func(c *Client) { c.request = append(c.request, mw...) }
}

func WithResponseMiddleware(mw ...ResponseMiddleware) Option {
	return func(c *Client) { c.response = append(c.response, mw...) }
}

// WithTransport replaces the traced default transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.httpClient.Transport = rt }
}

func NewClient(cfg ClientConfig, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("downstream: invalid base url %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("downstream: base url %q must be http or https", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		baseURL: base,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: &middleware.TracingTransport{Base: http.DefaultTransport},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Session is what the authorized client needs from the session store.
type Session interface {
	TokenSource
	SessionInvalidator
}

// NewAuthorizedClient wires the credential and session-invalidation
// stages around a client: request ID and bearer token on the way out,
// failure logging and forced logout on the way back.
func NewAuthorizedClient(cfg ClientConfig, sess Session, nav Navigator, opts ...Option) (*Client, error) {
	base := []Option{
		WithRequestMiddleware(PropagateRequestID, BearerToken(sess)),
		WithResponseMiddleware(LogFailures, InvalidateSessionOnUnauthorized(sess, nav)),
	}
	return NewClient(cfg, append(base, opts...)...)
}

func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) Timeout() time.Duration {
	return c.httpClient.Timeout
}

// resolve joins path (which may carry a query) onto the base URL.
func (c *Client) resolve(path string) (string, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("downstream: invalid path %q: %w", path, err)
	}
	u := *c.baseURL
	u.Path = c.baseURL.Path + "/" + strings.TrimLeft(ref.Path, "/")
	u.RawQuery = ref.RawQuery
	return u.String(), nil
}

// Send runs req through the pipeline. On success the caller owns the
// response body.
func (c *Client) Send(req *http.Request) (*http.Response, error) {
	log := logger.Ctx(req.Context())

	for _, mw := range c.request {
		next, err := mw(req)
		if err != nil {
			log.Error().
				Err(err).
				Str("method", req.Method).
				Str("url", req.URL.String()).
				Msg("downstream_request_rejected")
			return nil, err
		}
		if next == nil {
			return nil, errors.New("downstream: request middleware returned no request")
		}
		req = next
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	var outcome string
	if err != nil {
		err = classifyTransport(err)
		outcome = transportKind(err)
		resp = nil
	} else {
		outcome = strconv.Itoa(resp.StatusCode)
		if resp.StatusCode >= http.StatusBadRequest {
			err = decodeError(resp)
		}
	}
	requestsTotal.WithLabelValues(req.Method, outcome).Inc()
	requestDuration.WithLabelValues(req.Method).Observe(duration.Seconds())

	log.Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Str("outcome", outcome).
		Dur("duration", duration).
		Msg("downstream_request_completed")

	for _, mw := range c.response {
		resp, err = mw(req, resp, err)
	}

	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, errors.New("downstream: response middleware dropped the response")
	}
	return resp, nil
}

// Do sends a JSON request and decodes a JSON response into out (if non-nil).
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	target, err := c.resolve(path)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("downstream: marshal %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Send(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	// an empty 2xx body leaves out untouched
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("downstream: decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}

// classifyTransport converts low-level errors to TransportError.
func classifyTransport(err error) error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.Canceled):
		return &TransportError{Kind: ErrCanceled, Err: err}
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return &TransportError{Kind: ErrTimeout, Err: err}
	default:
		// connection refused, DNS errors, etc.
		return &TransportError{Kind: ErrUnavailable, Err: err}
	}
}

func transportKind(err error) string {
	switch {
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrCanceled):
		return "canceled"
	default:
		return "unavailable"
	}
}
