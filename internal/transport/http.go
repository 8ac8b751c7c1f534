// Package transport implements admin.Transport over the RabbitMQ management
// HTTP API.
package transport

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

	"github.com/avast/retry-go/v4"

	"github.com/alexisbeaulieu97/rabbitadm/pkg/admin"
)

// DefaultTimeout is applied when Options.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// RetryPolicy configures transient retry. Network errors and server-error
// responses are retried; everything else is returned on the first attempt.
type RetryPolicy struct {
	Enabled bool
	// Limit is the number of retries after the first attempt.
	Limit uint
	// Delay is the base of the exponential backoff between attempts.
	Delay time.Duration
}

// Options configures an HTTP transport.
type Options struct {
	BaseURL  string
	Username string
	Password string
	Timeout  time.Duration
	Retry    RetryPolicy
	Metrics  *Metrics
	Logger   admin.Logger
	// Client overrides the default *http.Client.
	Client *http.Client
}

// HTTP is an admin.Transport backed by net/http.
type HTTP struct {
	client   *http.Client
	base     string
	username string
	password string
	retry    RetryPolicy
	metrics  *Metrics
	logger   admin.Logger
}

// New creates an HTTP transport for the management API at opts.BaseURL.
func New(opts Options) (*HTTP, error) {
	base, err := url.Parse(strings.TrimSpace(opts.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be an absolute http(s) URL", opts.BaseURL)
	}

	client := opts.Client
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = nopLogger{}
	}

	return &HTTP{
		client:   client,
		base:     strings.TrimRight(base.String(), "/"),
		username: opts.Username,
		password: opts.Password,
		retry:    opts.Retry,
		metrics:  opts.Metrics,
		logger:   logger,
	}, nil
}

// Close releases idle connections.
func (t *HTTP) Close() {
	t.client.CloseIdleConnections()
}

// Invoke implements admin.Transport.
func (t *HTTP) Invoke(ctx context.Context, req admin.Request) (admin.Response, error) {
	var body []byte
	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return admin.Response{}, fmt.Errorf("encode request body: %w", err)
		}
		body = encoded
	}

	target := t.base + "/" + strings.TrimLeft(req.Path, "/")
	if req.Query != "" {
		target += "?" + req.Query
	}
	if _, err := url.Parse(target); err != nil {
		return admin.Response{}, fmt.Errorf("build request url: %w", err)
	}

	if !t.retry.Enabled || t.retry.Limit == 0 {
		resp, err := t.roundTrip(ctx, req.Method, target, body)
		resp.Request = body
		return resp, err
	}

	var resp admin.Response
	err := retry.Do(
		func() error {
			var rtErr error
			resp, rtErr = t.roundTrip(ctx, req.Method, target, body)
			if rtErr != nil {
				return rtErr
			}
			if resp.Status == admin.StatusServerError {
				return &serverStatusError{code: resp.StatusCode}
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(t.retry.Limit+1),
		retry.Delay(t.retry.Delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isTransient),
		retry.OnRetry(func(n uint, err error) {
			t.logger.Warn(ctx, "retrying management API request",
				"method", req.Method, "url", target, "attempt", n+2, "error", err)
		}),
	)
	resp.Request = body

	var statusErr *serverStatusError
	if err != nil && !errors.As(err, &statusErr) {
		return resp, err
	}
	return resp, nil
}

func (t *HTTP) roundTrip(ctx context.Context, method, target string, body []byte) (admin.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return admin.Response{}, fmt.Errorf("build request: %w", err)
	}
	httpReq.SetBasicAuth(t.username, t.password)
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	httpResp, err := t.client.Do(httpReq)
	if err != nil {
		t.metrics.observe(method, categoryNetworkError, time.Since(start))
		return admin.Response{}, fmt.Errorf("execute request: %w", err)
	}
	defer httpResp.Body.Close()

	payload, err := io.ReadAll(httpResp.Body)
	category := Categorize(httpResp.StatusCode)
	t.metrics.observe(method, category.String(), time.Since(start))
	if err != nil {
		return admin.Response{}, fmt.Errorf("read response body: %w", err)
	}

	t.logger.Debug(ctx, "management API responded",
		"method", method, "url", target, "status_code", httpResp.StatusCode)

	return admin.Response{
		Status:     category,
		StatusCode: httpResp.StatusCode,
		Body:       payload,
	}, nil
}

// Categorize maps an HTTP status code onto a StatusCategory.
func Categorize(code int) admin.StatusCategory {
	switch {
	case code >= 200 && code < 300:
		return admin.StatusSuccess
	case code == http.StatusNotFound:
		return admin.StatusNotFound
	case code == http.StatusConflict:
		return admin.StatusConflict
	case code >= 400 && code < 500:
		return admin.StatusClientError
	case code >= 500:
		return admin.StatusServerError
	default:
		return admin.StatusUnknown
	}
}

type serverStatusError struct {
	code int
}

func (e *serverStatusError) Error() string {
	return fmt.Sprintf("management API returned %d", e.code)
}

func isTransient(err error) bool {
	if err == nil {
		return false
	}
	var statusErr *serverStatusError
	if errors.As(err, &statusErr) {
		return true
	}
	// http.Client.Do reports every network failure as *url.Error
	var netErr *url.Error
	return errors.As(err, &netErr)
}

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...interface{}) {}
func (nopLogger) Info(context.Context, string, ...interface{})  {}
func (nopLogger) Warn(context.Context, string, ...interface{})  {}
func (nopLogger) Error(context.Context, string, ...interface{}) {}

var _ admin.Transport = (*HTTP)(nil)
