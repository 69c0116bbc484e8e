package feeds

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/spaceweather-forecast/internal/observability"
	"github.com/i474232898/spaceweather-forecast/internal/spaceweather"
)

// RetryPolicy controls which failures are retried and how long to wait in between.
type RetryPolicy struct {
	// MaxAttempts is the total request budget, first attempt included.
	// Values below 1 mean a single attempt.
	MaxAttempts int
	// BackoffFactor scales the exponential delay, in seconds.
	BackoffFactor float64
	// MaxBackoff caps a single delay; zero means uncapped.
	MaxBackoff time.Duration
	// RetryStatuses are the HTTP statuses worth retrying.
	RetryStatuses []int
}

// DefaultRetryPolicy allows three attempts in total on 5xx gateway failures
// and transport errors, with a 0.3 s factor.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:   3,
		BackoffFactor: 0.3,
		MaxBackoff:    120 * time.Second,
		RetryStatuses: []int{http.StatusInternalServerError, http.StatusBadGateway, http.StatusGatewayTimeout},
	}
}

// Backoff returns the delay before the given retry (1-based). The first retry
// is immediate; later ones wait BackoffFactor * 2^(retry-1) seconds.
func (p RetryPolicy) Backoff(retry int) time.Duration {
	if retry <= 1 || p.BackoffFactor <= 0 {
		return 0
	}
	d := time.Duration(p.BackoffFactor * math.Pow(2, float64(retry-1)) * float64(time.Second))
	if p.MaxBackoff > 0 && d > p.MaxBackoff {
		return p.MaxBackoff
	}
	return d
}

func (p RetryPolicy) retryableStatus(code int) bool {
	return slices.Contains(p.RetryStatuses, code)
}

// ClientConfig bundles the per-request timeout and the retry policy.
type ClientConfig struct {
	Timeout time.Duration
	Retry   RetryPolicy
}

// DefaultClientConfig uses a 10 s request timeout and DefaultRetryPolicy.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Timeout: 10 * time.Second,
		Retry:   DefaultRetryPolicy(),
	}
}

var (
	errTransport        = errors.New("transport failure")
	errRetryableStatus  = errors.New("retryable status")
	errUnexpectedStatus = errors.New("unexpected status code")
	errCircuitOpen      = errors.New("circuit breaker open")
)

// FetchError is returned once a fetch gives up. It matches spaceweather.ErrUnavailable.
type FetchError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s failed after %d attempt(s): %v", e.URL, e.Attempts, e.Err)
}

func (e *FetchError) Unwrap() []error {
	return []error{spaceweather.ErrUnavailable, e.Err}
}

// Client issues bounded GET requests with retries, backoff and a circuit
// breaker per endpoint. It owns its connection pool; call Close when done.
type Client struct {
	httpClient *http.Client
	cfg        ClientConfig
	logger     *slog.Logger
	metrics    *observability.Metrics

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker
}

// NewClient creates a Client with its own transport.
func NewClient(cfg ClientConfig, logger *slog.Logger, metrics *observability.Metrics) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	return &Client{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		cfg:      cfg,
		logger:   logger,
		metrics:  metrics,
		breakers: make(map[string]*gobreaker.CircuitBreaker),
	}
}

// Close releases idle connections held by the client.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// Fetch GETs url and returns the response body. Every failure comes back as a
// *FetchError; nothing panics past this call.
func (c *Client) Fetch(ctx context.Context, url string) (body []byte, err error) {
	start := time.Now()
	attempts := 0

	defer func() {
		if r := recover(); r != nil {
			body = nil
			err = &FetchError{URL: url, Attempts: attempts, Err: fmt.Errorf("panic: %v", r)}
		}
		outcome := "ok"
		if err != nil {
			outcome = "failed"
		}
		c.metrics.FetchDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	}()

	cb := c.breaker(url)

	for {
		if ctx.Err() != nil {
			return nil, &FetchError{URL: url, Attempts: attempts, Err: ctx.Err()}
		}
		attempts++

		result, execErr := cb.Execute(func() (interface{}, error) {
			return c.do(ctx, url)
		})
		if execErr == nil {
			c.metrics.FetchAttempts.WithLabelValues("ok").Inc()
			data, ok := result.([]byte)
			if !ok {
				return nil, &FetchError{URL: url, Attempts: attempts, Err: errors.New("unexpected result type from circuit breaker")}
			}
			return data, nil
		}

		if errors.Is(execErr, gobreaker.ErrOpenState) || errors.Is(execErr, gobreaker.ErrTooManyRequests) {
			c.metrics.FetchAttempts.WithLabelValues("circuit_open").Inc()
			return nil, &FetchError{URL: url, Attempts: attempts, Err: fmt.Errorf("%w: %w", errCircuitOpen, execErr)}
		}

		if !retryable(execErr) || attempts >= c.cfg.Retry.MaxAttempts {
			c.metrics.FetchAttempts.WithLabelValues("failed").Inc()
			return nil, &FetchError{URL: url, Attempts: attempts, Err: execErr}
		}

		c.metrics.FetchAttempts.WithLabelValues("retry").Inc()
		delay := c.cfg.Retry.Backoff(attempts)
		c.logger.Debug("retrying fetch", "url", url, "attempt", attempts, "delay", delay, "error", execErr)

		if !sleepWithContext(ctx, delay) {
			return nil, &FetchError{URL: url, Attempts: attempts, Err: ctx.Err()}
		}
	}
}

// do performs a single bounded GET and reads the full body.
func (c *Client) do(ctx context.Context, url string) ([]byte, error) {
	reqCtx := ctx
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errTransport, err)
	}
	defer resp.Body.Close()

	if c.cfg.Retry.retryableStatus(resp.StatusCode) {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %d", errRetryableStatus, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %d", errUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", errTransport, err)
	}
	return body, nil
}

func (c *Client) breaker(url string) *gobreaker.CircuitBreaker {
	c.mu.Lock()
	defer c.mu.Unlock()

	cb, ok := c.breakers[url]
	if !ok {
		cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        url,
			MaxRequests: 5,
			Interval:    1 * time.Minute,
			Timeout:     2 * time.Minute,
		})
		c.breakers[url] = cb
	}
	return cb
}

func retryable(err error) bool {
	return errors.Is(err, errTransport) || errors.Is(err, errRetryableStatus)
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
