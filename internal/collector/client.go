package collector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"NiftyPulse/internal/metrics"
)

// ErrProviderUnavailable is returned while the provider circuit breaker is open.
var ErrProviderUnavailable = errors.New("market data provider unavailable")

// StatusError is a non-200 response from the provider.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d, body: %s", e.StatusCode, e.Body)
}

// ClientOptions configures a provider Client.
type ClientOptions struct {
	Timeout        time.Duration
	RequestsPerSec float64
	MaxRetries     int
	Proxy          string
	UserAgent      string
	Metrics        *metrics.Registry
}

// Client is an HTTP client with rate limiting, retries and a circuit breaker.
type Client struct {
	HTTPClient *http.Client
	Limiter    *rate.Limiter
	Breaker    *gobreaker.CircuitBreaker
	MaxRetries int
	UserAgent  string
}

// NewClient creates a provider client with optional proxy support.
func NewClient(opts ClientOptions) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.RequestsPerSec == 0 {
		opts.RequestsPerSec = 2
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "Mozilla/5.0"
	}
	transport := &http.Transport{}
	if opts.Proxy != "" {
		if u, err := url.Parse(opts.Proxy); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}

	st := gobreaker.Settings{
		Name:     "market-data",
		Interval: 60 * time.Second,
		Timeout:  30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		IsSuccessful: func(err error) bool {
			// the caller giving up is not a provider failure
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
			opts.Metrics.SetBreakerOpen(to == gobreaker.StateOpen)
		},
	}

	return &Client{
		HTTPClient: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
		},
		Limiter:    rate.NewLimiter(rate.Limit(opts.RequestsPerSec), 1),
		Breaker:    gobreaker.NewCircuitBreaker(st),
		MaxRetries: opts.MaxRetries,
		UserAgent:  opts.UserAgent,
	}
}

// Get fetches endpoint and returns the body of a 200 response.
// Network errors and 5xx/429 responses are retried with exponential backoff.
func (c *Client) Get(ctx context.Context, endpoint string, header http.Header) ([]byte, error) {
	body, err := c.Breaker.Execute(func() (interface{}, error) {
		return c.getWithRetry(ctx, endpoint, header)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	if err != nil {
		return nil, err
	}
	return body.([]byte), nil
}

func (c *Client) getWithRetry(ctx context.Context, endpoint string, header http.Header) ([]byte, error) {
	var body []byte
	attempt := 0
	operation := func() error {
		attempt++
		if err := c.Limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}
		b, err := c.do(ctx, endpoint, header)
		if err != nil {
			var se *StatusError
			if errors.As(err, &se) && se.StatusCode < 500 && se.StatusCode != http.StatusTooManyRequests {
				return backoff.Permanent(err)
			}
			log.Debug().Err(err).Int("attempt", attempt).Str("url", endpoint).Msg("provider request failed")
			return err
		}
		body = b
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxElapsedTime = 20 * time.Second
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(c.MaxRetries)), ctx)

	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, endpoint string, header http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(body), 256)}
	}
	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
