package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/GriffinCanCode/framedata/internal/infrastructure/resilience"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

var (
	// ErrStatus is returned for non-2xx responses
	ErrStatus = errors.New("unexpected status")

	// ErrEmptyBody is returned when a 2xx response has no body
	ErrEmptyBody = errors.New("empty response body")
)

// Fetcher retrieves the body at a URL
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Resetter is implemented by fetchers that keep health state between loads
type Resetter interface {
	Reset()
}

// FetcherFunc adapts a function to Fetcher
type FetcherFunc func(ctx context.Context, url string) ([]byte, error)

// Fetch calls f
func (f FetcherFunc) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f(ctx, url)
}

// Options configures a Client
type Options struct {
	Timeout   time.Duration
	Retries   int
	MinWait   time.Duration
	MaxWait   time.Duration
	RateLimit float64 // requests per second, 0 = unlimited
	UserAgent string

	// OnBreakerChange is notified when the breaker opens or closes
	OnBreakerChange func(name string, from, to resilience.State)
}

// DefaultOptions returns options for a single unhurried pass over the roster
func DefaultOptions() Options {
	return Options{
		Timeout:   30 * time.Second,
		MinWait:   1 * time.Second,
		MaxWait:   10 * time.Second,
		UserAgent: "framedata/1.0",
	}
}

// Client wraps resty with rate limiting and a circuit breaker
type Client struct {
	resty   *resty.Client
	limiter *rate.Limiter
	breaker *resilience.Breaker
}

// NewClient creates a wiki client
func NewClient(opts Options) *Client {
	defaults := DefaultOptions()
	if opts.Timeout <= 0 {
		opts.Timeout = defaults.Timeout
	}
	if opts.MinWait <= 0 {
		opts.MinWait = defaults.MinWait
	}
	if opts.MaxWait <= 0 {
		opts.MaxWait = defaults.MaxWait
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaults.UserAgent
	}

	// Pooled transport from retryablehttp; resty drives the retries itself
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = nil

	restyClient := resty.New().
		SetTransport(retryClient.HTTPClient.Transport).
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.Retries).
		SetRetryWaitTime(opts.MinWait).
		SetRetryMaxWaitTime(opts.MaxWait).
		SetHeader("User-Agent", opts.UserAgent).
		SetHeader("Accept", "text/html")
	if opts.Retries > 0 {
		restyClient.AddRetryCondition(func(resp *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return resp.StatusCode() == http.StatusTooManyRequests || resp.StatusCode() >= 500
		})
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RateLimit > 0 {
		burst := int(opts.RateLimit)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	breaker := resilience.New("wiki", resilience.Settings{
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			// Only a run of host failures trips; see hostFailure
			return counts.ConsecutiveFailures >= 5
		},
		IsFailure:     hostFailure,
		OnStateChange: opts.OnBreakerChange,
	})

	return &Client{
		resty:   restyClient,
		limiter: limiter,
		breaker: breaker,
	}
}

// Fetch GETs url and returns the body of a 2xx response
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	return resilience.Do(c.breaker, func() ([]byte, error) {
		resp, err := c.resty.R().SetContext(ctx).Get(url)
		if err != nil {
			return nil, fmt.Errorf("GET %s: %w", url, err)
		}
		if !resp.IsSuccess() {
			return nil, &StatusError{URL: url, Code: resp.StatusCode()}
		}
		body := resp.Body()
		if len(body) == 0 {
			return nil, fmt.Errorf("GET %s: %w", url, ErrEmptyBody)
		}
		return body, nil
	})
}

// Reset closes the circuit breaker so a new load starts from a healthy state
func (c *Client) Reset() {
	c.breaker.Reset()
}

// hostFailure reports whether err says the wiki itself is unhealthy. A 4xx is
// about one page (usually a renamed character) and a cancel is the caller's.
func hostFailure(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.Code >= 400 && statusErr.Code < 500 {
		return statusErr.Code == http.StatusTooManyRequests
	}
	return true
}

// BreakerState returns the current circuit breaker state
func (c *Client) BreakerState() resilience.State {
	return c.breaker.State()
}

// StatusError reports a non-2xx response
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %d %s", e.URL, e.Code, http.StatusText(e.Code))
}

// Unwrap lets errors.Is match ErrStatus
func (e *StatusError) Unwrap() error {
	return ErrStatus
}
