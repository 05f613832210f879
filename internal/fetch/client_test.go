package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/GriffinCanCode/framedata/internal/infrastructure/resilience"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!DOCTYPE html><html><body><p>Ryu</p></body></html>`

func TestFetchSuccess(t *testing.T) {
	var agent atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agent.Store(r.Header.Get("User-Agent"))
		assert.Equal(t, "/w/Street_Fighter_6/Ryu/Data", r.URL.Path)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	client := NewClient(Options{UserAgent: "framedata-test"})
	body, err := client.Fetch(context.Background(), srv.URL+"/w/Street_Fighter_6/Ryu/Data")
	require.NoError(t, err)

	assert.Equal(t, page, string(body))
	assert.Equal(t, "framedata-test", agent.Load())
}

func TestFetchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	client := NewClient(DefaultOptions())
	_, err := client.Fetch(context.Background(), srv.URL+"/w/Street_Fighter_6/Nobody/Data")
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrStatus)
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.Code)
	assert.Contains(t, err.Error(), "404 Not Found")
}

func TestFetchEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	_, err := NewClient(DefaultOptions()).Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrEmptyBody)
}

func TestFetchHonoursContextDeadline(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := NewClient(DefaultOptions()).Fetch(ctx, srv.URL)
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestFetchRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	client := NewClient(Options{Retries: 2, MinWait: time.Millisecond, MaxWait: 5 * time.Millisecond})
	body, err := client.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, page, string(body))
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetchWithoutRetriesFailsOnce(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(DefaultOptions()).Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrStatus)
	assert.Equal(t, int32(1), calls.Load())
}

func TestBreakerOpensAfterRepeatedFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	var transitions []string
	client := NewClient(Options{
		OnBreakerChange: func(name string, from, to resilience.State) {
			transitions = append(transitions, from.String()+"->"+to.String())
		},
	})

	for i := 0; i < 5; i++ {
		_, err := client.Fetch(context.Background(), srv.URL)
		require.ErrorIs(t, err, ErrStatus)
	}
	assert.Equal(t, resilience.StateOpen, client.BreakerState())

	_, err := client.Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
	assert.Equal(t, int32(5), calls.Load(), "open breaker must not reach the server")
	assert.Equal(t, []string{"closed->open"}, transitions)
}

func TestMissingPagesDoNotTripBreaker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/w/SF6/Ryu/Data" {
			_, _ = w.Write([]byte(page))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := NewClient(DefaultOptions())
	for i := 0; i < 10; i++ {
		_, err := client.Fetch(context.Background(), srv.URL+"/w/SF6/Renamed/Data")
		require.ErrorIs(t, err, ErrStatus)
	}
	assert.Equal(t, resilience.StateClosed, client.BreakerState())

	body, err := client.Fetch(context.Background(), srv.URL+"/w/SF6/Ryu/Data")
	require.NoError(t, err)
	assert.Equal(t, page, string(body))
}

func TestResetClosesBreaker(t *testing.T) {
	var healthy atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	client := NewClient(DefaultOptions())
	for i := 0; i < 5; i++ {
		_, _ = client.Fetch(context.Background(), srv.URL)
	}
	require.Equal(t, resilience.StateOpen, client.BreakerState())

	healthy.Store(true)
	client.Reset()
	assert.Equal(t, resilience.StateClosed, client.BreakerState())

	_, err := client.Fetch(context.Background(), srv.URL)
	assert.NoError(t, err)
}

func TestHostFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"success", nil, false},
		{"canceled", context.Canceled, false},
		{"not found", &StatusError{Code: http.StatusNotFound}, false},
		{"gone", &StatusError{Code: http.StatusGone}, false},
		{"rate limited", &StatusError{Code: http.StatusTooManyRequests}, true},
		{"server error", &StatusError{Code: http.StatusServiceUnavailable}, true},
		{"deadline", context.DeadlineExceeded, true},
		{"transport", errors.New("connection refused"), true},
		{"empty body", ErrEmptyBody, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hostFailure(tt.err))
		})
	}
}

func TestRateLimitCancelled(t *testing.T) {
	client := NewClient(Options{RateLimit: 0.001})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	// The first request spends the only token
	_, err := client.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = client.Fetch(ctx, srv.URL)
	assert.ErrorContains(t, err, "rate limit")
}

func TestFetcherFunc(t *testing.T) {
	var f Fetcher = FetcherFunc(func(ctx context.Context, url string) ([]byte, error) {
		return []byte(url), nil
	})

	body, err := f.Fetch(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "x", string(body))
}
