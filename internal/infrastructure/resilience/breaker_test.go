package resilience

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errFetch = errors.New("fetch failed")

// fakeClock lets tests move the breaker through timeouts without sleeping
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestBreaker(settings Settings) (*Breaker, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	b := New("wiki", settings)
	b.now = clock.Now
	b.newGeneration(clock.Now())
	return b, clock
}

func fail() error    { return errFetch }
func succeed() error { return nil }

func TestBreakerStateTransitions(t *testing.T) {
	tests := []struct {
		name          string
		settings      Settings
		requests      []bool // true = success, false = failure
		expectedState State
	}{
		{
			name:          "stays closed on successes",
			settings:      Settings{MaxRequests: 1, Timeout: time.Minute},
			requests:      []bool{true, true, true},
			expectedState: StateClosed,
		},
		{
			name: "opens after consecutive failures",
			settings: Settings{
				MaxRequests: 1,
				Timeout:     time.Minute,
				ReadyToTrip: func(counts Counts) bool {
					return counts.ConsecutiveFailures >= 3
				},
			},
			requests:      []bool{false, false, false},
			expectedState: StateOpen,
		},
		{
			name: "success resets consecutive failures",
			settings: Settings{
				MaxRequests: 1,
				Timeout:     time.Minute,
				ReadyToTrip: func(counts Counts) bool {
					return counts.ConsecutiveFailures >= 2
				},
			},
			requests:      []bool{false, true, false, true},
			expectedState: StateClosed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			breaker, _ := newTestBreaker(tt.settings)

			for _, success := range tt.requests {
				fn := fail
				if success {
					fn = succeed
				}
				_ = breaker.Execute(fn)
			}

			assert.Equal(t, tt.expectedState, breaker.State())
		})
	}
}

func TestBreakerCounts(t *testing.T) {
	breaker, _ := newTestBreaker(Settings{MaxRequests: 1, Timeout: time.Minute})

	require.NoError(t, breaker.Execute(succeed))

	counts := breaker.Counts()
	assert.Equal(t, uint32(1), counts.Requests)
	assert.Equal(t, uint32(1), counts.TotalSuccesses)
	assert.Equal(t, uint32(1), counts.ConsecutiveSuccesses)
	assert.Equal(t, uint32(0), counts.TotalFailures)

	assert.ErrorIs(t, breaker.Execute(fail), errFetch)

	counts = breaker.Counts()
	assert.Equal(t, uint32(2), counts.Requests)
	assert.Equal(t, uint32(1), counts.TotalFailures)
	assert.Equal(t, uint32(1), counts.ConsecutiveFailures)
	assert.Equal(t, uint32(0), counts.ConsecutiveSuccesses)
}

func TestBreakerIntervalClearsCounts(t *testing.T) {
	breaker, clock := newTestBreaker(Settings{Interval: time.Minute, Timeout: time.Minute})

	_ = breaker.Execute(fail)
	assert.Equal(t, uint32(1), breaker.Counts().TotalFailures)

	clock.Advance(2 * time.Minute)
	assert.Equal(t, StateClosed, breaker.State())
	assert.Equal(t, Counts{}, breaker.Counts())
}

func TestBreakerOpenRejects(t *testing.T) {
	breaker, _ := newTestBreaker(Settings{
		Timeout: time.Minute,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 2
		},
	})

	_ = breaker.Execute(fail)
	_ = breaker.Execute(fail)
	require.Equal(t, StateOpen, breaker.State())

	called := false
	err := breaker.Execute(func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestBreakerHalfOpenRecovery(t *testing.T) {
	breaker, clock := newTestBreaker(Settings{
		MaxRequests: 2,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 2
		},
	})

	_ = breaker.Execute(fail)
	_ = breaker.Execute(fail)
	require.Equal(t, StateOpen, breaker.State())

	clock.Advance(31 * time.Second)
	assert.Equal(t, StateHalfOpen, breaker.State())

	require.NoError(t, breaker.Execute(succeed))
	assert.Equal(t, StateHalfOpen, breaker.State())
	require.NoError(t, breaker.Execute(succeed))
	assert.Equal(t, StateClosed, breaker.State())
}

func TestBreakerHalfOpenFailureReopens(t *testing.T) {
	breaker, clock := newTestBreaker(Settings{
		MaxRequests: 1,
		Timeout:     time.Second,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 1
		},
	})

	_ = breaker.Execute(fail)
	clock.Advance(2 * time.Second)
	require.Equal(t, StateHalfOpen, breaker.State())

	_ = breaker.Execute(fail)
	assert.Equal(t, StateOpen, breaker.State())
}

func TestBreakerIsFailure(t *testing.T) {
	breaker, _ := newTestBreaker(Settings{
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 1
		},
		IsFailure: func(err error) bool {
			return err != nil && !errors.Is(err, context.Canceled)
		},
	})

	err := breaker.Execute(func() error { return context.Canceled })
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StateClosed, breaker.State())
	assert.Equal(t, uint32(1), breaker.Counts().TotalSuccesses)
}

func TestDoReturnsValue(t *testing.T) {
	breaker, _ := newTestBreaker(Settings{})

	body, err := Do(breaker, func() ([]byte, error) {
		return []byte("<html></html>"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(body))
}

func TestDoPanicCountsAsFailure(t *testing.T) {
	breaker, _ := newTestBreaker(Settings{})

	assert.Panics(t, func() {
		_, _ = Do(breaker, func() (int, error) {
			panic("boom")
		})
	})
	assert.Equal(t, uint32(1), breaker.Counts().TotalFailures)
}

func TestBreakerCallbacks(t *testing.T) {
	var transitions []string

	breaker, clock := newTestBreaker(Settings{
		Timeout: 10 * time.Second,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 2
		},
		OnStateChange: func(name string, from State, to State) {
			transitions = append(transitions, name+":"+from.String()+"->"+to.String())
		},
	})

	_ = breaker.Execute(fail)
	_ = breaker.Execute(fail)
	clock.Advance(11 * time.Second)
	assert.Equal(t, StateHalfOpen, breaker.State())

	assert.Equal(t, []string{"wiki:closed->open", "wiki:open->half-open"}, transitions)
}

func TestBreakerReset(t *testing.T) {
	var transitions []string
	b, _ := newTestBreaker(Settings{
		MaxRequests: 1,
		Timeout:     time.Minute,
		ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 2 },
		OnStateChange: func(_ string, from, to State) {
			transitions = append(transitions, from.String()+"->"+to.String())
		},
	})

	_ = b.Execute(fail)
	b.Reset()
	assert.Equal(t, Counts{}, b.Counts(), "reset clears closed-state counts")

	_ = b.Execute(fail)
	_ = b.Execute(fail)
	require.Equal(t, StateOpen, b.State())
	require.ErrorIs(t, b.Execute(succeed), ErrCircuitOpen)

	b.Reset()
	assert.Equal(t, StateClosed, b.State())
	assert.NoError(t, b.Execute(succeed))
	assert.Equal(t, []string{"closed->open", "open->closed"}, transitions)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "unknown", State(9).String())
}
