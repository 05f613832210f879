package resilience

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrCircuitOpen     = errors.New("circuit breaker is open")
	ErrTooManyRequests = errors.New("too many requests")
)

// State represents the circuit breaker state
type State int

const (
	StateClosed State = iota
	StateHalfOpen
	StateOpen
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateHalfOpen:
		return "half-open"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Settings configures the circuit breaker behavior
type Settings struct {
	// MaxRequests is the number of trial requests allowed while half-open
	MaxRequests uint32
	// Interval clears closed-state counts periodically; zero keeps them forever
	Interval time.Duration
	// Timeout is how long the breaker stays open before allowing trial requests
	Timeout time.Duration
	// ReadyToTrip decides, after a failure while closed, whether to open
	ReadyToTrip func(counts Counts) bool
	// IsFailure classifies an error; nil treats every non-nil error as a failure
	IsFailure func(err error) bool
	// OnStateChange is called whenever the state changes
	OnStateChange func(name string, from State, to State)
}

// Counts holds request statistics for the current generation
type Counts struct {
	Requests             uint32
	TotalSuccesses       uint32
	TotalFailures        uint32
	ConsecutiveSuccesses uint32
	ConsecutiveFailures  uint32
}

// Breaker guards calls to one upstream
type Breaker struct {
	name     string
	settings Settings
	now      func() time.Time

	mu         sync.Mutex
	state      State
	generation uint64
	counts     Counts
	expiry     time.Time
}

// New creates a circuit breaker with the given settings
func New(name string, settings Settings) *Breaker {
	if settings.MaxRequests == 0 {
		settings.MaxRequests = 1
	}
	if settings.Timeout == 0 {
		settings.Timeout = 60 * time.Second
	}
	if settings.ReadyToTrip == nil {
		settings.ReadyToTrip = func(counts Counts) bool {
			return counts.ConsecutiveFailures > 5
		}
	}
	if settings.IsFailure == nil {
		settings.IsFailure = func(err error) bool { return err != nil }
	}

	b := &Breaker{
		name:     name,
		settings: settings,
		now:      time.Now,
	}
	b.newGeneration(b.now())
	return b
}

// Name returns the name of the circuit breaker
func (b *Breaker) Name() string {
	return b.name
}

// State returns the current state of the circuit breaker
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	state, _ := b.currentState(b.now())
	return state
}

// Counts returns a copy of the current counts
func (b *Breaker) Counts() Counts {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.counts
}

// Reset closes the breaker and clears its counts
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	if b.state != StateClosed {
		b.setState(StateClosed, now)
		return
	}
	b.newGeneration(now)
}

// Execute runs fn if the breaker accepts the request
func (b *Breaker) Execute(fn func() error) error {
	_, err := Do(b, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// Do runs fn through the breaker and returns its result
func Do[T any](b *Breaker, fn func() (T, error)) (T, error) {
	var zero T

	generation, err := b.beforeRequest()
	if err != nil {
		return zero, err
	}

	defer func() {
		if e := recover(); e != nil {
			b.afterRequest(generation, false)
			panic(e)
		}
	}()

	result, err := fn()
	b.afterRequest(generation, !b.settings.IsFailure(err))
	return result, err
}

func (b *Breaker) beforeRequest() (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	state, generation := b.currentState(b.now())

	switch {
	case state == StateOpen:
		return generation, ErrCircuitOpen
	case state == StateHalfOpen && b.counts.Requests >= b.settings.MaxRequests:
		return generation, ErrTooManyRequests
	}

	b.counts.Requests++
	return generation, nil
}

func (b *Breaker) afterRequest(before uint64, success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	state, generation := b.currentState(now)
	if generation != before {
		return
	}

	if success {
		b.counts.TotalSuccesses++
		b.counts.ConsecutiveSuccesses++
		b.counts.ConsecutiveFailures = 0
		if state == StateHalfOpen && b.counts.ConsecutiveSuccesses >= b.settings.MaxRequests {
			b.setState(StateClosed, now)
		}
		return
	}

	b.counts.TotalFailures++
	b.counts.ConsecutiveFailures++
	b.counts.ConsecutiveSuccesses = 0
	switch state {
	case StateClosed:
		if b.settings.ReadyToTrip(b.counts) {
			b.setState(StateOpen, now)
		}
	case StateHalfOpen:
		b.setState(StateOpen, now)
	}
}

func (b *Breaker) currentState(now time.Time) (State, uint64) {
	switch b.state {
	case StateClosed:
		if !b.expiry.IsZero() && b.expiry.Before(now) {
			b.newGeneration(now)
		}
	case StateOpen:
		if b.expiry.Before(now) {
			b.setState(StateHalfOpen, now)
		}
	}
	return b.state, b.generation
}

func (b *Breaker) setState(state State, now time.Time) {
	if b.state == state {
		return
	}

	prev := b.state
	b.state = state
	b.newGeneration(now)

	if b.settings.OnStateChange != nil {
		b.settings.OnStateChange(b.name, prev, state)
	}
}

// newGeneration resets counts and computes the expiry for the current state
func (b *Breaker) newGeneration(now time.Time) {
	b.generation++
	b.counts = Counts{}

	switch b.state {
	case StateClosed:
		if b.settings.Interval > 0 {
			b.expiry = now.Add(b.settings.Interval)
		} else {
			b.expiry = time.Time{}
		}
	case StateOpen:
		b.expiry = now.Add(b.settings.Timeout)
	default:
		b.expiry = time.Time{}
	}
}
