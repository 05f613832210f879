/*
Package resilience provides a circuit breaker for calls to the wiki.

# Overview

Twenty-odd data pages are fetched from the same host at once. When the host is
down every fetch would otherwise wait out its own timeout; the breaker opens
after repeated failures so the remaining fetches fail fast and the roster load
finishes with whatever it already has.

# Usage

	breaker := resilience.New("wiki", resilience.Settings{
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	body, err := resilience.Do(breaker, func() ([]byte, error) {
		return fetchPage(ctx, url)
	})

# States

  - Closed: requests pass through
  - Open: requests fail immediately with ErrCircuitOpen
  - Half-Open: up to MaxRequests trial requests decide whether to close again

	Closed --[failures]-> Open --[timeout]-> Half-Open --[successes]-> Closed
	                                           |
	                                       [failure]
	                                           v
	                                          Open
*/
package resilience
