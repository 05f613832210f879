// Package fetch retrieves wiki data pages.
//
// Built on go-resty/resty over a go-retryablehttp pooled transport:
//   - Per-request deadline from the caller's context plus a client timeout
//   - Optional transport retries with backoff (off by default)
//   - Token-bucket rate limiting shared by every fetch
//   - A circuit breaker that fails fast once the wiki stops answering
//
// Non-2xx responses are errors. Callers that want to fake the wiki implement
// the Fetcher interface.
//
// Example Usage:
//
//	client := fetch.NewClient(fetch.Options{Timeout: 10 * time.Second})
//	body, err := client.Fetch(ctx, "https://wiki.supercombo.gg/w/Street_Fighter_6/Ryu/Data")
package fetch
