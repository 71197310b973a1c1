// Package resilience provides the retry and client-side rate limiting
// primitives used by the call invoker.
//
// Retry is deliberately conservative: the invoker only ever configures a
// single retry after a fixed backoff for HTTP 429 responses. The rate
// limiter is a per-client token bucket; it throttles this process only
// and makes no cross-process coordination claims.
package resilience
