package envelope

// Kind classifies why an invocation failed (or would have failed, when a
// fallback was substituted).
type Kind string

const (
	// KindUnconfigured means required credentials were absent or still set
	// to a placeholder sentinel. No network call was attempted.
	KindUnconfigured Kind = "unconfigured"
	// KindInvalidInput means the caller-supplied inputs failed validation.
	// No network call was attempted.
	KindInvalidInput Kind = "invalid_input"
	// KindTimeout means the call exceeded its bounded timeout.
	KindTimeout Kind = "timeout"
	// KindRateLimited means the provider throttled the call (HTTP 429).
	KindRateLimited Kind = "rate_limited"
	// KindAuthFailed means the provider rejected the credentials (401/403).
	KindAuthFailed Kind = "auth_failed"
	// KindNotFound means the provider reported the resource missing (404).
	KindNotFound Kind = "not_found"
	// KindServerError means the provider failed internally (5xx).
	KindServerError Kind = "server_error"
	// KindUnknown covers everything not classifiable above. The detail
	// string carries whatever diagnostics were available.
	KindUnknown Kind = "unknown"
)

// Retryable reports whether a failure of this kind may succeed on retry.
func (k Kind) Retryable() bool {
	switch k {
	case KindTimeout, KindRateLimited, KindServerError:
		return true
	default:
		return false
	}
}
