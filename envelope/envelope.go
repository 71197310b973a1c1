package envelope

import (
	"fmt"
	"time"
)

// Result is the envelope returned by every invocation.
//
// Invariants, enforced by the constructors below:
//   - Success is true iff ErrorKind is empty.
//   - Success implies Data is set (possibly an empty payload).
//   - UsedFallback implies Success; fallback data is never reported as a
//     failure, and real failures never carry data.
type Result struct {
	// Success reports whether the caller received usable data.
	Success bool `json:"success"`
	// Data is the structured payload. Present iff Success.
	Data any `json:"data,omitempty"`
	// ErrorKind classifies the failure. Present iff not Success.
	ErrorKind Kind `json:"error_kind,omitempty"`
	// ErrorDetail preserves the underlying diagnostic message.
	ErrorDetail string `json:"error_detail,omitempty"`
	// UsedFallback is true when Data is a substituted mock/static value
	// rather than a real provider response.
	UsedFallback bool `json:"used_fallback"`

	// Provider and Operation identify the logical call.
	Provider  string `json:"provider,omitempty"`
	Operation string `json:"operation,omitempty"`
	// CallID uniquely identifies this invocation for log correlation.
	CallID string `json:"call_id,omitempty"`
	// Duration is the wall-clock time the invocation took.
	Duration time.Duration `json:"-"`
}

// OK builds a successful result carrying a real provider response.
func OK(data any) Result {
	return Result{Success: true, Data: data}
}

// Fallback builds a successful result carrying substituted data. The
// UsedFallback flag is what lets downstream consumers tell simulated
// values apart from real ones.
func Fallback(data any) Result {
	return Result{Success: true, Data: data, UsedFallback: true}
}

// Failure builds a failed result of the given kind.
func Failure(kind Kind, detail string) Result {
	if kind == "" {
		kind = KindUnknown
	}
	return Result{ErrorKind: kind, ErrorDetail: detail}
}

// Failuref builds a failed result with a formatted detail message.
func Failuref(kind Kind, format string, args ...any) Result {
	return Failure(kind, fmt.Sprintf(format, args...))
}

// Err converts a failed result into an error. Returns nil for successes.
func (r Result) Err() error {
	if r.Success {
		return nil
	}
	return &ResultError{Kind: r.ErrorKind, Detail: r.ErrorDetail, Provider: r.Provider, Operation: r.Operation}
}

// Retryable reports whether the failure (if any) may succeed on retry.
func (r Result) Retryable() bool {
	return !r.Success && r.ErrorKind.Retryable()
}

// ResultError is the error form of a failed Result.
type ResultError struct {
	Kind      Kind
	Detail    string
	Provider  string
	Operation string
}

// Error implements the error interface.
func (e *ResultError) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("%s/%s: %s: %s", e.Provider, e.Operation, e.Kind, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}
