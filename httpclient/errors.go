package httpclient

import (
	"errors"
	"fmt"

	"github.com/kbukum/callkit/envelope"
)

// ErrorCode classifies HTTP client errors.
type ErrorCode int

const (
	// CodeTimeout indicates a request or connection timeout.
	CodeTimeout ErrorCode = iota
	// CodeConnection indicates a connection failure (refused, DNS, etc).
	CodeConnection
	// CodeAuth indicates an authentication failure (401/403).
	CodeAuth
	// CodeNotFound indicates the resource was not found (404).
	CodeNotFound
	// CodeRateLimit indicates throttling (429).
	CodeRateLimit
	// CodeValidation indicates a client-side request building error or a
	// 4xx the provider attributes to the request.
	CodeValidation
	// CodeServer indicates a server-side failure (5xx).
	CodeServer
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case CodeTimeout:
		return "timeout"
	case CodeConnection:
		return "connection"
	case CodeAuth:
		return "auth"
	case CodeNotFound:
		return "not_found"
	case CodeRateLimit:
		return "rate_limit"
	case CodeValidation:
		return "validation"
	case CodeServer:
		return "server"
	default:
		return "unknown"
	}
}

// Kind maps the transport-level code onto the envelope taxonomy.
func (c ErrorCode) Kind() envelope.Kind {
	switch c {
	case CodeTimeout:
		return envelope.KindTimeout
	case CodeAuth:
		return envelope.KindAuthFailed
	case CodeNotFound:
		return envelope.KindNotFound
	case CodeRateLimit:
		return envelope.KindRateLimited
	case CodeValidation:
		return envelope.KindInvalidInput
	case CodeServer:
		return envelope.KindServerError
	default:
		// Connection failures carry no provider verdict.
		return envelope.KindUnknown
	}
}

// Error is a classified HTTP client error.
type Error struct {
	// StatusCode is the HTTP status (0 for transport-level failures).
	StatusCode int
	// Code classifies the failure.
	Code ErrorCode
	// Message describes the failure.
	Message string
	// Body is the raw response body, when a response was received.
	Body []byte
	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("httpclient: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("httpclient: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }

// statusError builds an *Error for a non-2xx status code.
func statusError(code ErrorCode, statusCode int, body []byte) *Error {
	return &Error{
		StatusCode: statusCode,
		Code:       code,
		Message:    fmt.Sprintf("HTTP %d", statusCode),
		Body:       body,
	}
}

// Classify converts a non-2xx status code into a typed error. Returns
// nil for 2xx.
func Classify(statusCode int, body []byte) *Error {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return nil
	case statusCode == 401 || statusCode == 403:
		return statusError(CodeAuth, statusCode, body)
	case statusCode == 404:
		return statusError(CodeNotFound, statusCode, body)
	case statusCode == 429:
		return statusError(CodeRateLimit, statusCode, body)
	case statusCode >= 400 && statusCode < 500:
		return statusError(CodeValidation, statusCode, body)
	default:
		return statusError(CodeServer, statusCode, body)
	}
}

// IsRateLimit reports whether err is a 429 classification.
func IsRateLimit(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == CodeRateLimit
}

// IsTimeout reports whether err is a timeout classification.
func IsTimeout(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == CodeTimeout
}
