package types

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode categorizes why a model probe failed
type ErrorCode string

const (
	ErrCodeUnknown      ErrorCode = "unknown"      // model not recognized by the service (404)
	ErrCodeForbidden    ErrorCode = "forbidden"    // access to the model denied (403)
	ErrCodeUnauthorized ErrorCode = "unauthorized" // missing or invalid credentials (401)
	ErrCodeInvalid      ErrorCode = "invalid"      // request rejected as malformed (400)
	ErrCodeRateLimited  ErrorCode = "rate_limited" // quota exhausted (429)
	ErrCodeServerError  ErrorCode = "server_error" // service-side failure (5xx)
	ErrCodeTimeout      ErrorCode = "timeout"      // probe missed its deadline
	ErrCodeError        ErrorCode = "error"        // anything else
)

// timeoutSignal is the exact message that marks a timeout failure.
const timeoutSignal = "timeout"

// ProbeError represents a standardized failure from a model probe
type ProbeError struct {
	Code        ErrorCode // Categorized failure reason
	Message     string    // Human-readable message
	StatusCode  int       // HTTP status code (0 if not applicable)
	Model       string    // Model the probe targeted
	RequestID   string    // Per-probe request ID if one was generated
	OriginalErr error     // Wrapped original error
}

// Error implements the error interface
func (e *ProbeError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("[%s] %s (status=%d, code=%s)", e.Model, e.Message, e.StatusCode, e.Code)
	}
	return fmt.Sprintf("[%s] %s (code=%s)", e.Model, e.Message, e.Code)
}

// Unwrap returns the original error for errors.Is/As
func (e *ProbeError) Unwrap() error {
	return e.OriginalErr
}

// IsRetryable returns true if the failure is potentially recoverable on a
// later run. The resolver itself never retries; this is advisory for callers.
func (e *ProbeError) IsRetryable() bool {
	switch e.Code {
	case ErrCodeRateLimited, ErrCodeServerError, ErrCodeTimeout:
		return true
	}
	return false
}

// WithStatusCode sets the status code field and returns the error for chaining
func (e *ProbeError) WithStatusCode(statusCode int) *ProbeError {
	e.StatusCode = statusCode
	return e
}

// WithRequestID sets the request ID field and returns the error for chaining
func (e *ProbeError) WithRequestID(requestID string) *ProbeError {
	e.RequestID = requestID
	return e
}

// WithOriginalErr sets the original error field and returns the error for chaining
func (e *ProbeError) WithOriginalErr(err error) *ProbeError {
	e.OriginalErr = err
	return e
}

// NewProbeError creates a new ProbeError
func NewProbeError(model string, code ErrorCode, message string) *ProbeError {
	return &ProbeError{
		Code:    code,
		Message: message,
		Model:   model,
	}
}

// NewStatusError creates a probe error classified from an HTTP status code
func NewStatusError(model string, statusCode int, message string) *ProbeError {
	return &ProbeError{
		Code:       ClassifyStatusCode(statusCode),
		Message:    message,
		Model:      model,
		StatusCode: statusCode,
	}
}

// NewTimeoutError creates a probe error for a missed deadline
func NewTimeoutError(model string) *ProbeError {
	return &ProbeError{
		Code:    ErrCodeTimeout,
		Message: timeoutSignal,
		Model:   model,
	}
}

// ClassifyStatusCode determines the failure reason from an HTTP status
func ClassifyStatusCode(statusCode int) ErrorCode {
	switch statusCode {
	case http.StatusNotFound:
		return ErrCodeUnknown
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusBadRequest:
		return ErrCodeInvalid
	case http.StatusTooManyRequests:
		return ErrCodeRateLimited
	default:
		if statusCode >= 500 {
			return ErrCodeServerError
		}
		return ErrCodeError
	}
}

// StatusCodeOf extracts the HTTP status code attached to err, looking through
// wrapped errors. The code may sit on a *ProbeError or on any error exposing
// a StatusCode() int method. Returns 0 when none is attached.
func StatusCodeOf(err error) int {
	var pe *ProbeError
	if errors.As(err, &pe) && pe.StatusCode > 0 {
		return pe.StatusCode
	}
	var sc interface{ StatusCode() int }
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	return 0
}

// ClassifyProbeError maps an arbitrary probe failure to its ErrorCode.
// An explicit code on a *ProbeError wins, then an attached HTTP status code,
// then the timeout signal; everything else is the generic error code.
// A nil error yields the empty code.
func ClassifyProbeError(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var pe *ProbeError
	if errors.As(err, &pe) && pe.Code != "" {
		return pe.Code
	}
	if status := StatusCodeOf(err); status > 0 {
		return ClassifyStatusCode(status)
	}
	if IsTimeout(err) {
		return ErrCodeTimeout
	}
	return ErrCodeError
}

// IsTimeout reports whether err carries the timeout signal, either as a
// context deadline or as an error whose message is exactly "timeout".
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return err.Error() == timeoutSignal
}
