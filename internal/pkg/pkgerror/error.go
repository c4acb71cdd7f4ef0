package pkgerror

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound indicates that the requested row or key does not exist.
	ErrNotFound = errors.New("resource not found")
)

// Type classifies errors into high-level buckets used by the application.
type Type int

const (
	TypeServer Type = iota // Server-side errors (database, cache or renderer failures).
	TypeLookup             // A named collaborator or resource could not be resolved.
)

func (t Type) String() string {
	switch t {
	case TypeServer:
		return "ERROR_TYPE_SERVER"
	case TypeLookup:
		return "ERROR_TYPE_LOOKUP"
	default:
		return "ERROR_TYPE_UNKNOWN"
	}
}

// Code is a stable identifier used for mapping errors to HTTP status codes.
type Code int

const (
	CodeInternal    Code = iota // Internal or unspecified error.
	CodeNotFound                // Row, collaborator or resource missing.
	CodeUnavailable             // Dependency unreachable.
	CodeTimeout                 // Deadline exceeded while waiting on a dependency.
)

func (c Code) String() string {
	switch c {
	case CodeNotFound:
		return "ERROR_CODE_NOT_FOUND"
	case CodeUnavailable:
		return "ERROR_CODE_UNAVAILABLE"
	case CodeTimeout:
		return "ERROR_CODE_TIMEOUT"
	default:
		return "ERROR_CODE_INTERNAL"
	}
}

// Error is a structured error used across the application.
//
// It can wrap an underlying error while also carrying a user-facing message,
// a high-level type, and a stable error code.
type Error struct {
	err     error
	msg     string
	errType Type
	code    Code
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.err != nil {
		return e.err.Error()
	}

	if e.msg != "" {
		return e.msg
	}

	switch e.errType {
	case TypeLookup:
		return "Lookup failed"
	case TypeServer:
		return "Internal error"
	default:
		return "Unknown error"
	}
}

// String returns a verbose representation of the error for debugging/logging.
func (e *Error) String() string {
	return fmt.Sprintf(
		"Error Type: %s, Code: %s, Message: %s, Underlying Error: %v",
		e.errType.String(),
		e.code.String(),
		e.msg,
		e.err,
	)
}

// Msg returns the user-facing error message, if set.
func (e *Error) Msg() string {
	return e.msg
}

// Type returns the high-level error type.
func (e *Error) Type() Type {
	return e.errType
}

// Code returns the stable error code.
func (e *Error) Code() Code {
	return e.code
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.err
}

// StatusCode maps the error code to an HTTP status code.
func (e *Error) StatusCode() int {
	switch e.code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	case CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func new(err error, msg string, et Type, code Code) error {
	return &Error{err: err, msg: msg, errType: et, code: code}
}

// NewServer creates a server-type error with the provided error.
//
// Deadline and cancellation errors keep their own codes so that a slow
// database shows up as a timeout instead of a generic failure.
func NewServer(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return new(err, "Dependency timed out", TypeServer, CodeTimeout)
	}
	return new(err, "Internal server error", TypeServer, CodeInternal)
}

// NewUnavailable marks a dependency that could not be reached.
func NewUnavailable(err error) error {
	return new(err, "Service unavailable", TypeServer, CodeUnavailable)
}

// NewLookup creates an error for a collaborator or resource that is not registered.
func NewLookup(err error) error {
	return new(err, "Not found", TypeLookup, CodeNotFound)
}

// Normalize returns err as an *Error, wrapping plain errors as server errors.
func Normalize(err error) error {
	if err == nil {
		return nil
	}

	var perr *Error
	if errors.As(err, &perr) {
		return perr
	}
	return NewServer(err)
}
