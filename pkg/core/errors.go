package core

import (
	"errors"
	"fmt"
)

// ErrorKind classifies driver failures for retry and reporting decisions.
type ErrorKind int

const (
	ErrKindNone       ErrorKind = iota
	ErrKindConnection           // backend unreachable, session rejected
	ErrKindSession              // operation issued with no active session
	ErrKindElement              // selector resolved to nothing
	ErrKindSelector             // selector not representable on this backend
	ErrKindAction               // session alive, specific action rejected
	ErrKindTimeout              // explicit deadline exceeded
	ErrKindResource             // resource exhaustion
)

// String returns the string representation of ErrorKind.
func (k ErrorKind) String() string {
	switch k {
	case ErrKindNone:
		return "none"
	case ErrKindConnection:
		return "connection"
	case ErrKindSession:
		return "session"
	case ErrKindElement:
		return "element"
	case ErrKindSelector:
		return "selector"
	case ErrKindAction:
		return "action"
	case ErrKindTimeout:
		return "timeout"
	case ErrKindResource:
		return "resource"
	default:
		return "unknown"
	}
}

// DriverError is the narrow error set every adapter normalizes transport
// and parsing failures into before they cross the Driver interface. Callers
// never see backend-specific error shapes.
type DriverError struct {
	Kind    ErrorKind
	Code    string // machine-readable: element_not_found, timeout, ...
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *DriverError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *DriverError) Unwrap() error {
	return e.Cause
}

// Is matches DriverErrors by code so wrapped copies compare equal to the
// package sentinels.
func (e *DriverError) Is(target error) bool {
	var de *DriverError
	if errors.As(target, &de) {
		return e.Code == de.Code
	}
	return false
}

// WithCause returns a copy of the error with the given cause attached.
func (e *DriverError) WithCause(cause error) *DriverError {
	return &DriverError{
		Kind:    e.Kind,
		Code:    e.Code,
		Message: e.Message,
		Cause:   cause,
	}
}

// WithMessage returns a copy of the error with a custom message.
func (e *DriverError) WithMessage(msg string) *DriverError {
	return &DriverError{
		Kind:    e.Kind,
		Code:    e.Code,
		Message: msg,
		Cause:   e.Cause,
	}
}

// Predefined errors forming the cross-backend taxonomy.
var (
	ErrConnectionFailed = &DriverError{
		Kind:    ErrKindConnection,
		Code:    "connection_failed",
		Message: "could not connect to automation backend",
	}
	ErrLaunchFailed = &DriverError{
		Kind:    ErrKindConnection,
		Code:    "launch_failed",
		Message: "backend rejected session creation",
	}
	ErrNotConnected = &DriverError{
		Kind:    ErrKindSession,
		Code:    "not_connected",
		Message: "no active session",
	}
	ErrElementNotFound = &DriverError{
		Kind:    ErrKindElement,
		Code:    "element_not_found",
		Message: "element not found",
	}
	ErrInvalidSelector = &DriverError{
		Kind:    ErrKindSelector,
		Code:    "invalid_selector",
		Message: "selector has no strategy for this backend",
	}
	ErrActionFailed = &DriverError{
		Kind:    ErrKindAction,
		Code:    "action_failed",
		Message: "backend rejected the action",
	}
	ErrTimeout = &DriverError{
		Kind:    ErrKindTimeout,
		Code:    "timeout",
		Message: "operation timed out",
	}
	ErrResourceExhausted = &DriverError{
		Kind:    ErrKindResource,
		Code:    "resource_exhausted",
		Message: "no resources available",
	}
)

// NewDriverError creates a DriverError outside the predefined set.
func NewDriverError(kind ErrorKind, code, message string) *DriverError {
	return &DriverError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}
