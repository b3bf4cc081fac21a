package dto

import (
	"errors"
	"fmt"
)

// ErrorKind discriminates expected failure modes so callers can branch
// without inspecting message text.
type ErrorKind string

const (
	// ErrKindInput marks degenerate parameters (entry = stop, risk = 0, ...).
	ErrKindInput ErrorKind = "input"
	// ErrKindData marks empty or insufficient bar history.
	ErrKindData ErrorKind = "data"
	// ErrKindState marks insufficient cash or holdings on buy/sell.
	ErrKindState ErrorKind = "state"
	// ErrKindExternal marks data-provider failures, wrapped with their cause.
	ErrKindExternal ErrorKind = "external"
)

// Error is the tagged error returned across the core boundary.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func NewInputError(format string, args ...interface{}) *Error {
	return &Error{Kind: ErrKindInput, Message: fmt.Sprintf(format, args...)}
}

func NewDataError(format string, args ...interface{}) *Error {
	return &Error{Kind: ErrKindData, Message: fmt.Sprintf(format, args...)}
}

func NewStateError(format string, args ...interface{}) *Error {
	return &Error{Kind: ErrKindState, Message: fmt.Sprintf(format, args...)}
}

// NewExternalError wraps a collaborator failure with its original cause attached.
func NewExternalError(message string, cause error) *Error {
	return &Error{Kind: ErrKindExternal, Message: message, Cause: cause}
}

// KindOf extracts the kind from an error chain. Untagged errors are treated
// as external failures.
func KindOf(err error) ErrorKind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ErrKindExternal
}
