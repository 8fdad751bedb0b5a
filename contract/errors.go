package contract

import (
	"errors"
)

var (
	// ErrMissingArgument is the kind of error for a required argument field that is absent.
	ErrMissingArgument = errors.New("missing argument")

	// ErrInvalidArgument is the kind of error for an argument that is present but has the wrong shape or type.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMalformedAsset is the kind of error for a stored asset whose payload doesn't have the expected shape.
	ErrMalformedAsset = errors.New("malformed asset")

	// ErrNilLedger is returned when a contract is invoked without a ledger accessor.
	ErrNilLedger = errors.New("ledger accessor must not be nil")
)

// ContextError is a caller-visible contract failure.
//
// Error returns the exact message meant for the caller. The kind (one of the sentinels above)
// and an optional cause are reachable with errors.Is and errors.As.
type ContextError struct {
	kind    error
	message string
	cause   error
}

// NewContextError creates a ContextError of the given kind.
func NewContextError(kind error, message string) *ContextError {
	return &ContextError{kind: kind, message: message}
}

// WithCause returns a copy of the error that also wraps cause.
func (e *ContextError) WithCause(cause error) *ContextError {
	return &ContextError{kind: e.kind, message: e.message, cause: cause}
}

// Error implements the error interface.
func (e *ContextError) Error() string {
	return e.message
}

// Kind returns the sentinel this error is classified as.
func (e *ContextError) Kind() error {
	return e.kind
}

// Unwrap exposes the kind and the cause to errors.Is and errors.As.
func (e *ContextError) Unwrap() []error {
	if e.cause == nil {
		return []error{e.kind}
	}

	return []error{e.kind, e.cause}
}

// IsContextError reports whether err is, or wraps, a *ContextError.
func IsContextError(err error) bool {
	var contextErr *ContextError
	return errors.As(err, &contextErr)
}
