package llm

import (
	"errors"
)

// The client makes exactly one attempt per call, so every error it
// returns is classified for the caller: transient errors may succeed
// if the call is repeated, fatal ones will not.

// TransientError wraps a failure worth repeating, such as a network
// drop, a rate limit, or a provider 5xx.
type TransientError struct {
	err error
}

func (e *TransientError) Error() string {
	return e.err.Error()
}

func (e *TransientError) Unwrap() error {
	return e.err
}

// NewTransientError marks err as transient.
func NewTransientError(err error) error {
	return &TransientError{err: err}
}

// FatalError wraps a failure that repeating cannot fix, such as a
// malformed request, a missing provider, or bad credentials.
type FatalError struct {
	err error
}

func (e *FatalError) Error() string {
	return e.err.Error()
}

func (e *FatalError) Unwrap() error {
	return e.err
}

// NewFatalError marks err as fatal.
func NewFatalError(err error) error {
	return &FatalError{err: err}
}

// IsTransient reports whether err is classified as transient.
func IsTransient(err error) bool {
	var transient *TransientError
	return errors.As(err, &transient)
}

// IsFatal reports whether err is classified as fatal.
func IsFatal(err error) bool {
	var fatal *FatalError
	return errors.As(err, &fatal)
}
