// Package errors provides standardized domain errors that express business intent
// rather than transport details. These errors are returned by services and the
// tokenization coordinator and mapped to user-visible states by the hosting screen.
package errors

import (
	"errors"
	"fmt"
)

// Standard domain errors used across all modules.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates the backend rejected the supplied credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrAuthTypeUnsupported indicates the backend advertises only authentication
	// types this client does not implement.
	ErrAuthTypeUnsupported = errors.New("auth type unsupported")

	// ErrNetworkUnavailable indicates a step failed due to connectivity.
	// Profiling-session failures are remapped to this kind before surfacing.
	ErrNetworkUnavailable = errors.New("internet connection unavailable")

	// ErrRemoteRejected indicates the backend explicitly declined tokenization.
	ErrRemoteRejected = errors.New("rejected by payment gateway")

	// ErrSubmissionInFlight indicates a second submission was attempted while
	// one is still running on the same coordinator instance.
	ErrSubmissionInFlight = errors.New("submission already in flight")
)

// New creates a new error with the given message.
// This is a convenience wrapper around errors.New for consistency.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
// Use this to add context at each layer without losing the original error type.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted message while preserving the error chain.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's tree matches target.
// This is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
// This is a convenience wrapper around errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}
