// Package apperrors defines the error taxonomy shared by the storage
// boundaries and the workflows built on top of them.
package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound reports that a referenced row or blob does not exist. It is a
// distinct condition from transport failure.
var ErrNotFound = errors.New("not found")

// AuthReason classifies authentication failures.
type AuthReason string

const (
	ReasonInvalidCredentials AuthReason = "invalid_credentials"
	ReasonTransport          AuthReason = "transport"
	ReasonUnauthorized       AuthReason = "unauthorized"
)

// AuthError is an authentication or authorization failure.
type AuthError struct {
	Reason AuthReason
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("auth: %s", e.Reason)
}

func (e *AuthError) Unwrap() error { return e.Err }

// NewAuthError wraps err with an authentication failure reason.
func NewAuthError(reason AuthReason, err error) *AuthError {
	return &AuthError{Reason: reason, Err: err}
}

// ValidationError reports missing or malformed input, recoverable by the
// caller correcting it.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

// RemoteError is a generic backing-store failure (network, permission, or
// anything not otherwise classified).
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote: %s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// NewRemoteError wraps a backing-store failure with the operation name.
func NewRemoteError(op string, err error) *RemoteError {
	return &RemoteError{Op: op, Err: err}
}

// IsNotFound reports whether err is, or wraps, ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
