// Package common defines shared constants and sentinel errors used across
// the server, the transports and the CLI client. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors. Transports map exactly these four (plus
	// ErrorInternal) to boundary codes.
	ErrorValidation      = errors.New("validation error")
	ErrorUnauthenticated = errors.New("unauthenticated")
	ErrorForbidden       = errors.New("forbidden")
	ErrorInternal        = errors.New("internal error")

	// Token errors. Tampered, malformed and expired tokens all wrap this one.
	ErrInvalidToken = errors.New("invalid token")
)

// PublicError pairs one of the sentinels above with a message that is safe to
// show to clients. errors.Is matches the sentinel through Unwrap.
type PublicError struct {
	Kind    error
	Message string
}

func (e *PublicError) Error() string { return e.Message }

func (e *PublicError) Unwrap() error { return e.Kind }

// NewPublicError returns a PublicError of kind with a client-facing message.
func NewPublicError(kind error, message string) error {
	return &PublicError{Kind: kind, Message: message}
}

// PublicMessage returns the client-facing message carried by err, or
// fallback when err holds none.
func PublicMessage(err error, fallback string) string {
	var pe *PublicError
	if errors.As(err, &pe) && pe.Message != "" {
		return pe.Message
	}
	return fallback
}
