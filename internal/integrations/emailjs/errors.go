package emailjs

import "errors"

var (
	// ErrNotConfigured is returned when the tenant has no mail credentials.
	ErrNotConfigured = errors.New("emailjs client: tenant mail credentials not configured")

	// ErrInternal is returned for request-building and transport failures.
	ErrInternal = errors.New("emailjs client: internal error")

	// ErrSendRejected is returned when the provider rejects the message.
	ErrSendRejected = errors.New("emailjs client: send rejected")
)
