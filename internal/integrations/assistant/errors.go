package assistant

import "errors"

var (
	// ErrUnavailable is returned when the generator is not configured or the
	// provider cannot be reached. Callers must fall back to static text.
	ErrUnavailable = errors.New("assistant client: generator unavailable")

	// ErrEmptyResponse is returned when the provider answers without text.
	ErrEmptyResponse = errors.New("assistant client: empty response")
)
