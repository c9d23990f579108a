// Package api provides the HTTP handlers for the study API.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/phrazzld/frequency-api/internal/audio"
	"github.com/phrazzld/frequency-api/internal/generation"
	"github.com/phrazzld/frequency-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Bad input
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, generation.ErrEmptyInput),
		errors.Is(err, audio.ErrEmptyText):
		return http.StatusBadRequest

	// Not found
	case errors.Is(err, store.ErrArtifactNotFound):
		return http.StatusNotFound

	// Transient upstream failures: retriable
	case errors.Is(err, generation.ErrTransientFailure):
		return http.StatusBadGateway

	// Permanent generation failures
	case errors.Is(err, generation.ErrContentBlocked),
		errors.Is(err, generation.ErrInvalidResponse),
		errors.Is(err, generation.ErrGenerationFailed):
		return http.StatusBadGateway

	// Caller went away
	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly message for the
// error. Internal detail stays in the logs.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request"

	case errors.Is(err, generation.ErrEmptyInput), errors.Is(err, audio.ErrEmptyText):
		return "Text cannot be empty"

	case errors.Is(err, store.ErrArtifactNotFound):
		return "Not found"

	case errors.Is(err, generation.ErrTransientFailure):
		return "Content generation temporarily unavailable, try again"

	case errors.Is(err, generation.ErrContentBlocked):
		return "Content generation was blocked"

	case errors.Is(err, generation.ErrInvalidResponse),
		errors.Is(err, generation.ErrGenerationFailed):
		return "Content generation failed"

	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "Request cancelled"

	default:
		return "An unexpected error occurred"
	}
}
