package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel kinds carried through the service layer. Handlers map a kind to an
// HTTP status exactly once at the boundary instead of matching message text.
var (
	ErrInvalid      = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
)

// New returns an error of the given kind with a human-readable message.
func New(kind error, msg string) error {
	return fmt.Errorf("%s: %w", msg, kind)
}

// Newf is New with formatting.
func Newf(kind error, format string, args ...any) error {
	return New(kind, fmt.Sprintf(format, args...))
}

// Wrap attaches a kind to an underlying error, keeping both in the chain.
func Wrap(kind error, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", kind, err)
}

// StatusOf resolves the HTTP status for an error. Unclassified errors are 500.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the user-facing message for an error. Internal errors are
// masked so database details never reach the client.
func Message(err error) string {
	if StatusOf(err) == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}
