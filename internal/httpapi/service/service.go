// Package service holds the business rules between the HTTP handlers and the
// repositories. Services return apperr-tagged errors; handlers map those to
// status codes without looking at message text.
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"karkandu/internal/apperr"
	"karkandu/internal/httpapi/models"
)

// Notifier is the slice of the notification outbox the services depend on.
// Calls are fire-and-forget; delivery happens on the outbox workers.
type Notifier interface {
	BlogPublished(blog *models.Blog, authorName string)
	CommentReplied(parent *models.Comment, reply *models.Comment, replierName string)
	CommentLiked(comment *models.Comment, likerID, likerName string)
}

// Translator produces the Tamil rendering of English text, best effort.
type Translator interface {
	ToTamil(ctx context.Context, text string) string
}

// Newsletter sends the new-post announcement to subscribers.
type Newsletter interface {
	SendNewsletter(recipients []string, blogTitle, blogSlug string) error
}

// validateID rejects anything that is not a UUID before it reaches the
// database, so malformed ids are a 400 instead of a silent empty result.
func validateID(id, field string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperr.Newf(apperr.ErrInvalid, "invalid %s", field)
	}
	return nil
}

// orNotFound converts gorm's missing-record error into a tagged not-found
// with a caller-supplied message; other errors pass through untouched.
func orNotFound(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.New(apperr.ErrNotFound, msg)
	}
	return err
}
