package service

import (
	"context"

	"karkandu/internal/apperr"
	"karkandu/internal/httpapi/dto"
	"karkandu/internal/httpapi/models"
	"karkandu/internal/httpapi/repository"
)

type InteractionService interface {
	Track(ctx context.Context, viewerID string, input dto.TrackInteractionDTO) error
}

type interactionService struct {
	interactions repository.InteractionRepository
	blogs        repository.BlogRepository
}

func NewInteractionService(interactions repository.InteractionRepository, blogs repository.BlogRepository) InteractionService {
	return &interactionService{interactions: interactions, blogs: blogs}
}

// Track appends one interaction event. Guests may track; viewerID is empty
// for them. Duration only applies to reads and must not be negative.
func (s *interactionService) Track(ctx context.Context, viewerID string, input dto.TrackInteractionDTO) error {
	if err := validateID(input.BlogID, "blog id"); err != nil {
		return err
	}
	if !models.ValidInteractionType(input.Type) {
		return apperr.Newf(apperr.ErrInvalid, "unknown interaction type %q", input.Type)
	}

	var duration int64
	if input.Type == models.InteractionRead && input.Duration != nil {
		if *input.Duration < 0 {
			return apperr.New(apperr.ErrInvalid, "duration must not be negative")
		}
		duration = *input.Duration
	}

	if _, err := s.blogs.GetByID(ctx, input.BlogID); err != nil {
		return orNotFound(err, "blog not found")
	}

	interaction := &models.Interaction{
		BlogID:   input.BlogID,
		Type:     input.Type,
		Duration: duration,
	}
	if viewerID != "" {
		userID := viewerID
		interaction.UserID = &userID
	}

	return s.interactions.Create(ctx, interaction)
}
