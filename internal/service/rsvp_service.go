package service

import (
	"context"
	"fmt"

	"event_rsvp/internal/model"
	"event_rsvp/internal/repository"
	"event_rsvp/internal/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RSVPService handles the public household lookup and confirmation
type RSVPService interface {
	Search(ctx context.Context, clientIP, phone string) ([]model.GuestSummary, error)
	Confirm(ctx context.Context, phone string, guestIDs []uuid.UUID) error
}

type rsvpService struct {
	repo    repository.GuestRepository
	limiter Limiter
	log     zerolog.Logger
}

// NewRSVPService creates a new RSVPService
func NewRSVPService(repo repository.GuestRepository, limiter Limiter, log zerolog.Logger) RSVPService {
	return &rsvpService{
		repo:    repo,
		limiter: limiter,
		log:     log.With().Str("component", "rsvp").Logger(),
	}
}

// Search returns the household for phone. An unknown phone yields an empty
// list, never an error.
func (s *rsvpService) Search(ctx context.Context, clientIP, phone string) ([]model.GuestSummary, error) {
	if res := s.limiter.Check(clientIP); !res.Allowed {
		s.log.Warn().Str("ip", clientIP).Msg("guest search rate limit exceeded")
		return nil, &RateLimitError{RetryAfterSeconds: res.RetryAfterSeconds()}
	}

	if phone == "" {
		return nil, ErrInvalidPhone
	}
	cleanPhone, err := normalizeValidPhone(phone)
	if err != nil {
		return nil, err
	}

	guests, err := s.repo.FindByPhone(ctx, cleanPhone)
	if err != nil {
		return nil, fmt.Errorf("failed to search guests: %w", err)
	}

	summaries := make([]model.GuestSummary, 0, len(guests))
	for _, g := range guests {
		summaries = append(summaries, model.GuestSummary{ID: g.ID, Name: g.Name, Confirmed: g.Confirmed})
	}

	s.log.Info().Str("ip", clientIP).Int("found", len(summaries)).Msg("guest search")
	return summaries, nil
}

// Confirm replaces the confirmation state of the whole household: selected
// guests become confirmed, every other guest of the phone becomes unconfirmed.
// Nothing is written if any selected id belongs to another household.
func (s *rsvpService) Confirm(ctx context.Context, phone string, guestIDs []uuid.UUID) error {
	cleanPhone := utils.NormalizePhone(phone)
	if cleanPhone == "" || guestIDs == nil {
		return ErrInvalidRequest
	}

	household, err := s.repo.FindByPhone(ctx, cleanPhone)
	if err != nil {
		return fmt.Errorf("failed to load household: %w", err)
	}

	valid := make(map[uuid.UUID]bool, len(household))
	for _, g := range household {
		valid[g.ID] = true
	}

	selected := make(map[uuid.UUID]bool, len(guestIDs))
	for _, id := range guestIDs {
		if !valid[id] {
			s.log.Warn().Str("phone", utils.MaskPhone(cleanPhone)).Str("guest_id", id.String()).Msg("rsvp with guest id outside household")
			return ErrInvalidGuestIDs
		}
		selected[id] = true
	}

	updates := make([]model.ConfirmationUpdate, 0, len(household))
	for _, g := range household {
		updates = append(updates, model.ConfirmationUpdate{ID: g.ID, Confirmed: selected[g.ID]})
	}
	if len(updates) == 0 {
		return nil
	}

	if err := s.repo.SetHouseholdConfirmation(ctx, cleanPhone, updates); err != nil {
		return fmt.Errorf("failed to save rsvp: %w", err)
	}

	s.log.Info().Str("phone", utils.MaskPhone(cleanPhone)).
		Int("confirmed", len(selected)).Int("total", len(household)).Msg("rsvp updated")
	return nil
}

func normalizeValidPhone(phone string) (string, error) {
	clean := utils.NormalizePhone(phone)
	if len(clean) < model.MinPhoneDigits || len(clean) > model.MaxPhoneDigits {
		return "", ErrInvalidPhone
	}
	return clean, nil
}
