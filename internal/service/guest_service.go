package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"event_rsvp/internal/model"
	"event_rsvp/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// MaxImportRows bounds a single bulk import request
const MaxImportRows = 1000

// GuestService defines admin operations on the guest list
type GuestService interface {
	ListGuests(ctx context.Context) ([]model.Guest, error)
	AddGuest(ctx context.Context, req model.CreateGuestRequest) (*model.Guest, error)
	UpdateGuest(ctx context.Context, id uuid.UUID, req model.UpdateGuestRequest) (*model.Guest, error)
	DeleteGuest(ctx context.Context, id uuid.UUID) error
	ImportGuests(ctx context.Context, rows []model.ImportRow) (*model.ImportResult, error)
	GetStats(ctx context.Context) (*model.GuestStats, error)
	ExportGuestsCSV(ctx context.Context) (*bytes.Buffer, error)
}

type guestService struct {
	repo repository.GuestRepository
	log  zerolog.Logger
}

// NewGuestService creates a new GuestService
func NewGuestService(repo repository.GuestRepository, log zerolog.Logger) GuestService {
	return &guestService{
		repo: repo,
		log:  log.With().Str("component", "admin_guests").Logger(),
	}
}

// validateGuestInput trims the name, normalizes the phone and checks both
func validateGuestInput(name, phone string) (string, string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > model.MaxGuestNameLength {
		return "", "", ErrInvalidName
	}
	cleanPhone, err := normalizeValidPhone(phone)
	if err != nil {
		return "", "", err
	}
	return name, cleanPhone, nil
}

func (s *guestService) ListGuests(ctx context.Context) ([]model.Guest, error) {
	guests, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list guests: %w", err)
	}
	return guests, nil
}

func (s *guestService) AddGuest(ctx context.Context, req model.CreateGuestRequest) (*model.Guest, error) {
	name, phone, err := validateGuestInput(req.Name, req.Phone)
	if err != nil {
		return nil, err
	}

	guest := &model.Guest{Name: name, Phone: phone}
	if err := s.repo.Create(ctx, guest); err != nil {
		return nil, fmt.Errorf("failed to create guest in repo: %w", err)
	}

	s.log.Info().Str("guest_id", guest.ID.String()).Str("name", guest.Name).Msg("admin added guest")
	return guest, nil
}

func (s *guestService) UpdateGuest(ctx context.Context, id uuid.UUID, req model.UpdateGuestRequest) (*model.Guest, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find guest for update: %w", err)
	}
	if existing == nil {
		return nil, ErrGuestNotFound
	}

	name, phone := existing.Name, existing.Phone
	if req.Name != nil {
		name = *req.Name
	}
	if req.Phone != nil {
		phone = *req.Phone
	}
	name, phone, err = validateGuestInput(name, phone)
	if err != nil {
		return nil, err
	}

	existing.Name = name
	existing.Phone = phone
	if req.Confirmed != nil {
		existing.Confirmed = *req.Confirmed
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		// deleted after the lookup
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGuestNotFound
		}
		return nil, fmt.Errorf("failed to update guest in repo: %w", err)
	}

	s.log.Info().Str("guest_id", id.String()).Msg("admin updated guest")
	return existing, nil
}

// DeleteGuest removes a guest. Deleting an unknown id succeeds.
func (s *guestService) DeleteGuest(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete guest in repo: %w", err)
	}
	if !deleted {
		s.log.Warn().Str("guest_id", id.String()).Msg("delete of unknown guest")
		return nil
	}
	s.log.Info().Str("guest_id", id.String()).Msg("admin deleted guest")
	return nil
}

// ImportGuests validates every row like AddGuest, collects the rejected ones
// and inserts the accepted ones in a single batch.
func (s *guestService) ImportGuests(ctx context.Context, rows []model.ImportRow) (*model.ImportResult, error) {
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	if len(rows) > MaxImportRows {
		return nil, ErrTooManyRows
	}

	result := &model.ImportResult{Rejected: []model.RejectedRow{}}
	accepted := make([]*model.Guest, 0, len(rows))
	for i, row := range rows {
		name, phone, err := validateGuestInput(row.Name, row.Phone)
		if err != nil {
			result.Rejected = append(result.Rejected, model.RejectedRow{
				Row:    i + 1,
				Name:   row.Name,
				Phone:  row.Phone,
				Reason: rejectReason(err),
			})
			continue
		}
		accepted = append(accepted, &model.Guest{Name: name, Phone: phone})
	}

	if err := s.repo.CreateMany(ctx, accepted); err != nil {
		return nil, fmt.Errorf("failed to import guests: %w", err)
	}
	result.Imported = len(accepted)

	s.log.Info().Int("imported", result.Imported).Int("rejected", len(result.Rejected)).Msg("admin imported guests")
	return result, nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidName):
		return "invalid name"
	case errors.Is(err, ErrInvalidPhone):
		return "invalid phone"
	default:
		return err.Error()
	}
}

func (s *guestService) GetStats(ctx context.Context) (*model.GuestStats, error) {
	stats, err := s.repo.CountStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get guest stats: %w", err)
	}
	return stats, nil
}

func (s *guestService) ExportGuestsCSV(ctx context.Context) (*bytes.Buffer, error) {
	guests, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch guests for CSV export: %w", err)
	}

	buffer := &bytes.Buffer{}
	writer := csv.NewWriter(buffer)

	header := []string{"ID", "Name", "Phone", "Confirmed", "CreatedAt"}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, g := range guests {
		row := []string{
			g.ID.String(),
			g.Name,
			g.Phone,
			strconv.FormatBool(g.Confirmed),
			g.CreatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("error flushing CSV writer: %w", err)
	}
	return buffer, nil
}
