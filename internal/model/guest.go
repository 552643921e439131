package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	MaxGuestNameLength = 100
	MinPhoneDigits     = 10
	MaxPhoneDigits     = 11
)

// Guest represents one invited person. Guests sharing a phone form a household.
type Guest struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"` // digits only
	Confirmed bool      `json:"confirmed"`
	CreatedAt time.Time `json:"created_at"`
}

// GuestSummary is the public view returned by a phone lookup
type GuestSummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Confirmed bool      `json:"confirmed"`
}

// ConfirmationUpdate is a single confirmed flag write inside a household RSVP
type ConfirmationUpdate struct {
	ID        uuid.UUID
	Confirmed bool
}

// CreateGuestRequest is used by the admin add action and each import row
type CreateGuestRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// ImportRow is a pre-parsed CSV candidate row
type ImportRow = CreateGuestRequest

// UpdateGuestRequest carries a partial admin edit
type UpdateGuestRequest struct {
	Name      *string `json:"name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Confirmed *bool   `json:"confirmed,omitempty"`
}

// RejectedRow describes an import row that failed validation
type RejectedRow struct {
	Row    int    `json:"row"` // 1-based position in the submitted rows
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Reason string `json:"reason"`
}

// ImportResult summarizes a bulk import
type ImportResult struct {
	Imported int           `json:"imported"`
	Rejected []RejectedRow `json:"rejected"`
}

// GuestStats backs the admin panel counters
type GuestStats struct {
	Total     int64 `json:"total"`
	Confirmed int64 `json:"confirmed"`
	Pending   int64 `json:"pending"`
}
