package repository

import (
	"context"
	"errors"
	"fmt"

	"event_rsvp/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of *pgxpool.Pool used by repositories
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// GuestRepository defines operations for guest data
type GuestRepository interface {
	FindAll(ctx context.Context) ([]model.Guest, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Guest, error)
	FindByPhone(ctx context.Context, phone string) ([]model.Guest, error)
	Create(ctx context.Context, guest *model.Guest) error
	CreateMany(ctx context.Context, guests []*model.Guest) error
	Update(ctx context.Context, guest *model.Guest) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	SetHouseholdConfirmation(ctx context.Context, phone string, updates []model.ConfirmationUpdate) error
	CountStats(ctx context.Context) (*model.GuestStats, error)
}

type guestRepository struct {
	db DBTX
}

// NewGuestRepository creates a new GuestRepository
func NewGuestRepository(db DBTX) GuestRepository {
	return &guestRepository{db: db}
}

const guestColumns = `id, name, phone, confirmed, created_at`

func scanGuests(rows pgx.Rows) ([]model.Guest, error) {
	defer rows.Close()

	guests := []model.Guest{}
	for rows.Next() {
		var g model.Guest
		if err := rows.Scan(&g.ID, &g.Name, &g.Phone, &g.Confirmed, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan guest row: %w", err)
		}
		guests = append(guests, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating guest rows: %w", err)
	}
	return guests, nil
}

// FindAll returns every guest, newest first
func (r *guestRepository) FindAll(ctx context.Context) ([]model.Guest, error) {
	sql := `SELECT ` + guestColumns + ` FROM guests ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query guests: %w", err)
	}
	return scanGuests(rows)
}

// FindByID retrieves a guest by its ID
func (r *guestRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Guest, error) {
	g := &model.Guest{}
	sql := `SELECT ` + guestColumns + ` FROM guests WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(&g.ID, &g.Name, &g.Phone, &g.Confirmed, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find guest by ID: %w", err)
	}
	return g, nil
}

// FindByPhone returns the household registered under a normalized phone
func (r *guestRepository) FindByPhone(ctx context.Context, phone string) ([]model.Guest, error) {
	sql := `SELECT ` + guestColumns + ` FROM guests WHERE phone = $1 ORDER BY created_at ASC`
	rows, err := r.db.Query(ctx, sql, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to query guests by phone: %w", err)
	}
	return scanGuests(rows)
}

const insertGuestSQL = `INSERT INTO guests (name, phone, confirmed) VALUES ($1, $2, false) RETURNING id, confirmed, created_at`

// Create inserts a new unconfirmed guest
func (r *guestRepository) Create(ctx context.Context, g *model.Guest) error {
	err := r.db.QueryRow(ctx, insertGuestSQL, g.Name, g.Phone).Scan(&g.ID, &g.Confirmed, &g.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create guest: %w", err)
	}
	return nil
}

// CreateMany inserts all guests in a single transaction
func (r *guestRepository) CreateMany(ctx context.Context, guests []*model.Guest) error {
	if len(guests) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin import transaction: %w", err)
	}

	for _, g := range guests {
		if err := tx.QueryRow(ctx, insertGuestSQL, g.Name, g.Phone).Scan(&g.ID, &g.Confirmed, &g.CreatedAt); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("failed to import guest: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit import transaction: %w", err)
	}
	return nil
}

// Update modifies name, phone and confirmed flag of an existing guest
func (r *guestRepository) Update(ctx context.Context, g *model.Guest) error {
	sql := `UPDATE guests SET name = $1, phone = $2, confirmed = $3 WHERE id = $4 RETURNING created_at`
	err := r.db.QueryRow(ctx, sql, g.Name, g.Phone, g.Confirmed, g.ID).Scan(&g.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("guest not found for update: %w", err)
		}
		return fmt.Errorf("failed to update guest: %w", err)
	}
	return nil
}

// Delete removes a guest and reports whether a row existed
func (r *guestRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	sql := `DELETE FROM guests WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete guest: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// SetHouseholdConfirmation writes every update atomically. Each update is
// scoped to the phone so a guest moved to another household is not touched.
func (r *guestRepository) SetHouseholdConfirmation(ctx context.Context, phone string, updates []model.ConfirmationUpdate) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin rsvp transaction: %w", err)
	}

	sql := `UPDATE guests SET confirmed = $1 WHERE id = $2 AND phone = $3`
	for _, u := range updates {
		if _, err := tx.Exec(ctx, sql, u.Confirmed, u.ID, phone); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("failed to update confirmation for guest %s: %w", u.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit rsvp transaction: %w", err)
	}
	return nil
}

// CountStats returns total and confirmed guest counts
func (r *guestRepository) CountStats(ctx context.Context) (*model.GuestStats, error) {
	stats := &model.GuestStats{}
	sql := `SELECT COUNT(*), COUNT(*) FILTER (WHERE confirmed) FROM guests`
	if err := r.db.QueryRow(ctx, sql).Scan(&stats.Total, &stats.Confirmed); err != nil {
		return nil, fmt.Errorf("failed to count guests: %w", err)
	}
	stats.Pending = stats.Total - stats.Confirmed
	return stats, nil
}
