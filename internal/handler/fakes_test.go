package handler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"event_rsvp/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// memGuestRepo is an in-memory GuestRepository for handler tests
type memGuestRepo struct {
	mu      sync.Mutex
	guests  []model.Guest
	failAll error
	writes  int
}

func (r *memGuestRepo) seed(name, phone string, confirmed bool) uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := uuid.New()
	r.guests = append(r.guests, model.Guest{
		ID: id, Name: name, Phone: phone, Confirmed: confirmed,
		CreatedAt: time.Now().Add(time.Duration(len(r.guests)) * time.Second),
	})
	return id
}

func (r *memGuestRepo) get(id uuid.UUID) *model.Guest {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.guests {
		if r.guests[i].ID == id {
			g := r.guests[i]
			return &g
		}
	}
	return nil
}

func (r *memGuestRepo) FindAll(ctx context.Context) ([]model.Guest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll != nil {
		return nil, r.failAll
	}
	out := make([]model.Guest, 0, len(r.guests))
	for i := len(r.guests) - 1; i >= 0; i-- {
		out = append(out, r.guests[i])
	}
	return out, nil
}

func (r *memGuestRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Guest, error) {
	return r.get(id), nil
}

func (r *memGuestRepo) FindByPhone(ctx context.Context, phone string) ([]model.Guest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Guest{}
	for _, g := range r.guests {
		if g.Phone == phone {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *memGuestRepo) Create(ctx context.Context, g *model.Guest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	g.ID = uuid.New()
	g.Confirmed = false
	g.CreatedAt = time.Now()
	r.guests = append(r.guests, *g)
	r.writes++
	return nil
}

func (r *memGuestRepo) CreateMany(ctx context.Context, guests []*model.Guest) error {
	for _, g := range guests {
		if err := r.Create(ctx, g); err != nil {
			return err
		}
	}
	return nil
}

func (r *memGuestRepo) Update(ctx context.Context, g *model.Guest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.guests {
		if r.guests[i].ID == g.ID {
			r.guests[i].Name, r.guests[i].Phone, r.guests[i].Confirmed = g.Name, g.Phone, g.Confirmed
			r.writes++
			return nil
		}
	}
	return fmt.Errorf("guest not found for update: %w", pgx.ErrNoRows)
}

func (r *memGuestRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.guests {
		if r.guests[i].ID == id {
			r.guests = append(r.guests[:i], r.guests[i+1:]...)
			r.writes++
			return true, nil
		}
	}
	return false, nil
}

func (r *memGuestRepo) SetHouseholdConfirmation(ctx context.Context, phone string, updates []model.ConfirmationUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range updates {
		for i := range r.guests {
			if r.guests[i].ID == u.ID && r.guests[i].Phone == phone {
				r.guests[i].Confirmed = u.Confirmed
				r.writes++
			}
		}
	}
	return nil
}

func (r *memGuestRepo) CountStats(ctx context.Context) (*model.GuestStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := &model.GuestStats{Total: int64(len(r.guests))}
	for _, g := range r.guests {
		if g.Confirmed {
			stats.Confirmed++
		}
	}
	stats.Pending = stats.Total - stats.Confirmed
	return stats, nil
}
