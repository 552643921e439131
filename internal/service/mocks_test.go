package service

import (
	"context"

	"event_rsvp/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockGuestRepo struct {
	mock.Mock
}

func (m *mockGuestRepo) FindAll(ctx context.Context) ([]model.Guest, error) {
	args := m.Called(ctx)
	guests, _ := args.Get(0).([]model.Guest)
	return guests, args.Error(1)
}

func (m *mockGuestRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Guest, error) {
	args := m.Called(ctx, id)
	g, _ := args.Get(0).(*model.Guest)
	return g, args.Error(1)
}

func (m *mockGuestRepo) FindByPhone(ctx context.Context, phone string) ([]model.Guest, error) {
	args := m.Called(ctx, phone)
	guests, _ := args.Get(0).([]model.Guest)
	return guests, args.Error(1)
}

func (m *mockGuestRepo) Create(ctx context.Context, guest *model.Guest) error {
	args := m.Called(ctx, guest)
	return args.Error(0)
}

func (m *mockGuestRepo) CreateMany(ctx context.Context, guests []*model.Guest) error {
	args := m.Called(ctx, guests)
	return args.Error(0)
}

func (m *mockGuestRepo) Update(ctx context.Context, guest *model.Guest) error {
	args := m.Called(ctx, guest)
	return args.Error(0)
}

func (m *mockGuestRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockGuestRepo) SetHouseholdConfirmation(ctx context.Context, phone string, updates []model.ConfirmationUpdate) error {
	args := m.Called(ctx, phone, updates)
	return args.Error(0)
}

func (m *mockGuestRepo) CountStats(ctx context.Context) (*model.GuestStats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*model.GuestStats)
	return stats, args.Error(1)
}
