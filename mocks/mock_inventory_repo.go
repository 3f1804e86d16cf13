package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"ledgerbook/internal/domain"
)

// MockInventoryRepo is a mock implementation of port.InventoryRepository.
type MockInventoryRepo struct {
	mock.Mock
}

func (m *MockInventoryRepo) Create(ctx context.Context, item *domain.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockInventoryRepo) GetByID(ctx context.Context, businessID, itemID uuid.UUID) (*domain.InventoryItem, error) {
	args := m.Called(ctx, businessID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepo) List(ctx context.Context, businessID uuid.UUID, q domain.ListQuery) ([]domain.InventoryItem, int, error) {
	args := m.Called(ctx, businessID, q)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.InventoryItem), args.Int(1), args.Error(2)
}

func (m *MockInventoryRepo) Update(ctx context.Context, item *domain.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockInventoryRepo) Delete(ctx context.Context, businessID, itemID uuid.UUID) error {
	args := m.Called(ctx, businessID, itemID)
	return args.Error(0)
}

func (m *MockInventoryRepo) Upsert(ctx context.Context, item *domain.InventoryItem) (bool, error) {
	args := m.Called(ctx, item)
	return args.Bool(0), args.Error(1)
}
