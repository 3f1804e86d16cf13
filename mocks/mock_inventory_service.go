package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"ledgerbook/internal/domain"
	"ledgerbook/internal/service"
)

// MockInventoryService is a mock implementation of service.InventoryService.
type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) Create(ctx context.Context, businessID uuid.UUID, input *service.InventoryInput) (*domain.InventoryItem, error) {
	args := m.Called(ctx, businessID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryService) GetByID(ctx context.Context, businessID, itemID uuid.UUID) (*domain.InventoryItem, error) {
	args := m.Called(ctx, businessID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryService) List(ctx context.Context, businessID uuid.UUID, q domain.ListQuery) ([]domain.InventoryItem, int, error) {
	args := m.Called(ctx, businessID, q)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.InventoryItem), args.Int(1), args.Error(2)
}

func (m *MockInventoryService) Update(ctx context.Context, businessID, itemID uuid.UUID, input *service.InventoryInput) (*domain.InventoryItem, error) {
	args := m.Called(ctx, businessID, itemID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryService) Delete(ctx context.Context, businessID, itemID uuid.UUID) error {
	args := m.Called(ctx, businessID, itemID)
	return args.Error(0)
}

func (m *MockInventoryService) Import(ctx context.Context, businessID uuid.UUID, filename string, r io.Reader) (*service.ImportOutput, error) {
	args := m.Called(ctx, businessID, filename, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ImportOutput), args.Error(1)
}
