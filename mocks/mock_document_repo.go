package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"ledgerbook/internal/domain"
)

// MockDocumentRepo is a mock implementation of port.DocumentRepository.
type MockDocumentRepo struct {
	mock.Mock
}

func (m *MockDocumentRepo) Create(ctx context.Context, doc *domain.Document, moves []domain.StockMovement) ([]string, error) {
	args := m.Called(ctx, doc, moves)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockDocumentRepo) GetByID(ctx context.Context, businessID, docID uuid.UUID) (*domain.Document, error) {
	args := m.Called(ctx, businessID, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepo) List(ctx context.Context, businessID uuid.UUID, q domain.ListQuery) ([]domain.Document, int, error) {
	args := m.Called(ctx, businessID, q)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Document), args.Int(1), args.Error(2)
}

func (m *MockDocumentRepo) ListForExport(ctx context.Context, businessID uuid.UUID, q domain.ListQuery, maxRows int) ([]domain.Document, error) {
	args := m.Called(ctx, businessID, q, maxRows)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *MockDocumentRepo) Update(ctx context.Context, doc *domain.Document, moves []domain.StockMovement) ([]string, error) {
	args := m.Called(ctx, doc, moves)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockDocumentRepo) Delete(ctx context.Context, businessID, docID uuid.UUID, moves []domain.StockMovement) ([]string, error) {
	args := m.Called(ctx, businessID, docID, moves)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
