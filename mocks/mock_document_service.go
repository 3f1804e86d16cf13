package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"ledgerbook/internal/domain"
	"ledgerbook/internal/service"
)

// MockDocumentService is a mock implementation of service.DocumentService.
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Create(ctx context.Context, input *service.CreateDocumentInput) (*service.DocumentResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DocumentResult), args.Error(1)
}

func (m *MockDocumentService) GetByID(ctx context.Context, businessID, docID uuid.UUID) (*domain.Document, error) {
	args := m.Called(ctx, businessID, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) List(ctx context.Context, businessID uuid.UUID, q domain.ListQuery) ([]domain.Document, int, error) {
	args := m.Called(ctx, businessID, q)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Document), args.Int(1), args.Error(2)
}

func (m *MockDocumentService) Update(ctx context.Context, input *service.UpdateDocumentInput) (*service.DocumentResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DocumentResult), args.Error(1)
}

func (m *MockDocumentService) Delete(ctx context.Context, businessID, docID uuid.UUID) error {
	args := m.Called(ctx, businessID, docID)
	return args.Error(0)
}
