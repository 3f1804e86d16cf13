package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"ledgerbook/internal/domain"
	"ledgerbook/internal/service"
)

// MockDraftService is a mock implementation of service.DraftService.
type MockDraftService struct {
	mock.Mock
}

func (m *MockDraftService) view(args mock.Arguments) (*service.DraftView, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DraftView), args.Error(1)
}

func (m *MockDraftService) Create(ctx context.Context, businessID, userID uuid.UUID, docType domain.DocumentType) (*service.DraftView, error) {
	return m.view(m.Called(ctx, businessID, userID, docType))
}

func (m *MockDraftService) Get(ctx context.Context, businessID, draftID uuid.UUID) (*service.DraftView, error) {
	return m.view(m.Called(ctx, businessID, draftID))
}

func (m *MockDraftService) UpdateStep(ctx context.Context, businessID, draftID uuid.UUID, step string, fields map[string]any) (*service.DraftView, error) {
	return m.view(m.Called(ctx, businessID, draftID, step, fields))
}

func (m *MockDraftService) Next(ctx context.Context, businessID, draftID uuid.UUID) (*service.DraftView, error) {
	return m.view(m.Called(ctx, businessID, draftID))
}

func (m *MockDraftService) Back(ctx context.Context, businessID, draftID uuid.UUID) (*service.DraftView, error) {
	return m.view(m.Called(ctx, businessID, draftID))
}

func (m *MockDraftService) Submit(ctx context.Context, businessID, userID, draftID uuid.UUID) (*service.DocumentResult, error) {
	args := m.Called(ctx, businessID, userID, draftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DocumentResult), args.Error(1)
}

func (m *MockDraftService) Delete(ctx context.Context, businessID, draftID uuid.UUID) error {
	args := m.Called(ctx, businessID, draftID)
	return args.Error(0)
}

func (m *MockDraftService) Close() {
	m.Called()
}
