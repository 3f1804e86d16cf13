package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"ledgerbook/internal/domain"
)

// MockExportJobRepo is a mock implementation of port.ExportJobRepository.
type MockExportJobRepo struct {
	mock.Mock
}

func (m *MockExportJobRepo) Create(ctx context.Context, job *domain.ExportJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockExportJobRepo) GetByID(ctx context.Context, businessID, jobID uuid.UUID) (*domain.ExportJob, error) {
	args := m.Called(ctx, businessID, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExportJob), args.Error(1)
}

func (m *MockExportJobRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.ExportJob, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExportJob), args.Error(1)
}

func (m *MockExportJobRepo) MarkCompleted(ctx context.Context, jobID uuid.UUID, fileName, s3Key string) error {
	args := m.Called(ctx, jobID, fileName, s3Key)
	return args.Error(0)
}

func (m *MockExportJobRepo) MarkFailed(ctx context.Context, jobID uuid.UUID, reason string) error {
	args := m.Called(ctx, jobID, reason)
	return args.Error(0)
}
