package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"ledgerbook/internal/domain"
	"ledgerbook/internal/service"
)

// MockExportService is a mock implementation of service.ExportService.
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) ExportDocuments(ctx context.Context, businessID uuid.UUID, q domain.ListQuery, format domain.ExportFormat) (*service.ExportFile, error) {
	args := m.Called(ctx, businessID, q, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportFile), args.Error(1)
}

func (m *MockExportService) ExportInventory(ctx context.Context, businessID uuid.UUID, q domain.ListQuery, format domain.ExportFormat) (*service.ExportFile, error) {
	args := m.Called(ctx, businessID, q, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportFile), args.Error(1)
}

func (m *MockExportService) CreateJob(ctx context.Context, input *service.CreateExportJobInput) (*domain.ExportJob, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExportJob), args.Error(1)
}

func (m *MockExportService) GetJob(ctx context.Context, businessID, jobID uuid.UUID) (*service.ExportJobView, error) {
	args := m.Called(ctx, businessID, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportJobView), args.Error(1)
}

func (m *MockExportService) RunJob(ctx context.Context, job *domain.ExportJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}
