package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ledgerbook/internal/service"
)

// MockRegistrationService is a mock implementation of service.RegistrationService.
type MockRegistrationService struct {
	mock.Mock
}

func (m *MockRegistrationService) Signup(ctx context.Context, input service.SignupInput) (*service.SignupOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SignupOutput), args.Error(1)
}
