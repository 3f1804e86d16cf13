package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendExportReadyEmail(ctx context.Context, toEmail, fileName, downloadURL string) error {
	args := m.Called(ctx, toEmail, fileName, downloadURL)
	return args.Error(0)
}
