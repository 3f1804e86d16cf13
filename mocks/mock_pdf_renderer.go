package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockPDFRenderer is a mock implementation of port.PDFRenderer.
type MockPDFRenderer struct {
	mock.Mock
}

func (m *MockPDFRenderer) RenderPDF(ctx context.Context, html string, landscape bool) ([]byte, error) {
	args := m.Called(ctx, html, landscape)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
