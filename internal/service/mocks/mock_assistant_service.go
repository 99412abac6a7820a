package mocks

import (
	"context"

	"docsum/internal/service"
	"github.com/stretchr/testify/mock"
)

var _ service.AssistantService = (*MockAssistantService)(nil)

type MockAssistantService struct {
	mock.Mock
}

func (m *MockAssistantService) Ask(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}
