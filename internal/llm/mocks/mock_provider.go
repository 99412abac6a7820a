package mocks

import (
	"context"

	"docsum/internal/llm"

	"github.com/stretchr/testify/mock"
)

var _ llm.Provider = (*MockProvider)(nil)

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Chat(ctx context.Context, history []llm.Message) (string, error) {
	args := m.Called(ctx, history)
	return args.String(0), args.Error(1)
}

func (m *MockProvider) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}
