package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"docsum/internal/llm"
)

var (
	ErrPromptRequired       = errors.New("prompt is required")
	ErrAssistantUnavailable = errors.New("assistant unavailable")
)

// AssistantService answers free-form prompts. Nothing is persisted.
type AssistantService interface {
	Ask(ctx context.Context, prompt string) (string, error)
}

type assistantService struct {
	llm llm.Provider
	log *zap.Logger
}

// NewAssistantService constructs a new AssistantService.
func NewAssistantService(provider llm.Provider, log *zap.Logger) AssistantService {
	if log == nil {
		log = zap.NewNop()
	}
	return &assistantService{llm: provider, log: log}
}

func (s *assistantService) Ask(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrPromptRequired
	}
	answer, err := s.llm.Generate(ctx, prompt)
	if err != nil {
		s.log.Warn("assistant_failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrAssistantUnavailable, err)
	}
	return answer, nil
}
