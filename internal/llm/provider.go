// Package llm is the language-model backend used for summaries and assistant answers.
package llm

import (
	"context"
	"errors"
)

// ErrEmptyCompletion is returned when the model answers with no choices.
var ErrEmptyCompletion = errors.New("llm: empty completion")

// Message is a chat message in a provider-agnostic format.
type Message struct {
	Role    string // "system", "user" or "assistant"
	Content string
}

// Provider defines the contract for any LLM backend.
type Provider interface {
	// Chat sends a chat history to the model and returns the reply.
	Chat(ctx context.Context, history []Message) (string, error)

	// Generate sends a single user prompt (convenience method).
	Generate(ctx context.Context, prompt string) (string, error)
}
