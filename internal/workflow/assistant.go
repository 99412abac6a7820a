package workflow

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"docsum/internal/gateway"
	"docsum/internal/state"
)

// FallbackResponse is shown when the assistant could not answer.
const FallbackResponse = "Error: Could not get AI response."

// Exchange is one prompt and what was shown for it. It is never stored.
type Exchange struct {
	Prompt   string
	Response string
	// Failed is set when Response is FallbackResponse.
	Failed bool
	// Err is the gateway failure behind a fallback.
	Err error
}

// Assistant sends one prompt at a time to the AI assistant.
type Assistant struct {
	gw     gateway.Gateway
	log    *zap.Logger
	flight flight
}

// NewAssistant creates the assistant workflow.
func NewAssistant(gw gateway.Gateway, log *zap.Logger) *Assistant {
	if log == nil {
		log = zap.NewNop()
	}
	return &Assistant{gw: gw, log: log}
}

// Status reports whether a prompt is awaiting its answer.
func (a *Assistant) Status() Status {
	return a.flight.status()
}

// Subscribe registers fn to run whenever Status changes.
func (a *Assistant) Subscribe(fn state.Listener) (cancel func()) {
	return a.flight.obs.Subscribe(fn)
}

// Ask sends prompt and returns the exchange to display.
//
// Blank prompts fail with ErrEmptyPrompt and nothing else happens. A remote failure is not
// an error: the exchange carries FallbackResponse instead.
func (a *Assistant) Ask(ctx context.Context, prompt string) (Exchange, error) {
	if strings.TrimSpace(prompt) == "" {
		return Exchange{}, ErrEmptyPrompt
	}
	if !a.flight.begin() {
		return Exchange{}, ErrBusy
	}
	defer a.flight.end()

	resp, err := a.gw.AskAssistant(ctx, prompt)
	if err != nil {
		a.log.Warn("assistant_failed", zap.Error(err))
		return Exchange{Prompt: prompt, Response: FallbackResponse, Failed: true, Err: err}, nil
	}
	return Exchange{Prompt: prompt, Response: resp}, nil
}
