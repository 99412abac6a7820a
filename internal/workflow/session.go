// Package workflow orchestrates the user-initiated operations of the docsum client:
// uploads, assistant prompts, and the view/delete/refresh flows over the local state.
package workflow

import (
	"go.uber.org/zap"

	"docsum/internal/gateway"
	"docsum/internal/model"
	"docsum/internal/state"
)

// Session wires the state containers and workflows over one Gateway.
// It is the single injection point for the CLI and the TUI.
type Session struct {
	Documents *state.Documents
	Selection *state.Selection
	Upload    *Upload
	Assistant *Assistant
	Library   *Library
}

// NewSession creates a session with an empty document list.
func NewSession(gw gateway.Gateway, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	docs := state.NewDocuments()
	sel := state.NewSelection()
	return &Session{
		Documents: docs,
		Selection: sel,
		Upload:    NewUpload(gw, docs, sel, log.Named("upload")),
		Assistant: NewAssistant(gw, log.Named("assistant")),
		Library:   NewLibrary(gw, docs, sel, log.Named("library")),
	}
}

// Selected returns the record currently shown in detail, if it is still listed.
func (s *Session) Selected() (model.Document, bool) {
	return state.Resolve(s.Documents, s.Selection)
}

// Subscribe registers fn on every observable part of the session.
func (s *Session) Subscribe(fn state.Listener) (cancel func()) {
	cancels := []func(){
		s.Documents.Subscribe(fn),
		s.Selection.Subscribe(fn),
		s.Upload.Subscribe(fn),
		s.Assistant.Subscribe(fn),
	}
	return func() {
		for _, c := range cancels {
			c()
		}
	}
}
