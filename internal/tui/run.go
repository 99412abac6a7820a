package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"docsum/internal/workflow"
)

// Run shows the UI until the user quits or ctx is cancelled.
func Run(ctx context.Context, session *workflow.Session) error {
	p := tea.NewProgram(New(ctx, session), tea.WithAltScreen(), tea.WithContext(ctx))

	// listeners fire from workflow goroutines, so Send never runs inside Update
	cancel := session.Subscribe(func() { p.Send(stateChangedMsg{}) })
	defer cancel()

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
