package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/noxhq/nox/internal/orchestrator"
)

// Run starts the chat window and blocks until the user quits.
func Run(session *orchestrator.Session, driver, model, degraded string) error {
	app := NewApp(session, driver, model, degraded)

	p := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run chat window: %w", err)
	}
	return nil
}
