package tui

import "github.com/noxhq/nox/internal/orchestrator"

// turnDoneMsg carries a finished turn back onto the UI loop.
type turnDoneMsg struct {
	result *orchestrator.TurnResult
}

// turnFailedMsg carries a hard turn failure.
type turnFailedMsg struct {
	err error
}
