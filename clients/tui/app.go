// Package tui is the NOX chat window.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/noxhq/nox/clients/tui/components"
	"github.com/noxhq/nox/internal/orchestrator"
)

// App is the root bubbletea model: CHAT | INPUT | FOOTER. At most one turn
// is in flight; the input stays disabled until it resolves.
type App struct {
	chat   *components.Chat
	input  *components.Input
	footer *components.Footer

	session  *orchestrator.Session
	degraded string // non-empty: credential problem, no turns possible

	width    int
	height   int
	busy     bool
	quitting bool
}

// NewApp creates the chat window. A non-empty degraded reason puts the shell
// in degraded mode: the transcript works but every submit is answered with
// the credential hint instead of a model call.
func NewApp(session *orchestrator.Session, driver, model, degraded string) *App {
	return &App{
		chat:     components.NewChat(),
		input:    components.NewInput(),
		footer:   components.NewFooter(driver, model),
		session:  session,
		degraded: degraded,
	}
}

// Init focuses the input and shows the degraded banner when relevant.
func (a *App) Init() tea.Cmd {
	if a.degraded != "" {
		a.chat.Append(components.EntryBanner,
			fmt.Sprintf("⚠ Degraded mode: %s. Replies are disabled until a credential is configured.", a.degraded))
		a.footer.SetState(components.FooterError)
	}
	return tea.Batch(a.input.Init(), a.input.Focus())
}

// Update drives the turn lifecycle.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout()
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			a.quitting = true
			return a, tea.Quit
		case "ctrl+l":
			a.chat.Clear()
			return a, nil
		case "pgup", "pgdown":
			var cmd tea.Cmd
			a.chat, cmd = a.chat.Update(msg)
			return a, cmd
		}

		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd

	case tea.MouseMsg:
		var cmd tea.Cmd
		a.chat, cmd = a.chat.Update(msg)
		return a, cmd

	case components.SubmitMsg:
		return a.handleSubmit(msg.Text)

	case turnDoneMsg:
		return a.handleTurnDone(msg.result)

	case turnFailedMsg:
		return a.handleTurnFailed(msg.err)
	}

	// Spinner ticks and other framework messages.
	var cmd tea.Cmd
	a.chat, cmd = a.chat.Update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

// View renders CHAT | INPUT | FOOTER.
func (a *App) View() string {
	if a.quitting {
		return "Goodbye!\n"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		a.chat.View(),
		a.input.View(),
		a.footer.View(),
	)
}

func (a *App) layout() {
	footerHeight := 1
	inputHeight := 3
	chatHeight := a.height - footerHeight - inputHeight
	if chatHeight < 5 {
		chatHeight = 5
	}
	a.chat.SetSize(a.width, chatHeight)
	a.input.SetWidth(a.width)
	a.footer.SetWidth(a.width)
}

func (a *App) handleSubmit(text string) (tea.Model, tea.Cmd) {
	if strings.HasPrefix(text, "/") {
		return a.handleSlashCommand(text)
	}

	a.chat.Append(components.EntryUser, text)

	if a.degraded != "" {
		a.chat.Append(components.EntrySystem, "Please add your API key to api_key.txt")
		return a, nil
	}
	if a.busy {
		return a, nil
	}

	a.busy = true
	a.input.SetDisabled(true)
	a.footer.SetState(components.FooterBusy)

	session := a.session
	turn := func() tea.Msg {
		result, err := session.Run(context.Background(), text)
		if err != nil {
			return turnFailedMsg{err: err}
		}
		return turnDoneMsg{result: result}
	}
	return a, tea.Batch(a.chat.StartThinking(), turn)
}

func (a *App) handleTurnDone(result *orchestrator.TurnResult) (tea.Model, tea.Cmd) {
	a.busy = false
	a.chat.StopThinking()
	a.input.SetDisabled(false)
	a.footer.SetCost(result.TotalCost)

	if result.State == orchestrator.StateErrored {
		a.footer.SetState(components.FooterError)
		a.chat.Append(components.EntryError, "NOX: Error - "+result.Reply)
	} else {
		a.footer.SetState(components.FooterReady)
		a.chat.Append(components.EntryAssistant, result.Reply)
	}

	if trace := result.ToolTrace; trace != nil {
		mark := "✓"
		if !trace.Success {
			mark = "✗"
		}
		a.chat.Append(components.EntryDiag, fmt.Sprintf("%s %s", mark, trace.Message))
	}

	return a, a.input.Focus()
}

func (a *App) handleTurnFailed(err error) (tea.Model, tea.Cmd) {
	a.busy = false
	a.chat.StopThinking()
	a.input.SetDisabled(false)
	a.footer.SetState(components.FooterError)
	a.chat.Append(components.EntryError, fmt.Sprintf("NOX: Error - %v", err))
	return a, a.input.Focus()
}

func (a *App) handleSlashCommand(cmd string) (tea.Model, tea.Cmd) {
	switch strings.Fields(cmd)[0] {
	case "/quit":
		a.quitting = true
		return a, tea.Quit
	case "/clear":
		a.chat.Clear()
	case "/cost":
		a.chat.Append(components.EntrySystem,
			fmt.Sprintf("Session cost: $%.6f", a.session.TotalCost()))
	default:
		a.chat.Append(components.EntrySystem, "Unknown command: "+cmd)
	}
	return a, nil
}
