package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// SubmitMsg carries a submitted input line.
type SubmitMsg struct {
	Text string
}

// Input is the single-line message prompt. While a turn is in flight it is
// disabled and drops keystrokes.
type Input struct {
	field    textinput.Model
	width    int
	disabled bool
}

// NewInput creates the prompt.
func NewInput() *Input {
	field := textinput.New()
	field.Placeholder = "Message NOX…"
	field.Prompt = "❯ "
	field.PromptStyle = InputPromptStyle
	field.CharLimit = 4000
	return &Input{field: field}
}

// Init returns the blink command.
func (i *Input) Init() tea.Cmd {
	return textinput.Blink
}

// Focus gives the field keyboard focus.
func (i *Input) Focus() tea.Cmd {
	return i.field.Focus()
}

// SetDisabled toggles whether input is accepted.
func (i *Input) SetDisabled(disabled bool) {
	i.disabled = disabled
	if disabled {
		i.field.Blur()
	}
}

// Disabled reports whether the field is locked.
func (i *Input) Disabled() bool {
	return i.disabled
}

// SetWidth sets the field width.
func (i *Input) SetWidth(width int) {
	i.width = width
	i.field.Width = width - 4
}

// Update handles keystrokes; Enter emits a SubmitMsg and clears the field.
func (i *Input) Update(msg tea.Msg) (*Input, tea.Cmd) {
	if i.disabled {
		return i, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		text := strings.TrimSpace(i.field.Value())
		if text == "" {
			return i, nil
		}
		i.field.SetValue("")
		return i, func() tea.Msg { return SubmitMsg{Text: text} }
	}

	var cmd tea.Cmd
	i.field, cmd = i.field.Update(msg)
	return i, cmd
}

// View renders the prompt between separator rules.
func (i *Input) View() string {
	sep := InputSeparatorStyle.Render(strings.Repeat("─", max(i.width, 1)))
	line := i.field.View()
	if i.disabled {
		line = ThinkingStyle.Render("  (waiting for reply…)")
	}
	return sep + "\n" + line + "\n" + sep
}
