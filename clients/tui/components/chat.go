package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// EntryKind classifies a transcript line.
type EntryKind int

const (
	EntryUser EntryKind = iota
	EntryAssistant
	EntryError
	EntrySystem
	EntryDiag
	EntryBanner
)

// Entry is one transcript item.
type Entry struct {
	Kind    EntryKind
	Content string
}

// Chat is the scrollable conversation transcript.
type Chat struct {
	viewport viewport.Model
	spinner  spinner.Model
	entries  []Entry

	width       int
	height      int
	ready       bool
	autoScroll  bool
	thinking    bool
	showWelcome bool
}

// NewChat creates the transcript component.
func NewChat() *Chat {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = SpinnerStyle
	return &Chat{
		spinner:     sp,
		autoScroll:  true,
		showWelcome: true,
	}
}

// Update handles scrolling and spinner ticks.
func (c *Chat) Update(msg tea.Msg) (*Chat, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "pgup", "pgdown", "up", "down":
			c.viewport, cmd = c.viewport.Update(msg)
			c.autoScroll = c.viewport.AtBottom()
			return c, cmd
		}

	case tea.MouseMsg:
		c.viewport, cmd = c.viewport.Update(msg)
		c.autoScroll = c.viewport.AtBottom()
		return c, cmd

	case spinner.TickMsg:
		if c.thinking {
			c.spinner, cmd = c.spinner.Update(msg)
			c.refresh()
			return c, cmd
		}
	}

	return c, nil
}

// View renders the transcript.
func (c *Chat) View() string {
	if !c.ready {
		return "Initializing..."
	}
	return c.viewport.View()
}

// SetSize updates the viewport dimensions.
func (c *Chat) SetSize(width, height int) {
	c.width = width
	c.height = height

	if !c.ready {
		c.viewport = viewport.New(width, height)
		c.ready = true
	} else {
		c.viewport.Width = width
		c.viewport.Height = height
	}
	c.refresh()
}

// Append adds a transcript entry.
func (c *Chat) Append(kind EntryKind, content string) {
	c.entries = append(c.entries, Entry{Kind: kind, Content: content})
	c.refresh()
}

// StartThinking shows the spinner line and returns its tick command.
func (c *Chat) StartThinking() tea.Cmd {
	c.thinking = true
	c.refresh()
	return c.spinner.Tick
}

// StopThinking hides the spinner line.
func (c *Chat) StopThinking() {
	c.thinking = false
	c.refresh()
}

// Clear drops the transcript and restores the welcome text.
func (c *Chat) Clear() {
	c.entries = nil
	c.thinking = false
	c.showWelcome = true
	c.refresh()
}

func (c *Chat) refresh() {
	if !c.ready {
		return
	}
	c.viewport.SetContent(c.renderContent())
	if c.autoScroll {
		c.viewport.GotoBottom()
	}
}

func (c *Chat) renderContent() string {
	var b strings.Builder

	if c.showWelcome {
		b.WriteString(WelcomeTitleStyle.Render("NOX"))
		b.WriteString(WelcomeSubtitleStyle.Render(" — your personal assistant."))
		b.WriteString("\n\n")
		b.WriteString(HelpTextStyle.Render("  Tips: /quit to exit • /clear to reset • /cost for session spend"))
		b.WriteString("\n\n")
	}

	for _, e := range c.entries {
		b.WriteString(c.renderEntry(e))
		b.WriteString("\n\n")
	}

	if c.thinking {
		b.WriteString(c.spinner.View())
		b.WriteString(ThinkingStyle.Render(" Thinking..."))
		b.WriteString("\n")
	}

	return b.String()
}

func (c *Chat) renderEntry(e Entry) string {
	switch e.Kind {
	case EntryUser:
		return c.renderUser(e.Content)
	case EntryAssistant:
		return RenderMarkdown(e.Content, c.width-2)
	case EntryError:
		return ErrorStyle.Render(c.wrap(e.Content, c.width-2))
	case EntrySystem:
		return SystemStyle.Render(c.wrap(e.Content, c.width-2))
	case EntryDiag:
		return DiagStyle.Render(c.wrap(e.Content, c.width-2))
	case EntryBanner:
		return BannerStyle.Render(c.wrap(e.Content, c.width-2))
	default:
		return e.Content
	}
}

func (c *Chat) renderUser(content string) string {
	prefix := InputPromptStyle.Render("❯ ")
	lines := strings.Split(c.wrap(content, c.width-4), "\n")

	var b strings.Builder
	for i, line := range lines {
		if i == 0 {
			b.WriteString(prefix + UserStyle.Render(line))
		} else {
			b.WriteString("\n  " + UserStyle.Render(line))
		}
	}
	return b.String()
}

func (c *Chat) wrap(text string, width int) string {
	if width <= 0 {
		width = 80
	}

	var b strings.Builder
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			b.WriteString("\n")
		}
		for len(line) > width {
			breakPoint := width
			for j := width; j > 0; j-- {
				if line[j] == ' ' {
					breakPoint = j
					break
				}
			}
			b.WriteString(line[:breakPoint])
			b.WriteString("\n")
			line = strings.TrimLeft(line[breakPoint:], " ")
		}
		b.WriteString(line)
	}
	return b.String()
}
