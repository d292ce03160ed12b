// Package components provides the chat window building blocks.
package components

import "github.com/charmbracelet/lipgloss"

// Color palette.
const (
	ColorPrimary   = "#7C3AED" // violet: user messages, accents
	ColorSecondary = "#10B981" // green: success, ready dot
	ColorWarning   = "#F59E0B" // amber: busy dot, banners
	ColorError     = "#EF4444" // red: errors
	ColorMuted     = "#6B7280" // gray: hints, diagnostics
	ColorBorder    = "#374151"
	ColorSurface   = "#1E293B"
	ColorText      = "#E5E7EB"
)

var (
	Primary   = lipgloss.Color(ColorPrimary)
	Secondary = lipgloss.Color(ColorSecondary)
	Warning   = lipgloss.Color(ColorWarning)
	Error     = lipgloss.Color(ColorError)
	Muted     = lipgloss.Color(ColorMuted)
	Border    = lipgloss.Color(ColorBorder)
	Surface   = lipgloss.Color(ColorSurface)
	Text      = lipgloss.Color(ColorText)
)

var (
	UserStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	SystemStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// DiagStyle for the muted ✓/✗ tool diagnostic line.
	DiagStyle = lipgloss.NewStyle().
			Foreground(Muted)

	BannerStyle = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	ThinkingStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(Primary)

	InputPromptStyle = lipgloss.NewStyle().
				Foreground(Primary).
				Bold(true)

	InputSeparatorStyle = lipgloss.NewStyle().
				Foreground(Border)

	WelcomeTitleStyle = lipgloss.NewStyle().
				Foreground(Primary).
				Bold(true)

	WelcomeSubtitleStyle = lipgloss.NewStyle().
				Foreground(Muted)

	HelpTextStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	FooterStyle = lipgloss.NewStyle().
			Background(Surface).
			Foreground(Text).
			Padding(0, 1)

	FooterModelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#A5B4FC"))

	FooterCostStyle = lipgloss.NewStyle().
			Foreground(Secondary)

	DotReadyStyle = lipgloss.NewStyle().Foreground(Secondary)
	DotBusyStyle  = lipgloss.NewStyle().Foreground(Warning)
	DotErrorStyle = lipgloss.NewStyle().Foreground(Error)
)
