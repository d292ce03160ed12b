package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FooterState drives the status dot color.
type FooterState int

const (
	FooterReady FooterState = iota
	FooterBusy
	FooterError
)

// Footer is the one-line status bar: driver/model on the left, state dot and
// session cost on the right.
type Footer struct {
	width  int
	driver string
	model  string
	state  FooterState
	cost   float64
}

// NewFooter creates the status bar.
func NewFooter(driver, model string) *Footer {
	return &Footer{driver: driver, model: model}
}

// SetWidth sets the bar width.
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetState updates the status dot.
func (f *Footer) SetState(state FooterState) {
	f.state = state
}

// SetCost updates the displayed session total.
func (f *Footer) SetCost(cost float64) {
	f.cost = cost
}

// View renders the bar.
func (f *Footer) View() string {
	left := FooterModelStyle.Render(f.driver)
	if f.model != "" {
		left += " | " + FooterModelStyle.Render(f.model)
	}

	var dot string
	switch f.state {
	case FooterBusy:
		dot = DotBusyStyle.Render("● ")
	case FooterError:
		dot = DotErrorStyle.Render("● ")
	default:
		dot = DotReadyStyle.Render("● ")
	}
	right := dot + FooterCostStyle.Render(fmt.Sprintf("$%.6f", f.cost))

	padding := f.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}

	return FooterStyle.Width(f.width).Render(left + strings.Repeat(" ", padding) + right)
}
