package components

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders assistant markdown to styled terminal output at the
// given width. Rendering failures fall back to the raw content.
func RenderMarkdown(content string, width int) string {
	if content == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
		glamour.WithEmoji(),
	)
	if err != nil {
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}

	return strings.TrimRight(rendered, "\n")
}
