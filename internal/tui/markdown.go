package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"
)

// RenderMarkdown renders AI output for the terminal. A width of 0 disables
// wrapping. Text that fails to render is returned wrapped but unstyled.
func RenderMarkdown(text string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		if out, err := r.Render(text); err == nil {
			return out
		}
	}
	return wrap(text, width) + "\n"
}

func wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return strings.TrimRight(wordwrap.String(text, width), " ")
}
