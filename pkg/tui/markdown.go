package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// renderMarkdown converts a markdown string to styled terminal output,
// constrained to the given column width. Falls back to the raw input if
// glamour is unavailable or rendering fails.
func renderMarkdown(md string, width int) string {
	if strings.TrimSpace(md) == "" {
		return md
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	// Glamour adds trailing newlines; trim for inline use.
	return strings.TrimRight(out, "\n")
}
