package components

import (
	"nathanbeddoewebdev/slatf/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// StatusBar renders a one-line message above the footer. Errors get a
// cross marker and the error style; long messages are cut to one line.
func StatusBar(width int, message string, isError bool) string {
	if message == "" || width < 10 {
		return ""
	}

	text := styles.MutedText.Render(message)
	if isError {
		text = styles.ErrorText.Render("✗ " + message)
	}

	// Two columns of padding on each side.
	text = ansi.Truncate(text, width-4, "…")
	return lipgloss.NewStyle().Width(width).Padding(0, 2).Render(text)
}
