// Package components holds render-only building blocks composed by the
// slatf terminal views.
package components

import (
	"strings"

	"nathanbeddoewebdev/slatf/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Header renders the application header bar.
//
//	┌──────────────────────────────────────────────┐
//	│  slatf > sla.yaml               gcp-terraform │
//	└──────────────────────────────────────────────┘
func Header(width int, breadcrumb string, target string) string {
	if width < 10 {
		return ""
	}

	left := styles.Title.Foreground(styles.Blue).Render("slatf")
	if breadcrumb != "" {
		left += styles.MutedText.Render(" > ") + styles.Title.Render(breadcrumb)
	}

	right := ""
	if target != "" {
		right = styles.Subtitle.Render(target)
	}

	innerWidth := width - 4 // padding
	gap := max(innerWidth-lipgloss.Width(left)-lipgloss.Width(right), 1)

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderBottom(true).
		BorderForeground(styles.DimGray).
		Render(left + strings.Repeat(" ", gap) + right)
}
