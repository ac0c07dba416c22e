package components

import (
	"nathanbeddoewebdev/slatf/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// KeyBinding is one key hint shown in the footer.
type KeyBinding struct {
	Key  string
	Desc string
}

// Footer renders the key hints under a rule. Hints are kept in order and
// the ones that no longer fit the width are dropped from the end.
//
//	────────────────────────────────────────────
//	  j/k scroll  g/G top/bottom  q quit
func Footer(width int, bindings []KeyBinding) string {
	if width < 10 || len(bindings) == 0 {
		return ""
	}

	sep := styles.KeySepStyle.Render("  ")
	room := width - 4 // padding
	content := ""
	for _, b := range bindings {
		hint := styles.FormatKeyBinding(b.Key, b.Desc)
		next := hint
		if content != "" {
			next = content + sep + hint
		}
		if lipgloss.Width(next) > room {
			break
		}
		content = next
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderTop(true).
		BorderForeground(styles.DimGray).
		Render(content)
}
