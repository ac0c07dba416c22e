package tui

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/slatf/internal/monitoring/services/compile"
	"nathanbeddoewebdev/slatf/internal/tui/styles"

	"github.com/charmbracelet/x/ansi"
)

// FileSummary is the outcome of compiling one source document.
type FileSummary struct {
	Source string
	// Output is the file the artifact was written to; empty means stdout.
	Output string
	Result *compile.Result
	Err    error
}

// Outcome classifies a compile for display.
func (f FileSummary) Outcome() string {
	switch {
	case f.Err != nil || f.Result == nil:
		return styles.OutcomeFailed
	case len(f.Result.Exclusions) > 0:
		return styles.OutcomePartial
	default:
		return styles.OutcomeCompiled
	}
}

// RenderSummary renders one block per file: an outcome line, then either
// the error or the excluded guarantees. Lines wider than width are cut with
// an ellipsis; width <= 0 disables truncation.
func RenderSummary(width int, files []FileSummary) string {
	var lines []string
	for _, f := range files {
		lines = append(lines, summaryHeadline(f))

		if f.Err != nil {
			lines = append(lines, "    "+styles.ErrorText.Render(f.Err.Error()))
			continue
		}
		for _, ex := range f.Result.Exclusions {
			detail := fmt.Sprintf("excluded %s / %s #%d %s (%s)", ex.Plan, ex.Context, ex.Index, ex.Metric, ex.Reason)
			lines = append(lines, "    "+styles.MutedText.Render(detail))
		}
	}

	if width > 0 {
		for i, line := range lines {
			lines[i] = ansi.Truncate(line, width, "…")
		}
	}
	return strings.Join(lines, "\n")
}

func summaryHeadline(f FileSummary) string {
	parts := []string{
		styles.OutcomeIndicator(f.Outcome()),
		styles.Value.Render(f.Source),
	}
	if f.Err != nil {
		return strings.Join(parts, "  ")
	}

	dest := f.Output
	if dest == "" {
		dest = "stdout"
	}
	doc := f.Result.Document
	parts = append(parts,
		styles.MutedText.Render("→ "+dest),
		styles.Label.Render(doc.ProjectID),
		styles.Subtitle.Render(fmt.Sprintf("%s, %s, %s",
			plural(len(doc.Metrics), "metric"),
			plural(len(doc.Channels), "channel"),
			plural(len(doc.Alerts), "alert"),
		)),
	)
	return strings.Join(parts, "  ")
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
