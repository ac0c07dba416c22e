package tui

import (
	"errors"
	"os"
	"strings"

	"nathanbeddoewebdev/slatf/internal/util"

	"github.com/charmbracelet/huh"
)

// ErrAborted is returned when the user cancels an interactive prompt.
var ErrAborted = errors.New("prompt aborted by user")

// PromptProjectID asks for the monitoring project of a document that does
// not declare one. source names the document in the prompt title.
func PromptProjectID(source string) (string, error) {
	accessible := os.Getenv("ACCESSIBLE") != ""

	var projectID string
	err := runForm(accessible,
		huh.NewGroup(
			huh.NewInput().
				Title(projectPromptTitle(source)).
				Description("The document has no x-gcp-monitoring.projectId.").
				Placeholder("e.g. my-gcp-project-id").
				Value(&projectID).
				Validate(util.ValidateProjectID),
		),
	)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(projectID), nil
}

func projectPromptTitle(source string) string {
	if source == "" {
		return "Monitoring project ID"
	}
	return "Monitoring project ID for " + source
}

// runForm runs a huh form on stderr, leaving stdout to the artifact, and
// maps user cancellation to ErrAborted.
func runForm(accessible bool, groups ...*huh.Group) error {
	err := huh.NewForm(groups...).WithAccessible(accessible).WithOutput(os.Stderr).Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return err
	}
	return nil
}
