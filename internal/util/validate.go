package util

import (
	"fmt"
	"regexp"
	"strings"
)

// validProjectChars matches lowercase alphanumerics, hyphens, and the
// separators used by domain-scoped projects ("example.com:my-project").
var validProjectChars = regexp.MustCompile(`^[a-z0-9.:\-]+$`)

// ValidateProjectID checks that a monitoring project ID is usable as a
// provider project:
//   - Not blank
//   - Only lowercase letters, digits, hyphens, periods, and colons
//   - First character must be a letter
//   - Last character must not be a hyphen
func ValidateProjectID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("project ID must not be empty")
	}

	if !validProjectChars.MatchString(id) {
		return fmt.Errorf("project ID %q contains invalid characters (only a-z, 0-9, hyphens, periods, and colons are allowed)", id)
	}

	first := id[0]
	if first < 'a' || first > 'z' {
		return fmt.Errorf("project ID must start with a lowercase letter, got %q", string(first))
	}

	if id[len(id)-1] == '-' {
		return fmt.Errorf("project ID must not end with a hyphen, got %q", id)
	}

	return nil
}
