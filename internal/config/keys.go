package config

import (
	"fmt"
	"strings"
	"time"

	"nathanbeddoewebdev/slatf/internal/logging"
	"nathanbeddoewebdev/slatf/internal/monitoring/channels"
	"nathanbeddoewebdev/slatf/internal/util"
)

// KeySpec describes a single configuration key.
type KeySpec struct {
	// Name is the CLI-facing key name (e.g. "project-id").
	Name string

	// Description is a short human-readable explanation shown in help text.
	Description string

	// Get returns the current value for this key from a loaded Config.
	Get func(cfg *Config) string

	// Set applies a value for this key to the given Config (in memory only;
	// the caller is responsible for calling Save).
	Set func(cfg *Config, value string)

	// Validate rejects values the compiler would not accept. Nil accepts anything.
	Validate func(value string) error
}

// Keys is the authoritative list of all supported configuration keys.
// To add a new option: add a field to Config and append a KeySpec here.
var Keys = []KeySpec{
	{
		Name:        "project-id",
		Description: "Monitoring project used when the document sets none",
		Get:         func(cfg *Config) string { return cfg.ProjectID },
		Set:         func(cfg *Config, v string) { cfg.ProjectID = v },
		Validate:    util.ValidateProjectID,
	},
	{
		Name:        "target",
		Description: "Output target used when --target is not specified",
		Get:         func(cfg *Config) string { return cfg.Target },
		Set:         func(cfg *Config, v string) { cfg.Target = v },
	},
	{
		Name:        "default-duration",
		Description: "Alert duration for guarantees without a period (e.g. 60s, 0s)",
		Get:         func(cfg *Config) string { return cfg.DefaultDuration },
		Set:         func(cfg *Config, v string) { cfg.DefaultDuration = v },
		Validate:    validateDuration,
	},
	{
		Name:        "channel-scope",
		Description: "Channels attached to each alert: global or plan",
		Get:         func(cfg *Config) string { return cfg.ChannelScope },
		Set:         func(cfg *Config, v string) { cfg.ChannelScope = v },
		Validate: func(v string) error {
			_, err := channels.ParseScope(v)
			return err
		},
	},
	{
		Name:        "log-level",
		Description: "Diagnostic log level: debug, info, warn, or error",
		Get:         func(cfg *Config) string { return cfg.LogLevel },
		Set:         func(cfg *Config, v string) { cfg.LogLevel = v },
		Validate: func(v string) error {
			_, err := logging.ParseLevel(v)
			return err
		},
	},
}

func validateDuration(v string) error {
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", v, err)
	}
	if d < 0 || d%time.Second != 0 {
		return fmt.Errorf("duration %q must be a non-negative whole number of seconds", v)
	}
	return nil
}

// Lookup returns the KeySpec for the given name, or nil if not found.
// The name is matched case-insensitively after trimming whitespace.
func Lookup(name string) *KeySpec {
	normalized := util.NormalizeKey(name)
	for i := range Keys {
		if Keys[i].Name == normalized {
			return &Keys[i]
		}
	}
	return nil
}

// KeyNames returns the names of all registered keys.
func KeyNames() []string {
	names := make([]string, len(Keys))
	for i, k := range Keys {
		names[i] = k.Name
	}
	return names
}

// KeysHelp builds a formatted block listing all available keys and their
// descriptions, suitable for inclusion in Cobra Long help text.
func KeysHelp() string {
	if len(Keys) == 0 {
		return ""
	}

	// Find the longest key name for alignment.
	maxLen := 0
	for _, k := range Keys {
		if len(k.Name) > maxLen {
			maxLen = len(k.Name)
		}
	}

	var b strings.Builder
	b.WriteString("Available keys:\n")
	for _, k := range Keys {
		fmt.Fprintf(&b, "  %-*s   %s\n", maxLen, k.Name, k.Description)
	}
	return b.String()
}
