package config

import (
	"fmt"
	"os"
	"strings"

	"nathanbeddoewebdev/slatf/internal/config"
	"nathanbeddoewebdev/slatf/internal/tui"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	stdoutIsTerminal = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }
	runConfigView    = tui.RunConfigView
)

// GetCommand returns the "config get" command.
func GetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get [key]",
		Short: "Get a configuration value",
		Long: "Print the effective value of a configuration key, with SLATF_\n" +
			"environment overrides applied.\n\n" +
			"Without a key, running in a terminal opens an interactive viewer where\n" +
			"the stored settings can be edited; otherwise every key is listed.\n\n" +
			config.KeysHelp() +
			"\nExamples:\n" +
			"  slatf config get               # interactive viewer\n" +
			"  slatf config get project-id    # print a single value",
		Args:         cobra.MaximumNArgs(1),
		RunE:         runGet,
		SilenceUsage: true,
	}

	return cmd
}

func runGet(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		if stdoutIsTerminal() {
			if err := runConfigView(); err != nil {
				return fmt.Errorf("config view failed: %w", err)
			}
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		for _, spec := range config.Keys {
			value := spec.Get(cfg)
			if value == "" {
				value = "(not set)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", spec.Name, value)
		}
		return nil
	}

	spec := config.Lookup(args[0])
	if spec == nil {
		return fmt.Errorf("unknown configuration key %q (valid: %s)", args[0], strings.Join(config.KeyNames(), ", "))
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	value := spec.Get(cfg)
	if value == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "not set")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), value)
	}
	return nil
}
