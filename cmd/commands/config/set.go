package config

import (
	"fmt"
	"sort"
	"strings"

	"nathanbeddoewebdev/slatf/internal/config"
	"nathanbeddoewebdev/slatf/internal/monitoring/emitters"
	"nathanbeddoewebdev/slatf/internal/util"

	"github.com/spf13/cobra"
)

// SetCommand returns the "config set" command.
func SetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: "Set a persistent configuration value. An empty value clears the key.\n\n" +
			config.KeysHelp() +
			"\nExamples:\n" +
			"  slatf config set project-id my-gcp-project\n" +
			"  slatf config set default-duration 5m\n" +
			"  slatf config set channel-scope plan",
		Args: cobra.ExactArgs(2),
		Run:  runSet,
	}

	return cmd
}

// validators holds checks that depend on runtime registration and so
// cannot live in the KeySpec table.
var validators = map[string]func(cmd *cobra.Command, value string) error{
	"target": validateTarget,
}

func runSet(cmd *cobra.Command, args []string) {
	spec := config.Lookup(args[0])
	if spec == nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: unknown configuration key %q\n", args[0])
		fmt.Fprintf(cmd.ErrOrStderr(), "Valid keys: %s\n", strings.Join(config.KeyNames(), ", "))
		return
	}

	value := strings.TrimSpace(args[1])
	if value != "" && spec.Validate != nil {
		if err := spec.Validate(value); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: invalid value for %s: %v\n", spec.Name, err)
			return
		}
	}
	if validate, ok := validators[spec.Name]; ok && value != "" {
		if err := validate(cmd, value); err != nil {
			return // validate already printed the error
		}
	}

	// The file alone is loaded so environment overrides are not persisted.
	cfg, err := config.LoadFile()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}

	spec.Set(cfg, value)
	if err := cfg.Save(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}

	if value == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "%s cleared\n", spec.Name)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s set to %q\n", spec.Name, value)
}

// validateTarget checks that the given name is a registered emitter target.
func validateTarget(cmd *cobra.Command, name string) error {
	normalized := util.NormalizeKey(name)
	known := emitters.List()
	sort.Strings(known)
	for _, t := range known {
		if t == normalized {
			return nil
		}
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: unknown target %q\n", name)
	fmt.Fprintf(cmd.ErrOrStderr(), "Registered targets: %v\n", known)
	return fmt.Errorf("unknown target %q", name)
}
