package config

import (
	"nathanbeddoewebdev/slatf/internal/config"

	"github.com/spf13/cobra"
)

// NewCommand returns the "config" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage slatf configuration",
		Long: "View and modify persistent slatf settings.\n\n" +
			"Configuration is stored at ~/.config/slatf/config.json. Every key can be\n" +
			"overridden with an SLATF_ environment variable (e.g. SLATF_PROJECT_ID).\n\n" +
			config.KeysHelp(),
	}

	cmd.AddCommand(SetCommand())
	cmd.AddCommand(GetCommand())

	return cmd
}
