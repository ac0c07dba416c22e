package cmd

import (
	"os"

	"nathanbeddoewebdev/slatf/cmd/commands/compile"
	cfgcmd "nathanbeddoewebdev/slatf/cmd/commands/config"
	"nathanbeddoewebdev/slatf/internal/monitoring/emitters"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
func rootCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "slatf",
		Short: "Compile SLA documents into cloud monitoring resources",
		Long: `slatf compiles service level agreement documents into monitoring
configuration: metric descriptors, notification channels, and one alert
policy per measurable guarantee, firing when the guarantee is broken.

Supported targets: gcp-terraform (Google Cloud Monitoring via Terraform).

Quick start:
  slatf config set project-id my-gcp-project   # Default monitoring project
  slatf compile sla.yaml > monitoring.tf       # Compile one document
  slatf compile sla.yaml --preview             # Page through the result`,
	}

	cmd.AddCommand(compile.NewCommand())
	cmd.AddCommand(cfgcmd.NewCommand())

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	emitters.RegisterGoogleTerraform()

	var root = rootCmd()
	err := root.Execute()
	if err != nil {
		os.Exit(1)
	}
}
