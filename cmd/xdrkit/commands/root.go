// Package commands implements the CLI commands for xdrkit.
package commands

import (
	"github.com/marmos91/xdrkit/cmd/xdrkit/cmdutil"
	configcmd "github.com/marmos91/xdrkit/cmd/xdrkit/commands/config"
	"github.com/spf13/cobra"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// NewRootCmd builds the command tree. Each call returns fresh commands, so
// flag values never leak between invocations.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "xdrkit",
		Short: "XDR encoder and decoder",
		Long: `xdrkit encodes and decodes XDR (RFC 4506) data.

Builtin types are always available. Enums and structs are declared in a
YAML schema document passed with --schema or configured in schema.path.

Use "xdrkit [command] --help" for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmdutil.SyncFlags(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			cmdutil.LogMetrics()
		},
	}

	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: $XDG_CONFIG_HOME/xdrkit/config.yaml)")
	rootCmd.PersistentFlags().String("schema", "", "Path to a schema document (overrides schema.path)")
	rootCmd.PersistentFlags().StringP("output", "o", "table", "Output format (table|json|yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (DEBUG|INFO|WARN|ERROR)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	rootCmd.AddCommand(newEncodeCmd())
	rootCmd.AddCommand(newDecodeCmd())
	rootCmd.AddCommand(newTypesCmd())
	rootCmd.AddCommand(newPadCmd())
	rootCmd.AddCommand(newSchemaCmd())
	rootCmd.AddCommand(configcmd.NewCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	// Hide the default completion command (we provide our own)
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	return rootCmd
}

// Execute runs the command tree against the process arguments.
func Execute() error {
	return NewRootCmd().Execute()
}
