// Package config implements the "xdrkit config" commands.
package config

import (
	"github.com/spf13/cobra"
)

// NewCmd returns the config command and its subcommands.
func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the xdrkit configuration",
		Long: `Create, inspect and validate the xdrkit configuration file.

The default location is $XDG_CONFIG_HOME/xdrkit/config.yaml. Use the global
--config flag to work with another file.`,
	}

	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newSchemaCmd())
	return cmd
}
