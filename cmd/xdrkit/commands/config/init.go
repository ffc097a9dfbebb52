package config

import (
	"fmt"

	"github.com/marmos91/xdrkit/cmd/xdrkit/cmdutil"
	"github.com/marmos91/xdrkit/pkg/config"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Write the default configuration to the config file location.

Examples:
  # Create the default config
  xdrkit config init

  # Overwrite an existing file at a custom path
  xdrkit config init --config ./xdrkit.yaml --force`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}
	cmd.Flags().Bool("force", false, "Overwrite an existing configuration file")
	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	var (
		path string
		err  error
	)
	if cmdutil.Flags.ConfigPath != "" {
		path, err = config.InitConfigAt(cmdutil.Flags.ConfigPath, force)
	} else {
		path, err = config.InitConfig(force)
	}
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", path)
	return nil
}
