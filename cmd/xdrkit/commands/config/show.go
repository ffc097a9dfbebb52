package config

import (
	"github.com/marmos91/xdrkit/cmd/xdrkit/cmdutil"
	"github.com/marmos91/xdrkit/internal/cli/output"
	"github.com/marmos91/xdrkit/pkg/config"
	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration after defaults, the config file and XDRKIT_*
environment variables have been applied.

Examples:
  xdrkit config show
  XDRKIT_CODEC_MAX_LENGTH=64Ki xdrkit config show`,
		Args: cobra.NoArgs,
		RunE: runShow,
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmdutil.Flags.ConfigPath)
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(cmdutil.Flags.Output)
	if err != nil {
		return err
	}
	if format == output.FormatJSON {
		return output.PrintJSON(cmd.OutOrStdout(), cfg)
	}
	return output.PrintYAML(cmd.OutOrStdout(), cfg)
}
