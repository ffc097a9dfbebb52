package config

import (
	"fmt"
	"os"

	"github.com/marmos91/xdrkit/cmd/xdrkit/cmdutil"
	"github.com/marmos91/xdrkit/pkg/config"
	"github.com/marmos91/xdrkit/pkg/xdr/schema"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validate the xdrkit configuration file.

Checks for syntax errors, invalid values and, when schema.path is set,
that the schema document compiles.

Examples:
  # Validate default config
  xdrkit config validate

  # Validate specific config file
  xdrkit config validate --config ./xdrkit.yaml`,
		Args: cobra.NoArgs,
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := cmdutil.Flags.ConfigPath

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	displayPath := configPath
	if displayPath == "" {
		displayPath = config.GetDefaultConfigPath()
		if !config.DefaultConfigExists() {
			displayPath += " (not found, using defaults)"
		}
	}

	var warnings []string
	if cfg.Codec.MaxLength == 0 {
		warnings = append(warnings, "codec.max_length is 0: decode length prefixes are not limited")
	}
	if cfg.Schema.Path != "" {
		if _, err := os.Stat(cfg.Schema.Path); err != nil {
			return fmt.Errorf("schema.path: %w", err)
		}
		doc, err := schema.Load(cfg.Schema.Path)
		if err != nil {
			return err
		}
		if _, err := doc.Registry(); err != nil {
			return fmt.Errorf("%s: %w", cfg.Schema.Path, err)
		}
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Configuration file: %s\n", displayPath)
	_, _ = fmt.Fprintln(out, "Validation: OK")

	if len(warnings) > 0 {
		_, _ = fmt.Fprintln(out, "\nWarnings:")
		for _, w := range warnings {
			_, _ = fmt.Fprintf(out, "  - %s\n", w)
		}
	}

	_, _ = fmt.Fprintf(out, "\nConfiguration summary:\n")
	_, _ = fmt.Fprintf(out, "  Log level:     %s\n", cfg.Logging.Level)
	_, _ = fmt.Fprintf(out, "  Max length:    %s\n", cfg.Codec.MaxLength)
	_, _ = fmt.Fprintf(out, "  Lenient enums: %t\n", cfg.Codec.LenientEnums)
	_, _ = fmt.Fprintf(out, "  Schema:        %s\n", cmdutil.EmptyOr(cfg.Schema.Path, "-"))
	_, _ = fmt.Fprintf(out, "  Metrics:       %t\n", cfg.Metrics.Enabled)

	return nil
}
