// Package cmdutil provides shared utilities for xdrkit commands.
package cmdutil

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/marmos91/xdrkit/internal/cli/output"
	"github.com/marmos91/xdrkit/internal/logger"
	"github.com/marmos91/xdrkit/pkg/config"
	"github.com/marmos91/xdrkit/pkg/metrics"
	"github.com/marmos91/xdrkit/pkg/metrics/prometheus"
	"github.com/marmos91/xdrkit/pkg/xdr"
	"github.com/marmos91/xdrkit/pkg/xdr/schema"
	"github.com/spf13/cobra"
)

// Flags stores global flag values accessible by subcommands.
var Flags = &GlobalFlags{}

// GlobalFlags holds the global flag values.
type GlobalFlags struct {
	ConfigPath string
	SchemaPath string
	Output     string
	LogLevel   string
	NoColor    bool
}

// SyncFlags copies the persistent flags of cmd into Flags.
func SyncFlags(cmd *cobra.Command) {
	Flags.ConfigPath, _ = cmd.Flags().GetString("config")
	Flags.SchemaPath, _ = cmd.Flags().GetString("schema")
	Flags.Output, _ = cmd.Flags().GetString("output")
	Flags.LogLevel, _ = cmd.Flags().GetString("log-level")
	Flags.NoColor, _ = cmd.Flags().GetBool("no-color")
}

// Env is the state shared by commands that encode or decode.
type Env struct {
	Config   *config.Config
	Registry *xdr.Registry
	Printer  *output.Printer
}

// Setup loads the configuration, configures logging and metrics, and
// compiles the schema into a registry. Flags override configured values.
func Setup(cmd *cobra.Command) (*Env, error) {
	cfg, err := config.Load(Flags.ConfigPath)
	if err != nil {
		return nil, err
	}
	if Flags.LogLevel != "" {
		cfg.Logging.Level = strings.ToUpper(Flags.LogLevel)
	}
	if Flags.SchemaPath != "" {
		cfg.Schema.Path = Flags.SchemaPath
	}

	if err := logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}); err != nil {
		return nil, err
	}

	opts, err := cfg.Codec.RegistryOptions()
	if err != nil {
		return nil, err
	}
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		opts = append(opts, xdr.WithMetrics(prometheus.NewCodecMetrics()))
	}

	reg := xdr.NewRegistry(opts...)
	if cfg.Schema.Path != "" {
		doc, err := schema.Load(cfg.Schema.Path)
		if err != nil {
			return nil, err
		}
		if err := doc.Apply(reg); err != nil {
			return nil, fmt.Errorf("%s: %w", cfg.Schema.Path, err)
		}
	}
	logger.Debug("registry ready", "types", len(reg.Names()),
		logger.SchemaPath(cfg.Schema.Path))

	printer, err := NewPrinter(cmd)
	if err != nil {
		return nil, err
	}
	return &Env{Config: cfg, Registry: reg, Printer: printer}, nil
}

// NewPrinter returns a printer writing results to the command's output and
// warnings to its error stream, in the format chosen by --output.
func NewPrinter(cmd *cobra.Command) (*output.Printer, error) {
	format, err := output.ParseFormat(Flags.Output)
	if err != nil {
		return nil, err
	}
	return output.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), format, ColorEnabled()), nil
}

// ColorEnabled reports whether warnings may use ANSI colour.
func ColorEnabled() bool {
	if Flags.NoColor {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return true
}

// DecodeHex parses a hex argument. Whitespace, colons and a leading "0x"
// are ignored so dumps can be pasted directly.
func DecodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', ':':
			return -1
		}
		return r
	}, s)
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex input: %w", err)
	}
	return data, nil
}

// LogMetrics writes a debug line per collected metric series. It does
// nothing when metrics are disabled.
func LogMetrics() {
	reg := metrics.GetRegistry()
	if reg == nil {
		return
	}
	families, err := reg.Gather()
	if err != nil {
		logger.Warn("failed to gather metrics", logger.Err(err))
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			args := []any{"metric", mf.GetName()}
			for _, lp := range m.GetLabel() {
				args = append(args, lp.GetName(), lp.GetValue())
			}
			switch {
			case m.GetCounter() != nil:
				args = append(args, "value", m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				args = append(args,
					"count", m.GetHistogram().GetSampleCount(),
					"sum", m.GetHistogram().GetSampleSum())
			}
			logger.Debug("codec metric", args...)
		}
	}
}

// EmptyOr returns value if non-empty, otherwise the fallback.
func EmptyOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
