package config

import (
	"strings"

	"github.com/marmos91/xdrkit/internal/bytesize"
)

// DefaultMaxLength is the default decode limit for length prefixes.
const DefaultMaxLength = bytesize.MiB

// ApplyDefaults fills unspecified fields and normalizes values. Zero values
// are replaced; explicit values are preserved.
//
// Codec.MaxLength is left alone: zero is a meaningful "no limit" setting,
// and Load seeds the default before unmarshalling.
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
}

// applyLoggingDefaults sets logging defaults and normalizes values.
func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
	cfg.Format = strings.ToLower(cfg.Format)

	// stdout carries encoded and decoded values
	if cfg.Output == "" {
		cfg.Output = "stderr"
	}
}

// GetDefaultConfig returns a Config with all default values applied.
func GetDefaultConfig() *Config {
	cfg := &Config{
		Codec: CodecConfig{MaxLength: DefaultMaxLength},
	}
	ApplyDefaults(cfg)
	return cfg
}
