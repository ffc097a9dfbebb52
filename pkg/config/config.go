// Package config loads the xdrkit CLI configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/marmos91/xdrkit/internal/bytesize"
	"github.com/marmos91/xdrkit/pkg/xdr"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g.
// XDRKIT_CODEC_MAX_LENGTH=64Ki.
const EnvPrefix = "XDRKIT"

// Config represents the xdrkit configuration.
//
// Configuration sources (in order of precedence):
//  1. CLI flags (highest priority)
//  2. Environment variables (XDRKIT_*)
//  3. Configuration file (YAML)
//  4. Default values (lowest priority)
type Config struct {
	// Logging controls log output behavior
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging" json:"logging"`

	// Codec controls decode limits and enum strictness
	Codec CodecConfig `mapstructure:"codec" yaml:"codec" json:"codec"`

	// Schema points at a schema document loaded before every command
	Schema SchemaConfig `mapstructure:"schema" yaml:"schema" json:"schema"`

	// Metrics enables codec metrics collection
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics" json:"metrics"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level to output
	// Valid values: DEBUG, INFO, WARN, ERROR (case-insensitive, normalized to uppercase)
	Level string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR" yaml:"level" json:"level"`

	// Format specifies the log output format
	// Valid values: text, json
	Format string `mapstructure:"format" validate:"required,oneof=text json" yaml:"format" json:"format"`

	// Output specifies where logs are written
	// Valid values: stdout, stderr, or a file path
	Output string `mapstructure:"output" validate:"required" yaml:"output" json:"output"`
}

// CodecConfig holds the settings applied to every registry the CLI builds.
type CodecConfig struct {
	// MaxLength caps the length prefix accepted for opaque data and
	// strings while decoding. Zero disables the limit. XDR length prefixes
	// are 32-bit, so larger values are rejected.
	// Default: 1Mi
	MaxLength bytesize.ByteSize `mapstructure:"max_length" validate:"lte=4294967295" yaml:"max_length" json:"max_length" jsonschema:"oneof_type=string;integer"`

	// LenientEnums accepts enum codes that are not registered members.
	// Default: false
	LenientEnums bool `mapstructure:"lenient_enums" yaml:"lenient_enums" json:"lenient_enums"`
}

// SchemaConfig locates the schema document.
type SchemaConfig struct {
	// Path of a YAML schema document. Empty means builtin types only.
	Path string `mapstructure:"path" yaml:"path" json:"path"`
}

// MetricsConfig toggles Prometheus codec metrics. When Enabled is false no
// metrics are collected.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
}

// RegistryOptions translates the codec settings into registry options.
func (c CodecConfig) RegistryOptions() ([]xdr.RegistryOption, error) {
	limit, err := c.MaxLength.Int()
	if err != nil {
		return nil, fmt.Errorf("codec.max_length: %w", err)
	}
	opts := []xdr.RegistryOption{xdr.WithMaxLength(limit)}
	if c.LenientEnums {
		opts = append(opts, xdr.WithLenientEnums())
	}
	return opts, nil
}

// Load loads configuration from file, environment, and defaults.
//
// A missing configuration file is not an error: environment variables are
// still applied on top of the defaults.
//
// Parameters:
//   - configPath: Path to config file (empty string uses default location)
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: Configuration loading or validation error
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)
	setViperDefaults(v)

	if _, err := readConfigFile(v, configPath); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(configDecodeHooks())); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// SaveConfig writes the configuration as YAML, creating parent directories.
func SaveConfig(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return writeConfigFile(path, data)
}

func writeConfigFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// setupViper configures environment variables and the config file location.
func setupViper(v *viper.Viper, configPath string) {
	// Example: XDRKIT_LOGGING_LEVEL=DEBUG
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(getConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
}

// setViperDefaults registers every key so AutomaticEnv can override keys
// that the config file does not mention.
func setViperDefaults(v *viper.Viper) {
	d := GetDefaultConfig()
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output", d.Logging.Output)
	v.SetDefault("codec.max_length", d.Codec.MaxLength.String())
	v.SetDefault("codec.lenient_enums", d.Codec.LenientEnums)
	v.SetDefault("schema.path", d.Schema.Path)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
}

// readConfigFile reads the configuration file if it exists. An explicit
// path that does not exist is an error; a missing default file is not.
func readConfigFile(v *viper.Viper, configPath string) (bool, error) {
	if configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return false, fmt.Errorf("configuration file not found: %s", configPath)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read config file: %w", err)
	}
	return true, nil
}

// configDecodeHooks returns the combined decode hook for custom types.
func configDecodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		byteSizeDecodeHook(),
		mapstructure.StringToTimeDurationHookFunc(),
	)
}

// byteSizeDecodeHook converts strings and numbers to bytesize.ByteSize, so
// limits can be written as "1Mi", "64KiB" or plain numbers.
func byteSizeDecodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if to != reflect.TypeOf(bytesize.ByteSize(0)) {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			return bytesize.Parse(v)
		case int:
			if v < 0 {
				return nil, fmt.Errorf("%w: %d", bytesize.ErrOverflow, v)
			}
			return bytesize.ByteSize(v), nil
		case int64:
			if v < 0 {
				return nil, fmt.Errorf("%w: %d", bytesize.ErrOverflow, v)
			}
			return bytesize.ByteSize(v), nil
		case uint64:
			return bytesize.ByteSize(v), nil
		case float64:
			// YAML often deserializes numbers as float64
			if v < 0 {
				return nil, fmt.Errorf("%w: %g", bytesize.ErrOverflow, v)
			}
			return bytesize.ByteSize(v), nil
		default:
			return data, nil
		}
	}
}

// getConfigDir returns $XDG_CONFIG_HOME/xdrkit, ~/.config/xdrkit, or the
// current directory when no home directory is known.
func getConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "xdrkit")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "xdrkit")
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}

// DefaultConfigExists checks if a config file exists at the default location.
func DefaultConfigExists() bool {
	_, err := os.Stat(GetDefaultConfigPath())
	return err == nil
}

// GetConfigDir returns the configuration directory path.
func GetConfigDir() string {
	return getConfigDir()
}
