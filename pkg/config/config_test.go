package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/marmos91/xdrkit/internal/bytesize"
	"github.com/marmos91/xdrkit/pkg/xdr"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
  format: json

codec:
  max_length: 64Ki
  lenient_enums: true

schema:
  path: /etc/xdrkit/types.yaml
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("Expected level normalized to DEBUG, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Expected format json, got %q", cfg.Logging.Format)
	}
	if cfg.Logging.Output != "stderr" {
		t.Errorf("Expected default output stderr, got %q", cfg.Logging.Output)
	}
	if cfg.Codec.MaxLength != 64*bytesize.KiB {
		t.Errorf("Expected max_length 64Ki, got %v", cfg.Codec.MaxLength)
	}
	if !cfg.Codec.LenientEnums {
		t.Error("Expected lenient_enums true")
	}
	if cfg.Schema.Path != "/etc/xdrkit/types.yaml" {
		t.Errorf("Unexpected schema path %q", cfg.Schema.Path)
	}
	if cfg.Metrics.Enabled {
		t.Error("Expected metrics disabled by default")
	}
}

func TestLoad_PlainNumberLimit(t *testing.T) {
	cfg, err := Load(writeConfig(t, "codec:\n  max_length: 0\n"))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Codec.MaxLength != 0 {
		t.Errorf("Expected explicit zero limit to be kept, got %v", cfg.Codec.MaxLength)
	}
}

func TestLoad_MissingDefaultFileUsesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Failed to load defaults: %v", err)
	}
	if cfg.Codec.MaxLength != DefaultMaxLength {
		t.Errorf("Expected default max_length %v, got %v", DefaultMaxLength, cfg.Codec.MaxLength)
	}
	if cfg.Logging.Level != "INFO" {
		t.Errorf("Expected default level INFO, got %q", cfg.Logging.Level)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Expected error for missing explicit config file")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDRKIT_CODEC_MAX_LENGTH", "2Mi")
	t.Setenv("XDRKIT_CODEC_LENIENT_ENUMS", "true")
	t.Setenv("XDRKIT_LOGGING_LEVEL", "warn")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Codec.MaxLength != 2*bytesize.MiB {
		t.Errorf("Expected env max_length 2Mi, got %v", cfg.Codec.MaxLength)
	}
	if !cfg.Codec.LenientEnums {
		t.Error("Expected env lenient_enums true")
	}
	if cfg.Logging.Level != "WARN" {
		t.Errorf("Expected env level WARN, got %q", cfg.Logging.Level)
	}
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	path := writeConfig(t, "codec:\n  max_length: 1Ki\n")
	t.Setenv("XDRKIT_CODEC_MAX_LENGTH", "4Ki")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Codec.MaxLength != 4*bytesize.KiB {
		t.Errorf("Expected env to win, got %v", cfg.Codec.MaxLength)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"BadSize", "codec:\n  max_length: lots\n", "unmarshal"},
		{"BadFormat", "logging:\n  format: xml\n", "oneof"},
		{"LimitBeyondPrefix", "codec:\n  max_length: 8Gi\n", "lte"},
		{"BrokenYAML", "codec: [\n", "read config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got: %v", tt.want, err)
			}
		})
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Codec.MaxLength = 3 * bytesize.MiB
	cfg.Schema.Path = "types.yaml"

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read config: %v", err)
	}
	if !strings.Contains(string(content), "max_length: 3Mi") {
		t.Errorf("Expected human-readable size in saved config, got:\n%s", content)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to reload config: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("Round trip mismatch: got %+v, want %+v", *loaded, *cfg)
	}
}

func TestInitConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path, err := InitConfig(false)
	if err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}
	if path != GetDefaultConfigPath() || !DefaultConfigExists() {
		t.Fatalf("Config not written to default path %s", GetDefaultConfigPath())
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read config: %v", err)
	}
	for _, section := range []string{"# xdrkit configuration file", "logging:", "codec:", "schema:", "metrics:"} {
		if !strings.Contains(string(content), section) {
			t.Errorf("Config file missing section: %s", section)
		}
	}

	if _, err := InitConfig(false); err == nil {
		t.Error("Expected error when config already exists")
	}
	if _, err := InitConfig(true); err != nil {
		t.Errorf("Expected force to overwrite, got %v", err)
	}
}

func TestCodecConfig_RegistryOptions(t *testing.T) {
	cfg := CodecConfig{MaxLength: 8, LenientEnums: true}
	opts, err := cfg.RegistryOptions()
	if err != nil {
		t.Fatalf("RegistryOptions failed: %v", err)
	}

	reg := xdr.NewRegistry(opts...)
	if err := reg.DefineEnum("flag", xdr.EnumMember{Name: "ON", Code: 1}); err != nil {
		t.Fatalf("DefineEnum failed: %v", err)
	}

	buf, err := reg.NewWriter().WriteString("0123456789").WriteUint32(42).Bytes()
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	r := reg.NewReader(buf)
	if _, err := r.Decode("string"); err == nil {
		t.Error("Expected max_length to reject a 10-byte string")
	}

	r = reg.NewReader(buf[16:])
	v, err := r.Decode("flag")
	if err != nil {
		t.Fatalf("Expected lenient enum decode, got %v", err)
	}
	if v != uint32(42) {
		t.Errorf("Expected raw code 42, got %v", v)
	}
}
