package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const configHeader = `# xdrkit configuration file
#
# Every key can be overridden with an XDRKIT_ environment variable, e.g.
#   XDRKIT_CODEC_MAX_LENGTH=64Ki
#   XDRKIT_LOGGING_LEVEL=DEBUG

`

// InitConfig writes the default configuration to the default location and
// returns its path. An existing file is only replaced when force is set.
func InitConfig(force bool) (string, error) {
	return InitConfigAt(GetDefaultConfigPath(), force)
}

// InitConfigAt writes the default configuration to path.
func InitConfigAt(path string, force bool) (string, error) {
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
	}

	data, err := yaml.Marshal(GetDefaultConfig())
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := writeConfigFile(path, append([]byte(configHeader), data...)); err != nil {
		return "", err
	}
	return path, nil
}
