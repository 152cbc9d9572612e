// Package yaml provides YAML-based configuration and artifact record
// storage implementations.
package yaml

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied to absent config fields
const (
	defaultTimeout         = 30 * time.Second
	defaultMaxRedeliveries = 3
)

// yamlConfig represents the raw YAML structure
type yamlConfig struct {
	Server            string `yaml:"server"`
	PreliminaryServer string `yaml:"preliminary_server"`
	TimeoutSeconds    int    `yaml:"timeout_seconds"`
	TempDir           string `yaml:"temp_dir"`
	Keyring           string `yaml:"keyring"`
	MaxRedeliveries   *int   `yaml:"max_redeliveries"`
}

// Config holds process configuration for the signing pipeline. It is
// passed explicitly into constructors; nothing reads ambient globals.
type Config struct {
	// Server signs public artifacts; PreliminaryServer signs the rest.
	// Either may be empty, which disables signing for that route.
	Server            string
	PreliminaryServer string

	// Timeout bounds one submission to the signing authority
	Timeout time.Duration

	// TempDir is where per-attempt working copies are written
	TempDir string

	// Keyring optionally points at an armored key file for upstream
	// signature verification
	Keyring string

	// MaxRedeliveries caps task redelivery in the dispatcher
	MaxRedeliveries uint64
}

// LoadConfig reads and validates a signing config file
func LoadConfig(path string) (*Config, error) {
	//nolint:gosec // G304: config path is operator-provided
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var raw yamlConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if raw.TimeoutSeconds < 0 {
		return nil, fmt.Errorf("timeout_seconds must not be negative")
	}

	config := &Config{
		Server:            raw.Server,
		PreliminaryServer: raw.PreliminaryServer,
		Timeout:           time.Duration(raw.TimeoutSeconds) * time.Second,
		TempDir:           raw.TempDir,
		Keyring:           raw.Keyring,
		MaxRedeliveries:   defaultMaxRedeliveries,
	}

	if raw.TimeoutSeconds == 0 {
		config.Timeout = defaultTimeout
	}
	if config.TempDir == "" {
		config.TempDir = os.TempDir()
	}
	if raw.MaxRedeliveries != nil {
		if *raw.MaxRedeliveries < 0 {
			return nil, fmt.Errorf("max_redeliveries must not be negative")
		}
		config.MaxRedeliveries = uint64(*raw.MaxRedeliveries)
	}

	return config, nil
}
