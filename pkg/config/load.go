// Package config handles configuration loading and validation for aurup.
// Configuration is YAML-based with built-in defaults covering the common
// Arch setup, so a config file is optional.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ajxudir/aurup/pkg/verbose"
)

// LoadConfig loads configuration from the specified path or defaults.
//
// If configPath is provided, it loads that specific config file.
// Otherwise, it looks for .aurup.yml in the working directory.
// If no config is found, it returns the built-in default configuration.
// Loaded values are merged over the defaults so partial config files work.
//
// Parameters:
//   - configPath: path to the config file, or empty to use defaults
//   - workDir: working directory for the configuration
//
// Returns:
//   - *Config: the loaded and validated configuration
//   - error: any error encountered during loading or validation
func LoadConfig(configPath, workDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		verbose.Infof("Loading config from: %s", configPath)
		if err := mergeConfigFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		localConfig := filepath.Join(workDir, DefaultConfigFile)
		if _, err := os.Stat(localConfig); err == nil {
			verbose.Infof("Found local config: %s", localConfig)
			if err := mergeConfigFile(cfg, localConfig); err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else {
			verbose.Info("Using built-in default configuration")
		}
	}

	if workDir != "" {
		cfg.WorkingDir = workDir
	} else if cfg.WorkingDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to determine working directory: %w", err)
		}
		cfg.WorkingDir = wd
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// mergeConfigFile reads a YAML config file into an existing configuration.
//
// Fields absent from the file keep their current (default) values; the
// zero values of toggles present in the file win, matching yaml.v3
// unmarshal semantics into a pre-populated struct.
//
// Parameters:
//   - cfg: The configuration to merge into
//   - path: The YAML file to read
//
// Returns:
//   - error: Read or parse error, or nil on success
func mergeConfigFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	return nil
}
