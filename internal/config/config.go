// Package config loads the skilld configuration from config.yaml with
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"skilld/pkg/logging"
)

const (
	userConfigDir  = ".config/skilld"
	configFileName = "config.yaml"
)

// Config is the daemon configuration. Values come from defaults, then
// config.yaml, then SKILLD_* environment variables, in that order.
type Config struct {
	// SkillRoot is the directory tree holding capability description files
	SkillRoot string `yaml:"skillRoot" env:"SKILLD_SKILL_ROOT"`

	// ExecutionTimeout bounds a single handler execution
	ExecutionTimeout time.Duration `yaml:"executionTimeout" env:"SKILLD_EXECUTION_TIMEOUT"`

	// DebounceInterval is how long the watcher waits for additional
	// changes to the same file before reloading it
	DebounceInterval time.Duration `yaml:"debounceInterval" env:"SKILLD_DEBOUNCE_INTERVAL"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"logLevel" env:"SKILLD_LOG_LEVEL"`

	// Analytics enables the execution analytics log emitter
	Analytics bool `yaml:"analytics" env:"SKILLD_ANALYTICS"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		SkillRoot:        "skills",
		ExecutionTimeout: 30 * time.Second,
		DebounceInterval: 500 * time.Millisecond,
		LogLevel:         "info",
		Analytics:        true,
	}
}

// DefaultConfigPath returns the per-user configuration directory.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user config directory: %w", err)
	}
	return filepath.Join(homeDir, userConfigDir), nil
}

// Load loads configuration from the given directory. A missing config.yaml
// is not an error; defaults plus environment overrides apply.
func Load(configPath string) (Config, error) {
	config := Default()

	configFilePath := filepath.Join(configPath, configFileName)
	data, err := os.ReadFile(configFilePath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		logging.Info("ConfigLoader", "No config.yaml found at %s, using defaults", configFilePath)
	case err != nil:
		return Config{}, fmt.Errorf("error reading config from %s: %w", configFilePath, err)
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return Config{}, fmt.Errorf("error loading config from %s: %w", configFilePath, err)
		}
		logging.Info("ConfigLoader", "Loaded configuration from %s", configFilePath)
	}

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("error applying environment overrides: %w", err)
	}
	return config, nil
}
