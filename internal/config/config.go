// Package config loads flowboard configuration from the user's config
// directory, falling back to defaults when no file exists.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Workflow WorkflowConfig `yaml:"workflow"`
	Daemon   DaemonConfig   `yaml:"daemon"`
}

// DatabaseConfig controls where issue data is stored
type DatabaseConfig struct {
	Path string `yaml:"path"` // Empty means ~/.flowboard/flowboard.db
}

// WorkflowConfig controls workflow defaults applied to new projects
type WorkflowConfig struct {
	DefaultWIPLimit int `yaml:"default_wip_limit"`
}

// DaemonConfig controls the live-update daemon
type DaemonConfig struct {
	SocketPath string `yaml:"socket_path"` // Empty means ~/.flowboard/daemon.sock
}

// Load loads config from the user's config directory.
// Returns default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		// Return default config if we can't determine config path
		return defaultConfig(), nil
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return defaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	// Fill in any missing values with defaults
	config.applyDefaults()

	return &config, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "flowboard", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "flowboard", "config.yaml"), nil
}

// SocketPath returns the configured daemon socket path, resolving the default
func (c *Config) SocketPath() (string, error) {
	if c.Daemon.SocketPath != "" {
		return c.Daemon.SocketPath, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".flowboard", "daemon.sock"), nil
}

func defaultConfig() *Config {
	config := &Config{}
	config.applyDefaults()
	return config
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.Workflow.DefaultWIPLimit <= 0 {
		c.Workflow.DefaultWIPLimit = 5
	}
}
