// Package config handles the user's persistent promptlab configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the user's persistent configuration preferences.
type Config struct {
	PromptsDir    string `json:"prompts_dir,omitempty"`    // Override for the prompts root (default: ./prompts)
	DefaultAuthor string `json:"default_author,omitempty"` // Tag applied to newly created prompts
	Verbose       bool   `json:"verbose"`                  // Enable diagnostic logging by default
}

// Manager handles loading and saving the configuration.
type Manager struct {
	configDir string
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user config dir: %w", err)
	}

	return &Manager{
		configDir: filepath.Join(configDir, "promptlab"),
	}, nil
}

// GetConfigPath returns the absolute path to the config.json file.
func (m *Manager) GetConfigPath() string {
	return filepath.Join(m.configDir, "config.json")
}

// Load reads the configuration from disk.
// If the file does not exist, it returns an empty Config and no error.
func (m *Manager) Load() (*Config, error) {
	path := m.GetConfigPath()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config json: %w", err)
	}

	return &cfg, nil
}

// Save writes the configuration to disk with restricted permissions (0600).
func (m *Manager) Save(cfg *Config) error {
	if err := os.MkdirAll(m.configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(m.GetConfigPath(), data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Exists checks if the configuration file has been created.
func (m *Manager) Exists() bool {
	_, err := os.Stat(m.GetConfigPath())
	return !os.IsNotExist(err)
}
