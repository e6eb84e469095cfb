package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/LFroesch/hop/internal/logger"
)

// Config holds all Hop configuration
type Config struct {
	IndexPath    string `json:"index_path"`    // Override for the frecency index file location
	FrecentLimit int    `json:"frecent_limit"` // Max entries shown in the frecent list
	ShowHidden   bool   `json:"show_hidden"`   // Include dot-directories in the children listing
	ShortcutKeys string `json:"shortcut_keys"` // Custom shortcut alphabet, in priority order
}

// Load reads config from ~/.config/hop/hop-config.json
func Load() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		logger.Error("Failed to get home directory: %v", err)
		// Fallback to current directory
		homeDir = "."
	}
	configDir := filepath.Join(homeDir, ".config", "hop")
	configPath := filepath.Join(configDir, "hop-config.json")

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0755); err != nil {
		logger.Error("Failed to create config directory %s: %v", configDir, err)
	}

	defaultConfig := &Config{
		IndexPath:    filepath.Join(configDir, "hop.index"),
		FrecentLimit: 50,
		ShowHidden:   true,
	}

	// Try to load existing config
	data, err := os.ReadFile(configPath)
	if err != nil {
		// Save default config and return it
		if err := Save(defaultConfig); err != nil {
			logger.Warn("Failed to save default config: %v", err)
		}
		return defaultConfig
	}

	config := &Config{}
	if err := json.Unmarshal(data, config); err != nil {
		logger.Warn("Failed to parse config file %s: %v, using defaults", configPath, err)
		return defaultConfig
	}

	if config.IndexPath == "" {
		config.IndexPath = defaultConfig.IndexPath
	}

	// Validate and bound the frecent list limit
	if config.FrecentLimit <= 0 {
		config.FrecentLimit = defaultConfig.FrecentLimit
	} else if config.FrecentLimit > 500 {
		logger.Warn("FrecentLimit too high (%d), using maximum of 500", config.FrecentLimit)
		config.FrecentLimit = 500
	}

	return config
}

// Save writes config to ~/.config/hop/hop-config.json
func Save(config *Config) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		logger.Error("Failed to get home directory: %v", err)
		return fmt.Errorf("cannot get home directory: %w", err)
	}
	configDir := filepath.Join(homeDir, ".config", "hop")
	configPath := filepath.Join(configDir, "hop-config.json")

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0755); err != nil {
		logger.Error("Failed to create config directory %s: %v", configDir, err)
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		logger.Error("Failed to marshal config: %v", err)
		return fmt.Errorf("cannot marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		logger.Error("Failed to write config file %s: %v", configPath, err)
		return fmt.Errorf("cannot write config file: %w", err)
	}

	return nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "hop", "hop-config.json"), nil
}
