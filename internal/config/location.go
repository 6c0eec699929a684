package config

import (
	"os"
	"path/filepath"
)

// GetConfigPath returns the configuration file path: $BEHAVE_CONFIG if set,
// otherwise ~/.behave/config.
func GetConfigPath() (string, error) {
	if configPath := os.Getenv("BEHAVE_CONFIG"); configPath != "" {
		return configPath, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".behave", "config"), nil
}
