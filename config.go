package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/twosigma/ngrid/internal/gridlib"
)

// getConfigDir returns the configuration directory following the XDG
// Base Directory spec.
func getConfigDir() (string, error) {
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, "ngrid"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "ngrid"), nil
}

// loadConfig reads config.yaml over the built-in defaults. A missing
// directory or file just yields the defaults.
func loadConfig() (gridlib.Config, error) {
	configDir, err := getConfigDir()
	if err != nil {
		return gridlib.DefaultConfig(), nil
	}
	return gridlib.LoadConfig(filepath.Join(configDir, "config.yaml"))
}
