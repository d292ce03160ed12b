package config

import (
	"os"
	"path/filepath"
)

// NoxPath returns the root directory for NOX data.
// It uses $NOX_PATH if set, otherwise defaults to ~/.nox.
func NoxPath() string {
	if v := os.Getenv("NOX_PATH"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".nox")
	}
	return filepath.Join(home, ".nox")
}

// ConfigPath returns the path to the NOX config file.
func ConfigPath() string {
	return filepath.Join(NoxPath(), "config.jsonc")
}

// DotenvPath returns the path to the NOX .env file.
func DotenvPath() string {
	return filepath.Join(NoxPath(), ".env")
}

// APIKeyPath returns the well-known credential file location.
func APIKeyPath() string {
	return filepath.Join(NoxPath(), "api_key.txt")
}

// TasksPath returns the default location of the task document.
func TasksPath() string {
	return filepath.Join(NoxPath(), "tasks.json")
}
