package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// FilePermissions is the default permission mode for regular files
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories
	DirPermissions = 0755
)

var (
	// ConfigDir is the global configuration directory (~/.reqman)
	ConfigDir string

	// RequestsFile is the durable request store
	RequestsFile string

	// DatabasePath is the SQLite database file for the execution history
	DatabasePath string

	// SessionFile is the session state file
	SessionFile string

	// SettingsFile is the optional YAML settings file
	SettingsFile string

	// LogDir holds rotated application logs
	LogDir string
)

// Initialize sets up the configuration directories and files.
// It creates ~/.reqman/ if it doesn't exist.
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	ConfigDir = filepath.Join(homeDir, ".reqman")
	RequestsFile = filepath.Join(ConfigDir, "requests.json")
	DatabasePath = filepath.Join(ConfigDir, "reqman.db")
	SessionFile = filepath.Join(ConfigDir, "session.json")
	SettingsFile = filepath.Join(ConfigDir, "settings.yaml")
	LogDir = filepath.Join(ConfigDir, "logs")

	for _, dir := range []string{ConfigDir, LogDir} {
		if err := os.MkdirAll(dir, DirPermissions); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
