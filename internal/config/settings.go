package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings are the optional user preferences read from settings.yaml.
// Everything has a working default; a missing or unreadable file is not an
// error.
type Settings struct {
	// TimeoutSeconds bounds a single execution. 0 keeps the transport
	// default (no client-side timeout).
	TimeoutSeconds int `yaml:"timeoutSeconds"`

	// HistoryEnabled toggles the SQLite execution log.
	HistoryEnabled *bool `yaml:"historyEnabled"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"logLevel"`
}

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings() Settings {
	enabled := true
	return Settings{
		TimeoutSeconds: 0,
		HistoryEnabled: &enabled,
		LogLevel:       "info",
	}
}

// LoadSettings reads settings.yaml from path. A missing file returns the
// defaults silently; an invalid file returns the defaults plus the parse
// error so the caller can warn without aborting.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		return settings, nil
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return DefaultSettings(), fmt.Errorf("invalid settings file %s: %w", path, err)
	}

	if settings.HistoryEnabled == nil {
		enabled := true
		settings.HistoryEnabled = &enabled
	}
	if settings.LogLevel == "" {
		settings.LogLevel = "info"
	}

	return settings, nil
}
