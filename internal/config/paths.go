package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/fraglog/config.yml
// - macOS: ~/Library/Application Support/fraglog/config.yml
// - Windows: %APPDATA%\fraglog\config.yml
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "fraglog", "config.yml"), nil
}

// ProjectConfigPath returns the path to the project-level config file,
// always .fraglog/config.yml relative to the current directory.
func ProjectConfigPath() string {
	return filepath.Join(".fraglog", "config.yml")
}

// ProjectConfigDir returns the path to the project-level config directory.
func ProjectConfigDir() string {
	return ".fraglog"
}

// LegacyProjectConfigPath returns the path to the legacy JSON project
// config written by early versions of the tool.
func LegacyProjectConfigPath() string {
	return ".fraglog.json"
}
