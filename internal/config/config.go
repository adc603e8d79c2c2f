// Package config provides hierarchical configuration management for fraglog
// using koanf. Configuration is loaded with priority: environment variables >
// project config (.fraglog/config.yml) > user config (~/.config/fraglog/config.yml)
// > defaults. A legacy JSON project config (.fraglog.json) is still read,
// with a migration warning.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix is the prefix for environment variable overrides,
// e.g. FRAGLOG_FRAGMENTS_DIR.
const envPrefix = "FRAGLOG_"

// Configuration holds the fraglog settings.
type Configuration struct {
	// FragmentsDir is the directory holding unreleased fragment files.
	FragmentsDir string `koanf:"fragments_dir"`
	// Changelog is the path to the changelog document.
	Changelog string `koanf:"changelog"`
	// DefaultCategory is used by `fraglog add` when no category flag is given.
	DefaultCategory string `koanf:"default_category"`
	// RepoURL points `fraglog update` at a fork's GitHub repository for
	// its latest-release lookup. Empty uses the canonical repository.
	RepoURL string `koanf:"repo_url"`
}

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .fraglog/config.yml)
	ProjectConfigPath string
	// WarningWriter receives deprecation warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses deprecation warnings
	SkipWarnings bool
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options.
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := opts.WarningWriter
	if warningWriter == nil {
		warningWriter = os.Stderr
	}

	loadDefaults(k)

	if err := loadUserConfig(k); err != nil {
		return nil, err
	}

	if err := loadProjectConfig(k, opts.ProjectConfigPath, warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling configuration: %w", err)
	}

	return &cfg, nil
}

// loadDefaults populates the built-in default values.
func loadDefaults(k *koanf.Koanf) {
	defaults := map[string]interface{}{
		"fragments_dir":    ".changelog.d",
		"changelog":        "CHANGELOG.md",
		"default_category": "Changed",
		"repo_url":         "",
	}
	for key, value := range defaults {
		_ = k.Set(key, value)
	}
}

// loadUserConfig merges the user-level YAML config when it exists.
func loadUserConfig(k *koanf.Koanf) error {
	path, err := UserConfigPath()
	if err != nil {
		// No resolvable home directory; user config is simply skipped.
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("loading user config %s: %w", path, err)
	}
	return nil
}

// loadProjectConfig merges the project-level config. The YAML path wins;
// the legacy JSON file is read only when no YAML config exists.
func loadProjectConfig(k *koanf.Koanf, override string, warningWriter io.Writer, skipWarnings bool) error {
	path := override
	if path == "" {
		path = ProjectConfigPath()
	}

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return fmt.Errorf("loading project config %s: %w", path, err)
		}
		return nil
	}

	legacy := LegacyProjectConfigPath()
	if _, err := os.Stat(legacy); err == nil {
		if err := k.Load(file.Provider(legacy), json.Parser()); err != nil {
			return fmt.Errorf("loading legacy project config %s: %w", legacy, err)
		}
		if !skipWarnings {
			fmt.Fprintf(warningWriter,
				"Warning: %s is deprecated; move settings to %s\n", legacy, ProjectConfigPath())
		}
	}
	return nil
}

// loadEnvironmentConfig merges FRAGLOG_* environment variables.
// FRAGLOG_FRAGMENTS_DIR maps to fragments_dir, and so on.
func loadEnvironmentConfig(k *koanf.Koanf) error {
	provider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	})
	if err := k.Load(provider, nil); err != nil {
		return fmt.Errorf("loading environment config: %w", err)
	}
	return nil
}
