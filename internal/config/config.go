// Package config handles loading and validation of the optional
// sqlite-glance configuration file. Configuration only supplies defaults;
// command-line flags always win.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// SupportedConfigNames contains the configuration file names searched in
// the config directory, in order of preference.
var SupportedConfigNames = []string{
	"config.yml",
	"config.yaml",
	"config.toml",
	"config.json",
}

// Config holds the user-tunable defaults.
type Config struct {
	// Limit is the default row limit for table views.
	Limit int `koanf:"limit"`
	// Hidden includes SQLite internal objects in output and completion.
	Hidden bool `koanf:"hidden"`
	// LogLevel sets the diagnostic verbosity (debug, info, warn, error).
	LogLevel string `koanf:"log_level"`
	// Color enables styled terminal output.
	Color bool `koanf:"color"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Limit:    12,
		LogLevel: "warn",
		Color:    true,
	}
}

// Dir returns the sqlite-glance configuration directory, honoring
// XDG_CONFIG_HOME.
func Dir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "sqlite-glance")
}

// FindConfig returns the path of the first existing config file in dir, or
// the empty string when none exists.
func FindConfig(dir string) string {
	for _, name := range SupportedConfigNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Load reads and parses one configuration file. Unset keys keep their
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	parser, err := parserFor(path)
	if err != nil {
		return cfg, err
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault loads the configuration from the standard location. A
// missing or broken file silently falls back to the defaults; the tool
// (and especially completion) keeps working either way.
func LoadDefault() Config {
	path := FindConfig(Dir())
	if path == "" {
		return Default()
	}
	cfg, err := Load(path)
	if err != nil {
		return Default()
	}
	return cfg
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".json":
		return kjson.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", path)
	}
}
