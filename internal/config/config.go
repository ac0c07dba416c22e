// Package config handles persistent user configuration for slatf.
//
// Configuration is stored as JSON at ~/.config/slatf/config.json (or the
// platform-equivalent path returned by os.UserConfigDir). Every key can be
// overridden by an SLATF_-prefixed environment variable, e.g.
// SLATF_PROJECT_ID.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	appDir    = "slatf"
	fileName  = "config.json"
	envPrefix = "SLATF"
)

// pathOverride, when non-empty, replaces the default config file path.
// Intended for testing. Use SetPath / ResetPath to manage.
var pathOverride string

// SetPath overrides the config file path. Intended for testing.
func SetPath(p string) { pathOverride = p }

// ResetPath clears the path override, reverting to the default. Intended for testing.
func ResetPath() { pathOverride = "" }

// Config holds user preferences that persist across invocations.
type Config struct {
	ProjectID       string `json:"project_id,omitempty" mapstructure:"project_id"`
	Target          string `json:"target,omitempty" mapstructure:"target"`
	DefaultDuration string `json:"default_duration,omitempty" mapstructure:"default_duration"`
	ChannelScope    string `json:"channel_scope,omitempty" mapstructure:"channel_scope"`
	LogLevel        string `json:"log_level,omitempty" mapstructure:"log_level"`
}

// envKeys are the Config fields bound to SLATF_<KEY> environment variables.
var envKeys = []string{"project_id", "target", "default_duration", "channel_scope", "log_level"}

// Path returns the absolute path to the config file.
// If SetPath has been called, that value is returned instead.
func Path() (string, error) {
	if pathOverride != "" {
		return pathOverride, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: unable to determine config directory: %w", err)
	}
	return filepath.Join(base, appDir, fileName), nil
}

// Load returns the effective configuration: the config file with
// environment overrides applied. A missing file is not an error.
func Load() (*Config, error) {
	return loadFrom("", true)
}

// LoadFile reads only the config file, ignoring the environment. Use it
// before Save so environment values are not persisted.
func LoadFile() (*Config, error) {
	return loadFrom("", false)
}

func loadFrom(path string, withEnv bool) (*Config, error) {
	if path == "" {
		var err error
		path, err = Path()
		if err != nil {
			return nil, err
		}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	if withEnv {
		v.SetEnvPrefix(envPrefix)
		for _, key := range envKeys {
			if err := v.BindEnv(key); err != nil {
				return nil, fmt.Errorf("config: bind %s: %w", key, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	return &cfg, nil
}

// Save writes the config to disk, creating the parent directory if needed.
func (c *Config) Save() error {
	return c.saveTo("")
}

// saveTo writes the config to the given path. If path is empty, the
// default Path() is used.
func (c *Config) saveTo(path string) error {
	if path == "" {
		var err error
		path, err = Path()
		if err != nil {
			return err
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("config: failed to create directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("config: failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: failed to write %s: %w", path, err)
	}

	return nil
}

// LoadFrom reads the config (with environment overrides) from the given
// path. Intended for testing.
func LoadFrom(path string) (*Config, error) {
	return loadFrom(path, true)
}

// SaveTo writes the config to the given path. Intended for testing.
func (c *Config) SaveTo(path string) error {
	return c.saveTo(path)
}
