// Package config loads puffin settings from defaults, an optional YAML file,
// and environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// DefaultAddr is the HTTP listen address when none is configured.
const DefaultAddr = "127.0.0.1:8000"

// Config holds user-configurable settings.
type Config struct {
	DBPath    string `yaml:"db_path"`
	Addr      string `yaml:"addr"`
	Timezone  string `yaml:"timezone"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		DBPath:    defaultDBPath(),
		Addr:      DefaultAddr,
		LogLevel:  "info",
		LogFormat: "json",
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".puffin", "puffin.db")
	}
	return filepath.Join(home, ".puffin", "puffin.db")
}

// Path returns the config file to read: explicit if set, then $PUFFIN_CONFIG,
// then ~/.config/puffin/config.yaml (or under $XDG_CONFIG_HOME).
func Path(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := strings.TrimSpace(os.Getenv("PUFFIN_CONFIG")); env != "" {
		return env
	}
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return filepath.Join(xdg, "puffin", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "puffin", "config.yaml")
}

// Load resolves the configuration. A missing file is not an error unless it
// was named explicitly.
func Load(explicit string) (Config, error) {
	cfg := Default()

	if path := Path(explicit); path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && explicit == "":
		default:
			return cfg, fmt.Errorf("read config: %w", err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PUFFIN_DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("PUFFIN_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("PUFFIN_TZ"); v != "" {
		c.Timezone = v
	}
	if v := os.Getenv("PUFFIN_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	if c.DBPath == "" {
		return errors.New("config: db_path is empty")
	}
	if c.Addr == "" {
		return errors.New("config: addr is empty")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: log_level: %w", err)
	}
	switch c.LogFormat {
	case "", "json", "console":
	default:
		return fmt.Errorf("config: log_format %q is not one of json, console", c.LogFormat)
	}
	return nil
}

// Location returns the time zone used for day boundaries. Empty means the
// process's local zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
