package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
)

// Load reads configuration from standard locations with environment overrides.
// Search order: $PARADIUM_CONFIG, ~/.paradiumrc, $XDG_CONFIG_HOME/paradium/config.toml,
// /etc/paradium/config.toml
func Load() (*Config, error) {
	cfg := &Config{}

	// Try loading from file
	path := FindConfigFile()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	// Environment first so derived paths follow PARADIUM_HOME/PARADIUM_VHOME
	applyEnvOverrides(cfg)
	cfg.ApplyDefaults()

	return cfg, nil
}

// LoadFrom reads configuration from a specific file path.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	applyEnvOverrides(cfg)
	cfg.ApplyDefaults()
	return cfg, nil
}

// Write encodes cfg as TOML at path, creating parent directories.
func Write(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// SearchPaths returns the candidate config file locations in priority order.
func SearchPaths() []string {
	var paths []string

	if v := os.Getenv("PARADIUM_CONFIG"); v != "" {
		paths = append(paths, v)
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".paradiumrc"))
	}
	paths = append(paths,
		filepath.Join(xdg.ConfigHome, "paradium", "config.toml"),
		"/etc/paradium/config.toml",
	)

	return paths
}

// DefaultPath returns where a new user config file should be written.
func DefaultPath() string {
	if v := os.Getenv("PARADIUM_CONFIG"); v != "" {
		return v
	}
	return filepath.Join(xdg.ConfigHome, "paradium", "config.toml")
}

// FindConfigFile returns the first existing config file path.
func FindConfigFile() string {
	for _, p := range SearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	// Paths
	if v := os.Getenv("PARADIUM_HOME"); v != "" {
		cfg.Paths.Home = v
	}
	if v := os.Getenv("PARADIUM_VHOME"); v != "" {
		cfg.Paths.VHome = v
	}
	if v := os.Getenv("PARADIUM_STATIONS"); v != "" {
		cfg.Paths.Stations = v
	}

	// Server
	if v := os.Getenv("PARADIUM_LISTEN"); v != "" {
		cfg.Server.Listen = v
	}

	// Engine
	if v := os.Getenv("PARADIUM_ENGINE"); v != "" {
		cfg.Engine.Backend = strings.ToLower(v)
	}

	// MPD
	if v := os.Getenv("PARADIUM_MPDHOST"); v != "" {
		cfg.MPD.Host = v
	}
	if v := os.Getenv("PARADIUM_MPDPORT"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.MPD.Port = i
		}
	}
	if v := os.Getenv("PARADIUM_MPDPASSWORD"); v != "" {
		cfg.MPD.Password = v
	}

	// Sonos
	if v := os.Getenv("PARADIUM_SONOS_HOST"); v != "" {
		cfg.Sonos.Host = v
	}

	// Client
	if v := os.Getenv("PARADIUM_SERVER"); v != "" {
		cfg.Client.URL = v
	}

	// TUI
	if v := os.Getenv("PARADIUM_TUI_REFRESH_INTERVAL"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.TUI.RefreshInterval = i
		}
	}

	// Log
	if v := os.Getenv("PARADIUM_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("PARADIUM_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}
