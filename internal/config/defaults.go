package config

import "path/filepath"

const (
	defaultHome  = "/opt/paradium"
	defaultVHome = "/var/paradium"
)

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Home:  defaultHome,
			VHome: defaultVHome,
		},
		Server: ServerConfig{
			Listen: ":8080",
		},
		Engine: EngineConfig{
			Backend: "mpd",
		},
		MPD: MPDConfig{
			Host:      "127.0.0.1",
			Port:      6600,
			Keepalive: 30,
		},
		Sonos: SonosConfig{
			Port:    1400,
			Timeout: 10,
		},
		Power: PowerConfig{
			Enabled: true,
			Command: []string{"/sbin/halt"},
		},
		Client: ClientConfig{
			URL:     "http://127.0.0.1:8080",
			Timeout: 5,
		},
		Tail: TailConfig{
			Interval: 2000,
		},
		TUI: TUIConfig{
			RefreshInterval: 1000,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 10,
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	// Paths
	if c.Paths.Home == "" {
		c.Paths.Home = d.Paths.Home
	}
	if c.Paths.VHome == "" {
		c.Paths.VHome = d.Paths.VHome
	}
	c.resolvePaths()

	// Server
	if c.Server.Listen == "" {
		c.Server.Listen = d.Server.Listen
	}

	// Engine
	if c.Engine.Backend == "" {
		c.Engine.Backend = d.Engine.Backend
	}

	// MPD
	if c.MPD.Host == "" {
		c.MPD.Host = d.MPD.Host
	}
	if c.MPD.Port == 0 {
		c.MPD.Port = d.MPD.Port
	}
	if c.MPD.Keepalive == 0 {
		c.MPD.Keepalive = d.MPD.Keepalive
	}

	// Sonos
	if c.Sonos.Port == 0 {
		c.Sonos.Port = d.Sonos.Port
	}
	if c.Sonos.Timeout == 0 {
		c.Sonos.Timeout = d.Sonos.Timeout
	}

	// Power
	if len(c.Power.Command) == 0 {
		c.Power.Command = d.Power.Command
	}

	// Client
	if c.Client.URL == "" {
		c.Client.URL = d.Client.URL
	}
	if c.Client.Timeout == 0 {
		c.Client.Timeout = d.Client.Timeout
	}

	// Tail
	if c.Tail.Interval == 0 {
		c.Tail.Interval = d.Tail.Interval
	}

	// TUI
	if c.TUI.RefreshInterval == 0 {
		c.TUI.RefreshInterval = d.TUI.RefreshInterval
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = d.Log.MaxSizeMB
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = d.Log.MaxBackups
	}
}

// resolvePaths derives file locations that were not set explicitly.
func (c *Config) resolvePaths() {
	if c.Paths.Stations == "" {
		c.Paths.Stations = filepath.Join(c.Paths.Home, "htdocs", "stations.xml")
	}
	if c.Paths.State == "" {
		c.Paths.State = filepath.Join(c.Paths.VHome, "data.xml")
	}
	if c.Server.HTDocs == "" {
		c.Server.HTDocs = filepath.Join(c.Paths.Home, "htdocs")
	}
}
