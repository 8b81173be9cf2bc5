package config

// Config is the root configuration structure.
type Config struct {
	Paths   PathsConfig   `toml:"paths"`
	Server  ServerConfig  `toml:"server"`
	Engine  EngineConfig  `toml:"engine"`
	MPD     MPDConfig     `toml:"mpd"`
	Sonos   SonosConfig   `toml:"sonos"`
	Power   PowerConfig   `toml:"power"`
	Catalog CatalogConfig `toml:"catalog"`
	Client  ClientConfig  `toml:"client"`
	Tail    TailConfig    `toml:"tail"`
	TUI     TUIConfig     `toml:"tui"`
	Log     LogConfig     `toml:"log"`
}

// PathsConfig holds the appliance's file locations.
type PathsConfig struct {
	// Home is the install directory (stations file and htdocs live here).
	Home string `toml:"home"`
	// VHome is the variable-data directory (session state lives here).
	VHome    string `toml:"vhome"`
	Stations string `toml:"stations"`
	State    string `toml:"state"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Listen string `toml:"listen"`
	HTDocs string `toml:"htdocs"`
}

// EngineConfig selects the playback engine backend.
type EngineConfig struct {
	Backend string `toml:"backend"`
}

// MPDConfig holds Music Player Daemon connection settings.
type MPDConfig struct {
	Host      string `toml:"host"`
	Port      int    `toml:"port"`
	Socket    string `toml:"socket"`
	Password  string `toml:"password"`
	Keepalive int    `toml:"keepalive"`
}

// SonosConfig holds Sonos renderer connection settings.
type SonosConfig struct {
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	Timeout int    `toml:"timeout"`
}

// PowerConfig holds host power-control settings.
type PowerConfig struct {
	Enabled bool     `toml:"enabled"`
	Command []string `toml:"command"`
}

// CatalogConfig holds station catalog settings.
type CatalogConfig struct {
	Watch bool `toml:"watch"`
}

// ClientConfig holds settings for commands that talk to a running server.
type ClientConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// TailConfig holds settings for tail/follow mode.
type TailConfig struct {
	Interval int `toml:"interval"`
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	RefreshInterval int `toml:"refresh_interval"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	JSON       bool   `toml:"json"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
}
