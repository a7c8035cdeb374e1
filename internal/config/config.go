package config

import "time"

// Config holds client configuration values.
type Config struct {
	// ServerURL is the websocket endpoint the transport adapter dials.
	ServerURL string `mapstructure:"server_url" yaml:"server_url"`
	// LobbyURL is the HTTP endpoint for creating and joining sessions.
	LobbyURL string `mapstructure:"lobby_url" yaml:"lobby_url"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level"`

	// TickInterval drives the countdown refresh of the timer subsystem.
	TickInterval time.Duration `mapstructure:"tick_interval" yaml:"tick_interval"`

	ReconnectBase     time.Duration `mapstructure:"reconnect_base" yaml:"reconnect_base"`
	ReconnectCap      time.Duration `mapstructure:"reconnect_cap" yaml:"reconnect_cap"`
	ReconnectAttempts int           `mapstructure:"reconnect_attempts" yaml:"reconnect_attempts"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		ServerURL:         "ws://localhost:8080/ws",
		LobbyURL:          "http://localhost:8080",
		LogLevel:          "info",
		TickInterval:      time.Second,
		ReconnectBase:     500 * time.Millisecond,
		ReconnectCap:      15 * time.Second,
		ReconnectAttempts: 8,
	}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.ServerURL != "" {
		c.ServerURL = other.ServerURL
	}
	if other.LobbyURL != "" {
		c.LobbyURL = other.LobbyURL
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.TickInterval != 0 {
		c.TickInterval = other.TickInterval
	}
	if other.ReconnectBase != 0 {
		c.ReconnectBase = other.ReconnectBase
	}
	if other.ReconnectCap != 0 {
		c.ReconnectCap = other.ReconnectCap
	}
	if other.ReconnectAttempts != 0 {
		c.ReconnectAttempts = other.ReconnectAttempts
	}
}
