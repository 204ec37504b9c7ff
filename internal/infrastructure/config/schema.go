package config

import "time"

// Config represents the complete configuration for dragkit.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging" toml:"logging" json:"logging"`
	// Drag controls drag source behavior: preview animation and periodic re-emit.
	Drag DragConfig `mapstructure:"drag" yaml:"drag" toml:"drag" json:"drag"`
	// Zone controls index resolution for ordered drop zones.
	Zone ZoneConfig `mapstructure:"zone" yaml:"zone" toml:"zone" json:"zone"`
	// Bridge controls the cross-boundary drop handshake.
	Bridge BridgeConfig `mapstructure:"bridge" yaml:"bridge" toml:"bridge" json:"bridge"`
	// Host controls token minting on the host side.
	Host HostConfig `mapstructure:"host" yaml:"host" toml:"host" json:"host"`
	// Journal controls the persistent drag journal.
	Journal JournalConfig `mapstructure:"journal" yaml:"journal" toml:"journal" json:"journal"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is one of trace, debug, info, warn, error.
	Level string `mapstructure:"level" yaml:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error"`
	// Format is json, console or auto (console on a terminal).
	Format string `mapstructure:"format" yaml:"format" toml:"format" json:"format" jsonschema:"enum=auto,enum=json,enum=console"`
}

// DragConfig holds drag source settings.
type DragConfig struct {
	// TickInterval is how often Drag is re-published while the pointer is still.
	TickInterval time.Duration `mapstructure:"tick_interval" yaml:"tick_interval" toml:"tick_interval" json:"tick_interval" jsonschema:"type=string,description=Go duration such as 300ms"`
	// Animations enables the settle animation of the preview on drag end.
	Animations bool `mapstructure:"animations" yaml:"animations" toml:"animations" json:"animations"`
	// SettleDuration is the length of the settle animation.
	SettleDuration time.Duration `mapstructure:"settle_duration" yaml:"settle_duration" toml:"settle_duration" json:"settle_duration" jsonschema:"type=string"`
	// VelocityDecay is the exponential smoothing factor of the pointer velocity (0..1).
	VelocityDecay float64 `mapstructure:"velocity_decay" yaml:"velocity_decay" toml:"velocity_decay" json:"velocity_decay"`
	// VelocityWeight divides raw pointer deltas before smoothing.
	VelocityWeight float64 `mapstructure:"velocity_weight" yaml:"velocity_weight" toml:"velocity_weight" json:"velocity_weight"`
}

// ZoneConfig holds index resolution settings.
type ZoneConfig struct {
	// RowTolerance is the max vertical center distance for two grid items to share a row.
	RowTolerance float64 `mapstructure:"row_tolerance" yaml:"row_tolerance" toml:"row_tolerance" json:"row_tolerance"`
	// IndexColumnWidth is subtracted from horizontal pointer positions (list markers).
	IndexColumnWidth float64 `mapstructure:"index_column_width" yaml:"index_column_width" toml:"index_column_width" json:"index_column_width"`
}

// BridgeConfig holds cross-boundary bridge settings.
type BridgeConfig struct {
	// AppKey is the transfer type carrying the application identifier.
	AppKey string `mapstructure:"app_key" yaml:"app_key" toml:"app_key" json:"app_key"`
	// RetryAttempts is the number of metadata lookups before a drop is abandoned.
	RetryAttempts int `mapstructure:"retry_attempts" yaml:"retry_attempts" toml:"retry_attempts" json:"retry_attempts"`
	// RetryDelay is the wait between two lookups.
	RetryDelay time.Duration `mapstructure:"retry_delay" yaml:"retry_delay" toml:"retry_delay" json:"retry_delay" jsonschema:"type=string"`
	// CompatHosts receive rich-text drops as a paste event.
	CompatHosts []string `mapstructure:"compat_hosts" yaml:"compat_hosts" toml:"compat_hosts" json:"compat_hosts"`
	// Correlate discards payloads that arrive after their gesture ended.
	Correlate bool `mapstructure:"correlate" yaml:"correlate" toml:"correlate" json:"correlate"`
}

// HostConfig holds host token settings.
type HostConfig struct {
	// TokenTTL is how long a minted token stays redeemable.
	TokenTTL time.Duration `mapstructure:"token_ttl" yaml:"token_ttl" toml:"token_ttl" json:"token_ttl" jsonschema:"type=string"`
}

// JournalConfig holds drag journal settings.
type JournalConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled" toml:"enabled" json:"enabled"`
	// Path of the SQLite database; empty uses the XDG data directory.
	Path string `mapstructure:"path" yaml:"path" toml:"path" json:"path"`
	// RetentionDays prunes older entries on open; 0 keeps everything.
	RetentionDays int `mapstructure:"retention_days" yaml:"retention_days" toml:"retention_days" json:"retention_days"`
}
