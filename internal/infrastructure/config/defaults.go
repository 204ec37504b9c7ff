package config

import "time"

// Default configuration constants
const (
	defaultTickInterval   = 300 * time.Millisecond
	defaultSettleDuration = 150 * time.Millisecond
	defaultVelocityDecay  = 0.6
	defaultVelocityWeight = 9.0

	defaultRowTolerance = 10.0 // pixels

	defaultAppKey        = "application/x-dragkit-id"
	defaultRetryAttempts = 5
	defaultRetryDelay    = 5 * time.Millisecond

	defaultTokenTTL = 30 * time.Second

	defaultJournalRetentionDays = 90
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "auto",
		},
		Drag: DragConfig{
			TickInterval:   defaultTickInterval,
			Animations:     true,
			SettleDuration: defaultSettleDuration,
			VelocityDecay:  defaultVelocityDecay,
			VelocityWeight: defaultVelocityWeight,
		},
		Zone: ZoneConfig{
			RowTolerance: defaultRowTolerance,
		},
		Bridge: BridgeConfig{
			AppKey:        defaultAppKey,
			RetryAttempts: defaultRetryAttempts,
			RetryDelay:    defaultRetryDelay,
			CompatHosts:   []string{},
			Correlate:     true,
		},
		Host: HostConfig{
			TokenTTL: defaultTokenTTL,
		},
		Journal: JournalConfig{
			Enabled:       true,
			RetentionDays: defaultJournalRetentionDays,
		},
	}
}
