package config

import (
	"fmt"
	"strings"
)

// validateConfig performs comprehensive validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateLogging(config)...)
	validationErrors = append(validationErrors, validateDrag(config)...)
	validationErrors = append(validationErrors, validateZone(config)...)
	validationErrors = append(validationErrors, validateBridge(config)...)
	validationErrors = append(validationErrors, validateHost(config)...)
	validationErrors = append(validationErrors, validateJournal(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	switch strings.ToLower(config.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("logging.level %q must be one of trace, debug, info, warn, error", config.Logging.Level))
	}
	switch strings.ToLower(config.Logging.Format) {
	case "auto", "json", "console":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("logging.format %q must be auto, json or console", config.Logging.Format))
	}
	return validationErrors
}

func validateDrag(config *Config) []string {
	var validationErrors []string
	if config.Drag.TickInterval <= 0 {
		validationErrors = append(validationErrors, "drag.tick_interval must be positive")
	}
	if config.Drag.SettleDuration < 0 {
		validationErrors = append(validationErrors, "drag.settle_duration must be non-negative")
	}
	if config.Drag.VelocityDecay <= 0 || config.Drag.VelocityDecay >= 1 {
		validationErrors = append(validationErrors, "drag.velocity_decay must be between 0 and 1 (exclusive)")
	}
	if config.Drag.VelocityWeight <= 0 {
		validationErrors = append(validationErrors, "drag.velocity_weight must be positive")
	}
	return validationErrors
}

func validateZone(config *Config) []string {
	var validationErrors []string
	if config.Zone.RowTolerance < 0 {
		validationErrors = append(validationErrors, "zone.row_tolerance must be non-negative")
	}
	if config.Zone.IndexColumnWidth < 0 {
		validationErrors = append(validationErrors, "zone.index_column_width must be non-negative")
	}
	return validationErrors
}

func validateBridge(config *Config) []string {
	var validationErrors []string
	if strings.TrimSpace(config.Bridge.AppKey) == "" {
		validationErrors = append(validationErrors, "bridge.app_key cannot be empty")
	}
	if config.Bridge.RetryAttempts < 1 || config.Bridge.RetryAttempts > 100 {
		validationErrors = append(validationErrors, "bridge.retry_attempts must be between 1 and 100")
	}
	if config.Bridge.RetryDelay < 0 {
		validationErrors = append(validationErrors, "bridge.retry_delay must be non-negative")
	}
	for i, h := range config.Bridge.CompatHosts {
		if strings.TrimSpace(h) == "" || strings.Contains(h, "/") {
			validationErrors = append(validationErrors, fmt.Sprintf("bridge.compat_hosts[%d] %q must be a bare hostname", i, h))
		}
	}
	return validationErrors
}

func validateHost(config *Config) []string {
	if config.Host.TokenTTL <= 0 {
		return []string{"host.token_ttl must be positive"}
	}
	return nil
}

func validateJournal(config *Config) []string {
	if config.Journal.RetentionDays < 0 {
		return []string{"journal.retention_days must be non-negative"}
	}
	return nil
}
