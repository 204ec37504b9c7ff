package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

// NewManager creates a new configuration manager. A non-empty configFile
// replaces the XDG lookup.
func NewManager(configFile string) (*Manager, error) {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")

		configDir, err := GetConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
		}
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	// DRAGKIT_BRIDGE_RETRY_ATTEMPTS and friends map through AutomaticEnv.
	v.SetEnvPrefix("DRAGKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("logging.level", "DRAGKIT_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind DRAGKIT_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "DRAGKIT_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind DRAGKIT_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	return m.apply()
}

// apply decodes viper's current state into a validated Config.
// Must be called with m.mu held for write.
func (m *Manager) apply() error {
	config, err := m.unmarshalConfig()
	if err != nil {
		return err
	}
	if err := ensureJournalPath(config); err != nil {
		return err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var configFileNotFoundError viper.ConfigFileNotFoundError
	if errors.As(err, &configFileNotFoundError) {
		if createErr := m.createDefaultConfig(); createErr != nil {
			configDir, _ := GetConfigDir()
			return fmt.Errorf(
				"failed to create default config at %s: %w\nTry creating the directory manually or check permissions",
				configDir,
				createErr,
			)
		}
		if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
			return fmt.Errorf("failed to read newly created config file: %w", rereadErr)
		}
		return nil
	}

	configFile := m.viper.ConfigFileUsed()
	if configFile == "" {
		configDir, _ := GetConfigDir()
		configFile = filepath.Join(configDir, "config.toml")
	}
	return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format and permissions", configFile, err)
}

func (m *Manager) unmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		configFile := m.viper.ConfigFileUsed()
		return nil, fmt.Errorf(
			"failed to parse config file %s: %w\nCheck that all values have the correct type",
			configFile,
			err,
		)
	}
	return config, nil
}

func ensureJournalPath(config *Config) error {
	if config.Journal.Path != "" {
		return nil
	}
	path, err := GetJournalFile()
	if err != nil {
		return fmt.Errorf("failed to get journal path: %w", err)
	}
	config.Journal.Path = path
	return nil
}

func normalizeConfig(config *Config) {
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))
	config.Bridge.AppKey = strings.TrimSpace(config.Bridge.AppKey)

	hosts := make([]string, 0, len(config.Bridge.CompatHosts))
	seen := make(map[string]struct{}, len(config.Bridge.CompatHosts))
	for _, h := range config.Bridge.CompatHosts {
		h = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(h), "."))
		if _, dup := seen[h]; dup {
			continue
		}
		seen[h] = struct{}{}
		hosts = append(hosts, h)
	}
	config.Bridge.CompatHosts = hosts
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	configCopy.Bridge.CompatHosts = append([]string(nil), m.config.Bridge.CompatHosts...)
	return &configCopy
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	return m.viper.ConfigFileUsed()
}

// createDefaultConfig writes the defaults to the XDG config file.
func (m *Manager) createDefaultConfig() error {
	configFile, err := GetConfigFile()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configFile), dirPerm); err != nil {
		return err
	}

	m.viper.SetConfigType("toml")
	if err := m.viper.SafeWriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	m.viper.SetConfigFile(configFile)

	if _, err := WriteSchemaFile(filepath.Dir(configFile)); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Created default configuration file: %s\n", configFile)
	return nil
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.setLoggingDefaults(defaults)
	m.setDragDefaults(defaults)
	m.setZoneDefaults(defaults)
	m.setBridgeDefaults(defaults)
	m.setHostDefaults(defaults)
	m.setJournalDefaults(defaults)
}

func (m *Manager) setLoggingDefaults(defaults *Config) {
	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
}

// Durations are stored as strings so the written TOML stays readable.
func (m *Manager) setDragDefaults(defaults *Config) {
	m.viper.SetDefault("drag.tick_interval", defaults.Drag.TickInterval.String())
	m.viper.SetDefault("drag.animations", defaults.Drag.Animations)
	m.viper.SetDefault("drag.settle_duration", defaults.Drag.SettleDuration.String())
	m.viper.SetDefault("drag.velocity_decay", defaults.Drag.VelocityDecay)
	m.viper.SetDefault("drag.velocity_weight", defaults.Drag.VelocityWeight)
}

func (m *Manager) setZoneDefaults(defaults *Config) {
	m.viper.SetDefault("zone.row_tolerance", defaults.Zone.RowTolerance)
	m.viper.SetDefault("zone.index_column_width", defaults.Zone.IndexColumnWidth)
}

func (m *Manager) setBridgeDefaults(defaults *Config) {
	m.viper.SetDefault("bridge.app_key", defaults.Bridge.AppKey)
	m.viper.SetDefault("bridge.retry_attempts", defaults.Bridge.RetryAttempts)
	m.viper.SetDefault("bridge.retry_delay", defaults.Bridge.RetryDelay.String())
	m.viper.SetDefault("bridge.compat_hosts", defaults.Bridge.CompatHosts)
	m.viper.SetDefault("bridge.correlate", defaults.Bridge.Correlate)
}

func (m *Manager) setHostDefaults(defaults *Config) {
	m.viper.SetDefault("host.token_ttl", defaults.Host.TokenTTL.String())
}

func (m *Manager) setJournalDefaults(defaults *Config) {
	m.viper.SetDefault("journal.enabled", defaults.Journal.Enabled)
	m.viper.SetDefault("journal.retention_days", defaults.Journal.RetentionDays)
	// journal.path is resolved in Load
}
