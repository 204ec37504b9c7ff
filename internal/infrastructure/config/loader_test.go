package config

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateXDG(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("ENV", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	return root
}

func TestSetDefaultsMatchDefaultConfig(t *testing.T) {
	mgr := &Manager{viper: viper.New()}
	mgr.setDefaults()

	cfg, err := mgr.unmarshalConfig()
	require.NoError(t, err)

	want := DefaultConfig()
	assert.Equal(t, want.Drag, cfg.Drag)
	assert.Equal(t, want.Zone, cfg.Zone)
	assert.Equal(t, want.Bridge.AppKey, cfg.Bridge.AppKey)
	assert.Equal(t, 5, cfg.Bridge.RetryAttempts)
	assert.Equal(t, 5*time.Millisecond, cfg.Bridge.RetryDelay)
	assert.True(t, cfg.Bridge.Correlate)
	assert.Equal(t, 30*time.Second, cfg.Host.TokenTTL)
	assert.True(t, cfg.Journal.Enabled)
	assert.Empty(t, cfg.Journal.Path)
}

func TestLoad_CreatesDefaultFile(t *testing.T) {
	root := isolateXDG(t)

	mgr, err := NewManager("")
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	configFile := filepath.Join(root, "config", appName, "config.toml")
	assert.FileExists(t, configFile)
	assert.FileExists(t, filepath.Join(root, "config", appName, schemaFileName))

	cfg := mgr.Get()
	assert.Equal(t, 300*time.Millisecond, cfg.Drag.TickInterval)
	assert.Equal(t, filepath.Join(root, "data", appName, journalName), cfg.Journal.Path)
}

func TestLoad_ExplicitFileAndEnv(t *testing.T) {
	isolateXDG(t)
	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[drag]
tick_interval = "1s"
animations = false

[bridge]
compat_hosts = ["Docs.Example.com", "docs.example.com."]
`), filePerm))

	t.Setenv("DRAGKIT_BRIDGE_RETRY_ATTEMPTS", "9")
	t.Setenv("DRAGKIT_LOG_LEVEL", "DEBUG")

	mgr, err := NewManager(path)
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	assert.Equal(t, time.Second, cfg.Drag.TickInterval)
	assert.False(t, cfg.Drag.Animations)
	assert.Equal(t, 9, cfg.Bridge.RetryAttempts)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, []string{"docs.example.com"}, cfg.Bridge.CompatHosts)
	assert.Equal(t, path, mgr.GetConfigFile())
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	isolateXDG(t)
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[drag]
velocity_decay = 1.5

[bridge]
retry_attempts = 0
`), filePerm))

	mgr, err := NewManager(path)
	require.NoError(t, err)
	err = mgr.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "drag.velocity_decay")
	assert.Contains(t, err.Error(), "bridge.retry_attempts")
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "bad level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantErr: "logging.level"},
		{name: "zero tick", mutate: func(c *Config) { c.Drag.TickInterval = 0 }, wantErr: "drag.tick_interval"},
		{name: "negative tolerance", mutate: func(c *Config) { c.Zone.RowTolerance = -1 }, wantErr: "zone.row_tolerance"},
		{name: "empty app key", mutate: func(c *Config) { c.Bridge.AppKey = " " }, wantErr: "bridge.app_key"},
		{name: "url as compat host", mutate: func(c *Config) { c.Bridge.CompatHosts = []string{"https://x.test/"} }, wantErr: "bridge.compat_hosts[0]"},
		{name: "zero ttl", mutate: func(c *Config) { c.Host.TokenTTL = 0 }, wantErr: "host.token_ttl"},
		{name: "negative retention", mutate: func(c *Config) { c.Journal.RetentionDays = -1 }, wantErr: "journal.retention_days"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := validateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestReload_KeepsPreviousConfigOnError(t *testing.T) {
	isolateXDG(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[zone]\nrow_tolerance = 4.0\n"), filePerm))

	mgr, err := NewManager(path)
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	require.NoError(t, os.WriteFile(path, []byte("[zone]\nrow_tolerance = -4.0\n"), filePerm))
	mgr.mu.Lock()
	err = mgr.reload()
	mgr.mu.Unlock()
	require.Error(t, err)
	assert.InDelta(t, 4.0, mgr.Get().Zone.RowTolerance, 1e-9)

	require.NoError(t, os.WriteFile(path, []byte("[zone]\nrow_tolerance = 12.0\n"), filePerm))
	var seen []float64
	mgr.OnConfigChange(func(c *Config) { seen = append(seen, c.Zone.RowTolerance) })
	mgr.mu.Lock()
	require.NoError(t, mgr.reload())
	mgr.notifyCallbacksLocked()
	assert.Equal(t, []float64{12.0}, seen)
}

func TestWatch_IsIdempotent(t *testing.T) {
	isolateXDG(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[logging]\nlevel = \"warn\"\n"), filePerm))

	mgr, err := NewManager(path)
	require.NoError(t, err)
	require.NoError(t, mgr.Load())
	require.NoError(t, mgr.Watch(context.Background()))
	require.NoError(t, mgr.Watch(context.Background()))
	assert.True(t, mgr.watching)
}

func TestJSONSchema(t *testing.T) {
	data, err := JSONSchema()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "dragkit configuration", doc["title"])
	assert.Contains(t, string(data), "retry_attempts")
	assert.Contains(t, string(data), "tick_interval")
}
