package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, Validate(cfg))
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, 12, cfg.API.DefaultPageSize)
	assert.Equal(t, 100, cfg.API.MaxPageSize)
	assert.False(t, cfg.Watch.Enabled)
}

func TestLoadConfigFromYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "watchlist.yaml", `
server:
  port: 9090
  read_timeout: 5s
database:
  type: postgres
  host: db.internal
logging:
  level: debug
  format: json
api:
  default_page_size: 20
  max_page_size: 50
`)

	cm := NewConfigManager()
	require.NoError(t, cm.LoadConfig(path))

	cfg := cm.GetConfig()
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 20, cfg.API.DefaultPageSize)
	// untouched keys keep their defaults
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, path, cm.ConfigPath())
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "watchlist.yaml", "server:\n  port: 9090\n")
	t.Setenv("WATCHLIST_PORT", "7070")
	t.Setenv("WATCHLIST_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("DB_CONN_MAX_LIFETIME", "10m")

	cm := NewConfigManager()
	require.NoError(t, cm.LoadConfig(path))

	cfg := cm.GetConfig()
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 10*time.Minute, cfg.Database.ConnMaxLifetime)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		body string
	}{
		{"bad port", "server:\n  port: 70000\n"},
		{"bad db type", "database:\n  type: oracle\n"},
		{"max below default", "api:\n  default_page_size: 20\n  max_page_size: 10\n"},
		{"bad log format", "logging:\n  format: xml\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, "bad.yaml", tt.body)
			cm := NewConfigManager()
			err := cm.LoadConfig(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "validation failed")
			// previous configuration stays in place
			assert.Equal(t, 8080, cm.GetConfig().Server.Port)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cm := NewConfigManager()
	err := cm.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestWatchersReceiveOldAndNew(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "watchlist.yaml", "logging:\n  level: info\n")

	cm := NewConfigManager()
	var seenOld, seenNew string
	cm.AddWatcher(func(oldConfig, newConfig *Config) {
		seenOld = oldConfig.Logging.Level
		seenNew = newConfig.Logging.Level
	})

	require.NoError(t, cm.LoadConfig(path))
	writeFile(t, dir, "watchlist.yaml", "logging:\n  level: debug\n")
	require.NoError(t, cm.LoadConfig(path))

	assert.Equal(t, "info", seenOld)
	assert.Equal(t, "debug", seenNew)
}

func TestApplyValidates(t *testing.T) {
	cm := NewConfigManager()
	require.NoError(t, cm.Apply(func(c *Config) { c.Server.Port = 9000 }))
	assert.Equal(t, 9000, cm.GetConfig().Server.Port)

	err := cm.Apply(func(c *Config) { c.Database.Type = "mysql" })
	require.Error(t, err)
	assert.Equal(t, "sqlite", cm.GetConfig().Database.Type)
}

func TestAppliedOverridesSurviveReload(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "watchlist.yaml", "logging:\n  level: info\nserver:\n  port: 8081\n")

	cm := NewConfigManager()
	require.NoError(t, cm.LoadConfig(path))
	require.NoError(t, cm.Apply(func(c *Config) { c.Logging.Level = "debug" }))

	var seen string
	cm.AddWatcher(func(_, newConfig *Config) { seen = newConfig.Logging.Level })

	writeFile(t, dir, "watchlist.yaml", "logging:\n  level: warn\nserver:\n  port: 8082\n")
	require.NoError(t, cm.LoadConfig(path))

	cfg := cm.GetConfig()
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "debug", seen)
	// keys the override leaves alone follow the file
	assert.Equal(t, 8082, cfg.Server.Port)
}

func TestRejectedApplyIsNotReplayed(t *testing.T) {
	path := writeFile(t, t.TempDir(), "watchlist.yaml", "server:\n  port: 8081\n")

	cm := NewConfigManager()
	require.NoError(t, cm.LoadConfig(path))
	require.Error(t, cm.Apply(func(c *Config) { c.Server.Port = 0 }))
	require.NoError(t, cm.LoadConfig(path))
	assert.Equal(t, 8081, cm.GetConfig().Server.Port)
}

func TestDisabledModulesFromEnv(t *testing.T) {
	t.Setenv("WATCHLIST_DISABLED_MODULES", "catalog.places")

	cm := NewConfigManager()
	require.NoError(t, cm.LoadConfig(""))
	assert.Equal(t, []string{"catalog.places"}, cm.GetConfig().Modules.Disabled)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "watchlist.yaml", "server:\n  port: 8181\n")

	cm := NewConfigManager()
	require.NoError(t, cm.LoadConfig(path))
	require.NoError(t, cm.SaveConfig())

	reloaded := NewConfigManager()
	require.NoError(t, reloaded.LoadConfig(path))
	assert.Equal(t, 8181, reloaded.GetConfig().Server.Port)
}

func TestFileWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "watchlist.yaml", "server:\n  port: 8081\n")

	cm := NewConfigManager()
	require.NoError(t, cm.LoadConfig(path))

	reloaded := make(chan int, 4)
	cm.AddWatcher(func(_, newConfig *Config) {
		reloaded <- newConfig.Server.Port
	})

	fw, err := NewFileWatcher(cm, hclog.NewNullLogger(), 20*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, fw.Start())
	defer fw.Stop()

	writeFile(t, dir, "watchlist.yaml", "server:\n  port: 8082\n")

	select {
	case port := <-reloaded:
		assert.Equal(t, 8082, port)
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded")
	}
}

func TestNewFileWatcherRequiresPath(t *testing.T) {
	_, err := NewFileWatcher(NewConfigManager(), hclog.NewNullLogger(), 0)
	require.Error(t, err)
}
