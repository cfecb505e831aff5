package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "timetable-maker.yml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 300, cfg.API.Limit)
	assert.Equal(t, "timetableMakerGroups", cfg.Store.Key)
	assert.Equal(t, 1, cfg.Generator.Workers)
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, Default().API.BaseURL, cfg.API.BaseURL)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: http://localhost:9999
  limit: 50
  search_window: P3D
timezone: UTC
store:
  backend: sqlite
  sqlite:
    path: /tmp/groups.db
generator:
  workers: 4
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999", cfg.API.BaseURL)
	assert.Equal(t, 50, cfg.API.Limit)
	assert.Equal(t, "PT30S", cfg.API.Timeout, "unset keys keep their defaults")
	assert.Equal(t, "sqlite", cfg.Store.Backend)
	assert.Equal(t, "/tmp/groups.db", cfg.Store.SQLite.Path)
	assert.Equal(t, 4, cfg.Generator.Workers)

	location, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, location)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "api: [[[")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("TIMETABLE_STORE_BACKEND", "redis")
	t.Setenv("TIMETABLE_REDIS_ADDRESS", "cache:6380")
	t.Setenv("TIMETABLE_REDIS_DATABASE", "2")
	t.Setenv("TIMETABLE_WORKERS", "3")
	t.Setenv("TIMETABLE_DEBUG", "YES")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "redis", cfg.Store.Backend)
	assert.Equal(t, "cache:6380", cfg.Store.Redis.Address)
	assert.Equal(t, 2, cfg.Store.Redis.Database)
	assert.Equal(t, 3, cfg.Generator.Workers)
	assert.True(t, cfg.Log.Debug)
}

func TestEnvironmentOverrideNotAnInteger(t *testing.T) {
	t.Setenv("TIMETABLE_WORKERS", "many")

	_, err := Load("")
	assert.ErrorContains(t, err, "TIMETABLE_WORKERS")
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown backend", func(c *Config) { c.Store.Backend = "etcd" }},
		{"bad url", func(c *Config) { c.API.BaseURL = "not a url" }},
		{"zero limit", func(c *Config) { c.API.Limit = 0 }},
		{"too many workers", func(c *Config) { c.Generator.Workers = 100 }},
		{"unknown timezone", func(c *Config) { c.Timezone = "Mars/Olympus_Mons" }},
		{"bad window", func(c *Config) { c.API.SearchWindow = "7 days" }},
		{"bad timeout", func(c *Config) { c.API.Timeout = "30s" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)

			assert.Error(t, cfg.Validate())
		})
	}
}

func TestTimeoutDuration(t *testing.T) {
	timeout, err := APIConfig{Timeout: "PT1M30S"}.TimeoutDuration()
	require.NoError(t, err)

	assert.Equal(t, 90*time.Second, timeout)
}
