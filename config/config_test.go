package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "server:\n  port: 9000\n"))
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "data/db.sql", cfg.Database.DSN)
	assert.Equal(t, 60*time.Second, cfg.Collector.Interval)
	assert.Equal(t, 100, cfg.Collector.Request.PageSize)
	assert.Equal(t, "UTC", cfg.Collector.Timezone)
	assert.Equal(t, 3600, cfg.Push.TTL)
	assert.Equal(t, 1, cfg.WorkerPool.Size)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 5, cfg.Server.RateLimitBurst)
}

func TestLoad_Overrides(t *testing.T) {
	body := `
database:
  driver: postgres
  dsn: host=localhost user=smart dbname=smart
collector:
  enabled: true
  interval_seconds: 15
  timezone: Europe/Oslo
  request:
    url: http://gateway.local/readings
    page_size: 20
worker_pool:
  size: 4
`
	cfg, err := Load(writeConfig(t, body))
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "host=localhost user=smart dbname=smart", cfg.Database.DSN)
	assert.True(t, cfg.Collector.Enabled)
	assert.Equal(t, 15*time.Second, cfg.Collector.Interval)
	assert.Equal(t, "Europe/Oslo", cfg.Collector.Timezone)
	assert.Equal(t, 20, cfg.Collector.Request.PageSize)
	assert.Equal(t, 4, cfg.WorkerPool.Size)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
