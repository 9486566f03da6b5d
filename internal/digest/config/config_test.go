package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "Asia/Vladivostok", cfg.Digest.Timezone)
	assert.Equal(t, 5, cfg.Digest.Defaults.TopN)
	assert.Equal(t, 60, cfg.Digest.Defaults.MaxLookbackDays)
	assert.True(t, cfg.Digest.Defaults.OnlyDFOBusiness)
	assert.Equal(t, 72*time.Hour, cfg.Automation.LogTTL)
	assert.EqualValues(t, 800, cfg.Automation.LogMaxLines)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, DefaultCacheTTL, cfg.Digest.CacheTTL)
	assert.LessOrEqual(t, cfg.Digest.CacheTTL, 5*time.Second)
}

func TestLoadReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
database:
  driver: sqlite
  path: /tmp/digest.db
digest:
  timezone: UTC
  defaults:
    top_n: 7
    prefer_days: 3
automation:
  cron: "30 6 * * *"
  lock_ttl: 15m
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "UTC", cfg.Digest.Timezone)
	assert.Equal(t, 7, cfg.Digest.Defaults.TopN)
	assert.Equal(t, 3, cfg.Digest.Defaults.PreferDays)
	assert.Equal(t, 60, cfg.Digest.Defaults.MaxLookbackDays)
	assert.Equal(t, "30 6 * * *", cfg.Automation.Cron)
	assert.Equal(t, 15*time.Minute, cfg.Automation.LockTTL)
}
