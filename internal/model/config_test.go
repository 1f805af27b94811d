package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000/api", cfg.Backend.BaseURL)
	assert.Equal(t, 30, cfg.Backend.TimeoutSec)
	assert.Equal(t, "vi", cfg.Display.Locale)
	assert.Equal(t, 120, cfg.Sync.PollIntervalSec)
	assert.NotEmpty(t, cfg.CachePath)
}

func TestLoadConfigReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
backend:
  base_url: http://192.168.1.6:5000/api
  timeout_sec: 10
display:
  locale: en
sync:
  poll_interval_sec: 60
cache_path: /tmp/garage.db
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "http://192.168.1.6:5000/api", cfg.Backend.BaseURL)
	assert.Equal(t, 10, cfg.Backend.TimeoutSec)
	assert.Equal(t, "en", cfg.Display.Locale)
	assert.Equal(t, 60, cfg.Sync.PollIntervalSec)
	assert.Equal(t, "/tmp/garage.db", cfg.CachePath)
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("display:\n  locale: en\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "en", cfg.Display.Locale)
	assert.Equal(t, "http://localhost:5000/api", cfg.Backend.BaseURL)
	assert.Equal(t, 120, cfg.Sync.PollIntervalSec)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	in := &AppConfig{
		Backend:   BackendConfig{BaseURL: "http://example.test/api", TimeoutSec: 15},
		Display:   DisplayConfig{Locale: "en"},
		Sync:      SyncConfig{PollIntervalSec: 45},
		CachePath: "/tmp/cache.db",
	}
	require.NoError(t, SaveConfig(path, in))

	out, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, in.Backend.BaseURL, out.Backend.BaseURL)
	assert.Equal(t, in.Backend.TimeoutSec, out.Backend.TimeoutSec)
	assert.Equal(t, in.Display.Locale, out.Display.Locale)
	assert.Equal(t, in.Sync.PollIntervalSec, out.Sync.PollIntervalSec)
	assert.Equal(t, in.CachePath, out.CachePath)
}
