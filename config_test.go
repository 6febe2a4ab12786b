package gocarousel

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Missing(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	want := DefaultConfig()
	want.DataDir = dir
	assert.Equal(t, want, cfg)
}

func TestConfig_SaveLoad(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.DataDir = dir
	cfg.ListenAddr = "127.0.0.1:9090"
	cfg.ProxyBase = "http://localhost:9090/proxy"
	cfg.FontDirs = []string{"/usr/share/fonts/custom"}
	cfg.StyleStore = StoreSQLite
	cfg.RequestTimeout = Duration{90 * time.Second}
	require.NoError(t, SaveConfig(cfg))

	data, err := os.ReadFile(filepath.Join(dir, ConfigFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "1m30s")

	got, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadConfig_FillsDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("listen_addr = ':7000'\n"), 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.ListenAddr)
	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, DefaultWidth, cfg.Width)
	assert.Equal(t, StoreFile, cfg.StyleStore)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout.Duration)
}

func TestLoadConfig_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)

	require.NoError(t, os.WriteFile(path, []byte("style_store = 'redis'\n"), 0o644))
	_, err := LoadConfig(dir)
	assert.ErrorContains(t, err, "redis")

	require.NoError(t, os.WriteFile(path, []byte("request_timeout = 'soon'\n"), 0o644))
	_, err = LoadConfig(dir)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("width = \n"), 0o644))
	_, err = LoadConfig(dir)
	assert.Error(t, err)
}

func TestConfig_OpenStyleStore(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()

	s, err := cfg.OpenStyleStore()
	require.NoError(t, err)
	assert.IsType(t, &FileStyleStore{}, s)

	cfg.StyleStore = StoreSQLite
	s, err = cfg.OpenStyleStore()
	require.NoError(t, err)
	require.IsType(t, &SQLiteStyleStore{}, s)
	assert.NoError(t, s.(*SQLiteStyleStore).Close())
	assert.FileExists(t, filepath.Join(cfg.DataDir, "styles.db"))
}
