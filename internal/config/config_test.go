package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDir_HonorsXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.Equal(t, filepath.Join(dir, "carctl"), Dir())
	require.Equal(t, filepath.Join(dir, "carctl", "config.yaml"), Path())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("CARCTL_SERVER_URL", "")
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080", cfg.ServerURL)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_FileThenEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "serverURL: https://api.example.com/\nlogLevel: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	t.Setenv("CARCTL_LOG_LEVEL", "warn")
	cfg, err := Load(path)
	require.NoError(t, err)
	// trailing slash trimmed, env wins over file
	require.Equal(t, "https://api.example.com", cfg.ServerURL)
	require.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_BadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("serverURL: [broken"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}
