package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The global viper instance accumulates state, so all Load scenarios run as
// phases of one test against one fake home.
func TestLoad(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	// No config file, no environment: pure defaults.
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9011, cfg.DaemonPort)
	assert.Equal(t, 100, cfg.BufferSize)
	assert.Equal(t, "resolvo.db", cfg.DBPath)
	assert.Equal(t, "local", cfg.NameMerge)
	assert.Equal(t, "token.json", cfg.TokenFile)
	assert.Equal(t, []string{".git", "*.resolvo.tmp"}, cfg.Ignore)

	// Environment beats defaults.
	t.Setenv("RESOLVO_DAEMON_PORT", "9999")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.DaemonPort)

	// A config file fills in what the environment does not.
	configFile := filepath.Join(home, ".resolvo", "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("name_merge: server\ndaemon_port: 7777\n"), 0644))

	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "server", cfg.NameMerge)
	assert.Equal(t, 9999, cfg.DaemonPort, "environment should win over the config file")
}

func TestTokenPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := Default
	path, err := cfg.TokenPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".resolvo", "token.json"), path)

	// Dir is created on demand.
	info, err := os.Stat(filepath.Join(home, ".resolvo"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
