package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "player.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
library:
  dir: /music
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "/music", cfg.Library.Dir)
	assert.False(t, cfg.Library.Watch)
	assert.Equal(t, 500, cfg.Player.TickIntervalMs)
	assert.Equal(t, 500*time.Millisecond, cfg.Player.TickInterval())
	assert.Equal(t, "playlists.json", cfg.Playlists.File)
	assert.Equal(t, "speaker", cfg.Audio.Backend.Type)
}

func TestLoad_ExplicitValues(t *testing.T) {
	path := writeConfig(t, `
library:
  dir: /music
  watch: true
player:
  tick_interval_ms: 1000
playlists:
  file: /data/lists.json
audio:
  backend:
    type: silent
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.True(t, cfg.Library.Watch)
	assert.Equal(t, 1000, cfg.Player.TickIntervalMs)
	assert.Equal(t, "/data/lists.json", cfg.Playlists.File)
	assert.Equal(t, "silent", cfg.Audio.Backend.Type)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("HARMONIA_LIBRARY_DIR", "/from-env")
	path := writeConfig(t, `
library:
  dir: /from-file
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "/from-env", cfg.Library.Dir)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	assert.Error(t, err)
}

func TestLoad_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing library dir",
			content: "player:\n  tick_interval_ms: 500\n",
		},
		{
			name:    "tick interval too small",
			content: "library:\n  dir: /music\nplayer:\n  tick_interval_ms: 50\n",
		},
		{
			name:    "unknown backend type",
			content: "library:\n  dir: /music\naudio:\n  backend:\n    type: midi\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}
