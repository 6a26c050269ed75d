package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"Queen - Bohemian Rhapsody.mp3",
		"nocturne.WAV",
		"liner-notes.txt",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "covers"), 0755))

	tracks, err := Scan(dir)

	require.NoError(t, err)
	require.Len(t, tracks, 2)

	// Directory order: "Queen..." sorts before "nocturne" (upper before
	// lower case).
	assert.Equal(t, "Queen", tracks[0].Artist)
	assert.Equal(t, "Bohemian Rhapsody", tracks[0].Title)
	assert.True(t, filepath.IsAbs(tracks[0].ResourceID))

	// No " - " separator: the whole stem becomes the title.
	assert.Equal(t, "Unknown Artist", tracks[1].Artist)
	assert.Equal(t, "nocturne", tracks[1].Title)
}

func TestScan_MissingDir(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "nope"))

	assert.Error(t, err)
}

func TestScan_EmptyDir(t *testing.T) {
	tracks, err := Scan(t.TempDir())

	require.NoError(t, err)
	assert.Empty(t, tracks)
}
