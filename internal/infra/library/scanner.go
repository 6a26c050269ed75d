// Package library discovers playable tracks in the media directory.
package library

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/KenLustre/Harmonia/internal/domain/track"
)

// extensions lists the recognised audio file extensions. Some of these
// may still fail to decode on a given backend; the controller degrades
// gracefully when they do.
var extensions = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".ogg":  true,
	".flac": true,
	".m4a":  true,
}

// Scan reads dir and returns one track per recognised audio file, in
// file name order. Metadata follows the "Artist - Title.ext" naming
// convention; files without the separator get "Unknown Artist".
func Scan(dir string) ([]track.Track, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read library directory")
	}

	tracks := make([]track.Track, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if !extensions[strings.ToLower(ext)] {
			continue
		}

		name := strings.TrimSuffix(e.Name(), ext)
		artist, title := "Unknown Artist", name
		if a, t, ok := strings.Cut(name, " - "); ok {
			artist, title = a, t
		}

		path, err := filepath.Abs(filepath.Join(dir, e.Name()))
		if err != nil {
			zlog.Warn().Msgf("library: skipping unresolvable path: %s: %v", e.Name(), err)
			continue
		}
		tracks = append(tracks, track.Track{
			Title:      title,
			Artist:     artist,
			ResourceID: path,
		})
	}

	zlog.Debug().Msgf("library: scanned %d tracks from %s", len(tracks), dir)
	return tracks, nil
}
