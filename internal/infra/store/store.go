// Package store persists playlists to a JSON file. Playlists reference
// tracks by resource ID and are resolved against the live library on
// load; the playback queue itself is never persisted.
package store

import (
	"encoding/json"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/samber/lo"
	zlog "github.com/rs/zerolog/log"

	"github.com/KenLustre/Harmonia/internal/domain/playlist"
	"github.com/KenLustre/Harmonia/internal/domain/track"
)

// Store reads and writes the playlists file.
type Store struct {
	path string
}

// New creates a store backed by the given file path.
func New(path string) *Store {
	return &Store{path: path}
}

type persistedPlaylist struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Resources []string `json:"tracks"`
}

// Load resolves persisted playlists against the given library. Tracks
// whose files are no longer in the library are dropped with a warning.
// A missing playlists file is not an error; it yields no playlists.
func (s *Store) Load(library []track.Track) ([]*playlist.Playlist, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read playlists file")
	}

	var persisted []persistedPlaylist
	if err := json.Unmarshal(data, &persisted); err != nil {
		return nil, errors.Wrap(err, "failed to parse playlists file")
	}

	byID := make(map[string]track.Track, len(library))
	for _, t := range library {
		byID[t.ResourceID] = t
	}

	lists := make([]*playlist.Playlist, 0, len(persisted))
	for _, p := range persisted {
		pl := &playlist.Playlist{ID: p.ID, Name: p.Name}
		if pl.ID == "" {
			pl.ID = uuid.New().String()
		}
		for _, id := range p.Resources {
			t, ok := byID[id]
			if !ok {
				zlog.Warn().Msgf("store: dropping missing track from playlist %q: %s", p.Name, id)
				continue
			}
			pl.Tracks = append(pl.Tracks, t)
		}
		lists = append(lists, pl)
	}
	return lists, nil
}

// Save writes all playlists back to disk.
func (s *Store) Save(lists []*playlist.Playlist) error {
	persisted := lo.Map(lists, func(p *playlist.Playlist, _ int) persistedPlaylist {
		return persistedPlaylist{ID: p.ID, Name: p.Name, Resources: p.ResourceIDs()}
	})

	data, err := json.MarshalIndent(persisted, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode playlists")
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return errors.Wrap(err, "failed to write playlists file")
	}
	return nil
}

// NewPlaylist creates an empty named playlist with a fresh ID.
func NewPlaylist(name string) *playlist.Playlist {
	return &playlist.Playlist{ID: uuid.New().String(), Name: name}
}
