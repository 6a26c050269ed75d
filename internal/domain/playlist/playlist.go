// Package playlist provides the Playlist domain entity.
package playlist

import "github.com/KenLustre/Harmonia/internal/domain/track"

// Playlist represents a named, ordered track collection.
type Playlist struct {
	ID     string // Stable playlist ID
	Name   string // Display name
	Tracks []track.Track
}

// ResourceIDs returns the resource IDs of all tracks in order.
func (p *Playlist) ResourceIDs() []string {
	ids := make([]string, len(p.Tracks))
	for i, t := range p.Tracks {
		ids[i] = t.ResourceID
	}
	return ids
}

// Contains reports whether the playlist already holds the track.
func (p *Playlist) Contains(t track.Track) bool {
	for _, existing := range p.Tracks {
		if existing.Same(t) {
			return true
		}
	}
	return false
}

// Add appends the given tracks, skipping ones already present,
// and returns how many were actually added.
func (p *Playlist) Add(tracks ...track.Track) int {
	added := 0
	for _, t := range tracks {
		if p.Contains(t) {
			continue
		}
		p.Tracks = append(p.Tracks, t)
		added++
	}
	return added
}

// Remove removes the first track with the same resource ID and
// reports whether one was found.
func (p *Playlist) Remove(t track.Track) bool {
	for i, existing := range p.Tracks {
		if existing.Same(t) {
			p.Tracks = append(p.Tracks[:i], p.Tracks[i+1:]...)
			return true
		}
	}
	return false
}
