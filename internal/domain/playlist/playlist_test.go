package playlist

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KenLustre/Harmonia/internal/domain/track"
)

var (
	trackA = track.Track{Title: "Alpha", Artist: "Ann", ResourceID: "res-a"}
	trackB = track.Track{Title: "Beta", Artist: "Ben", ResourceID: "res-b"}
	trackC = track.Track{Title: "Gamma", Artist: "Cat", ResourceID: "res-c"}
)

func TestPlaylist_ResourceIDs(t *testing.T) {
	tests := []struct {
		name     string
		playlist Playlist
		want     []string
	}{
		{
			name:     "empty playlist",
			playlist: Playlist{ID: "p1", Name: "Empty"},
			want:     []string{},
		},
		{
			name:     "preserves order",
			playlist: Playlist{ID: "p2", Name: "Mix", Tracks: []track.Track{trackB, trackA}},
			want:     []string{"res-b", "res-a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.playlist.ResourceIDs())
		})
	}
}

func TestPlaylist_Add_SkipsDuplicates(t *testing.T) {
	p := &Playlist{ID: "p1", Name: "Mix"}

	added := p.Add(trackA, trackB)
	assert.Equal(t, 2, added)

	// trackA is already present, only trackC counts.
	added = p.Add(trackA, trackC)
	assert.Equal(t, 1, added)

	assert.Equal(t, []string{"res-a", "res-b", "res-c"}, p.ResourceIDs())
}

func TestPlaylist_Contains(t *testing.T) {
	p := &Playlist{Tracks: []track.Track{trackA}}

	assert.True(t, p.Contains(trackA))
	// Identity is the resource ID, not the metadata.
	assert.True(t, p.Contains(track.Track{Title: "Renamed", ResourceID: "res-a"}))
	assert.False(t, p.Contains(trackB))
}

func TestPlaylist_Remove(t *testing.T) {
	p := &Playlist{Tracks: []track.Track{trackA, trackB, trackC}}

	assert.True(t, p.Remove(trackB))
	assert.Equal(t, []string{"res-a", "res-c"}, p.ResourceIDs())

	assert.False(t, p.Remove(trackB))
	assert.Equal(t, 2, len(p.Tracks))
}
