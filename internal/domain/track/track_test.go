package track

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrack_Same(t *testing.T) {
	tests := []struct {
		name  string
		a     Track
		b     Track
		want  bool
	}{
		{
			name: "same resource different metadata",
			a:    Track{Title: "Old Title", Artist: "X", ResourceID: "res-1"},
			b:    Track{Title: "New Title", Artist: "Y", ResourceID: "res-1"},
			want: true,
		},
		{
			name: "different resource same metadata",
			a:    Track{Title: "Song", Artist: "X", ResourceID: "res-1"},
			b:    Track{Title: "Song", Artist: "X", ResourceID: "res-2"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Same(tt.b))
		})
	}
}

func TestTrack_String(t *testing.T) {
	tr := Track{Title: "Bohemian Rhapsody", Artist: "Queen", ResourceID: "res-1"}
	assert.Equal(t, "Bohemian Rhapsody - Queen", tr.String())
}
