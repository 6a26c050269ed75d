// Package track provides the Track domain entity.
package track

// Track represents one playable media item.
// Metadata is inferred by the library scanner from the file name;
// the engine treats it as an opaque, immutable record.
type Track struct {
	Title      string // Track title
	Artist     string // Artist name
	ResourceID string // Opaque resource handle (absolute file path)
}

// Same reports whether two tracks denote the same resource.
// Identity is the resource ID alone; two tracks with identical metadata
// but different resource IDs are distinct.
func (t Track) Same(other Track) bool {
	return t.ResourceID == other.ResourceID
}

// String returns "Title - Artist" for display.
func (t Track) String() string {
	return t.Title + " - " + t.Artist
}
