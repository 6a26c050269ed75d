// Package audio provides the playback backend contract and its
// implementations. The engine drives backends through the narrow
// Backend interface and never touches decoding or output itself.
package audio

import (
	"time"

	"github.com/cockroachdb/errors"
)

// Errors
var (
	ErrBackendUnavailable = errors.New("audio backend unavailable")
	ErrNothingLoaded      = errors.New("no resource loaded")
)

// Backend is the contract the playback controller drives.
type Backend interface {
	// Available reports whether the backend can produce audio at all.
	// When false, the engine degrades to silent mode: queue, history
	// and navigation keep working, playback produces no output.
	Available() bool

	// Load prepares a resource for playback, replacing anything
	// previously loaded. It does not start playback.
	Load(resourceID string) error

	// Play starts (or restarts) playback of the loaded resource at the
	// given offset.
	Play(offset time.Duration) error

	// Pause suspends output, keeping the position.
	Pause()

	// Resume continues output after Pause.
	Resume()

	// Stop halts playback and discards the loaded resource.
	Stop()

	// Busy reports whether the loaded resource is still producing
	// output, i.e. has not reached its end.
	Busy() bool

	// Position returns the playback position into the loaded resource.
	// The second return is false when the position is unknown.
	Position() (time.Duration, bool)

	// ProbeDuration inspects a resource's duration without disturbing
	// current playback.
	ProbeDuration(resourceID string) (time.Duration, error)

	// Close releases backend resources.
	Close() error
}
