// Package playback provides the queue-driven playback state machine.
package playback

// State represents the playback state.
type State int

const (
	StateStopped State = iota // No track playing
	StatePlaying              // Track is playing
	StatePaused               // Track is paused, position retained
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}
