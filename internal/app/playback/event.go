package playback

import "github.com/KenLustre/Harmonia/internal/domain/track"

// EventType represents a playback event type.
type EventType int

const (
	EventTrackStarted EventType = iota // A track began playing
	EventTrackEnded                    // The current track finished
	EventStateChanged                  // Play/pause/stop state flipped
	EventModeChanged                   // Loop or shuffle mode flipped
	EventQueueEnded                    // Reached the end of the queue with loop off
)

// String returns the string representation of the event type.
func (e EventType) String() string {
	switch e {
	case EventTrackStarted:
		return "track_started"
	case EventTrackEnded:
		return "track_ended"
	case EventStateChanged:
		return "state_changed"
	case EventModeChanged:
		return "mode_changed"
	case EventQueueEnded:
		return "queue_ended"
	default:
		return "unknown"
	}
}

// Event represents a playback event.
type Event struct {
	Type  EventType
	Track *track.Track // Track concerned (nil for some events)
	State State        // Playback state after the event
}
