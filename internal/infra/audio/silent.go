package audio

import "time"

// Silent is a no-op backend used when no audio output is available or
// wanted. Every operation succeeds without doing anything, so the
// engine's data structures and navigation stay fully functional.
type Silent struct{}

// NewSilent creates the silent backend.
func NewSilent() *Silent {
	return &Silent{}
}

// Available always reports false.
func (*Silent) Available() bool { return false }

// Load is a no-op.
func (*Silent) Load(string) error { return nil }

// Play is a no-op.
func (*Silent) Play(time.Duration) error { return nil }

// Pause is a no-op.
func (*Silent) Pause() {}

// Resume is a no-op.
func (*Silent) Resume() {}

// Stop is a no-op.
func (*Silent) Stop() {}

// Busy always reports false.
func (*Silent) Busy() bool { return false }

// Position is always unknown.
func (*Silent) Position() (time.Duration, bool) { return 0, false }

// ProbeDuration always fails; callers treat the duration as unknown.
func (*Silent) ProbeDuration(string) (time.Duration, error) {
	return 0, ErrBackendUnavailable
}

// Close is a no-op.
func (*Silent) Close() error { return nil }
