//go:build !cgo

package audio

import "time"

// Speaker output needs cgo for the native sound libraries. Builds
// without it fall back to the silent backend via the factory.
func newSpeakerBackend(sampleRate int, buffer time.Duration) (Backend, error) {
	return nil, ErrBackendUnavailable
}
