package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromConfig_Silent(t *testing.T) {
	b, err := NewFromConfig("silent", nil)

	require.NoError(t, err)
	assert.False(t, b.Available())
}

func TestNewFromConfig_UnknownType(t *testing.T) {
	_, err := NewFromConfig("midi", nil)

	assert.Error(t, err)
}

func TestNewFromConfig_InvalidSpeakerSettings(t *testing.T) {
	tests := []struct {
		name     string
		settings map[string]any
	}{
		{name: "sample rate too low", settings: map[string]any{"sample_rate": 100}},
		{name: "buffer too large", settings: map[string]any{"buffer_ms": 5000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFromConfig("speaker", tt.settings)
			assert.Error(t, err)
		})
	}
}

func TestSilent_Degrades(t *testing.T) {
	s := NewSilent()

	assert.False(t, s.Available())
	assert.False(t, s.Busy())

	_, known := s.Position()
	assert.False(t, known)

	_, err := s.ProbeDuration("anything")
	assert.ErrorIs(t, err, ErrBackendUnavailable)

	// The remaining operations are safe no-ops.
	assert.NoError(t, s.Load("anything"))
	assert.NoError(t, s.Play(0))
	s.Pause()
	s.Resume()
	s.Stop()
	assert.NoError(t, s.Close())
}
