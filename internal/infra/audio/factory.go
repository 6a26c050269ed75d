package audio

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	zlog "github.com/rs/zerolog/log"
)

// SpeakerSettings configures the speaker backend.
type SpeakerSettings struct {
	SampleRate int `yaml:"sample_rate" mapstructure:"sample_rate" default:"44100" validate:"gte=8000"`
	BufferMs   int `yaml:"buffer_ms" mapstructure:"buffer_ms" default:"100" validate:"gte=10,lte=1000"`
}

// NewFromConfig creates a backend from the configured type and settings.
// A speaker backend that cannot start degrades to the silent backend so
// the engine stays fully functional without audio output.
func NewFromConfig(backendType string, settings map[string]any) (Backend, error) {
	switch backendType {
	case "speaker", "":
		var s SpeakerSettings
		if err := mapstructure.Decode(settings, &s); err != nil {
			return nil, errors.Wrap(err, "failed to decode speaker settings")
		}
		if err := defaults.Set(&s); err != nil {
			return nil, errors.Wrap(err, "failed to set defaults")
		}
		if err := validator.New().Struct(s); err != nil {
			return nil, errors.Wrap(err, "speaker settings validation failed")
		}
		b, err := newSpeakerBackend(s.SampleRate, time.Duration(s.BufferMs)*time.Millisecond)
		if err != nil {
			zlog.Warn().Msgf("audio: speaker backend unavailable, playback will be silent: %v", err)
			return NewSilent(), nil
		}
		return b, nil

	case "silent":
		return NewSilent(), nil

	default:
		return nil, errors.Newf("unsupported audio backend type: %s", backendType)
	}
}
