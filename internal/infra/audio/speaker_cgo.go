//go:build cgo

package audio

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// speakerBackend plays local files through the system speaker using beep.
type speakerBackend struct {
	mu sync.Mutex

	sampleRate  beep.SampleRate
	buffer      time.Duration
	initialized bool

	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	done     chan struct{}
}

func newSpeakerBackend(sampleRate int, buffer time.Duration) (Backend, error) {
	return &speakerBackend{
		sampleRate: beep.SampleRate(sampleRate),
		buffer:     buffer,
	}, nil
}

// Available reports true; this build has audio output support.
func (b *speakerBackend) Available() bool { return true }

// Load decodes the file and prepares it for playback.
func (b *speakerBackend) Load(resourceID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stopLocked()

	f, err := os.Open(resourceID)
	if err != nil {
		return errors.Wrap(err, "failed to open resource")
	}
	streamer, format, err := decode(f, resourceID)
	if err != nil {
		_ = f.Close()
		return err
	}

	b.file = f
	b.streamer = streamer
	b.format = format
	return nil
}

// Play starts the loaded resource at offset, replacing any running
// playback. The speaker is initialized lazily on first play.
func (b *speakerBackend) Play(offset time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.streamer == nil {
		return ErrNothingLoaded
	}

	if !b.initialized {
		if err := speaker.Init(b.sampleRate, b.sampleRate.N(b.buffer)); err != nil {
			return errors.Wrap(err, "failed to initialize speaker")
		}
		b.initialized = true
	}

	speaker.Clear()

	if offset < 0 {
		offset = 0
	}
	if err := b.streamer.Seek(b.format.SampleRate.N(offset)); err != nil {
		return errors.Wrap(err, "failed to seek")
	}

	// Resample to the speaker rate in case the file differs.
	resampled := beep.Resample(4, b.format.SampleRate, b.sampleRate, b.streamer)
	b.ctrl = &beep.Ctrl{Streamer: resampled}

	done := make(chan struct{})
	b.done = done
	speaker.Play(beep.Seq(b.ctrl, beep.Callback(func() {
		close(done)
	})))

	return nil
}

// Pause suspends output.
func (b *speakerBackend) Pause() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ctrl != nil {
		speaker.Lock()
		b.ctrl.Paused = true
		speaker.Unlock()
	}
}

// Resume continues output after Pause.
func (b *speakerBackend) Resume() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ctrl != nil {
		speaker.Lock()
		b.ctrl.Paused = false
		speaker.Unlock()
	}
}

// Stop halts playback and discards the loaded resource.
func (b *speakerBackend) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopLocked()
}

func (b *speakerBackend) stopLocked() {
	if b.initialized {
		speaker.Clear()
	}
	if b.streamer != nil {
		_ = b.streamer.Close()
		b.streamer = nil
	}
	if b.file != nil {
		_ = b.file.Close()
		b.file = nil
	}
	b.ctrl = nil
	b.done = nil
}

// Busy reports whether the loaded resource has more samples to play.
func (b *speakerBackend) Busy() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.streamer == nil || b.done == nil {
		return false
	}
	select {
	case <-b.done:
		return false
	default:
		return true
	}
}

// Position returns the playback position of the loaded resource.
func (b *speakerBackend) Position() (time.Duration, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.streamer == nil {
		return 0, false
	}
	speaker.Lock()
	pos := b.streamer.Position()
	speaker.Unlock()
	return b.format.SampleRate.D(pos), true
}

// ProbeDuration decodes the resource independently of playback and
// returns its total duration.
func (b *speakerBackend) ProbeDuration(resourceID string) (time.Duration, error) {
	f, err := os.Open(resourceID)
	if err != nil {
		return 0, errors.Wrap(err, "failed to open resource")
	}
	streamer, format, err := decode(f, resourceID)
	if err != nil {
		_ = f.Close()
		return 0, err
	}
	d := format.SampleRate.D(streamer.Len())
	_ = streamer.Close()
	_ = f.Close()
	return d, nil
}

// Close stops playback and shuts the speaker down.
func (b *speakerBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stopLocked()
	if b.initialized {
		speaker.Close()
		b.initialized = false
	}
	return nil
}

// decode picks a decoder by file extension.
func decode(f *os.File, path string) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		s, format, err := mp3.Decode(f)
		return s, format, errors.Wrap(err, "failed to decode mp3")
	case ".wav":
		s, format, err := wav.Decode(f)
		return s, format, errors.Wrap(err, "failed to decode wav")
	case ".ogg":
		s, format, err := vorbis.Decode(f)
		return s, format, errors.Wrap(err, "failed to decode ogg")
	case ".flac":
		s, format, err := flac.Decode(f)
		return s, format, errors.Wrap(err, "failed to decode flac")
	default:
		return nil, beep.Format{}, errors.Newf("unsupported audio format: %s", filepath.Ext(path))
	}
}
