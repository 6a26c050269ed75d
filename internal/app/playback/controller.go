package playback

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/KenLustre/Harmonia/internal/app/history"
	"github.com/KenLustre/Harmonia/internal/app/queue"
	"github.com/KenLustre/Harmonia/internal/domain/track"
	"github.com/KenLustre/Harmonia/internal/infra/audio"
)

// Errors
var (
	ErrNoTrack = errors.New("no track selected")
)

// Controller orchestrates the queue, the history stack and the audio
// backend. Every public operation takes the controller mutex; the
// engine assumes a single control thread and one lock is enough.
type Controller struct {
	mu sync.Mutex

	queue   *queue.Queue
	history *history.Stack
	view    []track.Track // Tracks last supplied by the browsing view

	backend audio.Backend

	state    State
	looping  bool
	shuffled bool
	dragging bool

	elapsed time.Duration
	total   time.Duration

	rng *rand.Rand

	eventCh chan Event
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewController creates a controller driving the given backend.
func NewController(backend audio.Backend) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		queue:   queue.New(),
		history: history.New(),
		backend: backend,
		state:   StateStopped,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		eventCh: make(chan Event, 16),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Events returns the event channel.
func (c *Controller) Events() <-chan Event {
	return c.eventCh
}

// SetView replaces the browsing context used when the queue is rebuilt.
func (c *Controller) SetView(tracks []track.Track) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.view = make([]track.Track, len(tracks))
	copy(c.view, tracks)
}

// View returns a copy of the current browsing context.
func (c *Controller) View() []track.Track {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]track.Track, len(c.view))
	copy(out, c.view)
	return out
}

// PlayTrack rebuilds the queue from the given context, selects t and
// starts playing it. A nil context keeps the previously supplied view.
func (c *Controller) PlayTrack(t track.Track, contextTracks []track.Track) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if contextTracks != nil {
		c.view = make([]track.Track, len(contextTracks))
		copy(c.view, contextTracks)
	}
	return c.playTrackLocked(t)
}

// TogglePlay pauses a playing track, resumes a paused one, and
// otherwise starts playback: the selected track if any, else the first
// track of the current view. A no-op when there is nothing to play.
func (c *Controller) TogglePlay() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StatePlaying:
		c.backend.Pause()
		c.state = StatePaused
		c.sendStateChangedLocked()
		return nil
	case StatePaused:
		c.backend.Resume()
		c.state = StatePlaying
		c.sendStateChangedLocked()
		return nil
	default:
		if c.queue.Current() != nil {
			return c.playCurrentLocked()
		}
		if len(c.view) > 0 {
			return c.playTrackLocked(c.view[0])
		}
		return nil
	}
}

// Next advances to the following track, pushing the outgoing position
// onto the history stack. At the tail it wraps to the head when loop
// mode is on and stops otherwise, leaving the cursor on the last track.
func (c *Controller) Next() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.nextLocked()
}

// Previous walks back through forward-traversal history, skipping
// entries that no longer resolve against the live queue. With no
// usable history it falls back to the chain's prev link, and is a
// no-op at the head.
func (c *Controller) Previous() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for {
		l, ok := c.history.Pop()
		if !ok {
			break
		}
		if n := c.queue.FindResource(string(l)); n != nil {
			_ = c.queue.SetCurrent(n)
			return c.playCurrentLocked()
		}
		// Stale locator from a rebuilt queue; try the next older entry.
	}

	cur := c.queue.Current()
	if cur != nil && cur.Prev() != nil {
		_ = c.queue.SetCurrent(cur.Prev())
		return c.playCurrentLocked()
	}
	return nil
}

// ToggleLoop flips loop mode. No immediate playback effect.
func (c *Controller) ToggleLoop() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.looping = !c.looping
	c.sendEventLocked(Event{Type: EventModeChanged, State: c.state})
	return c.looping
}

// ToggleShuffle shuffles the queue in place when turning shuffle on.
// Turning it off rebuilds the queue from the current view in its
// original order, keeping the playing track selected when it is still
// part of the view.
func (c *Controller) ToggleShuffle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.shuffled = !c.shuffled
	if c.shuffled {
		c.queue.Shuffle(c.rng)
	} else {
		var currentID string
		if cur := c.queue.Current(); cur != nil {
			currentID = cur.Track().ResourceID
		}
		c.queue.Clear()
		for _, t := range c.view {
			c.queue.Append(t)
		}
		if currentID != "" {
			_ = c.queue.SetCurrent(c.queue.FindResource(currentID))
		} else {
			_ = c.queue.SetCurrent(nil)
		}
	}
	c.sendEventLocked(Event{Type: EventModeChanged, State: c.state})
	return c.shuffled
}

// Seek updates the displayed elapsed time to ratio of the total
// duration without committing to the backend, as while dragging a
// progress slider. The ratio is clamped to [0, 1].
func (c *Controller) Seek(ratio float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ratio < 0 {
		ratio = 0
	} else if ratio > 1 {
		ratio = 1
	}
	c.dragging = true
	c.elapsed = time.Duration(ratio * float64(c.total))
}

// ReleaseSeek commits a pending Seek to the backend. An abandoned drag
// is released without committing when playback is not running.
func (c *Controller) ReleaseSeek() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.dragging {
		return nil
	}
	c.dragging = false

	if c.state != StatePlaying || c.total <= 0 {
		return nil
	}
	if err := c.backend.Play(c.elapsed); err != nil {
		zlog.Warn().Msgf("playback: failed to commit seek: %v", err)
	}
	return nil
}

// Tick polls the backend for elapsed time and end-of-track detection.
// It is idempotent and never blocks; the surrounding application calls
// it on a fixed interval.
func (c *Controller) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StatePlaying || c.dragging {
		return
	}
	if !c.backend.Available() {
		return
	}
	if pos, ok := c.backend.Position(); ok {
		c.elapsed = pos
	}
	if c.backend.Busy() {
		return
	}

	// Track ran out; advance as if the user pressed next.
	if cur := c.queue.Current(); cur != nil {
		t := cur.Track()
		c.sendEventLocked(Event{Type: EventTrackEnded, Track: &t, State: c.state})
	}
	_ = c.nextLocked()
}

// Enqueue appends a track to the live queue without rebuilding it.
func (c *Controller) Enqueue(t track.Track) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.queue.Append(t)
}

// EnqueueAll appends multiple tracks to the live queue.
func (c *Controller) EnqueueAll(tracks []track.Track) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, t := range tracks {
		c.queue.Append(t)
	}
}

// RemoveAt removes the queue entry at index. Removing the entry being
// played stops playback; the queue reassigns its cursor to the next
// entry, or the previous one at the tail.
func (c *Controller) RemoveAt(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, err := c.queue.At(index)
	if err != nil {
		return err
	}
	wasCurrent := n == c.queue.Current()
	if err := c.queue.Remove(n); err != nil {
		return err
	}
	if wasCurrent && c.state != StateStopped {
		c.backend.Stop()
		c.state = StateStopped
		c.elapsed = 0
		c.total = 0
		c.sendStateChangedLocked()
	}
	return nil
}

// Search returns the queued tracks matching the query, in queue order.
func (c *Controller) Search(query string) []track.Track {
	c.mu.Lock()
	defer c.mu.Unlock()

	nodes := c.queue.Find(query)
	tracks := make([]track.Track, len(nodes))
	for i, n := range nodes {
		tracks[i] = n.Track()
	}
	return tracks
}

// State returns the current playback state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// NowPlaying returns the track under the queue cursor.
func (c *Controller) NowPlaying() (track.Track, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cur := c.queue.Current()
	if cur == nil {
		return track.Track{}, false
	}
	return cur.Track(), true
}

// Elapsed returns the displayed elapsed time of the current track.
func (c *Controller) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elapsed
}

// Total returns the duration of the current track, 0 when unknown.
func (c *Controller) Total() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// IsPlaying reports whether a track is currently playing.
func (c *Controller) IsPlaying() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == StatePlaying
}

// IsLooping reports whether loop mode is on.
func (c *Controller) IsLooping() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.looping
}

// IsShuffled reports whether shuffle mode is on.
func (c *Controller) IsShuffled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.shuffled
}

// QueueTracks returns the queued tracks in playback order.
func (c *Controller) QueueTracks() []track.Track {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue.Tracks()
}

// QueueLen returns the number of queued tracks.
func (c *Controller) QueueLen() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue.Len()
}

// History returns the history locators, most recent first.
func (c *Controller) History() []history.Locator {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.history.Locators()
}

// Close stops playback and releases resources.
func (c *Controller) Close() {
	c.cancel()
	c.backend.Stop()
	close(c.eventCh)
}

// playTrackLocked rebuilds the queue from the view, selects t and
// starts playback. Must be called with the lock held.
func (c *Controller) playTrackLocked(t track.Track) error {
	c.queue.Clear()
	var start *queue.Node
	for _, s := range c.view {
		n := c.queue.Append(s)
		if start == nil && s.Same(t) {
			start = n
		}
	}
	_ = c.queue.SetCurrent(start)
	if c.shuffled {
		c.queue.Shuffle(c.rng)
	}
	return c.playCurrentLocked()
}

// playCurrentLocked loads and plays the track under the cursor.
// Backend failures degrade to silent playback; they never crash the
// engine or leave the queue inconsistent. Must be called with the
// lock held.
func (c *Controller) playCurrentLocked() error {
	cur := c.queue.Current()
	if cur == nil {
		return ErrNoTrack
	}
	t := cur.Track()
	c.elapsed = 0
	c.total = 0

	if !c.backend.Available() {
		// Silent mode: selection and queue state advance, nothing plays.
		c.state = StateStopped
		zlog.Debug().Msgf("playback: backend unavailable, selected without playing: %s", t)
		return nil
	}

	if d, err := c.backend.ProbeDuration(t.ResourceID); err != nil {
		zlog.Warn().Msgf("playback: failed to probe duration, showing 0:00: resource=%s err=%v", t.ResourceID, err)
	} else {
		c.total = d
	}

	if err := c.backend.Load(t.ResourceID); err != nil {
		zlog.Warn().Msgf("playback: failed to load resource, continuing without audio: resource=%s err=%v", t.ResourceID, err)
	} else if err := c.backend.Play(0); err != nil {
		zlog.Warn().Msgf("playback: failed to start playback: resource=%s err=%v", t.ResourceID, err)
	}

	c.state = StatePlaying
	c.sendEventLocked(Event{Type: EventTrackStarted, Track: &t, State: c.state})
	return nil
}

// nextLocked implements the forward-advance rules shared by Next and
// end-of-track auto-advance. Must be called with the lock held.
func (c *Controller) nextLocked() error {
	cur := c.queue.Current()
	if cur == nil {
		return ErrNoTrack
	}

	if next := cur.Next(); next != nil {
		c.history.Push(history.Locator(cur.Track().ResourceID))
		_ = c.queue.SetCurrent(next)
		return c.playCurrentLocked()
	}

	if c.looping {
		c.history.Push(history.Locator(cur.Track().ResourceID))
		_ = c.queue.SetCurrent(c.queue.Head())
		return c.playCurrentLocked()
	}

	// End of the queue with loop off: stop, cursor stays on the tail.
	c.backend.Stop()
	c.state = StateStopped
	c.elapsed = 0
	t := cur.Track()
	c.sendEventLocked(Event{Type: EventQueueEnded, Track: &t, State: c.state})
	return nil
}

func (c *Controller) sendStateChangedLocked() {
	var t *track.Track
	if cur := c.queue.Current(); cur != nil {
		tt := cur.Track()
		t = &tt
	}
	c.sendEventLocked(Event{Type: EventStateChanged, Track: t, State: c.state})
}

// sendEventLocked sends an event without blocking.
// Must be called with the lock held.
func (c *Controller) sendEventLocked(e Event) {
	select {
	case c.eventCh <- e:
		// Successfully sent
	case <-c.ctx.Done():
		// Controller closed, don't send
	default:
		// Channel full, drop event
	}
}
