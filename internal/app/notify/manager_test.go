package notify

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KenLustre/Harmonia/internal/app/playback"
)

// captureStream records every notification it receives.
type captureStream struct {
	mu  sync.Mutex
	got []Notification
}

func (s *captureStream) Send(n Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = append(s.got, n)
	return nil
}

func (s *captureStream) notifications() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Notification, len(s.got))
	copy(out, s.got)
	return out
}

func TestManager_BroadcastSequencing(t *testing.T) {
	m := NewManager()
	defer m.Close()

	stream := &captureStream{}
	m.Subscribe(stream)

	m.Broadcast(playback.Event{Type: playback.EventTrackStarted})
	m.Broadcast(playback.Event{Type: playback.EventStateChanged})
	m.Broadcast(playback.Event{Type: playback.EventQueueEnded})

	got := stream.notifications()
	require.Len(t, got, 3)
	for i, n := range got {
		assert.Equal(t, uint64(i+1), n.SequenceNo)
	}
	assert.Equal(t, playback.EventTrackStarted, got[0].Event.Type)
	assert.Equal(t, playback.EventQueueEnded, got[2].Event.Type)
}

func TestManager_BroadcastToAllSubscribers(t *testing.T) {
	m := NewManager()
	defer m.Close()

	first := &captureStream{}
	second := &captureStream{}
	m.Subscribe(first)
	m.Subscribe(second)
	assert.Equal(t, 2, m.SubscriberCount())

	m.Broadcast(playback.Event{Type: playback.EventTrackStarted})

	assert.Len(t, first.notifications(), 1)
	assert.Len(t, second.notifications(), 1)
}

func TestManager_Unsubscribe(t *testing.T) {
	m := NewManager()
	defer m.Close()

	stream := &captureStream{}
	id := m.Subscribe(stream)
	m.Unsubscribe(id)

	m.Broadcast(playback.Event{Type: playback.EventTrackStarted})

	assert.Empty(t, stream.notifications())
	assert.Equal(t, 0, m.SubscriberCount())
}

func TestManager_Close(t *testing.T) {
	m := NewManager()
	m.Subscribe(&captureStream{})

	m.Close()

	assert.Equal(t, 0, m.SubscriberCount())
}
