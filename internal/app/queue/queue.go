// Package queue provides the doubly linked playback queue.
package queue

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/KenLustre/Harmonia/internal/domain/track"
)

// Errors
var (
	ErrInvalidReference = errors.New("node does not belong to this queue")
	ErrOutOfRange       = errors.New("index out of range")
	ErrNotAdjacent      = errors.New("nodes are not adjacent")
)

// Node is one element of the queue chain. Nodes are owned exclusively
// by the queue that created them.
type Node struct {
	track track.Track
	prev  *Node
	next  *Node
	owner *Queue
}

// Track returns the track held by the node.
func (n *Node) Track() track.Track { return n.track }

// Next returns the following node, or nil at the tail.
func (n *Node) Next() *Node { return n.next }

// Prev returns the preceding node, or nil at the head.
func (n *Node) Prev() *Node { return n.prev }

// Queue is a doubly linked track sequence with a movable "current"
// cursor. It is not safe for concurrent use; the playback controller
// serializes all access behind a single mutex.
type Queue struct {
	head    *Node
	tail    *Node
	current *Node
	size    int
}

// New creates an empty queue.
func New() *Queue {
	return &Queue{}
}

// Append adds a track at the tail. O(1).
// The first appended node becomes head, tail and current.
func (q *Queue) Append(t track.Track) *Node {
	n := &Node{track: t, owner: q}
	if q.head == nil {
		q.head = n
		q.tail = n
		q.current = n
	} else {
		n.prev = q.tail
		q.tail.next = n
		q.tail = n
	}
	q.size++
	return n
}

// Clear drops all nodes and resets the cursor. Cleared nodes are
// disowned so stale references fail Remove instead of corrupting
// a rebuilt chain.
func (q *Queue) Clear() {
	for n := q.head; n != nil; {
		next := n.next
		n.prev = nil
		n.next = nil
		n.owner = nil
		n = next
	}
	q.head = nil
	q.tail = nil
	q.current = nil
	q.size = 0
}

// Remove excises n from the chain. O(1). If n was current, the cursor
// moves to its former next node, else its former prev node, else nil
// when the queue becomes empty.
func (q *Queue) Remove(n *Node) error {
	if n == nil || n.owner != q {
		return ErrInvalidReference
	}
	if n == q.head {
		q.head = n.next
	}
	if n == q.tail {
		q.tail = n.prev
	}
	if n.prev != nil {
		n.prev.next = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	}
	if n == q.current {
		if n.next != nil {
			q.current = n.next
		} else {
			q.current = n.prev
		}
	}
	n.prev = nil
	n.next = nil
	n.owner = nil
	q.size--
	return nil
}

// Find returns, in head-to-tail order, every node whose title or artist
// contains query, compared case-insensitively. O(n). Does not mutate.
func (q *Queue) Find(query string) []*Node {
	query = strings.ToLower(query)
	var results []*Node
	for n := q.head; n != nil; n = n.next {
		if strings.Contains(strings.ToLower(n.track.Title), query) ||
			strings.Contains(strings.ToLower(n.track.Artist), query) {
			results = append(results, n)
		}
	}
	return results
}

// At returns the node at the given position. O(n).
func (q *Queue) At(index int) (*Node, error) {
	if index < 0 || index >= q.size {
		return nil, errors.Wrapf(ErrOutOfRange, "index %d, size %d", index, q.size)
	}
	n := q.head
	for i := 0; i < index; i++ {
		n = n.next
	}
	return n, nil
}

// SwapAdjacent reorders the chain so that b precedes a. O(1).
// Requires a.next == b, i.e. the nodes are adjacent in that order.
func (q *Queue) SwapAdjacent(a, b *Node) error {
	if a == nil || b == nil || a.owner != q || b.owner != q {
		return ErrInvalidReference
	}
	if a.next != b {
		return ErrNotAdjacent
	}
	before := a.prev
	after := b.next
	if before != nil {
		before.next = b
	} else {
		q.head = b
	}
	if after != nil {
		after.prev = a
	} else {
		q.tail = a
	}
	b.prev = before
	b.next = a
	a.prev = b
	a.next = after
	return nil
}

// Len returns the number of nodes in the queue.
func (q *Queue) Len() int { return q.size }

// Head returns the first node, or nil when empty.
func (q *Queue) Head() *Node { return q.head }

// Tail returns the last node, or nil when empty.
func (q *Queue) Tail() *Node { return q.tail }

// Current returns the node selected for playback, or nil.
func (q *Queue) Current() *Node { return q.current }

// SetCurrent moves the cursor to n. A nil n clears the cursor.
func (q *Queue) SetCurrent(n *Node) error {
	if n != nil && n.owner != q {
		return ErrInvalidReference
	}
	q.current = n
	return nil
}

// Each calls fn for every node head-to-tail until fn returns false.
// The traversal is restartable; Each may be called any number of times.
func (q *Queue) Each(fn func(*Node) bool) {
	for n := q.head; n != nil; n = n.next {
		if !fn(n) {
			return
		}
	}
}

// Tracks returns the queued tracks in head-to-tail order.
func (q *Queue) Tracks() []track.Track {
	tracks := make([]track.Track, 0, q.size)
	for n := q.head; n != nil; n = n.next {
		tracks = append(tracks, n.track)
	}
	return tracks
}

// FindResource returns the first node holding the given resource ID,
// or nil if absent. O(n).
func (q *Queue) FindResource(resourceID string) *Node {
	for n := q.head; n != nil; n = n.next {
		if n.track.ResourceID == resourceID {
			return n
		}
	}
	return nil
}
