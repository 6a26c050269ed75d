// Package history provides the listening history stack.
package history

// Locator identifies a track by resource ID. The queue is rebuilt
// whenever the listening context changes, which invalidates node
// references, so history entries are resolved against the live queue
// at pop time instead of holding nodes directly.
type Locator string

// Stack is a LIFO stack of track locators. The controller pushes the
// outgoing position immediately before every forward advance and never
// on backward navigation, so repeated "previous" calls walk back
// through forward-traversal history.
type Stack struct {
	entries []Locator
}

// New creates an empty stack.
func New() *Stack {
	return &Stack{entries: make([]Locator, 0)}
}

// Push records a locator as the most recent entry.
func (s *Stack) Push(l Locator) {
	s.entries = append(s.entries, l)
}

// Pop removes and returns the most recent locator.
// The second return is false when the stack is empty.
func (s *Stack) Pop() (Locator, bool) {
	if len(s.entries) == 0 {
		return "", false
	}
	l := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return l, true
}

// IsEmpty reports whether the stack holds no entries.
func (s *Stack) IsEmpty() bool {
	return len(s.entries) == 0
}

// Len returns the number of entries.
func (s *Stack) Len() int {
	return len(s.entries)
}

// Clear drops all entries.
func (s *Stack) Clear() {
	s.entries = s.entries[:0]
}

// Locators returns the stack contents most-recent first.
func (s *Stack) Locators() []Locator {
	out := make([]Locator, len(s.entries))
	for i, l := range s.entries {
		out[len(s.entries)-1-i] = l
	}
	return out
}
