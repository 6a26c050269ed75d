package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack_LIFO(t *testing.T) {
	s := New()
	s.Push("a")
	s.Push("b")

	l, ok := s.Pop()
	assert.True(t, ok)
	assert.Equal(t, Locator("b"), l)

	l, ok = s.Pop()
	assert.True(t, ok)
	assert.Equal(t, Locator("a"), l)

	assert.True(t, s.IsEmpty())
}

func TestStack_PopEmpty(t *testing.T) {
	s := New()

	l, ok := s.Pop()
	assert.False(t, ok)
	assert.Equal(t, Locator(""), l)
}

func TestStack_Locators_MostRecentFirst(t *testing.T) {
	s := New()
	s.Push("a")
	s.Push("b")
	s.Push("c")

	assert.Equal(t, []Locator{"c", "b", "a"}, s.Locators())
	// Reading does not consume entries.
	assert.Equal(t, 3, s.Len())
}

func TestStack_Clear(t *testing.T) {
	s := New()
	s.Push("a")
	s.Clear()

	assert.True(t, s.IsEmpty())
	assert.Equal(t, 0, s.Len())
}
