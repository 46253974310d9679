package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack_EvictOldest(t *testing.T) {
	s := newStack(2)
	a, b, c := &Snapshot{}, &Snapshot{}, &Snapshot{}

	s.push(a)
	s.push(b)
	assert.Nil(t, s.evictOldest(2))

	s.push(c)
	assert.Same(t, a, s.evictOldest(2), "the first-appended entry is evicted")
	assert.Equal(t, 2, s.len())

	top, ok := s.peek()
	assert.True(t, ok)
	assert.Same(t, c, top, "the newest entry is never evicted")
}

func TestStack_PopAndReset(t *testing.T) {
	s := newStack(1)
	_, ok := s.peek()
	assert.False(t, ok)

	s.pop() // no-op on empty

	a := &Snapshot{}
	s.push(a)
	assert.True(t, s.contains(a))
	s.pop()
	assert.False(t, s.contains(a))

	s.push(a)
	s.push(a)
	s.reset()
	assert.Equal(t, 0, s.len())
}

func TestPool_WrapsAndClears(t *testing.T) {
	p := newPool(new(MockFactory), 2, 1)

	first := p.next()
	second := p.next()
	assert.NotSame(t, first, second)

	first.changed.entries = append(first.changed.entries, entry{state: stubState{id: 1}})
	third := p.next()
	assert.Same(t, first, third, "cursor wraps back to slot 0")
	assert.Equal(t, 0, third.Len(), "recycled slots are cleared")

	p.reset()
	assert.Same(t, first, p.next())
}
