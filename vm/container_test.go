package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStackPushPop(t *testing.T) {
	s := newStack()
	assert.True(t, s.isEmpty())
	s.push(OfInt(1))
	s.push(OfInt(2))
	assert.Equal(t, 2, s.len())

	top, ok := s.peek()
	require.True(t, ok)
	assert.Equal(t, int64(2), top.Int())

	v, ok := s.pop()
	require.True(t, ok)
	assert.Equal(t, int64(2), v.Int())
	assert.Equal(t, 1, s.len())

	_, ok = s.pop()
	require.True(t, ok)
	_, ok = s.pop()
	assert.False(t, ok)
}

func TestStackSwapOver(t *testing.T) {
	s := newStack()
	s.push(OfInt(1))
	s.push(OfInt(2))
	require.True(t, s.swapTop())
	v, _ := s.peek()
	assert.Equal(t, int64(1), v.Int())

	second, ok := s.peekAt(1)
	require.True(t, ok)
	assert.Equal(t, int64(2), second.Int())
}

func TestNamedMapSetGet(t *testing.T) {
	m := newNamedMap()
	m.set("a", OfInt(1))
	m.set("b", OfInt(2))
	m.set("a", OfInt(9))

	v, ok := m.get("a")
	require.True(t, ok)
	assert.Equal(t, int64(9), v.Int())
	assert.Equal(t, []string{"a", "b"}, m.keys())
	assert.Equal(t, 2, m.len())

	_, ok = m.get("missing")
	assert.False(t, ok)
}
