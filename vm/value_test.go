package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueDisplay(t *testing.T) {
	assert.Equal(t, "42", OfInt(42).Display())
	assert.Equal(t, "-7", OfInt(-7).Display())
	assert.Equal(t, "18446744073709551615", OfUint(^uint64(0)).Display())
	assert.Equal(t, "3.5", OfFloat(3.5).Display())
	assert.Equal(t, "x", OfChar('x').Display())
	assert.Equal(t, "hello", OfString("hello").Display())
	assert.Equal(t, "", NullPointer().Display())
}

func TestValueTypeName(t *testing.T) {
	assert.Equal(t, "WINT", OfInt(1).TypeName())
	assert.Equal(t, "WFLOAT", OfFloat(1).TypeName())
	assert.Equal(t, "WCHAR_", OfChar('a').TypeName())
	assert.Equal(t, "WPOINTER", OfString("s").TypeName())
}

func TestValueOwnership(t *testing.T) {
	s := OfString("owned")
	require.True(t, s.IsString())
	require.True(t, s.OwnsMemory())

	dup := s.Duplicate()
	assert.Equal(t, s.Str(), dup.Str())

	p := OfPointer(0xdeadbeef, false)
	assert.False(t, p.OwnsMemory())
	assert.False(t, p.IsString())
}

func TestValuesEqualAndCompare(t *testing.T) {
	assert.True(t, valuesEqual(OfInt(5), OfInt(5)))
	assert.False(t, valuesEqual(OfInt(5), OfFloat(5)))
	assert.True(t, valuesEqual(OfString("ab"), OfString("ab")))

	order, ok := compareOrder(OfInt(2), OfInt(3))
	require.True(t, ok)
	assert.Equal(t, -1, order)

	_, ok = compareOrder(OfInt(2), OfFloat(3))
	assert.False(t, ok)
}
