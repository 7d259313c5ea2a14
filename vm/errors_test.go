package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusStringAndParse(t *testing.T) {
	assert.Equal(t, "StackUnderflow", StatusStackUnderflow.String())
	s, ok := ParseStatus("FunctionNotFound")
	require.True(t, ok)
	assert.Equal(t, StatusFunctionNotFound, s)

	_, ok = ParseStatus("NotARealStatus")
	assert.False(t, ok)
}

func TestFaultError(t *testing.T) {
	f := newFault(StatusFunctionNotFound, "__entry", 3)
	assert.Contains(t, f.Error(), "FunctionNotFound")
	assert.Contains(t, f.Error(), "__entry")
}
