package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterExternalOverwritesPriorBinding(t *testing.T) {
	m := New()
	var calls int
	m.RegisterExternal("tick", func(*VM) { calls = 1 })
	m.RegisterExternal("tick", func(*VM) { calls = 2 })

	status := m.CallExtern("tick")
	require.Equal(t, StatusOK, status)
	assert.Equal(t, 2, calls)
}

func TestCallExternUnknownFunction(t *testing.T) {
	m := New()
	status := m.CallExtern("nope")
	assert.Equal(t, StatusFunctionNotFound, status)
}

func TestLoadLibraryMissingFile(t *testing.T) {
	m := New()
	status := m.LoadLibrary("/nonexistent/path.so")
	assert.Equal(t, StatusLibraryNotFound, status)
}
