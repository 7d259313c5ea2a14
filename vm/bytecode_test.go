package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTripProgram() *Program {
	p := NewProgram()
	p.SetMemory("counter", OfInt(0))
	p.AddFunction(&Function{
		Name: "helper",
		Instructions: []Instruction{
			push(OfInt(1)),
			{Op: OpReturn},
		},
	})
	p.AddFunction(&Function{
		Name: "__entry",
		Instructions: []Instruction{
			push(OfInt(2)),
			push(OfInt(3)),
			{Op: OpEq},
			{Op: OpJmpIf, Arg: OfInt(5)},
			{Op: OpCall, Name: "helper"},
			{Op: OpCallExtern, Name: "print"},
			{Op: OpHalt},
		},
		Labels: []int{0, 5},
	})
	return p
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	orig := roundTripProgram()
	encoded := Serialize(orig)
	decoded, err := Deserialize(encoded)
	require.NoError(t, err)

	require.Equal(t, orig.FunctionOrder, decoded.FunctionOrder)
	require.Equal(t, orig.MemoryOrder, decoded.MemoryOrder)

	for name, fn := range orig.Functions {
		got := decoded.Functions[name]
		require.NotNil(t, got)
		assert.Equal(t, fn.Instructions, got.Instructions)
		assert.Equal(t, fn.Labels, got.Labels)
	}
}

func TestDeserializeRejectsBadMagic(t *testing.T) {
	data := Serialize(roundTripProgram())
	data[0] = 'X'
	_, err := Deserialize(data)
	assert.Error(t, err)
	fault, ok := err.(*Fault)
	require.True(t, ok)
	assert.Equal(t, StatusInvalidBytecode, fault.Status)
}

func TestDeserializeRejectsTruncation(t *testing.T) {
	data := Serialize(roundTripProgram())
	truncated := data[:len(data)-1]
	_, err := Deserialize(truncated)
	assert.Error(t, err)
}

func TestDeserializeRejectsBadVersion(t *testing.T) {
	data := Serialize(roundTripProgram())
	data[6] = 99
	_, err := Deserialize(data)
	assert.Error(t, err)
}
