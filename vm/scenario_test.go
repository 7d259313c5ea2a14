package vm

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// registerTestPrint wires a "print" host function that writes its
// popped top to buf: "a host print that writes its top to stdout and
// drops it".
func registerTestPrint(m *VM, buf *bytes.Buffer) {
	m.RegisterExternal("print", func(m *VM) {
		v, ok := m.Pop()
		if !ok {
			return
		}
		fmt.Fprintf(buf, "%s\n", v.Display())
	})
}

func registerTestAdd(m *VM) {
	m.RegisterExternal("add", func(m *VM) {
		w1, ok := m.Pop()
		if !ok {
			return
		}
		w2, ok := m.Pop()
		if !ok {
			m.Push(w1)
			return
		}
		m.Push(OfInt(w2.Int() + w1.Int()))
	})
}

func TestScenarioHelloWorldPrint(t *testing.T) {
	var buf bytes.Buffer
	m := New()
	registerTestPrint(m, &buf)
	m.Load(entryProgram(
		push(OfString("hello")),
		Instruction{Op: OpCallExtern, Name: "print"},
		Instruction{Op: OpHalt},
	))
	status := m.Run("__entry")
	require.Equal(t, StatusOK, status)
	assert.Equal(t, "hello\n", buf.String())
}

func TestScenarioArithmetic(t *testing.T) {
	var buf bytes.Buffer
	m := New()
	registerTestPrint(m, &buf)
	registerTestAdd(m)
	m.Load(entryProgram(
		push(OfInt(2)),
		push(OfInt(3)),
		Instruction{Op: OpCallExtern, Name: "add"},
		Instruction{Op: OpCallExtern, Name: "print"},
		Instruction{Op: OpHalt},
	))
	status := m.Run("__entry")
	require.Equal(t, StatusOK, status)
	assert.Equal(t, "5\n", buf.String())
}

func TestScenarioFunctionCallAndReturn(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgram()
	p.AddFunction(&Function{Name: "f", Instructions: []Instruction{
		push(OfInt(42)),
		{Op: OpReturn},
	}})
	p.AddFunction(&Function{Name: "__entry", Instructions: []Instruction{
		{Op: OpCall, Name: "f"},
		{Op: OpCallExtern, Name: "print"},
		{Op: OpHalt},
	}})

	m := New()
	registerTestPrint(m, &buf)
	m.Load(p)
	status := m.Run("__entry")
	require.Equal(t, StatusOK, status)
	assert.Equal(t, "42\n", buf.String())
}

func TestScenarioConditionalJumpSkip(t *testing.T) {
	var buf bytes.Buffer
	m := New()
	registerTestPrint(m, &buf)
	m.Load(entryProgram(
		push(OfInt(1)),
		Instruction{Op: OpJmpIf, Arg: OfInt(4)},
		push(OfString("skipped")),
		Instruction{Op: OpCallExtern, Name: "print"},
		Instruction{Op: OpHalt},
	))
	status := m.Run("__entry")
	require.Equal(t, StatusOK, status)
	assert.Equal(t, "", buf.String())
}

func TestScenarioRegisterRoundTripWithPrint(t *testing.T) {
	var buf bytes.Buffer
	m := New()
	registerTestPrint(m, &buf)
	m.Load(entryProgram(
		push(OfInt(7)),
		Instruction{Op: OpPop, Arg: OfString("r3")},
		push(OfString("r3")),
		Instruction{Op: OpCallExtern, Name: "print"},
		Instruction{Op: OpHalt},
	))
	status := m.Run("__entry")
	require.Equal(t, StatusOK, status)
	assert.Equal(t, "7\n", buf.String())
}

func TestScenarioEqOnStringsWithPrint(t *testing.T) {
	var buf bytes.Buffer
	m := New()
	registerTestPrint(m, &buf)
	m.Load(entryProgram(
		push(OfString("ab")),
		push(OfString("ab")),
		Instruction{Op: OpEq},
		Instruction{Op: OpCallExtern, Name: "print"},
		Instruction{Op: OpHalt},
	))
	status := m.Run("__entry")
	require.Equal(t, StatusOK, status)
	assert.Equal(t, "1\n", buf.String())
}
