package hostlib_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhrexx/prostvm/internal/hostlib"
	"github.com/zhrexx/prostvm/vm"
)

func run(t *testing.T, instructions ...vm.Instruction) *vm.VM {
	t.Helper()
	p := vm.NewProgram()
	p.AddFunction(&vm.Function{Name: "__entry", Instructions: instructions})
	m := vm.New()
	require.Equal(t, vm.StatusOK, hostlib.Register(m))
	m.Load(p)
	require.Equal(t, vm.StatusOK, m.Run("__entry"))
	return m
}

func TestAddIsSignedArithmetic(t *testing.T) {
	m := run(t,
		vm.Instruction{Op: vm.OpPush, Arg: vm.OfInt(-3)},
		vm.Instruction{Op: vm.OpPush, Arg: vm.OfInt(10)},
		vm.Instruction{Op: vm.OpCallExtern, Name: "add"},
		vm.Instruction{Op: vm.OpHalt},
	)
	top, ok := m.StackTop()
	require.True(t, ok)
	assert.Equal(t, int64(7), top.Int())
}

func TestNegIsArithmeticNegation(t *testing.T) {
	m := run(t,
		vm.Instruction{Op: vm.OpPush, Arg: vm.OfInt(5)},
		vm.Instruction{Op: vm.OpCallExtern, Name: "neg"},
		vm.Instruction{Op: vm.OpHalt},
	)
	top, ok := m.StackTop()
	require.True(t, ok)
	assert.Equal(t, int64(-5), top.Int())
}

func TestSubAndMul(t *testing.T) {
	m := run(t,
		vm.Instruction{Op: vm.OpPush, Arg: vm.OfInt(10)},
		vm.Instruction{Op: vm.OpPush, Arg: vm.OfInt(4)},
		vm.Instruction{Op: vm.OpCallExtern, Name: "sub"},
		vm.Instruction{Op: vm.OpHalt},
	)
	top, _ := m.StackTop()
	assert.Equal(t, int64(6), top.Int())

	m2 := run(t,
		vm.Instruction{Op: vm.OpPush, Arg: vm.OfInt(6)},
		vm.Instruction{Op: vm.OpPush, Arg: vm.OfInt(7)},
		vm.Instruction{Op: vm.OpCallExtern, Name: "mul"},
		vm.Instruction{Op: vm.OpHalt},
	)
	top2, _ := m2.StackTop()
	assert.Equal(t, int64(42), top2.Int())
}
