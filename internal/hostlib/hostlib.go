// Package hostlib is the built-in example host library: print and basic
// signed arithmetic, grounded on the original's prost/std.h register_std.
//
// add/sub/mul are implemented with correct signed 64-bit arithmetic, and
// neg performs arithmetic negation. The original's equivalents lost sign
// information by coercing through an unsigned path and diverged between
// logical-not and arithmetic negation for neg; both were called out as
// host-library policy bugs, not core VM invariants, so this library does
// not reproduce them.
package hostlib

import (
	"fmt"

	"github.com/zhrexx/prostvm/vm"
)

// Register installs print, add, sub, mul and neg on the given VM under
// their original/expected names.
func Register(m *vm.VM) vm.Status {
	m.RegisterExternal("print", print)
	m.RegisterExternal("add", binaryOp(func(a, b int64) int64 { return a + b }))
	m.RegisterExternal("sub", binaryOp(func(a, b int64) int64 { return a - b }))
	m.RegisterExternal("mul", binaryOp(func(a, b int64) int64 { return a * b }))
	m.RegisterExternal("neg", neg)
	return vm.StatusOK
}

// RegisterLibrary is the exported entry point a dynamically loaded
// build of this package would expose as a Go plugin.
func RegisterLibrary(m *vm.VM) vm.Status {
	return Register(m)
}

func print(m *vm.VM) {
	v, ok := m.Pop()
	if !ok {
		return
	}
	fmt.Println(v.Display())
}

// binaryOp wraps a signed int64 combinator into the CallExtern calling
// convention: pop w1 (top) and w2 (second), matching the engine's own
// "w1 = top, w2 = second" comparison order, and push the result of
// op(w2, w1) so `Push a; Push b; CallExtern add` computes a+b in the
// order a program author would expect.
func binaryOp(op func(a, b int64) int64) vm.HostFunc {
	return func(m *vm.VM) {
		w1, ok := m.Pop()
		if !ok {
			return
		}
		w2, ok := m.Pop()
		if !ok {
			m.Push(w1)
			return
		}
		m.Push(vm.OfInt(op(w2.Int(), w1.Int())))
	}
}

func neg(m *vm.VM) {
	v, ok := m.Pop()
	if !ok {
		return
	}
	if v.Kind() != vm.KindInt {
		m.Push(v)
		return
	}
	m.Push(vm.OfInt(-v.Int()))
}
