package vm

// execInstruction dispatches a single instruction against the current
// function and VM state, returning StatusOK to continue or a fault
// status (the caller stops the run loop and preserves
// current_function/current_ip for diagnostics). For CallExtern it returns
// CallExtern's own result; a status a host function stores on the VM is
// not returned here, and the caller leaves it in place rather than
// re-checking it after the host call.
//
// Comparisons use the Neq/Lt/Lte/Gt/Gte argument order literally, as a
// stack-effect table, not a prose description: Neq pops the top and
// replaces it rather than peeking, because the stack-effect column
// ("a -> r") removes exactly one Value and the prose's "peek" reading
// would leave two. See DESIGN.md for the full reasoning behind this
// choice.
func (vm *VM) execInstruction(inst Instruction) Status {
	switch inst.Op {
	case OpPush:
		v := inst.Arg
		if v.IsString() {
			if idx, ok := registerName(v.Str()); ok {
				v = vm.registers[idx]
			}
		}
		vm.operand.push(v)
		return StatusOK

	case OpPop:
		v, ok := vm.operand.pop()
		if !ok {
			return StatusStackUnderflow
		}
		if !inst.Arg.IsString() {
			return StatusInvalidIndex
		}
		idx, ok := registerName(inst.Arg.Str())
		if !ok {
			return StatusInvalidIndex
		}
		vm.registers[idx] = v
		return StatusOK

	case OpDrop:
		if _, ok := vm.operand.pop(); !ok {
			return StatusStackUnderflow
		}
		return StatusOK

	case OpHalt:
		vm.running = false
		return StatusOK

	case OpCall:
		target, ok := vm.functions[inst.Name]
		if !ok {
			return StatusFunctionNotFound
		}
		vm.calls = append(vm.calls, callFrame{functionName: vm.currentFunction, returnIP: vm.currentIP})
		vm.currentFunction = target.Name
		vm.currentIP = 0
		return StatusOK

	case OpCallExtern:
		return vm.CallExtern(inst.Name)

	case OpReturn:
		if len(vm.calls) == 0 {
			return StatusCallStackUnderflow
		}
		frame := vm.calls[len(vm.calls)-1]
		vm.calls = vm.calls[:len(vm.calls)-1]
		vm.currentFunction = frame.functionName
		vm.currentIP = frame.returnIP
		return StatusOK

	case OpJmp:
		vm.currentIP = int(inst.Arg.Int())
		return StatusOK

	case OpJmpIf:
		v, ok := vm.operand.pop()
		if !ok {
			return StatusStackUnderflow
		}
		if v.Kind() != KindInt {
			return StatusGeneralVMError
		}
		if v.Int() == 1 {
			vm.currentIP = int(inst.Arg.Int())
		}
		return StatusOK

	case OpDup:
		v, ok := vm.operand.peek()
		if !ok {
			return StatusStackUnderflow
		}
		vm.operand.push(v)
		return StatusOK

	case OpSwap:
		if !vm.operand.swapTop() {
			return StatusStackUnderflow
		}
		return StatusOK

	case OpOver:
		v, ok := vm.operand.peekAt(1)
		if !ok {
			return StatusStackUnderflow
		}
		vm.operand.push(v)
		return StatusOK

	case OpEq:
		w1, w2, ok := vm.popPair()
		if !ok {
			return StatusStackUnderflow
		}
		vm.operand.push(boolValue(valuesEqual(w2, w1)))
		return StatusOK

	case OpNeq:
		v, ok := vm.operand.pop()
		if !ok {
			return StatusStackUnderflow
		}
		if v.Kind() != KindInt {
			return StatusGeneralVMError
		}
		vm.operand.push(boolValue(v.Int() != 0))
		return StatusOK

	case OpLt, OpLte, OpGt, OpGte:
		w1, w2, ok := vm.popPair()
		if !ok {
			return StatusStackUnderflow
		}
		order, cmpOK := compareOrder(w1, w2)
		if !cmpOK {
			vm.operand.push(boolValue(false))
			return StatusOK
		}
		var result bool
		switch inst.Op {
		case OpLt:
			result = order < 0
		case OpLte:
			result = order <= 0
		case OpGt:
			result = order > 0
		case OpGte:
			result = order >= 0
		}
		vm.operand.push(boolValue(result))
		return StatusOK

	case OpDerefMemory:
		v, ok := vm.memory.get(inst.Name)
		if !ok {
			return StatusInvalidIndex
		}
		vm.operand.push(v)
		return StatusOK

	case OpAssignMemory:
		v, ok := vm.operand.pop()
		if !ok {
			return StatusStackUnderflow
		}
		vm.memory.set(inst.Name, v)
		return StatusOK

	default:
		return StatusInvalidBytecode
	}
}

// popPair pops w1 (the top) then w2 (the next one down), the shared
// order used by Eq and the four ordering comparisons: "w1 = top,
// w2 = second; the ordering expression is w1 OP w2".
func (vm *VM) popPair() (w1, w2 Value, ok bool) {
	w1, ok = vm.operand.pop()
	if !ok {
		return Value{}, Value{}, false
	}
	w2, ok = vm.operand.pop()
	if !ok {
		return Value{}, Value{}, false
	}
	return w1, w2, true
}

func boolValue(b bool) Value {
	if b {
		return OfInt(1)
	}
	return OfInt(0)
}
