package vm

// VM holds all mutable execution state: the operand stack, the call
// stack, named registers, named memory cells, the loaded program's
// functions, and the host function table. It corresponds to the
// original's ProstVM struct, generalized from XVec/XMap to the
// container types in container.go.
type VM struct {
	operand   *stack
	calls     []callFrame
	registers [numRegisters]Value
	memory    *namedMap
	functions map[string]*Function
	externals *namedMap

	status          Status
	running         bool
	currentFunction string
	currentIP       int
}

// New returns a VM with no loaded program; call Load before Run.
func New() *VM {
	return &VM{
		operand:   newStack(),
		memory:    newNamedMap(),
		functions: make(map[string]*Function),
		externals: newNamedMap(),
		status:    StatusOK,
	}
}

// Load installs p's functions and memory cells, replacing anything
// previously loaded. Registers, the operand stack and the call stack are
// reset; registered host externals are preserved across Load so a caller
// can register its host library once and load several programs against it.
func (vm *VM) Load(p *Program) {
	vm.functions = make(map[string]*Function, len(p.Functions))
	for name, fn := range p.Functions {
		vm.functions[name] = fn
	}
	vm.memory = newNamedMap()
	for _, name := range p.MemoryOrder {
		vm.memory.set(name, p.Memory[name])
	}
	vm.operand = newStack()
	vm.calls = nil
	vm.registers = [numRegisters]Value{}
	vm.status = StatusOK
	vm.running = false
	vm.currentFunction = ""
	vm.currentIP = 0
}

// Status returns the VM's last status after Run returns.
func (vm *VM) Status() Status { return vm.status }

// CurrentFunction and CurrentIP report the VM's position at the moment
// it stopped - the same "current_function"/"current_ip" pair the
// original keeps for error reporting.
func (vm *VM) CurrentFunction() string { return vm.currentFunction }
func (vm *VM) CurrentIP() int          { return vm.currentIP }

// StackDepth reports the operand stack's current size, for diagnostics
// and the verbose post-run summary.
func (vm *VM) StackDepth() int { return vm.operand.len() }

// StackTop returns the operand stack's top Value without removing it.
func (vm *VM) StackTop() (Value, bool) { return vm.operand.peek() }

// Push and Pop give host functions the same direct operand-stack access
// a CallExtern'd native function gets in the original: the host reads
// and mutates the stack itself rather than going through opcode
// handlers.
func (vm *VM) Push(v Value) { vm.operand.push(v) }

// Pop removes and returns the operand stack's top Value. ok is false on
// an empty stack.
func (vm *VM) Pop() (Value, bool) { return vm.operand.pop() }

// Register returns register r's current value. r must be in [0, 32).
func (vm *VM) Register(r int) Value { return vm.registers[r] }

// SetRegister overwrites register r. r must be in [0, 32).
func (vm *VM) SetRegister(r int, v Value) { vm.registers[r] = v }

// Memory returns the named memory cell's current value.
func (vm *VM) Memory(name string) (Value, bool) { return vm.memory.get(name) }

// CurrentInstruction returns the instruction Step would execute next, for
// a debugger to display before stepping over it.
func (vm *VM) CurrentInstruction() (Instruction, bool) {
	fn, ok := vm.functions[vm.currentFunction]
	if !ok || vm.currentIP < 0 || vm.currentIP >= len(fn.Instructions) {
		return Instruction{}, false
	}
	return fn.Instructions[vm.currentIP], true
}

// CallDepth reports how many frames are on the call stack.
func (vm *VM) CallDepth() int { return len(vm.calls) }

// fault records status as the VM's terminal status at its current
// position and stops execution, returning status for a one-line
// "set and return" idiom at call sites.
func (vm *VM) fault(status Status) Status {
	vm.status = status
	vm.running = false
	if status != StatusOK {
		Logger().Sugar().Errorw("vm fault", "status", status, "function", vm.currentFunction, "ip", vm.currentIP)
	}
	return status
}

// Prepare sets current_function to name, ip to 0, clears the call stack
// and marks the VM running, ready for Step or Run. It is exposed
// separately from Run so an interactive debugger can single-step instead
// of running to completion.
func (vm *VM) Prepare(name string) Status {
	if _, ok := vm.functions[name]; !ok {
		return vm.fault(StatusFunctionNotFound)
	}
	vm.currentFunction = name
	vm.currentIP = 0
	vm.calls = vm.calls[:0]
	vm.running = true
	vm.status = StatusOK
	return StatusOK
}

// Running reports whether the VM is mid-run (between Prepare/Run and a
// Halt, fall-off-end, or fault).
func (vm *VM) Running() bool { return vm.running }

// Step executes exactly one instruction fetch-and-dispatch cycle, or
// performs the implicit Return on fall-off-end. It returns the VM's
// running state after the step and the status produced by that step
// (StatusOK unless it just faulted). Callers must have called Prepare
// first.
func (vm *VM) Step() (running bool, status Status) {
	if !vm.running {
		return false, vm.status
	}
	fn, ok := vm.functions[vm.currentFunction]
	if !ok {
		return false, vm.fault(StatusInvalidVMState)
	}

	if vm.currentIP >= len(fn.Instructions) {
		if len(vm.calls) == 0 {
			vm.running = false
			return false, vm.status
		}
		frame := vm.calls[len(vm.calls)-1]
		vm.calls = vm.calls[:len(vm.calls)-1]
		vm.currentFunction = frame.functionName
		vm.currentIP = frame.returnIP
		return true, StatusOK
	}

	inst := fn.Instructions[vm.currentIP]
	vm.currentIP++

	result := vm.execInstruction(inst)
	if result != StatusOK {
		return false, vm.fault(result)
	}
	return vm.running, StatusOK
}

// Run executes function name from instruction 0 until it returns past
// the bottom of the call stack, Halt executes, or a fault occurs.
// The final Status is both returned and retained on the VM (Status()).
func (vm *VM) Run(name string) Status {
	if status := vm.Prepare(name); status != StatusOK {
		return status
	}
	Logger().Sugar().Debugw("run start", "function", name)

	for {
		running, status := vm.Step()
		if status != StatusOK {
			return status
		}
		if !running {
			break
		}
	}

	Logger().Sugar().Debugw("run stop", "status", vm.status, "function", vm.currentFunction)
	return vm.status
}
