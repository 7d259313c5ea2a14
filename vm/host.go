package vm

import (
	"fmt"
	"plugin"
)

// HostFunc is the signature every external function must satisfy: it
// receives the VM and manipulates its operand stack directly, the Go
// equivalent of the C ABI's `void (*)(ProstVM *)`.
type HostFunc func(*VM)

// RegisterLibrary is the symbol name a dynamically loaded host library
// must export, the Go-idiomatic rename (exported PascalCase identifier,
// as Go plugin symbols require) of the C ABI's p_register_library entry
// point. The function receives the VM so it can call RegisterExternal
// itself, mirroring p_load_library's call into the library's own
// registration routine rather than the loader doing the registering.
type RegisterLibrary func(*VM) Status

// RegisterExternal adds fn to the VM's host function table under name,
// overwriting any previous registration of the same name - matching
// xmap_set's replace-on-existing-key behavior.
func (vm *VM) RegisterExternal(name string, fn HostFunc) {
	vm.externals.set(name, hostValueHandle(fn))
}

// hostValueHandle and friends let HostFunc values ride inside the same
// namedMap machinery used elsewhere, by boxing the func as an opaque
// pointer Value keyed to a side table. This keeps the VM from needing a
// second bespoke map type purely for host functions.
var hostFuncTable = map[uintptr]HostFunc{}
var hostFuncNext uintptr = 1

func hostValueHandle(fn HostFunc) Value {
	h := hostFuncNext
	hostFuncNext++
	hostFuncTable[h] = fn
	return OfPointer(h, false)
}

func lookupHostFunc(v Value) (HostFunc, bool) {
	fn, ok := hostFuncTable[v.Pointer()]
	return fn, ok
}

// LoadLibrary dynamically loads the Go plugin at path (built with
// `go build -buildmode=plugin`), looks up its exported RegisterLibrary
// symbol, and invokes it against vm. Go's plugin package only supports
// Linux and Darwin; there is no Windows equivalent the way the original
// falls back to LoadLibrary/GetProcAddress, so this path simply fails
// with StatusLibraryNotFound on platforms plugin doesn't support.
func (vm *VM) LoadLibrary(path string) Status {
	Logger().Sugar().Debugw("loading host library", "path", path)
	p, err := plugin.Open(path)
	if err != nil {
		Logger().Sugar().Warnw("host library open failed", "path", path, "error", err)
		return StatusLibraryNotFound
	}
	sym, err := p.Lookup("RegisterLibrary")
	if err != nil {
		Logger().Sugar().Warnw("host library missing RegisterLibrary symbol", "path", path, "error", err)
		return StatusLibraryNotFound
	}
	register, ok := sym.(func(*VM) Status)
	if !ok {
		return StatusLibraryNotFound
	}
	return register(vm)
}

// CallExtern dispatches to the host function named name, returning
// StatusFunctionNotFound if it was never registered via RegisterExternal
// (including indirectly via LoadLibrary).
func (vm *VM) CallExtern(name string) Status {
	handle, ok := vm.externals.get(name)
	if !ok {
		return StatusFunctionNotFound
	}
	fn, ok := lookupHostFunc(handle)
	if !ok {
		return StatusFunctionNotFound
	}
	Logger().Sugar().Debugw("calling extern", "name", name)
	fn(vm)
	return StatusOK
}

// debugPluginUnsupported holds the message for platforms without plugin
// support. Nothing in this package returns it; LoadLibrary reports
// StatusLibraryNotFound on those platforms instead.
var debugPluginUnsupported = fmt.Errorf("prostvm: dynamic host libraries require plugin support (linux/darwin)")
