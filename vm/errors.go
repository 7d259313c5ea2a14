package vm

import "fmt"

// Status is the VM's stable status code, returned from Run, Step and
// CallExtern and inspectable on the VM after it stops.
type Status uint8

const (
	StatusOK Status = iota
	StatusStackUnderflow
	StatusInvalidBytecode
	StatusLibraryNotFound
	StatusFunctionNotFound
	StatusInvalidIndex
	StatusCallStackUnderflow
	StatusInvalidVMState
	StatusGeneralVMError
)

var statusNames = map[Status]string{
	StatusOK:                 "OK",
	StatusStackUnderflow:     "StackUnderflow",
	StatusInvalidBytecode:    "InvalidBytecode",
	StatusLibraryNotFound:    "LibraryNotFound",
	StatusFunctionNotFound:   "FunctionNotFound",
	StatusInvalidIndex:       "InvalidIndex",
	StatusCallStackUnderflow: "CallStackUnderflow",
	StatusInvalidVMState:     "InvalidVMState",
	StatusGeneralVMError:     "GeneralVMError",
}

var nameToStatus map[string]Status

func init() {
	nameToStatus = make(map[string]Status, len(statusNames))
	for s, n := range statusNames {
		nameToStatus[n] = s
	}
}

// String renders the status the way the engine reports it in logs and
// CLI diagnostics.
func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return "Unknown"
}

// ParseStatus looks a Status up by its String() name, for config/CLI
// round-tripping.
func ParseStatus(name string) (Status, bool) {
	s, ok := nameToStatus[name]
	return s, ok
}

// Fault is the error type Deserialize returns when it rejects bytecode.
// It carries a status, function and ip so a caller can errors.As it;
// Deserialize leaves function empty and ip zero. Run and Step report a
// bare Status instead, with the position available from the VM.
type Fault struct {
	Status   Status
	Function string
	IP       int
}

func (f *Fault) Error() string {
	if f.Function == "" {
		return fmt.Sprintf("prostvm: %s", f.Status)
	}
	return fmt.Sprintf("prostvm: %s in %s at ip %d", f.Status, f.Function, f.IP)
}

// newFault builds a Fault from the VM's current position.
func newFault(status Status, function string, ip int) *Fault {
	return &Fault{Status: status, Function: function, IP: ip}
}
