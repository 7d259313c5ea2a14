package vm

import (
	"fmt"
	"strings"
)

// Disassemble renders p as a human-readable listing, one line per
// instruction, addressed the same way Jmp/JmpIf targets are: the
// instruction's index within its function.
func Disassemble(p *Program) string {
	var b strings.Builder
	names := p.FunctionOrder
	if len(names) == 0 {
		for name := range p.Functions {
			names = append(names, name)
		}
	}
	for _, name := range names {
		fn := p.Functions[name]
		fmt.Fprintf(&b, "func %s:\n", fn.Name)
		for i, inst := range fn.Instructions {
			fmt.Fprintf(&b, "  %4d: %s\n", i, formatInstruction(inst))
		}
		if len(fn.Labels) > 0 {
			fmt.Fprintf(&b, "  labels:")
			for _, l := range fn.Labels {
				fmt.Fprintf(&b, " %d", l)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// formatInstruction renders a single instruction the way the listing
// needs it: name-addressed opcodes show their string argument, everything
// else shows its Value's display form.
func formatInstruction(inst Instruction) string {
	if inst.Op.takesStringArg() {
		if inst.Name == "" {
			return inst.Op.String()
		}
		return fmt.Sprintf("%s %s", inst.Op.String(), inst.Name)
	}
	switch inst.Op {
	case OpDrop, OpHalt, OpReturn, OpDup, OpSwap, OpOver, OpEq, OpNeq, OpLt, OpLte, OpGt, OpGte:
		return inst.Op.String()
	default:
		return fmt.Sprintf("%s %s", inst.Op.String(), inst.Arg.Display())
	}
}
