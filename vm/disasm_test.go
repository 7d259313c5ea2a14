package vm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisassembleListing(t *testing.T) {
	p := entryProgram(
		push(OfInt(7)),
		Instruction{Op: OpCallExtern, Name: "print"},
		Instruction{Op: OpHalt},
	)
	listing := Disassemble(p)
	assert.True(t, strings.Contains(listing, "func __entry:"))
	assert.True(t, strings.Contains(listing, "Push 7"))
	assert.True(t, strings.Contains(listing, "CallExtern print"))
	assert.True(t, strings.Contains(listing, "Halt"))
}
