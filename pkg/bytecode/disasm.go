package bytecode

import (
	"fmt"
	"strings"
)

// DisassembleInstruction formats one instruction the way the debugger
// echoes it: a 1-based index, the source symbol, and for jumps the 1-based
// target index.
func DisassembleInstruction(i int, inst Instruction) string {
	if inst.Op.IsJump() {
		return fmt.Sprintf("@%d: %s (-> @%d)", i+1, inst.Op.Symbol(), int(inst.Arg)+1)
	}
	return fmt.Sprintf("@%d: %s", i+1, inst.Op.Symbol())
}

// DisassembleToLines renders every instruction of a program, one line per
// instruction.
func DisassembleToLines(p *Program) []string {
	lines := make([]string, 0, p.Len())
	for i, inst := range p.Instructions {
		lines = append(lines, DisassembleInstruction(i, inst))
	}
	return lines
}

// Disassemble renders a whole program as a newline-joined listing.
func Disassemble(p *Program) string {
	return strings.Join(DisassembleToLines(p), "\n")
}
