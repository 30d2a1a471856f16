package bytecode

import "fmt"

const (
	// MaxInstructions bounds a program's length, including the synthesized
	// End instruction.
	MaxInstructions = 4096

	// MaxLoopDepth bounds how many '[' may be open at once during
	// compilation.
	MaxLoopDepth = 512
)

// Instruction is one executable operation. Arg is the index of the matching
// bracket for the jump operators and zero otherwise.
type Instruction struct {
	Op  Operator
	Arg uint16
}

// Program is a compiled, fully linked instruction sequence. The last
// instruction is always OpEnd.
type Program struct {
	Instructions []Instruction
}

// Len returns the number of instructions, including the trailing End.
func (p *Program) Len() int {
	return len(p.Instructions)
}

// At returns the instruction at index i.
func (p *Program) At(i int) Instruction {
	return p.Instructions[i]
}

// Validate checks the structural invariants every compiled program holds:
// bounded length, a single trailing End, mutually linked bracket pairs, and
// zero operands everywhere else. Image loading runs this so a corrupted
// image cannot become a runnable program.
func (p *Program) Validate() error {
	n := len(p.Instructions)
	if n == 0 {
		return fmt.Errorf("program is empty")
	}
	if n > MaxInstructions {
		return fmt.Errorf("program has %d instructions, limit is %d", n, MaxInstructions)
	}
	if p.Instructions[n-1].Op != OpEnd {
		return fmt.Errorf("program does not end with End")
	}

	var opens []int
	for i, inst := range p.Instructions {
		if _, known := operatorInfoTable[inst.Op]; !known {
			return fmt.Errorf("unknown operator 0x%02X at instruction %d", uint8(inst.Op), i)
		}
		if inst.Op == OpEnd && i != n-1 {
			return fmt.Errorf("End at instruction %d before end of program", i)
		}

		switch inst.Op {
		case OpJumpIfZero:
			opens = append(opens, i)
		case OpJumpIfNonZero:
			if len(opens) == 0 {
				return fmt.Errorf("unmatched ']' at instruction %d", i)
			}
			j := opens[len(opens)-1]
			opens = opens[:len(opens)-1]
			if int(inst.Arg) != j {
				return fmt.Errorf("']' at instruction %d links to %d, matching '[' is at %d", i, inst.Arg, j)
			}
			if int(p.Instructions[j].Arg) != i {
				return fmt.Errorf("'[' at instruction %d links to %d, matching ']' is at %d", j, p.Instructions[j].Arg, i)
			}
		default:
			if inst.Arg != 0 {
				return fmt.Errorf("%s at instruction %d has nonzero operand %d", inst.Op, i, inst.Arg)
			}
		}
	}
	if len(opens) > 0 {
		return fmt.Errorf("unmatched '[' at instruction %d", opens[0])
	}
	return nil
}
