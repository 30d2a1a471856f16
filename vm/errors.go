package vm

import (
	"fmt"

	"github.com/chazu/bfdb/pkg/bytecode"
)

// Fault classifies the runtime errors the machine can raise.
type Fault uint8

const (
	PointerOverflow  Fault = iota // data pointer moved past the end of the tape
	PointerUnderflow              // data pointer moved below zero
)

// String returns the fault's name.
func (f Fault) String() string {
	switch f {
	case PointerOverflow:
		return "PointerOverflow"
	case PointerUnderflow:
		return "PointerUnderflow"
	default:
		return fmt.Sprintf("Fault(%d)", uint8(f))
	}
}

// RuntimeError captures the machine state at the instruction that faulted.
// PC and Ptr are the values from before the faulting instruction; the
// machine does not move on a fault.
type RuntimeError struct {
	Fault Fault
	PC    int
	Op    bytecode.Operator
	Ptr   int
	Cell  Cell
}

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	switch e.Fault {
	case PointerOverflow:
		return fmt.Sprintf("trying to increment the data pointer out of range (%d)", TapeSize)
	case PointerUnderflow:
		return "trying to decrement the data pointer below 0"
	default:
		return fmt.Sprintf("runtime fault %s at instruction %d", e.Fault, e.PC+1)
	}
}
