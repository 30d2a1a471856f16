package vm

import (
	"bufio"
	"fmt"
	"io"

	"github.com/chazu/bfdb/pkg/bytecode"
)

// VM executes instructions against a Runtime. It owns only the program's
// I/O streams; all execution state lives in the Runtime so a session can
// swap runtimes without touching the machine.
type VM struct {
	in  *bufio.Reader
	out io.Writer
}

// NewVM creates a machine reading program input from in and writing
// program output to out. A nil in behaves as an exhausted source; a nil
// out discards output.
func NewVM(in io.Reader, out io.Writer) *VM {
	m := &VM{out: out}
	if in != nil {
		m.in = bufio.NewReader(in)
	}
	if m.out == nil {
		m.out = io.Discard
	}
	return m
}

// Step executes a single instruction. It returns done=true when the run is
// over, either normally (err is nil) or on a fault (err is a
// *RuntimeError). On a fault the runtime's PC and Ptr keep the values they
// had before the instruction, and Running is cleared either way.
//
// Jumps load their operand into the PC directly, so a taken jump lands on
// the matching bracket and the next step evaluates that bracket's own
// condition. Every other instruction advances the PC by exactly one.
func (m *VM) Step(rt *Runtime, inst bytecode.Instruction) (bool, error) {
	switch inst.Op {
	case bytecode.OpEnd:
		rt.Running = false
		return true, nil

	case bytecode.OpIncPtr:
		if rt.Ptr+1 == TapeSize {
			return true, m.fault(rt, PointerOverflow, inst)
		}
		rt.Ptr++
		rt.PC++

	case bytecode.OpDecPtr:
		if rt.Ptr == 0 {
			return true, m.fault(rt, PointerUnderflow, inst)
		}
		rt.Ptr--
		rt.PC++

	case bytecode.OpIncCell:
		rt.Tape[rt.Ptr]++
		rt.PC++

	case bytecode.OpDecCell:
		rt.Tape[rt.Ptr]--
		rt.PC++

	case bytecode.OpOutput:
		m.out.Write([]byte{byte(rt.Tape[rt.Ptr])})
		rt.PC++

	case bytecode.OpInput:
		rt.Tape[rt.Ptr] = m.readCell()
		rt.PC++

	case bytecode.OpJumpIfZero:
		if rt.Tape[rt.Ptr] == 0 {
			rt.PC = int(inst.Arg)
		} else {
			rt.PC++
		}

	case bytecode.OpJumpIfNonZero:
		if rt.Tape[rt.Ptr] != 0 {
			rt.PC = int(inst.Arg)
		} else {
			rt.PC++
		}

	default:
		rt.Running = false
		return true, fmt.Errorf("unknown operator 0x%02X at instruction %d", uint8(inst.Op), rt.PC+1)
	}

	return false, nil
}

// fault stops the runtime and captures its state in a RuntimeError.
func (m *VM) fault(rt *Runtime, f Fault, inst bytecode.Instruction) error {
	rt.Running = false
	return &RuntimeError{
		Fault: f,
		PC:    rt.PC,
		Op:    inst.Op,
		Ptr:   rt.Ptr,
		Cell:  rt.Tape[rt.Ptr],
	}
}

// readCell reads one byte of program input, yielding EOFCell once the
// source is exhausted.
func (m *VM) readCell() Cell {
	if m.in == nil {
		return EOFCell
	}
	b, err := m.in.ReadByte()
	if err != nil {
		return EOFCell
	}
	return Cell(b)
}
