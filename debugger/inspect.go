package debugger

import (
	"github.com/chazu/bfdb/pkg/bytecode"
	"github.com/chazu/bfdb/vm"
)

// Inspector gives read-only views of a session's live run. Every accessor
// fails with NotRunning unless a run is in progress.
type Inspector struct {
	s *Session
}

// NewInspector creates an inspector over the session.
func NewInspector(s *Session) *Inspector {
	return &Inspector{s: s}
}

func (i *Inspector) running() error {
	if i.s.state != Running {
		return NewUserError(NotRunning, "The program is not being run.")
	}
	return nil
}

// Pointer returns the data pointer.
func (i *Inspector) Pointer() (int, error) {
	if err := i.running(); err != nil {
		return 0, err
	}
	return i.s.rt.Ptr, nil
}

// Cell returns the value of the tape cell at index.
func (i *Inspector) Cell(index int) (vm.Cell, error) {
	if err := i.running(); err != nil {
		return 0, err
	}
	if index < 0 || index >= vm.TapeSize {
		return 0, NewUserError(InvalidIndex, "%d: Not in range [0..%d).", index, vm.TapeSize)
	}
	return i.s.rt.Tape[index], nil
}

// TapeWindow is a run of cells around the data pointer. Start is the tape
// index of Cells[0]; Pointer is the data pointer itself, always within the
// window.
type TapeWindow struct {
	Start   int
	Pointer int
	Cells   []vm.Cell
}

// Window returns the cells within radius of the data pointer. Near the
// ends of the tape the window is clipped rather than padded.
func (i *Inspector) Window(radius int) (*TapeWindow, error) {
	if err := i.running(); err != nil {
		return nil, err
	}
	if radius < 0 {
		radius = 0
	}

	ptr := i.s.rt.Ptr
	lo := ptr - radius
	if lo < 0 {
		lo = 0
	}
	hi := ptr + radius
	if hi > vm.TapeSize-1 {
		hi = vm.TapeSize - 1
	}

	cells := make([]vm.Cell, hi-lo+1)
	copy(cells, i.s.rt.Tape[lo:hi+1])
	return &TapeWindow{Start: lo, Pointer: ptr, Cells: cells}, nil
}

// Current returns the program counter and the operator it points at.
func (i *Inspector) Current() (int, bytecode.Operator, error) {
	if err := i.running(); err != nil {
		return 0, bytecode.OpEnd, err
	}
	return i.s.rt.PC, i.s.prog.At(i.s.rt.PC).Op, nil
}
