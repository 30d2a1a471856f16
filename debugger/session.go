package debugger

import (
	"io"
	"os"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/chazu/bfdb/pkg/bytecode"
	"github.com/chazu/bfdb/vm"
)

var log = commonlog.GetLogger("bfdb.session")

// State is where the session is in the load/run/halt lifecycle.
type State uint8

const (
	Unloaded     State = iota // no program
	Loaded                    // program compiled, no live run
	Running                   // live run, steppable
	HaltedNormal              // last run reached End
	HaltedError               // last run faulted
)

// String returns the state's name.
func (s State) String() string {
	switch s {
	case Unloaded:
		return "Unloaded"
	case Loaded:
		return "Loaded"
	case Running:
		return "Running"
	case HaltedNormal:
		return "HaltedNormal"
	case HaltedError:
		return "HaltedError"
	default:
		return "Unknown"
	}
}

// Session owns one program and one runtime and mediates every mutation of
// them. Loading replaces both; running replaces the runtime; stepping only
// happens through the session so the lifecycle state can never drift from
// the runtime.
type Session struct {
	machine *vm.VM
	prog    *bytecode.Program
	rt      *vm.Runtime
	state   State
}

// NewSession creates an empty session whose debugged programs read input
// from in and write output to out.
func NewSession(in io.Reader, out io.Writer) *Session {
	return &Session{machine: vm.NewVM(in, out), state: Unloaded}
}

// State returns the lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Program returns the loaded program, or nil.
func (s *Session) Program() *bytecode.Program {
	return s.prog
}

// Runtime returns the current runtime, or nil.
func (s *Session) Runtime() *vm.Runtime {
	return s.rt
}

// InstructionCount returns the loaded program's length, or zero.
func (s *Session) InstructionCount() int {
	if s.prog == nil {
		return 0
	}
	return s.prog.Len()
}

// Load compiles source and installs the program. Whatever was loaded
// before is discarded first, so a failed compile leaves the session empty
// rather than holding a stale program.
func (s *Session) Load(source []byte) error {
	s.discard()

	prog, err := bytecode.Compile(source)
	if err != nil {
		return err
	}
	s.prog = prog
	s.state = Loaded
	log.Infof("loaded program with %d instructions", prog.Len())
	return nil
}

// LoadFile loads a program from disk. Files ending in .bfc are treated as
// compiled images; everything else is brainfuck source.
func (s *Session) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		s.discard()
		return err
	}
	if strings.HasSuffix(path, ".bfc") {
		return s.LoadImage(data)
	}
	return s.Load(data)
}

// LoadImage installs a program from its serialized image.
func (s *Session) LoadImage(data []byte) error {
	s.discard()

	prog, err := bytecode.UnmarshalImage(data)
	if err != nil {
		return err
	}
	s.prog = prog
	s.state = Loaded
	log.Infof("loaded program image with %d instructions", prog.Len())
	return nil
}

// discard drops the program and runtime. The old runtime is marked not
// running so a stale reference cannot look live.
func (s *Session) discard() {
	if s.rt != nil {
		s.rt.Running = false
	}
	s.prog = nil
	s.rt = nil
	s.state = Unloaded
}

// Run starts a fresh run of the loaded program. It works from any state
// that has a program, including mid-run and after a halt, and always
// begins from a zeroed runtime.
func (s *Session) Run() error {
	if s.prog == nil {
		return NewUserError(NoProgramLoaded, "No brainfuck file specified, use 'file'.")
	}
	if s.rt != nil {
		s.rt.Running = false
	}
	s.rt = vm.NewRuntime()
	s.state = Running
	log.Debugf("started run of %d instructions", s.prog.Len())
	return nil
}

// Next executes up to count instructions, stopping early if the run
// terminates. It reports whether the run is over and, if it ended on a
// fault, the fault. A negative count is rejected before anything executes;
// zero is a valid no-op.
func (s *Session) Next(count int) (bool, error) {
	if s.state != Running {
		return false, NewUserError(NotRunning, "The program is not being run.")
	}
	if count < 0 {
		return false, NewUserError(InvalidCount, "%d: Not a valid instruction count.", count)
	}

	for i := 0; i < count; i++ {
		done, err := s.step()
		if done {
			return true, err
		}
	}
	return false, nil
}

// Continue steps until the run terminates, normally or on a fault.
func (s *Session) Continue() error {
	if s.state != Running {
		return NewUserError(NotRunning, "The program is not being run.")
	}

	for {
		done, err := s.step()
		if done {
			return err
		}
	}
}

// Jump moves the program counter to a 1-based instruction index. The tape
// and data pointer are left alone, and an out-of-range index changes
// nothing.
func (s *Session) Jump(index int) error {
	if s.state != Running {
		return NewUserError(NotRunning, "The program is not being run.")
	}
	if index < 1 || index > s.prog.Len() {
		return NewUserError(InvalidIndex, "%d: Not in range of program's instructions [1..%d]", index, s.prog.Len())
	}
	s.rt.PC = index - 1
	return nil
}

// step executes one instruction and moves the session out of Running when
// the run terminates.
func (s *Session) step() (bool, error) {
	done, err := s.machine.Step(s.rt, s.prog.At(s.rt.PC))
	if !done {
		return false, nil
	}
	if err != nil {
		s.state = HaltedError
		log.Infof("halted with error: %v", err)
	} else {
		s.state = HaltedNormal
		log.Debugf("halted normally at instruction %d", s.rt.PC+1)
	}
	return true, err
}
