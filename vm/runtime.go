package vm

// Runtime is the complete execution state of one program run: the program
// counter, the data pointer, the tape, and whether the run is still live.
// A Runtime whose Running flag is false is inert; stale Runtimes are marked
// this way when their session moves on.
type Runtime struct {
	Running bool
	PC      int
	Ptr     int
	Tape    Tape
}

// NewRuntime returns a zeroed runtime ready to execute from instruction 0.
func NewRuntime() *Runtime {
	return &Runtime{Running: true}
}
