package vm

// TapeSize is the number of data cells. The data pointer ranges over
// [0, TapeSize-1]; moving past either end is a runtime fault.
const TapeSize = 65535

// Cell is one data cell. Arithmetic wraps; it never faults.
type Cell uint16

// EOFCell is stored by OpInput when the input source is exhausted.
const EOFCell Cell = 0

// Tape is the machine's data memory.
type Tape [TapeSize]Cell
