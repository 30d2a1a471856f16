package bytecode

import "fmt"

// Operator identifies a single tape machine operation.
type Operator uint8

const (
	// ======== Control (0x00) ========

	OpEnd Operator = 0x00 // halt normally; synthesized at the end of every program

	// ======== Pointer movement (0x01-0x02) ========

	OpIncPtr Operator = 0x01 // move the data pointer right
	OpDecPtr Operator = 0x02 // move the data pointer left

	// ======== Cell arithmetic (0x03-0x04) ========

	OpIncCell Operator = 0x03 // increment the current cell, wrapping
	OpDecCell Operator = 0x04 // decrement the current cell, wrapping

	// ======== I/O (0x05-0x06) ========

	OpOutput Operator = 0x05 // write the current cell's low byte
	OpInput  Operator = 0x06 // read one byte into the current cell

	// ======== Control flow (0x07-0x08) ========

	OpJumpIfZero    Operator = 0x07 // '[': jump to operand when the current cell is zero
	OpJumpIfNonZero Operator = 0x08 // ']': jump to operand when the current cell is nonzero
)

// OperatorInfo describes an operator's mnemonic, its source symbol, and
// whether its operand is meaningful.
type OperatorInfo struct {
	Name       string
	Symbol     string
	HasOperand bool
}

var operatorInfoTable = map[Operator]OperatorInfo{
	OpEnd:           {"End", "EOF", false},
	OpIncPtr:        {"IncPtr", ">", false},
	OpDecPtr:        {"DecPtr", "<", false},
	OpIncCell:       {"IncCell", "+", false},
	OpDecCell:       {"DecCell", "-", false},
	OpOutput:        {"Output", ".", false},
	OpInput:         {"Input", ",", false},
	OpJumpIfZero:    {"JumpIfZero", "[", true},
	OpJumpIfNonZero: {"JumpIfNonZero", "]", true},
}

// operatorForByte maps the recognized source characters to their operators.
// Every other byte is a comment.
var operatorForByte = map[byte]Operator{
	'>': OpIncPtr,
	'<': OpDecPtr,
	'+': OpIncCell,
	'-': OpDecCell,
	'.': OpOutput,
	',': OpInput,
	'[': OpJumpIfZero,
	']': OpJumpIfNonZero,
}

// GetOperatorInfo returns metadata for the given operator. Unknown values
// get a placeholder so callers can always print something.
func GetOperatorInfo(op Operator) OperatorInfo {
	if info, ok := operatorInfoTable[op]; ok {
		return info
	}
	return OperatorInfo{
		Name:       fmt.Sprintf("UNKNOWN(0x%02X)", uint8(op)),
		Symbol:     "?",
		HasOperand: false,
	}
}

// String returns the operator's mnemonic.
func (op Operator) String() string {
	return GetOperatorInfo(op).Name
}

// Symbol returns the source character the operator was compiled from, or
// "EOF" for the synthesized End.
func (op Operator) Symbol() string {
	return GetOperatorInfo(op).Symbol
}

// HasOperand reports whether the operator's operand is meaningful.
func (op Operator) HasOperand() bool {
	return GetOperatorInfo(op).HasOperand
}

// IsJump reports whether the operator transfers control.
func (op Operator) IsJump() bool {
	return op == OpJumpIfZero || op == OpJumpIfNonZero
}

// OperatorFor returns the operator for a source byte and whether the byte
// is a recognized command character.
func OperatorFor(b byte) (Operator, bool) {
	op, ok := operatorForByte[b]
	return op, ok
}

// AllOperators returns every defined operator in opcode order.
func AllOperators() []Operator {
	ops := make([]Operator, 0, len(operatorInfoTable))
	for op := OpEnd; op <= OpJumpIfNonZero; op++ {
		ops = append(ops, op)
	}
	return ops
}

// OperatorCount returns the number of defined operators.
func OperatorCount() int {
	return len(operatorInfoTable)
}
