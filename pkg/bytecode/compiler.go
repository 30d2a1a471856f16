package bytecode

import "fmt"

// ErrorCode classifies the ways compilation can fail.
type ErrorCode uint8

const (
	ErrUnmatchedOpen   ErrorCode = iota // '[' with no matching ']'
	ErrUnmatchedClose                   // ']' with no matching '['
	ErrTooManyOpens                     // pending '[' stack exceeded MaxLoopDepth
	ErrProgramTooLarge                  // instruction count exceeded MaxInstructions
)

// String returns the code's name.
func (c ErrorCode) String() string {
	switch c {
	case ErrUnmatchedOpen:
		return "UnmatchedOpen"
	case ErrUnmatchedClose:
		return "UnmatchedClose"
	case ErrTooManyOpens:
		return "TooManyOpens"
	case ErrProgramTooLarge:
		return "ProgramTooLarge"
	default:
		return fmt.Sprintf("ErrorCode(%d)", uint8(c))
	}
}

// CompileError reports why compilation failed and where. Line and Column
// are 1-based; Column counts bytes since the last newline.
type CompileError struct {
	Code   ErrorCode
	Line   int
	Column int
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	switch e.Code {
	case ErrUnmatchedOpen:
		return fmt.Sprintf("unmatched '[' at line %d, column %d", e.Line, e.Column)
	case ErrUnmatchedClose:
		return fmt.Sprintf("unmatched ']' at line %d, column %d", e.Line, e.Column)
	case ErrTooManyOpens:
		return fmt.Sprintf("too many nested '[' at line %d, column %d (limit %d)", e.Line, e.Column, MaxLoopDepth)
	case ErrProgramTooLarge:
		return fmt.Sprintf("program exceeds %d instructions at line %d, column %d", MaxInstructions, e.Line, e.Column)
	default:
		return fmt.Sprintf("compile error %d at line %d, column %d", e.Code, e.Line, e.Column)
	}
}

// pendingOpen records an emitted '[' awaiting its ']'.
type pendingOpen struct {
	index  int
	line   int
	column int
}

// Compile translates brainfuck source into a linked Program in a single
// pass. Bytes that are not command characters are comments and emit
// nothing. Bracket pairs are linked both ways: ']' is emitted carrying the
// index of its '[', and the '[' placeholder is patched with the index of
// the ']'. On error the returned program is nil.
func Compile(source []byte) (*Program, error) {
	prog := &Program{}
	var opens []pendingOpen

	line, column := 1, 0
	for _, b := range source {
		if b == '\n' {
			line++
			column = 0
			continue
		}
		column++

		op, ok := operatorForByte[b]
		if !ok {
			continue
		}

		switch op {
		case OpJumpIfZero:
			if len(opens) == MaxLoopDepth {
				return nil, &CompileError{Code: ErrTooManyOpens, Line: line, Column: column}
			}
			if err := emit(prog, Instruction{Op: OpJumpIfZero}, line, column); err != nil {
				return nil, err
			}
			opens = append(opens, pendingOpen{index: prog.Len() - 1, line: line, column: column})

		case OpJumpIfNonZero:
			if len(opens) == 0 {
				return nil, &CompileError{Code: ErrUnmatchedClose, Line: line, Column: column}
			}
			open := opens[len(opens)-1]
			opens = opens[:len(opens)-1]
			if err := emit(prog, Instruction{Op: OpJumpIfNonZero, Arg: uint16(open.index)}, line, column); err != nil {
				return nil, err
			}
			prog.Instructions[open.index].Arg = uint16(prog.Len() - 1)

		default:
			if err := emit(prog, Instruction{Op: op}, line, column); err != nil {
				return nil, err
			}
		}
	}

	if len(opens) > 0 {
		open := opens[0]
		return nil, &CompileError{Code: ErrUnmatchedOpen, Line: open.line, Column: open.column}
	}
	if err := emit(prog, Instruction{Op: OpEnd}, line, column); err != nil {
		return nil, err
	}
	return prog, nil
}

// emit appends an instruction, enforcing the program size limit.
func emit(prog *Program, inst Instruction, line, column int) error {
	if prog.Len() == MaxInstructions {
		return &CompileError{Code: ErrProgramTooLarge, Line: line, Column: column}
	}
	prog.Instructions = append(prog.Instructions, inst)
	return nil
}
