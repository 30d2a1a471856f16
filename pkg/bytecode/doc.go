// Package bytecode defines the instruction set for the bfdb tape machine
// and the single-pass compiler that produces executable programs from
// brainfuck source text.
//
// The instruction format is deliberately small:
//
//   - Operator: one of nine fixed operators (the eight source characters
//     plus a synthesized End terminator)
//
//   - Instruction: an operator with one 16-bit operand, used only by the
//     jump operators to hold the index of the matching bracket
//
//   - Program: a capacity-bounded instruction sequence in which every
//     bracket pair is mutually linked and the final instruction is End
//
// The compiler resolves brackets in a single pass using a bounded stack of
// pending opens: '[' emits a placeholder jump and pushes its index, ']' pops
// it and patches both sides of the pair. A program that fails to compile is
// never partially visible.
//
// Programs serialize to a CBOR image format ("BFDB" magic) whose loader
// re-checks every structural invariant, so a corrupted image cannot become
// a runnable Program.
package bytecode
