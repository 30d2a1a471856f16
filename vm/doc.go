// Package vm executes compiled bfdb programs one instruction at a time
// against a fixed-size tape of wrapping 16-bit cells. The stepper never
// loops on its own; drivers that want run-to-completion call Step until it
// reports the program is done.
package vm
