// Package debugger ties a compiled program to a runtime and walks them
// through the load/run/step lifecycle. A Session owns exactly one program
// and one runtime at a time; an Inspector gives read-only views of the
// live run.
package debugger
