package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chazu/bfdb/debugger"
	"github.com/chazu/bfdb/pkg/bytecode"
)

// command is one debugger command.
type command struct {
	name    string
	abbr    byte
	argDesc string
	desc    string
	run     func(r *repl, arg string)
}

// commands is the dispatch table; help prints it in this order.
// Populated in init to break the initialization cycle with cmdHelp.
var commands []command

func init() {
	commands = []command{
		{"help", 'h', "", "Print this help", cmdHelp},
		{"quit", 'q', "", "Exit debugger", cmdQuit},
		{"file", 'f', "<filename>", "Use file", cmdFile},
		{"run", 'r', "", "Start execution", cmdRun},
		{"next", 'n', "[count = 1]", "Step one or more instructions", cmdNext},
		{"jump", 'j', "<instr_index>", "Jumps to an instruction", cmdJump},
		{"continue", 'c', "", "Continue execution", cmdContinue},
		{"dataptr", 'd', "", "Prints the data pointer", cmdDataptr},
		{"print", 'p', "[index = $ptr]", "Print cell", cmdPrint},
		{"tape", 't', "", "Print the tape around $ptr", cmdTape},
		{"list", 'l', "[count]", "List the program's instructions", cmdList},
		{"save", 's', "<filename>", "Save the compiled program", cmdSave},
	}
}

func cmdHelp(r *repl, arg string) {
	fmt.Fprintf(r.out, "List of commands:\n\n")

	for _, cmd := range commands {
		// The abbreviation is the name's first letter, so the name prints
		// from its second character.
		if cmd.argDesc != "" {
			fmt.Fprintf(r.out, "(%c)%s %s -- %s.\n", cmd.abbr, cmd.name[1:], cmd.argDesc, cmd.desc)
		} else {
			fmt.Fprintf(r.out, "(%c)%s -- %s.\n", cmd.abbr, cmd.name[1:], cmd.desc)
		}
	}
}

func cmdQuit(r *repl, arg string) {
	r.quit = true
}

func cmdFile(r *repl, arg string) {
	if arg == "" {
		r.report(debugger.NewUserError(debugger.MissingArgument, "error: 'file' takes exactly one file path argument."))
		return
	}
	r.loadFile(arg)
}

func cmdRun(r *repl, arg string) {
	if err := r.session.Run(); err != nil {
		r.report(err)
	}
}

func cmdNext(r *repl, arg string) {
	count := 1
	if arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil {
			r.report(debugger.NewUserError(debugger.InvalidCount, "%s: Not a valid instruction count.", arg))
			return
		}
		count = n
	}

	halted, err := r.session.Next(count)
	r.finish(halted, err)
}

func cmdJump(r *repl, arg string) {
	if r.session.State() != debugger.Running {
		fmt.Fprintln(r.out, "The program is not being run.")
		return
	}
	if arg == "" {
		r.report(debugger.NewUserError(debugger.MissingArgument, "error: 'jump' takes exactly one instruction index argument."))
		return
	}

	index, err := strconv.Atoi(arg)
	if err != nil {
		r.report(debugger.NewUserError(debugger.InvalidIndex, "%s: Not a valid instruction index.", arg))
		return
	}
	if err := r.session.Jump(index); err != nil {
		r.report(err)
	}
}

func cmdContinue(r *repl, arg string) {
	if err := r.session.Continue(); err != nil {
		r.report(err)
		return
	}
	fmt.Fprintln(r.out, "Brainfuck exited normally.")
}

func cmdDataptr(r *repl, arg string) {
	ptr, err := r.insp.Pointer()
	if err != nil {
		r.report(err)
		return
	}
	fmt.Fprintf(r.out, "$ptr: %d\n", ptr)
}

func cmdPrint(r *repl, arg string) {
	if r.session.State() != debugger.Running {
		fmt.Fprintln(r.out, "The program is not being run.")
		return
	}

	var index int
	if arg == "" {
		index, _ = r.insp.Pointer()
	} else {
		n, err := strconv.Atoi(arg)
		if err != nil {
			r.report(debugger.NewUserError(debugger.InvalidIndex, "%s: Not a valid cell index.", arg))
			return
		}
		index = n
	}

	cell, err := r.insp.Cell(index)
	if err != nil {
		r.report(err)
		return
	}
	if cell >= 0x20 && cell <= 0x7E {
		fmt.Fprintf(r.out, "$[%d]: %d ('%c').\n", index, cell, rune(cell))
	} else {
		fmt.Fprintf(r.out, "$[%d]: %d.\n", index, cell)
	}
}

func cmdTape(r *repl, arg string) {
	w, err := r.insp.Window(r.cfg.View.TapeWindow)
	if err != nil {
		r.report(err)
		return
	}

	var cells strings.Builder
	for i, cell := range w.Cells {
		if i > 0 {
			cells.WriteByte(' ')
		}
		if w.Start+i == w.Pointer {
			fmt.Fprintf(&cells, "[%d]", cell)
		} else {
			fmt.Fprintf(&cells, "%d", cell)
		}
	}
	fmt.Fprintf(r.out, "$[%d..%d]: %s\n", w.Start, w.Start+len(w.Cells)-1, cells.String())
}

func cmdList(r *repl, arg string) {
	prog := r.session.Program()
	if prog == nil {
		fmt.Fprintln(r.out, "No brainfuck file specified, use 'file'.")
		return
	}

	count := prog.Len()
	if arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			r.report(debugger.NewUserError(debugger.InvalidCount, "%s: Not a valid instruction count.", arg))
			return
		}
		count = n
	}

	// Center the listing on the program counter while a run is live.
	start := 0
	pc := -1
	if p, _, err := r.insp.Current(); err == nil {
		pc = p
		start = pc - count/2
	}
	if start+count > prog.Len() {
		start = prog.Len() - count
	}
	if start < 0 {
		start = 0
	}
	end := start + count
	if end > prog.Len() {
		end = prog.Len()
	}

	for i := start; i < end; i++ {
		marker := "   "
		if i == pc {
			marker = "-> "
		}
		fmt.Fprintf(r.out, "%s%s\n", marker, bytecode.DisassembleInstruction(i, prog.At(i)))
	}
}

func cmdSave(r *repl, arg string) {
	if arg == "" {
		r.report(debugger.NewUserError(debugger.MissingArgument, "error: 'save' takes exactly one file path argument."))
		return
	}
	prog := r.session.Program()
	if prog == nil {
		fmt.Fprintln(r.out, "No brainfuck file specified, use 'file'.")
		return
	}

	data, err := bytecode.MarshalImage(prog)
	if err != nil {
		r.report(err)
		return
	}
	if err := os.WriteFile(arg, data, 0o644); err != nil {
		r.report(err)
		return
	}
	fmt.Fprintf(r.out, "Wrote %s (%d instructions).\n", arg, prog.Len())
}
