package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/chazu/bfdb/config"
	"github.com/chazu/bfdb/debugger"
	"github.com/chazu/bfdb/vm"
)

// repl drives the interactive command loop against one session.
type repl struct {
	session *debugger.Session
	insp    *debugger.Inspector
	cfg     *config.Config
	out     io.Writer
	errOut  io.Writer
	quit    bool
}

func newREPL(session *debugger.Session, cfg *config.Config, out io.Writer) *repl {
	return &repl{
		session: session,
		insp:    debugger.NewInspector(session),
		cfg:     cfg,
		out:     out,
		errOut:  os.Stderr,
	}
}

// run reads and dispatches commands until quit or end of input.
func (r *repl) run() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      r.cfg.REPL.Prompt,
		HistoryFile: r.cfg.HistoryPath(),
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for !r.quit {
		r.printCurrentOp()

		line, err := rl.Readline()
		if err != nil { // Ctrl-C or Ctrl-D
			break
		}
		r.dispatch(line)
	}
	return nil
}

// printCurrentOp echoes the instruction the program counter points at,
// shown before each prompt while a run is live.
func (r *repl) printCurrentOp() {
	pc, op, err := r.insp.Current()
	if err != nil {
		return
	}
	fmt.Fprintf(r.out, "@%d: %s\n", pc+1, op.Symbol())
}

// dispatch parses one command line and runs the matching command. Commands
// match on their full name or their single-letter abbreviation and take at
// most one argument.
func (r *repl) dispatch(line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	if len(fields) > 2 {
		fmt.Fprintf(r.out, "error: too many arguments for '%s'.\n", fields[0])
		return
	}

	name := fields[0]
	arg := ""
	if len(fields) == 2 {
		arg = fields[1]
	}

	for _, cmd := range commands {
		if name == cmd.name || (len(name) == 1 && name[0] == cmd.abbr) {
			cmd.run(r, arg)
			return
		}
	}
	fmt.Fprintf(r.out, "Unknown command %q, try 'help'.\n", name)
}

// loadFile loads a program into the session, reporting the way the
// debugger always has: a reading notice for readable files, a terse
// missing-file line otherwise.
func (r *repl) loadFile(path string) {
	err := r.session.LoadFile(path)

	var perr *fs.PathError
	if errors.As(err, &perr) {
		fmt.Fprintf(r.errOut, "%s: No such file or directory.\n", path)
		return
	}

	fmt.Fprintf(r.out, "Reading %s...\n", path)
	if err != nil {
		r.report(err)
	}
}

// report prints an error the way the debugger presents it: runtime faults
// with the full machine diagnostic, operator mistakes verbatim, anything
// else with an error prefix.
func (r *repl) report(err error) {
	var rerr *vm.RuntimeError
	if errors.As(err, &rerr) {
		fmt.Fprintf(r.errOut, "error: %v\n", rerr)
		fmt.Fprintf(r.errOut, "At instruction %d ('%s'). $[$ptr: %d]: %d.\n",
			rerr.PC+1, rerr.Op.Symbol(), rerr.Ptr, rerr.Cell)
		fmt.Fprintln(r.out, "Brainfuck exited with error.")
		return
	}

	var uerr *debugger.UserError
	if errors.As(err, &uerr) {
		fmt.Fprintln(r.out, uerr.Message)
		return
	}

	fmt.Fprintf(r.out, "error: %v\n", err)
}

// finish prints the termination banner after a stepping command.
func (r *repl) finish(halted bool, err error) {
	if err != nil {
		r.report(err)
		return
	}
	if halted {
		fmt.Fprintln(r.out, "Brainfuck exited normally.")
	}
}
