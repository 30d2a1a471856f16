package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chazu/bfdb/config"
	"github.com/chazu/bfdb/debugger"
)

// testREPL builds a repl writing to buffers instead of the terminal. The
// debugged program's own output is discarded.
func testREPL(t *testing.T) (*repl, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	r := newREPL(debugger.NewSession(nil, io.Discard), config.Default(), &out)
	r.errOut = &errOut
	return r, &out, &errOut
}

// loadAndRun loads source into the repl's session and starts a run.
func loadAndRun(t *testing.T, r *repl, source string) {
	t.Helper()
	if err := r.session.Load([]byte(source)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := r.session.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
}

// ============ Dispatch Tests ============

func TestDispatchEmptyLine(t *testing.T) {
	r, out, _ := testREPL(t)
	r.dispatch("")
	r.dispatch("   ")
	if out.Len() != 0 {
		t.Errorf("Expected no output, got %q", out.String())
	}
}

func TestDispatchUnknown(t *testing.T) {
	r, out, _ := testREPL(t)
	r.dispatch("bogus")
	if out.String() != "Unknown command \"bogus\", try 'help'.\n" {
		t.Errorf("Unexpected output: %q", out.String())
	}
}

func TestDispatchTooManyArgs(t *testing.T) {
	r, out, _ := testREPL(t)
	r.dispatch("next 1 2")
	if out.String() != "error: too many arguments for 'next'.\n" {
		t.Errorf("Unexpected output: %q", out.String())
	}
}

func TestDispatchAbbreviation(t *testing.T) {
	r, _, _ := testREPL(t)
	r.dispatch("q")
	if !r.quit {
		t.Error("Expected 'q' to quit")
	}

	r, _, _ = testREPL(t)
	r.dispatch("quit")
	if !r.quit {
		t.Error("Expected 'quit' to quit")
	}

	// A prefix that is neither the full name nor the single letter does
	// not match.
	r, out, _ := testREPL(t)
	r.dispatch("qu")
	if r.quit {
		t.Error("Expected 'qu' not to quit")
	}
	if !strings.Contains(out.String(), "Unknown command") {
		t.Errorf("Expected unknown command report, got %q", out.String())
	}
}

// ============ Help Tests ============

func TestHelp(t *testing.T) {
	r, out, _ := testREPL(t)
	r.dispatch("help")

	got := out.String()
	if !strings.HasPrefix(got, "List of commands:\n\n") {
		t.Errorf("Expected help header, got %q", got)
	}
	for _, line := range []string{
		"(h)elp -- Print this help.\n",
		"(q)uit -- Exit debugger.\n",
		"(f)ile <filename> -- Use file.\n",
		"(r)un -- Start execution.\n",
		"(n)ext [count = 1] -- Step one or more instructions.\n",
		"(j)ump <instr_index> -- Jumps to an instruction.\n",
		"(c)ontinue -- Continue execution.\n",
		"(d)ataptr -- Prints the data pointer.\n",
		"(p)rint [index = $ptr] -- Print cell.\n",
		"(t)ape -- Print the tape around $ptr.\n",
	} {
		if !strings.Contains(got, line) {
			t.Errorf("Expected help to contain %q", line)
		}
	}
}

// ============ File Tests ============

func TestFileMissingArg(t *testing.T) {
	r, out, _ := testREPL(t)
	r.dispatch("file")
	if out.String() != "error: 'file' takes exactly one file path argument.\n" {
		t.Errorf("Unexpected output: %q", out.String())
	}
}

func TestFileNotFound(t *testing.T) {
	r, out, errOut := testREPL(t)
	path := filepath.Join(t.TempDir(), "missing.bf")
	r.dispatch("file " + path)

	if errOut.String() != path+": No such file or directory.\n" {
		t.Errorf("Unexpected error output: %q", errOut.String())
	}
	if out.Len() != 0 {
		t.Errorf("Expected no reading notice, got %q", out.String())
	}
}

func TestFileLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.bf")
	if err := os.WriteFile(path, []byte("+++."), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	r, out, _ := testREPL(t)
	r.dispatch("file " + path)
	if out.String() != "Reading "+path+"...\n" {
		t.Errorf("Unexpected output: %q", out.String())
	}
	if r.session.State() != debugger.Loaded {
		t.Errorf("Expected Loaded, got %s", r.session.State())
	}
}

func TestFileCompileError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.bf")
	if err := os.WriteFile(path, []byte("[+"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	r, out, _ := testREPL(t)
	r.dispatch("file " + path)
	want := "Reading " + path + "...\nerror: unmatched '[' at line 1, column 1\n"
	if out.String() != want {
		t.Errorf("Expected %q, got %q", want, out.String())
	}
}

// ============ Run and Step Tests ============

func TestRunWithoutProgram(t *testing.T) {
	r, out, _ := testREPL(t)
	r.dispatch("run")
	if out.String() != "No brainfuck file specified, use 'file'.\n" {
		t.Errorf("Unexpected output: %q", out.String())
	}
}

func TestNextNotRunning(t *testing.T) {
	r, out, _ := testREPL(t)
	r.dispatch("n")
	if out.String() != "The program is not being run.\n" {
		t.Errorf("Unexpected output: %q", out.String())
	}
}

func TestNextToCompletion(t *testing.T) {
	r, out, _ := testREPL(t)
	loadAndRun(t, r, "+")

	r.dispatch("next 10")
	if out.String() != "Brainfuck exited normally.\n" {
		t.Errorf("Unexpected output: %q", out.String())
	}
	if r.session.State() != debugger.HaltedNormal {
		t.Errorf("Expected HaltedNormal, got %s", r.session.State())
	}
}

func TestNextSingleStepQuiet(t *testing.T) {
	r, out, _ := testREPL(t)
	loadAndRun(t, r, "+++")

	r.dispatch("next")
	if out.Len() != 0 {
		t.Errorf("Expected no output for a quiet step, got %q", out.String())
	}
	if r.session.Runtime().PC != 1 {
		t.Errorf("Expected PC 1, got %d", r.session.Runtime().PC)
	}
}

func TestNextBadCount(t *testing.T) {
	r, out, _ := testREPL(t)
	loadAndRun(t, r, "+++")

	r.dispatch("next abc")
	if out.String() != "abc: Not a valid instruction count.\n" {
		t.Errorf("Unexpected output: %q", out.String())
	}

	out.Reset()
	r.dispatch("next -2")
	if out.String() != "-2: Not a valid instruction count.\n" {
		t.Errorf("Unexpected output: %q", out.String())
	}
	if r.session.Runtime().PC != 0 {
		t.Errorf("Expected PC untouched, got %d", r.session.Runtime().PC)
	}
}

func TestContinueBanner(t *testing.T) {
	r, out, _ := testREPL(t)
	loadAndRun(t, r, "+++")

	r.dispatch("continue")
	if out.String() != "Brainfuck exited normally.\n" {
		t.Errorf("Unexpected output: %q", out.String())
	}
}

func TestRuntimeErrorReport(t *testing.T) {
	r, out, errOut := testREPL(t)
	loadAndRun(t, r, "<")

	r.dispatch("next")
	wantErr := "error: trying to decrement the data pointer below 0\n" +
		"At instruction 1 ('<'). $[$ptr: 0]: 0.\n"
	if errOut.String() != wantErr {
		t.Errorf("Expected %q, got %q", wantErr, errOut.String())
	}
	if out.String() != "Brainfuck exited with error.\n" {
		t.Errorf("Unexpected output: %q", out.String())
	}
	if r.session.State() != debugger.HaltedError {
		t.Errorf("Expected HaltedError, got %s", r.session.State())
	}
}

// ============ Jump Tests ============

func TestJumpNotRunningBeforeArgCheck(t *testing.T) {
	// The running check comes first, even with no argument.
	r, out, _ := testREPL(t)
	r.dispatch("jump")
	if out.String() != "The program is not being run.\n" {
		t.Errorf("Unexpected output: %q", out.String())
	}
}

func TestJumpMissingArg(t *testing.T) {
	r, out, _ := testREPL(t)
	loadAndRun(t, r, "+++")

	r.dispatch("jump")
	if out.String() != "error: 'jump' takes exactly one instruction index argument.\n" {
		t.Errorf("Unexpected output: %q", out.String())
	}
}

func TestJumpOutOfRange(t *testing.T) {
	r, out, _ := testREPL(t)
	loadAndRun(t, r, "+[-]")

	r.dispatch("jump 9")
	if out.String() != "9: Not in range of program's instructions [1..5]\n" {
		t.Errorf("Unexpected output: %q", out.String())
	}
}

func TestJumpMoves(t *testing.T) {
	r, out, _ := testREPL(t)
	loadAndRun(t, r, "+[-]")

	r.dispatch("jump 4")
	if out.Len() != 0 {
		t.Errorf("Expected no output, got %q", out.String())
	}
	if r.session.Runtime().PC != 3 {
		t.Errorf("Expected PC 3, got %d", r.session.Runtime().PC)
	}
}

// ============ Inspection Tests ============

func TestDataptr(t *testing.T) {
	r, out, _ := testREPL(t)
	loadAndRun(t, r, ">>")
	if _, err := r.session.Next(2); err != nil {
		t.Fatalf("Next failed: %v", err)
	}

	r.dispatch("dataptr")
	if out.String() != "$ptr: 2\n" {
		t.Errorf("Unexpected output: %q", out.String())
	}
}

func TestPrintDefaultIndex(t *testing.T) {
	r, out, _ := testREPL(t)
	loadAndRun(t, r, "+++")
	if _, err := r.session.Next(3); err != nil {
		t.Fatalf("Next failed: %v", err)
	}

	r.dispatch("print")
	if out.String() != "$[0]: 3.\n" {
		t.Errorf("Unexpected output: %q", out.String())
	}
}

func TestPrintPrintable(t *testing.T) {
	r, out, _ := testREPL(t)
	loadAndRun(t, r, strings.Repeat("+", 65))
	if _, err := r.session.Next(65); err != nil {
		t.Fatalf("Next failed: %v", err)
	}

	r.dispatch("print 0")
	if out.String() != "$[0]: 65 ('A').\n" {
		t.Errorf("Unexpected output: %q", out.String())
	}
}

func TestPrintExplicitIndex(t *testing.T) {
	r, out, _ := testREPL(t)
	loadAndRun(t, r, "+")

	r.dispatch("print 7")
	if out.String() != "$[7]: 0.\n" {
		t.Errorf("Unexpected output: %q", out.String())
	}
}

func TestPrintOutOfRange(t *testing.T) {
	r, out, _ := testREPL(t)
	loadAndRun(t, r, "+")

	r.dispatch("print -1")
	if out.String() != "-1: Not in range [0..65535).\n" {
		t.Errorf("Unexpected output: %q", out.String())
	}

	out.Reset()
	r.dispatch("print 65535")
	if out.String() != "65535: Not in range [0..65535).\n" {
		t.Errorf("Unexpected output: %q", out.String())
	}
}

func TestPrintNotRunning(t *testing.T) {
	r, out, _ := testREPL(t)
	r.dispatch("print")
	if out.String() != "The program is not being run.\n" {
		t.Errorf("Unexpected output: %q", out.String())
	}
}

func TestTape(t *testing.T) {
	r, out, _ := testREPL(t)
	loadAndRun(t, r, "+>++")
	if _, err := r.session.Next(4); err != nil {
		t.Fatalf("Next failed: %v", err)
	}

	r.dispatch("tape")
	if out.String() != "$[0..5]: 1 [2] 0 0 0 0\n" {
		t.Errorf("Unexpected output: %q", out.String())
	}
}

func TestTapeNotRunning(t *testing.T) {
	r, out, _ := testREPL(t)
	r.dispatch("tape")
	if out.String() != "The program is not being run.\n" {
		t.Errorf("Unexpected output: %q", out.String())
	}
}

// ============ List Tests ============

func TestListNoProgram(t *testing.T) {
	r, out, _ := testREPL(t)
	r.dispatch("list")
	if out.String() != "No brainfuck file specified, use 'file'.\n" {
		t.Errorf("Unexpected output: %q", out.String())
	}
}

func TestListWholeProgram(t *testing.T) {
	r, out, _ := testREPL(t)
	if err := r.session.Load([]byte("+[-]")); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	r.dispatch("list")
	want := "   @1: +\n" +
		"   @2: [ (-> @4)\n" +
		"   @3: -\n" +
		"   @4: ] (-> @2)\n" +
		"   @5: EOF\n"
	if out.String() != want {
		t.Errorf("Expected:\n%s\ngot:\n%s", want, out.String())
	}
}

func TestListMarksPC(t *testing.T) {
	r, out, _ := testREPL(t)
	loadAndRun(t, r, "+[-]")
	if _, err := r.session.Next(1); err != nil {
		t.Fatalf("Next failed: %v", err)
	}

	r.dispatch("list")
	if !strings.Contains(out.String(), "-> @2: [ (-> @4)\n") {
		t.Errorf("Expected PC marker on @2, got:\n%s", out.String())
	}
}

func TestListCount(t *testing.T) {
	r, out, _ := testREPL(t)
	loadAndRun(t, r, "+[-]")
	if _, err := r.session.Next(1); err != nil {
		t.Fatalf("Next failed: %v", err)
	}

	r.dispatch("list 3")
	want := "   @1: +\n" +
		"-> @2: [ (-> @4)\n" +
		"   @3: -\n"
	if out.String() != want {
		t.Errorf("Expected:\n%s\ngot:\n%s", want, out.String())
	}
}

// ============ Save Tests ============

func TestSaveMissingArg(t *testing.T) {
	r, out, _ := testREPL(t)
	r.dispatch("save")
	if out.String() != "error: 'save' takes exactly one file path argument.\n" {
		t.Errorf("Unexpected output: %q", out.String())
	}
}

func TestSaveNoProgram(t *testing.T) {
	r, out, _ := testREPL(t)
	r.dispatch("save out.bfc")
	if out.String() != "No brainfuck file specified, use 'file'.\n" {
		t.Errorf("Unexpected output: %q", out.String())
	}
}

func TestSaveRoundTrip(t *testing.T) {
	r, out, _ := testREPL(t)
	if err := r.session.Load([]byte("+[-]")); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "prog.bfc")
	r.dispatch("save " + path)
	if out.String() != "Wrote "+path+" (5 instructions).\n" {
		t.Errorf("Unexpected output: %q", out.String())
	}

	out.Reset()
	r.dispatch("file " + path)
	if out.String() != "Reading "+path+"...\n" {
		t.Errorf("Unexpected output: %q", out.String())
	}
	if r.session.InstructionCount() != 5 {
		t.Errorf("Expected 5 instructions after reload, got %d", r.session.InstructionCount())
	}
}

// ============ Prompt Echo Tests ============

func TestPrintCurrentOp(t *testing.T) {
	r, out, _ := testREPL(t)
	loadAndRun(t, r, "+[-]")

	r.printCurrentOp()
	if out.String() != "@1: +\n" {
		t.Errorf("Unexpected output: %q", out.String())
	}

	out.Reset()
	if _, err := r.session.Next(1); err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	r.printCurrentOp()
	if out.String() != "@2: [\n" {
		t.Errorf("Unexpected output: %q", out.String())
	}
}

func TestPrintCurrentOpQuietWhenNotRunning(t *testing.T) {
	r, out, _ := testREPL(t)
	r.printCurrentOp()

	if err := r.session.Load([]byte("+")); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	r.printCurrentOp()

	if out.Len() != 0 {
		t.Errorf("Expected no echo, got %q", out.String())
	}
}
