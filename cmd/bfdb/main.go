// bfdb CLI - an interactive debugger for brainfuck programs
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/chazu/bfdb/config"
	"github.com/chazu/bfdb/debugger"
)

var log = commonlog.GetLogger("bfdb")

func main() {
	verbose := flag.Bool("v", false, "Verbose logging")
	configPath := flag.String("config", "", "Path to a bfdb.toml (default: search working and user config dirs)")
	inputPath := flag.String("input", "", "File to feed to ',' instructions instead of stdin")
	logPath := flag.String("log", "", "Write logs to this file instead of stderr")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: bfdb [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Starts the brainfuck debugger, loading the given file if provided.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  bfdb                         # Start with no program loaded\n")
		fmt.Fprintf(os.Stderr, "  bfdb hello.bf                # Load hello.bf, then prompt\n")
		fmt.Fprintf(os.Stderr, "  bfdb -input in.txt echo.bf   # Feed in.txt to ',' instructions\n")
		fmt.Fprintf(os.Stderr, "  bfdb prog.bfc                # Load a saved program image\n")
	}
	flag.Parse()

	verbosity := 0
	if *verbose {
		verbosity = 2
	}
	var logFile *string
	if *logPath != "" {
		logFile = logPath
	}
	commonlog.Configure(verbosity, logFile)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *inputPath != "" {
		cfg.IO.Input = *inputPath
	}

	// Debugged programs read from stdin unless an input file is configured.
	progIn := io.Reader(os.Stdin)
	if cfg.IO.Input != "" {
		f, err := os.Open(cfg.IO.Input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		progIn = f
		log.Infof("program input from %s", cfg.IO.Input)
	}

	session := debugger.NewSession(progIn, os.Stdout)
	r := newREPL(session, cfg, os.Stdout)

	if file := flag.Arg(0); file != "" {
		r.loadFile(file)
	}

	if err := r.run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads the named configuration file, or searches the default
// locations when none is given.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.Find()
}
