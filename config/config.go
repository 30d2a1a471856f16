// Package config handles bfdb.toml debugger configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config represents a bfdb.toml debugger configuration.
type Config struct {
	REPL REPL `toml:"repl"`
	View View `toml:"view"`
	IO   IO   `toml:"io"`

	// Path is the file the configuration was loaded from (set at load time).
	Path string `toml:"-"`
}

// REPL configures the interactive prompt.
type REPL struct {
	Prompt      string `toml:"prompt"`
	HistoryFile string `toml:"history-file"`
}

// View configures how machine state is displayed.
type View struct {
	// TapeWindow is how many cells the tape command shows on each side of
	// the data pointer.
	TapeWindow int `toml:"tape-window"`
}

// IO configures where debugged programs read their input from.
type IO struct {
	// Input is a file to feed to ',' instructions. Empty means stdin.
	Input string `toml:"input"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		REPL: REPL{
			Prompt:      "(bfdb) ",
			HistoryFile: "~/.bfdb_history",
		},
		View: View{TapeWindow: 4},
	}
}

// Load parses a bfdb.toml file. Keys that are absent keep their built-in
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	c := Default()
	if err := toml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if c.View.TapeWindow < 0 {
		return nil, fmt.Errorf("invalid tape-window %d in %s", c.View.TapeWindow, path)
	}

	c.Path, err = filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}

	return c, nil
}

// Find looks for a bfdb.toml in the working directory, then under the
// user's config directory. Returns the defaults if neither exists.
func Find() (*Config, error) {
	if _, err := os.Stat("bfdb.toml"); err == nil {
		return Load("bfdb.toml")
	}

	if dir, err := os.UserConfigDir(); err == nil {
		path := filepath.Join(dir, "bfdb", "bfdb.toml")
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}

	return Default(), nil
}

// HistoryPath expands the configured history file to a usable path. An
// empty result disables history.
func (c *Config) HistoryPath() string {
	path := c.REPL.HistoryFile
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
