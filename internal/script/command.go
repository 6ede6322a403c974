// Package script parses the line-oriented command language described in
// spec.md §4.3 and tokenizes its grammar. One Command is produced per
// non-blank, non-comment line.
package script

import (
	"time"

	"vtstage/internal/key"
)

// Command is the sealed set of operations a parsed script line can produce.
type Command interface {
	isCommand()
}

// Start launches a child process with the given argv, argv[0] being the
// executable.
type Start struct {
	Args []string
}

// SendKeys writes a sequence of keys to the running child, in order.
type SendKeys struct {
	Keys []key.Key
}

// Kill invokes the independent killer for the running child.
type Kill struct{}

// Wait blocks until the running child exits.
type Wait struct{}

// WaitText polls the screen for a substring until it appears or the
// timeout elapses.
type WaitText struct {
	Text    string
	Timeout time.Duration
}

// Sleep suspends script execution for the given duration.
type Sleep struct {
	Duration time.Duration
}

// Print writes a message to stdout, prefixed with "PRINT: ".
type Print struct {
	Message string
}

// DumpPng rasterizes the current screen to a PNG file.
type DumpPng struct {
	Path string
}

// DumpTxt writes the screen's plain-text contents to a file.
type DumpTxt struct {
	Path string
}

func (Start) isCommand()    {}
func (SendKeys) isCommand() {}
func (Kill) isCommand()     {}
func (Wait) isCommand()     {}
func (WaitText) isCommand() {}
func (Sleep) isCommand()    {}
func (Print) isCommand()    {}
func (DumpPng) isCommand()  {}
func (DumpTxt) isCommand()  {}
