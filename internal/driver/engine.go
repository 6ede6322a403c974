// Package driver executes parsed script.Command values against a proc.Proc,
// maintaining the single-slot engine state described in spec.md §4.6.
// Grounded on dcosson-h2/internal/cmd/send.go's command-dispatch shape and
// original_source/src/main.rs's command loop.
package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"vtstage/internal/proc"
	"vtstage/internal/render"
	"vtstage/internal/script"
)

// ErrNotStarted and ErrAlreadyStarted are the state errors named in
// spec.md §4.6.
var (
	ErrNotStarted     = errors.New("Process has not been started")
	ErrAlreadyStarted = errors.New("Process was already started")
)

// Engine holds at most one running Proc and dispatches Commands against it.
type Engine struct {
	Stdout io.Writer

	// Interactive marks Stdout as attached to a terminal. When set, each
	// "print" syncs the underlying file so output appears immediately
	// instead of waiting on the OS's own buffering.
	Interactive bool

	// PtyConfig seeds every "start" with the configured PTY size (and any
	// other proc.Config defaults); the script grammar itself has no way
	// to specify one.
	PtyConfig proc.Config

	// FontDir, if set, overrides render's embedded placeholder font set
	// with TTFs loaded from this directory for every "dump_png".
	FontDir string

	proc *proc.Proc
}

// New returns an Engine that writes print output to stdout.
func New(stdout io.Writer) *Engine {
	return &Engine{Stdout: stdout}
}

// Run executes one parsed command. A nil command (blank/comment line) is a
// no-op.
func (e *Engine) Run(cmd script.Command) error {
	if cmd == nil {
		return nil
	}

	switch c := cmd.(type) {
	case script.Start:
		return e.start(c)
	case script.SendKeys:
		return e.sendKeys(c)
	case script.Kill:
		return e.kill()
	case script.Wait:
		return e.wait()
	case script.WaitText:
		return e.waitText(c)
	case script.Sleep:
		time.Sleep(c.Duration)
		return nil
	case script.Print:
		if _, err := fmt.Fprintf(e.Stdout, "PRINT: %s\n", c.Message); err != nil {
			return err
		}
		if e.Interactive {
			if f, ok := e.Stdout.(*os.File); ok {
				return f.Sync()
			}
		}
		return nil
	case script.DumpPng:
		return e.dumpPng(c)
	case script.DumpTxt:
		return e.dumpTxt(c)
	default:
		return fmt.Errorf("driver: unknown command type %T", cmd)
	}
}

func (e *Engine) start(c script.Start) error {
	if e.proc != nil {
		return ErrAlreadyStarted
	}
	p, err := proc.Start(c.Args, e.PtyConfig)
	if err != nil {
		return err
	}
	e.proc = p
	return nil
}

func (e *Engine) sendKeys(c script.SendKeys) error {
	if e.proc == nil {
		return ErrNotStarted
	}
	return e.proc.SendKeys(c.Keys)
}

func (e *Engine) kill() error {
	if e.proc == nil {
		return ErrNotStarted
	}
	return e.proc.Kill()
}

func (e *Engine) wait() error {
	if e.proc == nil {
		return ErrNotStarted
	}
	return e.proc.Wait()
}

func (e *Engine) waitText(c script.WaitText) error {
	if e.proc == nil {
		return ErrNotStarted
	}
	return e.proc.Screen.WaitText(c.Text, c.Timeout)
}

func (e *Engine) dumpPng(c script.DumpPng) error {
	if e.proc == nil {
		return ErrNotStarted
	}
	return render.DumpPNG(e.proc.Screen, c.Path, e.FontDir)
}

func (e *Engine) dumpTxt(c script.DumpTxt) error {
	if e.proc == nil {
		return ErrNotStarted
	}
	return render.DumpTXT(e.proc.Screen, c.Path)
}
