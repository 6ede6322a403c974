// Package proc supervises a child process running under a PTY: spawning,
// draining its output into a shared Screen, translating key/mouse events
// into terminal bytes, and reporting exit. Grounded on
// dcosson-h2/internal/session/virtualterminal/vt.go's StartPTY/PipeOutput,
// generalized from a single hardcoded virtual terminal to the Config/Proc
// contract of original_source/src/proc.rs.
package proc

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/creack/pty"

	"vtstage/internal/key"
	"vtstage/internal/mouse"
	"vtstage/internal/screen"
)

// readChunk is the read buffer size for the background reader goroutine.
const readChunk = 4096

// idleSleep bounds busy-spin on platforms where EOF surfaces as a zero-byte
// read rather than an error.
const idleSleep = 10 * time.Millisecond

// ErrAlreadyWaited is returned by a second call to Wait.
var ErrAlreadyWaited = errors.New("proc: already waited")

// Proc is a running child process under a PTY, with a live Screen fed by a
// background reader goroutine.
type Proc struct {
	Pid    int
	Screen *screen.Screen
	Killer *Killer

	master *os.File
	cmd    *exec.Cmd

	waitOnce sync.Mutex
	waited   bool
	waitCh   chan error
}

// Start spawns args[0] with args[1:] under a new PTY sized per cfg.
func Start(args []string, cfg Config) (*Proc, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("proc: start requires a nonempty argument list")
	}

	cmd := exec.Command(args[0], args[1:]...)

	cwd := ""
	if cfg.Cwd != nil {
		cwd = *cfg.Cwd
	} else if wd, err := os.Getwd(); err == nil {
		cwd = wd
	}
	cmd.Dir = cwd

	cmd.Env = buildEnv(cfg)

	master, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: cfg.height(),
		Cols: cfg.width(),
	})
	if err != nil {
		return nil, fmt.Errorf("proc: spawn: %w", err)
	}

	scr := screen.New(int(cfg.height()), int(cfg.width()))

	p := &Proc{
		Pid:    cmd.Process.Pid,
		Screen: scr,
		Killer: newKiller(cmd.Process),
		master: master,
		cmd:    cmd,
		waitCh: make(chan error, 1),
	}

	go p.readLoop()
	go p.waitLoop()

	return p, nil
}

// Shell wraps Start: the command line is handed to the platform shell.
func Shell(cmdline string, cfg Config) (*Proc, error) {
	if runtime.GOOS == "windows" {
		return Start([]string{"cmd.exe", "/c", cmdline}, cfg)
	}
	return Start([]string{"/bin/sh", "-c", cmdline}, cfg)
}

func buildEnv(cfg Config) []string {
	var base []string
	if !cfg.ClearEnv {
		base = os.Environ()
	}

	overridden := make(map[string]bool, len(cfg.Env))
	env := make([]string, 0, len(base)+len(cfg.Env))
	for _, kv := range base {
		name := kv
		if idx := strings.Index(kv, "="); idx >= 0 {
			name = kv[:idx]
		}
		if val, ok := cfg.Env[name]; ok {
			overridden[name] = true
			if val != nil {
				env = append(env, name+"="+*val)
			}
			continue
		}
		env = append(env, kv)
	}
	for name, val := range cfg.Env {
		if overridden[name] || val == nil {
			continue
		}
		env = append(env, name+"="+*val)
	}
	return env
}

func (p *Proc) readLoop() {
	buf := make([]byte, readChunk)
	for {
		n, err := p.master.Read(buf)
		if n > 0 {
			p.Screen.Process(buf[:n])
		}
		if err != nil {
			return
		}
		if n == 0 {
			time.Sleep(idleSleep)
		}
	}
}

func (p *Proc) waitLoop() {
	err := p.cmd.Wait()
	p.waitCh <- err
}

// SendKey encodes k against the screen's current application-cursor mode
// and writes the result to the PTY master. Encoding failures and post-exit
// write failures are logged at warning level and otherwise ignored; neither
// aborts the calling script.
func (p *Proc) SendKey(k key.Key) error {
	modes := key.Modes{ApplicationCursor: p.Screen.ApplicationCursor()}
	encoded, err := key.Encode(k, modes)
	if err != nil {
		log.Printf("warning: encode key %s: %v", k, err)
		return nil
	}
	if _, err := p.master.Write(encoded); err != nil {
		log.Printf("warning: write key to pty: %v", err)
	}
	return nil
}

// SendKeys writes each key's encoding to the master in order.
func (p *Proc) SendKeys(keys []key.Key) error {
	for _, k := range keys {
		if err := p.SendKey(k); err != nil {
			return err
		}
	}
	return nil
}

// SendMouse encodes and writes a mouse event.
func (p *Proc) SendMouse(ev mouse.Event) error {
	encoded, err := mouse.Encode(ev)
	if err != nil {
		return fmt.Errorf("proc: encode mouse event: %w", err)
	}
	_, err = p.master.Write(encoded)
	return err
}

// SendSignal delivers sig to the child. A no-op on Windows.
func (p *Proc) SendSignal(sig syscall.Signal) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return p.cmd.Process.Signal(sig)
}

// Kill invokes the independent killer.
func (p *Proc) Kill() error {
	return p.Killer.Kill()
}

// Wait blocks until the child exits and consumes the one-shot result. A
// second call returns ErrAlreadyWaited.
func (p *Proc) Wait() error {
	p.waitOnce.Lock()
	if p.waited {
		p.waitOnce.Unlock()
		return ErrAlreadyWaited
	}
	p.waited = true
	p.waitOnce.Unlock()

	return <-p.waitCh
}

// Resize updates the screen model and the underlying PTY size.
func (p *Proc) Resize(rows, cols int) error {
	p.Screen.Resize(rows, cols)
	return pty.Setsize(p.master, &pty.Winsize{
		Rows: uint16(rows),
		Cols: uint16(cols),
	})
}
