package driver

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"vtstage/internal/proc"
	"vtstage/internal/script"
)

func TestCommandBeforeStartFails(t *testing.T) {
	e := New(&bytes.Buffer{})
	if err := e.Run(script.Kill{}); err != ErrNotStarted {
		t.Fatalf("got %v", err)
	}
	if err := e.Run(script.Wait{}); err != ErrNotStarted {
		t.Fatalf("got %v", err)
	}
}

func TestDoubleStartFails(t *testing.T) {
	e := New(&bytes.Buffer{})
	if err := e.Run(script.Start{Args: []string{"cat"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() {
		e.Run(script.Kill{})
		e.Run(script.Wait{})
	}()
	if err := e.Run(script.Start{Args: []string{"cat"}}); err != ErrAlreadyStarted {
		t.Fatalf("got %v", err)
	}
}

func TestPrintWritesStdout(t *testing.T) {
	var out bytes.Buffer
	e := New(&out)
	if err := e.Run(script.Print{Message: "ok"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "PRINT: ok\n" {
		t.Fatalf("got %q", out.String())
	}
}

func TestSleepBlocksForDuration(t *testing.T) {
	e := New(&bytes.Buffer{})
	start := time.Now()
	if err := e.Run(script.Sleep{Duration: 50 * time.Millisecond}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if time.Since(start) < 50*time.Millisecond {
		t.Fatal("sleep returned too early")
	}
}

func TestEndToEndEchoDumpTxt(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.txt")

	var stdout bytes.Buffer
	e := New(&stdout)

	src := strings.Join([]string{
		`start "echo" "hello"`,
		`wait`,
		`dump_txt "` + out + `"`,
	}, "\n")

	if err := e.RunScript(strings.NewReader(src)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("unexpected error reading output: %v", err)
	}
	if !strings.HasPrefix(string(data), "hello") {
		t.Fatalf("got %q", string(data))
	}
}

func TestStartUsesConfiguredPtySize(t *testing.T) {
	e := New(&bytes.Buffer{})
	e.PtyConfig = proc.Config{Width: 100, Height: 40}

	if err := e.Run(script.Start{Args: []string{"cat"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() {
		e.Run(script.Kill{})
		e.Run(script.Wait{})
	}()

	if got := e.proc.Screen.Cols(); got != 100 {
		t.Fatalf("got %d cols want 100", got)
	}
	if got := e.proc.Screen.Rows(); got != 40 {
		t.Fatalf("got %d rows want 40", got)
	}
}

func TestDumpPngUsesConfiguredFontDir(t *testing.T) {
	e := New(&bytes.Buffer{})
	e.FontDir = filepath.Join(t.TempDir(), "nonexistent-fonts")

	if err := e.Run(script.Start{Args: []string{"cat"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() {
		e.Run(script.Kill{})
		e.Run(script.Wait{})
	}()

	err := e.Run(script.DumpPng{Path: filepath.Join(t.TempDir(), "out.png")})
	if err == nil {
		t.Fatal("expected an error reading fonts from a nonexistent directory")
	}
	if !strings.Contains(err.Error(), e.FontDir) {
		t.Fatalf("expected the configured font dir in the error, got %v", err)
	}
}

func TestWaitTextTimeoutPropagates(t *testing.T) {
	e := New(&bytes.Buffer{})
	if err := e.Run(script.Start{Args: []string{"cat"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() {
		e.Run(script.Kill{})
		e.Run(script.Wait{})
	}()

	err := e.Run(script.WaitText{Text: "never appears", Timeout: 60 * time.Millisecond})
	if err == nil {
		t.Fatal("expected timeout error")
	}
}
