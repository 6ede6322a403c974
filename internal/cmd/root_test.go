package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunScriptEndToEnd(t *testing.T) {
	dir := t.TempDir()
	scriptPath := filepath.Join(dir, "script.vts")
	err := os.WriteFile(scriptPath, []byte("start \"echo\" \"hi\"\nwait\nprint \"done\"\n"), 0o644)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{scriptPath})

	if err := root.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "PRINT: done") {
		t.Fatalf("got %q", out.String())
	}
}

func TestRunScriptMissingFile(t *testing.T) {
	root := NewRootCmd()
	root.SetArgs([]string{"/nonexistent/path/to/script.vts"})
	root.SilenceErrors = true
	root.SilenceUsage = true

	if err := root.Execute(); err == nil {
		t.Fatal("expected an error for a missing script file")
	}
}

func TestRunScriptRequiresExactlyOneArg(t *testing.T) {
	root := NewRootCmd()
	root.SetArgs([]string{})
	root.SilenceErrors = true
	root.SilenceUsage = true

	if err := root.Execute(); err == nil {
		t.Fatal("expected an error for a missing argument")
	}
}
