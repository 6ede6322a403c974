// Package cmd wires the cobra CLI surface described in spec.md §6: a single
// positional script-file argument executed by the script driver. Grounded
// on dcosson-h2/internal/cmd/root.go's command construction.
package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"vtstage/internal/config"
	"vtstage/internal/driver"
	"vtstage/internal/proc"
)

// NewRootCmd creates the root cobra command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vtstage <script>",
		Short: "Scriptable PTY terminal-automation engine",
		Long:  "vtstage launches a child process under a PTY, drives it with a scripted sequence of keys and waits, and can snapshot the resulting screen as text or PNG.",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}

	return rootCmd
}

func runScript(cmd *cobra.Command, args []string) error {
	path := args[0]
	runID := uuid.New().String()

	f, err := os.Open(path)
	if err != nil {
		log.Printf("run=%s error: %v", runID, err)
		return fmt.Errorf("open script %q: %w", path, err)
	}
	defer f.Close()

	log.Printf("run=%s script=%s", runID, path)

	cfg, err := config.Load()
	if err != nil {
		log.Printf("run=%s error: %v", runID, err)
		return fmt.Errorf("load config: %w", err)
	}

	out := cmd.OutOrStdout()
	engine := driver.New(out)
	engine.PtyConfig = proc.Config{Width: cfg.Pty.Width, Height: cfg.Pty.Height}
	engine.FontDir = cfg.FontDir
	if outFile, ok := out.(*os.File); ok {
		engine.Interactive = term.IsTerminal(int(outFile.Fd()))
	}

	if err := engine.RunScript(f); err != nil {
		log.Printf("run=%s error: %v", runID, err)
		return err
	}
	return nil
}
