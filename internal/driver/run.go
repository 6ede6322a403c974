package driver

import (
	"bufio"
	"fmt"
	"io"

	"vtstage/internal/script"
)

// RunScript reads newline-delimited script source from src and executes
// each parsed command in order. Execution stops at the first error,
// whether a parse error or a command error, per spec.md §7.
func (e *Engine) RunScript(src io.Reader) error {
	scanner := bufio.NewScanner(src)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		cmd, err := script.Parse(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		if err := e.Run(cmd); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	return scanner.Err()
}
