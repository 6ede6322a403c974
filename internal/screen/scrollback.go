package screen

import headlessterm "github.com/danielgatis/go-headless-term"

// ringScrollback is a fixed-capacity in-memory ScrollbackProvider. Lines
// pushed past the configured maximum evict the oldest line, per spec.md
// §3's 100-row scrollback depth.
type ringScrollback struct {
	lines [][]headlessterm.Cell
	max   int
}

func newRingScrollback(max int) *ringScrollback {
	return &ringScrollback{max: max}
}

func (s *ringScrollback) Push(line []headlessterm.Cell) {
	cp := make([]headlessterm.Cell, len(line))
	copy(cp, line)
	s.lines = append(s.lines, cp)
	if s.max > 0 && len(s.lines) > s.max {
		s.lines = s.lines[len(s.lines)-s.max:]
	}
}

func (s *ringScrollback) Len() int {
	return len(s.lines)
}

func (s *ringScrollback) Line(index int) []headlessterm.Cell {
	if index < 0 || index >= len(s.lines) {
		return nil
	}
	return s.lines[index]
}

func (s *ringScrollback) Clear() {
	s.lines = nil
}

func (s *ringScrollback) SetMaxLines(max int) {
	s.max = max
	if max > 0 && len(s.lines) > max {
		s.lines = s.lines[len(s.lines)-max:]
	}
}

func (s *ringScrollback) MaxLines() int {
	return s.max
}

var _ headlessterm.ScrollbackProvider = (*ringScrollback)(nil)
