// Package screen wraps a headless VT220 emulator behind a mutex, giving the
// PTY reader and script driver serialized access to one evolving grid of
// cells. Grounded on dcosson-h2's internal/session/virtualterminal/vt.go,
// adapted to wrap github.com/danielgatis/go-headless-term instead of
// vito/midterm.
package screen

import (
	"image/color"
	"strings"
	"sync"
	"time"

	headlessterm "github.com/danielgatis/go-headless-term"
)

// scrollbackDepth is fixed per spec.md §3.
const scrollbackDepth = 100

// pollInterval is the fixed wait_text polling cadence from spec.md §4.5.
const pollInterval = 50 * time.Millisecond

// Cell is a read-only snapshot of one grid position. FgIsDefault/BgIsDefault
// report whether the child never set an explicit color for that channel, so
// renderers may substitute their own default palette rather than the VT
// emulator's built-in one.
type Cell struct {
	Char        rune
	Fg          color.RGBA
	Bg          color.RGBA
	FgIsDefault bool
	BgIsDefault bool
	Bold        bool
	Italic      bool
	Underline   bool
	Inverse     bool
	Wide        bool
}

// Screen is a thread-safe handle to a VT220 emulator instance.
type Screen struct {
	mu   sync.Mutex
	term *headlessterm.Terminal
}

// New creates a screen sized rows x cols with 100 lines of scrollback.
func New(rows, cols int) *Screen {
	term := headlessterm.New(
		headlessterm.WithSize(rows, cols),
		headlessterm.WithScrollback(newRingScrollback(scrollbackDepth)),
	)
	return &Screen{term: term}
}

// Process feeds raw bytes from the PTY master into the VT parser. Called
// only by the background reader goroutine.
func (s *Screen) Process(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.term.Write(data)
}

// Cell returns a snapshot of the cell at (row, col). Out-of-range positions
// return a default blank cell.
func (s *Screen) Cell(row, col int) Cell {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cellFromTerm(s.term.Cell(row, col))
}

// Contents returns every row's plain-text content joined by newlines,
// without trimming trailing spaces — an idle screen of rows x cols is
// therefore (cols spaces) repeated rows times, joined by rows-1 newlines.
func (s *Screen) Contents() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contentsLocked()
}

func (s *Screen) contentsLocked() string {
	rows := s.term.Rows()
	cols := s.term.Cols()
	var b strings.Builder
	for row := 0; row < rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < cols; col++ {
			c := s.term.Cell(row, col)
			if c == nil {
				b.WriteByte(' ')
				continue
			}
			ch := c.Char
			if ch == 0 {
				ch = ' '
			}
			b.WriteRune(ch)
		}
	}
	return b.String()
}

// ApplicationCursor reports whether DECCKM (application cursor-key mode)
// is currently enabled.
func (s *Screen) ApplicationCursor() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.term.HasMode(headlessterm.ModeCursorKeys)
}

// Resize changes the emulated grid size.
func (s *Screen) Resize(rows, cols int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.term.Resize(rows, cols)
}

// Rows and Cols report the current grid dimensions.
func (s *Screen) Rows() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.term.Rows()
}

func (s *Screen) Cols() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.term.Cols()
}

// WaitText polls Contents for substr until it appears or timeout elapses.
// The lock is released across every sleep so the background reader is
// never starved, per spec.md §4.5 / §5.
func (s *Screen) WaitText(substr string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		s.mu.Lock()
		found := strings.Contains(s.contentsLocked(), substr)
		s.mu.Unlock()
		if found {
			return nil
		}
		if time.Now().After(deadline) {
			return ErrTimeout
		}
		time.Sleep(pollInterval)
	}
}

func cellFromTerm(c *headlessterm.Cell) Cell {
	if c == nil {
		return Cell{Char: ' ', Fg: headlessterm.DefaultForeground, Bg: headlessterm.DefaultBackground, FgIsDefault: true, BgIsDefault: true}
	}
	ch := c.Char
	if ch == 0 {
		ch = ' '
	}
	fg := resolveColor(c.Fg, true)
	bg := resolveColor(c.Bg, false)
	return Cell{
		Char:        ch,
		Fg:          fg,
		Bg:          bg,
		FgIsDefault: isDefaultColor(c.Fg),
		BgIsDefault: isDefaultColor(c.Bg),
		Bold:        c.HasFlag(headlessterm.CellFlagBold),
		Italic:      c.HasFlag(headlessterm.CellFlagItalic),
		Underline:   c.HasFlag(headlessterm.CellFlagUnderline),
		Inverse:     c.HasFlag(headlessterm.CellFlagReverse),
		Wide:        c.HasFlag(headlessterm.CellFlagWideChar),
	}
}
