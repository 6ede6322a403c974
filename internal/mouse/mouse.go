// Package mouse encodes synthetic mouse events as SGR-1006 escape
// sequences, per spec.md §4.2. Grounded on original_source/src/mouse.rs.
package mouse

import (
	"fmt"
	"strconv"
	"strings"

	"vtstage/internal/key"
)

// Button identifies which physical mouse button an event refers to.
type Button int

const (
	Left Button = iota
	Right
	Middle
)

// Kind is the action a MouseEvent represents.
type Kind int

const (
	Down Kind = iota
	Up
	Drag
	ScrollUp
	ScrollDown
)

// Event is a synthetic mouse action targeting a 1-based screen cell.
type Event struct {
	Kind   Kind
	Button Button
	Row    int // 1-based
	Col    int // 1-based
	Mods   key.Mod
}

// ErrMoved is returned for the unsupported "moved" event kind, per spec.md §3.
var ErrMoved = fmt.Errorf("mouse: 'moved' event is not supported")

// Encode renders ev as an SGR-1006 sequence: "\x1b[<CODE;COL;ROW" + "M" or "m".
func Encode(ev Event) ([]byte, error) {
	var b strings.Builder
	b.WriteString("\x1b[<")

	code, err := code(ev)
	if err != nil {
		return nil, err
	}
	b.WriteString(strconv.Itoa(code))
	b.WriteByte(';')
	b.WriteString(strconv.Itoa(ev.Col))
	b.WriteByte(';')
	b.WriteString(strconv.Itoa(ev.Row))
	b.WriteByte(terminator(ev.Kind))

	return []byte(b.String()), nil
}

func code(ev Event) (int, error) {
	switch ev.Kind {
	case Down, Up:
		return buttonCode(ev.Button)
	case Drag:
		base, err := buttonCode(ev.Button)
		if err != nil {
			return 0, err
		}
		return base + 32, nil
	case ScrollUp:
		return 65, nil
	case ScrollDown:
		return 64, nil
	default:
		return 0, ErrMoved
	}
}

func buttonCode(btn Button) (int, error) {
	switch btn {
	case Left:
		return 0, nil
	case Right:
		return 1, nil
	case Middle:
		return 2, nil
	default:
		return 0, fmt.Errorf("mouse: unknown button %v", btn)
	}
}

// terminator returns the SGR-1006 final byte: 'm' ends a release, 'M' ends
// everything else (press, drag, and both scroll directions — the source
// never emits a scroll release).
func terminator(k Kind) byte {
	if k == Up {
		return 'm'
	}
	return 'M'
}
