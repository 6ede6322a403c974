package key

import "fmt"

// Modes carries the subset of terminal mode bits that change how a key
// encodes to bytes. ApplicationCursor mirrors DECCKM, read from the live
// screen before each send; the other two are placeholders a script driver
// could wire up later (the grammar has no command to toggle them yet).
type Modes struct {
	EnableCSIUKeyEncoding bool
	ApplicationCursor     bool
	NewlineMode           bool
}

// Encode converts a symbolic key into the byte sequence a terminal
// application expects on its stdin, per spec.md §4.1.
func Encode(k Key, modes Modes) ([]byte, error) {
	if k.Mods&ModAlt != 0 {
		withoutAlt := k
		withoutAlt.Mods &^= ModAlt
		rest, err := Encode(withoutAlt, modes)
		if err != nil {
			return nil, err
		}
		return append([]byte{0x1b}, rest...), nil
	}

	if k.Special == NoSpecial {
		return encodeChar(k, modes)
	}
	return encodeSpecial(k.Special, modes)
}

func encodeChar(k Key, modes Modes) ([]byte, error) {
	if k.Mods&ModCtrl != 0 {
		lower := k.Char
		if lower >= 'A' && lower <= 'Z' {
			lower = lower - 'A' + 'a'
		}
		if lower < 'a' || lower > 'z' {
			return nil, fmt.Errorf("key: unsupported ctrl combination with %q", k.Char)
		}
		return []byte{byte(lower - 'a' + 1)}, nil
	}
	if k.Mods != 0 {
		return nil, fmt.Errorf("key: unsupported modifier combination for %q", k.Char)
	}
	return []byte(string(k.Char)), nil
}

func encodeSpecial(sp Special, modes Modes) ([]byte, error) {
	switch sp {
	case Enter:
		if modes.NewlineMode {
			return []byte("\r\n"), nil
		}
		return []byte("\r"), nil
	case Tab:
		return []byte("\t"), nil
	case Backspace:
		return []byte("\x7f"), nil
	case Escape:
		return []byte("\x1b"), nil
	case Space:
		return []byte(" "), nil
	case Up:
		return arrow('A', modes), nil
	case Down:
		return arrow('B', modes), nil
	case Right:
		return arrow('C', modes), nil
	case Left:
		return arrow('D', modes), nil
	case F1:
		return []byte("\x1bOP"), nil
	case F2:
		return []byte("\x1bOQ"), nil
	case F3:
		return []byte("\x1bOR"), nil
	case F4:
		return []byte("\x1bOS"), nil
	case F5:
		return []byte("\x1b[15~"), nil
	case F6:
		return []byte("\x1b[17~"), nil
	case F7:
		return []byte("\x1b[18~"), nil
	case F8:
		return []byte("\x1b[19~"), nil
	case F9:
		return []byte("\x1b[20~"), nil
	case F10:
		return []byte("\x1b[21~"), nil
	case F11:
		return []byte("\x1b[23~"), nil
	case F12:
		return []byte("\x1b[24~"), nil
	case Home:
		return []byte("\x1b[H"), nil
	case End:
		return []byte("\x1b[F"), nil
	case PageUp:
		return []byte("\x1b[5~"), nil
	case PageDown:
		return []byte("\x1b[6~"), nil
	case Insert:
		return []byte("\x1b[2~"), nil
	case Delete:
		return []byte("\x1b[3~"), nil
	default:
		return nil, fmt.Errorf("key: unsupported special key %v", sp)
	}
}

func arrow(final byte, modes Modes) []byte {
	if modes.ApplicationCursor {
		return []byte{0x1b, 'O', final}
	}
	return []byte{0x1b, '[', final}
}
