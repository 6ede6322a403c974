package screen

import (
	"errors"
	"image/color"

	headlessterm "github.com/danielgatis/go-headless-term"
)

// ErrTimeout is returned by WaitText when the substring never appears
// before the deadline.
var ErrTimeout = errors.New("screen: wait_text timed out")

// resolveColor mirrors the resolution algorithm in go-headless-term's
// unexported resolveDefaultColor, using only the package's exported
// palette and color types: IndexedColor and NamedColor resolve through
// DefaultPalette/DefaultForeground/DefaultBackground, concrete RGBA
// passes through, and anything else falls back to its own RGBA() value.
func resolveColor(c color.Color, fg bool) color.RGBA {
	if c == nil {
		if fg {
			return headlessterm.DefaultForeground
		}
		return headlessterm.DefaultBackground
	}

	switch v := c.(type) {
	case color.RGBA:
		return v
	case *headlessterm.IndexedColor:
		if v.Index >= 0 && v.Index < 256 {
			return headlessterm.DefaultPalette[v.Index]
		}
		if fg {
			return headlessterm.DefaultForeground
		}
		return headlessterm.DefaultBackground
	case *headlessterm.NamedColor:
		return resolveNamedColor(v.Name, fg)
	default:
		r, g, b, a := c.RGBA()
		return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
	}
}

// isDefaultColor reports whether c represents "no explicit color set" —
// either nil or the semantic foreground/background name — as opposed to a
// concrete palette index or RGB value.
func isDefaultColor(c color.Color) bool {
	if c == nil {
		return true
	}
	named, ok := c.(*headlessterm.NamedColor)
	if !ok {
		return false
	}
	return named.Name == headlessterm.NamedColorForeground || named.Name == headlessterm.NamedColorBackground
}

func resolveNamedColor(name int, fg bool) color.RGBA {
	switch {
	case name >= 0 && name < 16:
		return headlessterm.DefaultPalette[name]
	case name == headlessterm.NamedColorForeground:
		return headlessterm.DefaultForeground
	case name == headlessterm.NamedColorBackground:
		return headlessterm.DefaultBackground
	case name == headlessterm.NamedColorCursor:
		return headlessterm.DefaultCursorColor
	case name >= headlessterm.NamedColorDimBlack && name <= headlessterm.NamedColorDimWhite:
		base := headlessterm.DefaultPalette[name-headlessterm.NamedColorDimBlack]
		return color.RGBA{
			R: uint8(float64(base.R) * 0.66),
			G: uint8(float64(base.G) * 0.66),
			B: uint8(float64(base.B) * 0.66),
			A: 255,
		}
	case name == headlessterm.NamedColorBrightForeground:
		return headlessterm.DefaultPalette[15]
	case name == headlessterm.NamedColorDimForeground:
		base := headlessterm.DefaultForeground
		return color.RGBA{
			R: uint8(float64(base.R) * 0.66),
			G: uint8(float64(base.G) * 0.66),
			B: uint8(float64(base.B) * 0.66),
			A: 255,
		}
	default:
		if fg {
			return headlessterm.DefaultForeground
		}
		return headlessterm.DefaultBackground
	}
}
