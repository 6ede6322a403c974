// Package render rasterizes a screen.Screen to PNG and plain text, per
// spec.md §4.7/§4.8. Grounded on
// danielgatis-go-headless-term/screenshot.go's cell-rasterization loop and
// original_source/src/dump_png.rs's outline/coverage blending algorithm.
package render

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"vtstage/internal/screen"
)

// DefaultFg and DefaultBg are the colors used for any cell channel the child
// never set an explicit color for (FgIsDefault/BgIsDefault), per spec.md §4.7.
var (
	DefaultFg = color.RGBA{R: 240, G: 240, B: 240, A: 255}
	DefaultBg = color.RGBA{R: 10, G: 10, B: 50, A: 255}
)

var (
	fontCacheMu  sync.Mutex
	defaultFonts FontSet
	dirFonts     = map[string]FontSet{}
)

// DumpPNG snapshots scr and writes it as an RGB PNG to path. If fontDir is
// non-empty, the four weights are loaded from that directory instead of
// the embedded placeholder set (loaded once per directory and cached);
// otherwise the embedded set is loaded once and reused.
func DumpPNG(scr *screen.Screen, path string, fontDir string) error {
	fonts, err := loadFontsCached(fontDir)
	if err != nil {
		return err
	}

	img, err := Render(scr, fonts)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, img)
}

func loadFontsCached(fontDir string) (FontSet, error) {
	fontCacheMu.Lock()
	defer fontCacheMu.Unlock()

	if fontDir == "" {
		if defaultFonts.Regular == nil {
			fonts, err := LoadFonts()
			if err != nil {
				return FontSet{}, err
			}
			defaultFonts = fonts
		}
		return defaultFonts, nil
	}

	if fonts, ok := dirFonts[fontDir]; ok {
		return fonts, nil
	}
	fonts, err := LoadFontsFrom(fontDir)
	if err != nil {
		return FontSet{}, err
	}
	dirFonts[fontDir] = fonts
	return fonts, nil
}

// Render rasterizes scr's current cell grid to an RGBA image using fonts.
// Cell dimensions are derived from the regular face's metrics: width from
// the glyph bounds of 'a', height from the face's line height.
func Render(scr *screen.Screen, fonts FontSet) (*image.RGBA, error) {
	rows := scr.Rows()
	cols := scr.Cols()

	chW, chH := cellMetrics(fonts.Regular)

	img := image.NewRGBA(image.Rect(0, 0, cols*chW, rows*chH))

	ascent := fonts.Regular.Metrics().Ascent.Ceil()

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			cell := scr.Cell(row, col)

			x0 := col * chW
			y0 := row * chH
			fg := cell.Fg
			if cell.FgIsDefault {
				fg = DefaultFg
			}
			bg := cell.Bg
			if cell.BgIsDefault {
				bg = DefaultBg
			}
			if cell.Inverse {
				fg, bg = bg, fg
			}
			fillRect(img, x0, y0, chW, chH, bg)

			if cell.Char == 0 || cell.Char == ' ' {
				continue
			}

			face := fonts.Select(cell.Bold, cell.Italic)
			if face == nil {
				face = fonts.Regular
			}
			drawGlyph(img, face, cell.Char, x0, y0, chW, chH, ascent, fg)
		}
	}

	return img, nil
}

func cellMetrics(regular font.Face) (int, int) {
	bounds, _, ok := regular.GlyphBounds('a')
	chW := 0
	if ok {
		chW = bounds.Max.X.Ceil()
	}
	if chW <= 0 {
		chW = 1
	}
	chH := regular.Metrics().Height.Ceil()
	if chH <= 0 {
		chH = 1
	}
	return chW, chH
}

func fillRect(img *image.RGBA, x0, y0, w, h int, c color.RGBA) {
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

// drawGlyph outlines ch at the given cell origin and alpha-blends fg over
// the canvas per produced pixel, clipping to the cell rectangle. Mirrors
// the outline.draw(|dx, dy, coverage| ...) loop in dump_png.rs, expressed
// against golang.org/x/image/font's mask-based Glyph API.
func drawGlyph(img *image.RGBA, face font.Face, ch rune, x0, y0, chW, chH, ascent int, fg color.RGBA) {
	dot := fixed.P(x0, y0+ascent)
	dr, mask, maskp, _, ok := face.Glyph(dot, ch)
	if !ok {
		return
	}

	x1 := x0 + chW
	y1 := y0 + chH

	for y := dr.Min.Y; y < dr.Max.Y; y++ {
		if y < y0 || y >= y1 {
			continue
		}
		for x := dr.Min.X; x < dr.Max.X; x++ {
			if x < x0 || x >= x1 {
				continue
			}
			_, _, _, a := mask.At(maskp.X+(x-dr.Min.X), maskp.Y+(y-dr.Min.Y)).RGBA()
			if a == 0 {
				continue
			}
			coverage := float64(a) / 0xffff
			existing := img.RGBAAt(x, y)
			blended := color.RGBA{
				R: blend(fg.R, existing.R, coverage),
				G: blend(fg.G, existing.G, coverage),
				B: blend(fg.B, existing.B, coverage),
				A: 255,
			}
			img.SetRGBA(x, y, blended)
		}
	}
}

func blend(top, bottom uint8, coverage float64) uint8 {
	return uint8(float64(top)*coverage + float64(bottom)*(1-coverage))
}
