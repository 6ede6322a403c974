package render

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// pixelSize is the fixed rasterization scale used for every embedded weight,
// per spec.md §4.7.
const pixelSize = 43

//go:embed assets/fonts/*.ttf
var embeddedFonts embed.FS

// FontSet holds the four weights a cell's (bold, italic) pair selects
// between. It is an interface-typed struct so tests can supply synthetic
// font.Face doubles without real font bytes.
type FontSet struct {
	Regular    font.Face
	Bold       font.Face
	Italic     font.Face
	BoldItalic font.Face
}

// Select returns the face matching the given attribute pair.
func (f FontSet) Select(bold, italic bool) font.Face {
	switch {
	case bold && italic:
		return f.BoldItalic
	case bold:
		return f.Bold
	case italic:
		return f.Italic
	default:
		return f.Regular
	}
}

// fontFileNames are the four weight files a font set is assembled from,
// whether read from the embedded FS or a font directory override.
var fontFileNames = [4]string{"regular.ttf", "bold.ttf", "italic.ttf", "bold_italic.ttf"}

// LoadFonts parses the four embedded weights at pixelSize. The files in
// assets/fonts are placeholders, not font data, so this returns a parse
// error until they are replaced with real TTFs.
func LoadFonts() (FontSet, error) {
	return loadFontSet(func(name string) ([]byte, error) {
		data, err := embeddedFonts.ReadFile("assets/fonts/" + name)
		if err != nil {
			return nil, fmt.Errorf("render: read embedded font %s: %w", name, err)
		}
		return data, nil
	})
}

// LoadFontsFrom parses regular.ttf, bold.ttf, italic.ttf, and
// bold_italic.ttf from dir, overriding the embedded placeholder set with a
// real on-disk deployment's fonts.
func LoadFontsFrom(dir string) (FontSet, error) {
	return loadFontSet(func(name string) ([]byte, error) {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("render: read font %s: %w", path, err)
		}
		return data, nil
	})
}

func loadFontSet(read func(name string) ([]byte, error)) (FontSet, error) {
	faces := make([]font.Face, len(fontFileNames))
	for i, name := range fontFileNames {
		face, err := loadFace(name, read)
		if err != nil {
			return FontSet{}, err
		}
		faces[i] = face
	}
	return FontSet{Regular: faces[0], Bold: faces[1], Italic: faces[2], BoldItalic: faces[3]}, nil
}

func loadFace(name string, read func(name string) ([]byte, error)) (font.Face, error) {
	data, err := read(name)
	if err != nil {
		return nil, err
	}

	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("render: parse font %s: %w", name, err)
	}

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    pixelSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("render: build face for %s: %w", name, err)
	}
	return face, nil
}
