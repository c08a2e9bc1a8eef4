// Package fontfile loads OpenType/TrueType font data and answers the metric
// and shaping queries behind cairo font faces and scaled fonts.
//
// Two parsers look at the same bytes:
//
//   - golang.org/x/image/font/opentype: font metrics and hinted glyph bounds
//   - github.com/go-text/typesetting: HarfBuzz shaping and variable axes
//
// A Font is immutable after Parse and safe for concurrent use.
package fontfile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// ErrEmptyFontData is returned when font data is empty.
var ErrEmptyFontData = errors.New("fontfile: empty font data")

// Font is a parsed font file.
type Font struct {
	data []byte
	name string

	sfnt *opentype.Font
	// shapeFont is read-only and safe for concurrent use, unlike font.Face.
	shapeFont *font.Font

	// shapers pools HarfbuzzShaper instances; they are not concurrent-safe.
	shapers sync.Pool
}

// Parse parses font data (TTF or OTF).
// The data slice is copied internally and can be reused after this call.
func Parse(data []byte) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	sf, err := opentype.Parse(dataCopy)
	if err != nil {
		return nil, fmt.Errorf("fontfile: failed to parse font: %w", err)
	}

	face, err := font.ParseTTF(bytes.NewReader(dataCopy))
	if err != nil {
		return nil, fmt.Errorf("fontfile: failed to load font for shaping: %w", err)
	}

	f := &Font{
		data:      dataCopy,
		sfnt:      sf,
		shapeFont: face.Font,
		shapers: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
	}
	f.name = extractName(sf)
	return f, nil
}

// ParseFile loads a Font from a font file path.
func ParseFile(path string) (*Font, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fontfile: failed to read font file: %w", err)
	}
	return Parse(data)
}

// Name returns the font family name, or "Unknown Font".
func (f *Font) Name() string {
	return f.name
}

// NumGlyphs returns the number of glyphs in the font.
func (f *Font) NumGlyphs() int {
	return f.sfnt.NumGlyphs()
}

// UnitsPerEm returns the units per em for the font.
func (f *Font) UnitsPerEm() int {
	return int(f.sfnt.UnitsPerEm())
}

// GlyphIndex returns the glyph index for a rune, 0 if not present.
func (f *Font) GlyphIndex(r rune) uint16 {
	idx, err := f.sfnt.GlyphIndex(nil, r)
	if err != nil {
		return 0
	}
	return uint16(idx)
}

func extractName(sf *opentype.Font) string {
	if name, err := sf.Name(nil, sfnt.NameIDFamily); err == nil && name != "" {
		return name
	}
	if name, err := sf.Name(nil, sfnt.NameIDFull); err == nil && name != "" {
		return name
	}
	return "Unknown Font"
}
