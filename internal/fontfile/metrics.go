package fontfile

import (
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Metrics holds font-level metrics at a specific pixel size.
// All values are in pixels with y growing downwards.
type Metrics struct {
	// Ascent is the distance from the baseline to the top of the font (positive).
	Ascent float64

	// Descent is the distance from the baseline to the bottom of the font (positive).
	Descent float64

	// Height is the recommended baseline-to-baseline distance.
	Height float64

	// MaxAdvance is the largest horizontal glyph advance.
	MaxAdvance float64
}

// Rect is a glyph bounding box in pixels, y growing downwards.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.MinX >= r.MaxX || r.MinY >= r.MaxY
}

// Union returns the smallest rectangle containing r and o.
// Empty rectangles do not contribute.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	return Rect{
		MinX: min(r.MinX, o.MinX),
		MinY: min(r.MinY, o.MinY),
		MaxX: max(r.MaxX, o.MaxX),
		MaxY: max(r.MaxY, o.MaxY),
	}
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{MinX: r.MinX + dx, MinY: r.MinY + dy, MaxX: r.MaxX + dx, MaxY: r.MaxY + dy}
}

// Metrics returns the font metrics at ppem pixels per em.
func (f *Font) Metrics(ppem float64, hinting xfont.Hinting) Metrics {
	var buf sfnt.Buffer

	m, err := f.sfnt.Metrics(&buf, floatToFixed(ppem), hinting)
	if err != nil {
		return Metrics{}
	}

	descent := fixedToFloat(m.Descent)
	if descent < 0 {
		descent = -descent
	}
	return Metrics{
		Ascent:     fixedToFloat(m.Ascent),
		Descent:    descent,
		Height:     fixedToFloat(m.Height),
		MaxAdvance: f.maxAdvance(&buf, ppem, hinting),
	}
}

// GlyphBounds returns the ink bounding box of a glyph at ppem relative to
// its origin.
func (f *Font) GlyphBounds(gid uint16, ppem float64, hinting xfont.Hinting) Rect {
	var buf sfnt.Buffer

	bounds, _, err := f.sfnt.GlyphBounds(&buf, sfnt.GlyphIndex(gid), floatToFixed(ppem), hinting)
	if err != nil {
		return Rect{}
	}
	return Rect{
		MinX: fixedToFloat(bounds.Min.X),
		MinY: fixedToFloat(bounds.Min.Y),
		MaxX: fixedToFloat(bounds.Max.X),
		MaxY: fixedToFloat(bounds.Max.Y),
	}
}

// maxAdvance scans every glyph once. Fonts rarely exceed a few thousand
// glyphs so this stays cheap relative to shaping.
func (f *Font) maxAdvance(buf *sfnt.Buffer, ppem float64, hinting xfont.Hinting) float64 {
	var best fixed.Int26_6
	size := floatToFixed(ppem)
	for i := range f.sfnt.NumGlyphs() {
		adv, err := f.sfnt.GlyphAdvance(buf, sfnt.GlyphIndex(i), size, hinting)
		if err == nil && adv > best {
			best = adv
		}
	}
	return fixedToFloat(best)
}

// floatToFixed converts a float64 pixel size to fixed.Int26_6.
func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

// fixedToFloat converts a fixed.Int26_6 value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
