package fontfile

import (
	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/text/unicode/bidi"
)

// Direction is the base direction of a shaped run.
type Direction int

const (
	// LeftToRight is left-to-right text.
	LeftToRight Direction = iota
	// RightToLeft is right-to-left text (Arabic, Hebrew).
	RightToLeft
)

// Variation is a single variable font axis setting.
type Variation struct {
	Tag   [4]byte
	Value float32
}

// Glyph is a shaped glyph positioned in pixels relative to the run origin.
type Glyph struct {
	GID     uint16
	Cluster int
	X, Y    float64
	Advance float64
}

// Shape converts text into positioned glyphs using HarfBuzz shaping.
// vars are applied to the font's variable axes in order; axes not named keep
// their default value.
func (f *Font) Shape(text string, ppem float64, dir Direction, vars []Variation) []Glyph {
	if text == "" {
		return nil
	}
	runes := []rune(text)

	// font.Face is NOT safe for concurrent use, so each call gets its own.
	face := font.NewFace(f.shapeFont)
	if len(vars) > 0 {
		face.SetVariations(toAxisSettings(vars))
	}

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: mapDirection(dir),
		Face:      face,
		Size:      floatToFixed(ppem),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	hb := f.shapers.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	f.shapers.Put(hb)

	glyphs := make([]Glyph, len(output.Glyphs))
	x := 0.0
	for i, g := range output.Glyphs {
		adv := fixedToFloat(g.Advance)
		glyphs[i] = Glyph{
			GID:     uint16(g.GlyphID), //nolint:gosec // glyph ids are 16-bit in sfnt
			Cluster: g.TextIndex(),
			X:       x + fixedToFloat(g.XOffset),
			Y:       fixedToFloat(g.YOffset),
			Advance: adv,
		}
		x += adv
	}
	return glyphs
}

// ParagraphDirection returns the resolved base direction of text using the
// Unicode bidirectional algorithm. Mixed paragraphs report the direction of
// their first run.
func ParagraphDirection(text string) Direction {
	if text == "" {
		return LeftToRight
	}

	p := bidi.Paragraph{}
	if _, err := p.SetString(text, bidi.DefaultDirection(bidi.Neutral)); err != nil {
		return LeftToRight
	}
	ordering, err := p.Order()
	if err != nil || ordering.NumRuns() == 0 {
		return LeftToRight
	}
	if ordering.Direction() == bidi.RightToLeft {
		return RightToLeft
	}
	if ordering.Direction() == bidi.Mixed {
		run := ordering.Run(0)
		if run.Direction() == bidi.RightToLeft {
			return RightToLeft
		}
	}
	return LeftToRight
}

func toAxisSettings(vars []Variation) []font.Variation {
	out := make([]font.Variation, len(vars))
	for i, v := range vars {
		out[i] = font.Variation{
			Tag:   ot.NewTag(v.Tag[0], v.Tag[1], v.Tag[2], v.Tag[3]),
			Value: v.Value,
		}
	}
	return out
}

func mapDirection(d Direction) di.Direction {
	if d == RightToLeft {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}

// detectScript returns the script of the first non-space rune.
// Mixed-script text should be split by the caller before shaping.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
