package cairo

import (
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/cairo/internal/fontfile"
)

// Variation is one OpenType variable font axis setting, such as wght=200.
type Variation struct {
	// Tag is the four byte axis tag, e.g. "wght", "wdth", "slnt".
	Tag string
	// Value is the axis coordinate in user units.
	Value float64
}

// ParseVariations parses a font variation string.
//
// Entries are separated by commas. Each entry is a four byte axis tag
// followed by optional whitespace, an optional '=' and a number:
//
//	wght=200,wdth=140.5
//	wght 200, slnt -10
//
// Malformed entries are skipped, as are values that are not finite decimal
// numbers. Entries are returned in input order; when an axis repeats, the
// later entry wins once applied.
func ParseVariations(s string) []Variation {
	var out []Variation
	for entry := range strings.SplitSeq(s, ",") {
		if v, ok := parseVariation(entry); ok {
			out = append(out, v)
		}
	}
	return out
}

func parseVariation(entry string) (Variation, bool) {
	entry = strings.TrimLeft(entry, " \t\n\r\f\v")
	if len(entry) < 5 {
		return Variation{}, false
	}
	tag := entry[:4]
	if strings.ContainsAny(tag, " \t\n\r\f\v=,") {
		return Variation{}, false
	}

	rest := strings.TrimLeft(entry[4:], " \t\n\r\f\v")
	rest = strings.TrimPrefix(rest, "=")
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return Variation{}, false
	}
	// Axis values are plain decimal numbers that fit the shaper's float32.
	if strings.ContainsAny(rest, "xX_") {
		return Variation{}, false
	}
	value, err := strconv.ParseFloat(rest, 64)
	if err != nil || math.IsNaN(value) || math.Abs(value) > math.MaxFloat32 {
		return Variation{}, false
	}
	return Variation{Tag: tag, Value: value}, true
}

// axisSettings converts parsed variations into the form the shaper applies.
// Later settings for the same tag replace earlier ones.
func axisSettings(vars []Variation) []fontfile.Variation {
	if len(vars) == 0 {
		return nil
	}
	out := make([]fontfile.Variation, 0, len(vars))
	index := make(map[string]int, len(vars))
	for _, v := range vars {
		fv := fontfile.Variation{Value: float32(v.Value)}
		copy(fv.Tag[:], v.Tag)
		if i, ok := index[v.Tag]; ok {
			out[i] = fv
			continue
		}
		index[v.Tag] = len(out)
		out = append(out, fv)
	}
	return out
}
