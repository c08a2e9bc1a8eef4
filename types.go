package cairo

// unknownStr is the string returned for unknown enum values.
const unknownStr = "unknown"

// Antialias specifies the type of antialiasing to do when rendering text.
type Antialias int

const (
	// AntialiasDefault uses the default antialiasing for the target.
	AntialiasDefault Antialias = iota
	// AntialiasNone uses a bilevel alpha mask.
	AntialiasNone
	// AntialiasGray performs single-color antialiasing.
	AntialiasGray
	// AntialiasSubpixel uses the LCD subpixel order of the target.
	AntialiasSubpixel
	// AntialiasFast hints that speed matters more than quality.
	AntialiasFast
	// AntialiasGood balances quality against performance.
	AntialiasGood
	// AntialiasBest renders at the highest quality.
	AntialiasBest
)

var antialiasNames = [...]string{"default", "none", "gray", "subpixel", "fast", "good", "best"}

// String returns the string representation of the antialias mode.
func (a Antialias) String() string { return enumName(antialiasNames[:], int(a)) }

// ParseAntialias returns the Antialias named s.
func ParseAntialias(s string) (Antialias, bool) {
	i, ok := enumValue(antialiasNames[:], s)
	return Antialias(i), ok
}

// SubpixelOrder specifies the order of color elements within each pixel on
// the display device when rendering with AntialiasSubpixel.
type SubpixelOrder int

const (
	// SubpixelOrderDefault uses the default order for the target.
	SubpixelOrderDefault SubpixelOrder = iota
	// SubpixelOrderRGB is horizontal red, green, blue.
	SubpixelOrderRGB
	// SubpixelOrderBGR is horizontal blue, green, red.
	SubpixelOrderBGR
	// SubpixelOrderVRGB is vertical red, green, blue.
	SubpixelOrderVRGB
	// SubpixelOrderVBGR is vertical blue, green, red.
	SubpixelOrderVBGR
)

var subpixelOrderNames = [...]string{"default", "rgb", "bgr", "vrgb", "vbgr"}

// String returns the string representation of the subpixel order.
func (o SubpixelOrder) String() string { return enumName(subpixelOrderNames[:], int(o)) }

// ParseSubpixelOrder returns the SubpixelOrder named s.
func ParseSubpixelOrder(s string) (SubpixelOrder, bool) {
	i, ok := enumValue(subpixelOrderNames[:], s)
	return SubpixelOrder(i), ok
}

// HintStyle specifies how strongly glyph outlines are fitted to the pixel grid.
type HintStyle int

const (
	// HintStyleDefault uses the default hint style for the font backend and target.
	HintStyleDefault HintStyle = iota
	// HintStyleNone does not hint outlines.
	HintStyleNone
	// HintStyleSlight hints outlines slightly, vertical only.
	HintStyleSlight
	// HintStyleMedium hints outlines with medium strength.
	HintStyleMedium
	// HintStyleFull hints outlines to maximize contrast.
	HintStyleFull
)

var hintStyleNames = [...]string{"default", "none", "slight", "medium", "full"}

// String returns the string representation of the hint style.
func (h HintStyle) String() string { return enumName(hintStyleNames[:], int(h)) }

// ParseHintStyle returns the HintStyle named s.
func ParseHintStyle(s string) (HintStyle, bool) {
	i, ok := enumValue(hintStyleNames[:], s)
	return HintStyle(i), ok
}

// HintMetrics specifies whether font metrics are quantized to integer
// values in device space.
type HintMetrics int

const (
	// HintMetricsDefault uses the default for the font backend and target.
	HintMetricsDefault HintMetrics = iota
	// HintMetricsOff does not quantize metrics.
	HintMetricsOff
	// HintMetricsOn quantizes metrics.
	HintMetricsOn
)

var hintMetricsNames = [...]string{"default", "off", "on"}

// String returns the string representation of the hint metrics mode.
func (h HintMetrics) String() string { return enumName(hintMetricsNames[:], int(h)) }

// ParseHintMetrics returns the HintMetrics named s.
func ParseHintMetrics(s string) (HintMetrics, bool) {
	i, ok := enumValue(hintMetricsNames[:], s)
	return HintMetrics(i), ok
}

// ColorMode specifies whether color fonts render with their own colors.
type ColorMode int

const (
	// ColorModeDefault uses the default color mode.
	ColorModeDefault ColorMode = iota
	// ColorModeNoColor renders color glyphs in the source color.
	ColorModeNoColor
	// ColorModeColor renders color glyphs with their own colors.
	ColorModeColor
)

var colorModeNames = [...]string{"default", "nocolor", "color"}

// String returns the string representation of the color mode.
func (c ColorMode) String() string { return enumName(colorModeNames[:], int(c)) }

// ParseColorMode returns the ColorMode named s.
func ParseColorMode(s string) (ColorMode, bool) {
	i, ok := enumValue(colorModeNames[:], s)
	return ColorMode(i), ok
}

// ColorPaletteDefault is the index of the default color palette.
const ColorPaletteDefault = 0

// FontType identifies the backend implementing a font face or scaled font.
type FontType int

const (
	// FontTypeToy is a face created by NewToyFontFace.
	FontTypeToy FontType = iota
	// FontTypeFT is a face loaded from font file data.
	FontTypeFT
	// FontTypeWin32 is reserved for the Win32 backend.
	FontTypeWin32
	// FontTypeQuartz is reserved for the Quartz backend.
	FontTypeQuartz
	// FontTypeUser is reserved for user fonts.
	FontTypeUser
	// FontTypeDWrite is reserved for the DirectWrite backend.
	FontTypeDWrite
)

var fontTypeNames = [...]string{"toy", "ft", "win32", "quartz", "user", "dwrite"}

// String returns the string representation of the font type.
func (t FontType) String() string { return enumName(fontTypeNames[:], int(t)) }

// FontSlant specifies variants of a font face based on their slant.
type FontSlant int

const (
	// FontSlantNormal is upright font style.
	FontSlantNormal FontSlant = iota
	// FontSlantItalic is italic font style.
	FontSlantItalic
	// FontSlantOblique is oblique font style.
	FontSlantOblique
)

var fontSlantNames = [...]string{"normal", "italic", "oblique"}

// String returns the string representation of the slant.
func (s FontSlant) String() string { return enumName(fontSlantNames[:], int(s)) }

// Valid reports whether s is a defined slant.
func (s FontSlant) Valid() bool { return s >= FontSlantNormal && s <= FontSlantOblique }

// FontWeight specifies variants of a font face based on their weight.
type FontWeight int

const (
	// FontWeightNormal is normal font weight.
	FontWeightNormal FontWeight = iota
	// FontWeightBold is bold font weight.
	FontWeightBold
)

var fontWeightNames = [...]string{"normal", "bold"}

// String returns the string representation of the weight.
func (w FontWeight) String() string { return enumName(fontWeightNames[:], int(w)) }

// Valid reports whether w is a defined weight.
func (w FontWeight) Valid() bool { return w == FontWeightNormal || w == FontWeightBold }

func enumName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return unknownStr
	}
	return names[i]
}

func enumValue(names []string, s string) (int, bool) {
	for i, n := range names {
		if n == s {
			return i, true
		}
	}
	return 0, false
}
