package cairo

import (
	"cmp"
	"fmt"
	"hash/fnv"
	"math"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/gogpu/cairo/internal/fault"
)

// PaletteColor overrides one entry of a color font palette.
type PaletteColor struct {
	Index      int
	R, G, B, A float64
}

// FontOptions holds how fonts should be rendered: antialiasing, hinting,
// variable font axes and color palette selection.
//
// FontOptions is a value-like handle: Copy produces an independent
// duplicate, Equal and Hash compare contents. It is not safe for concurrent
// mutation. FontOptions must not be copied by value; use Copy.
type FontOptions struct {
	// addr is used for copy protection. It must point to the FontOptions itself.
	addr *FontOptions
	id   uint64

	status Status

	antialias     Antialias
	subpixelOrder SubpixelOrder
	hintStyle     HintStyle
	hintMetrics   HintMetrics
	colorMode     ColorMode
	paletteIndex  int
	variations    string

	// customPalette is kept sorted by Index.
	customPalette []PaletteColor
}

// NewFontOptions allocates font options with every field at its default.
// It fails with ErrNoMemory if the allocation cannot be satisfied.
//
// The caller owns the result and must call Destroy once.
func NewFontOptions() (*FontOptions, error) {
	if fault.Fail() {
		return nil, ErrNoMemory
	}
	o := &FontOptions{id: nextHandleID()}
	o.addr = o
	leaks.acquire("FontOptions", o.id, 1)
	watch(o, "FontOptions", o.id)
	return o, nil
}

// Copy allocates a new FontOptions holding the current values of o.
// Copying an options handle in an error state fails with that status.
func (o *FontOptions) Copy() (*FontOptions, error) {
	if st := o.Status(); st != StatusSuccess {
		return nil, st
	}
	if fault.Fail() {
		return nil, ErrNoMemory
	}
	c := &FontOptions{}
	o.copyInto(c)
	c.id = nextHandleID()
	c.addr = c
	leaks.acquire("FontOptions", c.id, 1)
	watch(c, "FontOptions", c.id)
	return c, nil
}

// copyInto overwrites dst with the values of o. dst keeps its identity.
func (o *FontOptions) copyInto(dst *FontOptions) {
	dst.status = o.status
	dst.antialias = o.antialias
	dst.subpixelOrder = o.subpixelOrder
	dst.hintStyle = o.hintStyle
	dst.hintMetrics = o.hintMetrics
	dst.colorMode = o.colorMode
	dst.paletteIndex = o.paletteIndex
	dst.variations = o.variations
	dst.customPalette = slices.Clone(o.customPalette)
}

// Destroy releases the options. Destroy on nil is a no-op. After Destroy
// the handle reports StatusNullPointer and must not be used.
func (o *FontOptions) Destroy() {
	if o == nil {
		return
	}
	o.copyCheck()
	leaks.release(o.id)
	*o = FontOptions{addr: o, id: o.id, status: StatusNullPointer}
}

// Close calls Destroy.
func (o *FontOptions) Close() error {
	o.Destroy()
	return nil
}

// Status returns the sticky error state of o. A nil handle reports
// StatusNullPointer.
func (o *FontOptions) Status() Status {
	if o == nil {
		return StatusNullPointer
	}
	o.copyCheck()
	return o.status
}

// Err returns the status of o as an error, nil when o is usable.
func (o *FontOptions) Err() error {
	return o.Status().Err()
}

// setError records the first error only; later errors are dropped.
func (o *FontOptions) setError(s Status) {
	if o.status == StatusSuccess {
		o.status = s
	}
}

// writable reports whether setters may modify o.
func (o *FontOptions) writable() bool {
	return o.Status() == StatusSuccess
}

// SetAntialias sets the antialiasing mode.
func (o *FontOptions) SetAntialias(a Antialias) {
	if o.writable() {
		o.antialias = a
	}
}

// Antialias returns the antialiasing mode. Like every getter it returns the
// default value once o is in an error state.
func (o *FontOptions) Antialias() Antialias {
	if o.Status() != StatusSuccess {
		return AntialiasDefault
	}
	return o.antialias
}

// SetSubpixelOrder sets the subpixel order used with AntialiasSubpixel.
func (o *FontOptions) SetSubpixelOrder(s SubpixelOrder) {
	if o.writable() {
		o.subpixelOrder = s
	}
}

// SubpixelOrder returns the subpixel order.
func (o *FontOptions) SubpixelOrder() SubpixelOrder {
	if o.Status() != StatusSuccess {
		return SubpixelOrderDefault
	}
	return o.subpixelOrder
}

// SetHintStyle sets the outline hinting strength.
func (o *FontOptions) SetHintStyle(h HintStyle) {
	if o.writable() {
		o.hintStyle = h
	}
}

// HintStyle returns the outline hinting strength.
func (o *FontOptions) HintStyle() HintStyle {
	if o.Status() != StatusSuccess {
		return HintStyleDefault
	}
	return o.hintStyle
}

// SetHintMetrics sets whether metrics are quantized in device space.
func (o *FontOptions) SetHintMetrics(h HintMetrics) {
	if o.writable() {
		o.hintMetrics = h
	}
}

// HintMetrics returns whether metrics are quantized in device space.
func (o *FontOptions) HintMetrics() HintMetrics {
	if o.Status() != StatusSuccess {
		return HintMetricsDefault
	}
	return o.hintMetrics
}

// SetColorMode sets whether color fonts use their own colors.
func (o *FontOptions) SetColorMode(c ColorMode) {
	if o.writable() {
		o.colorMode = c
	}
}

// ColorMode returns the color mode.
func (o *FontOptions) ColorMode() ColorMode {
	if o.Status() != StatusSuccess {
		return ColorModeDefault
	}
	return o.colorMode
}

// SetColorPalette selects the color font palette by index.
func (o *FontOptions) SetColorPalette(index int) {
	if o.writable() {
		o.paletteIndex = index
	}
}

// ColorPalette returns the selected palette index.
func (o *FontOptions) ColorPalette() int {
	if o.Status() != StatusSuccess {
		return ColorPaletteDefault
	}
	return o.paletteIndex
}

// SetVariations sets the OpenType font variations, e.g. "wght=200,wdth=140.5".
// The string is stored as is; see ParseVariations for the accepted format.
// An empty string clears the variations.
//
// A string that is not valid UTF-8 puts o into StatusInvalidString.
func (o *FontOptions) SetVariations(variations string) {
	if !o.writable() {
		return
	}
	if !utf8.ValidString(variations) {
		o.setError(StatusInvalidString)
		return
	}
	if variations != "" && fault.Fail() {
		o.setError(StatusNoMemory)
		return
	}
	o.variations = strings.Clone(variations)
}

// Variations returns the font variations exactly as set, or "" when none
// are set or o is in an error state.
func (o *FontOptions) Variations() string {
	if o.Status() != StatusSuccess {
		return ""
	}
	return o.variations
}

// SetCustomPaletteColor overrides entry index of the selected palette.
func (o *FontOptions) SetCustomPaletteColor(index int, r, g, b, a float64) {
	if !o.writable() {
		return
	}
	c := PaletteColor{Index: index, R: r, G: g, B: b, A: a}
	i, found := slices.BinarySearchFunc(o.customPalette, index, comparePaletteIndex)
	if found {
		o.customPalette[i] = c
		return
	}
	if len(o.customPalette) == cap(o.customPalette) && fault.Fail() {
		o.setError(StatusNoMemory)
		return
	}
	o.customPalette = slices.Insert(o.customPalette, i, c)
}

// CustomPaletteColor returns the override for entry index. It returns
// StatusInvalidIndex if no override was set for that entry, and the status
// of o if o is in an error state.
func (o *FontOptions) CustomPaletteColor(index int) (r, g, b, a float64, err error) {
	if st := o.Status(); st != StatusSuccess {
		return 0, 0, 0, 0, st
	}
	i, found := slices.BinarySearchFunc(o.customPalette, index, comparePaletteIndex)
	if !found {
		return 0, 0, 0, 0, StatusInvalidIndex
	}
	c := o.customPalette[i]
	return c.R, c.G, c.B, c.A, nil
}

// CustomPalette returns a copy of every palette override, ordered by index.
func (o *FontOptions) CustomPalette() []PaletteColor {
	if o.Status() != StatusSuccess {
		return nil
	}
	return slices.Clone(o.customPalette)
}

func comparePaletteIndex(c PaletteColor, index int) int {
	return cmp.Compare(c.Index, index)
}

// Merge overwrites the fields of o with every field other has set to a
// non-default value. Fields other leaves at their default keep o's value.
// A non-empty variation string in other replaces o's; palette overrides in
// other replace overrides with the same index.
//
// Merge is a no-op if either handle is in an error state.
func (o *FontOptions) Merge(other *FontOptions) {
	if o.Status() != StatusSuccess || other.Status() != StatusSuccess {
		return
	}
	if other.antialias != AntialiasDefault {
		o.antialias = other.antialias
	}
	if other.subpixelOrder != SubpixelOrderDefault {
		o.subpixelOrder = other.subpixelOrder
	}
	if other.hintStyle != HintStyleDefault {
		o.hintStyle = other.hintStyle
	}
	if other.hintMetrics != HintMetricsDefault {
		o.hintMetrics = other.hintMetrics
	}
	if other.colorMode != ColorModeDefault {
		o.colorMode = other.colorMode
	}
	if other.paletteIndex != ColorPaletteDefault {
		o.paletteIndex = other.paletteIndex
	}
	if other.variations != "" {
		o.variations = other.variations
	}
	for _, c := range other.customPalette {
		o.SetCustomPaletteColor(c.Index, c.R, c.G, c.B, c.A)
	}
}

// Equal reports whether o and other hold the same values. It returns false
// if either handle is nil or in an error state, even for identical contents.
func (o *FontOptions) Equal(other *FontOptions) bool {
	if o.Status() != StatusSuccess || other.Status() != StatusSuccess {
		return false
	}
	if o == other {
		return true
	}
	return o.antialias == other.antialias &&
		o.subpixelOrder == other.subpixelOrder &&
		o.hintStyle == other.hintStyle &&
		o.hintMetrics == other.hintMetrics &&
		o.colorMode == other.colorMode &&
		o.paletteIndex == other.paletteIndex &&
		o.variations == other.variations &&
		slices.EqualFunc(o.customPalette, other.customPalette, samePaletteColor)
}

// samePaletteColor compares the bits of each component, so -0 and 0 differ
// and NaN equals itself, matching Hash.
func samePaletteColor(a, b PaletteColor) bool {
	return a.Index == b.Index &&
		math.Float64bits(a.R) == math.Float64bits(b.R) &&
		math.Float64bits(a.G) == math.Float64bits(b.G) &&
		math.Float64bits(a.B) == math.Float64bits(b.B) &&
		math.Float64bits(a.A) == math.Float64bits(b.A)
}

// Hash returns a hash of the values of o, suitable as a map key together
// with Equal: equal options hash identically. Options in an error state
// hash like default options.
func (o *FontOptions) Hash() uint64 {
	if o.Status() != StatusSuccess {
		return 0
	}

	var h uint64
	if o.variations != "" {
		f := fnv.New64a()
		_, _ = f.Write([]byte(o.variations)) // fnv.Write never returns an error
		h = f.Sum64()
	}
	h ^= uint64(o.paletteIndex) //nolint:gosec // hashing reinterprets the bits
	for _, c := range o.customPalette {
		h ^= hashPaletteColor(c)
	}

	flags := uint64(o.antialias) |
		uint64(o.subpixelOrder)<<4 |
		uint64(o.hintStyle)<<12 |
		uint64(o.hintMetrics)<<16 |
		uint64(o.colorMode)<<20
	return flags ^ h
}

func hashPaletteColor(c PaletteColor) uint64 {
	f := fnv.New64a()
	var buf [40]byte
	putUint64(buf[0:], uint64(c.Index)) //nolint:gosec // hashing reinterprets the bits
	putUint64(buf[8:], math.Float64bits(c.R))
	putUint64(buf[16:], math.Float64bits(c.G))
	putUint64(buf[24:], math.Float64bits(c.B))
	putUint64(buf[32:], math.Float64bits(c.A))
	_, _ = f.Write(buf[:])
	return f.Sum64()
}

func putUint64(b []byte, v uint64) {
	for i := range 8 {
		b[i] = byte(v >> (8 * i))
	}
}

// String returns the options as space separated key=value pairs.
func (o *FontOptions) String() string {
	if st := o.Status(); st != StatusSuccess {
		return fmt.Sprintf("FontOptions(%v)", st)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "antialias=%v subpixel-order=%v hint-style=%v hint-metrics=%v color-mode=%v palette=%d",
		o.antialias, o.subpixelOrder, o.hintStyle, o.hintMetrics, o.colorMode, o.paletteIndex)
	if o.variations != "" {
		fmt.Fprintf(&b, " variations=%q", o.variations)
	}
	for _, c := range o.customPalette {
		fmt.Fprintf(&b, " color[%d]=(%g,%g,%g,%g)", c.Index, c.R, c.G, c.B, c.A)
	}
	return b.String()
}

// copyCheck panics if FontOptions was copied by value.
func (o *FontOptions) copyCheck() {
	if o.addr != o {
		panic("cairo: FontOptions must not be copied by value, use Copy")
	}
}
