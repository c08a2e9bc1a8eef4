package cairo

import (
	"fmt"
	"log/slog"
	"math"
	"slices"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	xfont "golang.org/x/image/font"

	"github.com/gogpu/cairo/internal/cache"
	"github.com/gogpu/cairo/internal/fault"
	"github.com/gogpu/cairo/internal/fontfile"
)

// FontExtents are the metrics of a scaled font in user space.
type FontExtents struct {
	// Ascent is the distance the font extends above the baseline.
	Ascent float64
	// Descent is the distance the font extends below the baseline, positive.
	Descent float64
	// Height is the recommended baseline to baseline distance.
	Height float64
	// MaxXAdvance is the largest horizontal advance of any glyph.
	MaxXAdvance float64
	// MaxYAdvance is the largest vertical advance, 0 for horizontal fonts.
	MaxYAdvance float64
}

// TextExtents are the ink and advance extents of a string in user space.
type TextExtents struct {
	XBearing, YBearing float64
	Width, Height      float64
	XAdvance, YAdvance float64
}

// ScaledFont is a font face at a particular size and transformation with
// fixed font options. It is reference counted like FontFace; identical
// requests share one ScaledFont.
//
// ScaledFont is safe for concurrent use. It must not be copied by value.
type ScaledFont struct {
	// addr is used for copy protection. It must point to the ScaledFont itself.
	addr *ScaledFont
	id   uint64

	refs   refCount
	status atomic.Int32

	userData userDataArray

	key     scaledFontKey
	face    *FontFace
	options *FontOptions
	ctm     Matrix
	font    Matrix
	scale   Matrix

	file    *fontfile.Font
	axes    []fontfile.Variation
	ppem    float64
	hinting xfont.Hinting
	round   bool

	// glyphs caches ink bounds by glyph id in shaped space.
	glyphs *cache.Sharded[uint16, fontfile.Rect]

	extentsOnce sync.Once
	extents     FontExtents
}

type scaledFontKey struct {
	face        *FontFace
	fontMatrix  Matrix
	ctm         Matrix
	optionsHash uint64
}

// scaledFonts is the scaled font cache. Every decrement of a scaled font
// count happens under mu, so a font found in live always has a count of at
// least one. Released fonts wait in holdovers for resurrection.
var scaledFonts = struct {
	mu        sync.Mutex
	live      map[scaledFontKey][]*ScaledFont
	holdovers *cache.Holdovers[scaledFontKey, *ScaledFont]
}{
	live:      make(map[scaledFontKey][]*ScaledFont),
	holdovers: newScaledFontHoldovers(),
}

func newScaledFontHoldovers() *cache.Holdovers[scaledFontKey, *ScaledFont] {
	return cache.NewHoldovers[scaledFontKey](cache.DefaultHoldovers, (*ScaledFont).finalize)
}

// NewScaledFont returns the scaled font for face at fontMatrix, the
// font space to user space transformation, under ctm, the user space to
// device space transformation, with the given options.
//
// Errors are reported through the returned font's Status: a nil or errored
// face or options propagate their status, a singular fontMatrix × ctm
// reports StatusInvalidMatrix. Error scaled fonts need no Destroy.
func NewScaledFont(face *FontFace, fontMatrix, ctm Matrix, options *FontOptions) *ScaledFont {
	if st := face.Status(); st != StatusSuccess {
		return errorScaledFont(st)
	}
	if st := options.Status(); st != StatusSuccess {
		return errorScaledFont(st)
	}
	scale := ctm.Multiply(fontMatrix)
	if !fontMatrix.Invertible() || !scale.Invertible() {
		return errorScaledFont(StatusInvalidMatrix)
	}

	key := scaledFontKey{face: face, fontMatrix: fontMatrix, ctm: ctm, optionsHash: options.Hash()}
	m := &scaledFonts

	m.mu.Lock()
	bucket := m.live[key]
	for i := 0; i < len(bucket); i++ {
		s := bucket[i]
		if s.Status() != StatusSuccess {
			// Errored fonts stay valid for their owners but are not shared.
			bucket = slices.Delete(bucket, i, i+1)
			i--
			continue
		}
		if s.options.Equal(options) {
			s.refs.inc()
			m.live[key] = bucket
			m.mu.Unlock()
			leaks.acquire("ScaledFont", s.id, 1)
			Logger().Debug("cairo: scaled font cache hit", slog.Uint64("id", s.id))
			return s
		}
	}
	if len(bucket) == 0 {
		delete(m.live, key)
	} else {
		m.live[key] = bucket
	}

	var putBack *ScaledFont
	if s, ok := m.holdovers.Take(key); ok {
		if s.options.Equal(options) {
			s.refs.incFromZero()
			m.live[key] = append(m.live[key], s)
			m.mu.Unlock()
			leaks.acquire("ScaledFont", s.id, 1)
			Logger().Debug("cairo: scaled font resurrected", slog.Uint64("id", s.id))
			return s
		}
		putBack = s
	}
	m.mu.Unlock()
	if putBack != nil {
		m.holdovers.Put(key, putBack)
	}

	if fault.Fail() {
		return errorScaledFont(StatusNoMemory)
	}
	s, st := newScaledFont(key, face, fontMatrix, ctm, scale, options)
	if st != StatusSuccess {
		return errorScaledFont(st)
	}

	m.mu.Lock()
	m.live[key] = append(m.live[key], s)
	m.mu.Unlock()

	leaks.acquire("ScaledFont", s.id, 1)
	Logger().Debug("cairo: scaled font created",
		slog.Uint64("id", s.id),
		slog.String("face", face.Name()),
		slog.Float64("ppem", s.ppem),
		slog.String("options", options.String()))
	return s
}

func newScaledFont(key scaledFontKey, face *FontFace, fontMatrix, ctm, scale Matrix, options *FontOptions) (*ScaledFont, Status) {
	file, faceVars, err := face.impl.resolve()
	if err != nil {
		Logger().Warn("cairo: scaled font backend failed",
			slog.Uint64("face", face.id),
			slog.String("error", err.Error()))
		return nil, StatusNoMemory
	}

	opts := &FontOptions{id: nextHandleID()}
	opts.addr = opts
	options.copyInto(opts)

	s := &ScaledFont{
		id:      nextHandleID(),
		key:     key,
		face:    face,
		options: opts,
		ctm:     ctm,
		font:    fontMatrix,
		scale:   scale,
		file:    file,
		axes:    axisSettings(append(ParseVariations(faceVars), ParseVariations(opts.variations)...)),
		ppem:    scale.uniformScale(),
		hinting: hintingFor(opts.hintStyle),
		round:   opts.hintMetrics != HintMetricsOff,
		glyphs:  cache.NewSharded[uint16, fontfile.Rect](cache.DefaultShardCapacity, glyphHash),
	}
	s.addr = s
	s.refs.init(1)
	watch(s, "ScaledFont", s.id)
	face.ref()
	return s, StatusSuccess
}

// hintingFor maps the hint style onto x/image outline hinting.
func hintingFor(h HintStyle) xfont.Hinting {
	switch h {
	case HintStyleNone:
		return xfont.HintingNone
	case HintStyleSlight:
		return xfont.HintingVertical
	default:
		return xfont.HintingFull
	}
}

// Reference adds one ownership unit and returns s.
func (s *ScaledFont) Reference() *ScaledFont {
	if s == nil || s.refs.invalid() {
		return s
	}
	s.copyCheck()
	s.refs.inc()
	leaks.acquire("ScaledFont", s.id, 1)
	return s
}

// Destroy releases one ownership unit. When the last unit goes the user
// data is destroyed and the font is kept among the recently released fonts
// so an identical NewScaledFont can bring it back.
func (s *ScaledFont) Destroy() {
	if s == nil || s.refs.invalid() {
		return
	}
	s.copyCheck()
	leaks.release(s.id)

	m := &scaledFonts
	m.mu.Lock()
	if !s.refs.dec() {
		m.mu.Unlock()
		return
	}
	bucket := m.live[s.key]
	if i := slices.Index(bucket, s); i >= 0 {
		bucket = slices.Delete(bucket, i, i+1)
	}
	if len(bucket) == 0 {
		delete(m.live, s.key)
	} else {
		m.live[s.key] = bucket
	}
	holdovers := m.holdovers
	m.mu.Unlock()

	runDestroys(s.userData.detach())
	if s.Status() != StatusSuccess {
		s.finalize()
		return
	}
	holdovers.Put(s.key, s)
}

// Close calls Destroy.
func (s *ScaledFont) Close() error {
	s.Destroy()
	return nil
}

// finalize drops what the font holds. It runs when the font leaves the
// holdovers without being resurrected.
func (s *ScaledFont) finalize() {
	leaks.forget(s.id)
	s.userData.fini()
	s.glyphs.Clear()
	s.face.unref()
	Logger().Debug("cairo: scaled font finalized", slog.Uint64("id", s.id))
}

// ReferenceCount returns the number of ownership units held on s, 0 for
// nil and error scaled fonts.
func (s *ScaledFont) ReferenceCount() int {
	if s == nil || s.refs.invalid() {
		return 0
	}
	return int(s.refs.get())
}

// Status returns the sticky error state of s. A nil font reports
// StatusNullPointer.
func (s *ScaledFont) Status() Status {
	if s == nil {
		return StatusNullPointer
	}
	s.copyCheck()
	return Status(s.status.Load())
}

// Err returns the status of s as an error, nil when s is usable.
func (s *ScaledFont) Err() error {
	return s.Status().Err()
}

func (s *ScaledFont) setError(st Status) {
	s.status.CompareAndSwap(int32(StatusSuccess), int32(st))
}

// Type returns the backend type of the font face.
func (s *ScaledFont) Type() FontType {
	return s.FontFace().Type()
}

// FontFace returns the face s was created from. The face is borrowed; call
// Reference to keep it past s. Error scaled fonts return the error face of
// their status.
func (s *ScaledFont) FontFace() *FontFace {
	if s == nil || s.face == nil {
		return errorFontFace(s.Status())
	}
	return s.face
}

// FontMatrix returns the font space to user space matrix.
func (s *ScaledFont) FontMatrix() Matrix {
	if s.Status() != StatusSuccess {
		return Identity()
	}
	return s.font
}

// CTM returns the user space to device space matrix.
func (s *ScaledFont) CTM() Matrix {
	if s.Status() != StatusSuccess {
		return Identity()
	}
	return s.ctm
}

// ScaleMatrix returns the font space to device space matrix, CTM × FontMatrix.
func (s *ScaledFont) ScaleMatrix() Matrix {
	if s.Status() != StatusSuccess {
		return Identity()
	}
	return s.scale
}

// FontOptions copies the options of s into dst. dst must be a usable
// options handle. On an error scaled font dst is reset to defaults.
func (s *ScaledFont) FontOptions(dst *FontOptions) {
	if !dst.writable() {
		return
	}
	if s.Status() != StatusSuccess {
		fresh := FontOptions{}
		fresh.copyInto(dst)
		return
	}
	s.options.copyInto(dst)
}

// SetUserData attaches data to s under key. destroy, if not nil, is called
// with data when it is replaced or removed, or when the last reference to s
// is released.
func (s *ScaledFont) SetUserData(key *UserDataKey, data any, destroy DestroyFunc) error {
	if st := s.Status(); s == nil || s.refs.invalid() {
		return st
	}
	return s.userData.set(key, data, destroy)
}

// UserData returns the value attached to s under key.
func (s *ScaledFont) UserData(key *UserDataKey) (any, bool) {
	if s == nil {
		return nil, false
	}
	s.copyCheck()
	return s.userData.get(key)
}

// Extents returns the font extents in user space.
func (s *ScaledFont) Extents() FontExtents {
	if s.Status() != StatusSuccess {
		return FontExtents{}
	}
	s.extentsOnce.Do(func() {
		m := s.file.Metrics(s.ppem, s.hinting)
		if s.round {
			m.Ascent = math.Round(m.Ascent)
			m.Descent = math.Round(m.Descent)
			m.Height = math.Round(m.Height)
			m.MaxAdvance = math.Round(m.MaxAdvance)
		}
		sx, sy := s.font.basisScale()
		s.extents = FontExtents{
			Ascent:      m.Ascent / s.ppem * sy,
			Descent:     m.Descent / s.ppem * sy,
			Height:      m.Height / s.ppem * sy,
			MaxXAdvance: m.MaxAdvance / s.ppem * sx,
		}
	})
	return s.extents
}

// TextExtents measures text shaped with s. The ink box covers every glyph
// outline; the advance is where the next string would start. Text that is
// not valid UTF-8 records StatusInvalidString.
func (s *ScaledFont) TextExtents(text string) TextExtents {
	if s.Status() != StatusSuccess {
		return TextExtents{}
	}
	if !utf8.ValidString(text) {
		s.setError(StatusInvalidString)
		return TextExtents{}
	}
	if text == "" {
		return TextExtents{}
	}

	glyphs := s.file.Shape(text, s.ppem, fontfile.ParagraphDirection(text), s.axes)

	// Shaped space is pixels at ppem with y down.
	// g.X carries the unrounded pen position; only its offset is kept.
	var ink fontfile.Rect
	pen, shaped := 0.0, 0.0
	for _, g := range glyphs {
		adv := g.Advance
		if s.round {
			adv = math.Round(adv)
		}
		b := s.glyphBounds(g.GID)
		ink = ink.Union(b.Translate(pen+g.X-shaped, -g.Y))
		pen += adv
		shaped += g.Advance
	}

	toUser := s.font.linear().Multiply(Scale(1/s.ppem, 1/s.ppem))
	var ext TextExtents
	if !ink.Empty() {
		minX, minY, maxX, maxY := toUser.boundingBox(ink.MinX, ink.MinY, ink.MaxX, ink.MaxY)
		ext.XBearing, ext.YBearing = minX, minY
		ext.Width, ext.Height = maxX-minX, maxY-minY
	}
	ext.XAdvance, ext.YAdvance = toUser.TransformDistance(pen, 0)
	return ext
}

func (s *ScaledFont) glyphBounds(gid uint16) fontfile.Rect {
	return s.glyphs.GetOrCreate(gid, func() fontfile.Rect {
		return s.file.GlyphBounds(gid, s.ppem, s.hinting)
	})
}

func glyphHash(gid uint16) uint64 { return uint64(gid) }

// String describes the scaled font for diagnostics.
func (s *ScaledFont) String() string {
	if st := s.Status(); st != StatusSuccess {
		return fmt.Sprintf("ScaledFont(%v)", st)
	}
	var ctm string
	if !s.ctm.IsIdentity() {
		ctm = fmt.Sprintf(" ctm=[%g %g %g %g %g %g]", s.ctm.A, s.ctm.B, s.ctm.C, s.ctm.D, s.ctm.E, s.ctm.F)
	}
	return fmt.Sprintf("ScaledFont(%s %q ppem=%g%s refs=%d)", s.Type(), s.face.Name(), s.ppem, ctm, s.ReferenceCount())
}

// copyCheck panics if ScaledFont was copied by value.
func (s *ScaledFont) copyCheck() {
	if s.addr != s {
		panic("cairo: ScaledFont must not be copied by value, use Reference")
	}
}

var errorScaledFonts struct {
	mu sync.Mutex
	m  map[Status]*ScaledFont
}

// errorScaledFont returns the shared scaled font for status st.
func errorScaledFont(st Status) *ScaledFont {
	errorScaledFonts.mu.Lock()
	defer errorScaledFonts.mu.Unlock()

	if s, ok := errorScaledFonts.m[st]; ok {
		return s
	}
	if errorScaledFonts.m == nil {
		errorScaledFonts.m = make(map[Status]*ScaledFont)
	}
	s := &ScaledFont{}
	s.addr = s
	s.refs.init(referenceCountInvalid)
	s.status.Store(int32(st))
	errorScaledFonts.m[st] = s
	return s
}

// resetScaledFontMap forgets every cached scaled font and finalizes the
// released ones. Fonts the caller still owns stay valid.
func resetScaledFontMap() {
	m := &scaledFonts
	m.mu.Lock()
	m.live = make(map[scaledFontKey][]*ScaledFont)
	holdovers := m.holdovers
	m.holdovers = newScaledFontHoldovers()
	m.mu.Unlock()

	holdovers.Drain()
}
