package cairo

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/gogpu/cairo/internal/fault"
)

func newTestScaledFont(t *testing.T, face *FontFace, size float64, opts *FontOptions) *ScaledFont {
	t.Helper()
	s := NewScaledFont(face, Scale(size, size), Identity(), opts)
	if err := s.Err(); err != nil {
		t.Fatalf("NewScaledFont() failed: %v", err)
	}
	t.Cleanup(s.Destroy)
	return s
}

func TestNewScaledFont(t *testing.T) {
	face := newTestFace(t)
	opts := newTestOptions(t)

	s := NewScaledFont(face, Scale(12, 12), Scale(2, 2), opts)
	defer s.Destroy()

	if s.Status() != StatusSuccess {
		t.Fatalf("Status() = %v", s.Status())
	}
	if s.ReferenceCount() != 1 {
		t.Errorf("ReferenceCount() = %d, want 1", s.ReferenceCount())
	}
	if s.FontFace() != face {
		t.Error("FontFace() is not the creating face")
	}
	if face.ReferenceCount() != 2 {
		t.Errorf("face ReferenceCount() = %d, want the scaled font to hold one", face.ReferenceCount())
	}
	if s.Type() != FontTypeFT {
		t.Errorf("Type() = %v, want ft", s.Type())
	}
	if diff := cmp.Diff(Scale(12, 12), s.FontMatrix()); diff != "" {
		t.Errorf("FontMatrix() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Scale(2, 2), s.CTM()); diff != "" {
		t.Errorf("CTM() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Scale(24, 24), s.ScaleMatrix()); diff != "" {
		t.Errorf("ScaleMatrix() mismatch (-want +got):\n%s", diff)
	}
}

func TestNewScaledFontErrors(t *testing.T) {
	face := newTestFace(t)
	opts := newTestOptions(t)
	bad := newTestOptions(t)
	bad.SetVariations("\xff")

	tests := []struct {
		name    string
		face    *FontFace
		font    Matrix
		ctm     Matrix
		options *FontOptions
		want    Status
	}{
		{"nil face", nil, Scale(12, 12), Identity(), opts, StatusNullPointer},
		{"error face", errorFontFace(StatusInvalidSlant), Scale(12, 12), Identity(), opts, StatusInvalidSlant},
		{"nil options", face, Scale(12, 12), Identity(), nil, StatusNullPointer},
		{"errored options", face, Scale(12, 12), Identity(), bad, StatusInvalidString},
		{"singular font matrix", face, Scale(0, 12), Identity(), opts, StatusInvalidMatrix},
		{"singular ctm", face, Scale(12, 12), Scale(1, 0), opts, StatusInvalidMatrix},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScaledFont(tt.face, tt.font, tt.ctm, tt.options)
			if s.Status() != tt.want {
				t.Errorf("Status() = %v, want %v", s.Status(), tt.want)
			}
			if s.ReferenceCount() != 0 {
				t.Errorf("error scaled font ReferenceCount() = %d, want 0", s.ReferenceCount())
			}
			if s.FontFace().Status() != tt.want {
				t.Errorf("FontFace().Status() = %v, want %v", s.FontFace().Status(), tt.want)
			}
			if (s.Extents() != FontExtents{}) {
				t.Error("error scaled font reported extents")
			}
			s.Destroy()
		})
	}
}

func TestNewScaledFontAllocationFailure(t *testing.T) {
	face := newTestFace(t)
	opts := newTestOptions(t)

	t.Cleanup(fault.Reset)
	fault.Inject(1)
	s := NewScaledFont(face, Scale(31, 31), Identity(), opts)
	if s.Status() != StatusNoMemory {
		t.Errorf("Status() = %v, want StatusNoMemory", s.Status())
	}
	if face.ReferenceCount() != 1 {
		t.Errorf("failed creation kept a face reference: %d", face.ReferenceCount())
	}
}

func TestScaledFontCache(t *testing.T) {
	face := newTestFace(t)
	opts := newTestOptions(t)
	opts.SetHintStyle(HintStyleSlight)

	a := newTestScaledFont(t, face, 12, opts)

	equal, err := opts.Copy()
	if err != nil {
		t.Fatal(err)
	}
	defer equal.Destroy()
	b := NewScaledFont(face, Scale(12, 12), Identity(), equal)
	defer b.Destroy()
	if a != b {
		t.Fatal("equal requests returned different scaled fonts")
	}
	if a.ReferenceCount() != 2 {
		t.Errorf("ReferenceCount() = %d, want 2", a.ReferenceCount())
	}

	other := newTestOptions(t)
	other.SetAntialias(AntialiasNone)
	c := NewScaledFont(face, Scale(12, 12), Identity(), other)
	defer c.Destroy()
	if c == a {
		t.Error("different options shared a scaled font")
	}

	d := NewScaledFont(face, Scale(14, 14), Identity(), opts)
	defer d.Destroy()
	if d == a {
		t.Error("different font matrix shared a scaled font")
	}
}

func TestScaledFontHoldover(t *testing.T) {
	face := newTestFace(t)
	opts := newTestOptions(t)

	s := NewScaledFont(face, Scale(17, 17), Identity(), opts)
	var key UserDataKey
	destroyed := 0
	if err := s.SetUserData(&key, "cached glyphs", func(any) { destroyed++ }); err != nil {
		t.Fatal(err)
	}
	s.Destroy()

	if destroyed != 1 {
		t.Errorf("user data destroyed %d times on last Destroy, want 1", destroyed)
	}
	if s.ReferenceCount() != 0 {
		t.Errorf("ReferenceCount() = %d, want 0", s.ReferenceCount())
	}
	if face.ReferenceCount() != 2 {
		t.Errorf("held over font dropped its face: %d", face.ReferenceCount())
	}

	again := NewScaledFont(face, Scale(17, 17), Identity(), opts)
	defer again.Destroy()
	if again != s {
		t.Fatal("released font was not resurrected")
	}
	if again.ReferenceCount() != 1 {
		t.Errorf("ReferenceCount() = %d, want 1", again.ReferenceCount())
	}
	if _, ok := again.UserData(&key); ok {
		t.Error("resurrected font kept user data")
	}
}

func TestScaledFontResetReleasesFaces(t *testing.T) {
	face := newTestFace(t)
	opts := newTestOptions(t)

	NewScaledFont(face, Scale(19, 19), Identity(), opts).Destroy()
	if face.ReferenceCount() != 2 {
		t.Fatalf("face ReferenceCount() = %d, want 2 while held over", face.ReferenceCount())
	}
	resetScaledFontMap()
	if face.ReferenceCount() != 1 {
		t.Errorf("face ReferenceCount() = %d after reset, want 1", face.ReferenceCount())
	}
}

func TestScaledFontKeepsFaceAlive(t *testing.T) {
	face, err := NewFontFaceForData(gomono.TTF)
	if err != nil {
		t.Fatal(err)
	}
	opts := newTestOptions(t)
	s := newTestScaledFont(t, face, 12, opts)

	face.Destroy()
	if face.ReferenceCount() != 1 {
		t.Fatalf("face ReferenceCount() = %d, want 1", face.ReferenceCount())
	}
	if s.FontFace().Name() != "Go Mono" {
		t.Errorf("face unusable after owner Destroy: %q", s.FontFace().Name())
	}
}

func TestScaledFontOptions(t *testing.T) {
	face := newTestFace(t)
	opts := newTestOptions(t)
	opts.SetAntialias(AntialiasSubpixel)
	opts.SetSubpixelOrder(SubpixelOrderBGR)
	opts.SetVariations("wght=600")

	s := newTestScaledFont(t, face, 12, opts)
	opts.SetAntialias(AntialiasNone)

	got := newTestOptions(t)
	s.FontOptions(got)
	if got.Antialias() != AntialiasSubpixel || got.SubpixelOrder() != SubpixelOrderBGR || got.Variations() != "wght=600" {
		t.Errorf("FontOptions() = %v", got)
	}
}

func TestScaledFontExtents(t *testing.T) {
	face := newTestFace(t)
	opts := newTestOptions(t)
	opts.SetHintStyle(HintStyleNone)
	opts.SetHintMetrics(HintMetricsOff)

	small := newTestScaledFont(t, face, 12, opts)
	large := newTestScaledFont(t, face, 24, opts)

	e := small.Extents()
	if e.Ascent <= 0 || e.Descent <= 0 || e.Height < e.Ascent || e.MaxXAdvance <= 0 {
		t.Fatalf("Extents() = %+v", e)
	}
	if e.MaxYAdvance != 0 {
		t.Errorf("MaxYAdvance = %v, want 0", e.MaxYAdvance)
	}

	l := large.Extents()
	approx := cmpopts.EquateApprox(0, 0.1)
	want := FontExtents{Ascent: 2 * e.Ascent, Descent: 2 * e.Descent, Height: 2 * e.Height, MaxXAdvance: 2 * e.MaxXAdvance}
	if diff := cmp.Diff(want, l, approx); diff != "" {
		t.Errorf("24px extents are not twice 12px (-want +got):\n%s", diff)
	}
}

func TestScaledFontExtentsCTMInvariant(t *testing.T) {
	face := newTestFace(t)
	opts := newTestOptions(t)
	opts.SetHintStyle(HintStyleNone)
	opts.SetHintMetrics(HintMetricsOff)

	user := newTestScaledFont(t, face, 10, opts)
	zoomed := NewScaledFont(face, Scale(10, 10), Scale(3, 3), opts)
	defer zoomed.Destroy()

	approx := cmpopts.EquateApprox(0, 0.1)
	if diff := cmp.Diff(user.Extents(), zoomed.Extents(), approx); diff != "" {
		t.Errorf("user space extents depend on the CTM (-user +zoomed):\n%s", diff)
	}
}

func TestScaledFontTextExtents(t *testing.T) {
	face, err := NewFontFaceForData(gomono.TTF)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(face.Destroy)
	opts := newTestOptions(t)
	opts.SetHintMetrics(HintMetricsOff)

	s := newTestScaledFont(t, face, 16, opts)

	one := s.TextExtents("a")
	four := s.TextExtents("abcd")
	if one.XAdvance <= 0 || one.YAdvance != 0 {
		t.Fatalf("TextExtents(a) = %+v", one)
	}
	if math.Abs(four.XAdvance-4*one.XAdvance) > 1e-6 {
		t.Errorf("monospace advance of 4 glyphs = %v, want %v", four.XAdvance, 4*one.XAdvance)
	}
	if one.Width <= 0 || one.Height <= 0 || one.YBearing >= 0 {
		t.Errorf("ink box of a = %+v, want a box above the baseline", one)
	}
	if four.Width <= one.Width {
		t.Errorf("ink width did not grow: %v <= %v", four.Width, one.Width)
	}

	if got := s.TextExtents(""); got != (TextExtents{}) {
		t.Errorf("TextExtents(\"\") = %+v, want zero", got)
	}
	space := s.TextExtents(" ")
	if space.Width != 0 || space.XAdvance <= 0 {
		t.Errorf("TextExtents(space) = %+v, want advance without ink", space)
	}
}

func TestScaledFontTextExtentsHintMetrics(t *testing.T) {
	face := newTestFace(t)
	opts := newTestOptions(t)
	opts.SetHintMetrics(HintMetricsOn)

	s := newTestScaledFont(t, face, 13, opts)
	adv := s.TextExtents("Hello, world").XAdvance
	if math.Abs(adv-math.Round(adv)) > 1e-9 {
		t.Errorf("hinted advance %v is not whole pixels", adv)
	}
}

func TestScaledFontTextExtentsRotated(t *testing.T) {
	face := newTestFace(t)
	opts := newTestOptions(t)
	opts.SetHintMetrics(HintMetricsOff)

	upright := newTestScaledFont(t, face, 12, opts)
	rotated := NewScaledFont(face, Rotate(math.Pi/2).Multiply(Scale(12, 12)), Identity(), opts)
	defer rotated.Destroy()

	u := upright.TextExtents("go")
	r := rotated.TextExtents("go")
	if math.Abs(r.XAdvance) > 1e-6 || math.Abs(r.YAdvance-u.XAdvance) > 0.1 {
		t.Errorf("rotated advance = (%v, %v), want (0, %v)", r.XAdvance, r.YAdvance, u.XAdvance)
	}
}

func TestScaledFontTextExtentsInvalidString(t *testing.T) {
	face := newTestFace(t)
	opts := newTestOptions(t)

	s := NewScaledFont(face, Scale(23, 23), Identity(), opts)
	defer s.Destroy()
	if got := s.TextExtents("ok\xff"); got != (TextExtents{}) {
		t.Errorf("TextExtents(invalid) = %+v, want zero", got)
	}
	if s.Status() != StatusInvalidString {
		t.Fatalf("Status() = %v, want StatusInvalidString", s.Status())
	}

	fresh := NewScaledFont(face, Scale(23, 23), Identity(), opts)
	defer fresh.Destroy()
	if fresh == s {
		t.Error("errored scaled font was shared")
	}
	if fresh.Status() != StatusSuccess {
		t.Errorf("fresh Status() = %v", fresh.Status())
	}
}

func TestScaledFontUserData(t *testing.T) {
	face := newTestFace(t)
	opts := newTestOptions(t)
	s := newTestScaledFont(t, face, 12, opts)

	var key UserDataKey
	if err := s.SetUserData(&key, 7, nil); err != nil {
		t.Fatal(err)
	}
	if v, ok := s.UserData(&key); !ok || v != 7 {
		t.Errorf("UserData() = %v, %v", v, ok)
	}

	bad := errorScaledFont(StatusInvalidMatrix)
	if err := bad.SetUserData(&key, 1, nil); !errors.Is(err, StatusInvalidMatrix) {
		t.Errorf("SetUserData() on error font = %v", err)
	}
}

func TestScaledFontConcurrent(t *testing.T) {
	face := newTestFace(t)
	opts := newTestOptions(t)
	keep := newTestScaledFont(t, face, 11, opts)

	var wg sync.WaitGroup
	const goroutines = 16
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				s := NewScaledFont(face, Scale(11, 11), Identity(), opts)
				if s != keep {
					t.Error("concurrent lookup missed the live font")
				}
				_ = s.TextExtents("concurrent")
				s.Destroy()
			}
		}()
	}
	wg.Wait()

	if keep.ReferenceCount() != 1 {
		t.Errorf("ReferenceCount() = %d after balanced lookups, want 1", keep.ReferenceCount())
	}
}

func TestScaledFontGlyphCache(t *testing.T) {
	face := newTestFace(t)
	opts := newTestOptions(t)
	s := NewScaledFont(face, Scale(21, 21), Identity(), opts)
	defer s.Destroy()

	first := s.TextExtents("aaa")
	st := s.glyphs.Stats()
	if st.Misses != 1 || st.Hits != 2 {
		t.Errorf("glyph cache stats = %+v, want 1 miss and 2 hits", st)
	}
	if again := s.TextExtents("aaa"); again != first {
		t.Errorf("cached extents differ: %+v != %+v", again, first)
	}
}

func TestScaledFontFinalizeClearsGlyphs(t *testing.T) {
	face := newTestFace(t)
	opts := newTestOptions(t)

	s := NewScaledFont(face, Scale(23, 23), Identity(), opts)
	s.TextExtents("glyphs")
	if s.glyphs.Len() == 0 {
		t.Fatal("TextExtents() cached no glyph bounds")
	}
	s.Destroy()
	if s.glyphs.Len() == 0 {
		t.Fatal("held over font dropped its glyph cache")
	}

	resetScaledFontMap()
	if n := s.glyphs.Len(); n != 0 {
		t.Errorf("glyph cache holds %d entries after finalize, want 0", n)
	}
}

func TestScaledFontString(t *testing.T) {
	face := newTestFace(t)
	opts := newTestOptions(t)

	tests := []struct {
		name string
		ctm  Matrix
		want string
	}{
		{"identity", Identity(), `ScaledFont(ft "Go" ppem=12 refs=1)`},
		{"scaled", Scale(2, 2), `ScaledFont(ft "Go" ppem=24 ctm=[2 0 0 0 2 0] refs=1)`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScaledFont(face, Scale(12, 12), tt.ctm, opts)
			defer s.Destroy()
			if got := s.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
	if got := errorScaledFont(StatusInvalidMatrix).String(); got != "ScaledFont("+StatusInvalidMatrix.Error()+")" {
		t.Errorf("error font String() = %q", got)
	}
}
