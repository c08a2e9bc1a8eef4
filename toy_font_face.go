package cairo

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/cairo/internal/fault"
	"github.com/gogpu/cairo/internal/fontfile"
)

// toyKey identifies a toy face. Family names compare exactly.
type toyKey struct {
	family string
	slant  FontSlant
	weight FontWeight
}

// toyFaces hash-conses toy faces: while a face for a key is alive,
// NewToyFontFace returns it again.
var toyFaces struct {
	mu sync.Mutex
	m  map[toyKey]*FontFace
}

// NewToyFontFace returns a face for a CSS2-like family name, slant and
// weight. Families registered with RegisterFontFamily take precedence;
// anything else resolves to the Go font family, with "monospace" and
// "mono" mapping to Go Mono.
//
// Invalid arguments return an error face: StatusInvalidString for a family
// that is not valid UTF-8, StatusInvalidSlant and StatusInvalidWeight for
// out of range enum values. Error faces need no Destroy.
func NewToyFontFace(family string, slant FontSlant, weight FontWeight) *FontFace {
	switch {
	case !utf8.ValidString(family):
		return errorFontFace(StatusInvalidString)
	case !slant.Valid():
		return errorFontFace(StatusInvalidSlant)
	case !weight.Valid():
		return errorFontFace(StatusInvalidWeight)
	}
	key := toyKey{family: family, slant: slant, weight: weight}

	toyFaces.mu.Lock()
	defer toyFaces.mu.Unlock()

	if f, ok := toyFaces.m[key]; ok {
		if f.Status() == StatusSuccess && !f.dead.Load() {
			f.refs.incFromZero()
			leaks.acquire("FontFace", f.id, 1)
			Logger().Debug("cairo: toy font face cache hit",
				slog.Uint64("id", f.id),
				slog.String("family", family))
			return f
		}
		// Faces in error stay valid for their owners but are not handed out.
		delete(toyFaces.m, key)
	}

	if fault.Fail() {
		return errorFontFace(StatusNoMemory)
	}
	f := newFontFace(&toyFace{key: key})
	if toyFaces.m == nil {
		toyFaces.m = make(map[toyKey]*FontFace)
	}
	toyFaces.m[key] = f
	leaks.acquire("FontFace", f.id, 1)
	Logger().Debug("cairo: toy font face created",
		slog.Uint64("id", f.id),
		slog.String("family", family),
		slog.String("slant", slant.String()),
		slog.String("weight", weight.String()))
	return f
}

// resetToyFontFaces empties the toy face table. Live faces stay valid.
func resetToyFontFaces() {
	toyFaces.mu.Lock()
	toyFaces.m = nil
	toyFaces.mu.Unlock()
}

// toyFace is the toy backend. The font is resolved on first use.
type toyFace struct {
	key toyKey

	once       sync.Once
	font       *fontfile.Font
	variations string
	err        error
}

func (t *toyFace) fontType() FontType { return FontTypeToy }

func (t *toyFace) resolve() (*fontfile.Font, string, error) {
	t.once.Do(func() {
		if face := lookupFontFamily(t.key); face != nil {
			t.font, t.variations, t.err = face.impl.resolve()
			face.unref()
			return
		}
		if !isGenericFamily(t.key.family) {
			Logger().Warn("cairo: toy font family not registered, using Go fonts",
				slog.String("family", t.key.family))
		}
		t.font, t.err = goFont(isMonospace(t.key.family), t.key.slant != FontSlantNormal, t.key.weight == FontWeightBold)
	})
	return t.font, t.variations, t.err
}

func (t *toyFace) release(f *FontFace) bool {
	toyFaces.mu.Lock()
	defer toyFaces.mu.Unlock()

	// A lookup may have revived the face between the decrement and the lock.
	if f.refs.get() != 0 || !f.dead.CompareAndSwap(false, true) {
		return false
	}
	if toyFaces.m[t.key] == f {
		delete(toyFaces.m, t.key)
	}
	return true
}

var genericFamilies = map[string]bool{
	"":           true,
	"sans":       true,
	"sans-serif": true,
	"serif":      true,
	"cursive":    true,
	"fantasy":    true,
	"system-ui":  true,
	"monospace":  true,
	"mono":       true,
	"go":         true,
	"go mono":    true,
}

func isGenericFamily(family string) bool {
	return genericFamilies[strings.ToLower(family)]
}

func isMonospace(family string) bool {
	switch strings.ToLower(family) {
	case "monospace", "mono", "go mono", "courier", "courier new":
		return true
	}
	return false
}

// goFontData indexes the Go fonts by [mono][italic][bold].
var goFontData = [2][2][2][]byte{
	{{goregular.TTF, gobold.TTF}, {goitalic.TTF, gobolditalic.TTF}},
	{{gomono.TTF, gomonobold.TTF}, {gomonoitalic.TTF, gomonobolditalic.TTF}},
}

var goFonts struct {
	mu     sync.Mutex
	parsed [2][2][2]*fontfile.Font
}

// goFont returns the parsed Go font for the style. Each font is parsed once.
func goFont(mono, italic, bold bool) (*fontfile.Font, error) {
	m, i, b := btoi(mono), btoi(italic), btoi(bold)

	goFonts.mu.Lock()
	defer goFonts.mu.Unlock()

	if f := goFonts.parsed[m][i][b]; f != nil {
		return f, nil
	}
	f, err := fontfile.Parse(goFontData[m][i][b])
	if err != nil {
		return nil, fmt.Errorf("cairo: go font: %w", err)
	}
	goFonts.parsed[m][i][b] = f
	return f, nil
}

func btoi(v bool) int {
	if v {
		return 1
	}
	return 0
}
