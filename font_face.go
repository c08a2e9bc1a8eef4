package cairo

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/cairo/internal/fault"
	"github.com/gogpu/cairo/internal/fontfile"
)

// faceImpl is the backend behind a FontFace.
type faceImpl interface {
	fontType() FontType
	// resolve returns the font file the face draws with.
	resolve() (*fontfile.Font, string, error)
	// release runs under the last Destroy. It returns false when the face was
	// revived by a concurrent lookup and must stay alive.
	release(f *FontFace) bool
}

// FontFace is a reference-counted font face handle: a font family, slant and
// weight without a size. Create one with NewToyFontFace, NewFontFaceForData
// or NewFontFaceFromFile and pair every New and Reference with one Destroy.
//
// FontFace is safe for concurrent use. It must not be copied by value.
type FontFace struct {
	// addr is used for copy protection. It must point to the FontFace itself.
	addr *FontFace
	id   uint64

	refs   refCount
	dead   atomic.Bool
	status atomic.Int32

	userData userDataArray
	impl     faceImpl
}

func newFontFace(impl faceImpl) *FontFace {
	f := &FontFace{id: nextHandleID(), impl: impl}
	f.addr = f
	f.refs.init(1)
	watch(f, "FontFace", f.id)
	return f
}

// NewFontFaceForData creates a font face from TrueType or OpenType data.
// The data is copied. The face reports FontTypeFT.
func NewFontFaceForData(data []byte, opts ...FaceOption) (*FontFace, error) {
	if fault.Fail() {
		return nil, ErrNoMemory
	}
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	font, err := fontfile.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("cairo: font face: %w", err)
	}
	return newDataFontFace(font, opts), nil
}

// NewFontFaceFromFile creates a font face from a font file. A missing file
// reports StatusFileNotFound, an empty one ErrEmptyFontData.
func NewFontFaceFromFile(path string, opts ...FaceOption) (*FontFace, error) {
	if fault.Fail() {
		return nil, ErrNoMemory
	}

	font, err := fontfile.ParseFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("cairo: font face %s: %w: %w", path, StatusFileNotFound, err)
	case errors.Is(err, fontfile.ErrEmptyFontData):
		return nil, fmt.Errorf("cairo: font face %s: %w", path, ErrEmptyFontData)
	case err != nil:
		return nil, fmt.Errorf("cairo: font face %s: %w", path, err)
	}
	return newDataFontFace(font, opts), nil
}

// newDataFontFace wraps a parsed font. It must be called directly from the
// public constructor so the leak tracker records the right caller.
func newDataFontFace(font *fontfile.Font, opts []FaceOption) *FontFace {
	cfg := defaultFaceConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	name := cfg.name
	if name == "" {
		name = font.Name()
	}

	f := newFontFace(&dataFace{font: font, name: name, variations: cfg.variations})
	leaks.acquire("FontFace", f.id, 2)
	Logger().Debug("cairo: font face created",
		slog.Uint64("id", f.id),
		slog.String("name", name),
		slog.Int("glyphs", font.NumGlyphs()),
		slog.Int("units_per_em", font.UnitsPerEm()))
	return f
}

// Reference adds one ownership unit and returns f. Reference on an error
// face returns it unchanged.
func (f *FontFace) Reference() *FontFace {
	if f == nil || f.refs.invalid() {
		return f
	}
	f.copyCheck()
	f.refs.inc()
	leaks.acquire("FontFace", f.id, 1)
	return f
}

// Destroy releases one ownership unit. The face is finalized, and its user
// data destroyed, when the last unit is released. Destroy on nil or on an
// error face is a no-op.
func (f *FontFace) Destroy() {
	if f == nil || f.refs.invalid() {
		return
	}
	f.copyCheck()
	leaks.release(f.id)
	f.unref()
}

// Close calls Destroy. It lets a face be released with defer or handed to
// code that manages io.Closer values.
func (f *FontFace) Close() error {
	f.Destroy()
	return nil
}

// ref adds an internal unit that the leak tracker does not record. Scaled
// fonts and the family registry hold their faces this way.
func (f *FontFace) ref() {
	if f.refs.invalid() {
		return
	}
	f.refs.inc()
}

func (f *FontFace) unref() {
	if f.refs.invalid() || !f.refs.dec() {
		return
	}
	if f.impl.release(f) {
		f.finalize()
	}
}

func (f *FontFace) finalize() {
	leaks.forget(f.id)
	f.userData.fini()
	Logger().Debug("cairo: font face finalized",
		slog.Uint64("id", f.id),
		slog.String("type", f.impl.fontType().String()))
}

// ReferenceCount returns the number of ownership units held on f, 0 for
// nil and error faces.
func (f *FontFace) ReferenceCount() int {
	if f == nil || f.refs.invalid() {
		return 0
	}
	return int(f.refs.get())
}

// Status returns the sticky error state of f. A nil face reports
// StatusNullPointer.
func (f *FontFace) Status() Status {
	if f == nil {
		return StatusNullPointer
	}
	f.copyCheck()
	return Status(f.status.Load())
}

// Err returns the status of f as an error, nil when f is usable.
func (f *FontFace) Err() error {
	return f.Status().Err()
}

// setError records the first error only.
func (f *FontFace) setError(s Status) {
	f.status.CompareAndSwap(int32(StatusSuccess), int32(s))
}

// Type returns the backend of the face. Error faces report FontTypeToy.
func (f *FontFace) Type() FontType {
	if f == nil {
		return FontTypeToy
	}
	return f.impl.fontType()
}

// Name returns the family name of the face: the requested family for toy
// faces and the name table family (or WithFaceName) for font data faces.
func (f *FontFace) Name() string {
	if f.Status() != StatusSuccess {
		return ""
	}
	switch impl := f.impl.(type) {
	case *toyFace:
		return impl.key.family
	case *dataFace:
		return impl.name
	}
	return ""
}

// SetUserData attaches data to f under key. destroy, if not nil, is called
// with data when it is replaced or removed, or when f is finalized. A nil
// data removes the key. Error faces reject user data with their status.
func (f *FontFace) SetUserData(key *UserDataKey, data any, destroy DestroyFunc) error {
	if st := f.Status(); f == nil || f.refs.invalid() {
		return st
	}
	return f.userData.set(key, data, destroy)
}

// UserData returns the value attached to f under key.
func (f *FontFace) UserData(key *UserDataKey) (any, bool) {
	if f == nil {
		return nil, false
	}
	f.copyCheck()
	return f.userData.get(key)
}

// Family returns the family a toy face was created with. On other faces it
// records StatusFontTypeMismatch and returns "".
func (f *FontFace) Family() string {
	toy, ok := f.toy()
	if !ok {
		return ""
	}
	return toy.key.family
}

// Slant returns the slant a toy face was created with. On other faces it
// records StatusFontTypeMismatch and returns FontSlantNormal.
func (f *FontFace) Slant() FontSlant {
	toy, ok := f.toy()
	if !ok {
		return FontSlantNormal
	}
	return toy.key.slant
}

// Weight returns the weight a toy face was created with. On other faces it
// records StatusFontTypeMismatch and returns FontWeightNormal.
func (f *FontFace) Weight() FontWeight {
	toy, ok := f.toy()
	if !ok {
		return FontWeightNormal
	}
	return toy.key.weight
}

func (f *FontFace) toy() (*toyFace, bool) {
	if f.Status() != StatusSuccess {
		return nil, false
	}
	toy, ok := f.impl.(*toyFace)
	if !ok {
		f.setError(StatusFontTypeMismatch)
	}
	return toy, ok
}

// String describes the face for diagnostics.
func (f *FontFace) String() string {
	if st := f.Status(); st != StatusSuccess {
		return fmt.Sprintf("FontFace(%v)", st)
	}
	return fmt.Sprintf("FontFace(%s %q refs=%d)", f.Type(), f.Name(), f.ReferenceCount())
}

// copyCheck panics if FontFace was copied by value.
func (f *FontFace) copyCheck() {
	if f.addr != f {
		panic("cairo: FontFace must not be copied by value, use Reference")
	}
}

// dataFace is the font data backend.
type dataFace struct {
	font       *fontfile.Font
	name       string
	variations string
}

func (d *dataFace) fontType() FontType { return FontTypeFT }

func (d *dataFace) resolve() (*fontfile.Font, string, error) {
	return d.font, d.variations, nil
}

func (d *dataFace) release(f *FontFace) bool {
	return f.dead.CompareAndSwap(false, true)
}

// errorFace backs the shared error faces.
type errorFace struct{}

func (errorFace) fontType() FontType { return FontTypeToy }

func (errorFace) resolve() (*fontfile.Font, string, error) {
	return nil, "", StatusFontTypeMismatch
}

func (errorFace) release(*FontFace) bool { return false }

var errorFaces struct {
	mu sync.Mutex
	m  map[Status]*FontFace
}

// errorFontFace returns the shared face for status s. It is never counted
// or freed.
func errorFontFace(s Status) *FontFace {
	errorFaces.mu.Lock()
	defer errorFaces.mu.Unlock()

	if f, ok := errorFaces.m[s]; ok {
		return f
	}
	if errorFaces.m == nil {
		errorFaces.m = make(map[Status]*FontFace)
	}
	f := &FontFace{impl: errorFace{}}
	f.addr = f
	f.refs.init(referenceCountInvalid)
	f.status.Store(int32(s))
	errorFaces.m[s] = f
	return f
}
