package cairo

import "errors"

// Sentinel errors for font face construction.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("cairo: empty font data")

	// ErrNilFontFace is returned when a nil face is registered.
	ErrNilFontFace = errors.New("cairo: font face is nil")
)

// FontTypeMismatchError is returned when an operation needs a face of a
// different backend.
type FontTypeMismatchError struct {
	Got  FontType
	Want FontType
}

func (e *FontTypeMismatchError) Error() string {
	return "cairo: font face is " + e.Got.String() + ", want " + e.Want.String()
}

// Unwrap lets errors.Is match StatusFontTypeMismatch.
func (e *FontTypeMismatchError) Unwrap() error {
	return StatusFontTypeMismatch
}
