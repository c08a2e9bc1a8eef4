package cairo

import (
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"
)

// families maps toy requests to registered faces. Keys use lower case
// family names.
var families struct {
	mu sync.Mutex
	m  map[toyKey]*FontFace
}

// RegisterFontFamily makes toy faces for family, slant and weight draw with
// face. Family names match case-insensitively. The registry holds its own
// reference to face; registering the same key again replaces the previous
// face. Toy faces that already resolved their font are not affected.
//
// Only font data faces can be registered.
func RegisterFontFamily(family string, slant FontSlant, weight FontWeight, face *FontFace) error {
	switch {
	case face == nil:
		return ErrNilFontFace
	case !utf8.ValidString(family):
		return StatusInvalidString
	case !slant.Valid():
		return StatusInvalidSlant
	case !weight.Valid():
		return StatusInvalidWeight
	}
	if err := face.Err(); err != nil {
		return err
	}
	if face.Type() == FontTypeToy {
		return &FontTypeMismatchError{Got: FontTypeToy, Want: FontTypeFT}
	}

	key := toyKey{family: strings.ToLower(family), slant: slant, weight: weight}
	face.ref()

	families.mu.Lock()
	if families.m == nil {
		families.m = make(map[toyKey]*FontFace)
	}
	old := families.m[key]
	families.m[key] = face
	families.mu.Unlock()

	if old != nil {
		old.unref()
	}
	Logger().Debug("cairo: font family registered",
		slog.String("family", family),
		slog.String("slant", slant.String()),
		slog.String("weight", weight.String()),
		slog.String("face", face.Name()))
	return nil
}

// lookupFontFamily returns the registered face for key with an internal
// reference the caller must drop with unref, or nil.
func lookupFontFamily(key toyKey) *FontFace {
	key.family = strings.ToLower(key.family)

	families.mu.Lock()
	defer families.mu.Unlock()

	face := families.m[key]
	if face == nil {
		return nil
	}
	face.ref()
	return face
}

// resetFontFamilies drops every registration.
func resetFontFamilies() {
	families.mu.Lock()
	m := families.m
	families.m = nil
	families.mu.Unlock()

	for _, face := range m {
		face.unref()
	}
}
