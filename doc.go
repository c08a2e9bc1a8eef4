// Package cairo provides the font object model of the cairo 2D graphics
// library in pure Go.
//
// # Overview
//
// The package mirrors cairo's font handles: FontOptions, FontFace and
// ScaledFont. Fonts are loaded with golang.org/x/image/font/opentype and
// shaped with github.com/go-text/typesetting, so no C library is needed.
// Enum encodings and status codes match cairo's, which keeps code ported
// from cairo readable.
//
// # Quick Start
//
//	import "github.com/gogpu/cairo"
//
//	face := cairo.NewToyFontFace("sans-serif", cairo.FontSlantNormal, cairo.FontWeightBold)
//	defer face.Destroy()
//
//	opts, err := cairo.NewFontOptions()
//	if err != nil {
//	    return err
//	}
//	defer opts.Destroy()
//	opts.SetHintStyle(cairo.HintStyleSlight)
//	opts.SetVariations("wght=650")
//
//	sf := cairo.NewScaledFont(face, cairo.Scale(16, 16), cairo.Identity(), opts)
//	defer sf.Destroy()
//	ext := sf.TextExtents("Hello")
//
// # Ownership
//
// Every New, Copy and Reference call hands the caller one ownership unit
// that must be returned with exactly one Destroy (or Close). FontFace and
// ScaledFont are shared and reference counted; FontOptions is a value-like
// handle duplicated with Copy. Handles must not be copied by value; doing so
// panics on next use.
//
// # Errors
//
// Handles carry a sticky Status: the first failed precondition is recorded
// and later calls on the handle become no-ops. Check Status or Err after a
// sequence of calls. Allocation failures are returned immediately as
// ErrNoMemory. Constructors returning only a handle report failures through
// shared error handles that need no Destroy.
//
// # Debugging
//
// Set CAIRO_DEBUG_LEAKS=1 or call SetLeakTracking to record where every
// outstanding unit was acquired, then call ReportLeaks at shutdown.
// DebugResetStaticData empties the package level caches.
package cairo

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0

	// VersionPrerelease is the prerelease identifier
	VersionPrerelease = ""
)
