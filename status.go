package cairo

// Status is the error state of a cairo handle or operation.
//
// The numeric values match cairo_status_t. Status implements error so a
// sticky handle status can be returned or wrapped directly; StatusSuccess
// should never be used as an error value, call Err instead.
type Status int

const (
	StatusSuccess Status = iota
	StatusNoMemory
	StatusInvalidRestore
	StatusInvalidPopGroup
	StatusNoCurrentPoint
	StatusInvalidMatrix
	StatusInvalidStatus
	StatusNullPointer
	StatusInvalidString
	StatusInvalidPathData
	StatusReadError
	StatusWriteError
	StatusSurfaceFinished
	StatusSurfaceTypeMismatch
	StatusPatternTypeMismatch
	StatusInvalidContent
	StatusInvalidFormat
	StatusInvalidVisual
	StatusFileNotFound
	StatusInvalidDash
	StatusInvalidDSCComment
	StatusInvalidIndex
	StatusClipNotRepresentable
	StatusTempFileError
	StatusInvalidStride
	StatusFontTypeMismatch
	StatusUserFontImmutable
	StatusUserFontError
	StatusNegativeCount
	StatusInvalidClusters
	StatusInvalidSlant
	StatusInvalidWeight
	StatusInvalidSize
	StatusUserFontNotImplemented
	StatusDeviceTypeMismatch
	StatusDeviceError
	StatusInvalidMeshConstruction
	StatusDeviceFinished
	StatusJBIG2GlobalMissing
	StatusPNGError
	StatusFreetypeError
	StatusWin32GDIError
	StatusTagError
	StatusDWriteError
	StatusSVGFontError

	// StatusLastStatus is one past the last valid status.
	StatusLastStatus
)

// ErrNoMemory is the allocation failure reported by constructors,
// Copy and SetUserData. It compares equal to StatusNoMemory.
var ErrNoMemory error = StatusNoMemory

var statusMessages = [...]string{
	StatusSuccess:                 "no error has occurred",
	StatusNoMemory:                "out of memory",
	StatusInvalidRestore:          "cairo_restore() without matching cairo_save()",
	StatusInvalidPopGroup:         "no saved group to pop, i.e. cairo_pop_group() without matching cairo_push_group()",
	StatusNoCurrentPoint:          "no current point",
	StatusInvalidMatrix:           "invalid matrix (not invertible)",
	StatusInvalidStatus:           "invalid value for an input cairo_status_t",
	StatusNullPointer:             "NULL pointer",
	StatusInvalidString:           "input string not valid UTF-8",
	StatusInvalidPathData:         "input path data not valid",
	StatusReadError:               "error while reading from input stream",
	StatusWriteError:              "error while writing to output stream",
	StatusSurfaceFinished:         "the target surface has been finished",
	StatusSurfaceTypeMismatch:     "the surface type is not appropriate for the operation",
	StatusPatternTypeMismatch:     "the pattern type is not appropriate for the operation",
	StatusInvalidContent:          "invalid value for an input cairo_content_t",
	StatusInvalidFormat:           "invalid value for an input cairo_format_t",
	StatusInvalidVisual:           "invalid value for an input Visual*",
	StatusFileNotFound:            "file not found",
	StatusInvalidDash:             "invalid value for a dash setting",
	StatusInvalidDSCComment:       "invalid value for a DSC comment",
	StatusInvalidIndex:            "invalid index passed to getter",
	StatusClipNotRepresentable:    "clip region not representable in desired format",
	StatusTempFileError:           "error creating or writing to a temporary file",
	StatusInvalidStride:           "invalid value for stride",
	StatusFontTypeMismatch:        "the font type is not appropriate for the operation",
	StatusUserFontImmutable:       "the user-font is immutable",
	StatusUserFontError:           "error occurred in a user-font callback function",
	StatusNegativeCount:           "negative number used where it is not allowed",
	StatusInvalidClusters:         "input clusters do not represent the accompanying text and glyph arrays",
	StatusInvalidSlant:            "invalid value for an input cairo_font_slant_t",
	StatusInvalidWeight:           "invalid value for an input cairo_font_weight_t",
	StatusInvalidSize:             "invalid value (typically too big) for the size of the input (surface, pattern, etc.)",
	StatusUserFontNotImplemented:  "user-font method not implemented",
	StatusDeviceTypeMismatch:      "the device type is not appropriate for the operation",
	StatusDeviceError:             "an operation to the device caused an unspecified error",
	StatusInvalidMeshConstruction: "invalid operation during mesh pattern construction",
	StatusDeviceFinished:          "the target device has been finished",
	StatusJBIG2GlobalMissing:      "CAIRO_MIME_TYPE_JBIG2 used but no CAIRO_MIME_TYPE_JBIG2_GLOBAL data provided",
	StatusPNGError:                "error occurred in libpng while reading from or writing to a PNG file",
	StatusFreetypeError:           "error occurred in libfreetype",
	StatusWin32GDIError:           "error occurred in the Windows Graphics Device Interface",
	StatusTagError:                "invalid tag name, attributes, or nesting",
	StatusDWriteError:             "Window Direct Write error",
	StatusSVGFontError:            "error occurred while rendering an OpenType-SVG font",
}

// String returns the human readable description of the status.
func (s Status) String() string {
	if s < 0 || int(s) >= len(statusMessages) {
		return "<unknown error status>"
	}
	return statusMessages[s]
}

// Error implements error.
func (s Status) Error() string {
	return "cairo: " + s.String()
}

// Err returns nil for StatusSuccess and s otherwise.
func (s Status) Err() error {
	if s == StatusSuccess {
		return nil
	}
	return s
}

// IsError reports whether s is anything other than StatusSuccess.
func (s Status) IsError() bool {
	return s != StatusSuccess
}
