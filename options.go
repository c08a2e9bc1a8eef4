package cairo

// FaceOption configures font face creation from font data.
// Use functional options to customize the face.
//
// Example:
//
//	face, err := cairo.NewFontFaceForData(data,
//	    cairo.WithFaceVariations("wght=700"),
//	    cairo.WithFaceName("Inter Bold"))
type FaceOption func(*faceConfig)

// faceConfig holds optional configuration for font data faces.
type faceConfig struct {
	variations string
	name       string
}

// defaultFaceConfig returns the default face configuration.
func defaultFaceConfig() faceConfig {
	return faceConfig{}
}

// WithFaceVariations sets axis settings the face applies before the
// variations of the font options used with it. The format is the one
// accepted by ParseVariations.
func WithFaceVariations(variations string) FaceOption {
	return func(c *faceConfig) {
		c.variations = variations
	}
}

// WithFaceName overrides the family name reported by the face. By default
// the name is read from the font's name table.
func WithFaceName(name string) FaceOption {
	return func(c *faceConfig) {
		c.name = name
	}
}
