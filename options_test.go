package cairo

import (
	"testing"
)

// TestDefaultFaceConfig tests that the default face config is empty.
func TestDefaultFaceConfig(t *testing.T) {
	cfg := defaultFaceConfig()
	if cfg.variations != "" || cfg.name != "" {
		t.Errorf("defaultFaceConfig() = %+v, want zero", cfg)
	}
}

// TestFaceOptions tests that options are applied in order.
func TestFaceOptions(t *testing.T) {
	cfg := defaultFaceConfig()
	for _, opt := range []FaceOption{
		WithFaceVariations("wght=100"),
		WithFaceName("First"),
		WithFaceVariations("wght=900"),
	} {
		opt(&cfg)
	}
	if cfg.variations != "wght=900" {
		t.Errorf("variations = %q, want the last option to win", cfg.variations)
	}
	if cfg.name != "First" {
		t.Errorf("name = %q, want First", cfg.name)
	}
}

// TestWithFaceVariationsReachScaledFont tests that face variations come
// before the options' variations.
func TestWithFaceVariationsReachScaledFont(t *testing.T) {
	face := newTestFace(t, WithFaceVariations("wght=300,wdth=90"))
	opts := newTestOptions(t)
	opts.SetVariations("wght=700")

	s := newTestScaledFont(t, face, 12, opts)
	if len(s.axes) != 2 {
		t.Fatalf("axes = %v, want wght and wdth", s.axes)
	}
	if s.axes[0].Tag != [4]byte{'w', 'g', 'h', 't'} || s.axes[0].Value != 700 {
		t.Errorf("axes[0] = %+v, want options to override wght", s.axes[0])
	}
	if s.axes[1].Value != 90 {
		t.Errorf("axes[1] = %+v, want the face's wdth", s.axes[1])
	}
}
