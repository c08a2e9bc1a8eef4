package cairo

import (
	"errors"
	"math"
	"testing"
)

const matrixEpsilon = 1e-9

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) < matrixEpsilon
}

func TestMatrixIdentity(t *testing.T) {
	m := Identity()
	if !m.IsIdentity() {
		t.Error("Identity().IsIdentity() = false")
	}
	x, y := m.TransformPoint(3, 4)
	if x != 3 || y != 4 {
		t.Errorf("Identity().TransformPoint(3, 4) = (%v, %v)", x, y)
	}
}

func TestMatrixTransform(t *testing.T) {
	tests := []struct {
		name   string
		m      Matrix
		x, y   float64
		wx, wy float64
	}{
		{"translate", Translate(10, 20), 1, 2, 11, 22},
		{"scale", Scale(2, 3), 1, 2, 2, 6},
		{"rotate 90", Rotate(math.Pi / 2), 1, 0, 0, 1},
		{"scale then translate", Translate(5, 5).Multiply(Scale(2, 2)), 1, 1, 7, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := tt.m.TransformPoint(tt.x, tt.y)
			if !nearlyEqual(x, tt.wx) || !nearlyEqual(y, tt.wy) {
				t.Errorf("TransformPoint(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, x, y, tt.wx, tt.wy)
			}
		})
	}

	dx, dy := Translate(100, 100).Multiply(Scale(2, 2)).TransformDistance(1, 1)
	if dx != 2 || dy != 2 {
		t.Errorf("TransformDistance ignored translation wrongly: (%v, %v)", dx, dy)
	}
}

func TestMatrixInvert(t *testing.T) {
	m := Translate(3, -7).Multiply(Rotate(0.3)).Multiply(Scale(2, 5))
	inv, err := m.Invert()
	if err != nil {
		t.Fatalf("Invert() error = %v", err)
	}
	p := m.Multiply(inv)
	want := Identity()
	for _, pair := range [][2]float64{{p.A, want.A}, {p.B, want.B}, {p.C, want.C}, {p.D, want.D}, {p.E, want.E}, {p.F, want.F}} {
		if !nearlyEqual(pair[0], pair[1]) {
			t.Fatalf("m * m^-1 = %+v, want identity", p)
		}
	}

	if _, err := Scale(0, 1).Invert(); !errors.Is(err, StatusInvalidMatrix) {
		t.Errorf("Scale(0, 1).Invert() error = %v, want StatusInvalidMatrix", err)
	}
	if Scale(math.NaN(), 1).Invertible() {
		t.Error("NaN matrix reported invertible")
	}
}

func TestMatrixUniformScale(t *testing.T) {
	if got := Scale(4, 9).uniformScale(); !nearlyEqual(got, 6) {
		t.Errorf("uniformScale() = %v, want 6", got)
	}
	if got := Rotate(1).Multiply(Scale(12, 12)).uniformScale(); !nearlyEqual(got, 12) {
		t.Errorf("rotated uniformScale() = %v, want 12", got)
	}
	if got := Translate(5, 5).linear(); !got.IsIdentity() {
		t.Errorf("linear() = %+v, want identity", got)
	}
}

func TestMatrixBoundingBox(t *testing.T) {
	minX, minY, maxX, maxY := Rotate(math.Pi/2).boundingBox(0, 0, 2, 1)
	if !nearlyEqual(minX, -1) || !nearlyEqual(minY, 0) || !nearlyEqual(maxX, 0) || !nearlyEqual(maxY, 2) {
		t.Errorf("boundingBox = (%v, %v, %v, %v), want (-1, 0, 0, 2)", minX, minY, maxX, maxY)
	}
	sx, sy := Scale(3, 4).basisScale()
	if sx != 3 || sy != 4 {
		t.Errorf("basisScale() = (%v, %v), want (3, 4)", sx, sy)
	}
}
