package cairo

import "math"

// Matrix is a 2D affine transformation, used for font matrices and the
// current transformation matrix of scaled fonts.
// It uses a 2x3 matrix in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// This represents the transformation:
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
//
// In cairo_matrix_t terms A=xx, B=xy, C=x0, D=yx, E=yy, F=y0.
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{A: 1, E: 1}
}

// Translate creates a translation matrix.
func Translate(x, y float64) Matrix {
	return Matrix{A: 1, C: x, E: 1, F: y}
}

// Scale creates a scaling matrix. Scale(s, s) is the font matrix of a font
// of size s.
func Scale(x, y float64) Matrix {
	return Matrix{A: x, E: y}
}

// Rotate creates a rotation matrix (angle in radians).
func Rotate(angle float64) Matrix {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Matrix{
		A: cos, B: -sin,
		D: sin, E: cos,
	}
}

// Multiply returns m * other: other is applied first, then m.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// TransformPoint applies the transformation to a point.
func (m Matrix) TransformPoint(x, y float64) (float64, float64) {
	return m.A*x + m.B*y + m.C, m.D*x + m.E*y + m.F
}

// TransformDistance applies the transformation to a vector (no translation).
func (m Matrix) TransformDistance(dx, dy float64) (float64, float64) {
	return m.A*dx + m.B*dy, m.D*dx + m.E*dy
}

// Determinant returns the determinant of the linear part.
func (m Matrix) Determinant() float64 {
	return m.A*m.E - m.B*m.D
}

// Invertible reports whether the matrix has an inverse.
func (m Matrix) Invertible() bool {
	det := m.Determinant()
	return det != 0 && !math.IsNaN(det) && !math.IsInf(det, 0)
}

// Invert returns the inverse matrix, or StatusInvalidMatrix if m is singular.
func (m Matrix) Invert() (Matrix, error) {
	if !m.Invertible() {
		return Matrix{}, StatusInvalidMatrix
	}
	invDet := 1.0 / m.Determinant()
	return Matrix{
		A: m.E * invDet,
		B: -m.B * invDet,
		C: (m.B*m.F - m.C*m.E) * invDet,
		D: -m.D * invDet,
		E: m.A * invDet,
		F: (m.C*m.D - m.A*m.F) * invDet,
	}, nil
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// linear returns m without its translation.
func (m Matrix) linear() Matrix {
	m.C, m.F = 0, 0
	return m
}

// uniformScale returns the geometric mean of the axis scale factors.
func (m Matrix) uniformScale() float64 {
	return math.Sqrt(math.Abs(m.Determinant()))
}

// basisScale returns the lengths of the transformed unit vectors.
func (m Matrix) basisScale() (sx, sy float64) {
	return math.Hypot(m.A, m.D), math.Hypot(m.B, m.E)
}

// boundingBox returns the axis aligned box of the rectangle corners after
// applying m.
func (m Matrix) boundingBox(x0, y0, x1, y1 float64) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range [4][2]float64{{x0, y0}, {x1, y0}, {x0, y1}, {x1, y1}} {
		x, y := m.TransformPoint(p[0], p[1])
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
	}
	return minX, minY, maxX, maxY
}
