package affine

import (
	"math"
	"strconv"
	"strings"

	errs "github.com/matzehuels/svgring/pkg/errors"
)

// SingularEpsilon is the smallest |determinant| Invert accepts.
const SingularEpsilon = 1e-12

// serializeDigits is the number of significant digits used by String and FormatNumber.
const serializeDigits = 12

// Matrix is a 2D affine transform in SVG parameter order:
//
//	| A  C  E |
//	| B  D  F |
//	| 0  0  1 |
//
// which maps (x, y) to (A*x + C*y + E, B*x + D*y + F).
// The zero value is not the identity; use [Identity].
type Matrix struct {
	A, B, C, D, E, F float64
}

// Point is a position in some coordinate space.
type Point struct {
	X, Y float64
}

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{A: 1, D: 1}
}

// Translate returns a translation by (tx, ty).
func Translate(tx, ty float64) Matrix {
	return Matrix{A: 1, D: 1, E: tx, F: ty}
}

// Scale returns a scale by (sx, sy) about the origin.
func Scale(sx, sy float64) Matrix {
	return Matrix{A: sx, D: sy}
}

// Rotate returns a rotation by deg degrees about the origin.
// Positive angles rotate from the +x axis toward the +y axis, which is
// clockwise on screen since SVG's y axis points down.
func Rotate(deg float64) Matrix {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return Matrix{A: cos, B: sin, C: -sin, D: cos}
}

// RotateAbout returns a rotation by deg degrees about (cx, cy),
// composed as Translate(cx, cy) · Rotate(deg) · Translate(-cx, -cy).
func RotateAbout(deg, cx, cy float64) Matrix {
	return Translate(cx, cy).Multiply(Rotate(deg)).Multiply(Translate(-cx, -cy))
}

// Multiply returns a∘b: the transform that applies b first, then a.
func Multiply(a, b Matrix) Matrix {
	return a.Multiply(b)
}

// Multiply returns m∘o (apply o, then m).
func (m Matrix) Multiply(o Matrix) Matrix {
	return Matrix{
		A: m.A*o.A + m.C*o.B,
		B: m.B*o.A + m.D*o.B,
		C: m.A*o.C + m.C*o.D,
		D: m.B*o.C + m.D*o.D,
		E: m.A*o.E + m.C*o.F + m.E,
		F: m.B*o.E + m.D*o.F + m.F,
	}
}

// Determinant returns the determinant of the linear part.
func (m Matrix) Determinant() float64 {
	return m.A*m.D - m.B*m.C
}

// Invert returns the inverse of m.
// It fails with ErrCodeNonInvertible when |det| < SingularEpsilon or det is not finite.
func Invert(m Matrix) (Matrix, error) {
	det := m.Determinant()
	if !(math.Abs(det) >= SingularEpsilon) || math.IsInf(det, 0) {
		return Matrix{}, errs.New(errs.ErrCodeNonInvertible, "non-invertible transform %s (determinant %g)", m, det)
	}

	inv := 1 / det
	a := m.D * inv
	b := -m.B * inv
	c := -m.C * inv
	d := m.A * inv
	return Matrix{
		A: a,
		B: b,
		C: c,
		D: d,
		E: -(a*m.E + c*m.F),
		F: -(b*m.E + d*m.F),
	}, nil
}

// Invert is the method form of [Invert].
func (m Matrix) Invert() (Matrix, error) {
	return Invert(m)
}

// Apply maps p through m.
func (m Matrix) Apply(p Point) Point {
	return Point{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

// IsIdentity reports whether m is exactly the identity.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// ApproxEqual reports whether every parameter of m is within tol of o's.
func (m Matrix) ApproxEqual(o Matrix, tol float64) bool {
	return math.Abs(m.A-o.A) <= tol &&
		math.Abs(m.B-o.B) <= tol &&
		math.Abs(m.C-o.C) <= tol &&
		math.Abs(m.D-o.D) <= tol &&
		math.Abs(m.E-o.E) <= tol &&
		math.Abs(m.F-o.F) <= tol
}

// String renders m as an SVG transform, e.g. "matrix(1 0 0 1 100 100)".
func (m Matrix) String() string {
	var b strings.Builder
	b.WriteString("matrix(")
	for i, v := range [6]float64{m.A, m.B, m.C, m.D, m.E, m.F} {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(FormatNumber(v))
	}
	b.WriteByte(')')
	return b.String()
}

// FormatNumber formats v with 12 significant digits, the precision every
// serialized transform in this module uses. Negative zero prints as "0".
func FormatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'g', serializeDigits, 64)
}

// String renders p as "(x, y)".
func (p Point) String() string {
	return "(" + FormatNumber(p.X) + ", " + FormatNumber(p.Y) + ")"
}
