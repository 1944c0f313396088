// Package transform parses SVG transform attributes.
//
// Only the four affine primitives are recognized: matrix, translate, rotate
// and scale, matched case-insensitively. Every other command name (skewX and
// skewY included) is refused with an UNSUPPORTED_COMMAND error, and wrong
// argument counts fail with INVALID_ARGUMENTS. A transform that cannot be
// represented exactly is never skipped, since a wrong coordinate mapping would
// silently corrupt geometry downstream.
//
// Commands compose in textual order by right multiplication, which keeps the
// leftmost command outermost:
//
//	m, err := transform.Parse("translate(100 100) rotate(45)")
//	// m == affine.Translate(100, 100).Multiply(affine.Rotate(45))
package transform
