// Package affine implements 2D affine transforms as used by SVG.
//
// A [Matrix] holds the six free parameters (a b c d e f) of a 3×3 homogeneous
// matrix whose bottom row is fixed at (0 0 1). Matrices are plain values:
// every operation returns a new Matrix and none mutate their receiver.
//
// # Composition
//
// [Multiply](a, b) is a∘b, the map that applies b first and then a. A chain of
// nested SVG coordinate systems therefore composes outermost-first:
//
//	toRoot := rootTransform.Multiply(groupTransform).Multiply(pathTransform)
//
// # Inversion
//
// [Invert] uses the closed-form inverse of the 2×2 linear part and refuses
// matrices whose determinant is within [SingularEpsilon] of zero, returning an
// error coded NON_INVERTIBLE instead of a silent fallback.
//
// # Serialization
//
// [Matrix.String] produces a matrix(...) transform with 12 significant digits,
// enough that parsing it back reproduces the matrix to well under 1e-9.
package affine
