package vecmath

import "math"

// singularEpsilon bounds how small a change-of-basis determinant may be
// before Inverse treats the input as a programmer error (§4.1: "callers
// construct only well-conditioned bases").
const singularEpsilon = 1e-12

// Matrix is a 3x3 real matrix stored row-major, following the teacher's
// Mat4 [4][4]float32 array-of-rows convention (math/mat4.go), narrowed to
// 3x3 and float64 for the field kernels' change-of-basis matrices.
type Matrix [3][3]float64

// MatrixFromColumns builds the matrix whose columns are a, b, c -- the
// shape every basis used in §4.4 takes (h has columns alpha, beta, jhat).
func MatrixFromColumns(a, b, c Vector) Matrix {
	return Matrix{
		{a.X, b.X, c.X},
		{a.Y, b.Y, c.Y},
		{a.Z, b.Z, c.Z},
	}
}

// MulVector applies the matrix to a real vector.
func (m Matrix) MulVector(v Vector) Vector {
	return Vector{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// MulComplexVector applies the real matrix to a complex 3-vector, row by
// row, each output complex component built from the same real linear
// combination of the input's complex components (§3: "Matrix times complex
// 3-vector applies the matrix to each complex component independently").
func (m Matrix) MulComplexVector(v ComplexVector) ComplexVector {
	row := func(r int) Complex {
		return complex(m[r][0], 0)*v.X + complex(m[r][1], 0)*v.Y + complex(m[r][2], 0)*v.Z
	}
	return ComplexVector{X: row(0), Y: row(1), Z: row(2)}
}

// Mul composes two matrices, following the teacher's nested-loop Mat4.Mul.
func (m Matrix) Mul(o Matrix) Matrix {
	var out Matrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				out[i][j] += m[i][k] * o[k][j]
			}
		}
	}
	return out
}

func (m Matrix) determinant() float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// Inverse returns the closed-form cofactor/adjugate inverse of m. Per §4.1,
// callers feed only orthonormal change-of-basis matrices; for those inputs
// the cofactor inverse and the transpose coincide, but this implementation
// does the general computation rather than assuming orthonormality so it
// produces a correct result for any well-conditioned input, not just ones
// the caller promises are orthonormal.
//
// It panics if |det| is below singularEpsilon: the spec treats a
// near-singular basis as a programmer error, not a runtime condition a
// caller should recover from.
func (m Matrix) Inverse() Matrix {
	det := m.determinant()
	if math.Abs(det) < singularEpsilon {
		panic("vecmath: Matrix.Inverse: singular or near-singular basis")
	}
	invDet := 1.0 / det

	cof := Matrix{
		{m[1][1]*m[2][2] - m[1][2]*m[2][1], m[0][2]*m[2][1] - m[0][1]*m[2][2], m[0][1]*m[1][2] - m[0][2]*m[1][1]},
		{m[1][2]*m[2][0] - m[1][0]*m[2][2], m[0][0]*m[2][2] - m[0][2]*m[2][0], m[0][2]*m[1][0] - m[0][0]*m[1][2]},
		{m[1][0]*m[2][1] - m[1][1]*m[2][0], m[0][1]*m[2][0] - m[0][0]*m[2][1], m[0][0]*m[1][1] - m[0][1]*m[1][0]},
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			cof[i][j] *= invDet
		}
	}
	return cof
}
