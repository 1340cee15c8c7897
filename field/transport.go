package field

import (
	"math"

	"github.com/mrigankad/raysim/vecmath"
)

// transportBasis builds the orthonormal (alpha, beta, jhat) basis used by
// straight-segment transport (§4.4); reflection uses reflectionBasis:
//
//	alpha = (1,0,0) x j_hat   if |j_hat.x| > 0.1
//	      = (0,1,0) x j_hat   otherwise
//	beta  = j_hat x alpha
func transportBasis(dir vecmath.Vector) (alpha, beta vecmath.Vector) {
	seed := vecmath.AxisX
	if math.Abs(dir.X) <= 0.1 {
		seed = vecmath.AxisY
	}
	alpha = seed.Cross(dir).Normalize()
	beta = dir.Cross(alpha)
	return alpha, beta
}

// Transport implements §4.4's "Field transport along a straight segment":
// given the complex field Ei carried from the previous reflection, and the
// new segment's length s and direction dir, returns the field at the far
// end of the segment. prevMileage is s1, the cumulative path length up to
// the segment's start.
func Transport(ei vecmath.ComplexVector, dir vecmath.Vector, prevMileage, segmentLength, waveNumber float64) vecmath.ComplexVector {
	alpha, beta := transportBasis(dir)
	h := vecmath.MatrixFromColumns(alpha, beta, dir)
	a := h.Inverse().MulComplexVector(ei)

	factor := prevMileage / (prevMileage + segmentLength)
	phase := vecmath.Euler(factor, -waveNumber*segmentLength)

	eAlpha := a.X * phase
	eBeta := a.Y * phase
	return vecmath.ScaleReal(eAlpha, alpha).Add(vecmath.ScaleReal(eBeta, beta))
}
