package field

import (
	"math"

	"github.com/mrigankad/raysim/vecmath"
)

// ReflectDirection returns the outward-facing unit normal nHat (n flipped
// to face the incoming ray) and the reflected direction jHatR = jHatI -
// 2*(nHat . jHatI)*nHat (§4.4).
func ReflectDirection(incoming, normal vecmath.Vector) (nHat, reflected vecmath.Vector) {
	nHat = normal
	if nHat.Dot(incoming) > 0 {
		nHat = nHat.Negate()
	}
	reflected = incoming.Sub(nHat.Mul(2 * nHat.Dot(incoming)))
	return nHat, reflected
}

// reflectionBasis builds (alpha1, beta1, alpha2, beta2) per §4.4:
//
//	alpha1 = normalize(jhat_i x jhat_r), with a grazing/perpendicular
//	         fallback to normalize((0,1,0) x jhat_i) or
//	         normalize((1,0,0) x jhat_i)
//	beta1  = normalize(jhat_i x alpha1)
//	alpha2 = alpha1
//	beta2  = normalize(jhat_r x alpha2)
func reflectionBasis(incoming, reflected vecmath.Vector) (alpha1, beta1, alpha2, beta2 vecmath.Vector) {
	alpha1 = incoming.Cross(reflected)
	if alpha1.Length() < basisEpsilon {
		if math.Abs(incoming.X) > 0.1 {
			alpha1 = vecmath.AxisY.Cross(incoming)
		} else {
			alpha1 = vecmath.AxisX.Cross(incoming)
		}
	}
	alpha1 = alpha1.Normalize()
	beta1 = incoming.Cross(alpha1).Normalize()
	alpha2 = alpha1
	beta2 = reflected.Cross(alpha2).Normalize()
	return alpha1, beta1, alpha2, beta2
}

// ReflectFirstBounce computes the reflected field for the first bounce out
// of the transmitter (state == FirstReflect): unit amplitude/phase factor,
// decomposed via R_V on the alpha component and R_H on the beta component
// (§4.4).
func ReflectFirstBounce(ei vecmath.ComplexVector, incoming, reflected vecmath.Vector, coeffs FresnelCoefficients) vecmath.ComplexVector {
	alpha1, beta1, alpha2, beta2 := reflectionBasis(incoming, reflected)
	h1 := vecmath.MatrixFromColumns(alpha1, beta1, incoming)
	a := h1.Inverse().MulComplexVector(ei)

	eAlpha := a.X * coeffs.RV
	eBeta := a.Y * coeffs.RH
	return vecmath.ScaleReal(eAlpha, alpha2).Add(vecmath.ScaleReal(eBeta, beta2))
}

// ReflectLaterBounce computes the reflected field for any bounce after the
// first, applying the same spherical-wave factor and phase as Transport
// (§4.4), where s2 is the distance from prevPoint to the hit and
// prevMileage is the cumulative path length up to prevPoint.
func ReflectLaterBounce(ei vecmath.ComplexVector, incoming, reflected vecmath.Vector, coeffs FresnelCoefficients, prevMileage, s2, waveNumber float64) vecmath.ComplexVector {
	alpha1, beta1, alpha2, beta2 := reflectionBasis(incoming, reflected)
	h1 := vecmath.MatrixFromColumns(alpha1, beta1, incoming)
	a := h1.Inverse().MulComplexVector(ei)

	factor := prevMileage / (prevMileage + s2)
	phase := vecmath.Euler(factor, -waveNumber*s2)

	eAlpha := a.X * coeffs.RV * phase
	eBeta := a.Y * coeffs.RH * phase
	return vecmath.ScaleReal(eAlpha, alpha2).Add(vecmath.ScaleReal(eBeta, beta2))
}
