package vecmath

import "math/cmplx"

// Complex is the field kernels' complex scalar. Go's builtin complex128
// already is the "real/imag double pair" the spec calls for; no repository
// in the retrieved corpus rolls its own complex type or imports one, so this
// is a thin set of domain-named helpers over the language builtin rather
// than a wrapper struct.
type Complex = complex128

// Euler builds mag*(cos phase + i sin phase), the construction every field
// kernel formula in §4.4 uses to attach a phase to a magnitude.
func Euler(mag, phase float64) Complex {
	return cmplx.Rect(mag, phase)
}

// Sqrt is the principal branch complex square root used by the Fresnel
// kernel's sqrt(eps - cos^2 psi).
func Sqrt(z Complex) Complex {
	return cmplx.Sqrt(z)
}

// ComplexVector is a free 3-vector of complex scalars: the field carried
// along a ray.
type ComplexVector struct {
	X, Y, Z Complex
}

func (v ComplexVector) Add(o ComplexVector) ComplexVector {
	return ComplexVector{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// ScaleReal multiplies a real vector by a complex scalar amplitude:
// amplitude * direction, used to build "E = E_theta * theta_hat" style
// terms where direction is a real unit vector.
func ScaleReal(amplitude Complex, direction Vector) ComplexVector {
	return ComplexVector{
		X: amplitude * complex(direction.X, 0),
		Y: amplitude * complex(direction.Y, 0),
		Z: amplitude * complex(direction.Z, 0),
	}
}

// Scale multiplies every component by a real factor, used to apply the
// receiver-sphere area correction (§4.4) to an already-computed field.
func (v ComplexVector) Scale(factor float64) ComplexVector {
	f := complex(factor, 0)
	return ComplexVector{X: v.X * f, Y: v.Y * f, Z: v.Z * f}
}

// SumSqrMagnitude returns sum(real^2 + imag^2) across all three components,
// i.e. |E|^2 in §4.4's power formula.
func (v ComplexVector) SumSqrMagnitude() float64 {
	return sqrMag(v.X) + sqrMag(v.Y) + sqrMag(v.Z)
}

func sqrMag(z Complex) float64 {
	re, im := real(z), imag(z)
	return re*re + im*im
}

// IsZero reports whether every component is exactly the zero complex
// number, used for the power kernel's "summed field is exactly zero" floor.
func (v ComplexVector) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}
