package field

import (
	"math"

	"github.com/mrigankad/raysim/vecmath"
)

// FresnelCoefficients holds the horizontal and vertical reflection
// coefficients computed at a single grazing angle (§4.4).
type FresnelCoefficients struct {
	RH vecmath.Complex
	RV vecmath.Complex
}

// Fresnel computes R_H and R_V at grazing angle psi for a lossy medium with
// the given relative permittivity and conductivity (S/m), at wavelength
// lambda (m):
//
//	eps = permittivity - j*60*lambda*conductivity
//	eta = sqrt(eps - cos^2(psi))
//	R_H = (eps*sin(psi) - eta) / (eps*sin(psi) + eta)
//	R_V = (sin(psi) - eta) / (sin(psi) + eta)
func Fresnel(psi, permittivity, conductivity, wavelength float64) FresnelCoefficients {
	eps := complex(permittivity, -60*wavelength*conductivity)
	cosPsi := math.Cos(psi)
	sinPsi := math.Sin(psi)
	eta := vecmath.Sqrt(eps - complex(cosPsi*cosPsi, 0))

	sinC := complex(sinPsi, 0)
	rh := (eps*sinC - eta) / (eps*sinC + eta)
	rv := (sinC - eta) / (sinC + eta)
	return FresnelCoefficients{RH: rh, RV: rv}
}

// GrazingAngle returns psi = 0.5*acos(jhatIncoming . jhatReflected), the
// complement of the usual angle of incidence (§4.4, Glossary).
func GrazingAngle(incoming, reflected vecmath.Vector) float64 {
	cosTheta := clampUnit(incoming.Dot(reflected))
	return 0.5 * math.Acos(cosTheta)
}

func clampUnit(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}
