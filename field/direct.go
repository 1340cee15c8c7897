package field

import (
	"math"

	"github.com/mrigankad/raysim/vecmath"
)

// basisEpsilon guards the degenerate cases called out in §9: a zenith-
// pointing ray whose z-hat cross j-hat vanishes, and reflectionBasis's
// fallback when jhat_i x jhat_r vanishes (a ray perpendicular to the
// surface). transportBasis does not use it.
const basisEpsilon = 1e-9

// DirectField computes the initial launch field of §4.4 for a ray leaving
// the transmitter directly (state == Start), at distance d along direction
// dir:
//
//	phi_hat  = z_hat x j_hat
//	theta_hat = phi_hat x j_hat
//	E_theta  = Euler(sqrt(Pt*eta0/(2*pi))/d, -k*d)
//	E = E_theta * theta_hat
//
// Per §9's resolved open question, if |z_hat x j_hat| is too small (a
// zenith-pointing ray), phi_hat is seeded from (1,0,0) instead; this only
// changes the arbitrary azimuth of polarization for such rays.
func DirectField(dir vecmath.Vector, distance, txPowerWatts, waveNumber float64) vecmath.ComplexVector {
	phiHat := vecmath.AxisZ.Cross(dir)
	if phiHat.Length() < basisEpsilon {
		phiHat = vecmath.AxisX.Cross(dir)
	}
	phiHat = phiHat.Normalize()
	thetaHat := phiHat.Cross(dir).Normalize()

	mag := math.Sqrt(txPowerWatts*FreeSpaceImpedance/(2*math.Pi)) / distance
	eTheta := vecmath.Euler(mag, -waveNumber*distance)
	return vecmath.ScaleReal(eTheta, thetaHat)
}
