// Package field implements the complex-field kernels of §4.4: Fresnel
// reflection coefficients, the direct-path dipole field, straight-segment
// spherical-wave transport, specular reflection transport, and the final
// field-to-power conversion.
//
// These are deliberately small, pure, table-testable functions, following
// the teacher's math package's style (math/mat4.go, math/quaternion.go):
// no shared state, every formula a standalone function over vecmath types.
package field

import "math"

// SpeedOfLight is c in m/s (§4.4).
const SpeedOfLight = 299_792_458.0

// FreeSpaceImpedance is eta0 in ohms (§4.4).
const FreeSpaceImpedance = 377.0

// Wavelength returns lambda = c/f for f in Hz.
func Wavelength(frequencyHz float64) float64 {
	return SpeedOfLight / frequencyHz
}

// WaveNumber returns k = 2*pi/lambda.
func WaveNumber(wavelength float64) float64 {
	return 2 * math.Pi / wavelength
}

// TransmitPowerWatts converts a dBm transmit power to watts:
// Pt = 10^(dBm/10 - 3).
func TransmitPowerWatts(txPowerDBm float64) float64 {
	return math.Pow(10, txPowerDBm/10-3)
}
