package field

import (
	"math"

	"github.com/mrigankad/raysim/vecmath"
)

// PowerFloorOffsetDBm is the penalty applied when a receiver has
// accumulated exactly zero field (§4.4, §6): reported power is
// txPower - 250 dBm.
const PowerFloorOffsetDBm = 250.0

// PowerDBm converts a summed complex field (V/m) at a receiver to received
// power in dBm:
//
//	|E|^2 = sum(real^2 + imag^2)
//	W     = lambda^2 / (8*pi*eta0) * |E|^2
//	dBm   = 10*log10(W) + 30
//
// If e is exactly zero, it reports txPowerDBm - 250 as the floor.
func PowerDBm(e vecmath.ComplexVector, wavelength, txPowerDBm float64) float64 {
	if e.IsZero() {
		return txPowerDBm - PowerFloorOffsetDBm
	}
	magSqr := e.SumSqrMagnitude()
	watts := (wavelength * wavelength) / (8 * math.Pi * FreeSpaceImpedance) * magSqr
	return 10*math.Log10(watts) + 30
}

// AreaCorrection implements §4.4's receiver-sphere area correction: a ray's
// footprint area at the sphere is unitSurfaceArea * rMileage^2, where
// rMileage is the cumulative path length to the piercing point. If that
// footprint is smaller than the sphere's capture cross-section pi*r^2, the
// field is scaled down by sqrt(areaProj/areaRx); otherwise it is left
// unchanged.
func AreaCorrection(unitSurfaceArea, rMileage, radius float64) float64 {
	areaProj := unitSurfaceArea * rMileage * rMileage
	areaRx := math.Pi * radius * radius
	if areaProj < areaRx {
		return math.Sqrt(areaProj / areaRx)
	}
	return 1.0
}
