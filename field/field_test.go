package field

import (
	"math"
	"testing"

	"github.com/mrigankad/raysim/vecmath"
	"github.com/stretchr/testify/require"
)

func TestFresnelBoundedForLossyMedia(t *testing.T) {
	wavelength := Wavelength(900e6)
	for _, permittivity := range []float64{1, 2, 5, 20} {
		for _, conductivity := range []float64{0, 0.001, 0.01, 1} {
			for deg := 1.0; deg < 90; deg += 5 {
				psi := deg * math.Pi / 180
				c := Fresnel(psi, permittivity, conductivity, wavelength)
				require.LessOrEqual(t, cmplxAbs(c.RH), 1.0+1e-9)
				require.LessOrEqual(t, cmplxAbs(c.RV), 1.0+1e-9)
			}
		}
	}
}

func cmplxAbs(z vecmath.Complex) float64 {
	return math.Hypot(real(z), imag(z))
}

// TestDirectPowerLawScenario1 verifies scenario 1 of §8: empty scene,
// tx at origin, one receiver at 10m, maxReflections=0, 0 dBm tx power.
// Expected received power ~= -51.5 dBm within 0.5 dB once the sphere-area
// correction degenerates to unity.
func TestDirectPowerLawScenario1(t *testing.T) {
	freq := 900e6
	wavelength := Wavelength(freq)
	k := WaveNumber(wavelength)
	txPowerDBm := 0.0
	txPowerW := TransmitPowerWatts(txPowerDBm)

	distance := 10.0
	dir := vecmath.NewVector(1, 0, 0)
	e := DirectField(dir, distance, txPowerW, k)

	got := PowerDBm(e, wavelength, txPowerDBm)
	require.InDelta(t, -51.5, got, 0.5)
}

// TestScenario4ShadowedFloor verifies scenario 4 of §8: a receiver with
// zero accumulated field reports txPower - 250 dBm.
func TestScenario4ShadowedFloor(t *testing.T) {
	got := PowerDBm(vecmath.ComplexVector{}, Wavelength(900e6), 0)
	require.InDelta(t, -250.0, got, 1e-9)
}

func TestAreaCorrectionScalesDownUndersampledRays(t *testing.T) {
	// Tiny solid angle at a long distance: footprint much smaller than the
	// 1 m receiver sphere, so the correction should scale the field down.
	factor := AreaCorrection(1e-6, 100, 1)
	require.Less(t, factor, 1.0)

	// A generous solid angle whose footprint already exceeds the sphere's
	// cross-section leaves the field unscaled.
	factor = AreaCorrection(1.0, 100, 1)
	require.Equal(t, 1.0, factor)
}

func TestReflectDirectionIsUnitAndSpecular(t *testing.T) {
	incoming := vecmath.NewVector(1, -1, 0).Normalize()
	normal := vecmath.AxisY
	nHat, reflected := ReflectDirection(incoming, normal)

	require.InDelta(t, 1.0, reflected.Length(), 1e-9)
	require.InDelta(t, 1.0, nHat.Length(), 1e-9)

	psi := GrazingAngle(incoming, reflected)
	require.Greater(t, psi, 0.0)
	require.Less(t, psi, math.Pi/2)
}

func TestTransportConservesEnergyAtUnitFactor(t *testing.T) {
	ei := vecmath.ComplexVector{X: complex(1, 0)}
	dir := vecmath.NewVector(0, 0, 1)
	// prevMileage very large relative to segment => factor ~ 1, so output
	// magnitude should be close to input magnitude.
	out := Transport(ei, dir, 1e9, 1, WaveNumber(Wavelength(900e6)))
	require.InDelta(t, 1.0, math.Sqrt(out.SumSqrMagnitude()), 1e-6)
}
