package launch

import (
	"math"
	"testing"

	"github.com/mrigankad/raysim/accel"
	"github.com/mrigankad/raysim/field"
	"github.com/mrigankad/raysim/geom"
	"github.com/mrigankad/raysim/vecmath"
	"github.com/stretchr/testify/require"
)

// TestTotalSolidAngleCoversSphere checks the §8 invariant: a full tiling's
// unit surface areas sum to 4*pi.
func TestTotalSolidAngleCoversSphere(t *testing.T) {
	cells := TileSphere(1.0)
	require.InDelta(t, 4*math.Pi, TotalSolidAngle(cells), 1e-6)
}

func baseParams() Params {
	wavelength := field.Wavelength(900e6)
	return Params{
		Permittivity:   5.0,
		Conductivity:   0.01,
		Wavelength:     wavelength,
		WaveNumber:     field.WaveNumber(wavelength),
		TxPowerWatts:   field.TransmitPowerWatts(0),
		MaxReflections: 0,
	}
}

// TestScenario1EmptySceneDirectPower mirrors scenario 1 of §8: an empty
// scene, one receiver at 10 m, maxReflections=0; received power should be
// close to -51.5 dBm.
func TestScenario1EmptySceneDirectPower(t *testing.T) {
	tree := accel.Build([]geom.Geometry{geom.NewRxSphere(vecmath.NewPoint(10, 0, 0), 1, 0)})
	buckets := Launch(tree, vecmath.NewPoint(0, 0, 0), 1.0, baseParams(), 1)

	got := field.PowerDBm(buckets[0].Sum(), baseParams().Wavelength, 0)
	require.InDelta(t, -51.5, got, 0.5)
}

// TestScenario3NoReceivers checks that a launch with zero receivers returns
// an empty (but non-nil in the sense of zero-length) bucket set and does
// not panic tracing into a scene with nothing to record into.
func TestScenario3NoReceivers(t *testing.T) {
	tree := accel.Build(nil)
	buckets := Launch(tree, vecmath.NewPoint(0, 0, 0), 5.0, baseParams(), 0)
	require.Empty(t, buckets)
}

// TestScenario4ShadowedReceiverReportsFloor covers scenario 4 of §8: a
// triangle directly between TX and RX leaves the receiver's bucket empty,
// reporting the zero-field floor.
func TestScenario4ShadowedReceiverReportsFloor(t *testing.T) {
	blocker := geom.NewTriangle(
		vecmath.NewPoint(-5, -5, 5), vecmath.NewPoint(5, -5, 5), vecmath.NewPoint(0, 5, 5),
		vecmath.NewVector(0, 0, -1), 0,
	)
	rx := geom.NewRxSphere(vecmath.NewPoint(0, 0, 10), 1, 0)
	tree := accel.Build([]geom.Geometry{blocker, rx})

	params := baseParams()
	buckets := Launch(tree, vecmath.NewPoint(0, 0, 0), 1.0, params, 1)

	got := field.PowerDBm(buckets[0].Sum(), params.Wavelength, 0)
	require.InDelta(t, -250.0, got, 1e-9)
}

// TestGroundPlaneTwoRayInterference mirrors scenario 2 of §8: a large
// ground-plane triangle pair produces a two-ray interference pattern that
// differs from the direct-path-only power by more than noise but by less
// than a wide interference-term bound.
func TestGroundPlaneTwoRayInterference(t *testing.T) {
	groundA := geom.NewTriangle(
		vecmath.NewPoint(-500, -500, 0), vecmath.NewPoint(500, -500, 0), vecmath.NewPoint(500, 500, 0),
		vecmath.AxisZ, 0,
	)
	groundB := geom.NewTriangle(
		vecmath.NewPoint(-500, -500, 0), vecmath.NewPoint(500, 500, 0), vecmath.NewPoint(-500, 500, 0),
		vecmath.AxisZ, 1,
	)
	rx := geom.NewRxSphere(vecmath.NewPoint(100, 0, 1), 1, 0)
	tree := accel.Build([]geom.Geometry{groundA, groundB, rx})

	params := baseParams()
	params.MaxReflections = 1
	buckets := Launch(tree, vecmath.NewPoint(0, 0, 10), 1.0, params, 1)

	got := field.PowerDBm(buckets[0].Sum(), params.Wavelength, 0)
	require.False(t, math.IsInf(got, 0))
	require.False(t, math.IsNaN(got))
	// Two-ray interference keeps received power within a generous band of
	// the free-space-only estimate at the same distance.
	distance := vecmath.NewPoint(0, 0, 10).Distance(vecmath.NewPoint(100, 0, 1))
	freeSpaceOnly := field.PowerDBm(
		field.DirectField(vecmath.NewPoint(100, 0, 1).Sub(vecmath.NewPoint(0, 0, 10)).Normalize(), distance, params.TxPowerWatts, params.WaveNumber),
		params.Wavelength, 0,
	)
	require.InDelta(t, freeSpaceOnly, got, 20.0)
}

// TestReciprocityOfDirectPath checks the §8 reciprocity invariant for a
// direct, unobstructed path: swapping the roles of transmitter and receiver
// position yields the same received power (free space is symmetric).
func TestReciprocityOfDirectPath(t *testing.T) {
	params := baseParams()
	a := vecmath.NewPoint(0, 0, 0)
	b := vecmath.NewPoint(10, 0, 0)

	forward := Launch(accel.Build([]geom.Geometry{geom.NewRxSphere(b, 1, 0)}), a, 1.0, params, 1)
	backward := Launch(accel.Build([]geom.Geometry{geom.NewRxSphere(a, 1, 0)}), b, 1.0, params, 1)

	pf := field.PowerDBm(forward[0].Sum(), params.Wavelength, 0)
	pb := field.PowerDBm(backward[0].Sum(), params.Wavelength, 0)
	require.InDelta(t, pf, pb, 1e-6)
}
