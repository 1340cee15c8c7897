// Package launch implements the ray launcher (§4.5): tiling the
// transmitter's unit sphere into angular cells, casting one ray per cell,
// recursing on specular reflection up to a bounce limit, and accumulating
// complex field contributions per receiver.
//
// The recursive trace follows the teacher's RaycastScene shape in
// editor/raycast.go -- intersect, keep the closest, recurse into the thing
// that was hit -- generalized from "closest mesh in a scene" to "closest
// occluder plus every receiver pierced before it".
package launch

import (
	"math"

	"github.com/mrigankad/raysim/vecmath"
)

// Cell is one angular tile of the transmitter's unit sphere (§4.5).
type Cell struct {
	Direction       vecmath.Vector
	UnitSurfaceArea float64
}

// TileSphere tiles the unit sphere into a theta/phi grid based on
// raySpacing in degrees:
//
//	nTheta = round(360/raySpacing), nPhi = round(180/raySpacing)
//	theta  = i * 2*pi/nTheta
//	phi    = (j+0.5) * pi/nPhi
//	direction = (sin(phi)cos(theta), sin(phi)sin(theta), cos(phi))
//	unitSurfaceArea = (theta2-theta1) * (cos(phi1) - cos(phi2))
func TileSphere(raySpacingDegrees float64) []Cell {
	nTheta := int(math.Round(360 / raySpacingDegrees))
	nPhi := int(math.Round(180 / raySpacingDegrees))
	if nTheta < 1 {
		nTheta = 1
	}
	if nPhi < 1 {
		nPhi = 1
	}

	dTheta := 2 * math.Pi / float64(nTheta)
	dPhi := math.Pi / float64(nPhi)

	cells := make([]Cell, 0, nTheta*nPhi)
	for i := 0; i < nTheta; i++ {
		theta1 := float64(i) * dTheta
		theta2 := theta1 + dTheta
		theta := theta1

		for j := 0; j < nPhi; j++ {
			phi1 := float64(j) * dPhi
			phi2 := phi1 + dPhi
			phi := (float64(j) + 0.5) * dPhi

			dir := vecmath.NewVector(
				math.Sin(phi)*math.Cos(theta),
				math.Sin(phi)*math.Sin(theta),
				math.Cos(phi),
			)
			area := (theta2 - theta1) * (math.Cos(phi1) - math.Cos(phi2))
			cells = append(cells, Cell{Direction: dir, UnitSurfaceArea: area})
		}
	}
	return cells
}

// TotalSolidAngle sums every cell's unit surface area; the §8 invariant
// requires this to equal 4*pi within 1e-6 for a full tiling.
func TotalSolidAngle(cells []Cell) float64 {
	total := 0.0
	for _, c := range cells {
		total += c.UnitSurfaceArea
	}
	return total
}
