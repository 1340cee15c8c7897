package geom

import "github.com/mrigankad/raysim/vecmath"

// State is a ray's position in the bounce chain (§3).
type State int

const (
	// Start rays leave the transmitter directly.
	Start State = iota
	// FirstReflect names the first bounce out of Start. WithBounce never
	// assigns it, so no traced ray carries this state.
	FirstReflect
	// MoreReflect is every ray spawned by a reflection, including the
	// first one.
	MoreReflect
)

// Ray is a traced segment plus the bookkeeping the launcher needs to keep
// accumulating a coherent multipath contribution across bounces (§3).
type Ray struct {
	Origin    vecmath.Point
	Direction vecmath.Vector

	// UnitSurfaceArea is the solid-angle area of the angular cell that
	// launched this ray (§6), carried along every spawned segment.
	UnitSurfaceArea float64

	State State

	// PrevPoint is the last reflection position; undefined when State ==
	// Start.
	PrevPoint vecmath.Point
	// PrevMileage is the cumulative path length from the transmitter up to
	// PrevPoint.
	PrevMileage float64

	// Path is the ordered sequence of triangle indices visited so far,
	// used as the path signature a contribution is recorded under.
	Path []int
}

// WithBounce returns the ray spawned by reflecting off a triangle at hit,
// in the new direction, extending Path by the triangle's index. The
// returned ray's State follows the bounce-chain transition in §4.5: the
// first bounce out of Start produces a MoreReflect ray (FirstReflect is a
// transient state used only while computing that single bounce's field,
// never carried on the spawned ray itself).
func (r Ray) WithBounce(hitPoint vecmath.Point, hitDistance float64, triangleIndex int, newDir vecmath.Vector) Ray {
	path := make([]int, len(r.Path)+1)
	copy(path, r.Path)
	path[len(r.Path)] = triangleIndex

	mileage := r.PrevMileage
	if r.State == Start {
		mileage = hitDistance
	} else {
		mileage += hitDistance
	}

	return Ray{
		Origin:          hitPoint,
		Direction:       newDir,
		UnitSurfaceArea: r.UnitSurfaceArea,
		State:           MoreReflect,
		PrevPoint:       hitPoint,
		PrevMileage:     mileage,
		Path:            path,
	}
}

// PathSignature returns a cheap, comparable key for Path, used as the
// RxFields bucket key (§9: "path equality is cheap, hash of the ordered
// triangle-index sequence").
func (r Ray) PathSignature() string {
	if len(r.Path) == 0 {
		return ""
	}
	// A byte-packed key avoids fmt.Sprintf's allocation-heavy formatting in
	// the launcher's hot path; triangle indices fit comfortably in 4 bytes.
	buf := make([]byte, len(r.Path)*4)
	for i, idx := range r.Path {
		u := uint32(idx)
		buf[i*4] = byte(u)
		buf[i*4+1] = byte(u >> 8)
		buf[i*4+2] = byte(u >> 16)
		buf[i*4+3] = byte(u >> 24)
	}
	return string(buf)
}
