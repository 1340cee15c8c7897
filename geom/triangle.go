package geom

import "github.com/mrigankad/raysim/vecmath"

// hitEpsilon is the minimum accepted forward distance, guarding a
// just-reflected ray against re-intersecting the triangle it just left
// (§4.2: "distance must be strictly positive (>= a small epsilon like
// 1e-4)").
const hitEpsilon = 1e-4

// mollerTrumboreEpsilon is the near-parallel rejection threshold, carried
// over unchanged from the teacher's editor.mollerTrumbore.
const mollerTrumboreEpsilon = 1e-9

// Triangle is a flat, two-sided occluder. It never terminates traversal as
// an observer; it is always the "occluder" half of the geometry variant.
type Triangle struct {
	A, B, C vecmath.Point
	Normal  vecmath.Vector
	index   int
}

// NewTriangle builds a triangle with the given stable index. The outward
// normal is taken as given rather than derived from winding order, since
// the spec treats both faces as reflective and only uses Normal to decide
// which side to flip against in the field kernel.
func NewTriangle(a, b, c vecmath.Point, normal vecmath.Vector, index int) *Triangle {
	return &Triangle{A: a, B: b, C: c, Normal: normal.Normalize(), index: index}
}

func (t *Triangle) Kind() Kind { return KindTriangle }
func (t *Triangle) Index() int { return t.index }

// BoundingBox is the componentwise min/max of the three vertices (§4.2).
func (t *Triangle) BoundingBox() vecmath.Box {
	return vecmath.EmptyBox().ExpandPoint(t.A).ExpandPoint(t.B).ExpandPoint(t.C)
}

// Center is the triangle's barycenter.
func (t *Triangle) Center() vecmath.Point {
	return vecmath.Point{
		X: (t.A.X + t.B.X + t.C.X) / 3,
		Y: (t.A.Y + t.B.Y + t.C.Y) / 3,
		Z: (t.A.Z + t.B.Z + t.C.Z) / 3,
	}
}

// Intersect implements Möller-Trumbore, adapted from the teacher's
// editor.mollerTrumbore to float64 and without back-face culling (both
// sides reflect; the field kernel flips the outward normal against the
// incoming ray).
func (t *Triangle) Intersect(origin vecmath.Point, dir vecmath.Vector) IntersectResult {
	edge1 := t.B.Sub(t.A)
	edge2 := t.C.Sub(t.A)
	h := dir.Cross(edge2)
	a := edge1.Dot(h)
	if a > -mollerTrumboreEpsilon && a < mollerTrumboreEpsilon {
		return IntersectResult{}
	}

	f := 1.0 / a
	s := origin.Sub(t.A)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return IntersectResult{}
	}

	q := s.Cross(edge1)
	v := f * dir.Dot(q)
	if v < 0 || u+v > 1 {
		return IntersectResult{}
	}

	dist := f * edge2.Dot(q)
	if dist < hitEpsilon {
		return IntersectResult{}
	}

	return IntersectResult{
		Hit:      true,
		Distance: dist,
		Position: origin.Add(dir.Mul(dist)),
		Normal:   t.Normal,
		Geometry: t,
	}
}
