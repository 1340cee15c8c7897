package vecmath

import "math"

// Box is an axis-aligned bounding box, following the same Min/Max shape as
// the teacher's scene.AABB.
type Box struct {
	Min, Max Point
}

// EmptyBox returns a box with inverted bounds, ready to be grown with
// ExpandPoint/Union.
func EmptyBox() Box {
	inf := math.Inf(1)
	return Box{
		Min: Point{inf, inf, inf},
		Max: Point{-inf, -inf, -inf},
	}
}

func (b Box) ExpandPoint(p Point) Box {
	return Box{
		Min: Point{min(b.Min.X, p.X), min(b.Min.Y, p.Y), min(b.Min.Z, p.Z)},
		Max: Point{max(b.Max.X, p.X), max(b.Max.Y, p.Y), max(b.Max.Z, p.Z)},
	}
}

// Union returns the smallest box containing both b and o.
func (b Box) Union(o Box) Box {
	return Box{
		Min: Point{min(b.Min.X, o.Min.X), min(b.Min.Y, o.Min.Y), min(b.Min.Z, o.Min.Z)},
		Max: Point{max(b.Max.X, o.Max.X), max(b.Max.Y, o.Max.Y), max(b.Max.Z, o.Max.Z)},
	}
}

// Center returns the box's geometric center.
func (b Box) Center() Point {
	return Point{
		X: (b.Min.X + b.Max.X) * 0.5,
		Y: (b.Min.Y + b.Max.Y) * 0.5,
		Z: (b.Min.Z + b.Max.Z) * 0.5,
	}
}

// SurfaceArea returns the box's total surface area, used by the SAH cost
// model. A degenerate (zero-thickness) box still has a well-defined,
// possibly zero, area.
func (b Box) SurfaceArea() float64 {
	d := b.Max.Sub(b.Min)
	dx, dy, dz := math.Max(d.X, 0), math.Max(d.Y, 0), math.Max(d.Z, 0)
	return 2 * (dx*dy + dy*dz + dz*dx)
}

// AxisRange returns [min, max] of the box along the given axis (0=X,1=Y,2=Z).
func (b Box) AxisRange(axis int) (float64, float64) {
	return b.Min.Axis(axis), b.Max.Axis(axis)
}

// ClipLeft returns the box with its axis range's upper bound moved down to
// split (used to compute SAL in the SAH cost formula).
func (b Box) ClipLeft(axis int, split float64) Box {
	out := b
	switch axis {
	case 0:
		out.Max.X = split
	case 1:
		out.Max.Y = split
	default:
		out.Max.Z = split
	}
	return out
}

// ClipRight returns the box with its axis range's lower bound moved up to
// split (used to compute SAR in the SAH cost formula).
func (b Box) ClipRight(axis int, split float64) Box {
	out := b
	switch axis {
	case 0:
		out.Min.X = split
	case 1:
		out.Min.Y = split
	default:
		out.Min.Z = split
	}
	return out
}

// IntersectRay returns the entry/exit signed distances [a, b] of the ray
// with the box, following the teacher's slab-test shape
// (editor.rayAABBIntersect), generalized to float64 and to report "no hit"
// via the bool rather than a zero distance.
func (b Box) IntersectRay(origin Point, dir Vector) (a, bexit float64, hit bool) {
	tmin, tmax := math.Inf(-1), math.Inf(1)
	o := [3]float64{origin.X, origin.Y, origin.Z}
	d := [3]float64{dir.X, dir.Y, dir.Z}
	lo := [3]float64{b.Min.X, b.Min.Y, b.Min.Z}
	hi := [3]float64{b.Max.X, b.Max.Y, b.Max.Z}

	for axis := 0; axis < 3; axis++ {
		if d[axis] == 0 {
			if o[axis] < lo[axis] || o[axis] > hi[axis] {
				return 0, 0, false
			}
			continue
		}
		inv := 1.0 / d[axis]
		t1 := (lo[axis] - o[axis]) * inv
		t2 := (hi[axis] - o[axis]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, 0, false
		}
	}
	return tmin, tmax, true
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
