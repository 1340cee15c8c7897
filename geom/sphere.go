package geom

import (
	"math"

	"github.com/mrigankad/raysim/vecmath"
)

// sphereEpsilon matches Triangle's hitEpsilon: a receiver hit must be
// strictly forward of the ray origin.
const sphereEpsilon = 1e-4

// RxSphere is a virtual receiver: it is pierced, never occluded against,
// and is always an observer, never an occluder (§3).
type RxSphere struct {
	Origin vecmath.Point
	Radius float64
	index  int // receiver index, the order receivers were registered in
}

func NewRxSphere(center vecmath.Point, radius float64, receiverIndex int) *RxSphere {
	return &RxSphere{Origin: center, Radius: radius, index: receiverIndex}
}

func (s *RxSphere) Kind() Kind { return KindRxSphere }
func (s *RxSphere) Index() int { return s.index }

func (s *RxSphere) BoundingBox() vecmath.Box {
	return vecmath.Box{
		Min: vecmath.NewPoint(s.Origin.X-s.Radius, s.Origin.Y-s.Radius, s.Origin.Z-s.Radius),
		Max: vecmath.NewPoint(s.Origin.X+s.Radius, s.Origin.Y+s.Radius, s.Origin.Z+s.Radius),
	}
}

// Center returns the sphere's center point, satisfying the Geometry
// interface.
func (s *RxSphere) Center() vecmath.Point { return s.Origin }

// Intersect returns the nearest strictly-forward hit of the ray with the
// sphere surface. Per §4.2: "returns the smaller positive root; if both
// roots are negative, no hit."
func (s *RxSphere) Intersect(origin vecmath.Point, dir vecmath.Vector) IntersectResult {
	oc := origin.Sub(s.Origin)
	b := oc.Dot(dir)
	c := oc.LengthSqr() - s.Radius*s.Radius
	disc := b*b - c
	if disc < 0 {
		return IntersectResult{}
	}
	sq := math.Sqrt(disc)
	t1, t2 := -b-sq, -b+sq
	if t1 > t2 {
		t1, t2 = t2, t1
	}

	var dist float64
	switch {
	case t1 >= sphereEpsilon:
		dist = t1
	case t2 >= sphereEpsilon:
		dist = t2
	default:
		return IntersectResult{}
	}

	pos := origin.Add(dir.Mul(dist))
	return IntersectResult{
		Hit:      true,
		Distance: dist,
		Position: pos,
		Normal:   pos.Sub(s.Origin).Normalize(),
		Geometry: s,
	}
}
