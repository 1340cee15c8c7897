package accel

import (
	"math"

	"github.com/mrigankad/raysim/geom"
	"github.com/mrigankad/raysim/vecmath"
)

// maxStackSize is the fixed traversal stack size (§4.3, §5: "50 entries
// suffices for depth <= 18"). It is a value-array local to Traverse, never
// heap-allocated, matching §9's "performance contract".
const maxStackSize = 50

// guardBand absorbs triangles straddling a leaf boundary without either
// missing them or double-reporting them across adjacent leaves (§4.3).
const guardBand = 1e-3

// ReceiverHit is one receiver-sphere piercing collected during a single
// traversal, reported only if it ends up strictly before the accepted
// occluder (or unconditionally, if no occluder is ever accepted).
type ReceiverHit struct {
	ReceiverIndex int
	Distance      float64
	Position      vecmath.Point
	// Offset is the closest-approach distance between the ray and the
	// sphere's center at the piercing point (§4.4's receiver-offset).
	Offset float64
	Radius float64
}

type stackEntry struct {
	t    float64
	node *Node
	prev int
}

// Traverse implements the TA_rec_B stackful recursive k-d traversal
// (§4.3): it visits leaves in strictly increasing ray-parameter order,
// returns the nearest accepted occluder hit (if any), and every receiver
// pierced strictly before it.
func (tr *Tree) Traverse(origin vecmath.Point, dir vecmath.Vector) (occluder geom.IntersectResult, hasOccluder bool, receivers []ReceiverHit) {
	a, b, ok := tr.root.Box.IntersectRay(origin, dir)
	if !ok {
		return geom.IntersectResult{}, false, nil
	}

	var stack [maxStackSize]stackEntry
	enPt, exPt := 0, 1
	stack[enPt] = stackEntry{t: a}
	stack[exPt] = stackEntry{t: b}

	best := map[int]ReceiverHit{}
	current := tr.root

	for current != nil {
		for !current.isLeaf() {
			axisIdx := int(current.Axis)
			originCoord := origin.Axis(axisIdx)
			dirComp := dir.Axis(axisIdx)

			var near, far *Node
			if originCoord < current.Split || (originCoord == current.Split && dirComp <= 0) {
				near, far = current.Left, current.Right
			} else {
				near, far = current.Right, current.Left
			}

			if dirComp == 0 {
				current = near
				continue
			}

			tSplit := (current.Split - originCoord) / dirComp

			switch {
			case tSplit <= 0 || tSplit >= stack[exPt].t:
				current = near
			case tSplit <= stack[enPt].t:
				current = far
			default:
				prev := exPt
				exPt++
				if exPt == enPt {
					exPt++
				}
				stack[exPt] = stackEntry{t: tSplit, node: far, prev: prev}
				current = near
			}
		}

		lo, hi := stack[enPt].t, stack[exPt].t
		if hit, found := nearestOccluderInLeaf(current, origin, dir, lo, hi); found {
			collectReceiversInLeaf(current, origin, dir, lo, hi, best)
			occluder, hasOccluder = hit, true
			break
		}
		collectReceiversInLeaf(current, origin, dir, lo, hi, best)

		if exPt == 0 {
			break
		}
		enPt = exPt
		current = stack[exPt].node
		exPt = stack[enPt].prev
	}

	for _, rx := range best {
		if !hasOccluder || rx.Distance < occluder.Distance {
			receivers = append(receivers, rx)
		}
	}
	return occluder, hasOccluder, receivers
}

// nearestOccluderInLeaf tests every triangle in the leaf and returns the
// closest accepted hit (§4.3: "track the nearest accepted triangle hit...
// return it immediately without advancing to the next leaf").
func nearestOccluderInLeaf(n *Node, origin vecmath.Point, dir vecmath.Vector, lo, hi float64) (geom.IntersectResult, bool) {
	var best geom.IntersectResult
	found := false
	for _, g := range n.Items {
		tri, isTriangle := g.(*geom.Triangle)
		if !isTriangle {
			continue
		}
		res := tri.Intersect(origin, dir)
		if !res.Hit {
			continue
		}
		if res.Distance < lo-guardBand || res.Distance > hi+guardBand {
			continue
		}
		if !found || res.Distance < best.Distance {
			best, found = res, true
		}
	}
	return best, found
}

// collectReceiversInLeaf tests every receiver sphere in the leaf and keeps,
// per receiver index, only the globally nearest recorded hit (§4.3).
func collectReceiversInLeaf(n *Node, origin vecmath.Point, dir vecmath.Vector, lo, hi float64, best map[int]ReceiverHit) {
	for _, g := range n.Items {
		sph, isSphere := g.(*geom.RxSphere)
		if !isSphere {
			continue
		}
		res := sph.Intersect(origin, dir)
		if !res.Hit {
			continue
		}
		if res.Distance < lo-guardBand || res.Distance > hi+guardBand {
			continue
		}
		idx := sph.Index()
		offset := closestApproach(origin, dir, sph.Center())
		if existing, ok := best[idx]; !ok || res.Distance < existing.Distance {
			best[idx] = ReceiverHit{
				ReceiverIndex: idx,
				Distance:      res.Distance,
				Position:      res.Position,
				Offset:        offset,
				Radius:        sph.Radius,
			}
		}
	}
}

// closestApproach returns the perpendicular (miss) distance from center to
// the infinite line through origin in direction dir, the Glossary's
// "receiver offset": the closest-approach distance between the ray and the
// receiver centre, not the distance to the sphere surface where the ray
// happens to pierce it. For any ray that actually hits the sphere this
// lies in [0, radius], since it equals the leg of the right triangle formed
// by the centre-to-origin vector and its projection onto dir.
func closestApproach(origin vecmath.Point, dir vecmath.Vector, center vecmath.Point) float64 {
	oc := origin.Sub(center)
	alongRay := oc.Dot(dir)
	perpSqr := oc.LengthSqr() - alongRay*alongRay
	if perpSqr < 0 {
		perpSqr = 0
	}
	return math.Sqrt(perpSqr)
}
