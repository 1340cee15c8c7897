// Package accel implements the SAH-split k-d tree accelerator (§4.3):
// build over a mixed population of triangle occluders and receiver-sphere
// observers, and a stackful recursive traversal that returns the nearest
// occluder hit plus every receiver pierced before it.
//
// The node shape (owned children XOR leaf geometry slice, axis-aligned box
// cached on every node) follows the same owned-children-with-borrowed-leaf
// pattern as the BVH in the retrieved corpus's spatialmath.bvhNode, adapted
// from a median/binary split to the spec's SAH event-sweep split and from a
// pure-binary tree to one that must classify leaf members as occluders or
// receivers during traversal.
package accel

import (
	"math"
	"sort"

	"github.com/mrigankad/raysim/geom"
	"github.com/mrigankad/raysim/vecmath"
)

const (
	// maxDepth bounds recursion (§3 invariant: "tree depth <= 18").
	maxDepth = 18
	// maxLeafSize is the "list size <= 8" termination condition.
	maxLeafSize = 8
	// traversalCost and intersectCost are KT and KI in the SAH formula.
	traversalCost  = 1.0
	intersectCost  = 1.5
	// noSplitRatio: a best SAH cost at or above noSplitRatio*|list| means
	// "don't split".
	noSplitRatio = 1.5
)

// axis identifies a split plane.
type axis int

const (
	axisX axis = iota
	axisY
	axisZ
)

// Node is either an internal split node with two owned children, or a leaf
// holding borrowed references into the scene's geometry slice (§9: "leaves
// hold borrowed references or stable indices into a scene-owned geometry
// array").
type Node struct {
	Box vecmath.Box

	// Internal node fields. Left/Right are nil for a leaf.
	Axis  axis
	Split float64
	Left  *Node
	Right *Node

	// Leaf node field. Empty for an internal node.
	Items []geom.Geometry
}

func (n *Node) isLeaf() bool { return n.Left == nil && n.Right == nil }

// Tree owns the root of an SAH k-d tree built over a fixed geometry
// population.
type Tree struct {
	root *Node
}

// Build constructs the tree over the full scene geometry list (§4.3
// "Build"). The caller retains ownership of geoms; the tree stores
// references into it.
func Build(geoms []geom.Geometry) *Tree {
	if len(geoms) == 0 {
		return &Tree{root: &Node{Box: vecmath.EmptyBox()}}
	}
	box := vecmath.EmptyBox()
	for _, g := range geoms {
		bb := g.BoundingBox()
		box = box.Union(bb)
	}
	return &Tree{root: buildNode(geoms, box, 0)}
}

func buildNode(items []geom.Geometry, box vecmath.Box, depth int) *Node {
	if len(items) <= maxLeafSize || depth >= maxDepth {
		return &Node{Box: box, Items: items}
	}

	bestAxis, bestSplit, bestCost, hasSplit := selectSplit(items, box)
	// §9 open question: an empty event list (no split ever evaluated)
	// means "do not split", unconditionally, rather than use an
	// uninitialized split position.
	if !hasSplit || bestCost >= noSplitRatio*float64(len(items)) {
		return &Node{Box: box, Items: items}
	}

	var left, right []geom.Geometry
	for _, g := range items {
		onLeft, onRight := classify(g, bestAxis, bestSplit)
		if onLeft {
			left = append(left, g)
		}
		if onRight {
			right = append(right, g)
		}
	}

	// A degenerate split that fails to separate anything would recurse
	// forever; fall back to a leaf rather than loop.
	if len(left) == len(items) || len(right) == len(items) {
		return &Node{Box: box, Items: items}
	}

	leftBox := box.ClipLeft(int(bestAxis), bestSplit)
	rightBox := box.ClipRight(int(bestAxis), bestSplit)

	return &Node{
		Box:   box,
		Axis:  bestAxis,
		Split: bestSplit,
		Left:  buildNode(left, leftBox, depth+1),
		Right: buildNode(right, rightBox, depth+1),
	}
}

// classify applies the clipping distribution rule (§4.3): a triangle
// straddling the split is duplicated into both children; a sphere is
// compared by its extremal extent against the split.
func classify(g geom.Geometry, ax axis, split float64) (onLeft, onRight bool) {
	switch t := g.(type) {
	case *geom.Triangle:
		verts := [3]vecmath.Point{t.A, t.B, t.C}
		for _, v := range verts {
			c := v.Axis(int(ax))
			if c < split {
				onLeft = true
			}
			if c >= split {
				onRight = true
			}
		}
		return onLeft, onRight
	case *geom.RxSphere:
		c := t.Center().Axis(int(ax))
		if c-t.Radius < split {
			onLeft = true
		}
		if c+t.Radius >= split {
			onRight = true
		}
		return onLeft, onRight
	default:
		bb := g.BoundingBox()
		lo, hi := bb.AxisRange(int(ax))
		return lo < split, hi >= split
	}
}

// eventKind orders End < Planar < Start at equal positions (§4.3).
type eventKind int

const (
	eventEnd eventKind = iota
	eventPlanar
	eventStart
)

type event struct {
	pos  float64
	kind eventKind
}

// selectSplit runs the SAH event sweep over all three axes and returns the
// minimum-cost (axis, position).
func selectSplit(items []geom.Geometry, box vecmath.Box) (bestAxis axis, bestSplit float64, bestCost float64, ok bool) {
	bestCost = math.Inf(1)
	sa := box.SurfaceArea()
	if sa == 0 {
		return 0, 0, 0, false
	}

	for ax := axisX; ax <= axisZ; ax++ {
		events := buildEvents(items, int(ax))
		if len(events) == 0 {
			continue
		}
		sort.Slice(events, func(i, j int) bool {
			if events[i].pos != events[j].pos {
				return events[i].pos < events[j].pos
			}
			return events[i].kind < events[j].kind
		})

		nl, np := 0, 0
		nr := countRight(events)

		i := 0
		for i < len(events) {
			pos := events[i].pos
			endCount, planarCount, startCount := 0, 0, 0
			for i < len(events) && events[i].pos == pos && events[i].kind == eventEnd {
				endCount++
				i++
			}
			for i < len(events) && events[i].pos == pos && events[i].kind == eventPlanar {
				planarCount++
				i++
			}
			for i < len(events) && events[i].pos == pos && events[i].kind == eventStart {
				startCount++
				i++
			}

			nr -= endCount
			np = planarCount
			nr -= planarCount

			cost, valid := sahCost(box, int(ax), pos, sa, nl, np, nr)
			if valid && cost < bestCost {
				bestCost = cost
				bestAxis = ax
				bestSplit = pos
				ok = true
			}

			nl += startCount + planarCount
			np = 0
		}
	}
	return bestAxis, bestSplit, bestCost, ok
}

func countRight(events []event) int {
	n := 0
	for _, e := range events {
		if e.kind == eventStart || e.kind == eventPlanar {
			n++
		}
	}
	return n
}

func buildEvents(items []geom.Geometry, ax int) []event {
	events := make([]event, 0, len(items)*2)
	for _, g := range items {
		bb := g.BoundingBox()
		lo, hi := bb.AxisRange(ax)
		if lo == hi {
			events = append(events, event{pos: lo, kind: eventPlanar})
		} else {
			events = append(events, event{pos: lo, kind: eventStart})
			events = append(events, event{pos: hi, kind: eventEnd})
		}
	}
	return events
}

// sahCost implements §4.3's cost formula:
//
//	cost = KT + KI*((SAL/SA)*(NL+NP) + (SAR/SA)*NR)
func sahCost(box vecmath.Box, ax int, split float64, sa float64, nl, np, nr int) (float64, bool) {
	lo, hi := box.AxisRange(ax)
	if split <= lo || split >= hi {
		return 0, false
	}
	sal := box.ClipLeft(ax, split).SurfaceArea()
	sar := box.ClipRight(ax, split).SurfaceArea()
	cost := traversalCost + intersectCost*((sal/sa)*float64(nl+np)+(sar/sa)*float64(nr))
	return cost, true
}
