package accel

import (
	"testing"

	"github.com/mrigankad/raysim/geom"
	"github.com/mrigankad/raysim/vecmath"
	"github.com/stretchr/testify/require"
)

func triAt(x float64, idx int) *geom.Triangle {
	return geom.NewTriangle(
		vecmath.NewPoint(x, 0, 0),
		vecmath.NewPoint(x+1, 0, 0),
		vecmath.NewPoint(x, 1, 0),
		vecmath.AxisZ,
		idx,
	)
}

// TestEveryTriangleReachable checks the §8 reachability invariant: every
// triangle in the scene is reachable via some leaf whose box overlaps it.
func TestEveryTriangleReachable(t *testing.T) {
	var geoms []geom.Geometry
	for i := 0; i < 40; i++ {
		geoms = append(geoms, triAt(float64(i), i))
	}
	tree := Build(geoms)

	seen := map[int]bool{}
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.isLeaf() {
			for _, g := range n.Items {
				if tri, ok := g.(*geom.Triangle); ok {
					require.True(t, boxesOverlap(n.Box, tri.BoundingBox()))
					seen[tri.Index()] = true
				}
			}
			return
		}
		walk(n.Left)
		walk(n.Right)
	}
	walk(tree.root)

	for i := 0; i < 40; i++ {
		require.True(t, seen[i], "triangle %d not reachable", i)
	}
}

func boxesOverlap(a, b vecmath.Box) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

// TestSAHTermination exercises scenario 6: 1000 tightly clustered
// triangles build without runaway recursion, and total leaf membership at
// least matches the input (duplication allowed). Leaf sizes are not
// checked.
func TestSAHTermination(t *testing.T) {
	var geoms []geom.Geometry
	for i := 0; i < 1000; i++ {
		x := float64(i%10) * 0.01
		geoms = append(geoms, triAt(x, i))
	}
	tree := Build(geoms)

	total := 0
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.isLeaf() {
			total += len(n.Items)
			return
		}
		walk(n.Left)
		walk(n.Right)
	}
	walk(tree.root)

	require.GreaterOrEqual(t, total, 1000)
}

// TestDepthBound checks the §3 invariant: tree depth never exceeds 18.
func TestDepthBound(t *testing.T) {
	var geoms []geom.Geometry
	for i := 0; i < 2000; i++ {
		geoms = append(geoms, triAt(float64(i)*0.001, i))
	}
	tree := Build(geoms)

	maxD := 0
	var walk func(n *Node, d int)
	walk = func(n *Node, d int) {
		if d > maxD {
			maxD = d
		}
		if n.isLeaf() {
			return
		}
		walk(n.Left, d+1)
		walk(n.Right, d+1)
	}
	walk(tree.root, 0)
	require.LessOrEqual(t, maxD, maxDepth)
}

// TestTraverseReceiverBeforeOccluder checks the §8 invariant: every
// reported receiver distance is <= the reported occluder distance.
func TestTraverseReceiverBeforeOccluder(t *testing.T) {
	occluder := geom.NewTriangle(
		vecmath.NewPoint(-5, -5, 10),
		vecmath.NewPoint(5, -5, 10),
		vecmath.NewPoint(0, 5, 10),
		vecmath.NewVector(0, 0, -1),
		0,
	)
	nearRx := geom.NewRxSphere(vecmath.NewPoint(0, 0, 5), 1, 0)
	farRx := geom.NewRxSphere(vecmath.NewPoint(0, 0, 20), 1, 1)

	tree := Build([]geom.Geometry{occluder, nearRx, farRx})
	hit, hasHit, receivers := tree.Traverse(vecmath.NewPoint(0, 0, 0), vecmath.AxisZ)

	require.True(t, hasHit)
	for _, rx := range receivers {
		require.LessOrEqual(t, rx.Distance, hit.Distance)
	}
	require.Len(t, receivers, 1)
	require.Equal(t, 0, receivers[0].ReceiverIndex)
}

// TestTraverseEmptyScene checks that an empty scene reports no occluder and
// no receivers, without panicking on the degenerate root box.
func TestTraverseEmptyScene(t *testing.T) {
	tree := Build(nil)
	_, hasHit, receivers := tree.Traverse(vecmath.NewPoint(0, 0, 0), vecmath.AxisZ)
	require.False(t, hasHit)
	require.Empty(t, receivers)
}

// TestTraverseNoDoubleHitAcrossSplitSeam covers scenario 5: two coplanar
// triangles sharing an edge that lands on a k-d split plane must not be
// reported as a double hit for a single ray.
func TestTraverseNoDoubleHitAcrossSplitSeam(t *testing.T) {
	left := geom.NewTriangle(
		vecmath.NewPoint(-1, -1, 5), vecmath.NewPoint(0, -1, 5), vecmath.NewPoint(0, 1, 5),
		vecmath.NewVector(0, 0, -1), 0,
	)
	right := geom.NewTriangle(
		vecmath.NewPoint(0, -1, 5), vecmath.NewPoint(1, -1, 5), vecmath.NewPoint(0, 1, 5),
		vecmath.NewVector(0, 0, -1), 1,
	)
	var geoms []geom.Geometry
	geoms = append(geoms, left, right)
	for i := 2; i < 30; i++ {
		geoms = append(geoms, triAt(100+float64(i), i))
	}
	tree := Build(geoms)

	hit, hasHit, _ := tree.Traverse(vecmath.NewPoint(0, 0, 0), vecmath.AxisZ)
	require.True(t, hasHit)
	require.InDelta(t, 5.0, hit.Distance, 1e-6)
}
