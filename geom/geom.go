// Package geom implements the triangle and receiver-sphere geometry the
// accelerator indexes: bounding box, center, and ray intersection behind a
// uniform interface, following the capability shape the teacher's
// editor.HitResult and scene.AABB establish for mesh geometry (editor/raycast.go,
// scene/frustum.go), generalized to a tagged Triangle|RxSphere variant
// instead of a single mesh-triangle case.
package geom

import "github.com/mrigankad/raysim/vecmath"

// Kind distinguishes an occluder from an observer. The traversal in accel
// does not read Kind: it tells triangles from receiver spheres by type
// assertion on the concrete *Triangle and *RxSphere types.
type Kind int

const (
	KindTriangle Kind = iota
	KindRxSphere
)

// IntersectResult mirrors the teacher's editor.HitResult shape (Hit,
// Distance, Point, Normal, originating reference) generalized to the
// Geometry interface instead of a concrete mesh/node pair.
type IntersectResult struct {
	Hit      bool
	Distance float64
	Position vecmath.Point
	Normal   vecmath.Vector
	Geometry Geometry
}

// Geometry is the capability set every piece of scene geometry exposes,
// matching §4.2's contract: bounding_box, center, intersect, plus a stable
// index and a kind tag.
type Geometry interface {
	BoundingBox() vecmath.Box
	Center() vecmath.Point
	Intersect(origin vecmath.Point, dir vecmath.Vector) IntersectResult
	Kind() Kind
	// Index is the geometry's position in the scene's owned geometry slice,
	// used as the back-reference the spec calls for and as the triangle
	// index recorded into a ray's path signature.
	Index() int
}
