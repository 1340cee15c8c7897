package launch

import (
	"github.com/mrigankad/raysim/accel"
	"github.com/mrigankad/raysim/field"
	"github.com/mrigankad/raysim/geom"
	"github.com/mrigankad/raysim/vecmath"
)

// Params collects the scene-global quantities every traced ray needs, held
// constant across a whole launch (§4.4, §6's Parameters list).
type Params struct {
	Permittivity   float64
	Conductivity   float64
	Wavelength     float64
	WaveNumber     float64
	TxPowerWatts   float64
	MaxReflections int
}

// traceRay implements the recursive trace of §4.5 step 6: intersect, record
// every receiver piercing strictly before the accepted occluder, then
// recurse into a specular bounce off that occluder until depth reaches
// MaxReflections or the ray escapes the scene.
//
// ei is the complex field the ray carries into this segment; it is ignored
// when ray.State is Start, since the direct-launch formula needs no
// incoming field. depth counts completed bounces, starting at 0 for the
// ray straight out of the transmitter.
func traceRay(tree *accel.Tree, ray geom.Ray, ei vecmath.ComplexVector, params Params, buckets []*RxFields, depth int) {
	occluder, hasOccluder, receivers := tree.Traverse(ray.Origin, ray.Direction)

	for _, rx := range receivers {
		recordPiercing(ray, ei, rx, params, buckets[rx.ReceiverIndex])
	}

	if depth == params.MaxReflections {
		return
	}
	if !hasOccluder {
		return
	}
	tri, isTriangle := occluder.Geometry.(*geom.Triangle)
	if !isTriangle {
		return
	}

	_, reflected := field.ReflectDirection(ray.Direction, occluder.Normal)
	psi := field.GrazingAngle(ray.Direction, reflected)
	coeffs := field.Fresnel(psi, params.Permittivity, params.Conductivity, params.Wavelength)

	var reflectedField vecmath.ComplexVector
	if ray.State == geom.Start {
		directAtHit := field.DirectField(ray.Direction, occluder.Distance, params.TxPowerWatts, params.WaveNumber)
		reflectedField = field.ReflectFirstBounce(directAtHit, ray.Direction, reflected, coeffs)
	} else {
		reflectedField = field.ReflectLaterBounce(ei, ray.Direction, reflected, coeffs, ray.PrevMileage, occluder.Distance, params.WaveNumber)
	}

	nextRay := ray.WithBounce(occluder.Position, occluder.Distance, tri.Index(), reflected)
	traceRay(tree, nextRay, reflectedField, params, buckets, depth+1)
}

// recordPiercing computes one receiver piercing's field contribution,
// applies the receiver-sphere area correction, and records it into the
// receiver's bucket under the ray's path signature (§4.4, §4.5 step 6).
func recordPiercing(ray geom.Ray, ei vecmath.ComplexVector, rx accel.ReceiverHit, params Params, bucket *RxFields) {
	var contribution vecmath.ComplexVector
	if ray.State == geom.Start {
		contribution = field.DirectField(ray.Direction, rx.Distance, params.TxPowerWatts, params.WaveNumber)
	} else {
		contribution = field.Transport(ei, ray.Direction, ray.PrevMileage, rx.Distance, params.WaveNumber)
	}

	rMileage := ray.PrevMileage + rx.Distance
	correction := field.AreaCorrection(ray.UnitSurfaceArea, rMileage, rx.Radius)
	bucket.Record(ray.PathSignature(), rx.Offset, rx.Radius, contribution.Scale(correction))
}
