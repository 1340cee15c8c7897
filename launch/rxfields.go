package launch

import "github.com/mrigankad/raysim/vecmath"

// offsetBuckets is the number of bins the receiver-offset axis [0, radius]
// is split into for the bucket key. The spec (§3, §4.5) specifies the key
// shape -- (path signature, offset bucket) -- but leaves the bucket
// granularity to the implementer; four bins keeps rays landing anywhere
// across a receiver's cross-section from each minting a brand-new bucket,
// while still separating contributions that clearly struck different parts
// of the sphere.
const offsetBuckets = 4

// bucketKey combines a ray's path signature with its quantized receiver
// offset, the composite key RxFields stores one contribution per (§3:
// "the mapping enforces one stored contribution per (path, offset-bucket)
// pair").
type bucketKey struct {
	path   string
	offset int
}

// accumulator tracks a running sum and a sample count for one bucket key,
// so the key's stored value is always the true mean of every contribution
// recorded under it -- order-independent and associative to merge, unlike
// a pairwise running average (§5, §9).
type accumulator struct {
	sum   vecmath.ComplexVector
	count int
}

// RxFields is one receiver's accumulation bucket: a mapping from
// path-signature (and offset bucket) to the running sum and count of every
// field contribution recorded under that key. Designed per §9 so that
// merging two workers' buckets is commutative and associative: Merge adds
// sums and counts key by key, so Merge(a, b) == Merge(b, a) and folding
// buckets in any order produces the same per-key mean (mod floating point
// summation order, permitted to differ at 1e-9 relative per §5).
type RxFields struct {
	buckets map[bucketKey]accumulator
}

// NewRxFields creates an empty bucket, created at simulate-start per the
// §3 lifecycle.
func NewRxFields() *RxFields {
	return &RxFields{buckets: make(map[bucketKey]accumulator)}
}

// quantizeOffset maps a continuous offset in [0, radius] to one of
// offsetBuckets bins.
func quantizeOffset(offset, radius float64) int {
	if radius <= 0 {
		return 0
	}
	bucket := int(offset / radius * offsetBuckets)
	if bucket < 0 {
		bucket = 0
	}
	if bucket >= offsetBuckets {
		bucket = offsetBuckets - 1
	}
	return bucket
}

// Record adds a ray's field contribution for the given path signature and
// receiver offset/radius. Per §3, multiple rays landing in the same
// (path, offset-bucket) are averaged rather than summed, so that
// angular-cell-neighbourhood oversampling of one physical multipath doesn't
// inflate its contribution; the average is taken as a true mean over every
// recorded sample, not a pairwise running average, so the result does not
// depend on the order rays arrive in.
func (b *RxFields) Record(path string, offset, radius float64, contribution vecmath.ComplexVector) {
	key := bucketKey{path: path, offset: quantizeOffset(offset, radius)}
	acc := b.buckets[key]
	acc.sum = acc.sum.Add(contribution)
	acc.count++
	b.buckets[key] = acc
}

// Sum returns the coherent sum, across every (path, offset-bucket) key, of
// that key's mean contribution -- the quantity the power kernel converts to
// dBm at read-out.
func (b *RxFields) Sum() vecmath.ComplexVector {
	var total vecmath.ComplexVector
	for _, acc := range b.buckets {
		if acc.count == 0 {
			continue
		}
		total = total.Add(acc.sum.Scale(1 / float64(acc.count)))
	}
	return total
}

// Merge folds another worker's bucket into b by adding sums and counts key
// by key, so the merged mean matches the mean of all samples taken
// together regardless of how the samples were sharded across workers (§5).
func (b *RxFields) Merge(other *RxFields) {
	for k, v := range other.buckets {
		acc := b.buckets[k]
		acc.sum = acc.sum.Add(v.sum)
		acc.count += v.count
		b.buckets[k] = acc
	}
}
