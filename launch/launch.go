package launch

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/mrigankad/raysim/accel"
	"github.com/mrigankad/raysim/geom"
	"github.com/mrigankad/raysim/vecmath"
)

// Launch implements §4.5 steps 4-6 end to end: tile the transmitter's unit
// sphere at raySpacingDegrees, cast one ray per cell with state Start, and
// trace each recursively, returning one RxFields bucket per receiver in
// registration order.
//
// Per §5, the outer cell loop is "trivially data-parallel... implementers
// may parallelise the outer loop provided that per-receiver bucket updates
// are serialised (one map per worker merged at the end)". Cells are
// sharded across GOMAXPROCS workers via errgroup, each tracing into its own
// private bucket set; the sets are folded together with RxFields.Merge once
// every worker has finished, so no bucket is ever touched by two
// goroutines at once.
func Launch(tree *accel.Tree, txPoint vecmath.Point, raySpacingDegrees float64, params Params, numReceivers int) []*RxFields {
	cells := TileSphere(raySpacingDegrees)

	workers := runtime.GOMAXPROCS(0)
	if workers > len(cells) {
		workers = len(cells)
	}
	if workers < 1 {
		workers = 1
	}

	partials := make([][]*RxFields, workers)
	for w := range partials {
		partials[w] = newBucketSet(numReceivers)
	}

	g, _ := errgroup.WithContext(context.Background())
	chunk := (len(cells) + workers - 1) / workers
	for w := 0; w < workers; w++ {
		start := w * chunk
		if start >= len(cells) {
			break
		}
		end := start + chunk
		if end > len(cells) {
			end = len(cells)
		}
		shard := cells[start:end]
		buckets := partials[w]

		g.Go(func() error {
			for _, cell := range shard {
				ray := geom.Ray{
					Origin:          txPoint,
					Direction:       cell.Direction,
					UnitSurfaceArea: cell.UnitSurfaceArea,
					State:           geom.Start,
				}
				traceRay(tree, ray, vecmath.ComplexVector{}, params, buckets, 0)
			}
			return nil
		})
	}
	// Tracing a ray never fails; errgroup is used purely for the
	// bounded-fan-out shape, not for its error-propagation behaviour.
	_ = g.Wait()

	result := newBucketSet(numReceivers)
	for _, partial := range partials {
		for i, bucket := range partial {
			result[i].Merge(bucket)
		}
	}
	return result
}

func newBucketSet(n int) []*RxFields {
	buckets := make([]*RxFields, n)
	for i := range buckets {
		buckets[i] = NewRxFields()
	}
	return buckets
}
