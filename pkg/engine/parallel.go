package engine

import (
	"math"

	"github.com/dimchain/dimchain/pkg/geom"
)

// Bucket is a parallel direction cluster: linear items whose projected
// directions are mutually parallel within the angular tolerance, plus
// every point item of the view (points have no direction preference, so
// each bucket gets its own copy).
type Bucket struct {
	// Direction is the bucket's canonical axis: the direction of the
	// first linear item placed in it. No averaging or refitting is done.
	Direction geom.Vec2
	Items     []Item
}

// GroupParallel partitions linear items into parallel buckets and
// broadcasts point items into every bucket.
//
// The parallel test is the cross-product magnitude |d1 × d2| < tol, which
// treats opposite directions as parallel. Linear items are placed in
// arrival order, so the input order decides each bucket's canonical
// direction; callers feed items in ascending element-ID order to keep
// passes reproducible.
//
// If only point items exist, a single default horizontal bucket is
// created so they can still form a chain.
func GroupParallel(items []Item, tol float64) []Bucket {
	var buckets []Bucket
	var points []Item

	for _, it := range items {
		if it.PointOnly {
			points = append(points, it)
			continue
		}
		placed := false
		for i := range buckets {
			if math.Abs(buckets[i].Direction.Cross(it.Direction)) < tol {
				buckets[i].Items = append(buckets[i].Items, it)
				placed = true
				break
			}
		}
		if !placed {
			buckets = append(buckets, Bucket{Direction: it.Direction, Items: []Item{it}})
		}
	}

	if len(points) > 0 {
		if len(buckets) == 0 {
			buckets = append(buckets, Bucket{Direction: geom.Vec2{X: 1}})
		}
		for i := range buckets {
			buckets[i].Items = append(buckets[i].Items, points...)
		}
	}

	return buckets
}

// Eligible reports whether the bucket may produce chains at all: it must
// contain at least one selected item of a dimensionable kind. Buckets
// holding only unselected background datums are skipped entirely; the
// engine never dimensions a view with nothing explicitly chosen.
func (b Bucket) Eligible() bool {
	for _, it := range b.Items {
		if it.Selected && it.Kind.IsDimensionable() {
			return true
		}
	}
	return false
}
