package engine

import (
	"math"

	"github.com/dimchain/dimchain/pkg/geom"
	"github.com/dimchain/dimchain/pkg/settings"
)

// Group is a collinear cluster within one parallel bucket: items judged
// to lie on the same infinite 2D line within the adaptive tolerance.
// Items[0] is the group's reference member, against which later arrivals
// were tested.
type Group struct {
	Items []Item
}

// MergeCollinear splits a bucket into disjoint collinear groups.
//
// Each item's Pos is first recomputed as the dot product of its point
// with the bucket direction. Items are then visited in order and joined
// to the first existing group whose reference member lies on the same
// infinite line, where the tolerance is the larger of the two items'
// class tolerances; otherwise the item opens a new group.
func MergeCollinear(b Bucket, cfg settings.Settings) []Group {
	perp := perpAxis(b.Direction)

	var groups []Group
	for _, it := range b.Items {
		it.Pos = it.Point.Vec().Dot(b.Direction)

		placed := false
		for gi := range groups {
			ref := groups[gi].Items[0]
			tol := math.Max(it.Tol.Value(cfg), ref.Tol.Value(cfg))
			if sameInfiniteLine(it.Point, ref.Point, perp, tol) {
				groups[gi].Items = append(groups[gi].Items, it)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, Group{Items: []Item{it}})
		}
	}
	return groups
}

// sameInfiniteLine reports whether two points lie on the same infinite
// line of the given direction: their separation along the perpendicular
// axis is within tol.
func sameInfiniteLine(a, b geom.Point2, perp geom.Vec2, tol float64) bool {
	return math.Abs(b.Sub(a).Dot(perp)) <= tol
}

// perpAxis rotates the direction 90° and normalizes it, falling back to
// the vertical axis when the direction itself is degenerate.
func perpAxis(dir geom.Vec2) geom.Vec2 {
	perp, ok := dir.Perp().Normalize()
	if !ok {
		return geom.Vec2{Y: 1}
	}
	return perp
}
