package engine

import (
	"math"
	"sort"

	"github.com/dimchain/dimchain/pkg/settings"
)

// SelectRepresentative picks exactly one item from a set of
// near-coincident candidates, so the final chain is not polluted by
// duplicate references at the same station. The priority order is strict;
// each step filters the remaining candidates and returns the first match:
//
//  1. Selected items of dimensionable kind: linear before point, and
//     among linear the curtain wall family first (it is modeled with the
//     tightest precision).
//  2. Unselected curtain grid lines, linear before point.
//  3. Grids, named before unnamed.
//  4. Levels, named before unnamed.
//  5. Unselected curtain wall family items.
//  6. Any linear item.
//  7. The first item (deterministic given stable input order).
//
// Selection intent always wins; among ties, named and geometrically
// precise references produce more legible dimension strings.
//
// The function is pure: re-running it on the same items in the same order
// returns the same item.
func SelectRepresentative(items []Item) Item {
	if len(items) == 1 {
		return items[0]
	}

	if sel := filter(items, func(it Item) bool { return it.Selected && it.Kind.IsDimensionable() }); len(sel) > 0 {
		if linear := filter(sel, Item.IsLinear); len(linear) > 0 {
			if curtain := filter(linear, func(it Item) bool { return it.Kind.IsCurtainClass() }); len(curtain) > 0 {
				return curtain[0]
			}
			return linear[0]
		}
		return sel[0]
	}

	if cgl := filter(items, func(it Item) bool { return it.Kind == KindCurtainGridLine }); len(cgl) > 0 {
		if linear := filter(cgl, Item.IsLinear); len(linear) > 0 {
			return linear[0]
		}
		return cgl[0]
	}

	if grids := filter(items, func(it Item) bool { return it.Kind == KindGrid }); len(grids) > 0 {
		if named := filter(grids, func(it Item) bool { return it.Name != "" }); len(named) > 0 {
			return named[0]
		}
		return grids[0]
	}

	if levels := filter(items, func(it Item) bool { return it.Kind == KindLevel }); len(levels) > 0 {
		if named := filter(levels, func(it Item) bool { return it.Name != "" }); len(named) > 0 {
			return named[0]
		}
		return levels[0]
	}

	if curtain := filter(items, func(it Item) bool { return it.Kind.IsCurtainClass() }); len(curtain) > 0 {
		return curtain[0]
	}

	if linear := filter(items, Item.IsLinear); len(linear) > 0 {
		return linear[0]
	}

	return items[0]
}

// SelectReferences reduces a collinear group to its position-sorted
// representatives: members are clustered by near-coincident station along
// the group's line (using the same adaptive class tolerances as the
// collinearity merge), and each cluster yields one representative.
//
// A group of one item yields one representative; the composer will then
// abandon the chain.
func SelectReferences(g Group, cfg settings.Settings) []Item {
	members := make([]Item, len(g.Items))
	copy(members, g.Items)
	sort.SliceStable(members, func(i, j int) bool { return members[i].Pos < members[j].Pos })

	var reps []Item
	var cluster []Item
	flush := func() {
		if len(cluster) > 0 {
			reps = append(reps, SelectRepresentative(cluster))
			cluster = nil
		}
	}
	for _, it := range members {
		if len(cluster) > 0 {
			anchor := cluster[0]
			tol := math.Max(it.Tol.Value(cfg), anchor.Tol.Value(cfg))
			if math.Abs(it.Pos-anchor.Pos) > tol {
				flush()
			}
		}
		cluster = append(cluster, it)
	}
	flush()
	return reps
}

// filter returns the items satisfying pred, preserving order.
func filter(items []Item, pred func(Item) bool) []Item {
	var out []Item
	for _, it := range items {
		if pred(it) {
			out = append(out, it)
		}
	}
	return out
}
