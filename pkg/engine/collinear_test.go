package engine

import (
	"math"
	"testing"

	"github.com/dimchain/dimchain/pkg/geom"
	"github.com/dimchain/dimchain/pkg/settings"
)

func TestMergeCollinear(t *testing.T) {
	cfg := settings.Default()
	vertical := geom.Vec2{Y: 1}

	structural := func(id string, x, y float64) Item {
		it := pointItem(id, x, y)
		it.Kind = KindLinear
		it.PointOnly = false
		it.Direction = vertical
		it.Tol = ToleranceStructural
		return it
	}

	tests := []struct {
		name       string
		bucket     Bucket
		wantGroups int
	}{
		{
			name: "DistantLinesStaySeparate",
			bucket: Bucket{Direction: vertical, Items: []Item{
				linearItem("a", 0, 5, 0, 1),
				linearItem("b", 5, 5, 0, 1),
			}},
			wantGroups: 2,
		},
		{
			name: "CoincidentLinesMerge",
			bucket: Bucket{Direction: vertical, Items: []Item{
				linearItem("a", 0, 5, 0, 1),
				linearItem("b", 0.005, 25, 0, 1),
			}},
			wantGroups: 1,
		},
		{
			name: "DefaultToleranceIsTight",
			bucket: Bucket{Direction: vertical, Items: []Item{
				linearItem("a", 0, 5, 0, 1),
				linearItem("b", 0.02, 25, 0, 1), // 0.02 > default 0.01
			}},
			wantGroups: 2,
		},
		{
			// Structural slack (0.05) dominates the pairwise max.
			name: "PairwiseMaxTolerance",
			bucket: Bucket{Direction: vertical, Items: []Item{
				linearItem("a", 0, 5, 0, 1),
				structural("s", 0.04, 10),
			}},
			wantGroups: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups := MergeCollinear(tt.bucket, cfg)
			if len(groups) != tt.wantGroups {
				t.Fatalf("groups = %d, want %d", len(groups), tt.wantGroups)
			}
		})
	}
}

// Members of one group are within the pairwise max tolerance of the
// group's reference member; members of different groups in the same
// bucket are beyond it.
func TestMergeCollinearToleranceConsistent(t *testing.T) {
	cfg := settings.Default()
	dir := geom.Vec2{Y: 1}
	perp := dir.Perp()

	bucket := Bucket{Direction: dir, Items: []Item{
		linearItem("a", 0, 0, 0, 1),
		linearItem("b", 0.004, 10, 0, 1),
		linearItem("c", 5, 0, 0, 1),
		linearItem("d", 5.008, 10, 0, 1),
		linearItem("e", 12, 0, 0, 1),
	}}

	groups := MergeCollinear(bucket, cfg)
	if len(groups) != 3 {
		t.Fatalf("groups = %d, want 3", len(groups))
	}

	perpDist := func(a, b Item) float64 {
		return math.Abs(b.Point.Sub(a.Point).Dot(perp))
	}

	for gi, g := range groups {
		ref := g.Items[0]
		for _, it := range g.Items[1:] {
			tol := math.Max(it.Tol.Value(cfg), ref.Tol.Value(cfg))
			if d := perpDist(ref, it); d > tol {
				t.Errorf("group %d: member %s at distance %g exceeds tolerance %g", gi, it.Element, d, tol)
			}
		}
	}

	for i := range groups {
		for j := i + 1; j < len(groups); j++ {
			a, b := groups[i].Items[0], groups[j].Items[0]
			tol := math.Max(a.Tol.Value(cfg), b.Tol.Value(cfg))
			if d := perpDist(a, b); d <= tol {
				t.Errorf("groups %d and %d reference members within tolerance (%g <= %g)", i, j, d, tol)
			}
		}
	}
}

// Scenario: an unselected grid line and a selected structural column land
// within 0.04 of the same axis; structural tolerance 0.05 merges them and
// selection wins the representative.
func TestGridAndColumnMerge(t *testing.T) {
	cfg := settings.Default()

	grid := linearItem("grid-A", 0.04, 5, 0, 1)
	grid.Kind = KindGrid
	grid.Tol = ToleranceGrid
	grid.Name = "A"

	column := pointItem("col-1", 0, 5)
	column.Tol = ToleranceStructural
	column.Selected = true

	bucket := Bucket{Direction: geom.Vec2{Y: 1}, Items: []Item{grid, column}}
	groups := MergeCollinear(bucket, cfg)
	if len(groups) != 1 {
		t.Fatalf("groups = %d, want 1 merged group", len(groups))
	}

	rep := SelectRepresentative(groups[0].Items)
	if rep.Element != "col-1" {
		t.Errorf("representative = %s, want the selected column", rep.Element)
	}
}

func TestMergeCollinearComputesPositions(t *testing.T) {
	dir := geom.Vec2{Y: 1}
	bucket := Bucket{Direction: dir, Items: []Item{
		linearItem("a", 0, 5, 0, 1),
		linearItem("b", 0, 25, 0, 1),
	}}
	groups := MergeCollinear(bucket, settings.Default())
	if len(groups) != 1 {
		t.Fatalf("groups = %d, want 1", len(groups))
	}
	if got := groups[0].Items[0].Pos; !approx(got, 5, eps) {
		t.Errorf("Pos = %g, want 5", got)
	}
	if got := groups[0].Items[1].Pos; !approx(got, 25, eps) {
		t.Errorf("Pos = %g, want 25", got)
	}
}
