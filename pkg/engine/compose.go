package engine

import (
	"errors"
	"math"
	"sort"

	"github.com/dimchain/dimchain/pkg/geom"
)

var (
	// ErrTooFewReferences is returned by ComposeChain when fewer than two
	// representatives remain; such a chain is abandoned, which is an
	// expected outcome for sparse groups, not a failure of the pass.
	ErrTooFewReferences = errors.New("dimension chain needs at least two references")

	// ErrDegenerateDirection is returned by ComposeChain when the chain
	// direction has no usable length.
	ErrDegenerateDirection = errors.New("degenerate chain direction")
)

const (
	// minPickOffset is the minimum perpendicular distance between an
	// interactively picked dimension line and the group centroid; smaller
	// picks are clamped outward, sign preserved.
	minPickOffset = 3.0

	// autoEndMargin extends both chain ends for the automatic tool, so
	// witness lines stay clear of end elements.
	autoEndMargin = 1.97

	// Interactive chains extend by a share of the span, but never less
	// than minInteractiveMargin.
	interactiveMarginRatio = 0.10
	minInteractiveMargin   = 3.0

	// minSpan is the smallest allowed distance between the outermost
	// references; tighter chains are recentred and forced open.
	minSpan = 1.0
)

// PickLine is the reference line supplied by the interactive chain tool:
// the user's pick decides which side of the group the dimension line
// lands on and how far out.
type PickLine struct {
	Start geom.Point2
	End   geom.Point2
}

// Mid returns the pick line's midpoint.
func (l PickLine) Mid() geom.Point2 { return geom.Midpoint2(l.Start, l.End) }

// ComposeOptions control dimension-line placement.
type ComposeOptions struct {
	// Pick is the interactive tool's reference line; nil means automatic
	// placement.
	Pick *PickLine

	// Offset is the perpendicular offset used for automatic placement
	// (the settings' default_offset).
	Offset float64
}

// Chain is everything the external placement consumer needs to
// materialize one dimension annotation: a 3D line and the ordered
// references whose mutual distances it displays.
type Chain struct {
	Direction  geom.Vec3   `json:"direction" bson:"direction"`
	Start      geom.Point3 `json:"start" bson:"start"`
	End        geom.Point3 `json:"end" bson:"end"`
	References []Reference `json:"references" bson:"references"`
}

// ComposeChain computes the dimension-line placement for one collinear
// group from its position-sorted representatives.
//
// The line runs along dir, offset from the representative centroid along
// the perpendicular axis: by the configured default for the automatic
// tool, or toward the user's pick line (clamped to a minimum visual
// separation) for the interactive tool. Extents cover the outermost
// reference stations, widened to a minimum span when the references are
// nearly coincident and extended by an end margin on both sides. The 2D
// endpoints are converted back to model space through the inverse view
// projection.
func ComposeChain(view ViewContext, dir geom.Vec2, reps []Item, opts ComposeOptions) (Chain, error) {
	if len(reps) < 2 {
		return Chain{}, ErrTooFewReferences
	}
	unit, ok := dir.Normalize()
	if !ok {
		return Chain{}, ErrDegenerateDirection
	}

	ordered := make([]Item, len(reps))
	copy(ordered, reps)
	for i := range ordered {
		ordered[i].Pos = ordered[i].Point.Vec().Dot(unit)
	}
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Pos < ordered[j].Pos })

	centroid := centroid(ordered)
	perp := perpAxis(unit)

	offset := opts.Offset
	if opts.Pick != nil {
		offset = opts.Pick.Mid().Sub(centroid).Dot(perp)
		if math.Abs(offset) < minPickOffset {
			// Sign preserved, magnitude clamped up. A pick exactly on the
			// centroid goes to the positive side.
			if offset < 0 {
				offset = -minPickOffset
			} else {
				offset = minPickOffset
			}
		}
	}

	minPos := ordered[0].Pos
	maxPos := ordered[len(ordered)-1].Pos
	if maxPos-minPos < minSpan {
		mid := (minPos + maxPos) / 2
		minPos = mid - minSpan/2
		maxPos = mid + minSpan/2
	}

	margin := autoEndMargin
	if opts.Pick != nil {
		margin = math.Max(interactiveMarginRatio*(maxPos-minPos), minInteractiveMargin)
	}

	lateral := centroid.Vec().Dot(perp) + offset
	start2 := geom.Point2{}.Add(unit.Scale(minPos - margin)).Add(perp.Scale(lateral))
	end2 := geom.Point2{}.Add(unit.Scale(maxPos + margin)).Add(perp.Scale(lateral))

	dir3, ok := view.UnprojectDirection(unit).Normalize()
	if !ok {
		return Chain{}, ErrDegenerateDirection
	}

	refs := make([]Reference, len(ordered))
	for i, it := range ordered {
		refs[i] = it.Ref
	}

	return Chain{
		Direction:  dir3,
		Start:      view.Unproject(start2),
		End:        view.Unproject(end2),
		References: refs,
	}, nil
}

// centroid averages the representatives' projected points.
func centroid(items []Item) geom.Point2 {
	var x, y float64
	for _, it := range items {
		x += it.Point.X
		y += it.Point.Y
	}
	n := float64(len(items))
	return geom.Point2{X: x / n, Y: y / n}
}
