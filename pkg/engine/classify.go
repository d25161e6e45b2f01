package engine

import (
	"math"

	"github.com/dimchain/dimchain/pkg/geom"
)

// mostlyPerpendicular is the |dir·normal| threshold (≈45°) above which a
// not-strictly-perpendicular element is still reduced to a point, using
// its intersection with the view plane. Elements below it are genuinely
// in-plane and are rejected rather than emitted as points.
const mostlyPerpendicular = 0.7

// classifyPerpendicular decides where an element with a degenerate
// in-plane projection lands as a point, or rejects it.
//
// Two tolerance tiers are applied to d = |direction·normal|:
//
//   - d within perpTol of 1.0: strictly perpendicular, point at the
//     projected midpoint.
//   - d > 0.7: mostly perpendicular (slightly rotated members), point at
//     the segment's intersection with the view plane when the
//     intersection parameter lies inside the segment, otherwise the
//     projected midpoint.
//   - otherwise: rejected.
func classifyPerpendicular(start, end geom.Point3, view ViewContext, perpTol float64) (geom.Point2, bool) {
	mid := view.ProjectPoint(geom.Midpoint3(start, end))

	axis := end.Sub(start)
	length := axis.Length()
	dir, ok := axis.Normalize()
	if !ok {
		// Zero-length 3D geometry still has a well-defined location.
		return mid, true
	}

	normal := view.Normal()
	d := math.Abs(dir.Dot(normal))

	switch {
	case d >= 1.0-perpTol:
		return mid, true
	case d > mostlyPerpendicular:
		if p, ok := segmentPlaneIntersection(start, dir, length, view.planeOrigin(), normal); ok {
			return view.ProjectPoint(p), true
		}
		return mid, true
	default:
		return geom.Point2{}, false
	}
}

// segmentPlaneIntersection solves (origin − start)·normal / (dir·normal)
// for the parameter t of the segment's intersection with the plane, and
// accepts only t within [0, length].
func segmentPlaneIntersection(start geom.Point3, dir geom.Vec3, length float64, origin geom.Point3, normal geom.Vec3) (geom.Point3, bool) {
	denom := dir.Dot(normal)
	if math.Abs(denom) < geom.Epsilon {
		return geom.Point3{}, false
	}
	t := origin.Sub(start).Dot(normal) / denom
	if t < 0 || t > length {
		return geom.Point3{}, false
	}
	return start.Add(dir.Scale(t)), true
}
