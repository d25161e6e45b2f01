package engine

import "github.com/dimchain/dimchain/pkg/geom"

// ViewType distinguishes the projection rule for a view.
type ViewType int

const (
	// ViewPlan projects by dropping Z at a constant level elevation.
	ViewPlan ViewType = iota
	// ViewSection projects onto the view's right/up basis.
	ViewSection
	// ViewElevation projects like a section; the distinction only matters
	// to the host.
	ViewElevation
)

// String returns the view type's wire name.
func (t ViewType) String() string {
	switch t {
	case ViewPlan:
		return "plan"
	case ViewSection:
		return "section"
	case ViewElevation:
		return "elevation"
	default:
		return "unknown"
	}
}

// degenerateProjection is the projected length below which a direction or
// chord carries no usable in-plane information.
const degenerateProjection = 1e-3

// ViewContext is the projection basis of one view. Right and Up must be
// orthonormal for section and elevation views; plan views ignore them and
// use the world X/Y axes with Elevation as the cut plane height.
type ViewContext struct {
	Type      ViewType
	Origin    geom.Point3
	Right     geom.Vec3
	Up        geom.Vec3
	Elevation float64 // plan views: Z reattached when unprojecting
}

// Normal returns the view plane normal: vertical for plans, right × up
// otherwise.
func (v ViewContext) Normal() geom.Vec3 {
	if v.Type == ViewPlan {
		return geom.Vec3{Z: 1}
	}
	return v.Right.Cross(v.Up)
}

// planeOrigin returns a point on the view's cut plane.
func (v ViewContext) planeOrigin() geom.Point3 {
	if v.Type == ViewPlan {
		return geom.Point3{X: v.Origin.X, Y: v.Origin.Y, Z: v.Elevation}
	}
	return v.Origin
}

// ProjectPoint maps a model-space point onto the view's 2D surface.
func (v ViewContext) ProjectPoint(p geom.Point3) geom.Point2 {
	if v.Type == ViewPlan {
		return geom.Point2{X: p.X, Y: p.Y}
	}
	d := p.Sub(v.Origin)
	return geom.Point2{X: d.Dot(v.Right), Y: d.Dot(v.Up)}
}

// ProjectDirection maps a model-space direction into view space and
// re-normalizes it. The second return is false when the projected length
// falls below the degeneracy threshold; callers must treat that as "no
// in-plane direction", never as a zero vector, because a degenerate
// projection routes the element to the perpendicular classifier.
func (v ViewContext) ProjectDirection(d geom.Vec3) (geom.Vec2, bool) {
	var flat geom.Vec2
	if v.Type == ViewPlan {
		flat = geom.Vec2{X: d.X, Y: d.Y}
	} else {
		flat = geom.Vec2{X: d.Dot(v.Right), Y: d.Dot(v.Up)}
	}
	if flat.Length() < degenerateProjection {
		return geom.Vec2{}, false
	}
	unit, ok := flat.Normalize()
	if !ok {
		return geom.Vec2{}, false
	}
	return unit, true
}

// Unproject maps a view-space point back to model space. For plan views
// the level elevation is reattached as Z; for sections and elevations the
// point is origin + right·x + up·y.
func (v ViewContext) Unproject(p geom.Point2) geom.Point3 {
	if v.Type == ViewPlan {
		return geom.Point3{X: p.X, Y: p.Y, Z: v.Elevation}
	}
	return v.Origin.Add(v.Right.Scale(p.X)).Add(v.Up.Scale(p.Y))
}

// UnprojectDirection maps a view-space direction back to model space.
func (v ViewContext) UnprojectDirection(d geom.Vec2) geom.Vec3 {
	if v.Type == ViewPlan {
		return geom.Vec3{X: d.X, Y: d.Y}
	}
	return v.Right.Scale(d.X).Add(v.Up.Scale(d.Y))
}
