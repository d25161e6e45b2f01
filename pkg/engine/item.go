package engine

import (
	"github.com/dimchain/dimchain/pkg/geom"
	"github.com/dimchain/dimchain/pkg/settings"
)

// ElementID is the opaque identity of a host element. The engine never
// interprets it beyond equality and ordering.
type ElementID string

// Kind classifies a projected item for grouping and tie-breaking.
type Kind int

const (
	// KindLinear is a generic element with an in-plane direction (walls,
	// columns and framing seen lengthwise, and similar).
	KindLinear Kind = iota
	// KindPerpendicularPoint is a linear element whose axis is (nearly)
	// perpendicular to the view plane, reduced to a point.
	KindPerpendicularPoint
	// KindGrid is a datum grid line.
	KindGrid
	// KindLevel is a datum level.
	KindLevel
	// KindCurtainWall is a curtain wall panel host.
	KindCurtainWall
	// KindMullion is a curtain wall mullion.
	KindMullion
	// KindCurtainGridLine is a curtain wall grid line.
	KindCurtainGridLine
)

// String returns the kind's wire name.
func (k Kind) String() string {
	switch k {
	case KindLinear:
		return "linear"
	case KindPerpendicularPoint:
		return "perpendicular-point"
	case KindGrid:
		return "grid"
	case KindLevel:
		return "level"
	case KindCurtainWall:
		return "curtain-wall"
	case KindMullion:
		return "mullion"
	case KindCurtainGridLine:
		return "curtain-grid-line"
	default:
		return "unknown"
	}
}

// IsCurtainClass reports whether the kind belongs to the curtain wall
// family, which is modeled with the tightest geometric precision and is
// preferred among linear ties.
func (k Kind) IsCurtainClass() bool {
	return k == KindCurtainWall || k == KindMullion || k == KindCurtainGridLine
}

// IsDimensionable reports whether a selected item of this kind makes its
// bucket eligible to produce chains. Grids and levels are background
// datums: they join chains but never trigger them.
func (k Kind) IsDimensionable() bool {
	switch k {
	case KindLinear, KindPerpendicularPoint, KindCurtainWall, KindMullion, KindCurtainGridLine:
		return true
	default:
		return false
	}
}

// ToleranceClass selects which adaptive collinearity tolerance governs an
// item. Grid lines demand millimeter precision while structural elements
// tolerate centimeter modeling slack.
type ToleranceClass int

const (
	// ToleranceDefault applies to walls and generic linear elements.
	ToleranceDefault ToleranceClass = iota
	// ToleranceStructural applies to structural columns and framing.
	ToleranceStructural
	// ToleranceGrid applies to grids and levels.
	ToleranceGrid
	// ToleranceCurtainWall applies to the curtain wall family.
	ToleranceCurtainWall
)

// String returns the class's wire name.
func (c ToleranceClass) String() string {
	switch c {
	case ToleranceStructural:
		return "structural"
	case ToleranceGrid:
		return "grid"
	case ToleranceCurtainWall:
		return "curtain-wall"
	default:
		return "default"
	}
}

// Value returns the numeric tolerance for the class from the settings.
func (c ToleranceClass) Value(s settings.Settings) float64 {
	switch c {
	case ToleranceStructural:
		return s.StructuralTolerance
	case ToleranceGrid:
		return s.GridTolerance
	case ToleranceCurtainWall:
		return s.CurtainWallTolerance
	default:
		return s.CollinearityTolerance
	}
}

// ReferenceKind names which handle of an element a witness line attaches to.
type ReferenceKind int

const (
	// RefCenterline attaches to the element centerline.
	RefCenterline ReferenceKind = iota
	// RefExteriorFace attaches to the exterior face.
	RefExteriorFace
	// RefInteriorFace attaches to the interior face.
	RefInteriorFace
	// RefGeometric attaches to the raw geometric reference.
	RefGeometric
)

// String returns the reference kind's wire name.
func (k ReferenceKind) String() string {
	switch k {
	case RefExteriorFace:
		return "exterior-face"
	case RefInteriorFace:
		return "interior-face"
	case RefGeometric:
		return "geometric"
	default:
		return "centerline"
	}
}

// Reference is an opaque handle to a dimensionable feature of an element.
// The engine only carries references through to the placement consumer;
// resolving them against live host geometry is the consumer's business.
type Reference struct {
	Element ElementID     `json:"element" bson:"element"`
	Kind    ReferenceKind `json:"kind" bson:"kind"`
}

// RefSet holds the reference handles available for one element.
// At least one must be present for the element to be a candidate.
type RefSet struct {
	Centerline   *Reference
	ExteriorFace *Reference
	InteriorFace *Reference
	Geometric    *Reference
}

// Empty reports whether no handle is available.
func (r RefSet) Empty() bool {
	return r.Centerline == nil && r.ExteriorFace == nil && r.InteriorFace == nil && r.Geometric == nil
}

// Pick chooses the handle matching the configured reference type, falling
// back through the available handles. Grids and levels always resolve to
// their centerline.
func (r RefSet) Pick(refType string, kind Kind) (Reference, bool) {
	if kind == KindGrid || kind == KindLevel {
		if r.Centerline != nil {
			return *r.Centerline, true
		}
		return r.firstAvailable()
	}
	switch refType {
	case settings.RefExteriorFace:
		if r.ExteriorFace != nil {
			return *r.ExteriorFace, true
		}
	case settings.RefInteriorFace:
		if r.InteriorFace != nil {
			return *r.InteriorFace, true
		}
	case settings.RefCenterline:
		if r.Centerline != nil {
			return *r.Centerline, true
		}
	}
	// Auto, or the preferred handle is missing.
	if r.Centerline != nil {
		return *r.Centerline, true
	}
	if r.Geometric != nil {
		return *r.Geometric, true
	}
	return r.firstAvailable()
}

func (r RefSet) firstAvailable() (Reference, bool) {
	for _, ref := range []*Reference{r.Centerline, r.Geometric, r.ExteriorFace, r.InteriorFace} {
		if ref != nil {
			return *ref, true
		}
	}
	return Reference{}, false
}

// Item is the central value object of a pass: one element normalized into
// view space. Items are immutable except for Pos, which is only valid
// within the scope of one grouping pass and is recomputed whenever the
// chain direction changes.
type Item struct {
	Element   ElementID
	Kind      Kind
	Point     geom.Point2
	Direction geom.Vec2 // unit vector; zero when PointOnly
	PointOnly bool      // no reliable in-plane direction
	Selected  bool
	Ref       Reference // handle the chain will attach to
	Width     float64   // used for face-offset checks only, not grouping
	Name      string    // datum name, used for grid/level tie-breaks
	Tol       ToleranceClass

	// Pos is the scalar position of Point along the current chain
	// direction (dot product). Scoped to one grouping pass.
	Pos float64
}

// IsLinear reports whether the item has a usable in-plane direction.
func (it Item) IsLinear() bool { return !it.PointOnly }
