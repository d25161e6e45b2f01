// Package model defines the JSON document snapshot consumed by batch
// dimensioning runs.
//
// A Document carries the views and element geometry exported from a
// host model. It is the concrete implementation of the engine's
// provider contract for file-based use; hosts with live geometry can
// implement engine.ElementProvider directly and skip this package.
//
// The format is human-readable and designed for round-trip fidelity:
// import → dimension → export → re-import produces identical results.
package model

import (
	"fmt"
	"slices"

	"github.com/dimchain/dimchain/pkg/engine"
	apperrors "github.com/dimchain/dimchain/pkg/errors"
	"github.com/dimchain/dimchain/pkg/geom"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Element categories.
const (
	CategoryWall            = "wall"
	CategoryColumn          = "structural-column"
	CategoryFraming         = "structural-framing"
	CategoryGrid            = "grid"
	CategoryLevel           = "level"
	CategoryCurtainWall     = "curtain-wall"
	CategoryMullion         = "mullion"
	CategoryCurtainGridLine = "curtain-grid-line"
)

// View types.
const (
	ViewTypePlan      = "plan"
	ViewTypeSection   = "section"
	ViewTypeElevation = "elevation"
)

// =============================================================================
// Document - Geometry Snapshot
// =============================================================================

// Document is one exported model snapshot: the views that can be
// dimensioned and the elements visible in them.
type Document struct {
	Name     string    `json:"name,omitempty" bson:"name,omitempty"`
	Units    string    `json:"units,omitempty" bson:"units,omitempty"` // informational, e.g. "ft"
	Views    []View    `json:"views" bson:"views"`
	Elements []Element `json:"elements" bson:"elements"`
}

// View describes one drawing view and its projection frame.
type View struct {
	ID   string `json:"id" bson:"id"`
	Name string `json:"name,omitempty" bson:"name,omitempty"`
	Type string `json:"type" bson:"type"` // plan, section, or elevation

	// Origin is a point on the view plane. Plans ignore it.
	Origin geom.Point3 `json:"origin,omitempty" bson:"origin,omitempty"`
	// Right and Up span the view plane for sections and elevations.
	Right geom.Vec3 `json:"right,omitempty" bson:"right,omitempty"`
	Up    geom.Vec3 `json:"up,omitempty" bson:"up,omitempty"`
	// Elevation is the cut height of a plan view.
	Elevation float64 `json:"elevation,omitempty" bson:"elevation,omitempty"`
}

// Element is one host element with its driving line.
type Element struct {
	ID       string      `json:"id" bson:"id"`
	Category string      `json:"category" bson:"category"`
	Name     string      `json:"name,omitempty" bson:"name,omitempty"`
	Start    geom.Point3 `json:"start" bson:"start"`
	End      geom.Point3 `json:"end" bson:"end"`
	Width    float64     `json:"width,omitempty" bson:"width,omitempty"`
	Selected bool        `json:"selected,omitempty" bson:"selected,omitempty"`

	// NoGeometry marks elements exported without a usable driving line.
	NoGeometry bool `json:"no_geometry,omitempty" bson:"no_geometry,omitempty"`
}

// =============================================================================
// Category and View Mapping
// =============================================================================

// KindFor maps a category to its engine kind.
// The second return is false for unknown categories.
func KindFor(category string) (engine.Kind, bool) {
	switch category {
	case CategoryWall, CategoryColumn, CategoryFraming:
		return engine.KindLinear, true
	case CategoryGrid:
		return engine.KindGrid, true
	case CategoryLevel:
		return engine.KindLevel, true
	case CategoryCurtainWall:
		return engine.KindCurtainWall, true
	case CategoryMullion:
		return engine.KindMullion, true
	case CategoryCurtainGridLine:
		return engine.KindCurtainGridLine, true
	default:
		return engine.KindLinear, false
	}
}

// ToleranceFor maps a category to its collinearity tolerance class.
func ToleranceFor(category string) engine.ToleranceClass {
	switch category {
	case CategoryColumn, CategoryFraming:
		return engine.ToleranceStructural
	case CategoryGrid, CategoryLevel:
		return engine.ToleranceGrid
	case CategoryCurtainWall, CategoryMullion, CategoryCurtainGridLine:
		return engine.ToleranceCurtainWall
	default:
		return engine.ToleranceDefault
	}
}

// Context converts the view to an engine projection context.
func (v View) Context() (engine.ViewContext, error) {
	switch v.Type {
	case ViewTypePlan:
		return engine.ViewContext{Type: engine.ViewPlan, Elevation: v.Elevation}, nil
	case ViewTypeSection, ViewTypeElevation:
		right, okR := v.Right.Normalize()
		up, okU := v.Up.Normalize()
		if !okR || !okU {
			return engine.ViewContext{}, apperrors.New(apperrors.ErrCodeInvalidView,
				"view %s: section and elevation views need nonzero right and up vectors", v.ID)
		}
		t := engine.ViewSection
		if v.Type == ViewTypeElevation {
			t = engine.ViewElevation
		}
		return engine.ViewContext{Type: t, Origin: v.Origin, Right: right, Up: up}, nil
	default:
		return engine.ViewContext{}, apperrors.New(apperrors.ErrCodeInvalidView,
			"view %s: unknown type %q", v.ID, v.Type)
	}
}

// =============================================================================
// Document Operations
// =============================================================================

// Validate checks structural invariants: unique ids, known categories,
// and well-formed views.
func (d *Document) Validate() error {
	if len(d.Views) == 0 {
		return apperrors.New(apperrors.ErrCodeInvalidDocument, "document has no views")
	}

	viewIDs := make(map[string]bool, len(d.Views))
	for _, v := range d.Views {
		if v.ID == "" {
			return apperrors.New(apperrors.ErrCodeInvalidDocument, "view with empty id")
		}
		if viewIDs[v.ID] {
			return apperrors.New(apperrors.ErrCodeInvalidDocument, "duplicate view id %q", v.ID)
		}
		viewIDs[v.ID] = true
		if _, err := v.Context(); err != nil {
			return err
		}
	}

	elemIDs := make(map[string]bool, len(d.Elements))
	for _, e := range d.Elements {
		if e.ID == "" {
			return apperrors.New(apperrors.ErrCodeInvalidDocument, "element with empty id")
		}
		if elemIDs[e.ID] {
			return apperrors.New(apperrors.ErrCodeInvalidDocument, "duplicate element id %q", e.ID)
		}
		elemIDs[e.ID] = true
		if _, ok := KindFor(e.Category); !ok {
			return apperrors.New(apperrors.ErrCodeInvalidDocument,
				"element %s: unknown category %q", e.ID, e.Category)
		}
	}

	return nil
}

// FindView returns the view with the given id.
func (d *Document) FindView(id string) (View, bool) {
	for _, v := range d.Views {
		if v.ID == id {
			return v, true
		}
	}
	return View{}, false
}

// ViewIDs returns all view ids in document order.
func (d *Document) ViewIDs() []string {
	ids := make([]string, len(d.Views))
	for i, v := range d.Views {
		ids[i] = v.ID
	}
	return ids
}

// sorted returns a copy with views and elements ordered by id, so that
// serialization is deterministic regardless of export order.
func (d *Document) sorted() Document {
	out := Document{
		Name:     d.Name,
		Units:    d.Units,
		Views:    slices.Clone(d.Views),
		Elements: slices.Clone(d.Elements),
	}
	slices.SortStableFunc(out.Views, func(a, b View) int {
		return compareStrings(a.ID, b.ID)
	})
	slices.SortStableFunc(out.Elements, func(a, b Element) int {
		return compareStrings(a.ID, b.ID)
	})
	return out
}

func compareStrings(a, b string) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// line returns the element's driving line.
// The second return is false for elements without usable geometry.
func (e Element) line() (geom.Point3, geom.Point3, bool) {
	if e.NoGeometry {
		return geom.Point3{}, geom.Point3{}, false
	}
	return e.Start, e.End, true
}

// String identifies the element in logs.
func (e Element) String() string {
	return fmt.Sprintf("%s(%s)", e.ID, e.Category)
}
