package engine

import (
	"slices"

	"github.com/dimchain/dimchain/pkg/geom"
	"github.com/dimchain/dimchain/pkg/settings"
)

// ElementProvider supplies the immutable geometry snapshot a pass reads.
// Implementations must be deterministic for a given document snapshot:
// the engine enumerates, projects, and discards, and never writes back.
type ElementProvider interface {
	// ElementIDs lists every candidate element. The engine sorts the
	// result, so implementations need not guarantee an order.
	ElementIDs() []ElementID

	// Centerline returns the element's 3D axis endpoints. For levels and
	// grids this is the synthetic datum line. ok is false when the element
	// has no usable geometry, which is a normal, skippable outcome.
	Centerline(id ElementID) (start, end geom.Point3, ok bool)

	// Kind returns the element's category kind (never KindPerpendicularPoint;
	// that classification is the engine's).
	Kind(id ElementID) Kind

	// ToleranceClass returns the adaptive tolerance class derived from the
	// element's category.
	ToleranceClass(id ElementID) ToleranceClass

	// Width returns the element's width, for face-offset computations.
	Width(id ElementID) float64

	// Name returns the element's display name; empty when unnamed.
	Name(id ElementID) string

	// Selected reports whether the element is part of the user's selection.
	Selected(id ElementID) bool

	// References returns the element's available reference handles.
	References(id ElementID) RefSet
}

// BuildCandidates projects every provided element into view space and
// returns the normalized items, plus the count of elements skipped for
// missing or unusable geometry.
//
// Elements are visited in ascending ID order and each ID is emitted at
// most once, even if the provider lists it twice (an element can be
// reachable both directly and as a curtain wall sub-component). Elements
// excluded by category toggles or rejected by the perpendicular
// classifier are not counted as skips; only missing geometry is.
func BuildCandidates(view ViewContext, p ElementProvider, cfg settings.Settings) (items []Item, skipped int) {
	ids := slices.Clone(p.ElementIDs())
	slices.Sort(ids)

	seen := make(map[ElementID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		kind := p.Kind(id)
		if !included(kind, p.ToleranceClass(id), cfg) {
			continue
		}

		refs := p.References(id)
		if refs.Empty() {
			skipped++
			continue
		}
		ref, ok := refs.Pick(cfg.ReferenceType, kind)
		if !ok {
			skipped++
			continue
		}

		start, end, ok := p.Centerline(id)
		if !ok {
			skipped++
			continue
		}

		item := Item{
			Element:  id,
			Kind:     kind,
			Selected: p.Selected(id),
			Ref:      ref,
			Width:    p.Width(id),
			Name:     p.Name(id),
			Tol:      p.ToleranceClass(id),
		}

		p2s := view.ProjectPoint(start)
		p2e := view.ProjectPoint(end)
		chord := p2e.Sub(p2s)
		if chord.Length() >= degenerateProjection {
			dir, ok := chord.Normalize()
			if !ok {
				skipped++
				continue
			}
			item.Point = geom.Midpoint2(p2s, p2e)
			item.Direction = dir
			items = append(items, item)
			continue
		}

		// Degenerate in-plane projection: point or reject.
		pt, ok := classifyPerpendicular(start, end, view, cfg.PerpendicularTolerance)
		if !ok {
			continue
		}
		item.Point = pt
		item.PointOnly = true
		if kind == KindLinear {
			item.Kind = KindPerpendicularPoint
		}
		items = append(items, item)
	}
	return items, skipped
}

// included applies the category toggles.
func included(kind Kind, tol ToleranceClass, cfg settings.Settings) bool {
	switch kind {
	case KindGrid:
		return cfg.IncludeGrids
	case KindLevel:
		return cfg.IncludeLevels
	case KindCurtainWall, KindCurtainGridLine:
		return cfg.IncludeCurtainWalls
	case KindMullion:
		return cfg.IncludeMullions
	default:
		if tol == ToleranceStructural {
			return cfg.IncludeStructural
		}
		return true
	}
}
