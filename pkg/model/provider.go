package model

import (
	"github.com/dimchain/dimchain/pkg/engine"
	"github.com/dimchain/dimchain/pkg/geom"
)

// Provider adapts a Document to the engine's element contract. It is
// read-only: a Provider built once serves any number of view passes.
type Provider struct {
	ids      []engine.ElementID
	elements map[engine.ElementID]Element
}

// NewProvider indexes the document's elements for engine access.
func NewProvider(d *Document) *Provider {
	p := &Provider{
		ids:      make([]engine.ElementID, 0, len(d.Elements)),
		elements: make(map[engine.ElementID]Element, len(d.Elements)),
	}
	for _, e := range d.Elements {
		id := engine.ElementID(e.ID)
		p.ids = append(p.ids, id)
		p.elements[id] = e
	}
	return p
}

// ElementIDs lists every element in the snapshot.
func (p *Provider) ElementIDs() []engine.ElementID {
	return p.ids
}

// Centerline returns the element's driving line.
func (p *Provider) Centerline(id engine.ElementID) (geom.Point3, geom.Point3, bool) {
	e, ok := p.elements[id]
	if !ok {
		return geom.Point3{}, geom.Point3{}, false
	}
	return e.line()
}

// Kind returns the element's engine kind.
func (p *Provider) Kind(id engine.ElementID) engine.Kind {
	k, _ := KindFor(p.elements[id].Category)
	return k
}

// ToleranceClass returns the element's collinearity tolerance class.
func (p *Provider) ToleranceClass(id engine.ElementID) engine.ToleranceClass {
	return ToleranceFor(p.elements[id].Category)
}

// Width returns the element's width, zero for widthless elements.
func (p *Provider) Width(id engine.ElementID) float64 {
	return p.elements[id].Width
}

// Name returns the element's display name.
func (p *Provider) Name(id engine.ElementID) string {
	return p.elements[id].Name
}

// Selected reports whether the element was selected in the export.
func (p *Provider) Selected(id engine.ElementID) bool {
	return p.elements[id].Selected
}

// References builds the reference handles the snapshot can offer.
// Every element carries a centerline handle; elements with width also
// expose their two faces.
func (p *Provider) References(id engine.ElementID) engine.RefSet {
	e, ok := p.elements[id]
	if !ok {
		return engine.RefSet{}
	}
	set := engine.RefSet{
		Centerline: &engine.Reference{Element: id, Kind: engine.RefCenterline},
		Geometric:  &engine.Reference{Element: id, Kind: engine.RefGeometric},
	}
	if e.Width > 0 {
		set.ExteriorFace = &engine.Reference{Element: id, Kind: engine.RefExteriorFace}
		set.InteriorFace = &engine.Reference{Element: id, Kind: engine.RefInteriorFace}
	}
	return set
}

// Ensure Provider implements the engine contract.
var _ engine.ElementProvider = (*Provider)(nil)
