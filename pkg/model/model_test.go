package model

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dimchain/dimchain/pkg/engine"
	apperrors "github.com/dimchain/dimchain/pkg/errors"
	"github.com/dimchain/dimchain/pkg/geom"
)

func planDoc(elements ...Element) *Document {
	return &Document{
		Name:     "test",
		Units:    "ft",
		Views:    []View{{ID: "plan-1", Type: ViewTypePlan, Elevation: 0}},
		Elements: elements,
	}
}

func wallElem(id string, x1, y1, x2, y2 float64, selected bool) Element {
	return Element{
		ID:       id,
		Category: CategoryWall,
		Start:    geom.Point3{X: x1, Y: y1},
		End:      geom.Point3{X: x2, Y: y2},
		Width:    0.66,
		Selected: selected,
	}
}

func TestKindFor(t *testing.T) {
	tests := []struct {
		category string
		want     engine.Kind
		known    bool
	}{
		{CategoryWall, engine.KindLinear, true},
		{CategoryColumn, engine.KindLinear, true},
		{CategoryFraming, engine.KindLinear, true},
		{CategoryGrid, engine.KindGrid, true},
		{CategoryLevel, engine.KindLevel, true},
		{CategoryCurtainWall, engine.KindCurtainWall, true},
		{CategoryMullion, engine.KindMullion, true},
		{CategoryCurtainGridLine, engine.KindCurtainGridLine, true},
		{"door", engine.KindLinear, false},
	}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			got, known := KindFor(tt.category)
			if got != tt.want || known != tt.known {
				t.Errorf("KindFor(%q) = (%v, %v), want (%v, %v)",
					tt.category, got, known, tt.want, tt.known)
			}
		})
	}
}

func TestToleranceFor(t *testing.T) {
	tests := []struct {
		category string
		want     engine.ToleranceClass
	}{
		{CategoryWall, engine.ToleranceDefault},
		{CategoryColumn, engine.ToleranceStructural},
		{CategoryFraming, engine.ToleranceStructural},
		{CategoryGrid, engine.ToleranceGrid},
		{CategoryLevel, engine.ToleranceGrid},
		{CategoryCurtainWall, engine.ToleranceCurtainWall},
		{CategoryMullion, engine.ToleranceCurtainWall},
		{CategoryCurtainGridLine, engine.ToleranceCurtainWall},
	}
	for _, tt := range tests {
		if got := ToleranceFor(tt.category); got != tt.want {
			t.Errorf("ToleranceFor(%q) = %v, want %v", tt.category, got, tt.want)
		}
	}
}

func TestViewContext(t *testing.T) {
	t.Run("Plan", func(t *testing.T) {
		v := View{ID: "p", Type: ViewTypePlan, Elevation: 12}
		ctx, err := v.Context()
		if err != nil {
			t.Fatalf("Context: %v", err)
		}
		if ctx.Type != engine.ViewPlan || ctx.Elevation != 12 {
			t.Errorf("ctx = %+v", ctx)
		}
	})

	t.Run("SectionNormalizesFrame", func(t *testing.T) {
		v := View{
			ID:    "s",
			Type:  ViewTypeSection,
			Right: geom.Vec3{X: 2},
			Up:    geom.Vec3{Z: 3},
		}
		ctx, err := v.Context()
		if err != nil {
			t.Fatalf("Context: %v", err)
		}
		if ctx.Right.Length() != 1 || ctx.Up.Length() != 1 {
			t.Errorf("frame not normalized: %+v", ctx)
		}
	})

	t.Run("SectionMissingFrame", func(t *testing.T) {
		v := View{ID: "s", Type: ViewTypeSection}
		if _, err := v.Context(); !apperrors.Is(err, apperrors.ErrCodeInvalidView) {
			t.Errorf("err = %v, want INVALID_VIEW", err)
		}
	})

	t.Run("UnknownType", func(t *testing.T) {
		v := View{ID: "x", Type: "axonometric"}
		if _, err := v.Context(); !apperrors.Is(err, apperrors.ErrCodeInvalidView) {
			t.Errorf("err = %v, want INVALID_VIEW", err)
		}
	})
}

func TestDocumentValidate(t *testing.T) {
	tests := []struct {
		name    string
		doc     *Document
		wantErr bool
	}{
		{"Valid", planDoc(wallElem("w1", 0, 0, 0, 10, true)), false},
		{"NoViews", &Document{Elements: []Element{wallElem("w1", 0, 0, 0, 10, true)}}, true},
		{"DuplicateView", &Document{Views: []View{
			{ID: "v", Type: ViewTypePlan}, {ID: "v", Type: ViewTypePlan},
		}}, true},
		{"EmptyElementID", planDoc(Element{Category: CategoryWall}), true},
		{"DuplicateElement", planDoc(
			wallElem("w1", 0, 0, 0, 10, true),
			wallElem("w1", 5, 0, 5, 10, true),
		), true},
		{"UnknownCategory", planDoc(Element{ID: "d1", Category: "door"}), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.doc.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !apperrors.Is(err, apperrors.ErrCodeInvalidDocument) &&
				!apperrors.Is(err, apperrors.ErrCodeInvalidView) {
				t.Errorf("err = %v, want a validation code", err)
			}
		})
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	doc := planDoc(
		wallElem("w2", 5, 0, 5, 10, false),
		wallElem("w1", 0, 0, 0, 10, true),
	)

	data, err := Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(got.Elements) != 2 || got.Name != "test" {
		t.Fatalf("round trip lost data: %+v", got)
	}

	// Serialized element order is by id, regardless of input order.
	if got.Elements[0].ID != "w1" || got.Elements[1].ID != "w2" {
		t.Errorf("elements not sorted: %v, %v", got.Elements[0].ID, got.Elements[1].ID)
	}

	// Identical content serializes identically.
	again, err := Marshal(got)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Equal(data, again) {
		t.Error("serialization is not deterministic")
	}
}

func TestReadRejectsInvalidDocument(t *testing.T) {
	_, err := Read(strings.NewReader(`{"views": []}`))
	if !apperrors.Is(err, apperrors.ErrCodeInvalidDocument) {
		t.Errorf("err = %v, want INVALID_DOCUMENT", err)
	}

	_, err = Read(strings.NewReader(`{not json`))
	if err == nil {
		t.Error("malformed JSON should fail")
	}
}

func TestFileRoundTrip(t *testing.T) {
	doc := planDoc(wallElem("w1", 0, 0, 0, 10, true))
	path := t.TempDir() + "/doc.json"

	if err := WriteFile(doc, path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(got.Elements) != 1 || got.Elements[0].ID != "w1" {
		t.Errorf("round trip lost data: %+v", got)
	}
}

func TestFindView(t *testing.T) {
	doc := planDoc()
	if _, ok := doc.FindView("plan-1"); !ok {
		t.Error("FindView should locate existing view")
	}
	if _, ok := doc.FindView("missing"); ok {
		t.Error("FindView should miss unknown id")
	}
	if ids := doc.ViewIDs(); len(ids) != 1 || ids[0] != "plan-1" {
		t.Errorf("ViewIDs = %v", ids)
	}
}
