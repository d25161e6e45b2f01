package pipeline

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/dimchain/dimchain/pkg/cache"
	apperrors "github.com/dimchain/dimchain/pkg/errors"
	"github.com/dimchain/dimchain/pkg/geom"
	"github.com/dimchain/dimchain/pkg/model"
	"github.com/dimchain/dimchain/pkg/settings"
)

func testDoc() *model.Document {
	wall := func(id string, y1, y2 float64) model.Element {
		return model.Element{
			ID:       id,
			Category: model.CategoryWall,
			Start:    geom.Point3{X: 0, Y: y1},
			End:      geom.Point3{X: 0, Y: y2},
			Width:    0.66,
			Selected: true,
		}
	}
	return &model.Document{
		Name: "test",
		Views: []model.View{
			{ID: "plan-1", Name: "Level 1", Type: model.ViewTypePlan},
			{ID: "plan-2", Name: "Level 2", Type: model.ViewTypePlan, Elevation: 10},
		},
		Elements: []model.Element{
			wall("w1", 0, 10),
			wall("w2", 20, 30),
		},
	}
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"InlineDocument", Options{Document: testDoc()}, false},
		{"DocumentPath", Options{DocumentPath: "plan.json"}, false},
		{"Neither", Options{}, true},
		{"BadSettings", Options{
			Document: testDoc(),
			Settings: &settings.Settings{ParallelTolerance: -1},
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAndSetDefaults() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExecuteAllViews(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, quietLogger())
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{Document: testDoc()})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.RunID == "" {
		t.Error("run id should be assigned")
	}
	if result.DocumentHash == "" || result.SettingsHash == "" {
		t.Error("input hashes should be computed")
	}
	if len(result.Views) != 2 {
		t.Fatalf("views = %d, want 2", len(result.Views))
	}
	for _, v := range result.Views {
		if v.Error != "" {
			t.Errorf("view %s failed: %s", v.ViewID, v.Error)
		}
		if len(v.Chains) != 1 {
			t.Errorf("view %s chains = %d, want 1", v.ViewID, len(v.Chains))
		}
	}
	if result.TotalChains() != 2 {
		t.Errorf("TotalChains = %d, want 2", result.TotalChains())
	}
}

func TestExecuteViewSubsetAndUnknownView(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, quietLogger())
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Document: testDoc(),
		Views:    []string{"plan-1", "missing"},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(result.Views) != 2 {
		t.Fatalf("views = %d, want 2", len(result.Views))
	}
	if result.Views[0].Error != "" {
		t.Errorf("plan-1 should succeed: %s", result.Views[0].Error)
	}
	// Unknown views are reported on their entry, never abort the run.
	if result.Views[1].Error == "" {
		t.Error("missing view should carry an error")
	}
	if failed := result.Failed(); len(failed) != 1 || failed[0].ViewID != "missing" {
		t.Errorf("Failed() = %v", failed)
	}
}

func TestExecuteUsesCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	runner := NewRunner(fc, nil, quietLogger())
	defer runner.Close()

	opts := Options{Document: testDoc(), Views: []string{"plan-1"}}

	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.Views[0].CacheHit {
		t.Error("first run should not hit the cache")
	}

	second, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !second.Views[0].CacheHit {
		t.Error("second run should hit the cache")
	}
	if len(second.Views[0].Chains) != len(first.Views[0].Chains) {
		t.Error("cached chains differ from computed chains")
	}

	// Refresh bypasses the cache.
	opts.Refresh = true
	third, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if third.Views[0].CacheHit {
		t.Error("refresh run should not hit the cache")
	}
}

func TestExecuteSettingsChangeMissesCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	runner := NewRunner(fc, nil, quietLogger())
	defer runner.Close()

	if _, err := runner.Execute(context.Background(), Options{
		Document: testDoc(), Views: []string{"plan-1"},
	}); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	cfg := settings.Default()
	cfg.DefaultOffset = 5
	second, err := runner.Execute(context.Background(), Options{
		Document: testDoc(), Views: []string{"plan-1"}, Settings: &cfg,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if second.Views[0].CacheHit {
		t.Error("changed settings must not reuse cached chains")
	}
}

func TestExecuteNoNudge(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, quietLogger())
	defer runner.Close()

	plain, err := runner.Execute(context.Background(), Options{
		Document: testDoc(), Views: []string{"plan-1"}, NoNudge: true,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	nudged, err := runner.Execute(context.Background(), Options{
		Document: testDoc(), Views: []string{"plan-1"},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	p := plain.Views[0].Chains[0].Start
	n := nudged.Views[0].Chains[0].Start
	if p == n {
		t.Error("nudge toggle should move the chain")
	}
}

func TestExecuteMissingFile(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, quietLogger())
	defer runner.Close()

	_, err := runner.Execute(context.Background(), Options{
		DocumentPath: t.TempDir() + "/absent.json",
	})
	if !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestExecuteDocumentFromFile(t *testing.T) {
	path := t.TempDir() + "/doc.json"
	if err := model.WriteFile(testDoc(), path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	runner := NewRunner(cache.NewNullCache(), nil, quietLogger())
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{DocumentPath: path})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.DocumentName != "test" || len(result.Views) != 2 {
		t.Errorf("result = %+v", result)
	}
}
