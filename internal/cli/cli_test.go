package cli

import (
	"bytes"
	"io"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/dimchain/dimchain/pkg/geom"
	"github.com/dimchain/dimchain/pkg/model"
)

func TestRootCommandStructure(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	if root.Use != "dimchain" {
		t.Errorf("Use = %q", root.Use)
	}

	want := map[string]bool{
		"dimension":  false,
		"views":      false,
		"cache":      false,
		"serve":      false,
		"completion": false,
	}
	for _, sub := range root.Commands() {
		if _, tracked := want[sub.Name()]; tracked {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)

	c.Logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Error("debug should be filtered at info level")
	}

	c.SetLogLevel(log.DebugLevel)
	c.Logger.Debug("visible")
	if buf.Len() == 0 {
		t.Error("debug should pass at debug level")
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"plan-1", []string{"plan-1"}},
		{"plan-1,plan-2", []string{"plan-1", "plan-2"}},
		{" plan-1 , ,plan-2 ", []string{"plan-1", "plan-2"}},
	}
	for _, tt := range tests {
		if got := splitList(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitList(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestViewsCommand(t *testing.T) {
	doc := &model.Document{
		Name:  "cli-test",
		Views: []model.View{{ID: "plan-1", Name: "Level 1", Type: model.ViewTypePlan}},
		Elements: []model.Element{{
			ID:       "w1",
			Category: model.CategoryWall,
			Start:    geom.Point3{},
			End:      geom.Point3{Y: 10},
		}},
	}
	path := t.TempDir() + "/doc.json"
	if err := model.WriteFile(doc, path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"views", path})

	if err := root.Execute(); err != nil {
		t.Fatalf("views command: %v", err)
	}
}

func TestViewsCommandMissingFile(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"views", t.TempDir() + "/absent.json"})

	if err := root.Execute(); err == nil {
		t.Error("missing document should fail")
	}
}
