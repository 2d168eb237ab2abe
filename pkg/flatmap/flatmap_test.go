package flatmap_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hsorby/cmlibs.exporter/pkg/flatmap"
	"github.com/hsorby/cmlibs.exporter/pkg/scene"
)

// exportModel is a small region: two chained elements forming one named
// centreline, one stray element, and one marker point.
func exportModel() *scene.Model {
	m := scene.NewModel()
	m.AddNode(1, coords([]float64{0, 0, 0}, []float64{3, 0, 0}))
	m.AddNode(2, coords([]float64{3, 0, 0}, []float64{3, 0, 0}))
	m.AddNode(3, coords([]float64{6, 0, 0}, []float64{3, 0, 0}))
	m.AddNode(4, coords([]float64{0, 10, 0}, []float64{3, 0, 0}))
	m.AddNode(5, coords([]float64{3, 10, 0}, []float64{3, 0, 0}))
	m.AddElement(1, 1, 2)
	m.AddElement(2, 2, 3)
	m.AddElement(3, 4, 5)
	m.AddGroup("vagus nerve", 1, 2)
	m.AddDatapoint("marker", 7,
		map[string][]float64{"marker_data_coordinates": {1, 2, 0}},
		map[string]string{"marker_data_name": "tip", "marker_data_id": "UBERON:77"})
	return m
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	annotations := writeTempFile(t, "Term ID,Group name\nUBERON:0001759,vagus nerve\n")

	exporter := flatmap.New(dir, "")
	exporter.AnnotationsCSV = annotations
	if err := exporter.Export(exportModel()); err != nil {
		t.Fatalf("export failed: %s", err)
	}

	svg, err := os.ReadFile(filepath.Join(dir, "flatmap.svg"))
	if err != nil {
		t.Fatalf("missing SVG artifact: %s", err)
	}
	// the chained elements stitch into a single two segment path drawn as
	// the identified centreline; the stray element draws in grey
	wantSVG := `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="1000" height="1000" viewBox="-10 -10 26 30">
  <path d="M 0 10 C 1 10 2 10 3 10" fill="none" stroke="grey"></path>
  <path d="M 0 0 C 1 0 2 0 3 0 C 4 0 5 0 6 0" fill="none" stroke="#01136e">
    <title>.centreline id(nerve_feature_group_1)</title>
  </path>
  <circle cx="1" cy="2" r="3" fill-opacity="0.0">
    <title>.id(marker_7)</title>
  </circle>
</svg>
`
	if diff := cmp.Diff(wantSVG, string(svg)); diff != "" {
		t.Errorf("incorrect SVG artifact: %s", diff)
	}

	properties, err := os.ReadFile(filepath.Join(dir, "properties.json"))
	if err != nil {
		t.Fatalf("missing properties artifact: %s", err)
	}
	wantProperties := `{
  "features": {
    "marker_7": {
      "colour": "orange",
      "models": "UBERON:77",
      "name": "tip"
    },
    "nerve_feature_group_1": {
      "label": "vagus nerve",
      "models": "UBERON:0001759",
      "type": "centreline"
    }
  },
  "networks": []
}`
	if diff := cmp.Diff(wantProperties, string(properties)); diff != "" {
		t.Errorf("incorrect properties artifact: %s", diff)
	}
}

func TestExportPrefix(t *testing.T) {
	dir := t.TempDir()
	exporter := flatmap.New(dir, "rat")
	if err := exporter.Export(exportModel()); err != nil {
		t.Fatalf("export failed: %s", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "rat.svg")); err != nil {
		t.Errorf("missing prefixed SVG artifact: %s", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "properties.json")); err != nil {
		t.Errorf("missing properties artifact: %s", err)
	}
}

func TestExportEmptyScene(t *testing.T) {
	dir := t.TempDir()
	if err := flatmap.New(dir, "").Export(scene.NewModel()); err != nil {
		t.Fatalf("export failed: %s", err)
	}

	properties, err := os.ReadFile(filepath.Join(dir, "properties.json"))
	if err != nil {
		t.Fatalf("missing properties artifact: %s", err)
	}
	if diff := cmp.Diff("{\n  \"features\": {},\n  \"networks\": []\n}", string(properties)); diff != "" {
		t.Errorf("incorrect properties artifact: %s", diff)
	}
}

func TestExportErrors(t *testing.T) {
	dir := t.TempDir()

	// annotations file that cannot be read
	exporter := flatmap.New(dir, "")
	exporter.AnnotationsCSV = filepath.Join(dir, "absent.csv")
	if err := exporter.Export(exportModel()); err == nil {
		t.Error("want error for unreadable annotations")
	}

	// marker datapoint without coordinates
	m := scene.NewModel()
	m.AddDatapoint("marker", 1, nil, nil)
	if err := flatmap.New(dir, "").Export(m); err == nil {
		t.Error("want error for marker without coordinates")
	}

	// output directory that does not exist
	if err := flatmap.New(filepath.Join(dir, "missing", "nested"), "").Export(exportModel()); err == nil {
		t.Error("want error for missing output directory")
	}
}
