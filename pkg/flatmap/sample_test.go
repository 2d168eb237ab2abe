package flatmap_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hsorby/cmlibs.exporter/pkg/flatmap"
	"github.com/hsorby/cmlibs.exporter/pkg/scene"
)

func coords(values, derivatives []float64) map[string]scene.NodeField {
	return map[string]scene.NodeField{
		"coordinates": {Values: values, Derivatives: derivatives},
	}
}

func TestSampleCurves(t *testing.T) {
	m := scene.NewModel()
	m.AddNode(1, coords([]float64{0, 0, 0}, []float64{1, 0, 0}))
	m.AddNode(2, coords([]float64{1, 0, 0}, []float64{1, 0, 0}))
	m.AddNode(3, coords([]float64{10, 0, 0}, []float64{1, 1, 0}))
	m.AddNode(4, coords([]float64{11, 1, 0}, []float64{1, 1, 0}))
	m.AddNode(5, coords([]float64{20, 5, 1}, []float64{0, 1, 0}))
	m.AddNode(6, coords([]float64{20, 6, 1}, []float64{0, 1, 0}))
	m.AddElement(1, 1, 2)
	m.AddElement(2, 3, 4)
	m.AddElement(3, 5, 6)
	m.AddGroup("left vagus", 1)
	m.AddGroup("marker")
	m.AddGroup("right vagus", 2)

	got := flatmap.SampleCurves(m, "coordinates")

	want := &flatmap.GroupedSamples{
		Order: []string{"ungrouped", "group_1", "group_3"},
		Curves: map[string][]flatmap.CurveSample{
			"ungrouped": {{
				{Position: []float64{20, 5, 1}, Derivative: []float64{0, 1, 0}},
				{Position: []float64{20, 6, 1}, Derivative: []float64{0, 1, 0}},
			}},
			"group_1": {{
				{Position: []float64{0, 0, 0}, Derivative: []float64{1, 0, 0}},
				{Position: []float64{1, 0, 0}, Derivative: []float64{1, 0, 0}},
			}},
			"group_3": {{
				{Position: []float64{10, 0, 0}, Derivative: []float64{1, 1, 0}},
				{Position: []float64{11, 1, 0}, Derivative: []float64{1, 1, 0}},
			}},
		},
		Names: map[string]string{
			"nerve_feature_group_1": "left vagus",
			"nerve_feature_group_3": "right vagus",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("incorrect samples: %s", diff)
	}
	if depth := m.ChangeDepth(); depth != 0 {
		t.Errorf("change scopes left open: depth %d", depth)
	}
}

func TestSampleCurvesGroupWidth(t *testing.T) {
	m := scene.NewModel()
	m.AddNode(1, coords([]float64{0, 0, 0}, []float64{1, 0, 0}))
	m.AddNode(2, coords([]float64{1, 0, 0}, []float64{1, 0, 0}))
	m.AddElement(1, 1, 2)

	wantOrder := []string{"ungrouped"}
	wantNames := map[string]string{}
	for i := 1; i <= 10; i++ {
		name := fmt.Sprintf("nerve %d", i)
		if i == 1 {
			m.AddGroup(name, 1)
		} else {
			m.AddGroup(name)
		}
		label := fmt.Sprintf("group_%02d", i)
		wantOrder = append(wantOrder, label)
		wantNames["nerve_feature_"+label] = name
	}

	got := flatmap.SampleCurves(m, "coordinates")

	if diff := cmp.Diff(wantOrder, got.Order); diff != "" {
		t.Errorf("incorrect order: %s", diff)
	}
	if diff := cmp.Diff(wantNames, got.Names); diff != "" {
		t.Errorf("incorrect names: %s", diff)
	}
	// only group_01 has an element; the others stay declared but empty
	if len(got.Curves) != 1 || len(got.Curves["group_01"]) != 1 {
		t.Errorf("incorrect curves: %v", got.Curves)
	}
}

func TestSampleCurvesSharedElements(t *testing.T) {
	m := scene.NewModel()
	m.AddNode(1, coords([]float64{0, 0, 0}, []float64{1, 0, 0}))
	m.AddNode(2, coords([]float64{1, 0, 0}, []float64{1, 0, 0}))
	m.AddElement(1, 1, 2)
	m.AddGroup("vagus", 1)
	m.AddGroup("nerves", 1)

	got := flatmap.SampleCurves(m, "coordinates")

	if len(got.Curves["group_1"]) != 1 || len(got.Curves["group_2"]) != 1 {
		t.Errorf("shared element missing from a group: %v", got.Curves)
	}
	if len(got.Curves["ungrouped"]) != 0 {
		t.Errorf("grouped element counted as ungrouped: %v", got.Curves["ungrouped"])
	}
}

func TestSampleCurvesSkipsFailingElements(t *testing.T) {
	m := scene.NewModel()
	m.AddNode(1, coords([]float64{0, 0, 0}, []float64{1, 0, 0}))
	m.AddNode(2, coords([]float64{1, 0, 0}, []float64{1, 0, 0}))
	// node 3 has no coordinates field, node 4 exists but element 3 also
	// names a node that does not
	m.AddNode(3, map[string]scene.NodeField{})
	m.AddNode(4, coords([]float64{2, 0, 0}, []float64{1, 0, 0}))
	// nodes 5 and 6 carry a one component field
	m.AddNode(5, coords([]float64{0}, []float64{1}))
	m.AddNode(6, coords([]float64{1}, []float64{1}))
	m.AddElement(1, 1, 2)
	m.AddElement(2, 3, 4)
	m.AddElement(3, 4, 99)
	m.AddElement(4, 5, 6)

	got := flatmap.SampleCurves(m, "coordinates")

	want := []flatmap.CurveSample{{
		{Position: []float64{0, 0, 0}, Derivative: []float64{1, 0, 0}},
		{Position: []float64{1, 0, 0}, Derivative: []float64{1, 0, 0}},
	}}
	if diff := cmp.Diff(want, got.Curves["ungrouped"]); diff != "" {
		t.Errorf("incorrect curves: %s", diff)
	}
}

func TestSampleCurvesEmptyModel(t *testing.T) {
	got := flatmap.SampleCurves(scene.NewModel(), "coordinates")
	want := &flatmap.GroupedSamples{
		Curves: map[string][]flatmap.CurveSample{},
		Names:  map[string]string{},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("incorrect samples for empty model: %s", diff)
	}
}
