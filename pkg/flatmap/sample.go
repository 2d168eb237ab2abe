package flatmap

import (
	"fmt"
	"strconv"
)

const (
	featureIDPrefix = "nerve_feature_"
	ungroupedLabel  = "ungrouped"
	markerGroupName = "marker"
)

// EndSample holds a field evaluation at one end of a line element.
type EndSample struct {
	Position   []float64
	Derivative []float64
}

// CurveSample pairs the end evaluations of a line element, in order along
// the first parametric direction.
type CurveSample [2]EndSample

// GroupedSamples is the element field data of a scene sorted into named
// catalogue entries. Order lists the entry labels with "ungrouped" first
// and group labels following in declaration order; entries without curves
// stay listed. Names maps the SVG feature identifier of each declared
// group to its display name.
type GroupedSamples struct {
	Order  []string
	Curves map[string][]CurveSample
	Names  map[string]string
}

// SampleCurves evaluates the named coordinate field and its first
// parametric derivative at both ends of every line element, sorted by
// group membership. Elements the field cannot be evaluated on, and groups
// named "marker", are skipped. Group labels are positional: "group_NNN"
// where NNN is the group's one based declaration index, zero padded to the
// width of the group count.
func SampleCurves(scn Scene, field string) *GroupedSamples {
	samples := &GroupedSamples{
		Curves: map[string][]CurveSample{},
		Names:  map[string]string{},
	}

	mesh := scn.Mesh()
	if mesh == nil || mesh.Size() == 0 {
		return samples
	}

	scn.BeginChange()
	defer scn.EndChange()

	type sampled struct {
		el     Element
		sample CurveSample
	}
	var line []sampled
	for _, el := range mesh.Elements() {
		sample, ok := sampleElement(el, field)
		if !ok {
			continue
		}
		line = append(line, sampled{el, sample})
	}

	groups := scn.Groups()
	width := len(strconv.Itoa(len(groups)))

	samples.Order = append(samples.Order, ungroupedLabel)
	for _, s := range line {
		if !grouped(groups, s.el) {
			samples.Curves[ungroupedLabel] = append(samples.Curves[ungroupedLabel], s.sample)
		}
	}

	for i, group := range groups {
		if group.Name() == markerGroupName {
			continue
		}
		label := fmt.Sprintf("group_%0*d", width, i+1)
		samples.Order = append(samples.Order, label)
		samples.Names[featureIDPrefix+label] = group.Name()
		for _, s := range line {
			if group.ContainsElement(s.el) {
				samples.Curves[label] = append(samples.Curves[label], s.sample)
			}
		}
	}

	return samples
}

// sampleElement evaluates position and first direction derivative at both
// ends of the element, on the middle of the cross section. Any evaluation
// failure, or a field with fewer than two components, drops the element.
func sampleElement(el Element, field string) (CurveSample, bool) {
	var sample CurveSample
	for i, xi := range [2][3]float64{{0, 0.5, 0.5}, {1, 0.5, 0.5}} {
		position, err := el.Evaluate(field, xi)
		if err != nil {
			return sample, false
		}
		derivative, err := el.EvaluateDerivative(field, 1, xi)
		if err != nil {
			return sample, false
		}
		if len(position) < 2 || len(derivative) < 2 {
			return sample, false
		}
		sample[i] = EndSample{Position: position, Derivative: derivative}
	}
	return sample, true
}

// grouped reports whether any catalogue group contains the element. Groups
// named "marker" hold datapoints, not line elements, and do not count.
func grouped(groups []ElementGroup, el Element) bool {
	for _, g := range groups {
		if g.Name() == markerGroupName {
			continue
		}
		if g.ContainsElement(el) {
			return true
		}
	}
	return false
}
