// Package scene provides an in-memory region model implementing the field
// evaluation contract the flatmap exporter consumes, and a JSON document
// reader for building one. Elements are two node lines whose fields
// interpolate with cubic Hermite bases along the first parametric
// direction; the cross section directions do not vary the fields.
package scene

import (
	"fmt"

	"github.com/hsorby/cmlibs.exporter/pkg/flatmap"
)

// NodeField holds one field's parameters at a node: a value and a first
// derivative per component.
type NodeField struct {
	Values      []float64 `json:"values"`
	Derivatives []float64 `json:"derivatives"`
}

type node struct {
	id     int
	fields map[string]NodeField
}

type element struct {
	id    int
	nodes [2]int
}

type group struct {
	name    string
	members map[int]struct{}
}

type datapoint struct {
	id     int
	fields map[string][]float64
	labels map[string]string
}

// Model is a region: a mesh of two node line elements, element groups in
// declaration order, and named datapoint groups.
type Model struct {
	nodes    map[int]*node
	elements []*element
	groups   []*group
	points   map[string][]*datapoint
	changes  int
}

var _ flatmap.Scene = (*Model)(nil)

func NewModel() *Model {
	return &Model{
		nodes:  map[int]*node{},
		points: map[string][]*datapoint{},
	}
}

// AddNode registers a node and its per field parameters. Registering an
// identifier again replaces the earlier node.
func (m *Model) AddNode(id int, fields map[string]NodeField) {
	m.nodes[id] = &node{id: id, fields: fields}
}

// AddElement appends a line element joining two nodes, in order along the
// first parametric direction.
func (m *Model) AddElement(id, start, end int) {
	m.elements = append(m.elements, &element{id: id, nodes: [2]int{start, end}})
}

// AddGroup declares a named element group. Declaration order is the
// catalogue order.
func (m *Model) AddGroup(name string, elements ...int) {
	g := &group{name: name, members: make(map[int]struct{}, len(elements))}
	for _, id := range elements {
		g.members[id] = struct{}{}
	}
	m.groups = append(m.groups, g)
}

// AddDatapoint appends a datapoint to the named point group, creating the
// group when needed.
func (m *Model) AddDatapoint(groupName string, id int, fields map[string][]float64, labels map[string]string) {
	m.points[groupName] = append(m.points[groupName], &datapoint{id: id, fields: fields, labels: labels})
}

// Mesh returns the model's mesh. A model always has one, possibly empty.
func (m *Model) Mesh() flatmap.Mesh {
	return m
}

func (m *Model) Size() int {
	return len(m.elements)
}

func (m *Model) Elements() []flatmap.Element {
	out := make([]flatmap.Element, len(m.elements))
	for i, el := range m.elements {
		out[i] = elementView{model: m, el: el}
	}
	return out
}

func (m *Model) Groups() []flatmap.ElementGroup {
	out := make([]flatmap.ElementGroup, len(m.groups))
	for i, g := range m.groups {
		out[i] = groupView{g}
	}
	return out
}

func (m *Model) Datapoints(name string) flatmap.DatapointGroup {
	points, ok := m.points[name]
	if !ok {
		return nil
	}
	return pointGroupView{points}
}

func (m *Model) BeginChange() {
	m.changes++
}

func (m *Model) EndChange() {
	m.changes--
}

// ChangeDepth reports the nesting depth of open change scopes. Balanced
// callers leave it at zero.
func (m *Model) ChangeDepth() int {
	return m.changes
}

type elementView struct {
	model *Model
	el    *element
}

func (v elementView) Identifier() int {
	return v.el.id
}

// Evaluate interpolates the field between the element's nodes with cubic
// Hermite basis functions of xi[0].
func (v elementView) Evaluate(field string, xi [3]float64) ([]float64, error) {
	start, end, err := v.nodeFields(field)
	if err != nil {
		return nil, err
	}
	t := xi[0]
	h00 := 2*t*t*t - 3*t*t + 1
	h10 := t*t*t - 2*t*t + t
	h01 := -2*t*t*t + 3*t*t
	h11 := t*t*t - t*t
	out := make([]float64, len(start.Values))
	for c := range out {
		out[c] = h00*start.Values[c] + h10*start.Derivatives[c] + h01*end.Values[c] + h11*end.Derivatives[c]
	}
	return out, nil
}

// EvaluateDerivative differentiates the interpolation with respect to
// xi[0]. The cross section directions carry no field variation, so only
// direction 1 is defined.
func (v elementView) EvaluateDerivative(field string, direction int, xi [3]float64) ([]float64, error) {
	if direction != 1 {
		return nil, fmt.Errorf("element %d: no derivative in direction %d", v.el.id, direction)
	}
	start, end, err := v.nodeFields(field)
	if err != nil {
		return nil, err
	}
	t := xi[0]
	d00 := 6*t*t - 6*t
	d10 := 3*t*t - 4*t + 1
	d01 := -6*t*t + 6*t
	d11 := 3*t*t - 2*t
	out := make([]float64, len(start.Values))
	for c := range out {
		out[c] = d00*start.Values[c] + d10*start.Derivatives[c] + d01*end.Values[c] + d11*end.Derivatives[c]
	}
	return out, nil
}

func (v elementView) nodeFields(field string) (NodeField, NodeField, error) {
	var fields [2]NodeField
	for i, id := range v.el.nodes {
		n, ok := v.model.nodes[id]
		if !ok {
			return NodeField{}, NodeField{}, fmt.Errorf("element %d: node %d not in model", v.el.id, id)
		}
		f, ok := n.fields[field]
		if !ok {
			return NodeField{}, NodeField{}, fmt.Errorf("element %d: field %q not defined on node %d", v.el.id, field, id)
		}
		fields[i] = f
	}
	start, end := fields[0], fields[1]
	n := len(start.Values)
	if len(start.Derivatives) != n || len(end.Values) != n || len(end.Derivatives) != n {
		return NodeField{}, NodeField{}, fmt.Errorf("element %d: inconsistent component counts for field %q", v.el.id, field)
	}
	return start, end, nil
}

type groupView struct {
	g *group
}

func (v groupView) Name() string {
	return v.g.name
}

func (v groupView) ContainsElement(e flatmap.Element) bool {
	_, ok := v.g.members[e.Identifier()]
	return ok
}

type pointGroupView struct {
	points []*datapoint
}

func (v pointGroupView) Points() []flatmap.Datapoint {
	out := make([]flatmap.Datapoint, len(v.points))
	for i, p := range v.points {
		out[i] = datapointView{p}
	}
	return out
}

type datapointView struct {
	p *datapoint
}

func (v datapointView) Identifier() int {
	return v.p.id
}

func (v datapointView) Evaluate(field string) ([]float64, error) {
	values, ok := v.p.fields[field]
	if !ok {
		return nil, fmt.Errorf("datapoint %d: field %q not defined", v.p.id, field)
	}
	return values, nil
}

func (v datapointView) Label(field string) (string, bool) {
	value, ok := v.p.labels[field]
	return value, ok
}
