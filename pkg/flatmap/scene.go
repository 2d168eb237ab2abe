// Package flatmap converts a scene of line elements into flatmap artifacts:
// an SVG drawing of the stitched centreline paths and a properties side car
// describing the drawn features.
package flatmap

// Scene is the contract the exporter reads a region through. Implementations
// provide a line mesh, named element groups, and optional point groups
// carrying marker data.
type Scene interface {
	// Mesh returns the region's mesh, or nil when it has none.
	Mesh() Mesh

	// Groups lists the element groups in declaration order.
	Groups() []ElementGroup

	// Datapoints returns the point group with the given name, or nil when
	// no such group exists.
	Datapoints(name string) DatapointGroup

	// BeginChange and EndChange bracket bulk evaluation so implementations
	// can cache field state. Calls nest and must be balanced.
	BeginChange()
	EndChange()
}

// Mesh is a collection of line elements.
type Mesh interface {
	Size() int
	Elements() []Element
}

// Element is a single line element whose fields can be evaluated at a
// parametric location xi. Only the first parametric direction varies along
// the line; the other two select a position on the cross section.
type Element interface {
	Identifier() int

	// Evaluate returns the field components at xi, or an error when the
	// field is not defined over the element.
	Evaluate(field string, xi [3]float64) ([]float64, error)

	// EvaluateDerivative returns the field's first derivative with respect
	// to the given parametric direction (1 based) at xi.
	EvaluateDerivative(field string, direction int, xi [3]float64) ([]float64, error)
}

// ElementGroup is a named subset of a mesh.
type ElementGroup interface {
	Name() string
	ContainsElement(e Element) bool
}

// DatapointGroup is a named collection of datapoints.
type DatapointGroup interface {
	Points() []Datapoint
}

// Datapoint is a single data location with per point fields and labels.
type Datapoint interface {
	Identifier() int

	// Evaluate returns the field components at the point, or an error when
	// the field is not defined on it.
	Evaluate(field string) ([]float64, error)

	// Label returns the point's string field value; ok is false when the
	// field is absent.
	Label(field string) (string, bool)
}
