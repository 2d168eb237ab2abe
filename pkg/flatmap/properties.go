package flatmap

import (
	"github.com/hsorby/cmlibs.exporter/pkg/cfg"
)

// Feature describes one drawn flatmap feature. Centrelines carry a label
// and type, markers a name and colour; both may carry an ontology term in
// Models. Fields are declared alphabetically so the serialized object keys
// come out sorted at every level.
type Feature struct {
	Colour string `json:"colour,omitempty"`
	Label  string `json:"label,omitempty"`
	Models string `json:"models,omitempty"`
	Name   string `json:"name,omitempty"`
	Type   string `json:"type,omitempty"`
}

// Network describes connectivity between centrelines. The exporter
// declares the slot but leaves it unpopulated.
type Network struct {
	Centrelines []NetworkCentreline `json:"centrelines"`
}

// NetworkCentreline names one centreline taking part in a network.
type NetworkCentreline struct {
	ID string `json:"id"`
}

// Properties is the side car document accompanying the SVG drawing.
type Properties struct {
	Features map[string]Feature `json:"features"`
	Networks []Network          `json:"networks"`
}

// BuildProperties assembles the feature catalogue for every declared group
// and every marker. Groups keep their feature entry even when nothing was
// drawn for them. annotations maps display names to ontology terms and may
// be nil.
func BuildProperties(samples *GroupedSamples, markers []Marker, annotations map[string]string) *Properties {
	props := &Properties{
		Features: map[string]Feature{},
		Networks: []Network{},
	}

	for id, name := range samples.Names {
		feature := Feature{Label: name, Type: "centreline"}
		if term := annotations[name]; term != "" {
			feature.Models = term
		}
		props.Features[id] = feature
	}

	for _, m := range markers {
		props.Features[m.ID] = Feature{
			Colour: cfg.MarkerColour,
			Models: m.Model,
			Name:   m.Name,
		}
	}

	return props
}
