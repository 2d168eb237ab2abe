package scene

import (
	"encoding/json"
	"fmt"
)

type documentNode struct {
	ID     int                  `json:"id"`
	Fields map[string]NodeField `json:"fields"`
}

type documentElement struct {
	ID    int   `json:"id"`
	Nodes []int `json:"nodes"`
}

type documentGroup struct {
	Name     string `json:"name"`
	Elements []int  `json:"elements"`
}

type documentDatapoint struct {
	ID     int                  `json:"id"`
	Group  string               `json:"group"`
	Fields map[string][]float64 `json:"fields"`
	Labels map[string]string    `json:"labels"`
}

type document struct {
	Nodes      []documentNode      `json:"nodes"`
	Elements   []documentElement   `json:"elements"`
	Groups     []documentGroup     `json:"groups"`
	Datapoints []documentDatapoint `json:"datapoints"`
}

// ReadDocument builds a model from a JSON scene document. The document
// lists nodes with their per field values and derivatives, line elements
// referencing two node identifiers, element groups in catalogue order, and
// datapoints that each name the point group they belong to. Elements
// referencing missing nodes and datapoints without a group are errors.
func ReadDocument(data []byte) (*Model, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing scene document: %w", err)
	}

	m := NewModel()
	known := make(map[int]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		m.AddNode(n.ID, n.Fields)
		known[n.ID] = true
	}
	for _, el := range doc.Elements {
		if len(el.Nodes) != 2 {
			return nil, fmt.Errorf("element %d: want 2 nodes, got %d", el.ID, len(el.Nodes))
		}
		for _, id := range el.Nodes {
			if !known[id] {
				return nil, fmt.Errorf("element %d: unknown node %d", el.ID, id)
			}
		}
		m.AddElement(el.ID, el.Nodes[0], el.Nodes[1])
	}
	for _, g := range doc.Groups {
		m.AddGroup(g.Name, g.Elements...)
	}
	for _, p := range doc.Datapoints {
		if p.Group == "" {
			return nil, fmt.Errorf("datapoint %d: missing group name", p.ID)
		}
		m.AddDatapoint(p.Group, p.ID, p.Fields, p.Labels)
	}
	return m, nil
}
