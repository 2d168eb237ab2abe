package flatmap

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/paulmach/orb"

	"github.com/hsorby/cmlibs.exporter/pkg/cfg"
)

// Marker is one datapoint from the marker group, projected onto the
// drawing plane.
type Marker struct {
	ID       string
	Position orb.Point
	Name     string
	Model    string
}

// ExtractMarkers reads the datapoints of the "marker" point group, falling
// back to "markers" when no group of that name exists. A point without a
// name gets a positional one, and a point without an ontology term gets a
// generated placeholder drawn from rng. Points whose coordinates have
// fewer than two components are dropped with a notice; a point whose
// coordinates cannot be evaluated at all fails the extraction.
func ExtractMarkers(scn Scene, rng *rand.Rand) ([]Marker, error) {
	group := scn.Datapoints(markerGroupName)
	if group == nil {
		group = scn.Datapoints("markers")
	}
	if group == nil {
		return nil, nil
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	points := group.Points()
	markers := make([]Marker, 0, len(points))
	for i, p := range points {
		coords, err := p.Evaluate(cfg.MarkerCoordinatesFieldName)
		if err != nil {
			return nil, fmt.Errorf("marker %d: evaluating %s: %w",
				p.Identifier(), cfg.MarkerCoordinatesFieldName, err)
		}
		if len(coords) < 2 {
			log.Printf("marker %d has %d coordinate component(s), dropped", p.Identifier(), len(coords))
			continue
		}

		name, ok := p.Label(cfg.MarkerNameFieldName)
		if !ok || name == "" {
			name = fmt.Sprintf("Unnamed marker %d", i+1)
		}
		model, ok := p.Label(cfg.MarkerIDFieldName)
		if !ok || model == "" {
			model = fmt.Sprintf("UBERON:99%05d", rng.Intn(99999)+1)
		}

		markers = append(markers, Marker{
			ID:       fmt.Sprintf("marker_%d", p.Identifier()),
			Position: orb.Point{coords[0], coords[1]},
			Name:     name,
			Model:    model,
		})
	}
	return markers, nil
}
