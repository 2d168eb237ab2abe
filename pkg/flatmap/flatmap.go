package flatmap

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/hsorby/cmlibs.exporter/pkg/cfg"
)

const defaultPrefix = "flatmap"

// Exporter writes the flatmap artifacts for a scene: the SVG drawing of
// its stitched centreline paths and the properties side car.
type Exporter struct {
	OutputDir        string
	Prefix           string
	AnnotationsCSV   string
	CoordinatesField string

	rng *rand.Rand
}

// New returns an exporter writing into outputDir. An empty prefix defaults
// to "flatmap".
func New(outputDir, prefix string) *Exporter {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Exporter{
		OutputDir:        outputDir,
		Prefix:           prefix,
		CoordinatesField: cfg.CoordinatesFieldName,
		rng:              rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetRand replaces the source of generated placeholder ontology terms. A
// fixed seed makes the artifacts reproducible.
func (e *Exporter) SetRand(rng *rand.Rand) {
	e.rng = rng
}

// Export samples the scene's coordinate field, stitches the curves of each
// group into paths, and writes <prefix>.svg and properties.json into the
// output directory.
func (e *Exporter) Export(scn Scene) error {
	field := e.CoordinatesField
	if field == "" {
		field = cfg.CoordinatesFieldName
	}
	prefix := e.Prefix
	if prefix == "" {
		prefix = defaultPrefix
	}

	samples := SampleCurves(scn, field)

	var groups []GroupPaths
	for _, g := range BezierCurves(samples) {
		paths := ConnectedPaths(g.Curves)
		for _, miss := range NearMisses(g.Curves, paths) {
			log.Printf("%s: path ends at (%g, %g), %g away from the start of curve %d",
				g.Label, miss.End[0], miss.End[1], miss.Distance, miss.Segment)
		}
		groups = append(groups, GroupPaths{Label: g.Label, Paths: paths})
	}

	markers, err := ExtractMarkers(scn, e.rng)
	if err != nil {
		return err
	}

	svg, err := FinalizeSVG(WriteSVG(groups, markers))
	if err != nil {
		return err
	}

	var annotations map[string]string
	if e.AnnotationsCSV != "" {
		if annotations, err = LoadAnnotations(e.AnnotationsCSV); err != nil {
			return err
		}
	}

	properties, err := json.MarshalIndent(BuildProperties(samples, markers, annotations), "", "  ")
	if err != nil {
		return err
	}

	svgName := filepath.Join(e.OutputDir, prefix+".svg")
	if err := os.WriteFile(svgName, []byte(svg), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", svgName, err)
	}
	propertiesName := filepath.Join(e.OutputDir, "properties.json")
	if err := os.WriteFile(propertiesName, properties, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", propertiesName, err)
	}
	return nil
}
