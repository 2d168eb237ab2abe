package flatmap

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/paulmach/orb"

	"github.com/hsorby/cmlibs.exporter/pkg/cfg"
	"github.com/hsorby/cmlibs.exporter/pkg/geometry"
	"github.com/hsorby/cmlibs.exporter/pkg/svgpath"
)

// boundSentinel initializes the bounds accumulator. A document without any
// path elements keeps the inverted sentinel bounds, and the viewBox comes
// out degenerate rather than failing the export.
const boundSentinel = 999999999

// svgNode is a generic SVG element. Attribute values stay strings so that
// attributes round trip through a parse and marshal unchanged.
type svgNode struct {
	XMLName     xml.Name
	Width       string     `xml:"width,attr,omitempty"`
	Height      string     `xml:"height,attr,omitempty"`
	ViewBox     string     `xml:"viewBox,attr,omitempty"`
	D           string     `xml:"d,attr,omitempty"`
	Fill        string     `xml:"fill,attr,omitempty"`
	Stroke      string     `xml:"stroke,attr,omitempty"`
	CX          string     `xml:"cx,attr,omitempty"`
	CY          string     `xml:"cy,attr,omitempty"`
	Radius      string     `xml:"r,attr,omitempty"`
	FillOpacity string     `xml:"fill-opacity,attr,omitempty"`
	Text        string     `xml:",chardata"`
	Children    []*svgNode `xml:",any"`
}

func parseSVG(data []byte) (*svgNode, error) {
	var svg svgNode
	err := xml.Unmarshal(data, &svg)
	return &svg, err
}

// FinalizeSVG computes the drawing bounds of a rendered document, swaps the
// viewBox placeholder for the margined bounds, and pretty prints the
// result. A document or path data that cannot be parsed back is an error.
func FinalizeSVG(svg string) (string, error) {
	doc, err := parseSVG([]byte(svg))
	if err != nil {
		return "", fmt.Errorf("parsing SVG document: %w", err)
	}

	bound, err := drawingBounds(doc)
	if err != nil {
		return "", err
	}

	finished := strings.Replace(svg,
		`viewBox="`+cfg.ViewBoxPlaceholder+`"`,
		`viewBox="`+viewBoxValue(bound)+`"`, 1)

	return prettyPrint(finished)
}

// drawingBounds accumulates the exact bounds of every path element in the
// document. Marker circles do not influence the bounds.
func drawingBounds(n *svgNode) (orb.Bound, error) {
	bound := orb.Bound{
		Min: orb.Point{boundSentinel, boundSentinel},
		Max: orb.Point{-boundSentinel, -boundSentinel},
	}
	err := extendByPaths(n, &bound)
	return bound, err
}

func extendByPaths(n *svgNode, bound *orb.Bound) error {
	if n.XMLName.Local == "path" {
		subPaths, err := svgpath.Parse(n.D)
		if err != nil {
			return fmt.Errorf("parsing path data %q: %w", n.D, err)
		}
		for _, sp := range subPaths {
			cur := orb.Point{sp.X, sp.Y}
			*bound = bound.Extend(cur)
			for _, d := range sp.DrawTo {
				if d.Command == svgpath.CurveTo {
					curve := geometry.CubicBezier{cur, {d.X1, d.Y1}, {d.X2, d.Y2}, {d.X, d.Y}}
					*bound = bound.Union(curve.Bound())
				} else {
					*bound = bound.Extend(orb.Point{d.X, d.Y})
				}
				cur = orb.Point{d.X, d.Y}
			}
		}
	}
	for _, child := range n.Children {
		if err := extendByPaths(child, bound); err != nil {
			return err
		}
	}
	return nil
}

func viewBoxValue(b orb.Bound) string {
	return fmt.Sprintf("%d %d %d %d",
		round(b.Min[0])-cfg.ViewMargin,
		round(b.Min[1])-cfg.ViewMargin,
		round(b.Max[0]-b.Min[0])+2*cfg.ViewMargin,
		round(b.Max[1]-b.Min[1])+2*cfg.ViewMargin)
}

// round adds a half and truncates toward zero.
func round(v float64) int {
	return int(v + 0.5)
}

// prettyPrint reindents a document, keeping attributes as they are.
func prettyPrint(svg string) (string, error) {
	doc, err := parseSVG([]byte(svg))
	if err != nil {
		return "", fmt.Errorf("parsing SVG document: %w", err)
	}
	clearNamespace(doc.Children)
	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return xml.Header + string(out) + "\n", nil
}

func clearNamespace(children []*svgNode) {
	for _, child := range children {
		// SVG namespace at root is enough
		child.XMLName.Space = ""
		clearNamespace(child.Children)
	}
}
