package flatmap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hsorby/cmlibs.exporter/pkg/cfg"
	"github.com/hsorby/cmlibs.exporter/pkg/geometry"
	"github.com/hsorby/cmlibs.exporter/pkg/svgpath"
)

// GroupPaths is one catalogue entry's stitched paths, ready to draw.
type GroupPaths struct {
	Label string
	Paths [][]geometry.CubicBezier
}

// WriteSVG renders the group paths and markers as a compact SVG document.
// The viewBox carries a placeholder until FinalizeSVG computes the drawing
// bounds. Groups without paths are left out. The ungrouped entry draws in
// grey without a feature title; every other group draws as an identified
// centreline. Markers draw as invisible circles carrying their identifier.
func WriteSVG(groups []GroupPaths, markers []Marker) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg width="%d" height="%d" viewBox="%s" xmlns="http://www.w3.org/2000/svg">`,
		cfg.CanvasWidth, cfg.CanvasHeight, cfg.ViewBoxPlaceholder)

	for _, group := range groups {
		subPaths := drawnSubPaths(group.Paths)
		if len(subPaths) == 0 {
			continue
		}
		d := svgpath.ToString(subPaths)
		if group.Label == ungroupedLabel {
			fmt.Fprintf(&b, `<path d="%s" fill="none" stroke="%s"/>`, d, cfg.UngroupedStroke)
			continue
		}
		fmt.Fprintf(&b, `<path d="%s" fill="none" stroke="%s"><title>.centreline id(%s)</title></path>`,
			d, cfg.CentrelineStroke, featureIDPrefix+group.Label)
	}

	for _, m := range markers {
		fmt.Fprintf(&b, `<circle cx="%s" cy="%s" r="%s" fill-opacity="0.0"><title>.id(%s)</title></circle>`,
			formatNumber(m.Position[0]), formatNumber(m.Position[1]),
			formatNumber(cfg.MarkerRadius), m.ID)
	}

	b.WriteString("</svg>")
	return b.String()
}

// drawnSubPaths converts stitched curve paths to path data sub paths, one
// sub path per stitched run.
func drawnSubPaths(paths [][]geometry.CubicBezier) []*svgpath.SubPath {
	subPaths := make([]*svgpath.SubPath, 0, len(paths))
	for _, path := range paths {
		if len(path) == 0 {
			continue
		}
		sp := &svgpath.SubPath{X: path[0][0][0], Y: path[0][0][1]}
		for _, c := range path {
			sp.DrawTo = append(sp.DrawTo, &svgpath.DrawTo{
				Command: svgpath.CurveTo,
				X:       c[3][0],
				Y:       c[3][1],
				X1:      c[1][0],
				Y1:      c[1][1],
				X2:      c[2][0],
				Y2:      c[2][1],
			})
		}
		subPaths = append(subPaths, sp)
	}
	return subPaths
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
