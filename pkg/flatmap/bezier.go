package flatmap

import (
	"github.com/paulmach/orb"

	"github.com/hsorby/cmlibs.exporter/pkg/geometry"
)

// GroupCurves is one catalogue entry's curves on the drawing plane.
type GroupCurves struct {
	Label  string
	Curves []geometry.CubicBezier
}

// BezierCurves converts sampled element data to cubic Bezier segments,
// projected onto the drawing plane. Entries without curves are dropped.
func BezierCurves(samples *GroupedSamples) []GroupCurves {
	var out []GroupCurves
	for _, label := range samples.Order {
		curveSamples := samples.Curves[label]
		if len(curveSamples) == 0 {
			continue
		}
		curves := make([]geometry.CubicBezier, len(curveSamples))
		for i, s := range curveSamples {
			curves[i] = geometry.BezierFromHermite(
				plane(s[0].Position), plane(s[0].Derivative),
				plane(s[1].Position), plane(s[1].Derivative))
		}
		out = append(out, GroupCurves{Label: label, Curves: curves})
	}
	return out
}

// plane projects a field value onto the drawing plane, keeping the first
// two components.
func plane(v []float64) orb.Point {
	return orb.Point{v[0], v[1]}
}
