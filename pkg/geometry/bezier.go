package geometry

import (
	"math"

	"github.com/paulmach/orb"
)

// Component-wise arithmetic over orb's plain [2]float64 points.

func Add(a, b orb.Point) orb.Point {
	return orb.Point{a[0] + b[0], a[1] + b[1]}
}

func Sub(a, b orb.Point) orb.Point {
	return orb.Point{a[0] - b[0], a[1] - b[1]}
}

func Scale(p orb.Point, f float64) orb.Point {
	return orb.Point{p[0] * f, p[1] * f}
}

func Distance(a, b orb.Point) float64 {
	return math.Hypot(a[0]-b[0], a[1]-b[1])
}

// CubicBezier holds the four control points of a cubic Bézier segment,
// b0 (start) through b3 (end).
type CubicBezier [4]orb.Point

// BezierFromHermite converts a curve given by its end positions and end
// tangents into Bézier control points. The interior control points sit one
// third of the tangent from each end: b1 = p0 + t0/3, b2 = p1 - t1/3.
func BezierFromHermite(p0, t0, p1, t1 orb.Point) CubicBezier {
	return CubicBezier{
		p0,
		Add(p0, Scale(t0, 1.0/3.0)),
		Sub(p1, Scale(t1, 1.0/3.0)),
		p1,
	}
}

// At evaluates the curve at parameter t in [0, 1].
func (c CubicBezier) At(t float64) orb.Point {
	s := 1 - t
	w0 := s * s * s
	w1 := 3 * s * s * t
	w2 := 3 * s * t * t
	w3 := t * t * t
	return orb.Point{
		w0*c[0][0] + w1*c[1][0] + w2*c[2][0] + w3*c[3][0],
		w0*c[0][1] + w1*c[1][1] + w2*c[2][1] + w3*c[3][1],
	}
}

// Bound returns the tight axis-aligned bounding box of the segment. The
// control hull only bounds the curve loosely; the tight box is the endpoints
// extended by every interior extremum, where a coordinate's derivative
// vanishes.
func (c CubicBezier) Bound() orb.Bound {
	b := orb.Bound{Min: c[0], Max: c[0]}.Extend(c[3])
	for axis := 0; axis < 2; axis++ {
		d0 := c[1][axis] - c[0][axis]
		d1 := c[2][axis] - c[1][axis]
		d2 := c[3][axis] - c[2][axis]
		// B'(t)/3 in power form: (d0-2d1+d2)t^2 + 2(d1-d0)t + d0.
		roots, n := solveQuadratic(d0, 2*(d1-d0), d0-2*d1+d2)
		for _, t := range roots[:n] {
			if 0 < t && t < 1 {
				b = b.Extend(c.At(t))
			}
		}
	}
	return b
}

// solveQuadratic finds the real roots of c0 + c1*t + c2*t^2 = 0. A vanishing
// leading coefficient degrades to the linear root.
func solveQuadratic(c0, c1, c2 float64) ([2]float64, int) {
	if c2 == 0 {
		if c1 == 0 {
			return [2]float64{}, 0
		}
		return [2]float64{-c0 / c1}, 1
	}
	disc := c1*c1 - 4*c2*c0
	if disc < 0 {
		return [2]float64{}, 0
	}
	if disc == 0 {
		return [2]float64{-0.5 * c1 / c2}, 1
	}
	// Stable form, avoids cancellation: https://math.stackexchange.com/questions/866331
	q := -0.5 * (c1 + math.Copysign(math.Sqrt(disc), c1))
	r1, r2 := q/c2, c0/q
	if r2 < r1 {
		r1, r2 = r2, r1
	}
	return [2]float64{r1, r2}, 2
}
