package flatmap

import (
	"sort"

	"github.com/asim/quadtree"
	"github.com/paulmach/orb"

	"github.com/hsorby/cmlibs.exporter/pkg/cfg"
	"github.com/hsorby/cmlibs.exporter/pkg/geometry"
)

var zeroPoint = quadtree.NewPoint(0, 0, nil)

// endpointTree indexes curve start points for spatial lookup.
type endpointTree struct {
	tree *quadtree.QuadTree
}

func newEndpointTree(b orb.Bound) *endpointTree {
	mid := b.Center()
	halfWidth := b.Max[0] - mid[0]
	halfHeight := b.Max[1] - mid[1]

	// Add a small margin to avoid dropping points at the edges
	halfWidth += 10
	halfHeight += 10

	aabb := quadtree.NewAABB(
		quadtree.NewPoint(mid[0], mid[1], nil),
		quadtree.NewPoint(halfWidth, halfHeight, nil))
	return &endpointTree{tree: quadtree.New(aabb, 0, nil)}
}

// insert records a curve start. Coincident starts share one tree point so
// duplicates never accumulate in a leaf.
func (t *endpointTree) insert(p orb.Point, segment int) {
	probe := quadtree.NewPoint(p[0], p[1], nil)
	points := t.tree.KNearest(quadtree.NewAABB(probe, zeroPoint), 1, nil)
	if len(points) > 0 {
		x, y := points[0].Coordinates()
		if x == p[0] && y == p[1] {
			segments := points[0].Data().(map[int]struct{})
			segments[segment] = struct{}{}
			return
		}
	}
	t.tree.Insert(quadtree.NewPoint(p[0], p[1], map[int]struct{}{segment: {}}))
}

type nearStart struct {
	segment  int
	distance float64
}

// nearStarts returns the curve starts within maxDist of p, nearest first.
func (t *endpointTree) nearStarts(p orb.Point, maxDist float64) []nearStart {
	area := quadtree.NewAABB(
		quadtree.NewPoint(p[0], p[1], nil),
		quadtree.NewPoint(maxDist, maxDist, nil))
	var near []nearStart
	for _, point := range t.tree.Search(area) {
		x, y := point.Coordinates()
		d := geometry.Distance(p, orb.Point{x, y})
		if d > maxDist {
			continue
		}
		for segment := range point.Data().(map[int]struct{}) {
			near = append(near, nearStart{segment: segment, distance: d})
		}
	}
	sort.Slice(near, func(i, j int) bool {
		if near[i].distance != near[j].distance {
			return near[i].distance < near[j].distance
		}
		return near[i].segment < near[j].segment
	})
	return near
}

// NearMiss reports a curve start lying close to a path end without
// coinciding with it. Such a curve was meant to continue the path but
// missed the stitching tolerance.
type NearMiss struct {
	End      orb.Point
	Segment  int
	Distance float64
}

// NearMisses finds curve starts within the near miss distance of a stitched
// path end. Path ends that coincide with some curve start are already
// stitched, or close a loop, and are not reported.
func NearMisses(curves []geometry.CubicBezier, paths [][]geometry.CubicBezier) []NearMiss {
	if len(curves) == 0 || len(paths) == 0 {
		return nil
	}

	bound := orb.Bound{Min: curves[0][0], Max: curves[0][0]}
	starts := make(map[stitchKey]bool, len(curves))
	for _, c := range curves {
		bound = bound.Extend(c[0])
		starts[keyOf(c[0])] = true
	}

	tree := newEndpointTree(bound)
	for i, c := range curves {
		tree.insert(c[0], i)
	}

	var misses []NearMiss
	for _, path := range paths {
		if len(path) == 0 {
			continue
		}
		end := path[len(path)-1][3]
		if starts[keyOf(end)] {
			continue
		}
		for _, n := range tree.nearStarts(end, cfg.NearMissDistance) {
			misses = append(misses, NearMiss{End: end, Segment: n.segment, Distance: n.distance})
		}
	}
	return misses
}
