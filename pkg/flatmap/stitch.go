package flatmap

import (
	"log"

	"github.com/paulmach/orb"

	"github.com/hsorby/cmlibs.exporter/pkg/cfg"
	"github.com/hsorby/cmlibs.exporter/pkg/geometry"
)

// stitchKey is a quantized plane position. Curve ends that quantize to the
// same key are treated as coincident when joining curves into paths.
type stitchKey [2]int64

func keyOf(p orb.Point) stitchKey {
	return stitchKey{
		int64(p[0] * cfg.StitchKeyScale),
		int64(p[1] * cfg.StitchKeyScale),
	}
}

// ConnectedPaths joins curves whose ends coincide into ordered paths. Each
// path starts at the earliest curve of its connected run and follows end to
// start matches until the run is exhausted or closes on itself. Curves with
// the same start point overwrite each other in the lookup; the last one
// wins.
func ConnectedPaths(curves []geometry.CubicBezier) [][]geometry.CubicBezier {
	begin := make(map[stitchKey]int, len(curves))
	for i, c := range curves {
		key := keyOf(c[0])
		if _, ok := begin[key]; ok {
			log.Printf("duplicate curve start point (%g, %g)", c[0][0], c[0][1])
		}
		begin[key] = i
	}

	uf := newUnionFind(len(curves))
	for i, c := range curves {
		if j, ok := begin[keyOf(c[3])]; ok {
			uf.union(j, i)
		}
	}

	var order []int
	seen := make(map[int]bool)
	for i := range curves {
		root := uf.find(i)
		if !seen[root] {
			seen[root] = true
			order = append(order, root)
		}
	}

	paths := make([][]geometry.CubicBezier, 0, len(order))
	for _, root := range order {
		paths = append(paths, linearize(curves, begin, root))
	}
	return paths
}

// linearize walks a connected run from its head curve, following each
// curve's end key to the curve starting there. A repeated curve or a zero
// length step ends the walk, so closed runs terminate after one lap.
func linearize(curves []geometry.CubicBezier, begin map[stitchKey]int, head int) []geometry.CubicBezier {
	visited := map[int]bool{head: true}
	path := []geometry.CubicBezier{curves[head]}
	key := keyOf(curves[head][3])
	for {
		j, ok := begin[key]
		if !ok {
			break
		}
		if visited[j] {
			log.Printf("path loops back to curve %d, ending it", j)
			break
		}
		visited[j] = true
		path = append(path, curves[j])
		old := key
		key = keyOf(curves[j][3])
		if key == old {
			log.Printf("curve %d ends where it starts, ending path", j)
			break
		}
	}
	return path
}

// unionFind is an arena of indexes. A negative parent marks a root.
type unionFind struct {
	parent []int
}

func newUnionFind(n int) *unionFind {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = -1
	}
	return &unionFind{parent: parent}
}

func (u *unionFind) find(i int) int {
	root := i
	for u.parent[root] >= 0 {
		root = u.parent[root]
	}
	for u.parent[i] >= 0 {
		next := u.parent[i]
		u.parent[i] = root
		i = next
	}
	return root
}

// union merges i's run into j's, leaving j's root as the root of both.
func (u *unionFind) union(i, j int) {
	ri, rj := u.find(i), u.find(j)
	if ri != rj {
		u.parent[ri] = rj
	}
}
