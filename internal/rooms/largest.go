package rooms

import (
	"math"

	"plan-tracer/pkg/geometry"
)

// detectLargest implements the whole-footprint policy. Endpoints stay raw;
// connectivity snaps pairs of endpoints within MaxGap of each other instead
// of collapsing onto a shared grid. Each unvisited start yields at most its
// first qualifying cycle, and only the maximum-area candidate survives.
func detectLargest(segments []geometry.Segment, opts Options) []Room {
	valid := make([]geometry.Segment, 0, len(segments))
	for _, seg := range segments {
		if seg.IsValid() {
			valid = append(valid, seg)
		}
	}
	if len(valid) < 3 {
		return nil
	}

	g := buildEndpointGraph(valid, opts.MaxGap)
	visited := make([]bool, len(valid))

	var candidates []Room

	for i := range valid {
		if visited[i] {
			continue
		}
		cycle, ok := g.firstCycle(2*i, opts)
		if !ok {
			continue
		}

		for _, ep := range cycle {
			visited[ep/2] = true
		}

		points := make([]geometry.Point2D, 0, len(cycle)+1)
		for _, ep := range cycle {
			points = append(points, g.points[ep])
		}
		points = append(points, points[0])

		candidates = append(candidates, Room{
			Points: points,
			Area:   math.Abs(geometry.ShoelaceArea(points)),
		})
	}

	if len(candidates) == 0 {
		return nil
	}

	best := 0
	for i := 1; i < len(candidates); i++ {
		if candidates[i].Area > candidates[best].Area {
			best = i
		}
	}
	return []Room{candidates[best]}
}

// endpointGraph indexes segment endpoints: endpoint 2i is segment i's start,
// 2i+1 its end. Neighbors of an endpoint are its same-segment partner first,
// then endpoints of other segments within maxGap, in index order.
type endpointGraph struct {
	points    []geometry.Point2D
	neighbors [][]int
}

func buildEndpointGraph(segments []geometry.Segment, maxGap float64) *endpointGraph {
	n := len(segments)
	g := &endpointGraph{
		points:    make([]geometry.Point2D, 2*n),
		neighbors: make([][]int, 2*n),
	}
	for i, seg := range segments {
		g.points[2*i] = seg.Start
		g.points[2*i+1] = seg.End
	}

	for a := 0; a < 2*n; a++ {
		// Walking along the owning segment comes first.
		g.neighbors[a] = append(g.neighbors[a], a^1)
		for b := 0; b < 2*n; b++ {
			if b/2 == a/2 {
				continue
			}
			if g.points[a].Distance(g.points[b]) <= maxGap {
				g.neighbors[a] = append(g.neighbors[a], b)
			}
		}
	}

	return g
}

// firstCycle walks from the given endpoint and returns the first cycle whose
// area qualifies, as an endpoint-index path. Immediate backtracking is
// forbidden; a walk that dead-ends or revisits mid-path yields no cycle.
func (g *endpointGraph) firstCycle(start int, opts Options) ([]int, bool) {
	startPt := g.points[start]
	path := []int{start}
	onPath := make(map[int]bool, 8)
	onPath[start] = true
	prev := -1
	cur := start

	for steps := 0; steps < len(g.points); steps++ {
		if len(path) >= 3 {
			for _, n := range g.neighbors[cur] {
				if n == prev {
					continue
				}
				if g.points[n].Distance(startPt) <= opts.MaxGap {
					if qualifies(g, path, opts.MinArea) {
						return path, true
					}
					return nil, false
				}
			}
		}

		advanced := false
		for _, n := range g.neighbors[cur] {
			if n == prev || onPath[n] {
				continue
			}
			path = append(path, n)
			onPath[n] = true
			prev = cur
			cur = n
			advanced = true
			break
		}
		if !advanced {
			return nil, false
		}
	}

	return nil, false
}

// qualifies checks the closed path against the area threshold.
func qualifies(g *endpointGraph, path []int, minArea float64) bool {
	points := make([]geometry.Point2D, 0, len(path))
	for _, ep := range path {
		points = append(points, g.points[ep])
	}
	return math.Abs(geometry.ShoelaceArea(points)) >= minArea
}
