// Package rooms detects closed loops (rooms) in cleaned segment geometry by
// walking an adjacency graph of normalized endpoints.
package rooms

import (
	"math"

	"plan-tracer/pkg/geometry"
)

// Policy selects the loop-detection traversal. The two policies share an
// interface but keep their own tie-break rules; they are intentionally not
// one algorithm.
type Policy int

const (
	// AllLoops collapses endpoints onto a shared tolerance grid and returns
	// every closed loop passing the area filter.
	AllLoops Policy = iota
	// LargestLoopOnly snaps endpoints per segment pair (no shared grid),
	// forbids immediate backtracking, takes the first qualifying cycle per
	// unvisited start, and returns only the maximum-area candidate. Used for
	// whole-footprint selection.
	LargestLoopOnly
)

// Options configures loop detection.
type Options struct {
	Policy   Policy
	MaxGap   float64 // loop-closing gap tolerance
	MinArea  float64 // minimum absolute shoelace area to keep a loop
	GridSize float64 // endpoint normalization grid (AllLoops only)
}

// DefaultOptions returns the standard detection configuration.
func DefaultOptions() Options {
	return Options{
		Policy:   AllLoops,
		MaxGap:   5,
		MinArea:  100,
		GridSize: 5,
	}
}

// Room is a closed polygon formed by connected segments. Points always end
// with a repeat of the first point; Area is the absolute shoelace area.
type Room struct {
	Points []geometry.Point2D `json:"points"`
	Area   float64            `json:"area"`
}

// Detect finds closed loops in the segments according to the policy. The
// adjacency graph is built and discarded within the call; nothing is cached.
func Detect(segments []geometry.Segment, opts Options) []Room {
	if len(segments) == 0 {
		return nil
	}
	if opts.MaxGap == 0 {
		opts.MaxGap = DefaultOptions().MaxGap
	}
	if opts.MinArea == 0 {
		opts.MinArea = DefaultOptions().MinArea
	}
	if opts.GridSize == 0 {
		opts.GridSize = DefaultOptions().GridSize
	}

	switch opts.Policy {
	case LargestLoopOnly:
		return detectLargest(segments, opts)
	default:
		return detectAll(segments, opts)
	}
}

// nodeKey identifies a normalized endpoint cell on the tolerance grid.
type nodeKey struct {
	X, Y int
}

// edgeKey identifies an undirected edge between two nodes.
type edgeKey struct {
	A, B nodeKey
}

func makeEdgeKey(a, b nodeKey) edgeKey {
	if b.X < a.X || (b.X == a.X && b.Y < a.Y) {
		a, b = b, a
	}
	return edgeKey{A: a, B: b}
}

// loopGraph is the transient adjacency built for the AllLoops walk. Neighbor
// lists keep segment iteration order so repeated runs walk identically.
type loopGraph struct {
	grid      float64
	neighbors map[nodeKey][]nodeKey
	edgeSegs  map[edgeKey][]int
}

func buildLoopGraph(segments []geometry.Segment, grid float64) *loopGraph {
	g := &loopGraph{
		grid:      grid,
		neighbors: make(map[nodeKey][]nodeKey),
		edgeSegs:  make(map[edgeKey][]int),
	}

	for i, seg := range segments {
		if !seg.IsValid() {
			continue
		}
		a := g.keyOf(seg.Start)
		b := g.keyOf(seg.End)
		if a == b {
			// Segment collapsed to one cell; contributes no edge.
			continue
		}
		g.addNeighbor(a, b)
		g.addNeighbor(b, a)
		ek := makeEdgeKey(a, b)
		g.edgeSegs[ek] = append(g.edgeSegs[ek], i)
	}

	return g
}

func (g *loopGraph) keyOf(p geometry.Point2D) nodeKey {
	return nodeKey{
		X: int(math.Round(p.X / g.grid)),
		Y: int(math.Round(p.Y / g.grid)),
	}
}

func (g *loopGraph) pointOf(k nodeKey) geometry.Point2D {
	return geometry.Point2D{X: float64(k.X) * g.grid, Y: float64(k.Y) * g.grid}
}

func (g *loopGraph) addNeighbor(from, to nodeKey) {
	for _, n := range g.neighbors[from] {
		if n == to {
			return
		}
	}
	g.neighbors[from] = append(g.neighbors[from], to)
}

// detectAll walks the shared-grid adjacency from each unvisited segment's
// start node. A walk advances to the first unconsumed neighbor not already on
// the path (never the immediately preceding point) and closes when it returns
// within MaxGap of its own start with at least three points. Edges whose
// segments have all been consumed by earlier walks are dead: without that
// gate, a stub hanging off a detected loop's corner would re-walk the loop
// and emit the same room twice.
func detectAll(segments []geometry.Segment, opts Options) []Room {
	g := buildLoopGraph(segments, opts.GridSize)
	visited := make([]bool, len(segments))

	alive := func(a, b nodeKey) bool {
		for _, si := range g.edgeSegs[makeEdgeKey(a, b)] {
			if !visited[si] {
				return true
			}
		}
		return false
	}

	var rooms []Room

	for i, seg := range segments {
		if visited[i] || !seg.IsValid() {
			continue
		}
		start := g.keyOf(seg.Start)
		path, ok := g.walk(start, opts.MaxGap, alive)
		if !ok {
			continue
		}

		// Mark every segment on the closed walk, kept or filtered, so the
		// same loop is not rediscovered from another of its segments.
		for j := 0; j < len(path); j++ {
			k := (j + 1) % len(path)
			for _, si := range g.edgeSegs[makeEdgeKey(path[j], path[k])] {
				visited[si] = true
			}
		}

		points := make([]geometry.Point2D, 0, len(path)+1)
		for _, nk := range path {
			points = append(points, g.pointOf(nk))
		}
		points = append(points, points[0])

		area := math.Abs(geometry.ShoelaceArea(points))
		if area < opts.MinArea {
			continue
		}
		rooms = append(rooms, Room{Points: points, Area: area})
	}

	return rooms
}

// walk runs the DFS advance from start and returns the closed node path, or
// false when the walk dead-ends. Only edges for which alive returns true are
// traversed, for closing as well as advancing.
func (g *loopGraph) walk(start nodeKey, maxGap float64, alive func(a, b nodeKey) bool) ([]nodeKey, bool) {
	startPt := g.pointOf(start)
	path := []nodeKey{start}
	onPath := map[nodeKey]bool{start: true}
	prev := nodeKey{X: math.MinInt32, Y: math.MinInt32}
	cur := start

	for {
		// Close the loop if the start is reachable again.
		if len(path) >= 3 {
			for _, n := range g.neighbors[cur] {
				if n == prev || !alive(cur, n) {
					continue
				}
				if g.pointOf(n).Distance(startPt) <= maxGap {
					return path, true
				}
			}
		}

		advanced := false
		for _, n := range g.neighbors[cur] {
			if n == prev || onPath[n] || !alive(cur, n) {
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
}
