// Package validate gates pipeline input on straightness, length and
// closed-loop statistics. It never corrects geometry; it only accepts or
// rejects a trace before cleanup (or the AI path) runs.
package validate

import (
	"gonum.org/v1/gonum/stat"

	"plan-tracer/pkg/geometry"
)

// Options configures the acceptance gate.
type Options struct {
	MinStraightness float64 // minimum mean straightness ratio to accept
	MaxSegments     int     // reject traces larger than this
	ClosedTolerance float64 // endpoint distance that counts as closed
}

// DefaultOptions returns the standard gate configuration.
func DefaultOptions() Options {
	return Options{
		MinStraightness: 0.25,
		MaxSegments:     5000,
		ClosedTolerance: 5,
	}
}

// Stats summarizes the input geometry.
type Stats struct {
	PolylineCount     int     `json:"polyline_count"`
	SegmentCount      int     `json:"segment_count"`
	MeanSegmentLength float64 `json:"mean_segment_length"`
	StdSegmentLength  float64 `json:"std_segment_length"`
	MeanStraightness  float64 `json:"mean_straightness"`
	ClosedFraction    float64 `json:"closed_fraction"`
}

// Result is the gate outcome. Err is a human-readable rejection reason,
// empty when Valid.
type Result struct {
	Valid bool   `json:"valid"`
	Err   string `json:"error,omitempty"`
	Stats Stats  `json:"stats"`
}

// Check computes input statistics and applies the acceptance thresholds.
// The input is never mutated.
func Check(polylines []geometry.Polyline, opts Options) Result {
	stats := computeStats(polylines, opts.ClosedTolerance)
	res := Result{Stats: stats}

	switch {
	case stats.PolylineCount == 0 || stats.SegmentCount == 0:
		res.Err = "no usable polylines in input"
	case opts.MaxSegments > 0 && stats.SegmentCount > opts.MaxSegments:
		res.Err = "input exceeds segment budget"
	case stats.MeanStraightness < opts.MinStraightness:
		res.Err = "trace too wobbly to clean deterministically"
	default:
		res.Valid = true
	}

	return res
}

// computeStats walks the polylines once, skipping points that are not
// finite. Straightness of an open polyline is net displacement over path
// length; closed polylines would score 0 by that ratio, so closure
// substitutes a score of 1.
func computeStats(polylines []geometry.Polyline, closedTolerance float64) Stats {
	var s Stats
	var lengths []float64
	var straightness []float64
	closed := 0

	for _, pl := range polylines {
		clean := make(geometry.Polyline, 0, len(pl))
		for _, p := range pl {
			if p.IsFinite() {
				clean = append(clean, p)
			}
		}
		if len(clean) < 2 {
			continue
		}

		s.PolylineCount++
		pathLength := 0.0
		for i := 1; i < len(clean); i++ {
			d := clean[i].Distance(clean[i-1])
			if d < geometry.MinSegmentLength {
				continue
			}
			lengths = append(lengths, d)
			pathLength += d
			s.SegmentCount++
		}

		isClosed := clean.IsClosed(closedTolerance)
		if isClosed {
			closed++
		}

		if pathLength > 0 {
			if isClosed {
				// Closed traces are judged by closure, not displacement.
				straightness = append(straightness, 1)
			} else {
				net := clean[0].Distance(clean[len(clean)-1])
				straightness = append(straightness, net/pathLength)
			}
		}
	}

	if len(lengths) > 0 {
		s.MeanSegmentLength = stat.Mean(lengths, nil)
		s.StdSegmentLength = stat.StdDev(lengths, nil)
	}
	if len(straightness) > 0 {
		s.MeanStraightness = stat.Mean(straightness, nil)
	}
	if s.PolylineCount > 0 {
		s.ClosedFraction = float64(closed) / float64(s.PolylineCount)
	}

	return s
}
