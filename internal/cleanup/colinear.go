package cleanup

import (
	"sort"

	"plan-tracer/pkg/geometry"
)

// MergeColinear fuses same-line segments separated by small gaps. Groups use
// the same undirected-angle rule as MergeParallel, but each group is sorted
// by projection onto its FIRST member's direction (not the longest member's;
// the asymmetry with the parallel merger is deliberate) and fused in a single
// left-to-right sweep. Result quality is sort-order dependent, not all-pairs
// optimal.
//
// The gap between the running segment and the next is the Euclidean distance
// between their adjacent endpoints, so parallel segments offset from the
// reference line stay apart even when their projected extents touch.
func MergeColinear(segments []geometry.Segment, opts ColinearOptions) []geometry.Segment {
	valid := make([]geometry.Segment, 0, len(segments))
	for _, seg := range segments {
		if seg.IsValid() {
			valid = append(valid, seg)
		}
	}
	if len(valid) == 0 {
		return nil
	}

	out := make([]geometry.Segment, 0, len(valid))

	for _, group := range geometry.GroupByAngle(valid, opts.AngleTolerance) {
		if len(group) == 1 {
			out = append(out, valid[group[0]])
			continue
		}
		out = append(out, sweepGroup(valid, group, opts.Distance)...)
	}

	return out
}

// spanInterval is a segment's projected extent along the group reference
// direction, keeping the actual endpoints at the extremes.
type spanInterval struct {
	thickness  float64
	ptMin      geometry.Point2D
	ptMax      geometry.Point2D
	tMin, tMax float64
}

// sweepGroup sorts group members along the first member's direction and
// fuses the running segment with the next whenever the gap between their
// adjacent endpoints is within the distance tolerance, flushing otherwise.
func sweepGroup(segments []geometry.Segment, group []int, distance float64) []geometry.Segment {
	ref := segments[group[0]]

	spans := make([]spanInterval, 0, len(group))
	for _, i := range group {
		spans = append(spans, makeSpan(ref, segments[i]))
	}

	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].tMin < spans[j].tMin
	})

	var out []geometry.Segment
	running := spans[0]

	for _, next := range spans[1:] {
		if running.ptMax.Distance(next.ptMin) <= distance {
			running = fuseSpans(running, next)
			continue
		}
		out = append(out, running.segment())
		running = next
	}
	out = append(out, running.segment())

	return out
}

// makeSpan projects a segment onto the reference direction.
func makeSpan(ref, seg geometry.Segment) spanInterval {
	t0 := ref.ProjectParam(seg.Start)
	t1 := ref.ProjectParam(seg.End)
	span := spanInterval{
		thickness: seg.Thickness,
		ptMin:     seg.Start, ptMax: seg.End,
		tMin: t0, tMax: t1,
	}
	if t1 < t0 {
		span.ptMin, span.ptMax = seg.End, seg.Start
		span.tMin, span.tMax = t1, t0
	}
	return span
}

// fuseSpans joins two near-touching spans, keeping the endpoints with the
// extreme projections so geometry off the reference line is preserved.
func fuseSpans(a, b spanInterval) spanInterval {
	fused := a
	if b.tMin < fused.tMin {
		fused.ptMin, fused.tMin = b.ptMin, b.tMin
	}
	if b.tMax > fused.tMax {
		fused.ptMax, fused.tMax = b.ptMax, b.tMax
	}
	if fused.thickness == 0 {
		fused.thickness = b.thickness
	}
	return fused
}

// segment materializes the span back into a Segment.
func (s spanInterval) segment() geometry.Segment {
	return geometry.Segment{Start: s.ptMin, End: s.ptMax, Thickness: s.thickness}
}
