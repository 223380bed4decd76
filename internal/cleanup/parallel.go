package cleanup

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"plan-tracer/pkg/geometry"
)

// MergeParallel fuses groups of near-parallel segments into single segments.
// Grouping is single-linkage, first-seen greedy by undirected angle (the
// order dependence is intentional; see GroupByAngle). A group is fused only
// when every pairwise perpendicular distance is within the tolerance;
// otherwise its members are emitted unchanged. Oversized groups degrade to
// pass-through with a diagnostic rather than risking O(n²) blowup.
func MergeParallel(segments []geometry.Segment, opts ParallelOptions) ([]geometry.Segment, []Diagnostic) {
	// Degenerate segments never participate in merging.
	valid := make([]geometry.Segment, 0, len(segments))
	for _, seg := range segments {
		if seg.IsValid() {
			valid = append(valid, seg)
		}
	}
	if len(valid) == 0 {
		return nil, nil
	}

	var diags []Diagnostic
	out := make([]geometry.Segment, 0, len(valid))

	for _, group := range geometry.GroupByAngle(valid, opts.AngleTolerance) {
		if len(group) == 1 {
			out = append(out, valid[group[0]])
			continue
		}

		if len(group) > opts.MaxGroupSize {
			diags = append(diags, Diagnostic{
				Stage:   "merge_parallel",
				Code:    DiagGroupTooLarge,
				Message: fmt.Sprintf("group of %d segments exceeds cap %d; emitted unmerged", len(group), opts.MaxGroupSize),
				Count:   len(group),
			})
			for _, i := range group {
				out = append(out, valid[i])
			}
			continue
		}

		within, groupDiags := groupWithinDistance(valid, group, opts)
		diags = append(diags, groupDiags...)
		if !within {
			for _, i := range group {
				out = append(out, valid[i])
			}
			continue
		}

		out = append(out, fuseGroup(valid, group))
	}

	return out, diags
}

// groupWithinDistance checks that every pairwise perpendicular distance in
// the group is within tolerance. Distance for a pair is the perpendicular
// offset of one segment's midpoint from the other's infinite line; every
// reference line is valid here because degenerates are filtered before
// grouping.
func groupWithinDistance(segments []geometry.Segment, group []int, opts ParallelOptions) (bool, []Diagnostic) {
	var diags []Diagnostic
	comparisons := 0

	for a := 0; a < len(group); a++ {
		for b := a + 1; b < len(group); b++ {
			comparisons++
			if comparisons > opts.MaxComparisons {
				diags = append(diags, Diagnostic{
					Stage:   "merge_parallel",
					Code:    DiagTooManyComparisons,
					Message: fmt.Sprintf("pairwise comparison cap %d exceeded; group emitted unmerged", opts.MaxComparisons),
					Count:   comparisons,
				})
				return false, diags
			}

			dist := segments[group[a]].PerpendicularDistance(segments[group[b]].Midpoint())
			if dist > opts.DistanceTolerance {
				return false, diags
			}
		}
	}

	return true, diags
}

// fuseGroup merges a distance-verified group into one segment. The longest
// member is the reference axis: min/max projections of every group endpoint
// onto it set the extent, and the fused segment is offset perpendicular to
// the axis by the median signed midpoint distance of the other members.
// Median, not mean, so a single outlier trace cannot drag the wall.
func fuseGroup(segments []geometry.Segment, group []int) geometry.Segment {
	axisIdx := group[0]
	for _, i := range group[1:] {
		if segments[i].Length() > segments[axisIdx].Length() {
			axisIdx = i
		}
	}
	axis := segments[axisIdx]

	tMin := axis.ProjectParam(axis.Start)
	tMax := tMin
	var offsets []float64

	for _, i := range group {
		seg := segments[i]
		for _, p := range []geometry.Point2D{seg.Start, seg.End} {
			t := axis.ProjectParam(p)
			if t < tMin {
				tMin = t
			}
			if t > tMax {
				tMax = t
			}
		}
		if i != axisIdx {
			offsets = append(offsets, axis.PerpendicularOffset(seg.Midpoint()))
		}
	}

	var offset float64
	if len(offsets) > 0 {
		sort.Float64s(offsets)
		offset = stat.Quantile(0.5, stat.Empirical, offsets, nil)
	}

	dir := axis.Direction()
	normal := geometry.Point2D{X: -dir.Y, Y: dir.X}
	shift := normal.Scale(offset)

	return geometry.Segment{
		Start:     axis.PointAt(tMin).Add(shift),
		End:       axis.PointAt(tMax).Add(shift),
		Thickness: axis.Thickness,
	}
}
