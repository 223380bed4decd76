package cleanup

import (
	"math"

	"plan-tracer/pkg/geometry"
)

// bridgeAngleTolerance is the maximum undirected angle difference (radians)
// between two segments for their endpoints to be bridgeable.
const bridgeAngleTolerance = 0.1

// gridCell is an integer bucket key for endpoint lookup. Endpoints round to
// the nearest integer cell; neighbor cells within the gap radius are scanned
// explicitly, so collapse semantics stay round-to-cell equality.
type gridCell struct {
	X, Y int
}

// endpointRef locates one endpoint of an indexed segment.
type endpointRef struct {
	seg   int
	point geometry.Point2D
	other geometry.Point2D
}

// BridgeGaps connects aligned, near-coincident endpoints separated by a gap
// of at most MaxGap. The matched pair is replaced by one segment spanning
// their two unconnected farthest endpoints. Each segment merges at most once
// per call; there is no transitive re-bridging within a single invocation.
func BridgeGaps(segments []geometry.Segment, opts BridgeOptions) []geometry.Segment {
	if len(segments) == 0 {
		return nil
	}

	index := make(map[gridCell][]endpointRef)
	for i, seg := range segments {
		index[cellOf(seg.Start)] = append(index[cellOf(seg.Start)], endpointRef{seg: i, point: seg.Start, other: seg.End})
		index[cellOf(seg.End)] = append(index[cellOf(seg.End)], endpointRef{seg: i, point: seg.End, other: seg.Start})
	}

	radius := int(math.Ceil(opts.MaxGap))
	merged := make([]bool, len(segments))
	out := make([]geometry.Segment, 0, len(segments))

	for i, seg := range segments {
		if merged[i] {
			continue
		}

		bridged := false
		for _, end := range []struct{ point, other geometry.Point2D }{
			{seg.Start, seg.End},
			{seg.End, seg.Start},
		} {
			match, ok := findNeighbor(index, merged, segments, i, end.point, radius, opts.MaxGap)
			if !ok {
				continue
			}

			// Span the two unconnected farthest endpoints.
			out = append(out, geometry.Segment{
				Start:     end.other,
				End:       match.other,
				Thickness: seg.Thickness,
			})
			merged[i] = true
			merged[match.seg] = true
			bridged = true
			break
		}

		if !bridged {
			out = append(out, seg)
		}
	}

	return out
}

// findNeighbor scans the index cells around p for the first compatible,
// unmerged endpoint of another segment within maxGap. Cell and in-cell
// ordering are fixed so repeated runs pick the same match.
func findNeighbor(index map[gridCell][]endpointRef, merged []bool, segments []geometry.Segment,
	self int, p geometry.Point2D, radius int, maxGap float64) (endpointRef, bool) {

	center := cellOf(p)
	selfAngle := segments[self].Angle()

	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			cell := gridCell{X: center.X + dx, Y: center.Y + dy}
			for _, ref := range index[cell] {
				if ref.seg == self || merged[ref.seg] {
					continue
				}
				if p.Distance(ref.point) > maxGap {
					continue
				}
				if geometry.AngleDiff(selfAngle, segments[ref.seg].Angle()) >= bridgeAngleTolerance {
					continue
				}
				return ref, true
			}
		}
	}

	return endpointRef{}, false
}

// cellOf rounds a point to its integer grid cell.
func cellOf(p geometry.Point2D) gridCell {
	return gridCell{
		X: int(math.Round(p.X)),
		Y: int(math.Round(p.Y)),
	}
}
