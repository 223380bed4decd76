package cleanup

import (
	"math"

	"plan-tracer/pkg/geometry"
)

// SnapOrthogonal rounds segment directions to the nearest 90° multiple
// (optionally 45° in a second pass) within the angular tolerance. A snapped
// segment keeps its original start point and length; only the end point is
// recomputed. Malformed segments pass through unchanged.
func SnapOrthogonal(segments []geometry.Segment, opts SnapOptions) []geometry.Segment {
	if len(segments) == 0 {
		return nil
	}

	tolerance := opts.toleranceRad()
	out := make([]geometry.Segment, 0, len(segments))

	for _, seg := range segments {
		if !seg.IsValid() {
			out = append(out, seg)
			continue
		}

		if opts.SnapToGrid && opts.GridSize > 0 {
			seg.Start = snapPointToGrid(seg.Start, opts.GridSize)
			seg.End = snapPointToGrid(seg.End, opts.GridSize)
			if !seg.IsValid() {
				// Grid rounding collapsed the segment; keep it as-is.
				out = append(out, seg)
				continue
			}
		}

		angle := seg.Angle()

		snapped, ok := nearestMultiple(angle, math.Pi/2, tolerance)
		if !ok && opts.Use45 {
			snapped, ok = nearestMultiple(angle, math.Pi/4, tolerance)
		}
		if !ok {
			out = append(out, seg)
			continue
		}

		// Rotate the original length around the unchanged start point.
		length := seg.Length()
		seg.End = geometry.Point2D{
			X: seg.Start.X + length*math.Cos(snapped),
			Y: seg.Start.Y + length*math.Sin(snapped),
		}
		out = append(out, seg)
	}

	return out
}

// nearestMultiple returns the closest multiple of step to angle, and whether
// the angular distance to it is within tolerance. The result is normalized to
// [0, 2π).
func nearestMultiple(angle, step, tolerance float64) (float64, bool) {
	k := math.Round(angle / step)
	target := k * step

	diff := math.Abs(angle - target)
	if diff > tolerance {
		return 0, false
	}

	target = math.Mod(target, 2*math.Pi)
	if target < 0 {
		target += 2 * math.Pi
	}
	return target, true
}

// snapPointToGrid rounds both coordinates to the nearest grid multiple.
func snapPointToGrid(p geometry.Point2D, gridSize float64) geometry.Point2D {
	return geometry.Point2D{
		X: math.Round(p.X/gridSize) * gridSize,
		Y: math.Round(p.Y/gridSize) * gridSize,
	}
}
