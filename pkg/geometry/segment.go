package geometry

import (
	"math"
)

// MinSegmentLength is the shortest length a segment may have before it is
// considered degenerate and dropped by the cleanup stages.
const MinSegmentLength = 0.001

// Segment is a single straight edge between two 2D points. Thickness is
// optional (zero means unspecified) and carried through untouched by the
// cleanup stages until wall extraction assigns a default.
type Segment struct {
	Start     Point2D `json:"start"`
	End       Point2D `json:"end"`
	Thickness float64 `json:"thickness,omitempty"`
}

// NewSegment creates a segment between two points.
func NewSegment(start, end Point2D) Segment {
	return Segment{Start: start, End: end}
}

// Length returns the Euclidean length of the segment.
func (s Segment) Length() float64 {
	return s.Start.Distance(s.End)
}

// Midpoint returns the point halfway along the segment.
func (s Segment) Midpoint() Point2D {
	return Point2D{
		X: (s.Start.X + s.End.X) / 2,
		Y: (s.Start.Y + s.End.Y) / 2,
	}
}

// Angle returns the direction of the segment in radians, in (-π, π].
func (s Segment) Angle() float64 {
	return math.Atan2(s.End.Y-s.Start.Y, s.End.X-s.Start.X)
}

// Direction returns the unit direction vector of the segment.
// Degenerate segments return the zero vector.
func (s Segment) Direction() Point2D {
	length := s.Length()
	if length < MinSegmentLength {
		return Point2D{}
	}
	return Point2D{
		X: (s.End.X - s.Start.X) / length,
		Y: (s.End.Y - s.Start.Y) / length,
	}
}

// IsValid reports whether the segment has finite coordinates and is at least
// MinSegmentLength long.
func (s Segment) IsValid() bool {
	return s.Start.IsFinite() && s.End.IsFinite() && s.Length() >= MinSegmentLength
}

// NormalizeAngle maps an angle to [0, π), treating a direction and its
// opposite as equivalent. Segments are undirected for angle purposes.
func NormalizeAngle(theta float64) float64 {
	theta = math.Mod(theta, math.Pi)
	if theta < 0 {
		theta += math.Pi
	}
	return theta
}

// AngleDiff returns the undirected angular distance between two directions,
// in [0, π/2]. A segment and its reverse compare as identical.
func AngleDiff(a, b float64) float64 {
	diff := math.Abs(NormalizeAngle(a) - NormalizeAngle(b))
	if diff > math.Pi/2 {
		diff = math.Pi - diff
	}
	return diff
}

// ProjectParam returns the scalar parameter t of p projected onto the
// infinite line through the segment, measured from Start in units of the
// segment direction. t=0 is Start, t=Length() is End.
func (s Segment) ProjectParam(p Point2D) float64 {
	d := s.Direction()
	return (p.X-s.Start.X)*d.X + (p.Y-s.Start.Y)*d.Y
}

// PointAt returns the point at scalar parameter t along the segment's
// infinite line, measured from Start.
func (s Segment) PointAt(t float64) Point2D {
	d := s.Direction()
	return Point2D{X: s.Start.X + t*d.X, Y: s.Start.Y + t*d.Y}
}

// PerpendicularOffset returns the signed perpendicular distance from p to the
// infinite line through the segment. The sign follows the left-hand normal of
// the segment direction.
func (s Segment) PerpendicularOffset(p Point2D) float64 {
	d := s.Direction()
	return -(p.X-s.Start.X)*d.Y + (p.Y-s.Start.Y)*d.X
}

// PerpendicularDistance returns the absolute perpendicular distance from p to
// the infinite line through the segment.
func (s Segment) PerpendicularDistance(p Point2D) float64 {
	return math.Abs(s.PerpendicularOffset(p))
}

// DistanceToPoint returns the minimum distance from p to the segment itself,
// clamping the projection to the segment's extent.
func (s Segment) DistanceToPoint(p Point2D) float64 {
	dx := s.End.X - s.Start.X
	dy := s.End.Y - s.Start.Y

	if dx == 0 && dy == 0 {
		return p.Distance(s.Start)
	}

	t := ((p.X-s.Start.X)*dx + (p.Y-s.Start.Y)*dy) / (dx*dx + dy*dy)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	closest := Point2D{X: s.Start.X + t*dx, Y: s.Start.Y + t*dy}
	return p.Distance(closest)
}

// GroupByAngle partitions segments into groups of undirected angular
// equivalence. Grouping is single-linkage and first-seen greedy: each segment
// joins the earliest group containing any member within tolerance, else
// starts a new group. The result is order-dependent on purpose; callers rely
// on the iteration-order tie-breaks staying stable.
func GroupByAngle(segments []Segment, tolerance float64) [][]int {
	var groups [][]int
	for i, seg := range segments {
		angle := seg.Angle()
		placed := false
		for gi := range groups {
			for _, mi := range groups[gi] {
				if AngleDiff(angle, segments[mi].Angle()) <= tolerance {
					groups[gi] = append(groups[gi], i)
					placed = true
					break
				}
			}
			if placed {
				break
			}
		}
		if !placed {
			groups = append(groups, []int{i})
		}
	}
	return groups
}
