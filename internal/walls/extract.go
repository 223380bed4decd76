// Package walls classifies cleaned segments as walls, finds openings in
// aligned wall runs, and labels walls exterior or interior by thickness.
package walls

import (
	"math"

	"plan-tracer/pkg/geometry"
)

// WallType labels a wall exterior or interior.
type WallType string

const (
	Exterior WallType = "exterior"
	Interior WallType = "interior"
)

// Wall is a qualifying segment with a resolved thickness and type.
type Wall struct {
	Segment   geometry.Segment `json:"segment"`
	Thickness float64          `json:"thickness"`
	Type      WallType         `json:"type,omitempty"`
}

// OpeningType labels an opening door or window by gap width.
type OpeningType string

const (
	Door   OpeningType = "door"
	Window OpeningType = "window"
)

// Opening is a gap between two aligned walls.
type Opening struct {
	Type     OpeningType      `json:"type"`
	Position geometry.Point2D `json:"position"`
	Width    float64          `json:"width"`
}

// Options configures wall extraction and classification.
type Options struct {
	MinLength         float64 // shortest segment that counts as a wall
	MaxLength         float64 // longest segment that counts as a wall (0 = unbounded)
	DefaultThickness  float64 // thickness assigned when a segment has none
	OpeningThreshold  float64 // max gap between aligned walls to call an opening
	AngleTolerance    float64 // angular equivalence for grouping walls, radians
	ExteriorThickness float64 // typical exterior wall thickness
	InteriorThickness float64 // typical interior wall thickness
}

// DefaultOptions returns the standard extraction configuration.
func DefaultOptions() Options {
	return Options{
		MinLength:         10,
		MaxLength:         0,
		DefaultThickness:  2,
		OpeningThreshold:  10,
		AngleTolerance:    0.05,
		ExteriorThickness: 6,
		InteriorThickness: 2,
	}
}

// Extract returns the segments that qualify as walls: length within
// [MinLength, MaxLength], thickness taken from the segment or the default.
func Extract(segments []geometry.Segment, opts Options) []Wall {
	out := make([]Wall, 0, len(segments))
	for _, seg := range segments {
		if !seg.IsValid() {
			continue
		}
		length := seg.Length()
		if length < opts.MinLength {
			continue
		}
		if opts.MaxLength > 0 && length > opts.MaxLength {
			continue
		}
		thickness := seg.Thickness
		if thickness == 0 {
			thickness = opts.DefaultThickness
		}
		out = append(out, Wall{Segment: seg, Thickness: thickness})
	}
	return out
}

// Classify labels each wall exterior when its thickness is at least the
// midpoint between the typical exterior and interior thicknesses, else
// interior. The input slice is not mutated.
func Classify(walls []Wall, opts Options) []Wall {
	threshold := (opts.ExteriorThickness + opts.InteriorThickness) / 2
	out := make([]Wall, len(walls))
	for i, w := range walls {
		if w.Thickness >= threshold {
			w.Type = Exterior
		} else {
			w.Type = Interior
		}
		out[i] = w
	}
	return out
}

// openingAlignTolerance bounds how far the gap vector between two walls may
// deviate from their shared direction (radians). Offset-parallel walls fail
// this even when their angles match.
const openingAlignTolerance = 0.1

// FindOpenings scans each angular group of walls for gaps between
// consecutive aligned walls. Walls sort by projection onto the group's first
// wall; for every consecutive pair the closest endpoints across the two
// walls define the gap. A gap within the threshold becomes a door when
// narrower than half the threshold, else a window.
func FindOpenings(walls []Wall, opts Options) []Opening {
	if len(walls) < 2 {
		return nil
	}

	segs := make([]geometry.Segment, len(walls))
	for i, w := range walls {
		segs[i] = w.Segment
	}

	var openings []Opening

	for _, group := range geometry.GroupByAngle(segs, opts.AngleTolerance) {
		if len(group) < 2 {
			continue
		}

		ref := segs[group[0]]
		ordered := make([]int, len(group))
		copy(ordered, group)
		sortByProjection(segs, ordered, ref)

		for i := 0; i < len(ordered)-1; i++ {
			a := segs[ordered[i]]
			b := segs[ordered[i+1]]

			pa, pb, gap := closestEndpoints(a, b)
			if gap > opts.OpeningThreshold || gap < geometry.MinSegmentLength {
				continue
			}
			if !gapAligned(a, pa, pb) {
				continue
			}

			kind := Window
			if gap < opts.OpeningThreshold/2 {
				kind = Door
			}
			openings = append(openings, Opening{
				Type: kind,
				Position: geometry.Point2D{
					X: (pa.X + pb.X) / 2,
					Y: (pa.Y + pb.Y) / 2,
				},
				Width: gap,
			})
		}
	}

	return openings
}

// sortByProjection orders wall indices by their minimum endpoint projection
// onto the reference wall's direction. Insertion sort keeps equal keys in
// input order.
func sortByProjection(segs []geometry.Segment, indices []int, ref geometry.Segment) {
	key := func(i int) float64 {
		t0 := ref.ProjectParam(segs[i].Start)
		t1 := ref.ProjectParam(segs[i].End)
		return math.Min(t0, t1)
	}
	for i := 1; i < len(indices); i++ {
		for j := i; j > 0 && key(indices[j]) < key(indices[j-1]); j-- {
			indices[j], indices[j-1] = indices[j-1], indices[j]
		}
	}
}

// closestEndpoints returns the nearest pair of endpoints across two walls
// and their distance.
func closestEndpoints(a, b geometry.Segment) (geometry.Point2D, geometry.Point2D, float64) {
	bestA, bestB := a.Start, b.Start
	best := bestA.Distance(bestB)

	for _, pa := range []geometry.Point2D{a.Start, a.End} {
		for _, pb := range []geometry.Point2D{b.Start, b.End} {
			if d := pa.Distance(pb); d < best {
				bestA, bestB, best = pa, pb, d
			}
		}
	}
	return bestA, bestB, best
}

// gapAligned reports whether the gap between the closest endpoints runs
// along the wall direction rather than across it.
func gapAligned(wall geometry.Segment, pa, pb geometry.Point2D) bool {
	gap := geometry.Segment{Start: pa, End: pb}
	if gap.Length() < geometry.MinSegmentLength {
		return true
	}
	return geometry.AngleDiff(wall.Angle(), gap.Angle()) < openingAlignTolerance
}
