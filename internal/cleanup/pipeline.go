package cleanup

import (
	"plan-tracer/internal/rooms"
	"plan-tracer/internal/walls"
	"plan-tracer/pkg/geometry"
)

// CleanupResult is the output of one pipeline run. Polygons currently equals
// the filtered rooms; it is kept separate so the two can diverge without
// breaking consumers.
type CleanupResult struct {
	Rooms       []rooms.Room       `json:"rooms"`
	Lines       []geometry.Segment `json:"lines"`
	Polygons    []rooms.Room       `json:"polygons"`
	Diagnostics []Diagnostic       `json:"diagnostics,omitempty"`
}

// CleanupGeometry runs the full cleanup sequence over raw segments:
// snap, merge parallel (when more than one line), merge colinear, bridge
// gaps, detect rooms, filter by area. The input slice is never mutated;
// every stage hands a fresh collection to the next.
func CleanupGeometry(lines []geometry.Segment, opts Options) CleanupResult {
	opts = opts.normalized()

	if len(lines) == 0 {
		return CleanupResult{}
	}

	snapped := SnapOrthogonal(lines, SnapOptions{
		ToleranceDeg: opts.SnapToleranceDeg,
		Use45:        opts.Use45Deg,
		SnapToGrid:   opts.SnapToGrid,
		GridSize:     opts.GridSize,
	})

	var diags []Diagnostic
	cleaned := snapped
	if len(cleaned) > 1 {
		merged, mergeDiags := MergeParallel(cleaned, ParallelOptions{
			AngleTolerance:    opts.ColinearAngleTolerance,
			DistanceTolerance: opts.MergeDistance,
			MaxGroupSize:      DefaultParallelOptions().MaxGroupSize,
			MaxComparisons:    DefaultParallelOptions().MaxComparisons,
		})
		diags = append(diags, mergeDiags...)
		cleaned = merged
	}

	cleaned = MergeColinear(cleaned, ColinearOptions{
		AngleTolerance: opts.ColinearAngleTolerance,
		Distance:       opts.ColinearDistance,
	})

	cleaned = BridgeGaps(cleaned, BridgeOptions{MaxGap: opts.MaxGap})

	detected := rooms.Detect(cleaned, rooms.Options{
		Policy:   rooms.AllLoops,
		MaxGap:   opts.RoomDetectionGap,
		MinArea:  opts.MinRoomArea,
		GridSize: opts.RoomDetectionGap,
	})

	kept := make([]rooms.Room, 0, len(detected))
	for _, room := range detected {
		if room.Area >= opts.MinArea {
			kept = append(kept, room)
		}
	}

	return CleanupResult{
		Rooms:       kept,
		Lines:       cleaned,
		Polygons:    kept,
		Diagnostics: diags,
	}
}

// CleanupFromPolylines adapts polyline input: each polyline splits into its
// consecutive segment pairs, open polylines longer than two points are
// auto-closed with a synthetic closing segment, and the result goes through
// CleanupGeometry.
func CleanupFromPolylines(polylines []geometry.Polyline, opts Options) CleanupResult {
	opts = opts.normalized()

	var segments []geometry.Segment
	for _, pl := range polylines {
		if len(pl) < 2 {
			continue
		}
		for i := 1; i < len(pl); i++ {
			segments = append(segments, geometry.Segment{Start: pl[i-1], End: pl[i]})
		}
		if len(pl) > 2 && !pl.IsClosed(opts.ClosedTolerance) {
			segments = append(segments, geometry.Segment{
				Start: pl[len(pl)-1],
				End:   pl[0],
			})
		}
	}

	return CleanupGeometry(segments, opts)
}

// inputKind tags the variant carried by Input.
type inputKind int

const (
	inputSegments inputKind = iota
	inputPolylines
)

// Input is the tagged input variant: a trace is either a batch of segments
// or a batch of polylines. One entry point dispatches both shapes.
type Input struct {
	kind      inputKind
	segments  []geometry.Segment
	polylines []geometry.Polyline
}

// SegmentsInput wraps raw segments.
func SegmentsInput(segments []geometry.Segment) Input {
	return Input{kind: inputSegments, segments: segments}
}

// PolylinesInput wraps raw polylines.
func PolylinesInput(polylines []geometry.Polyline) Input {
	return Input{kind: inputPolylines, polylines: polylines}
}

// Clean dispatches the tagged input through the matching pipeline path.
func Clean(in Input, opts Options) CleanupResult {
	switch in.kind {
	case inputPolylines:
		return CleanupFromPolylines(in.polylines, opts)
	default:
		return CleanupGeometry(in.segments, opts)
	}
}

// Meta carries result-level context for downstream consumers.
type Meta struct {
	Scale  float64       `json:"scale"`
	Bounds geometry.Rect `json:"bounds"`
}

// Result is the contract shared with the AI-cleaning path and the renderer:
// whichever engine produced the geometry, consumers see the same shape.
type Result struct {
	Walls    []walls.Wall    `json:"walls"`
	Rooms    []rooms.Room    `json:"rooms"`
	Openings []walls.Opening `json:"openings"`
	Meta     Meta            `json:"meta"`
}

// Assemble builds the downstream result from a cleanup run: wall extraction
// and classification, opening detection, and bounds over every surviving
// line endpoint. Scale is passed through from the tracer; use 1 when the
// trace is already in plan units.
func Assemble(res CleanupResult, wallOpts walls.Options, scale float64) Result {
	extracted := walls.Classify(walls.Extract(res.Lines, wallOpts), wallOpts)
	openings := walls.FindOpenings(extracted, wallOpts)

	points := make([]geometry.Point2D, 0, 2*len(res.Lines))
	for _, seg := range res.Lines {
		points = append(points, seg.Start, seg.End)
	}

	return Result{
		Walls:    extracted,
		Rooms:    res.Rooms,
		Openings: openings,
		Meta: Meta{
			Scale:  scale,
			Bounds: geometry.BoundingBox(points),
		},
	}
}
