// Package cleanup implements the deterministic geometry-cleanup pipeline:
// orthogonal snapping, parallel-line merging, colinear merging, gap bridging
// and room detection over traced sketch geometry.
package cleanup

import "math"

// Options configures a full pipeline invocation. One flat struct per call,
// no global state; zero values are replaced by the defaults below.
type Options struct {
	MinArea                float64 // final room area filter
	SnapToleranceDeg       float64 // orthogonal snap tolerance, degrees
	Use45Deg               bool    // second snap pass at 45° multiples
	SnapToGrid             bool    // round endpoints to the grid before snapping
	GridSize               float64 // grid cell size for the pre-snap
	MergeDistance          float64 // parallel merge perpendicular tolerance
	ColinearAngleTolerance float64 // angular equivalence tolerance, radians
	ColinearDistance       float64 // colinear fuse gap tolerance
	MaxGap                 float64 // bridgeable endpoint gap
	MinRoomArea            float64 // detector-level area threshold
	RoomDetectionGap       float64 // loop-closing gap tolerance
	ClosedTolerance        float64 // polyline auto-close tolerance
}

// DefaultOptions returns sensible defaults for sketch cleanup.
func DefaultOptions() Options {
	return Options{
		MinArea:                100,
		SnapToleranceDeg:       5,
		Use45Deg:               false,
		SnapToGrid:             false,
		GridSize:               10,
		MergeDistance:          5.0,
		ColinearAngleTolerance: 0.05,
		ColinearDistance:       10,
		MaxGap:                 5,
		MinRoomArea:            100,
		RoomDetectionGap:       5,
		ClosedTolerance:        5,
	}
}

// WithMinArea returns a copy with both area thresholds set.
func (o Options) WithMinArea(area float64) Options {
	o.MinArea = area
	o.MinRoomArea = area
	return o
}

// normalized fills unset (zero) fields from the defaults so callers can
// specify only the options they care about.
func (o Options) normalized() Options {
	def := DefaultOptions()
	if o.MinArea == 0 {
		o.MinArea = def.MinArea
	}
	if o.SnapToleranceDeg == 0 {
		o.SnapToleranceDeg = def.SnapToleranceDeg
	}
	if o.GridSize == 0 {
		o.GridSize = def.GridSize
	}
	if o.MergeDistance == 0 {
		o.MergeDistance = def.MergeDistance
	}
	if o.ColinearAngleTolerance == 0 {
		o.ColinearAngleTolerance = def.ColinearAngleTolerance
	}
	if o.ColinearDistance == 0 {
		o.ColinearDistance = def.ColinearDistance
	}
	if o.MaxGap == 0 {
		o.MaxGap = def.MaxGap
	}
	if o.MinRoomArea == 0 {
		o.MinRoomArea = def.MinRoomArea
	}
	if o.RoomDetectionGap == 0 {
		o.RoomDetectionGap = def.RoomDetectionGap
	}
	if o.ClosedTolerance == 0 {
		o.ClosedTolerance = def.ClosedTolerance
	}
	return o
}

// SnapOptions configures the orthogonal snapper.
type SnapOptions struct {
	ToleranceDeg float64 // max angular distance to a snap target, degrees
	Use45        bool    // also snap to 45° multiples
	SnapToGrid   bool    // round endpoints to the grid first
	GridSize     float64 // grid cell size for the pre-snap
}

// DefaultSnapOptions returns the standard snapping configuration.
func DefaultSnapOptions() SnapOptions {
	return SnapOptions{
		ToleranceDeg: 5,
		Use45:        false,
		SnapToGrid:   false,
		GridSize:     10,
	}
}

// toleranceRad returns the snap tolerance in radians.
func (o SnapOptions) toleranceRad() float64 {
	return o.ToleranceDeg * math.Pi / 180
}

// ParallelOptions configures the parallel-line merger.
type ParallelOptions struct {
	AngleTolerance    float64 // undirected angular equivalence, radians
	DistanceTolerance float64 // max pairwise perpendicular distance to fuse
	MaxGroupSize      int     // safety cap: members per group
	MaxComparisons    int     // safety cap: pairwise distance checks per group
}

// DefaultParallelOptions returns the standard parallel-merge configuration.
func DefaultParallelOptions() ParallelOptions {
	return ParallelOptions{
		AngleTolerance:    0.05, // ≈ 2.9°
		DistanceTolerance: 5.0,
		MaxGroupSize:      1000,
		MaxComparisons:    10000,
	}
}

// ColinearOptions configures the colinear segment merger.
type ColinearOptions struct {
	AngleTolerance float64 // undirected angular equivalence, radians
	Distance       float64 // max endpoint gap along the line to fuse
}

// DefaultColinearOptions returns the standard colinear-merge configuration.
func DefaultColinearOptions() ColinearOptions {
	return ColinearOptions{
		AngleTolerance: 0.05,
		Distance:       10,
	}
}

// BridgeOptions configures the gap bridger.
type BridgeOptions struct {
	MaxGap float64 // max endpoint separation to bridge
}

// DefaultBridgeOptions returns the standard bridging configuration.
func DefaultBridgeOptions() BridgeOptions {
	return BridgeOptions{MaxGap: 5}
}
