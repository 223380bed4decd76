package validate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plan-tracer/pkg/geometry"
)

func TestCheck_AcceptsCleanTrace(t *testing.T) {
	polylines := []geometry.Polyline{
		{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}, {X: 0, Y: 2}},
		{{X: 10, Y: 10}, {X: 90, Y: 10}},
	}

	res := Check(polylines, DefaultOptions())
	require.True(t, res.Valid, "clean trace must pass: %s", res.Err)
	assert.Empty(t, res.Err)
	assert.Equal(t, 2, res.Stats.PolylineCount)
	assert.Equal(t, 5, res.Stats.SegmentCount)
	assert.InDelta(t, 0.5, res.Stats.ClosedFraction, 1e-9)
}

func TestCheck_RejectsEmpty(t *testing.T) {
	res := Check(nil, DefaultOptions())
	assert.False(t, res.Valid)
	assert.NotEmpty(t, res.Err)

	res = Check([]geometry.Polyline{{{X: 1, Y: 1}}}, DefaultOptions())
	assert.False(t, res.Valid, "single-point polylines are unusable")
}

func TestCheck_RejectsWobblyTrace(t *testing.T) {
	// An open zigzag walking mostly in place: long path, no displacement.
	zigzag := geometry.Polyline{}
	for i := 0; i < 40; i++ {
		y := 0.0
		if i%2 == 1 {
			y = 30.0
		}
		zigzag = append(zigzag, geometry.Point2D{X: float64(i), Y: y})
	}

	res := Check([]geometry.Polyline{zigzag}, DefaultOptions())
	assert.False(t, res.Valid)
	assert.NotEmpty(t, res.Err)
	assert.Less(t, res.Stats.MeanStraightness, 0.25)
}

func TestCheck_RejectsOversizedTrace(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxSegments = 3

	pl := geometry.Polyline{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 20, Y: 0}, {X: 30, Y: 0}, {X: 40, Y: 0}}
	res := Check([]geometry.Polyline{pl}, opts)
	assert.False(t, res.Valid)
	assert.Equal(t, 4, res.Stats.SegmentCount)
}

func TestCheck_SkipsNonFinitePoints(t *testing.T) {
	pl := geometry.Polyline{
		{X: 0, Y: 0},
		{X: math.NaN(), Y: 5},
		{X: 100, Y: 0},
	}

	res := Check([]geometry.Polyline{pl}, DefaultOptions())
	require.True(t, res.Valid)
	assert.Equal(t, 1, res.Stats.SegmentCount)
	assert.InDelta(t, 100, res.Stats.MeanSegmentLength, 1e-9)
}

func TestCheck_ClosedLoopScoresStraight(t *testing.T) {
	// A closed rectangle has zero net displacement but must not be judged
	// wobbly; closure itself is the quality signal.
	rect := geometry.Polyline{
		{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 50, Y: 30}, {X: 0, Y: 30}, {X: 0, Y: 0},
	}

	res := Check([]geometry.Polyline{rect}, DefaultOptions())
	assert.True(t, res.Valid)
	assert.InDelta(t, 1, res.Stats.ClosedFraction, 1e-9)
	assert.InDelta(t, 1, res.Stats.MeanStraightness, 1e-9)
}

func TestCheck_DoesNotMutateInput(t *testing.T) {
	pl := geometry.Polyline{{X: 0, Y: 0}, {X: 100, Y: 0}}
	before := append(geometry.Polyline{}, pl...)

	Check([]geometry.Polyline{pl}, DefaultOptions())
	assert.Equal(t, before, pl)
}
