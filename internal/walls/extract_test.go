package walls

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plan-tracer/pkg/geometry"
)

func wallSeg(x0, x1, thickness float64) geometry.Segment {
	return geometry.Segment{
		Start:     geometry.Point2D{X: x0, Y: 0},
		End:       geometry.Point2D{X: x1, Y: 0},
		Thickness: thickness,
	}
}

func TestExtract_LengthFilter(t *testing.T) {
	segs := []geometry.Segment{
		wallSeg(0, 30, 0),  // qualifies
		wallSeg(0, 5, 0),   // too short
		wallSeg(0, 300, 0), // too long under a max
		{Start: geometry.Point2D{X: 1, Y: 1}, End: geometry.Point2D{X: 1, Y: 1}}, // degenerate
	}

	opts := DefaultOptions()
	opts.MaxLength = 200

	out := Extract(segs, opts)
	require.Len(t, out, 1)
	assert.Equal(t, segs[0], out[0].Segment)
	assert.Equal(t, opts.DefaultThickness, out[0].Thickness, "default thickness assigned")
}

func TestExtract_ExplicitThicknessKept(t *testing.T) {
	out := Extract([]geometry.Segment{wallSeg(0, 30, 7)}, DefaultOptions())
	require.Len(t, out, 1)
	assert.Equal(t, 7.0, out[0].Thickness)
}

func TestClassify_ThicknessMidpoint(t *testing.T) {
	// Defaults: exterior 6, interior 2 — midpoint 4.
	walls := []Wall{
		{Segment: wallSeg(0, 30, 7), Thickness: 7},
		{Segment: wallSeg(0, 30, 4), Thickness: 4},
		{Segment: wallSeg(0, 30, 2), Thickness: 2},
	}

	out := Classify(walls, DefaultOptions())
	require.Len(t, out, 3)
	assert.Equal(t, Exterior, out[0].Type)
	assert.Equal(t, Exterior, out[1].Type, "exactly at the midpoint counts as exterior")
	assert.Equal(t, Interior, out[2].Type)
	assert.Empty(t, walls[0].Type, "input walls are not mutated")
}

func TestFindOpenings_Door(t *testing.T) {
	// Two aligned walls with a 0.9-unit gap: well under half the threshold,
	// so the opening is a door.
	walls := Extract([]geometry.Segment{
		wallSeg(0, 10, 0),
		wallSeg(10.9, 21, 0),
	}, DefaultOptions())
	require.Len(t, walls, 2)

	openings := FindOpenings(walls, DefaultOptions())
	require.Len(t, openings, 1)
	assert.Equal(t, Door, openings[0].Type)
	assert.InDelta(t, 0.9, openings[0].Width, 1e-9)
	assert.InDelta(t, 10.45, openings[0].Position.X, 1e-9)
	assert.InDelta(t, 0, openings[0].Position.Y, 1e-9)
}

func TestFindOpenings_Window(t *testing.T) {
	// A 7-unit gap is within the threshold but at least half of it: window.
	walls := Extract([]geometry.Segment{
		wallSeg(0, 10, 0),
		wallSeg(17, 30, 0),
	}, DefaultOptions())

	openings := FindOpenings(walls, DefaultOptions())
	require.Len(t, openings, 1)
	assert.Equal(t, Window, openings[0].Type)
	assert.InDelta(t, 7, openings[0].Width, 1e-9)
}

func TestFindOpenings_GapBeyondThreshold(t *testing.T) {
	walls := Extract([]geometry.Segment{
		wallSeg(0, 10, 0),
		wallSeg(25, 40, 0),
	}, DefaultOptions())

	assert.Empty(t, FindOpenings(walls, DefaultOptions()))
}

func TestFindOpenings_OffsetParallelIsNotAnOpening(t *testing.T) {
	// Same direction but separated across, not along: the gap vector is
	// perpendicular to the walls, so no opening is emitted.
	walls := Extract([]geometry.Segment{
		wallSeg(0, 10, 0),
		{Start: geometry.Point2D{X: 0, Y: 8}, End: geometry.Point2D{X: 10, Y: 8}},
	}, DefaultOptions())
	require.Len(t, walls, 2)

	assert.Empty(t, FindOpenings(walls, DefaultOptions()))
}

func TestFindOpenings_TouchingWallsAreJunctions(t *testing.T) {
	walls := Extract([]geometry.Segment{
		wallSeg(0, 10, 0),
		wallSeg(10, 20, 0),
	}, DefaultOptions())

	assert.Empty(t, FindOpenings(walls, DefaultOptions()))
}

func TestFindOpenings_ChainOfGaps(t *testing.T) {
	// Three walls in a run produce one opening per consecutive gap.
	walls := Extract([]geometry.Segment{
		wallSeg(0, 10, 0),
		wallSeg(12, 25, 0),
		wallSeg(33, 45, 0),
	}, DefaultOptions())

	openings := FindOpenings(walls, DefaultOptions())
	require.Len(t, openings, 2)
	assert.Equal(t, Door, openings[0].Type)
	assert.Equal(t, Window, openings[1].Type)
}
