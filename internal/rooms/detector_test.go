package rooms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plan-tracer/pkg/geometry"
)

func square(x, y, size float64) []geometry.Segment {
	return []geometry.Segment{
		geometry.NewSegment(geometry.Point2D{X: x, Y: y}, geometry.Point2D{X: x + size, Y: y}),
		geometry.NewSegment(geometry.Point2D{X: x + size, Y: y}, geometry.Point2D{X: x + size, Y: y + size}),
		geometry.NewSegment(geometry.Point2D{X: x + size, Y: y + size}, geometry.Point2D{X: x, Y: y + size}),
		geometry.NewSegment(geometry.Point2D{X: x, Y: y + size}, geometry.Point2D{X: x, Y: y}),
	}
}

func TestDetect_SingleSquareRoom(t *testing.T) {
	opts := DefaultOptions()
	opts.MinArea = 50

	rooms := Detect(square(0, 0, 10), opts)
	require.Len(t, rooms, 1)

	room := rooms[0]
	assert.InDelta(t, 100, room.Area, 1e-9)
	require.Len(t, room.Points, 5)
	assert.Equal(t, room.Points[0], room.Points[len(room.Points)-1], "polygon is closed")
}

func TestDetect_AreaInvariant(t *testing.T) {
	// A 10×10 loop (area 100) is filtered when the threshold is above it.
	opts := DefaultOptions()
	opts.MinArea = 150

	rooms := Detect(square(0, 0, 10), opts)
	assert.Empty(t, rooms)
}

func TestDetect_TwoIndependentRooms(t *testing.T) {
	segs := append(square(0, 0, 10), square(100, 100, 20)...)

	opts := DefaultOptions()
	opts.MinArea = 50

	rooms := Detect(segs, opts)
	require.Len(t, rooms, 2)
	assert.InDelta(t, 100, rooms[0].Area, 1e-9)
	assert.InDelta(t, 400, rooms[1].Area, 1e-9)
}

func TestDetect_OpenPathIsNoRoom(t *testing.T) {
	segs := []geometry.Segment{
		geometry.NewSegment(geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 10, Y: 0}),
		geometry.NewSegment(geometry.Point2D{X: 10, Y: 0}, geometry.Point2D{X: 10, Y: 10}),
		geometry.NewSegment(geometry.Point2D{X: 10, Y: 10}, geometry.Point2D{X: 0, Y: 10}),
	}
	assert.Empty(t, Detect(segs, DefaultOptions()))
}

func TestDetect_NearCoincidentEndpointsCollapse(t *testing.T) {
	// Corners are off by up to 2 units; the 5-unit normalization grid
	// collapses them onto shared nodes and the loop still closes.
	segs := []geometry.Segment{
		geometry.NewSegment(geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 19, Y: 1}),
		geometry.NewSegment(geometry.Point2D{X: 20, Y: 0}, geometry.Point2D{X: 21, Y: 19}),
		geometry.NewSegment(geometry.Point2D{X: 20, Y: 20}, geometry.Point2D{X: 1, Y: 21}),
		geometry.NewSegment(geometry.Point2D{X: 0, Y: 20}, geometry.Point2D{X: -1, Y: 1}),
	}

	opts := DefaultOptions()
	opts.MinArea = 100

	rooms := Detect(segs, opts)
	require.Len(t, rooms, 1)
	assert.InDelta(t, 400, rooms[0].Area, 1e-9)
}

func TestDetect_StubOnLoopCornerNoDuplicate(t *testing.T) {
	// A dead-end stub hanging off a corner seeds its own walk after the loop
	// is found; consumed loop edges must be dead to it so the square is not
	// reported twice.
	segs := append(square(0, 0, 10),
		geometry.NewSegment(geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: -20, Y: 0}),
	)

	opts := DefaultOptions()
	opts.MinArea = 50

	rooms := Detect(segs, opts)
	require.Len(t, rooms, 1)
	assert.InDelta(t, 100, rooms[0].Area, 1e-9)
}

func TestDetect_LargestLoopOnly(t *testing.T) {
	segs := append(square(0, 0, 10), square(100, 100, 20)...)

	opts := DefaultOptions()
	opts.Policy = LargestLoopOnly
	opts.MinArea = 50

	rooms := Detect(segs, opts)
	require.Len(t, rooms, 1, "whole-footprint selection returns one loop")
	assert.InDelta(t, 400, rooms[0].Area, 1e-9)
}

func TestDetect_LargestLoopGapTolerance(t *testing.T) {
	// Endpoints meet only within the gap tolerance, not exactly.
	segs := []geometry.Segment{
		geometry.NewSegment(geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 30, Y: 0}),
		geometry.NewSegment(geometry.Point2D{X: 31, Y: 1}, geometry.Point2D{X: 30, Y: 30}),
		geometry.NewSegment(geometry.Point2D{X: 29, Y: 31}, geometry.Point2D{X: 1, Y: 1}),
	}

	opts := DefaultOptions()
	opts.Policy = LargestLoopOnly
	opts.MinArea = 100

	rooms := Detect(segs, opts)
	require.Len(t, rooms, 1)
	assert.Greater(t, rooms[0].Area, 100.0)
}

func TestDetect_EmptyInput(t *testing.T) {
	assert.Nil(t, Detect(nil, DefaultOptions()))
	assert.Empty(t, Detect(nil, Options{Policy: LargestLoopOnly}))
}
