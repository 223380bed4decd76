package cleanup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plan-tracer/pkg/geometry"
)

func TestBridgeGaps_SpansSmallGap(t *testing.T) {
	segs := []geometry.Segment{
		horizontal(0, 0, 5),
		horizontal(0, 5.2, 10),
	}

	out := BridgeGaps(segs, DefaultBridgeOptions())
	require.Len(t, out, 1)
	assert.Equal(t, geometry.Point2D{X: 0, Y: 0}, out[0].Start)
	assert.Equal(t, geometry.Point2D{X: 10, Y: 0}, out[0].End)
}

func TestBridgeGaps_GapTooWide(t *testing.T) {
	segs := []geometry.Segment{
		horizontal(0, 0, 5),
		horizontal(0, 11, 20), // 6-unit gap, beyond default 5
	}

	out := BridgeGaps(segs, DefaultBridgeOptions())
	assert.Len(t, out, 2)
}

func TestBridgeGaps_OrientationMismatch(t *testing.T) {
	// Endpoints nearly touch but the segments are perpendicular; corners
	// must not be bridged into a diagonal.
	segs := []geometry.Segment{
		horizontal(0, 0, 10),
		geometry.NewSegment(geometry.Point2D{X: 10.5, Y: 0}, geometry.Point2D{X: 10.5, Y: 10}),
	}

	out := BridgeGaps(segs, DefaultBridgeOptions())
	assert.Len(t, out, 2)
}

func TestBridgeGaps_MergesOncePerCall(t *testing.T) {
	// Three colinear stubs with two bridgeable gaps: the first pair fuses,
	// the third segment stays because the bridged segment does not re-enter
	// the scan within the same call.
	segs := []geometry.Segment{
		horizontal(0, 0, 5),
		horizontal(0, 5.5, 10),
		horizontal(0, 10.5, 15),
	}

	out := BridgeGaps(segs, DefaultBridgeOptions())
	require.Len(t, out, 2)
	assert.Equal(t, geometry.Point2D{X: 0, Y: 0}, out[0].Start)
	assert.Equal(t, geometry.Point2D{X: 10, Y: 0}, out[0].End)
	assert.Equal(t, segs[2], out[1])
}

func TestBridgeGaps_SlightAngleStillBridges(t *testing.T) {
	// 0.05 rad difference is inside the 0.1 rad compatibility window.
	segs := []geometry.Segment{
		geometry.NewSegment(geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 5, Y: 0.25}),
		horizontal(0.25, 5.3, 10),
	}

	out := BridgeGaps(segs, DefaultBridgeOptions())
	require.Len(t, out, 1)
	assert.Equal(t, geometry.Point2D{X: 0, Y: 0}, out[0].Start)
	assert.Equal(t, geometry.Point2D{X: 10, Y: 0.25}, out[0].End)
}

func TestBridgeGaps_KeepsThickness(t *testing.T) {
	a := horizontal(0, 0, 5)
	a.Thickness = 3
	b := horizontal(0, 5.2, 10)

	out := BridgeGaps([]geometry.Segment{a, b}, DefaultBridgeOptions())
	require.Len(t, out, 1)
	assert.Equal(t, 3.0, out[0].Thickness)
}

func TestBridgeGaps_EmptyInput(t *testing.T) {
	assert.Nil(t, BridgeGaps(nil, DefaultBridgeOptions()))
}
