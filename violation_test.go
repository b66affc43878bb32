package poiside

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithinLinkBuffer(t *testing.T) {
	curve := orb.LineString{{0.0, 0.0}, {10.0, 0.0}}
	distance := 1.0

	// Points on the curve itself are always inside a positive-width buffer
	assert.True(t, WithinLinkBuffer(orb.Point{5.0, 0.0}, curve, distance))
	assert.True(t, WithinLinkBuffer(orb.Point{5.0, 0.5}, curve, distance))
	assert.True(t, WithinLinkBuffer(orb.Point{5.0, -0.5}, curve, distance))

	// Outside the corridor on either side
	assert.False(t, WithinLinkBuffer(orb.Point{5.0, 1.5}, curve, distance))
	assert.False(t, WithinLinkBuffer(orb.Point{5.0, -1.5}, curve, distance))

	// Beyond the flat caps: the corridor does not extend past the curve ends
	assert.False(t, WithinLinkBuffer(orb.Point{-2.0, 0.0}, curve, distance))
	assert.False(t, WithinLinkBuffer(orb.Point{12.0, 0.0}, curve, distance))
}

func TestWithinLinkBufferBentCurve(t *testing.T) {
	curve := orb.LineString{{0.0, 0.0}, {10.0, 0.0}, {10.0, 10.0}}
	distance := 1.0

	assert.True(t, WithinLinkBuffer(orb.Point{10.0, 5.0}, curve, distance))
	assert.True(t, WithinLinkBuffer(orb.Point{9.5, 5.0}, curve, distance))
	assert.False(t, WithinLinkBuffer(orb.Point{5.0, 5.0}, curve, distance))
}

func TestWithinLinkBufferDegenerateCurve(t *testing.T) {
	// A zero-length curve has no buffer, so nothing can violate it
	curve := orb.LineString{{3.0, 4.0}, {3.0, 4.0}}
	assert.False(t, WithinLinkBuffer(orb.Point{3.0, 4.0}, curve, 1.0))
}

func TestBufferCurveRing(t *testing.T) {
	curve := orb.LineString{{0.0, 0.0}, {10.0, 0.0}}
	polygon, err := bufferCurve(curve, 1.0)
	require.NoError(t, err)
	require.Len(t, polygon, 1)
	ring := polygon[0]
	// Closed ring
	assert.Equal(t, ring[0], ring[len(ring)-1])
	// Straight two-point curve gives a rectangle: 2+2 corners plus closure
	assert.Len(t, ring, 5)
}
