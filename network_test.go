package poiside

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLinks() []Link {
	return []Link{
		{
			ID:       "100",
			Name:     "Main St",
			Geometry: NewSingleCurve(orb.LineString{{0.0, 0.0}, {0.0, 10.0}}),
		},
		{
			ID:         "200",
			Multidigit: true,
			Geometry: NewMultiCurve([]orb.LineString{
				{{0.0, 0.0}, {5.0, 0.0}},
				{{5.0, 0.0}, {10.0, 0.0}},
			}),
		},
		{
			ID:       "300",
			Geometry: InvalidGeometry(),
		},
	}
}

func TestNewNetwork(t *testing.T) {
	net := NewNetwork(testLinks())
	assert.Equal(t, 3, net.Len())
	assert.Equal(t, 1, net.DegenerateLinks())

	link, ok := net.Link("200")
	require.True(t, ok)
	assert.True(t, link.Multidigit)

	curve, ok := net.Curve("200")
	require.True(t, ok)
	assert.Equal(t, orb.LineString{{0.0, 0.0}, {5.0, 0.0}, {10.0, 0.0}}, curve)

	// Degenerate link stays indexed but carries no curve
	_, ok = net.Link("300")
	assert.True(t, ok)
	_, ok = net.Curve("300")
	assert.False(t, ok)
}

func TestNetworkDuplicateKeepsFirst(t *testing.T) {
	links := []Link{
		{ID: "100", Name: "first", Geometry: NewSingleCurve(orb.LineString{{0.0, 0.0}, {1.0, 0.0}})},
		{ID: "100", Name: "second", Geometry: NewSingleCurve(orb.LineString{{5.0, 5.0}, {6.0, 5.0}})},
	}
	net := NewNetwork(links)
	assert.Equal(t, 1, net.Len())
	link, _ := net.Link("100")
	assert.Equal(t, "first", link.Name)
}

func TestCurveFor(t *testing.T) {
	net := NewNetwork(testLinks())

	curve, err := net.CurveFor("100")
	require.NoError(t, err)
	assert.Len(t, curve, 2)

	_, err = net.CurveFor("missing")
	require.Error(t, err)
	assert.Equal(t, ErrUnresolvedLink, errors.Cause(err))

	_, err = net.CurveFor("300")
	require.Error(t, err)
	assert.Equal(t, ErrDegenerateGeometry, errors.Cause(err))
}
