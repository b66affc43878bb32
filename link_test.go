package poiside

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCurveSingle(t *testing.T) {
	line := orb.LineString{{0.0, 0.0}, {5.0, 0.0}, {10.0, 0.0}}
	curve, err := ResolveCurve(NewSingleCurve(line))
	require.NoError(t, err)
	assert.Equal(t, line, curve)
}

func TestResolveCurveMergesTouchingParts(t *testing.T) {
	parts := []orb.LineString{
		{{0.0, 0.0}, {5.0, 0.0}},
		{{5.0, 0.0}, {10.0, 0.0}},
	}
	curve, err := ResolveCurve(NewMultiCurve(parts))
	require.NoError(t, err)
	assert.Equal(t, orb.LineString{{0.0, 0.0}, {5.0, 0.0}, {10.0, 0.0}}, curve)
}

func TestResolveCurveMergesReversedPart(t *testing.T) {
	// Second part shares its END with the first part's end and must be
	// attached reversed
	parts := []orb.LineString{
		{{0.0, 0.0}, {5.0, 0.0}},
		{{10.0, 0.0}, {5.0, 0.0}},
	}
	curve, err := ResolveCurve(NewMultiCurve(parts))
	require.NoError(t, err)
	assert.Equal(t, orb.LineString{{0.0, 0.0}, {5.0, 0.0}, {10.0, 0.0}}, curve)
}

func TestResolveCurveOutOfOrderParts(t *testing.T) {
	// The middle part arrives last; the merge still connects all three
	parts := []orb.LineString{
		{{0.0, 0.0}, {5.0, 0.0}},
		{{10.0, 0.0}, {15.0, 0.0}},
		{{5.0, 0.0}, {10.0, 0.0}},
	}
	curve, err := ResolveCurve(NewMultiCurve(parts))
	require.NoError(t, err)
	require.Len(t, curve, 4)
	assert.Equal(t, orb.Point{0.0, 0.0}, curve[0])
	assert.Equal(t, orb.Point{15.0, 0.0}, curve[len(curve)-1])
}

func TestResolveCurveDisjointPartsPickFirstChain(t *testing.T) {
	// Two disjoint chains: the one containing the first input part wins
	parts := []orb.LineString{
		{{0.0, 0.0}, {5.0, 0.0}},
		{{100.0, 100.0}, {105.0, 100.0}},
	}
	curve, err := ResolveCurve(NewMultiCurve(parts))
	require.NoError(t, err)
	assert.Equal(t, orb.LineString{{0.0, 0.0}, {5.0, 0.0}}, curve)
}

func TestResolveCurveDegenerate(t *testing.T) {
	cases := []struct {
		name string
		geom Geometry
	}{
		{"invalid", InvalidGeometry()},
		{"single point", NewSingleCurve(orb.LineString{{1.0, 1.0}})},
		{"zero length", NewSingleCurve(orb.LineString{{1.0, 1.0}, {1.0, 1.0}})},
		{"empty multi", NewMultiCurve(nil)},
		{"multi of points", NewMultiCurve([]orb.LineString{{{1.0, 1.0}}})},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ResolveCurve(c.geom)
			require.Error(t, err)
			assert.Equal(t, ErrDegenerateGeometry, errors.Cause(err))
		})
	}
}

func TestMergeChainsDoesNotAliasInput(t *testing.T) {
	part := orb.LineString{{0.0, 0.0}, {5.0, 0.0}}
	other := orb.LineString{{5.0, 0.0}, {10.0, 0.0}}
	chains := mergeChains([]orb.LineString{part, other})
	require.Len(t, chains, 1)
	chains[0][0] = orb.Point{-1.0, -1.0}
	assert.Equal(t, orb.Point{0.0, 0.0}, part[0])
}
