package poiside

import (
	"context"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineRun(t *testing.T) {
	net := NewNetwork(testLinks())
	pipeline := NewPipeline(net)

	pois := []POIRecord{
		// Northbound link: left of travel is west
		{ID: "p1", LinkID: "100", Name: "Cafe", Fraction: 0.5, Side: SIDE_LEFT},
		{ID: "p2", LinkID: "100", Fraction: 0.5, Side: SIDE_RIGHT},
		{ID: "p3", LinkID: "missing", Fraction: 0.5, Side: SIDE_LEFT},
		{ID: "p4", LinkID: "300", Fraction: 0.5, Side: SIDE_LEFT},
	}

	result, err := pipeline.Run(context.Background(), pois)
	require.NoError(t, err)

	assert.Equal(t, 4, result.Stats.TotalPOIs)
	assert.Equal(t, 2, result.Stats.Placed)
	assert.Equal(t, 1, result.Stats.UnresolvedLinks)
	assert.Equal(t, 1, result.Stats.DegenerateGeometries)
	assert.Equal(t, 2, result.Stats.Indeterminate)
	assert.Equal(t, 2, result.Stats.Correct)
	assert.Equal(t, 0, result.Stats.Incorrect)
	require.Len(t, result.Placed, 2)

	first := result.Placed[0]
	assert.Equal(t, "p1", first.POIID)
	assert.Equal(t, LABEL_LEFT, first.Computed)
	assert.Equal(t, MATCH_CORRECT, first.Match)
	assert.Equal(t, OFFSET_APPLIED, first.Offset)
	// Northbound curve, left offset displaces west
	assert.InDelta(t, -DefaultOffsetDistance, first.Point[0], 1e-12)
	assert.InDelta(t, 5.0, first.Point[1], 1e-9)

	second := result.Placed[1]
	assert.Equal(t, LABEL_RIGHT, second.Computed)
	assert.Equal(t, MATCH_CORRECT, second.Match)
}

func TestPipelineChordTestIncorrect(t *testing.T) {
	// A hairpin link: the mid-curve point offset to the left of travel ends up
	// on the right of the start->end chord, so the coarse chord test reports a
	// mismatch against the declared side
	links := []Link{
		{ID: "hairpin", Geometry: NewSingleCurve(orb.LineString{{0.0, 0.0}, {10.0, 0.0}, {10.0, 5.0}, {0.0, 5.0}})},
	}
	pipeline := NewPipeline(NewNetwork(links))
	result, err := pipeline.Run(context.Background(), []POIRecord{
		{ID: "p1", LinkID: "hairpin", Fraction: 0.5, Side: SIDE_LEFT},
	})
	require.NoError(t, err)
	require.Len(t, result.Placed, 1)
	assert.Equal(t, LABEL_RIGHT, result.Placed[0].Computed)
	assert.Equal(t, MATCH_INCORRECT, result.Placed[0].Match)
	assert.Equal(t, 1, result.Stats.Incorrect)
}

func TestPipelineRunDeterministicOrder(t *testing.T) {
	net := NewNetwork(testLinks())
	pipeline := NewPipeline(net, WithWorkers(8))

	pois := make([]POIRecord, 0, 50)
	for i := 0; i < 50; i++ {
		pois = append(pois, POIRecord{
			ID:       string(rune('a' + i%26)),
			LinkID:   "100",
			Fraction: float64(i) / 50.0,
			Side:     SIDE_LEFT,
		})
	}
	result, err := pipeline.Run(context.Background(), pois)
	require.NoError(t, err)
	require.Len(t, result.Placed, 50)
	for i, row := range result.Placed {
		assert.Equal(t, pois[i].ID, row.POIID)
	}
}

func TestPipelineViolations(t *testing.T) {
	net := NewNetwork(testLinks())
	// Buffer wide enough that the offset point stays inside the corridor
	pipeline := NewPipeline(net,
		WithOffsetDistance(0.5),
		WithBufferDistance(1.0),
	)

	pois := []POIRecord{
		// Link 200 is multidigit: offset 0.5 < buffer 1.0, inside
		{ID: "v1", LinkID: "200", Fraction: 0.5, Side: SIDE_LEFT},
		// Link 100 is not multidigit: never checked
		{ID: "v2", LinkID: "100", Fraction: 0.5, Side: SIDE_LEFT},
	}
	result, err := pipeline.Run(context.Background(), pois)
	require.NoError(t, err)
	require.Len(t, result.Violations, 1)
	assert.Equal(t, "v1", result.Violations[0].POIID)
	assert.Equal(t, "200", result.Violations[0].LinkID)
	assert.Equal(t, 1.0, result.Violations[0].BufferDistance)
	assert.Equal(t, 1, result.Stats.Violations)
}

func TestPipelineNoViolationOutsideBuffer(t *testing.T) {
	net := NewNetwork(testLinks())
	// Offset pushes the point past the corridor edge
	pipeline := NewPipeline(net,
		WithOffsetDistance(2.0),
		WithBufferDistance(1.0),
	)
	pois := []POIRecord{
		{ID: "v1", LinkID: "200", Fraction: 0.5, Side: SIDE_LEFT},
	}
	result, err := pipeline.Run(context.Background(), pois)
	require.NoError(t, err)
	assert.Empty(t, result.Violations)
}

func TestPipelineRunFatalConditions(t *testing.T) {
	empty := NewNetwork(nil)
	_, err := NewPipeline(empty).Run(context.Background(), []POIRecord{{ID: "p", LinkID: "100"}})
	assert.Error(t, err)

	net := NewNetwork(testLinks())
	_, err = NewPipeline(net).Run(context.Background(), nil)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewPipeline(net).Run(ctx, []POIRecord{{ID: "p", LinkID: "100", Fraction: 0.5}})
	assert.Error(t, err)
}

func TestPipelineOffsetFallbackCounted(t *testing.T) {
	links := []Link{
		// A straight usable curve never degenerates on offset
		{ID: "ok", Geometry: NewSingleCurve(orb.LineString{{0.0, 0.0}, {10.0, 0.0}})},
	}
	net := NewNetwork(links)
	pipeline := NewPipeline(net)
	result, err := pipeline.Run(context.Background(), []POIRecord{
		{ID: "p1", LinkID: "ok", Fraction: 0.5, Side: SIDE_LEFT},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Stats.OffsetFallbacks)
	assert.Equal(t, OFFSET_APPLIED, result.Placed[0].Offset)
}
