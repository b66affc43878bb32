package poiside

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlacedRows() []PlacedRow {
	return []PlacedRow{
		{
			POIID:        "1001",
			LinkID:       "767372159",
			Name:         "FARMACIA",
			Point:        orb.Point{-99.1001, 19.4321},
			DeclaredSide: SIDE_LEFT,
			Computed:     LABEL_LEFT,
			Match:        MATCH_CORRECT,
			Offset:       OFFSET_APPLIED,
		},
		{
			POIID:        "1002",
			LinkID:       "767372160",
			Point:        orb.Point{-99.2, 19.5},
			DeclaredSide: SIDE_RIGHT,
			Computed:     LABEL_LEFT,
			Match:        MATCH_INCORRECT,
			Offset:       OFFSET_FELL_BACK,
		},
	}
}

func TestExportPlacedCSV(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "placed.csv")
	require.NoError(t, ExportPlacedCSV(fname, testPlacedRows()))

	file, err := os.Open(fname)
	require.NoError(t, err)
	defer file.Close()
	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"poi_id", "link_id", "name", "lon", "lat", "declared_side", "computed_side", "match", "offset"}, records[0])
	assert.Equal(t, []string{"1001", "767372159", "FARMACIA", "-99.100100", "19.432100", "L", "L", "correct", "applied"}, records[1])
	assert.Equal(t, "incorrect", records[2][7])
	assert.Equal(t, "fell_back", records[2][8])
}

func TestExportViolationsCSV(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "violations.csv")
	violations := []ViolationRecord{
		{POIID: "1001", LinkID: "767372159", Point: orb.Point{-99.1, 19.4}, BufferDistance: 0.00015},
	}
	require.NoError(t, ExportViolationsCSV(fname, violations))

	file, err := os.Open(fname)
	require.NoError(t, err)
	defer file.Close()
	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"poi_id", "link_id", "lon", "lat", "buffer_distance"}, records[0])
	assert.Equal(t, "0.000150", records[1][4])
}

func TestPlacedFeatureCollection(t *testing.T) {
	collection := PlacedFeatureCollection(testPlacedRows())
	require.Len(t, collection.Features, 2)

	first := collection.Features[0]
	assert.Equal(t, []float64{-99.1001, 19.4321}, first.Geometry.Point)
	assert.Equal(t, "1001", first.Properties["poi_id"])
	assert.Equal(t, "FARMACIA", first.Properties["name"])
	assert.Equal(t, "correct", first.Properties["match"])

	// Empty name stays out of properties
	_, hasName := collection.Features[1].Properties["name"]
	assert.False(t, hasName)
}

func TestExportPlacedGeoJSON(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "placed.geojson")
	require.NoError(t, ExportPlacedGeoJSON(fname, testPlacedRows()))
	data, err := os.ReadFile(fname)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"FeatureCollection"`)
	assert.Contains(t, string(data), `"poi_id":"1001"`)
}
