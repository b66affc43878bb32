package poiside

import (
	"encoding/csv"
	"fmt"
	"os"

	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
)

// ExportPlacedCSV writes the placed-point table to a CSV file
func ExportPlacedCSV(fname string, rows []PlacedRow) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	err = writer.Write([]string{"poi_id", "link_id", "name", "lon", "lat", "declared_side", "computed_side", "match", "offset"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}
	for _, row := range rows {
		err = writer.Write([]string{
			row.POIID,
			row.LinkID,
			row.Name,
			fmt.Sprintf("%f", row.Point[0]),
			fmt.Sprintf("%f", row.Point[1]),
			row.DeclaredSide.String(),
			row.Computed.String(),
			row.Match.String(),
			row.Offset.String(),
		})
		if err != nil {
			return errors.Wrap(err, "Can't write placed point")
		}
	}
	return nil
}

// ExportViolationsCSV writes the multidigit violation table to a CSV file
func ExportViolationsCSV(fname string, violations []ViolationRecord) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	err = writer.Write([]string{"poi_id", "link_id", "lon", "lat", "buffer_distance"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}
	for _, violation := range violations {
		err = writer.Write([]string{
			violation.POIID,
			violation.LinkID,
			fmt.Sprintf("%f", violation.Point[0]),
			fmt.Sprintf("%f", violation.Point[1]),
			fmt.Sprintf("%f", violation.BufferDistance),
		})
		if err != nil {
			return errors.Wrap(err, "Can't write violation")
		}
	}
	return nil
}

// PlacedFeatureCollection converts the placed-point table to a GeoJSON
// FeatureCollection for map rendering
func PlacedFeatureCollection(rows []PlacedRow) *geojson.FeatureCollection {
	collection := geojson.NewFeatureCollection()
	for _, row := range rows {
		feature := geojson.NewPointFeature([]float64{row.Point[0], row.Point[1]})
		feature.SetProperty("poi_id", row.POIID)
		feature.SetProperty("link_id", row.LinkID)
		if row.Name != "" {
			feature.SetProperty("name", row.Name)
		}
		feature.SetProperty("declared_side", row.DeclaredSide.String())
		feature.SetProperty("computed_side", row.Computed.String())
		feature.SetProperty("match", row.Match.String())
		collection.AddFeature(feature)
	}
	return collection
}

// ExportPlacedGeoJSON writes the placed-point table as a GeoJSON
// FeatureCollection file
func ExportPlacedGeoJSON(fname string, rows []PlacedRow) error {
	data, err := PlacedFeatureCollection(rows).MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "Can't marshal placed points")
	}
	err = os.WriteFile(fname, data, 0644)
	if err != nil {
		return errors.Wrap(err, "Can't write file")
	}
	return nil
}
