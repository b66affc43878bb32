package poiside

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	geojson "github.com/paulmach/go.geojson"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// LinksFromGeoJSONDir loads link records from every *.geojson file in the
// given directory (street network exports are commonly split across tiles)
func LinksFromGeoJSONDir(dir string) ([]Link, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.geojson"))
	if err != nil {
		return nil, errors.Wrap(err, "geojson: glob directory")
	}
	if len(matches) == 0 {
		return nil, errors.Errorf("geojson: no *.geojson files in %s", dir)
	}
	links := []Link{}
	for _, fname := range matches {
		fileLinks, err := LinksFromGeoJSONFile(fname)
		if err != nil {
			return nil, err
		}
		links = append(links, fileLinks...)
	}
	return links, nil
}

// LinksFromGeoJSONFile loads link records from a single GeoJSON
// FeatureCollection file
func LinksFromGeoJSONFile(fname string) ([]Link, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, errors.Wrapf(err, "geojson: read %s", fname)
	}
	collection, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrapf(err, "geojson: unmarshal %s", fname)
	}
	links := linksFromCollection(collection)
	zap.L().Debug("geojson file loaded", zap.String("file", fname), zap.Int("links", len(links)))
	return links, nil
}

// linksFromCollection converts GeoJSON features to link records. Property
// names are matched case-insensitively since street exports disagree on
// casing (link_id vs LINK_ID). Features without a link identifier are dropped.
func linksFromCollection(collection *geojson.FeatureCollection) []Link {
	links := make([]Link, 0, len(collection.Features))
	dropped := 0
	for _, feature := range collection.Features {
		linkID := propString(feature.Properties, "link_id")
		if linkID == "" {
			dropped++
			continue
		}
		links = append(links, Link{
			ID:         linkID,
			Name:       propString(feature.Properties, "st_name", "name"),
			Multidigit: strings.EqualFold(propString(feature.Properties, "multidigit"), "Y"),
			Geometry:   geometryFromGeoJSON(feature.Geometry),
		})
	}
	if dropped > 0 {
		zap.L().Warn("geojson features without link identifier dropped", zap.Int("count", dropped))
	}
	return links
}

// geometryFromGeoJSON maps a GeoJSON geometry to the closed link geometry
// variant. Anything besides LineString/MultiLineString is invalid for a road
// link and resolves to "no placement possible" downstream.
func geometryFromGeoJSON(geometry *geojson.Geometry) Geometry {
	if geometry == nil {
		return InvalidGeometry()
	}
	switch geometry.Type {
	case geojson.GeometryLineString:
		return NewSingleCurve(toLineString(geometry.LineString))
	case geojson.GeometryMultiLineString:
		parts := make([]orb.LineString, 0, len(geometry.MultiLineString))
		for _, part := range geometry.MultiLineString {
			parts = append(parts, toLineString(part))
		}
		return NewMultiCurve(parts)
	default:
		return InvalidGeometry()
	}
}

// toLineString converts raw GeoJSON positions ([lon, lat]) to a line
func toLineString(positions [][]float64) orb.LineString {
	line := make(orb.LineString, 0, len(positions))
	for _, position := range positions {
		if len(position) < 2 {
			continue
		}
		line = append(line, orb.Point{position[0], position[1]})
	}
	return line
}

// propString extracts the first matching property by case-insensitive name.
// Numeric identifiers are rendered without an exponent so they join cleanly
// against CSV identifiers.
func propString(properties map[string]interface{}, names ...string) string {
	for _, name := range names {
		for key, value := range properties {
			if !strings.EqualFold(key, name) {
				continue
			}
			switch typed := value.(type) {
			case string:
				return strings.TrimSpace(typed)
			case float64:
				return strconv.FormatFloat(typed, 'f', -1, 64)
			case int:
				return strconv.Itoa(typed)
			case bool:
				if typed {
					return "Y"
				}
				return "N"
			}
		}
	}
	return ""
}
