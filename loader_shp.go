package poiside

import (
	"strings"

	shp "github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// LinksFromShapefile loads link records from an ESRI shapefile. Field names
// are matched case-insensitively; empty names fall back to the conventional
// LINK_ID / MULTIDIGIT / ST_NAME attributes of street network products.
func LinksFromShapefile(fname, linkIDField, multidigitField string) ([]Link, error) {
	if linkIDField == "" {
		linkIDField = "LINK_ID"
	}
	if multidigitField == "" {
		multidigitField = "MULTIDIGIT"
	}

	reader, err := shp.Open(fname)
	if err != nil {
		return nil, errors.Wrapf(err, "shapefile: open %s", fname)
	}
	defer reader.Close()

	// DBF field names are fixed-width and NUL padded
	fieldIdx := make(map[string]int)
	for i, field := range reader.Fields() {
		name := strings.TrimRight(field.String(), "\x00")
		fieldIdx[strings.ToLower(name)] = i
	}
	linkIdx, ok := fieldIdx[strings.ToLower(linkIDField)]
	if !ok {
		return nil, errors.Errorf("shapefile: field %s not found in %s", linkIDField, fname)
	}
	multidigitIdx, hasMultidigit := fieldIdx[strings.ToLower(multidigitField)]
	nameIdx, hasName := fieldIdx["st_name"]
	if !hasName {
		nameIdx, hasName = fieldIdx["name"]
	}

	links := []Link{}
	skipped := 0
	for reader.Next() {
		_, shape := reader.Shape()

		linkID := strings.TrimSpace(strings.TrimRight(reader.Attribute(linkIdx), "\x00"))
		if linkID == "" {
			skipped++
			continue
		}
		link := Link{
			ID:       linkID,
			Geometry: geometryFromShape(shape),
		}
		if hasMultidigit {
			value := strings.TrimSpace(strings.TrimRight(reader.Attribute(multidigitIdx), "\x00"))
			link.Multidigit = strings.EqualFold(value, "Y")
		}
		if hasName {
			link.Name = strings.TrimSpace(strings.TrimRight(reader.Attribute(nameIdx), "\x00"))
		}
		links = append(links, link)
	}
	if skipped > 0 {
		zap.L().Warn("shapefile records without link identifier skipped",
			zap.String("file", fname),
			zap.Int("count", skipped),
		)
	}
	return links, nil
}

// geometryFromShape maps a shapefile shape to the link geometry variant.
// PolyLine parts become a multi curve (or a single curve when there is
// exactly one part); point and polygon shapes are invalid for road links.
func geometryFromShape(shape shp.Shape) Geometry {
	polyline, ok := shape.(*shp.PolyLine)
	if !ok || polyline == nil {
		return InvalidGeometry()
	}
	numParts := int(polyline.NumParts)
	if numParts == 0 || len(polyline.Points) == 0 {
		return InvalidGeometry()
	}
	parts := make([]orb.LineString, 0, numParts)
	for i := 0; i < numParts; i++ {
		start := int(polyline.Parts[i])
		end := len(polyline.Points)
		if i+1 < numParts {
			end = int(polyline.Parts[i+1])
		}
		part := make(orb.LineString, 0, end-start)
		for j := start; j < end; j++ {
			part = append(part, orb.Point{polyline.Points[j].X, polyline.Points[j].Y})
		}
		parts = append(parts, part)
	}
	if len(parts) == 1 {
		return NewSingleCurve(parts[0])
	}
	return NewMultiCurve(parts)
}
