package poiside

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

const (
	// DefaultBufferDistance is the half-width (in degrees) of the corridor
	// around a multidigitized link used by the violation check
	DefaultBufferDistance = 0.00015
)

// ViolationRecord flags a placed point that falls inside the buffered
// corridor of its own multidigitized link. A correctly side-assigned POI on a
// divided road should sit outside that corridor once offset; containment
// suggests the declared side attribute (or the offset) is wrong. Reported for
// human review, never auto-corrected.
type ViolationRecord struct {
	POIID          string
	LinkID         string
	Point          orb.Point
	BufferDistance float64
}

// bufferCurve builds a flat-capped buffer polygon of given half-width around
// the curve: the left-hand offset joined with the reversed right-hand offset,
// closed into a single ring. Mitre joints keep the corridor edges parallel to
// the curve (cap_style flat, join_style mitre).
func bufferCurve(curve orb.LineString, distance float64) (orb.Polygon, error) {
	left, err := offsetCurve(curve, distance)
	if err != nil {
		return nil, err
	}
	right, err := offsetCurve(curve, -distance)
	if err != nil {
		return nil, err
	}
	ring := make(orb.Ring, 0, len(left)+len(right)+1)
	ring = append(ring, left...)
	ring = append(ring, reverseLine(right)...)
	// Close the ring
	ring = append(ring, left[0])
	return orb.Polygon{ring}, nil
}

// WithinLinkBuffer reports whether the point falls inside the flat-capped
// buffer of given half-width around the curve. Degenerate curves produce no
// buffer and therefore no containment.
func WithinLinkBuffer(pt orb.Point, curve orb.LineString, distance float64) bool {
	polygon, err := bufferCurve(curve, distance)
	if err != nil {
		return false
	}
	return planar.PolygonContains(polygon, pt)
}
