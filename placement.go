package poiside

import (
	"github.com/paulmach/orb"
)

const (
	// DefaultOffsetDistance is the lateral displacement (in degrees) used to
	// pull a POI off the link axis onto its declared side. Tuned empirically
	// for EPSG:4326 street data, not derived from road width.
	DefaultOffsetDistance = 0.0001
)

// OffsetOutcome tells how the lateral offset step of a placement ended
type OffsetOutcome uint8

const (
	// OFFSET_NOT_REQUESTED - declared side was unspecified, base point returned as is
	OFFSET_NOT_REQUESTED = OffsetOutcome(iota)
	// OFFSET_APPLIED - point was interpolated along the offset curve
	OFFSET_APPLIED
	// OFFSET_FELL_BACK - offset curve degenerated, base point returned instead
	OFFSET_FELL_BACK
)

// String returns pretty printed value for OffsetOutcome
func (outcome OffsetOutcome) String() string {
	switch outcome {
	case OFFSET_APPLIED:
		return "applied"
	case OFFSET_FELL_BACK:
		return "fell_back"
	default:
		return "not_requested"
	}
}

// Placement is a computed POI position. Offset degeneracy is never an error:
// the outcome records whether the lateral offset took effect or the placement
// fell back to the on-axis base point (with the reason kept for diagnostics).
type Placement struct {
	Point          orb.Point
	Outcome        OffsetOutcome
	FallbackReason string
}

// Place computes a point at the given fraction along the reference curve,
// displaced laterally to the declared side of the direction of travel.
//
// Fraction is clamped to [0;1] first: out-of-range source values are placed
// at the nearest curve end rather than rejected. The final point is the same
// fraction interpolated along the offset curve proportionally to its own
// length, mirroring how the original placement treats the offset geometry as
// an independent curve.
func Place(curve orb.LineString, fraction float64, side Side, offsetDistance float64) Placement {
	fraction = clampFraction(fraction)
	base := pointAlongLine(curve, fraction)
	if side == SIDE_UNSPECIFIED || offsetDistance == 0 {
		return Placement{Point: base, Outcome: OFFSET_NOT_REQUESTED}
	}

	// Left-hand and right-hand offsets are mirror images
	distance := offsetDistance
	if side == SIDE_RIGHT {
		distance = -offsetDistance
	}
	offset, err := offsetCurve(curve, distance)
	if err != nil {
		return Placement{Point: base, Outcome: OFFSET_FELL_BACK, FallbackReason: err.Error()}
	}
	if !usableCurve(offset) {
		return Placement{Point: base, Outcome: OFFSET_FELL_BACK, FallbackReason: "offset curve degenerated to zero length"}
	}
	return Placement{Point: pointAlongLine(offset, fraction), Outcome: OFFSET_APPLIED}
}
