package poiside

// Side is the declared side of the parent link a POI should fall on
type Side uint8

const (
	// SIDE_UNSPECIFIED means source data declared no side (or an unknown value)
	SIDE_UNSPECIFIED = Side(iota)
	// SIDE_LEFT is the left side relative to the curve's direction of travel
	SIDE_LEFT
	// SIDE_RIGHT is the right side relative to the curve's direction of travel
	SIDE_RIGHT
)

// String returns source-data representation of the declared side
func (side Side) String() string {
	switch side {
	case SIDE_LEFT:
		return "L"
	case SIDE_RIGHT:
		return "R"
	default:
		return ""
	}
}

// SideFromString maps source-data side markers to Side. Anything outside
// {"L", "R"} is unspecified.
func SideFromString(value string) Side {
	switch value {
	case "L":
		return SIDE_LEFT
	case "R":
		return SIDE_RIGHT
	default:
		return SIDE_UNSPECIFIED
	}
}

// POIRecord is a point-of-interest record associated with a link by
// identifier. Fraction is the nominal position along the link in [0;1]
// (source data may violate the range; the placement engine clamps it).
// Immutable input.
type POIRecord struct {
	ID       string
	LinkID   string
	Name     string
	Fraction float64
	Side     Side
}
