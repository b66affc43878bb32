package poiside

import (
	"github.com/paulmach/orb"
)

// SideLabel is the computed side of a placed point relative to its curve
type SideLabel uint8

const (
	// LABEL_NONE means no label was computed (curve unavailable)
	LABEL_NONE = SideLabel(iota)
	// LABEL_LEFT - point falls to the left of the start->end chord
	LABEL_LEFT
	// LABEL_RIGHT - point falls to the right of the start->end chord
	LABEL_RIGHT
	// LABEL_ON_AXIS - point falls exactly on the line through start and end
	LABEL_ON_AXIS
)

// String returns pretty printed value for SideLabel
func (label SideLabel) String() string {
	switch label {
	case LABEL_LEFT:
		return "L"
	case LABEL_RIGHT:
		return "R"
	case LABEL_ON_AXIS:
		return "on_axis"
	default:
		return ""
	}
}

// MatchResult compares computed side against the declared one
type MatchResult uint8

const (
	// MATCH_INDETERMINATE - no reference curve was available
	MATCH_INDETERMINATE = MatchResult(iota)
	// MATCH_CORRECT - computed side equals declared side
	MATCH_CORRECT
	// MATCH_INCORRECT - computed side differs from declared side
	MATCH_INCORRECT
)

// String returns pretty printed value for MatchResult
func (match MatchResult) String() string {
	switch match {
	case MATCH_CORRECT:
		return "correct"
	case MATCH_INCORRECT:
		return "incorrect"
	default:
		return "indeterminate"
	}
}

// SideClassification is the outcome of the chord side test for a placed point
type SideClassification struct {
	Computed SideLabel
	Match    MatchResult
}

// ClassifySide determines which side of the curve the point falls on and
// compares it against the declared side.
//
// The test is a coarse chord test: the sign of the cross product between the
// curve's start->end vector and the start->point vector. It can disagree with
// a per-segment nearest-side test on curves with sharp reversals; the coarse
// behavior is kept on purpose since downstream violation statistics depend on it.
func ClassifySide(pt orb.Point, curve orb.LineString, declared Side) SideClassification {
	if len(curve) < 2 {
		return SideClassification{Computed: LABEL_NONE, Match: MATCH_INDETERMINATE}
	}
	cross := chordCross(curve, pt)
	var computed SideLabel
	switch {
	case cross > 0:
		computed = LABEL_LEFT
	case cross < 0:
		computed = LABEL_RIGHT
	default:
		computed = LABEL_ON_AXIS
	}
	match := MATCH_INCORRECT
	if (computed == LABEL_LEFT && declared == SIDE_LEFT) || (computed == LABEL_RIGHT && declared == SIDE_RIGHT) {
		match = MATCH_CORRECT
	}
	return SideClassification{Computed: computed, Match: match}
}
