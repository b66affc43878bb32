package poiside

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// ErrDegenerateGeometry is returned when link geometry can not be resolved to
// a single usable reference curve (empty, non-line, single point or zero length).
var ErrDegenerateGeometry = errors.New("degenerate geometry")

type GeometryKind uint8

const (
	// GEOMETRY_INVALID marks geometry of non-line kind (point, polygon, empty)
	GEOMETRY_INVALID = GeometryKind(iota)
	// GEOMETRY_SINGLE_CURVE marks a single connected line
	GEOMETRY_SINGLE_CURVE
	// GEOMETRY_MULTI_CURVE marks geometry composed of multiple line parts
	GEOMETRY_MULTI_CURVE
)

// Geometry is a closed representation of link geometry. Its kind is decided
// once at load time so the placement and validation stages never re-inspect
// raw geometry shapes.
type Geometry struct {
	parts []orb.LineString
	kind  GeometryKind
}

// NewSingleCurve wraps a single connected line
func NewSingleCurve(line orb.LineString) Geometry {
	return Geometry{kind: GEOMETRY_SINGLE_CURVE, parts: []orb.LineString{line}}
}

// NewMultiCurve wraps a set of line parts preserving input order
func NewMultiCurve(parts []orb.LineString) Geometry {
	return Geometry{kind: GEOMETRY_MULTI_CURVE, parts: parts}
}

// InvalidGeometry marks geometry which can not carry a reference curve at all
func InvalidGeometry() Geometry {
	return Geometry{kind: GEOMETRY_INVALID}
}

// Kind returns kind of underlying geometry
func (geom Geometry) Kind() GeometryKind {
	return geom.kind
}

// Link is a road segment record. Immutable once loaded.
type Link struct {
	ID         string
	Name       string
	Geometry   Geometry
	Multidigit bool
}

// ResolveCurve resolves link geometry to a single reference curve.
//
// A single connected line is the reference curve verbatim: coordinate order is
// preserved, which fixes the curve's start/end and therefore its left/right
// orientation. Multiple line parts are merged into connected chains by
// endpoint matching (parts may be attached reversed); when multiple disjoint
// chains remain, the chain containing the earliest part in input order wins.
func ResolveCurve(geom Geometry) (orb.LineString, error) {
	switch geom.kind {
	case GEOMETRY_SINGLE_CURVE:
		curve := geom.parts[0]
		if !usableCurve(curve) {
			return nil, errors.Wrap(ErrDegenerateGeometry, "single line part is not traversable")
		}
		return curve, nil
	case GEOMETRY_MULTI_CURVE:
		chains := mergeChains(geom.parts)
		if len(chains) == 0 {
			return nil, errors.Wrap(ErrDegenerateGeometry, "no usable chains after merge")
		}
		curve := chains[0]
		if !usableCurve(curve) {
			return nil, errors.Wrap(ErrDegenerateGeometry, "merged chain is not traversable")
		}
		return curve, nil
	default:
		return nil, errors.Wrap(ErrDegenerateGeometry, "not a line geometry")
	}
}

// usableCurve reports whether line can serve as a reference curve: at least 2
// points and positive Euclidean length (which implies distinct coordinates)
func usableCurve(line orb.LineString) bool {
	if len(line) < 2 {
		return false
	}
	return lineLength(line) > 0
}

// partChain carries a merged chain together with the earliest input index of
// its parts, so the multi-chain tie-break stays deterministic
type partChain struct {
	line     orb.LineString
	firstIdx int
}

// mergeChains merges line parts into connected chains by exact endpoint
// matching. Returned chains are ordered by the earliest input part they contain.
func mergeChains(parts []orb.LineString) []orb.LineString {
	chains := []partChain{}
	for idx, part := range parts {
		if len(part) < 2 {
			continue
		}
		current := partChain{line: clonePart(part), firstIdx: idx}
		// Keep attaching until no chain shares an endpoint with the current one
		attached := true
		for attached {
			attached = false
			for i := range chains {
				joined, ok := joinLines(chains[i].line, current.line)
				if !ok {
					continue
				}
				first := chains[i].firstIdx
				if current.firstIdx < first {
					first = current.firstIdx
				}
				current = partChain{line: joined, firstIdx: first}
				chains = append(chains[:i], chains[i+1:]...)
				attached = true
				break
			}
		}
		chains = append(chains, current)
	}
	sort.Slice(chains, func(i, j int) bool {
		return chains[i].firstIdx < chains[j].firstIdx
	})
	result := make([]orb.LineString, 0, len(chains))
	for _, chain := range chains {
		result = append(result, chain.line)
	}
	return result
}

// joinLines merges two lines sharing an endpoint into one, reversing the
// second one when its orientation does not continue the first
func joinLines(a, b orb.LineString) (orb.LineString, bool) {
	switch {
	case a[len(a)-1] == b[0]:
		return append(a, b[1:]...), true
	case a[len(a)-1] == b[len(b)-1]:
		return append(a, reverseLine(b)[1:]...), true
	case a[0] == b[len(b)-1]:
		return append(b, a[1:]...), true
	case a[0] == b[0]:
		return append(reverseLine(b), a[1:]...), true
	}
	return nil, false
}

// clonePart copies a line part so merging never aliases loaded geometry
func clonePart(line orb.LineString) orb.LineString {
	output := make(orb.LineString, len(line))
	copy(output, line)
	return output
}
