package poiside

import (
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Network is a set of road links indexed by identifier together with their
// resolved reference curves. Curves are resolved once, before any POI is
// processed; afterwards the index is read-only, so concurrent per-POI lookups
// need no locking.
type Network struct {
	links      map[string]*Link
	curves     map[string]orb.LineString
	degenerate int
}

// NewNetwork indexes links by identifier and resolves every reference curve
// up front. Duplicate identifiers keep the first occurrence; links with
// degenerate geometry stay in the index (their multidigit flag is still
// meaningful) but carry no curve.
func NewNetwork(links []Link) *Network {
	net := &Network{
		links:  make(map[string]*Link, len(links)),
		curves: make(map[string]orb.LineString, len(links)),
	}
	log := zap.L().With(zap.String("component", "network"))
	duplicates := 0
	for i := range links {
		link := &links[i]
		if _, ok := net.links[link.ID]; ok {
			duplicates++
			continue
		}
		net.links[link.ID] = link
		curve, err := ResolveCurve(link.Geometry)
		if err != nil {
			net.degenerate++
			log.Debug("link geometry is degenerate", zap.String("link_id", link.ID), zap.Error(err))
			continue
		}
		net.curves[link.ID] = curve
	}
	if duplicates > 0 {
		log.Warn("duplicate link identifiers ignored", zap.Int("count", duplicates))
	}
	if net.degenerate > 0 {
		log.Info("links without usable reference curve", zap.Int("count", net.degenerate))
	}
	return net
}

// Link returns the link with given identifier
func (net *Network) Link(linkID string) (*Link, bool) {
	link, ok := net.links[linkID]
	return link, ok
}

// Curve returns the resolved reference curve for given link identifier. The
// second value is false both for unknown links and for links whose geometry
// failed to resolve.
func (net *Network) Curve(linkID string) (orb.LineString, bool) {
	curve, ok := net.curves[linkID]
	return curve, ok
}

// Len returns number of indexed links
func (net *Network) Len() int {
	return len(net.links)
}

// DegenerateLinks returns number of links whose geometry failed to resolve
func (net *Network) DegenerateLinks() int {
	return net.degenerate
}

// CurveFor resolves the curve lookup for a POI's parent link, distinguishing
// a missing link from a link with degenerate geometry.
func (net *Network) CurveFor(linkID string) (orb.LineString, error) {
	if _, ok := net.links[linkID]; !ok {
		return nil, errors.Wrapf(ErrUnresolvedLink, "link %s", linkID)
	}
	curve, ok := net.curves[linkID]
	if !ok {
		return nil, errors.Wrapf(ErrDegenerateGeometry, "link %s", linkID)
	}
	return curve, nil
}

// ErrUnresolvedLink is returned when a POI references a link identifier
// absent from the network
var ErrUnresolvedLink = errors.New("unresolved link")
