package poiside

import (
	"context"
	"os"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// OSMConfig allows to filter ways by highway tag values from OSM data
type OSMConfig struct {
	// Tags is the set of accepted highway values; empty accepts every highway way
	Tags []string
}

// CheckTag checks if incoming tag value is represented in configuration
func (cfg *OSMConfig) CheckTag(tag string) bool {
	if len(cfg.Tags) == 0 {
		return true
	}
	for i := range cfg.Tags {
		if cfg.Tags[i] == tag {
			return true
		}
	}
	return false
}

// LinksFromOSMFile loads link records from a file of PBF-format (in OSM terms).
//
// Each accepted way becomes one link with the way's full node geometry; the
// multidigit flag is inferred from the dual_carriageway tag, falling back to
// oneway=yes (one carriageway of a divided road is mapped as a oneway way in
// OSM). The inference is a heuristic: it marks candidates for the violation
// check, it does not prove the way belongs to a divided road.
func LinksFromOSMFile(ctx context.Context, fname string, cfg *OSMConfig) ([]Link, error) {
	file, err := os.Open(fname)
	if err != nil {
		return nil, errors.Wrap(err, "osm: file open")
	}
	defer file.Close()

	log := zap.L().With(zap.String("component", "osm_loader"))

	// First pass: collect accepted ways and remember which nodes they need
	scannerWays := osmpbf.New(ctx, file, 4)
	ways := []*osm.Way{}
	nodesNeeded := make(map[osm.NodeID]struct{})
	for scannerWays.Scan() {
		obj := scannerWays.Object()
		if obj.ObjectID().Type() != "way" {
			continue
		}
		way := obj.(*osm.Way)
		tagMap := way.TagMap()
		highway, ok := tagMap["highway"]
		if !ok {
			continue
		}
		if !cfg.CheckTag(highway) {
			continue
		}
		ways = append(ways, way)
		for _, wayNode := range way.Nodes {
			nodesNeeded[wayNode.ID] = struct{}{}
		}
	}
	if scannerWays.Err() != nil {
		scannerWays.Close()
		return nil, errors.Wrap(scannerWays.Err(), "osm: scanner error on ways")
	}
	scannerWays.Close()
	log.Debug("osm ways scanned", zap.Int("ways", len(ways)))

	// Second pass: collect coordinates for needed nodes
	if _, err := file.Seek(0, 0); err != nil {
		return nil, errors.Wrap(err, "osm: can't repeat seeking")
	}
	scannerNodes := osmpbf.New(ctx, file, 4)
	defer scannerNodes.Close()
	nodes := make(map[osm.NodeID]orb.Point, len(nodesNeeded))
	for scannerNodes.Scan() {
		obj := scannerNodes.Object()
		if obj.ObjectID().Type() != "node" {
			continue
		}
		node := obj.(*osm.Node)
		if _, ok := nodesNeeded[node.ID]; ok {
			nodes[node.ID] = orb.Point{node.Lon, node.Lat}
		}
	}
	if scannerNodes.Err() != nil {
		return nil, errors.Wrap(scannerNodes.Err(), "osm: scanner error on nodes")
	}
	log.Debug("osm nodes scanned", zap.Int("nodes", len(nodes)))

	links := make([]Link, 0, len(ways))
	incompleteWays := 0
	for _, way := range ways {
		geometry := make(orb.LineString, 0, len(way.Nodes))
		complete := true
		for _, wayNode := range way.Nodes {
			pt, ok := nodes[wayNode.ID]
			if !ok {
				complete = false
				break
			}
			geometry = append(geometry, pt)
		}
		if !complete {
			incompleteWays++
			continue
		}
		tagMap := way.TagMap()
		multidigit := tagMap["dual_carriageway"] == "yes"
		if !multidigit {
			oneway := tagMap["oneway"]
			multidigit = oneway == "yes" || oneway == "1"
		}
		links = append(links, Link{
			ID:         strconv.FormatInt(int64(way.ID), 10),
			Name:       tagMap["name"],
			Multidigit: multidigit,
			Geometry:   NewSingleCurve(geometry),
		})
	}
	if incompleteWays > 0 {
		log.Warn("osm ways with missing nodes skipped", zap.Int("count", incompleteWays))
	}
	return links, nil
}
