package poiside

import (
	"context"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Pipeline runs placement, side validation and the multidigit violation check
// over a fixed batch of POI records. Each POI is an independent stateless
// computation over the read-only network, so the batch can fan out over
// workers without shared mutable state.
type Pipeline struct {
	net            *Network
	offsetDistance float64
	bufferDistance float64
	workers        int
}

// NewPipeline creates a pipeline over the given network
func NewPipeline(net *Network, options ...func(*Pipeline)) *Pipeline {
	pipeline := &Pipeline{
		net:            net,
		offsetDistance: DefaultOffsetDistance,
		bufferDistance: DefaultBufferDistance,
		workers:        1,
	}
	for _, option := range options {
		option(pipeline)
	}
	return pipeline
}

// WithOffsetDistance overrides the lateral offset distance (degrees)
func WithOffsetDistance(distance float64) func(*Pipeline) {
	return func(pipeline *Pipeline) {
		pipeline.offsetDistance = distance
	}
}

// WithBufferDistance overrides the multidigit buffer half-width (degrees)
func WithBufferDistance(distance float64) func(*Pipeline) {
	return func(pipeline *Pipeline) {
		pipeline.bufferDistance = distance
	}
}

// WithWorkers sets number of concurrent placement workers
func WithWorkers(workers int) func(*Pipeline) {
	return func(pipeline *Pipeline) {
		if workers > 0 {
			pipeline.workers = workers
		}
	}
}

// PlacedRow is one row of the placed-point output table
type PlacedRow struct {
	POIID        string
	LinkID       string
	Name         string
	Point        orb.Point
	DeclaredSide Side
	Computed     SideLabel
	Match        MatchResult
	Offset       OffsetOutcome
}

// RunStats aggregates per-POI outcomes of a pipeline run. All per-POI
// failures are local: the run always completes and reports counts.
type RunStats struct {
	TotalPOIs            int
	Placed               int
	UnresolvedLinks      int
	DegenerateGeometries int
	Correct              int
	Incorrect            int
	OnAxis               int
	// Indeterminate counts POIs whose side could not be classified at all
	// (no reference curve); always UnresolvedLinks + DegenerateGeometries
	Indeterminate   int
	OffsetFallbacks int
	Violations      int
}

// Result is the output of a pipeline run: the placed-point table, the
// multidigit violation table and aggregate counts
type Result struct {
	Placed     []PlacedRow
	Violations []ViolationRecord
	Stats      RunStats
}

// poiOutcome is the per-POI unit of work result, collected by input index so
// output order stays deterministic regardless of worker count
type poiOutcome struct {
	row       *PlacedRow
	violation *ViolationRecord
	err       error
}

// Run places every POI onto the network, classifies its side and checks
// multidigit buffer violations.
//
// Per-POI failures (unknown link, degenerate geometry) exclude the record
// from the output tables and are reported in the stats only. Run itself fails
// on structurally fatal conditions: an empty network, an empty batch or a
// cancelled context.
func (pipeline *Pipeline) Run(ctx context.Context, pois []POIRecord) (*Result, error) {
	if pipeline.net.Len() == 0 {
		return nil, errors.New("pipeline: link network is empty")
	}
	if len(pois) == 0 {
		return nil, errors.New("pipeline: no POI records to process")
	}

	outcomes := make([]poiOutcome, len(pois))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(pipeline.workers)
	for i := range pois {
		i := i
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcomes[i] = pipeline.processPOI(pois[i])
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, errors.Wrap(err, "pipeline: batch interrupted")
	}

	result := &Result{
		Placed:     make([]PlacedRow, 0, len(pois)),
		Violations: []ViolationRecord{},
	}
	result.Stats.TotalPOIs = len(pois)
	for _, outcome := range outcomes {
		if outcome.err != nil {
			switch errors.Cause(outcome.err) {
			case ErrUnresolvedLink:
				result.Stats.UnresolvedLinks++
			case ErrDegenerateGeometry:
				result.Stats.DegenerateGeometries++
			}
			result.Stats.Indeterminate++
			continue
		}
		row := *outcome.row
		result.Placed = append(result.Placed, row)
		result.Stats.Placed++
		switch row.Match {
		case MATCH_CORRECT:
			result.Stats.Correct++
		case MATCH_INCORRECT:
			result.Stats.Incorrect++
		}
		if row.Computed == LABEL_ON_AXIS {
			result.Stats.OnAxis++
		}
		if row.Offset == OFFSET_FELL_BACK {
			result.Stats.OffsetFallbacks++
		}
		if outcome.violation != nil {
			result.Violations = append(result.Violations, *outcome.violation)
			result.Stats.Violations++
		}
	}

	zap.L().Info("pipeline run finished",
		zap.Int("total", result.Stats.TotalPOIs),
		zap.Int("placed", result.Stats.Placed),
		zap.Int("unresolved_links", result.Stats.UnresolvedLinks),
		zap.Int("degenerate_geometries", result.Stats.DegenerateGeometries),
		zap.Int("correct", result.Stats.Correct),
		zap.Int("incorrect", result.Stats.Incorrect),
		zap.Int("violations", result.Stats.Violations),
	)
	return result, nil
}

// processPOI is the independent per-POI computation: resolve curve, place,
// classify, check the multidigit buffer
func (pipeline *Pipeline) processPOI(poi POIRecord) poiOutcome {
	curve, err := pipeline.net.CurveFor(poi.LinkID)
	if err != nil {
		return poiOutcome{err: err}
	}
	placement := Place(curve, poi.Fraction, poi.Side, pipeline.offsetDistance)
	classification := ClassifySide(placement.Point, curve, poi.Side)
	row := &PlacedRow{
		POIID:        poi.ID,
		LinkID:       poi.LinkID,
		Name:         poi.Name,
		Point:        placement.Point,
		DeclaredSide: poi.Side,
		Computed:     classification.Computed,
		Match:        classification.Match,
		Offset:       placement.Outcome,
	}
	outcome := poiOutcome{row: row}

	link, _ := pipeline.net.Link(poi.LinkID)
	if link != nil && link.Multidigit && WithinLinkBuffer(placement.Point, curve, pipeline.bufferDistance) {
		outcome.violation = &ViolationRecord{
			POIID:          poi.ID,
			LinkID:         poi.LinkID,
			Point:          placement.Point,
			BufferDistance: pipeline.bufferDistance,
		}
	}
	return outcome
}
