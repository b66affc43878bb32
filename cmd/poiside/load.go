package main

import (
	"context"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gomaptools/poiside"
)

// resolveDataFlags folds the persistent flag overrides into the loaded config
func resolveDataFlags(cmd *cobra.Command) {
	if links, _ := cmd.Flags().GetString("links"); links != "" {
		cfg.Data.LinksDir = links
	}
	if format, _ := cmd.Flags().GetString("links-format"); format != "" {
		cfg.Data.LinksFormat = format
	}
	if pois, _ := cmd.Flags().GetString("pois"); pois != "" {
		cfg.Data.POIsDir = pois
	}
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		cfg.Output.Dir = out
	}
}

// buildNetwork loads link geometries in the configured format and resolves
// every link into its reference curve
func buildNetwork(ctx context.Context) (*poiside.Network, error) {
	var links []poiside.Link
	var err error
	switch strings.ToLower(cfg.Data.LinksFormat) {
	case "geojson", "":
		links, err = loadGeoJSONLinks(cfg.Data.LinksDir)
	case "shp", "shapefile":
		links, err = poiside.LinksFromShapefile(cfg.Data.LinksDir, "", "")
	case "osm", "pbf":
		links, err = poiside.LinksFromOSMFile(ctx, cfg.Data.LinksDir, &poiside.OSMConfig{})
	default:
		return nil, errors.Errorf("unsupported links format %q", cfg.Data.LinksFormat)
	}
	if err != nil {
		return nil, errors.Wrap(err, "load links")
	}
	zap.L().Info("links loaded",
		zap.String("source", cfg.Data.LinksDir),
		zap.String("format", cfg.Data.LinksFormat),
		zap.Int("count", len(links)),
	)
	return poiside.NewNetwork(links), nil
}

func loadGeoJSONLinks(path string) ([]poiside.Link, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return poiside.LinksFromGeoJSONDir(path)
	}
	return poiside.LinksFromGeoJSONFile(path)
}

// loadPOIs loads POI records from the configured CSV directory or file
func loadPOIs() ([]poiside.POIRecord, error) {
	info, err := os.Stat(cfg.Data.POIsDir)
	if err != nil {
		return nil, errors.Wrap(err, "load pois")
	}
	if info.IsDir() {
		return poiside.POIsFromCSVDir(cfg.Data.POIsDir)
	}
	return poiside.POIsFromCSVFile(cfg.Data.POIsDir)
}

// newPipeline builds the pipeline with the configured engine parameters
func newPipeline(net *poiside.Network) *poiside.Pipeline {
	return poiside.NewPipeline(net,
		poiside.WithOffsetDistance(cfg.Engine.OffsetDistance),
		poiside.WithBufferDistance(cfg.Engine.BufferDistance),
		poiside.WithWorkers(cfg.Engine.Workers),
	)
}

// runBatch runs the full pipeline over the configured inputs
func runBatch(ctx context.Context, cmd *cobra.Command) (*poiside.Result, error) {
	resolveDataFlags(cmd)
	net, err := buildNetwork(ctx)
	if err != nil {
		return nil, err
	}
	pois, err := loadPOIs()
	if err != nil {
		return nil, err
	}
	return newPipeline(net).Run(ctx, pois)
}
