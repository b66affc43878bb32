package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gomaptools/poiside"
)

var tilesCmd = &cobra.Command{
	Use:   "tiles",
	Short: "Download annotated satellite snapshots of placed POIs",
	Long: "Runs the placement pipeline and downloads one satellite tile per " +
		"placed POI from the HERE raster tile API, marking the tile center " +
		"and labelling it with the POI identifier. Useful for visually " +
		"auditing placement results.",
	RunE: runTiles,
}

func init() {
	tilesCmd.Flags().Int("limit", 0, "Max tiles to download, 0 uses the configured limit")
	tilesCmd.Flags().Bool("violations-only", false, "Only snapshot POIs flagged as multidigit violations")
	rootCmd.AddCommand(tilesCmd)
}

func runTiles(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Tiles.APIKey == "" {
		return errors.New("tiles: api key is not configured (set POISIDE_TILES_API_KEY)")
	}

	result, err := runBatch(ctx, cmd)
	if err != nil {
		return err
	}

	limit := cfg.Tiles.Limit
	if flagLimit, _ := cmd.Flags().GetInt("limit"); flagLimit > 0 {
		limit = flagLimit
	}
	violationsOnly, _ := cmd.Flags().GetBool("violations-only")

	type snapshot struct {
		id       string
		label    string
		lon, lat float64
	}
	targets := []snapshot{}
	if violationsOnly {
		for _, violation := range result.Violations {
			targets = append(targets, snapshot{violation.POIID, violation.POIID, violation.Point[0], violation.Point[1]})
		}
	} else {
		for _, row := range result.Placed {
			label := row.Name
			if label == "" {
				label = row.POIID
			}
			targets = append(targets, snapshot{row.POIID, label, row.Point[0], row.Point[1]})
		}
	}
	if limit > 0 && len(targets) > limit {
		targets = targets[:limit]
	}

	if err := os.MkdirAll(cfg.Tiles.OutDir, 0755); err != nil {
		return errors.Wrap(err, "tiles: create output directory")
	}

	client := poiside.NewTileClient(cfg.Tiles.APIKey,
		poiside.WithTileZoom(cfg.Tiles.Zoom),
		poiside.WithTileSize(cfg.Tiles.Size),
	)

	downloaded := 0
	for _, target := range targets {
		if err := ctx.Err(); err != nil {
			return err
		}
		img, err := client.Fetch(ctx, target.lat, target.lon)
		if err != nil {
			zap.L().Warn("tile download failed", zap.String("poi_id", target.id), zap.Error(err))
			continue
		}
		marked := poiside.MarkTile(img, target.label)
		out := filepath.Join(cfg.Tiles.OutDir, fmt.Sprintf("poi_%s.png", target.id))
		if err := poiside.SaveTilePNG(out, marked); err != nil {
			return err
		}
		downloaded++
	}
	zap.L().Info("tiles downloaded", zap.Int("count", downloaded), zap.String("dir", cfg.Tiles.OutDir))
	return nil
}
