package main

import (
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gomaptools/poiside"
)

var placeCmd = &cobra.Command{
	Use:   "place",
	Short: "Place POIs onto their links and export the placed points",
	Long: "Resolves each POI's link into a reference curve, interpolates the " +
		"point at the POI's fraction, applies the lateral side offset and " +
		"writes the placed points as CSV and GeoJSON.",
	RunE: runPlace,
}

func init() {
	placeCmd.Flags().Bool("geojson", true, "Also write a GeoJSON FeatureCollection")
	rootCmd.AddCommand(placeCmd)
}

func runPlace(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := runBatch(ctx, cmd)
	if err != nil {
		return err
	}

	csvOut := filepath.Join(cfg.Output.Dir, "placed_pois.csv")
	if err := poiside.ExportPlacedCSV(csvOut, result.Placed); err != nil {
		return err
	}
	zap.L().Info("placed points written", zap.String("file", csvOut), zap.Int("rows", len(result.Placed)))

	if writeGeoJSON, _ := cmd.Flags().GetBool("geojson"); writeGeoJSON {
		geojsonOut := filepath.Join(cfg.Output.Dir, "placed_pois.geojson")
		if err := poiside.ExportPlacedGeoJSON(geojsonOut, result.Placed); err != nil {
			return err
		}
		zap.L().Info("placed points written", zap.String("file", geojsonOut))
	}
	return nil
}
