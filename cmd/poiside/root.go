package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var cfg *Config

var rootCmd = &cobra.Command{
	Use:   "poiside",
	Short: "POI placement and side validation over road-link networks",
	Long: "Places POI records onto road links by fraction and declared side, " +
		"verifies the declared side against the link geometry and flags POIs " +
		"that fall inside the carriageway buffer of multiply digitised roads.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := initLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().String("links", "", "Directory or file with link geometries (overrides config)")
	rootCmd.PersistentFlags().String("links-format", "", "Link input format: geojson, shp or osm (overrides config)")
	rootCmd.PersistentFlags().String("pois", "", "Directory or file with POI CSV extracts (overrides config)")
	rootCmd.PersistentFlags().StringP("out", "o", "", "Output directory (overrides config)")
}
