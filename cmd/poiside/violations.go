package main

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gomaptools/poiside"
)

var violationsCmd = &cobra.Command{
	Use:   "violations",
	Short: "Detect POIs inside the carriageway buffer of multidigit links",
	Long: "Places each POI and, for links digitised as multiple carriageways, " +
		"checks whether the placed point falls inside the flat-capped buffer " +
		"around the link's reference curve. Such POIs sit between the " +
		"carriageways instead of beside the road.",
	RunE: runViolations,
}

func init() {
	rootCmd.AddCommand(violationsCmd)
}

func runViolations(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := runBatch(ctx, cmd)
	if err != nil {
		return err
	}

	out := filepath.Join(cfg.Output.Dir, "multidigit_violations.csv")
	if err := poiside.ExportViolationsCSV(out, result.Violations); err != nil {
		return err
	}
	zap.L().Info("violations written", zap.String("file", out), zap.Int("rows", len(result.Violations)))

	fmt.Printf("POIs processed: %d\n", result.Stats.TotalPOIs)
	fmt.Printf("Violations:     %d\n", result.Stats.Violations)
	return nil
}
