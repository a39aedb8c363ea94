package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"spiralplan/internal/elevation"
	"spiralplan/internal/geo"
	"spiralplan/internal/logging"
	"spiralplan/internal/plan"
	"spiralplan/internal/spiral"
)

var (
	exportSlices    int
	exportBounces   int
	exportR0        float64
	exportRHold     float64
	exportCenter    string
	exportMinHeight float64
	exportMaxHeight float64
	exportBattery   int
	exportOutput    string
	exportLogFile   string
	exportPrintOnly bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a mission as Litchi CSV",
	Long:  "export renders the full mission, or a single battery slice, as a Litchi-compatible waypoint CSV.",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.New("export")

		var client *elevation.Client
		if key := os.Getenv("ELEVATION_API_KEY"); key != "" {
			client = elevation.NewClient(key, "")
		}
		svc := elevation.NewService(client, logger)
		planner := plan.NewPlanner(svc, logger)

		p := spiral.Params{Slices: exportSlices, N: exportBounces, R0: exportR0, RHold: exportRHold}
		var maxHeight *float64
		if exportMaxHeight > 0 {
			maxHeight = &exportMaxHeight
		}

		ctx := context.Background()
		var csv string
		var err error
		if exportBattery > 0 {
			csv, err = planner.GenerateBatteryCSV(ctx, p, exportCenter, exportBattery-1, exportMinHeight, maxHeight)
		} else {
			csv, err = planner.GenerateCSV(ctx, p, exportCenter, exportMinHeight, maxHeight, false, 0)
		}
		if err != nil {
			return err
		}

		output := exportOutput
		if output == "" {
			if exportBattery > 0 {
				output = fmt.Sprintf("litchi_spiral_battery_%d.csv", exportBattery)
			} else {
				output = "litchi_spiral_mission_master.csv"
			}
		}
		if err := os.WriteFile(output, []byte(csv), 0644); err != nil {
			return err
		}

		writer, cleanup, err := newPlanWriters(exportPrintOnly, exportLogFile, "", "")
		if err != nil {
			return err
		}
		defer cleanup()

		center, err := geo.ParseCenter(exportCenter)
		if err != nil {
			return err
		}
		if err := writer.WritePlan(plan.NewPlanRecord("export", p, center, (4*p.N+3)*p.Slices)); err != nil {
			logger.Warn("plan record write failed", "error", err)
		}

		fmt.Printf("Mission written to %s\n", output)
		return nil
	},
}

func init() {
	exportCmd.Flags().IntVar(&exportSlices, "slices", 6, "Number of rotated slices (batteries)")
	exportCmd.Flags().IntVar(&exportBounces, "bounces", 6, "Number of angular bounces per leg")
	exportCmd.Flags().Float64Var(&exportR0, "r0", 150, "Start radius in feet")
	exportCmd.Flags().Float64Var(&exportRHold, "r-hold", 800, "Hold radius in feet")
	exportCmd.Flags().StringVar(&exportCenter, "center", "", "Mission center, e.g. \"39.0968°N, 120.0324°W\"")
	exportCmd.Flags().Float64Var(&exportMinHeight, "min-height", 100, "Minimum AGL altitude in feet")
	exportCmd.Flags().Float64Var(&exportMaxHeight, "max-height", 0, "Altitude ceiling in feet (0 disables)")
	exportCmd.Flags().IntVar(&exportBattery, "battery", 0, "Battery number to export (1-based, 0 = full mission)")
	exportCmd.Flags().StringVar(&exportOutput, "output", "", "Output CSV path (defaults to the Litchi filename)")
	exportCmd.Flags().StringVar(&exportLogFile, "log-file", "", "Path to export plan records (JSONL)")
	exportCmd.Flags().BoolVar(&exportPrintOnly, "print-only", false, "Print plan records to STDOUT instead of writing to DB")
	exportCmd.MarkFlagRequired("center")
}
