package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"spiralplan/internal/geo"
	"spiralplan/internal/plan"
)

var (
	optimizeMinutes   float64
	optimizeBatteries int
	optimizeCenter    string
	optimizeLogFile   string
	optimizePrintOnly bool
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Fit the spiral to a battery endurance target",
	Long:  "optimize searches for the largest spiral whose per-battery flight time fits the given endurance with a safety margin.",
	RunE: func(cmd *cobra.Command, args []string) error {
		center, err := geo.ParseCenter(optimizeCenter)
		if err != nil {
			return err
		}

		res, err := plan.OptimizeForBattery(optimizeMinutes, optimizeBatteries, center)
		if err != nil {
			return err
		}

		writer, cleanup, err := newPlanWriters(optimizePrintOnly, optimizeLogFile, "", "")
		if err != nil {
			return err
		}
		defer cleanup()

		if err := writer.WritePlan(plan.NewOptimizeRecord(res, center)); err != nil {
			return err
		}

		fmt.Printf("Optimized: slices=%d bounces=%d r0=%.0fft rHold=%.0fft est=%.1fmin util=%.1f%%\n",
			res.Slices, res.N, res.R0, res.RHold, res.EstimatedTimeMinutes, res.BatteryUtilization)
		return nil
	},
}

func init() {
	optimizeCmd.Flags().Float64Var(&optimizeMinutes, "battery-minutes", 20, "Usable flight time per battery in minutes")
	optimizeCmd.Flags().IntVar(&optimizeBatteries, "batteries", 6, "Number of batteries available")
	optimizeCmd.Flags().StringVar(&optimizeCenter, "center", "", "Mission center, e.g. \"39.0968°N, 120.0324°W\"")
	optimizeCmd.Flags().StringVar(&optimizeLogFile, "log-file", "", "Path to export plan records (JSONL)")
	optimizeCmd.Flags().BoolVar(&optimizePrintOnly, "print-only", false, "Print plan records to STDOUT instead of writing to DB")
	optimizeCmd.MarkFlagRequired("center")
}
