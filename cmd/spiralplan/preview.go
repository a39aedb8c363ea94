package main

import (
	"github.com/spf13/cobra"

	"spiralplan/internal/geo"
	"spiralplan/internal/plan"
	"spiralplan/internal/spiral"
)

var (
	previewSlices  int
	previewBounces int
	previewR0      float64
	previewRHold   float64
	previewCenter  string
)

var previewCmd = &cobra.Command{
	Use:   "plan",
	Short: "Interactively preview a mission in the terminal",
	Long:  "preview opens a TUI showing the waypoint table per slice, with live parameter editing and a battery-fit shortcut.",
	RunE: func(cmd *cobra.Command, args []string) error {
		center, err := geo.ParseCenter(previewCenter)
		if err != nil {
			return err
		}
		p := spiral.Params{Slices: previewSlices, N: previewBounces, R0: previewR0, RHold: previewRHold}
		_, err = plan.NewPlanTUI(p, center).Run()
		return err
	},
}

func init() {
	previewCmd.Flags().IntVar(&previewSlices, "slices", 6, "Number of rotated slices (batteries)")
	previewCmd.Flags().IntVar(&previewBounces, "bounces", 6, "Number of angular bounces per leg")
	previewCmd.Flags().Float64Var(&previewR0, "r0", 150, "Start radius in feet")
	previewCmd.Flags().Float64Var(&previewRHold, "r-hold", 800, "Hold radius in feet")
	previewCmd.Flags().StringVar(&previewCenter, "center", "", "Mission center, e.g. \"39.0968°N, 120.0324°W\"")
	previewCmd.MarkFlagRequired("center")
}
