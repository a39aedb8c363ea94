package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "spiralplan",
	Short: "Spiral survey mission planner",
	Long:  "Spiralplan builds bounded-spiral aerial survey missions and exports them as Litchi CSV.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(previewCmd)
}
