package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"spiralplan/internal/config"
	"spiralplan/internal/elevation"
	"spiralplan/internal/logging"
	"spiralplan/internal/plan"
	"spiralplan/internal/server"
)

var (
	servePrintOnly  bool
	serveConfigPath string
	serveSchemaPath string
	serveListen     string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the planner HTTP API",
	Long:  "serve starts the JSON API used by the planning frontend, including CSV export and battery optimization endpoints.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(serveConfigPath, serveSchemaPath)
		if err != nil {
			return err
		}
		if serveListen != "" {
			cfg.Server.Listen = serveListen
		}

		logger := logging.New("api")

		var client *elevation.Client
		if cfg.Elevation.APIKey != "" {
			client = elevation.NewClient(cfg.Elevation.APIKey, cfg.Elevation.BaseURL)
		} else {
			logger.Warn("no elevation API key configured, using fallback elevations")
		}
		svc := elevation.NewService(client, logger)

		writer, cleanup, err := newPlanWriters(servePrintOnly, cfg.PlanLog, cfg.Greptime.Endpoint, cfg.Greptime.Database)
		if err != nil {
			return err
		}
		defer cleanup()

		planner := plan.NewPlanner(svc, logger)
		srv := server.NewServer(planner, writer)

		go func() {
			log.Printf("[Main] Planner API listening on %s", cfg.Server.Listen)
			if err := srv.Start(cfg.Server.Listen); err != nil {
				log.Fatalf("Planner API failed: %v", err)
			}
		}()

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		<-sigs

		log.Println("[Main] Planner API stopped.")
		return nil
	},
}

func init() {
	serveCmd.Flags().BoolVar(&servePrintOnly, "print-only", false, "Print plan records to STDOUT instead of writing to DB")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "config/planner.yaml", "Path to planner configuration YAML")
	serveCmd.Flags().StringVar(&serveSchemaPath, "schema", "schemas/planner.cue", "Path to CUE schema file")
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "Listen address override (e.g. :5001)")
}
