package main

import (
	"os"

	"spiralplan/internal/plan"
)

// newPlanWriters sets up plan record writers based on flags, config, and env
// vars. It returns the writer and a cleanup function to close any resources.
// endpoint may be empty; the GREPTIMEDB_ENDPOINT env var is the fallback.
func newPlanWriters(printOnly bool, logFile, endpoint, database string) (plan.PlanWriter, func(), error) {
	cleanup := func() {}

	writer, err := basePlanWriter(printOnly, endpoint, database)
	if err != nil {
		return nil, nil, err
	}
	if logFile == "" {
		return writer, cleanup, nil
	}

	fw, err := plan.NewFileWriter(logFile)
	if err != nil {
		return nil, nil, err
	}
	mw := plan.NewMultiWriter(writer, fw)
	cleanup = func() { fw.Close() }
	return mw, cleanup, nil
}

// basePlanWriter chooses the underlying writer based on printOnly flag and env vars.
func basePlanWriter(printOnly bool, endpoint, database string) (plan.PlanWriter, error) {
	if endpoint == "" {
		endpoint = os.Getenv("GREPTIMEDB_ENDPOINT")
	}
	if printOnly || endpoint == "" {
		return plan.NewColorStdoutWriter(), nil
	}

	if database == "" {
		database = os.Getenv("GREPTIMEDB_DATABASE")
	}
	if database == "" {
		database = "public"
	}
	return plan.NewGreptimeDBWriter(endpoint, database)
}
