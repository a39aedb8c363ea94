package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"spiralplan/internal/geo"
	"spiralplan/internal/plan"
	"spiralplan/internal/spiral"
)

func TestNewPlanWritersPrintOnly(t *testing.T) {
	w, cleanup, err := newPlanWriters(true, "", "", "")
	if err != nil {
		t.Fatalf("newPlanWriters returned error: %v", err)
	}
	cleanup()
	if _, ok := w.(*plan.ColorStdoutWriter); !ok {
		t.Fatalf("expected *plan.ColorStdoutWriter, got %T", w)
	}
}

func TestNewPlanWritersGreptimeFallback(t *testing.T) {
	t.Setenv("GREPTIMEDB_ENDPOINT", "")
	w, cleanup, err := newPlanWriters(false, "", "", "")
	if err != nil {
		t.Fatalf("newPlanWriters returned error: %v", err)
	}
	cleanup()
	if _, ok := w.(*plan.ColorStdoutWriter); !ok {
		t.Fatalf("expected *plan.ColorStdoutWriter, got %T", w)
	}
}

func TestNewPlanWritersLogFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plans.jsonl")
	w, cleanup, err := newPlanWriters(true, path, "", "")
	if err != nil {
		t.Fatalf("newPlanWriters returned error: %v", err)
	}
	defer cleanup()
	if _, ok := w.(*plan.MultiWriter); !ok {
		t.Fatalf("expected *plan.MultiWriter, got %T", w)
	}

	p := spiral.Params{Slices: 6, N: 6, R0: 150, RHold: 800}
	rec := plan.NewPlanRecord("export", p, geo.Coordinate{Lat: 39.0968, Lon: -120.0324}, 162)
	rec.Timestamp = time.Now()
	if err := w.WritePlan(rec); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("expected plan log to be non-empty")
	}
}
