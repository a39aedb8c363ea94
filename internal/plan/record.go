package plan

import (
	"os"
	"time"

	"github.com/google/uuid"

	"spiralplan/internal/geo"
	"spiralplan/internal/spiral"
)

// PlanRecord is one audit row describing a generated mission plan.
type PlanRecord struct {
	PlanID           string    `json:"plan_id"` // TAG
	Source           string    `json:"source"`  // TAG: export|optimize|api
	CenterLat        float64   `json:"center_lat"`
	CenterLon        float64   `json:"center_lon"`
	Slices           int       `json:"slices"`
	N                int       `json:"n"`
	R0               float64   `json:"r0"`
	RHold            float64   `json:"r_hold"`
	Waypoints        int       `json:"waypoints"`
	EstimatedMinutes float64   `json:"estimated_minutes"`
	UtilizationPct   float64   `json:"utilization_pct"`
	Timestamp        time.Time `json:"ts"` // TIME INDEX
}

// PlanTableName holds the table name used when writing plan records to
// GreptimeDB. It defaults to "mission_plans" but can be overridden via the
// GREPTIMEDB_TABLE environment variable.
var PlanTableName = func() string {
	if env := os.Getenv("GREPTIMEDB_TABLE"); env != "" {
		return env
	}
	return "mission_plans"
}()

func (PlanRecord) TableName() string {
	return PlanTableName
}

// NewPlanRecord builds an audit row for a plan generated from params.
func NewPlanRecord(source string, p spiral.Params, center geo.Coordinate, waypoints int) PlanRecord {
	return PlanRecord{
		PlanID:    uuid.NewString(),
		Source:    source,
		CenterLat: center.Lat,
		CenterLon: center.Lon,
		Slices:    p.Slices,
		N:         p.N,
		R0:        p.R0,
		RHold:     p.RHold,
		Waypoints: waypoints,
		Timestamp: time.Now().UTC(),
	}
}

// NewOptimizeRecord builds an audit row for an optimizer run.
func NewOptimizeRecord(res OptimizationResult, center geo.Coordinate) PlanRecord {
	rec := NewPlanRecord("optimize",
		spiral.Params{Slices: res.Slices, N: res.N, R0: res.R0, RHold: res.RHold},
		center, (4*res.N+3)*res.Slices)
	rec.EstimatedMinutes = res.EstimatedTimeMinutes
	rec.UtilizationPct = res.BatteryUtilization
	return rec
}
