package plan

import (
	"context"
	"log"

	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	ingesterContext "github.com/GreptimeTeam/greptimedb-ingester-go/context"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"
)

// GreptimeDBWriter writes plan audit records to GreptimeDB via the ingester client.
type GreptimeDBWriter struct {
	client greptime.Client
	db     string
	table  string
}

// NewGreptimeDBWriter creates a new GreptimeDB writer and auto-creates the table if needed.
func NewGreptimeDBWriter(endpoint, database string) (*GreptimeDBWriter, error) {
	ctx := ingesterContext.NewContext(context.Background())
	client, err := greptime.NewClient(ctx, &greptime.Config{
		Endpoint: endpoint,
	})
	if err != nil {
		return nil, err
	}

	// Auto-create table schema
	ddl := `
CREATE TABLE IF NOT EXISTS ` + PlanTableName + ` (
  plan_id STRING TAG,
  source STRING TAG,
  center_lat DOUBLE,
  center_lon DOUBLE,
  slices BIGINT,
  n BIGINT,
  r0 DOUBLE,
  r_hold DOUBLE,
  waypoints BIGINT,
  estimated_minutes DOUBLE,
  utilization_pct DOUBLE,
  ts TIMESTAMP TIME INDEX
) WITH (ttl='365d')
`
	if _, err := client.SQL(ctx, ddl); err != nil {
		return nil, err
	}

	return &GreptimeDBWriter{
		client: client,
		db:     database,
		table:  PlanTableName,
	}, nil
}

// WritePlan inserts a single plan record.
func (w *GreptimeDBWriter) WritePlan(rec PlanRecord) error {
	return w.WritePlans([]PlanRecord{rec})
}

// WritePlans inserts multiple plan records.
func (w *GreptimeDBWriter) WritePlans(recs []PlanRecord) error {
	if len(recs) == 0 {
		return nil
	}

	ctx := ingesterContext.NewContext(context.Background())

	tbl := table.New(w.table)
	tbl.AddTagColumn("plan_id", types.StringType, 0)
	tbl.AddTagColumn("source", types.StringType, 0)
	tbl.AddFieldColumn("center_lat", types.Float64Type)
	tbl.AddFieldColumn("center_lon", types.Float64Type)
	tbl.AddFieldColumn("slices", types.Int64Type)
	tbl.AddFieldColumn("n", types.Int64Type)
	tbl.AddFieldColumn("r0", types.Float64Type)
	tbl.AddFieldColumn("r_hold", types.Float64Type)
	tbl.AddFieldColumn("waypoints", types.Int64Type)
	tbl.AddFieldColumn("estimated_minutes", types.Float64Type)
	tbl.AddFieldColumn("utilization_pct", types.Float64Type)
	tbl.SetTimeIndex("ts", types.TimestampType)

	for _, r := range recs {
		tbl.AppendTagValue("plan_id", r.PlanID)
		tbl.AppendTagValue("source", r.Source)
		tbl.AppendFieldValue("center_lat", r.CenterLat)
		tbl.AppendFieldValue("center_lon", r.CenterLon)
		tbl.AppendFieldValue("slices", int64(r.Slices))
		tbl.AppendFieldValue("n", int64(r.N))
		tbl.AppendFieldValue("r0", r.R0)
		tbl.AppendFieldValue("r_hold", r.RHold)
		tbl.AppendFieldValue("waypoints", int64(r.Waypoints))
		tbl.AppendFieldValue("estimated_minutes", r.EstimatedMinutes)
		tbl.AppendFieldValue("utilization_pct", r.UtilizationPct)
		tbl.AppendTimeIndex(r.Timestamp)
	}

	if err := w.client.Write(ctx, w.db, []*table.Table{tbl}); err != nil {
		log.Printf("[GreptimeDBWriter] Write failed: %v", err)
		return err
	}
	return nil
}
