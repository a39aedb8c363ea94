// HTTP API for the spiral mission planner.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"spiralplan/internal/geo"
	"spiralplan/internal/plan"
	"spiralplan/internal/spiral"
)

// Server exposes the planner over a JSON API. CSV endpoints answer with
// file-download headers so browsers save the mission directly.
type Server struct {
	Planner *plan.Planner
	writer  plan.PlanWriter
}

// NewServer creates a Server. writer may be nil to skip plan audit records.
func NewServer(pl *plan.Planner, writer plan.PlanWriter) *Server {
	return &Server{Planner: pl, writer: writer}
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/spiral-data", s.handleSpiralData)
	mux.HandleFunc("POST /api/waypoints", s.handleWaypoints)
	mux.HandleFunc("POST /api/csv", s.handleCSV)
	mux.HandleFunc("POST /api/csv/battery/{n}", s.handleBatteryCSV)
	mux.HandleFunc("POST /api/elevation", s.handleElevation)
	mux.HandleFunc("POST /api/optimize-spiral", s.handleOptimize)
	mux.HandleFunc("POST /api/validate-center", s.handleValidateCenter)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	return mux
}

// Start runs the HTTP server on addr until it fails.
func (s *Server) Start(addr string) error {
	return http.ListenAndServe(addr, withCORS(s.routes()))
}

// Handler returns the routed handler, wrapped with CORS headers.
func (s *Server) Handler() http.Handler {
	return withCORS(s.routes())
}

// withCORS allows the browser frontend on another origin to call the API.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// planRequest is the common JSON payload of the planning endpoints.
type planRequest struct {
	Slices     int      `json:"slices"`
	N          int      `json:"N"`
	R0         float64  `json:"r0"`
	RHold      float64  `json:"rHold"`
	Center     string   `json:"center"`
	MinHeight  *float64 `json:"minHeight"`
	MaxHeight  *float64 `json:"maxHeight"`
	DebugMode  bool     `json:"debugMode"`
	DebugAngle float64  `json:"debugAngle"`
}

func (r planRequest) params() spiral.Params {
	return spiral.Params{Slices: r.Slices, N: r.N, R0: r.R0, RHold: r.RHold}
}

func (r planRequest) minHeight() float64 {
	if r.MinHeight != nil {
		return *r.MinHeight
	}
	return 100
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps known validation errors to 400 and the rest to 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, spiral.ErrInvalidParams) ||
		errors.Is(err, geo.ErrInvalidCenter) ||
		errors.Is(err, plan.ErrBatteryIndex) ||
		errors.Is(err, plan.ErrOutOfRange) {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeCSV(w http.ResponseWriter, filename, content string) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write([]byte(content))
}

func (s *Server) recordPlan(rec plan.PlanRecord) {
	if s.writer == nil {
		return
	}
	if err := s.writer.WritePlan(rec); err != nil {
		log.Printf("[Server] plan record write failed: %v", err)
	}
}

func (s *Server) handleSpiralData(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON payload"})
		return
	}
	data, err := plan.SpiralTraces(req.params(), req.DebugMode, req.DebugAngle)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) handleWaypoints(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON payload"})
		return
	}
	slices, err := s.Planner.ComputeWaypoints(req.params())
	if err != nil {
		writeError(w, err)
		return
	}
	total := 0
	for _, wps := range slices {
		total += len(wps)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"waypoints":      slices,
		"sliceCount":     len(slices),
		"totalWaypoints": total,
	})
}

func (s *Server) handleCSV(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON payload"})
		return
	}
	csv, err := s.Planner.GenerateCSV(r.Context(), req.params(), req.Center, req.minHeight(), req.MaxHeight, req.DebugMode, req.DebugAngle)
	if err != nil {
		writeError(w, err)
		return
	}

	if center, cerr := geo.ParseCenter(req.Center); cerr == nil {
		s.recordPlan(plan.NewPlanRecord("api", req.params(), center, (4*req.N+3)*req.Slices))
	}
	writeCSV(w, "litchi_spiral_mission_master.csv", csv)
}

func (s *Server) handleBatteryCSV(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON payload"})
		return
	}

	// The URL carries a 1-based battery number.
	n, err := strconv.Atoi(r.PathValue("n"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid battery number"})
		return
	}

	csv, err := s.Planner.GenerateBatteryCSV(r.Context(), req.params(), req.Center, n-1, req.minHeight(), req.MaxHeight)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCSV(w, fmt.Sprintf("litchi_spiral_battery_%d.csv", n), csv)
}

func (s *Server) handleElevation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Center string `json:"center"`
	}
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON payload"})
		return
	}
	center, err := geo.ParseCenter(req.Center)
	if err != nil {
		writeError(w, err)
		return
	}
	ft := s.Planner.ElevationFeet(r.Context(), center.Lat, center.Lon)
	writeJSON(w, http.StatusOK, map[string]any{
		"elevation_feet":   roundTo(ft, 2),
		"elevation_meters": roundTo(ft*geo.FeetToMeters, 2),
		"coordinates":      center,
	})
}

func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BatteryMinutes float64 `json:"batteryMinutes"`
		Batteries      int     `json:"batteries"`
		Center         string  `json:"center"`
	}
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON payload"})
		return
	}
	center, err := geo.ParseCenter(req.Center)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := s.Planner.OptimizeForBattery(req.BatteryMinutes, req.Batteries, center)
	if err != nil {
		writeError(w, err)
		return
	}

	s.recordPlan(plan.NewOptimizeRecord(res, center))
	writeJSON(w, http.StatusOK, map[string]any{
		"optimized_params": res,
		"optimization_info": map[string]any{
			"target_battery_minutes":      req.BatteryMinutes,
			"estimated_time_minutes":      res.EstimatedTimeMinutes,
			"battery_utilization_percent": res.BatteryUtilization,
			"spiral_radius_feet":          res.RHold,
			"bounce_count":                res.N,
		},
	})
}

func (s *Server) handleValidateCenter(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Center string `json:"center"`
	}
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON payload"})
		return
	}
	center, err := geo.ParseCenter(req.Center)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"valid": false,
			"error": "Invalid coordinate format",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"valid":  true,
		"parsed": center,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "spiralplan-api",
	})
}

func roundTo(v float64, decimals int) float64 {
	scale := 1.0
	for i := 0; i < decimals; i++ {
		scale *= 10
	}
	f := v * scale
	if f < 0 {
		return float64(int64(f-0.5)) / scale
	}
	return float64(int64(f+0.5)) / scale
}
