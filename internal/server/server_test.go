package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"spiralplan/internal/elevation"
	"spiralplan/internal/plan"
)

func testServer() *Server {
	svc := elevation.NewService(nil, nil)
	return NewServer(plan.NewPlanner(svc, nil), nil)
}

func post(t *testing.T, srv *Server, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w.Result()
}

func TestHandleHealth(t *testing.T) {
	srv := testServer()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status OK, got %v", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected CORS header, got %q", got)
	}
	var data map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if data["status"] != "healthy" {
		t.Errorf("unexpected health payload: %+v", data)
	}
}

func TestHandleWaypoints(t *testing.T) {
	srv := testServer()

	resp := post(t, srv, "/api/waypoints", `{"slices":6,"N":6,"r0":150,"rHold":800}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status OK, got %v", resp.StatusCode)
	}
	var data struct {
		SliceCount     int `json:"sliceCount"`
		TotalWaypoints int `json:"totalWaypoints"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if data.SliceCount != 6 {
		t.Errorf("expected 6 slices, got %d", data.SliceCount)
	}
	if data.TotalWaypoints != 6*27 {
		t.Errorf("expected %d waypoints, got %d", 6*27, data.TotalWaypoints)
	}
}

func TestHandleWaypointsInvalidParams(t *testing.T) {
	srv := testServer()

	resp := post(t, srv, "/api/waypoints", `{"slices":0,"N":6,"r0":150,"rHold":800}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status BadRequest, got %v", resp.StatusCode)
	}
	var data map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if data["error"] == "" {
		t.Errorf("expected error message in payload")
	}
}

func TestHandleCSVDownload(t *testing.T) {
	srv := testServer()

	resp := post(t, srv, "/api/csv",
		`{"slices":6,"N":6,"r0":150,"rHold":800,"center":"39.0968, 120.0324"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status OK, got %v", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/csv" {
		t.Errorf("expected text/csv, got %q", ct)
	}
	cd := resp.Header.Get("Content-Disposition")
	if !strings.Contains(cd, "litchi_spiral_mission_master.csv") {
		t.Errorf("unexpected Content-Disposition: %q", cd)
	}

	body := new(strings.Builder)
	if _, err := io.Copy(body, resp.Body); err != nil {
		t.Fatalf("read body: %v", err)
	}
	lines := strings.Split(strings.TrimRight(body.String(), "\n"), "\n")
	if len(lines) != 6*27+1 {
		t.Errorf("expected %d CSV lines, got %d", 6*27+1, len(lines))
	}
}

func TestHandleBatteryCSV(t *testing.T) {
	srv := testServer()

	resp := post(t, srv, "/api/csv/battery/3",
		`{"slices":6,"N":6,"r0":150,"rHold":800,"center":"39.0968, 120.0324"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status OK, got %v", resp.StatusCode)
	}
	cd := resp.Header.Get("Content-Disposition")
	if !strings.Contains(cd, "litchi_spiral_battery_3.csv") {
		t.Errorf("unexpected Content-Disposition: %q", cd)
	}
}

func TestHandleBatteryCSVOutOfRange(t *testing.T) {
	srv := testServer()

	resp := post(t, srv, "/api/csv/battery/7",
		`{"slices":6,"N":6,"r0":150,"rHold":800,"center":"39.0968, 120.0324"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status BadRequest, got %v", resp.StatusCode)
	}
}

func TestHandleElevation(t *testing.T) {
	srv := testServer()

	resp := post(t, srv, "/api/elevation", `{"center":"39.0968°N, 120.0324°W"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status OK, got %v", resp.StatusCode)
	}
	var data struct {
		ElevationFeet   float64 `json:"elevation_feet"`
		ElevationMeters float64 `json:"elevation_meters"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if data.ElevationFeet != 4500 {
		t.Errorf("expected fallback 4500 ft, got %f", data.ElevationFeet)
	}
	if data.ElevationMeters != 1371.6 {
		t.Errorf("expected 1371.6 m, got %f", data.ElevationMeters)
	}
}

func TestHandleOptimize(t *testing.T) {
	srv := testServer()

	resp := post(t, srv, "/api/optimize-spiral",
		`{"batteryMinutes":20,"batteries":3,"center":"39.0968, -120.0324"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status OK, got %v", resp.StatusCode)
	}
	var data struct {
		Params plan.OptimizationResult `json:"optimized_params"`
		Info   map[string]float64      `json:"optimization_info"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if data.Params.Slices != 3 {
		t.Errorf("expected 3 slices, got %d", data.Params.Slices)
	}
	if data.Info["target_battery_minutes"] != 20 {
		t.Errorf("unexpected optimization info: %+v", data.Info)
	}
}

func TestHandleOptimizeOutOfRange(t *testing.T) {
	srv := testServer()

	resp := post(t, srv, "/api/optimize-spiral",
		`{"batteryMinutes":90,"batteries":3,"center":"39.0968, -120.0324"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status BadRequest, got %v", resp.StatusCode)
	}
}

func TestHandleValidateCenter(t *testing.T) {
	srv := testServer()

	resp := post(t, srv, "/api/validate-center", `{"center":"39.0968°N, 120.0324°W"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status OK, got %v", resp.StatusCode)
	}
	var data struct {
		Valid  bool `json:"valid"`
		Parsed struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"parsed"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if !data.Valid {
		t.Fatalf("expected valid center")
	}
	if data.Parsed.Lat != 39.0968 || data.Parsed.Lon != -120.0324 {
		t.Errorf("unexpected parsed center: %+v", data.Parsed)
	}
}

func TestHandleValidateCenterInvalid(t *testing.T) {
	srv := testServer()

	resp := post(t, srv, "/api/validate-center", `{"center":"not a coordinate"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status OK, got %v", resp.StatusCode)
	}
	var data struct {
		Valid bool   `json:"valid"`
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if data.Valid {
		t.Errorf("expected invalid center")
	}
	if data.Error == "" {
		t.Errorf("expected an error message")
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := testServer()

	req := httptest.NewRequest(http.MethodOptions, "/api/csv", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected status NoContent, got %v", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Methods"); got == "" {
		t.Errorf("expected Access-Control-Allow-Methods header")
	}
}

func TestHandleSpiralData(t *testing.T) {
	srv := testServer()

	resp := post(t, srv, "/api/spiral-data", `{"slices":6,"N":6,"r0":150,"rHold":800}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status OK, got %v", resp.StatusCode)
	}
	var data plan.ChartData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(data.Traces) != 12 {
		t.Errorf("expected 12 traces, got %d", len(data.Traces))
	}
}
