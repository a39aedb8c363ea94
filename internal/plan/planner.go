package plan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"spiralplan/internal/elevation"
	"spiralplan/internal/geo"
	"spiralplan/internal/spiral"
)

// ErrBatteryIndex reports a battery index outside [0, slices-1].
var ErrBatteryIndex = errors.New("battery index out of range")

// Planner ties the spiral geometry, projection, elevation service, and
// export assembly together behind the operations the API layer consumes.
// All state lives in the injected elevation service; plans themselves are
// recomputed per call.
type Planner struct {
	elev   *elevation.Service
	logger *slog.Logger
}

// NewPlanner creates a planner using the given elevation service.
func NewPlanner(elev *elevation.Service, logger *slog.Logger) *Planner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Planner{elev: elev, logger: logger}
}

// ComputeWaypoints returns the waypoint sequences of every slice.
func (pl *Planner) ComputeWaypoints(p spiral.Params) ([][]spiral.Waypoint, error) {
	return spiral.BuildAll(p)
}

// GenerateCSV renders the master mission CSV covering every slice. In debug
// mode only the slice nearest debugAngleDeg is exported, rotated to that
// exact angle.
func (pl *Planner) GenerateCSV(ctx context.Context, p spiral.Params, centerText string, minHeight float64, maxHeight *float64, debugMode bool, debugAngleDeg float64) (string, error) {
	center, err := geo.ParseCenter(centerText)
	if err != nil {
		return "", err
	}

	slices, err := spiral.BuildAll(p)
	if err != nil {
		return "", err
	}

	var path []spiral.Waypoint
	if debugMode {
		path = debugSlicePath(slices, p, debugAngleDeg)
	} else {
		for _, wps := range slices {
			path = append(path, wps...)
		}
	}

	rows := AssembleRows(ctx, path, center, minHeight, maxHeight, pl.elev)
	return RenderCSV(rows), nil
}

// GenerateBatteryCSV renders the mission CSV for one slice, addressed by
// its 0-based battery index.
func (pl *Planner) GenerateBatteryCSV(ctx context.Context, p spiral.Params, centerText string, batteryIndex int, minHeight float64, maxHeight *float64) (string, error) {
	center, err := geo.ParseCenter(centerText)
	if err != nil {
		return "", err
	}
	if batteryIndex < 0 || batteryIndex >= p.Slices {
		return "", fmt.Errorf("%w: must be between 0 and %d", ErrBatteryIndex, p.Slices-1)
	}

	slices, err := spiral.BuildAll(p)
	if err != nil {
		return "", err
	}

	rows := AssembleRows(ctx, slices[batteryIndex], center, minHeight, maxHeight, pl.elev)
	return RenderCSV(rows), nil
}

// OptimizeForBattery fits the spiral to a battery endurance target around a
// free-text center.
func (pl *Planner) OptimizeForBattery(targetMinutes float64, batteries int, center geo.Coordinate) (OptimizationResult, error) {
	return OptimizeForBattery(targetMinutes, batteries, center)
}

// ElevationFeet exposes the elevation service at the planner boundary.
func (pl *Planner) ElevationFeet(ctx context.Context, lat, lon float64) float64 {
	return pl.elev.ElevationFeet(ctx, lat, lon)
}

// debugSlicePath picks the slice nearest the debug angle and rotates it by
// the residual so the exported path sits at the exact requested angle.
func debugSlicePath(slices [][]spiral.Waypoint, p spiral.Params, debugAngleDeg float64) []spiral.Waypoint {
	dphi := p.DPhi()
	debugRad := debugAngleDeg * math.Pi / 180

	idx := int(math.Round(debugRad/dphi)) % p.Slices
	if idx < 0 {
		idx += p.Slices
	}

	diff := debugRad - float64(idx)*dphi
	src := slices[idx]

	path := make([]spiral.Waypoint, len(src))
	for i, wp := range src {
		rotated := wp
		rotated.PlanarPoint = wp.Rotate(diff)
		path[i] = rotated
	}
	return path
}
