package plan

import (
	"errors"
	"fmt"

	"spiralplan/internal/geo"
	"spiralplan/internal/spiral"
)

// ErrOutOfRange reports an optimizer input outside its allowed range.
var ErrOutOfRange = errors.New("parameter out of range")

// Optimizer search bounds.
const (
	minBatteryMinutes = 5.0
	maxBatteryMinutes = 60.0
	minBatteries      = 1
	maxBatteries      = 10

	optimizerR0      = 150.0
	floorR0          = 100.0
	minHoldRadius    = 200.0
	maxHoldRadius    = 4000.0
	radiusToleranceF = 10.0
	maxSearchIters   = 20

	// Accept a radius only when the estimate leaves a 5% safety margin.
	safetyMargin = 0.95
	// Try one extra bounce when the battery is underused.
	bonusBounceThreshold = 0.85

	minBounces = 3
	maxBounces = 12

	// Altitude floor used for trial estimates.
	estimateMinHeight = 100.0
)

// OptimizationResult is the best spiral found for a battery endurance target.
type OptimizationResult struct {
	Slices               int     `json:"slices"`
	N                    int     `json:"N"`
	R0                   float64 `json:"r0"`
	RHold                float64 `json:"rHold"`
	EstimatedTimeMinutes float64 `json:"estimated_time_minutes"`
	BatteryUtilization   float64 `json:"battery_utilization_percent"`
}

// initialBounces picks a starting bounce count from the endurance target.
func initialBounces(targetMinutes float64) int {
	var n int
	switch {
	case targetMinutes <= 12:
		n = 5
	case targetMinutes <= 18:
		n = 6
	case targetMinutes <= 25:
		n = 8
	case targetMinutes <= 35:
		n = 10
	default:
		n = 12
	}
	if n < minBounces {
		n = minBounces
	}
	if n > maxBounces {
		n = maxBounces
	}
	return n
}

// OptimizeForBattery finds the largest hold radius whose estimated
// single-battery flight time fits the endurance target with a 5% margin,
// using a fixed bounce heuristic plus binary search. It is a bounded
// heuristic, not an exact solver, and always returns a usable result:
// estimation failures during the search count as infeasible radii, and an
// infeasible target collapses to the absolute floor parameters.
func OptimizeForBattery(targetMinutes float64, batteries int, center geo.Coordinate) (OptimizationResult, error) {
	if targetMinutes < minBatteryMinutes || targetMinutes > maxBatteryMinutes {
		return OptimizationResult{}, fmt.Errorf("%w: battery minutes must be between %g and %g",
			ErrOutOfRange, minBatteryMinutes, maxBatteryMinutes)
	}
	if batteries < minBatteries || batteries > maxBatteries {
		return OptimizationResult{}, fmt.Errorf("%w: batteries must be between %d and %d",
			ErrOutOfRange, minBatteries, maxBatteries)
	}

	n := initialBounces(targetMinutes)

	estimate := func(n int, r0, rHold float64) (float64, error) {
		p := spiral.Params{Slices: batteries, N: n, R0: r0, RHold: rHold}
		return EstimateFlightMinutes(p, center, estimateMinHeight)
	}

	// Feasibility probe at the smallest hold radius; back off the bounce
	// count once before giving up on the search entirely.
	floorTime, err := estimate(n, optimizerR0, minHoldRadius)
	if err != nil || floorTime > targetMinutes {
		n -= 2
		if n < minBounces {
			n = minBounces
		}
		floorTime, err = estimate(n, optimizerR0, minHoldRadius)
		if err != nil || floorTime > targetMinutes {
			t, ferr := estimate(minBounces, floorR0, minHoldRadius)
			if ferr != nil {
				t = targetMinutes
			}
			return OptimizationResult{
				Slices:               batteries,
				N:                    minBounces,
				R0:                   floorR0,
				RHold:                minHoldRadius,
				EstimatedTimeMinutes: t,
				BatteryUtilization:   100 * t / targetMinutes,
			}, nil
		}
	}

	lo, hi := minHoldRadius, maxHoldRadius
	bestRadius, bestTime := lo, floorTime

	for i := 0; i < maxSearchIters && hi-lo > radiusToleranceF; i++ {
		mid := (lo + hi) / 2
		t, err := estimate(n, optimizerR0, mid)
		if err == nil && t <= safetyMargin*targetMinutes {
			lo = mid
			bestRadius, bestTime = mid, t
		} else {
			hi = mid
		}
	}

	// Underused battery: see if one more bounce still fits the margin.
	if bestTime < bonusBounceThreshold*targetMinutes && n < maxBounces {
		if t, err := estimate(n+1, optimizerR0, bestRadius); err == nil && t <= safetyMargin*targetMinutes {
			n++
			bestTime = t
		}
	}

	return OptimizationResult{
		Slices:               batteries,
		N:                    n,
		R0:                   optimizerR0,
		RHold:                bestRadius,
		EstimatedTimeMinutes: bestTime,
		BatteryUtilization:   100 * bestTime / targetMinutes,
	}, nil
}
