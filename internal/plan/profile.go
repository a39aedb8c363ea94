// Mission assembly: altitude profiles, export rows, time estimation, and
// battery-fit optimization on top of the spiral geometry.
package plan

import (
	"math"

	"spiralplan/internal/spiral"
)

// AltitudeProfile assigns the exported altitude for each waypoint, in feet
// relative to the takeoff point.
//
// The desired above-ground height starts at minHeight on the first waypoint
// and rises by half a foot per foot of radial distance gained beyond the
// first waypoint's radius. Ground that sits above the takeoff elevation
// lifts the whole profile by the (non-negative) offset. When maxHeight is
// set, the altitude is clamped so the height above local ground never
// exceeds maxHeight relative to the takeoff elevation.
//
// groundFt may be nil for a flat-ground profile (every offset zero), which
// is what the flight-time estimator uses.
func AltitudeProfile(wps []spiral.Waypoint, groundFt []float64, takeoffFt, minHeight float64, maxHeight *float64) []float64 {
	alts := make([]float64, len(wps))
	if len(wps) == 0 {
		return alts
	}

	dist0 := math.Hypot(wps[0].X, wps[0].Y)

	for i, wp := range wps {
		dist := math.Hypot(wp.X, wp.Y)

		agl := minHeight
		if i > 0 {
			agl += 0.5 * math.Max(0, dist-dist0)
		}

		ground := takeoffFt
		if groundFt != nil {
			ground = groundFt[i]
		}
		offset := math.Max(0, ground-takeoffFt)

		alt := offset + agl
		if maxHeight != nil {
			// Height above local ground stays within maxHeight of takeoff.
			limit := *maxHeight + ground - takeoffFt
			if alt > limit {
				alt = limit
			}
		}

		alts[i] = math.Round(alt*100) / 100
	}
	return alts
}
