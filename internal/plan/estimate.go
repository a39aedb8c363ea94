package plan

import (
	"spiralplan/internal/geo"
	"spiralplan/internal/spiral"
)

// Flight model constants for one battery.
const (
	horizontalSpeedFps = 19.8 * 5280 / 3600 // 19.8 mph
	verticalSpeedFps   = 5 / geo.FeetToMeters
	hoverSecPerWp      = 3.0
	accelSecPerWp      = 2.0
)

// EstimateFlightMinutes estimates the duration of one slice flown on a
// single battery: ascend to minHeight, fly the waypoint path with hover and
// acceleration penalties per waypoint, return to the center, and descend.
//
// Altitudes use the flat-ground profile (no elevation lookups) so the
// optimizer can call this in a tight loop.
func EstimateFlightMinutes(p spiral.Params, center geo.Coordinate, minHeight float64) (float64, error) {
	wps, err := spiral.BuildSlice(0, p)
	if err != nil {
		return 0, err
	}

	pr := geo.NewProjector(center)
	coords := make([]geo.Coordinate, len(wps))
	for i, wp := range wps {
		coords[i] = pr.ToGeo(wp.PlanarPoint)
	}
	alts := AltitudeProfile(wps, nil, 0, minHeight, nil)

	seconds := minHeight / verticalSpeedFps

	for i := range wps {
		seconds += hoverSecPerWp + accelSecPerWp
		if i < len(wps)-1 {
			dist := geo.HaversineFeet(coords[i], coords[i+1])
			seconds += dist / horizontalSpeedFps

			dAlt := alts[i+1] - alts[i]
			if dAlt < 0 {
				dAlt = -dAlt
			}
			seconds += dAlt / verticalSpeedFps
		}
	}

	// Return to home and land.
	last := len(wps) - 1
	seconds += geo.HaversineFeet(coords[last], center) / horizontalSpeedFps
	seconds += alts[last] / verticalSpeedFps

	return seconds / 60, nil
}
