package plan

import (
	"context"
	"math"

	"spiralplan/internal/elevation"
	"spiralplan/internal/geo"
	"spiralplan/internal/spiral"
)

// Export protocol constants (Litchi CSV schema).
const (
	speedMS          = 8.85
	rotationDir      = 0
	gimbalMode       = 2
	altitudeMode     = 0
	poiAltitudeFt    = 0
	poiAltitudeMode  = 0
	photoIntervalSec = 2.8
	photoDistMeters  = 0

	// minCurveFt floors the curve radius at export time; the builder's own
	// rounding happens earlier, at waypoint extraction.
	minCurveFt = 15.0
)

// Row is one exported mission waypoint.
type Row struct {
	Latitude        float64
	Longitude       float64
	AltitudeFt      float64
	HeadingDeg      int
	CurveSizeM      float64
	RotationDir     int
	GimbalMode      int
	GimbalPitchDeg  int
	AltitudeMode    int
	SpeedMS         float64
	POILatitude     float64
	POILongitude    float64
	POIAltitudeFt   float64
	POIAltitudeMode int
	PhotoInterval   float64
	PhotoDistance   float64
}

// AssembleRows converts a flight-ordered waypoint path into export rows:
// geodetic position, elevation-aware altitude, heading to the next
// waypoint, floored curve size in meters, and the sinusoidal gimbal
// profile. Elevations come from svc; the takeoff elevation is sampled at
// the mission center.
func AssembleRows(ctx context.Context, path []spiral.Waypoint, center geo.Coordinate, minHeight float64, maxHeight *float64, svc *elevation.Service) []Row {
	if len(path) == 0 {
		return nil
	}

	pr := geo.NewProjector(center)
	coords := make([]geo.Coordinate, len(path))
	for i, wp := range path {
		coords[i] = pr.ToGeo(wp.PlanarPoint)
	}

	takeoffFt := svc.ElevationFeet(ctx, center.Lat, center.Lon)
	groundFt := svc.ElevationsFor(ctx, coords)
	alts := AltitudeProfile(path, groundFt, takeoffFt, minHeight, maxHeight)

	rows := make([]Row, len(path))
	for i, wp := range path {
		heading := 0
		if i < len(path)-1 {
			heading = int(math.Round(geo.BearingDegrees(wp.PlanarPoint, path[i+1].PlanarPoint)))
		}

		curve := math.Max(wp.Curve, minCurveFt)
		curveM := math.Round(curve*geo.FeetToMeters*100) / 100

		progress := 0.0
		if len(path) > 1 {
			progress = float64(i) / float64(len(path)-1)
		}
		gimbal := int(math.Round(-35 + 14*math.Sin(progress*math.Pi)))

		interval := photoIntervalSec
		if i == 0 {
			// Camera primed on the first waypoint, no shot yet.
			interval = 0
		}

		rows[i] = Row{
			Latitude:        math.Round(coords[i].Lat*100000) / 100000,
			Longitude:       math.Round(coords[i].Lon*100000) / 100000,
			AltitudeFt:      alts[i],
			HeadingDeg:      heading,
			CurveSizeM:      curveM,
			RotationDir:     rotationDir,
			GimbalMode:      gimbalMode,
			GimbalPitchDeg:  gimbal,
			AltitudeMode:    altitudeMode,
			SpeedMS:         speedMS,
			POILatitude:     center.Lat,
			POILongitude:    center.Lon,
			POIAltitudeFt:   poiAltitudeFt,
			POIAltitudeMode: poiAltitudeMode,
			PhotoInterval:   interval,
			PhotoDistance:   photoDistMeters,
		}
	}
	return rows
}
