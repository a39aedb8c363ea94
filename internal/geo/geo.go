// Local tangent-plane projection and great-circle helpers.
package geo

import "math"

const (
	// EarthRadiusM is the WGS84 equatorial radius in meters.
	EarthRadiusM = 6378137.0
	// FeetToMeters converts feet to meters.
	FeetToMeters = 0.3048
	// MetersToFeet converts meters to feet.
	MetersToFeet = 1 / 0.3048
)

// Coordinate is a geodetic position in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// PlanarPoint is a position on the local tangent plane, in feet,
// with the origin at the mission center.
type PlanarPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the planar distance between two points in feet.
func (p PlanarPoint) Distance(q PlanarPoint) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Rotate returns the point rotated counter-clockwise by angle radians.
func (p PlanarPoint) Rotate(angle float64) PlanarPoint {
	c, s := math.Cos(angle), math.Sin(angle)
	return PlanarPoint{
		X: p.X*c - p.Y*s,
		Y: p.X*s + p.Y*c,
	}
}

// Projector converts between local planar offsets (feet) and geodetic
// coordinates using a flat-earth approximation around its origin. Good for
// mission-sized extents (a few km); no geodesic correction beyond that.
type Projector struct {
	Origin Coordinate
}

// NewProjector creates a projector centered on origin.
func NewProjector(origin Coordinate) *Projector {
	return &Projector{Origin: origin}
}

// ToGeo projects a planar point to latitude/longitude.
func (pr *Projector) ToGeo(p PlanarPoint) Coordinate {
	xm := p.X * FeetToMeters
	ym := p.Y * FeetToMeters

	dLat := ym / EarthRadiusM
	dLon := xm / (EarthRadiusM * math.Cos(pr.Origin.Lat*math.Pi/180))

	return Coordinate{
		Lat: pr.Origin.Lat + dLat*180/math.Pi,
		Lon: pr.Origin.Lon + dLon*180/math.Pi,
	}
}

// ToPlanar is the inverse of ToGeo.
func (pr *Projector) ToPlanar(c Coordinate) PlanarPoint {
	dLat := (c.Lat - pr.Origin.Lat) * math.Pi / 180
	dLon := (c.Lon - pr.Origin.Lon) * math.Pi / 180

	ym := dLat * EarthRadiusM
	xm := dLon * EarthRadiusM * math.Cos(pr.Origin.Lat*math.Pi/180)

	return PlanarPoint{X: xm * MetersToFeet, Y: ym * MetersToFeet}
}

// HaversineFeet returns the great-circle distance between two coordinates in feet.
func HaversineFeet(a, b Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusM * c * MetersToFeet
}

// BearingDegrees returns the heading from p to q in degrees, normalized to
// [0,360), with 0 pointing along +Y (north on the tangent plane).
func BearingDegrees(p, q PlanarPoint) float64 {
	dx := q.X - p.X
	dy := q.Y - p.Y
	deg := math.Atan2(dx, dy) * 180 / math.Pi
	return math.Mod(deg+360, 360)
}
