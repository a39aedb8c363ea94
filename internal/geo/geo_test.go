package geo

import (
	"errors"
	"math"
	"testing"
)

func TestProjectorRoundTrip(t *testing.T) {
	pr := NewProjector(Coordinate{Lat: 41.73218, Lon: -111.83979})
	points := []PlanarPoint{
		{X: 0, Y: 0},
		{X: 500, Y: -1200},
		{X: -3500, Y: 80},
		{X: 0.25, Y: 4000},
	}
	for _, p := range points {
		got := pr.ToPlanar(pr.ToGeo(p))
		if math.Abs(got.X-p.X) > 1e-6 || math.Abs(got.Y-p.Y) > 1e-6 {
			t.Errorf("round trip of %+v gave %+v", p, got)
		}
	}
}

func TestProjectorNorthIncreasesLatitude(t *testing.T) {
	pr := NewProjector(Coordinate{Lat: 41.7, Lon: -111.8})
	c := pr.ToGeo(PlanarPoint{X: 0, Y: 1000})
	if c.Lat <= pr.Origin.Lat {
		t.Errorf("expected latitude to increase, got %f", c.Lat)
	}
	if c.Lon != pr.Origin.Lon {
		t.Errorf("expected longitude unchanged, got %f", c.Lon)
	}
}

func TestHaversineFeet(t *testing.T) {
	a := Coordinate{Lat: 41.73218, Lon: -111.83979}
	// Roughly 1000 ft north of a.
	pr := NewProjector(a)
	b := pr.ToGeo(PlanarPoint{X: 0, Y: 1000})

	d := HaversineFeet(a, b)
	if math.Abs(d-1000) > 5 {
		t.Errorf("expected ~1000 ft, got %f", d)
	}
	if HaversineFeet(a, a) != 0 {
		t.Errorf("distance to self should be 0")
	}
}

func TestBearingDegrees(t *testing.T) {
	origin := PlanarPoint{}
	cases := []struct {
		to   PlanarPoint
		want float64
	}{
		{PlanarPoint{X: 0, Y: 1}, 0},    // north
		{PlanarPoint{X: 1, Y: 0}, 90},   // east
		{PlanarPoint{X: 0, Y: -1}, 180}, // south
		{PlanarPoint{X: -1, Y: 0}, 270}, // west
	}
	for _, c := range cases {
		got := BearingDegrees(origin, c.to)
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("bearing to %+v: got %f, want %f", c.to, got, c.want)
		}
	}
}

func TestParseCenterDecimal(t *testing.T) {
	c, err := ParseCenter("41.73218, -111.83979")
	if err != nil {
		t.Fatalf("ParseCenter returned error: %v", err)
	}
	if c.Lat != 41.73218 || c.Lon != -111.83979 {
		t.Errorf("unexpected coordinate: %+v", c)
	}
}

func TestParseCenterHemisphere(t *testing.T) {
	c, err := ParseCenter("41.7° N, 111.8° W")
	if err != nil {
		t.Fatalf("ParseCenter returned error: %v", err)
	}
	if c.Lat != 41.7 || c.Lon != -111.8 {
		t.Errorf("unexpected coordinate: %+v", c)
	}

	c, err = ParseCenter("33.9 S, 18.4 E")
	if err != nil {
		t.Fatalf("ParseCenter returned error: %v", err)
	}
	if c.Lat != -33.9 || c.Lon != 18.4 {
		t.Errorf("unexpected coordinate: %+v", c)
	}
}

func TestParseCenterInvalid(t *testing.T) {
	for _, txt := range []string{"", "not a coordinate", "41.7"} {
		if _, err := ParseCenter(txt); !errors.Is(err, ErrInvalidCenter) {
			t.Errorf("ParseCenter(%q): expected ErrInvalidCenter, got %v", txt, err)
		}
	}
}
