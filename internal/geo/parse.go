package geo

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidCenter reports that a free-text center string could not be parsed.
var ErrInvalidCenter = errors.New("invalid center coordinates")

var (
	degreePattern  = regexp.MustCompile(`(?i)(\d+\.?\d*)\s*°?\s*([NS])\s*,\s*(\d+\.?\d*)\s*°?\s*([EW])`)
	decimalPattern = regexp.MustCompile(`([-+]?\d+\.?\d*)\s*,\s*([-+]?\d+\.?\d*)`)
)

// ParseCenter parses a mission center from free text. It accepts hemisphere
// notation ("41.7° N, 111.8° W") and plain decimal pairs
// ("41.73218, -111.83979").
func ParseCenter(txt string) (Coordinate, error) {
	txt = strings.TrimSpace(txt)

	if m := degreePattern.FindStringSubmatch(txt); m != nil {
		lat, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return Coordinate{}, fmt.Errorf("%w: %q", ErrInvalidCenter, txt)
		}
		lon, err := strconv.ParseFloat(m[3], 64)
		if err != nil {
			return Coordinate{}, fmt.Errorf("%w: %q", ErrInvalidCenter, txt)
		}
		if strings.EqualFold(m[2], "S") {
			lat = -lat
		}
		if strings.EqualFold(m[4], "W") {
			lon = -lon
		}
		return Coordinate{Lat: lat, Lon: lon}, nil
	}

	if m := decimalPattern.FindStringSubmatch(txt); m != nil {
		lat, err1 := strconv.ParseFloat(m[1], 64)
		lon, err2 := strconv.ParseFloat(m[2], 64)
		if err1 == nil && err2 == nil {
			return Coordinate{Lat: lat, Lon: lon}, nil
		}
	}

	return Coordinate{}, fmt.Errorf("%w: %q", ErrInvalidCenter, txt)
}
