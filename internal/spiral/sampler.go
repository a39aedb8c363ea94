package spiral

import (
	"math"

	"spiralplan/internal/geo"
)

const (
	// sampleSteps is the fixed polyline resolution of one slice.
	sampleSteps = 1200

	// maxPositionErrFt is the declared positional tolerance for adaptive
	// stepping. Sampling is currently fixed at sampleSteps; the constant is
	// kept for a future adaptive sampler.
	maxPositionErrFt = 0.2
)

// Sample produces a dense polyline of the bounded spiral for one slice,
// before any slice rotation is applied.
//
// The pattern grows from r0 to rHold over N angular steps of dphi
// (outbound), holds at rHold for one step, then mirrors back in. The
// angular position is a triangle wave over [0, dphi], so the sweep bounces
// back and forth instead of winding monotonically; the turnaround points
// become the bounce waypoints used for photo overlap.
func Sample(dphi float64, n int, r0, rHold float64) []geo.PlanarPoint {
	alpha := math.Log(rHold/r0) / (float64(n) * dphi)
	tOut := float64(n) * dphi
	tHold := dphi
	tTotal := 2*tOut + tHold

	pts := make([]geo.PlanarPoint, 0, sampleSteps)
	for i := 0; i < sampleSteps; i++ {
		th := float64(i) * tTotal / (sampleSteps - 1)

		var r float64
		switch {
		case th <= tOut:
			r = r0 * math.Exp(alpha*th)
		case th <= tOut+tHold:
			r = rHold
		default:
			r = r0 * math.Exp(alpha*(tTotal-th))
		}

		// Triangle-wave mapping of th/dphi into [0, dphi].
		phase := math.Mod(math.Mod(th/dphi, 2)+2, 2)
		phi := phase * dphi
		if phase > 1 {
			phi = (2 - phase) * dphi
		}

		pts = append(pts, geo.PlanarPoint{
			X: r * math.Cos(phi),
			Y: r * math.Sin(phi),
		})
	}
	return pts
}
