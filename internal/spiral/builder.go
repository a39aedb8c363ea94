package spiral

import (
	"fmt"
	"math"
)

// Curve-radius policy. Midpoints are transition arcs and get curvature that
// grows with distance from center; bounce points are sharp reversals and
// stay tight. A 15 ft floor is applied later at export time, not here.
const (
	midCurveBase   = 50.0
	midCurveScale  = 1.2
	midCurveMax    = 1500.0
	turnCurveBase  = 20.0
	turnCurveScale = 0.05
	turnCurveMax   = 80.0
)

// BuildSlice extracts the sparse waypoint sequence for slice k from the
// sampled spiral. The slice is rotated so slice 0 points north; each
// waypoint is picked by nearest-sample lookup at its target angular
// parameter. The result always holds exactly 4N+3 waypoints in flight
// order.
func BuildSlice(k int, p Params) ([]Waypoint, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	dphi := p.DPhi()
	offset := math.Pi/2 + float64(k)*dphi

	pts := Sample(dphi, p.N, p.R0, p.RHold)
	tOut := float64(p.N) * dphi
	tHold := dphi
	tTotal := 2*tOut + tHold

	pick := func(targetT float64, phase Phase) Waypoint {
		idx := int(math.Round(targetT * float64(len(pts)-1) / tTotal))
		if idx < 0 {
			idx = 0
		}
		if idx > len(pts)-1 {
			idx = len(pts) - 1
		}
		rp := pts[idx].Rotate(offset)

		dist := math.Hypot(rp.X, rp.Y)
		var curve float64
		if phase.IsMidpoint() {
			curve = math.Min(midCurveMax, midCurveBase+dist*midCurveScale)
		} else {
			curve = math.Min(turnCurveMax, turnCurveBase+dist*turnCurveScale)
		}
		curve = math.Round(curve*10) / 10

		return Waypoint{
			PlanarPoint: rp,
			Curve:       curve,
			Phase:       phase,
			T:           targetT,
			ID:          fmt.Sprintf("%s_%.3f", phase, targetT),
		}
	}

	wps := make([]Waypoint, 0, 4*p.N+3)

	// Outbound: start, then midpoint+bounce per bounce.
	wps = append(wps, pick(0, Phase{Kind: PhaseOutboundStart}))
	for bounce := 1; bounce <= p.N; bounce++ {
		wps = append(wps, pick((float64(bounce)-0.5)*dphi, Phase{Kind: PhaseOutboundMid, Bounce: bounce}))
		wps = append(wps, pick(float64(bounce)*dphi, Phase{Kind: PhaseOutboundBounce, Bounce: bounce}))
	}

	// Hold at rHold for one angular step.
	tEndHold := tOut + tHold
	wps = append(wps, pick(tOut+tHold/2, Phase{Kind: PhaseHoldMid}))
	wps = append(wps, pick(tEndHold, Phase{Kind: PhaseHoldEnd}))

	// Inbound mirrors outbound; no midpoint after the final bounce.
	wps = append(wps, pick(tEndHold+0.5*dphi, Phase{Kind: PhaseInboundMid, Bounce: 0}))
	for bounce := 1; bounce <= p.N; bounce++ {
		wps = append(wps, pick(tEndHold+float64(bounce)*dphi, Phase{Kind: PhaseInboundBounce, Bounce: bounce}))
		if bounce < p.N {
			wps = append(wps, pick(tEndHold+(float64(bounce)+0.5)*dphi, Phase{Kind: PhaseInboundMid, Bounce: bounce}))
		}
	}

	return wps, nil
}

// BuildAll computes the waypoint sequences for every slice.
func BuildAll(p Params) ([][]Waypoint, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	slices := make([][]Waypoint, 0, p.Slices)
	for k := 0; k < p.Slices; k++ {
		wps, err := BuildSlice(k, p)
		if err != nil {
			return nil, err
		}
		slices = append(slices, wps)
	}
	return slices, nil
}
