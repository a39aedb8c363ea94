package spiral

import (
	"fmt"

	"spiralplan/internal/geo"
)

// PhaseKind identifies which segment of the slice a waypoint belongs to.
type PhaseKind int

const (
	PhaseOutboundStart PhaseKind = iota
	PhaseOutboundMid
	PhaseOutboundBounce
	PhaseHoldMid
	PhaseHoldEnd
	PhaseInboundMid
	PhaseInboundBounce
)

// Phase tags a waypoint with its mission segment and bounce index. Bounce is
// meaningful only for the Mid/Bounce kinds.
type Phase struct {
	Kind   PhaseKind
	Bounce int
}

// String renders the phase in the tag form used by waypoint IDs,
// e.g. "outbound_mid_3" or "hold_end".
func (p Phase) String() string {
	switch p.Kind {
	case PhaseOutboundStart:
		return "outbound_start"
	case PhaseOutboundMid:
		return fmt.Sprintf("outbound_mid_%d", p.Bounce)
	case PhaseOutboundBounce:
		return fmt.Sprintf("outbound_bounce_%d", p.Bounce)
	case PhaseHoldMid:
		return "hold_mid"
	case PhaseHoldEnd:
		return "hold_end"
	case PhaseInboundMid:
		return fmt.Sprintf("inbound_mid_%d", p.Bounce)
	case PhaseInboundBounce:
		return fmt.Sprintf("inbound_bounce_%d", p.Bounce)
	}
	return "unknown"
}

// IsMidpoint reports whether the waypoint is a transition arc rather than a
// direction reversal. Midpoints get the gentle curve policy.
func (p Phase) IsMidpoint() bool {
	switch p.Kind {
	case PhaseOutboundMid, PhaseHoldMid, PhaseInboundMid:
		return true
	}
	return false
}

// MarshalJSON renders the phase as its tag string.
func (p Phase) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

// Waypoint is one flight-order point of a slice, in planar feet.
type Waypoint struct {
	geo.PlanarPoint
	Curve float64 `json:"curve"` // turn radius, feet
	Phase Phase   `json:"phase"`
	T     float64 `json:"t"` // spiral angular parameter at sampling
	ID    string  `json:"id"`
}
