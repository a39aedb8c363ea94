// Bounded log-spiral survey pattern generation.
package spiral

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParams reports spiral parameters outside their valid domain.
var ErrInvalidParams = errors.New("invalid spiral parameters")

// Params defines one bounded-spiral survey pattern.
type Params struct {
	Slices int     `json:"slices"` // angular wedges, one battery each
	N      int     `json:"N"`      // bounce count per slice
	R0     float64 `json:"r0"`     // start radius, feet
	RHold  float64 `json:"rHold"`  // hold radius, feet
}

// Validate rejects parameter combinations that would put the radius law
// outside its log/exp domain (rHold > r0 > 0) or degenerate the angular
// step (slices, N >= 1).
func (p Params) Validate() error {
	if p.Slices < 1 {
		return fmt.Errorf("%w: slices must be >= 1, got %d", ErrInvalidParams, p.Slices)
	}
	if p.N < 1 {
		return fmt.Errorf("%w: N must be >= 1, got %d", ErrInvalidParams, p.N)
	}
	if p.R0 <= 0 {
		return fmt.Errorf("%w: r0 must be > 0, got %g", ErrInvalidParams, p.R0)
	}
	if p.RHold <= p.R0 {
		return fmt.Errorf("%w: rHold must be > r0, got rHold=%g r0=%g", ErrInvalidParams, p.RHold, p.R0)
	}
	return nil
}

// DPhi returns the angular step of one slice in radians.
func (p Params) DPhi() float64 {
	return 2 * math.Pi / float64(p.Slices)
}
