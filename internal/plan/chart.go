package plan

import (
	"fmt"
	"math"

	"spiralplan/internal/spiral"
)

// LineStyle mirrors the plotting library's line options.
type LineStyle struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
	Dash  string  `json:"dash,omitempty"`
}

// Trace is one polyline of the spiral visualization.
type Trace struct {
	X    []float64 `json:"x"`
	Y    []float64 `json:"y"`
	Mode string    `json:"mode"`
	Line LineStyle `json:"line"`
	Name string    `json:"name,omitempty"`
}

// ChartData is the visualization payload for one parameter set.
type ChartData struct {
	Traces []Trace `json:"traces"`
}

const (
	sliceHueStart = 220.0
	sliceHueEnd   = 300.0
)

// SpiralTraces renders the full bounce pattern as chart traces: one rotated
// spiral polyline plus a dotted radius line per slice. In debug mode a
// single slice is drawn at the exact debug angle instead.
func SpiralTraces(p spiral.Params, debugMode bool, debugAngleDeg float64) (ChartData, error) {
	if err := p.Validate(); err != nil {
		return ChartData{}, err
	}

	dphi := p.DPhi()
	raw := spiral.Sample(dphi, p.N, p.R0, p.RHold)

	rotated := func(angle float64) ([]float64, []float64) {
		c, s := math.Cos(angle), math.Sin(angle)
		xs := make([]float64, len(raw))
		ys := make([]float64, len(raw))
		for i, pt := range raw {
			xs[i] = pt.X*c - pt.Y*s
			ys[i] = pt.X*s + pt.Y*c
		}
		return xs, ys
	}

	radiusLine := func(angle float64) Trace {
		return Trace{
			X:    []float64{0, p.RHold * math.Cos(angle)},
			Y:    []float64{0, p.RHold * math.Sin(angle)},
			Mode: "lines",
			Line: LineStyle{Color: "#ff9500", Width: 2, Dash: "dot"},
		}
	}

	var traces []Trace

	if debugMode {
		angle := math.Pi/2 + debugAngleDeg*math.Pi/180
		xs, ys := rotated(angle)
		traces = append(traces, Trace{
			X:    xs,
			Y:    ys,
			Mode: "lines",
			Line: LineStyle{Color: "#0a84ff", Width: 3},
			Name: "Debug Slice",
		})
		rl := radiusLine(angle)
		rl.Name = "Radius"
		traces = append(traces, rl)
		return ChartData{Traces: traces}, nil
	}

	for k := 0; k < p.Slices; k++ {
		angle := math.Pi/2 + float64(k)*dphi
		xs, ys := rotated(angle)

		hue := sliceHueStart
		if p.Slices > 1 {
			hue += (sliceHueEnd - sliceHueStart) * float64(k) / float64(p.Slices-1)
		}

		traces = append(traces, Trace{
			X:    xs,
			Y:    ys,
			Mode: "lines",
			Line: LineStyle{Color: fmt.Sprintf("hsl(%g 80%% 55%%)", hue), Width: 2},
		})
		traces = append(traces, radiusLine(angle))
	}

	return ChartData{Traces: traces}, nil
}
