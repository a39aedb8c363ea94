// ColorStdoutWriter prints human-friendly, colorized plan records to STDOUT.
package plan

import (
	"fmt"
	"io"
	"os"
	"time"
)

const (
	colorReset   = "\x1b[0m"
	colorRed     = "\x1b[31m"
	colorGreen   = "\x1b[32m"
	colorYellow  = "\x1b[33m"
	colorBlue    = "\x1b[34m"
	colorMagenta = "\x1b[35m"
	colorCyan    = "\x1b[36m"
	colorGray    = "\x1b[90m"
)

// ColorStdoutWriter prints plan records using ANSI colors.
type ColorStdoutWriter struct {
	out io.Writer
}

// NewColorStdoutWriter creates a ColorStdoutWriter writing to os.Stdout.
func NewColorStdoutWriter() *ColorStdoutWriter {
	return &ColorStdoutWriter{out: os.Stdout}
}

func (w *ColorStdoutWriter) utilizationColor(pct float64) string {
	switch {
	case pct > 95:
		return colorRed
	case pct > 85:
		return colorYellow
	default:
		return colorGreen
	}
}

// WritePlan outputs a single plan record in colorized format.
func (w *ColorStdoutWriter) WritePlan(rec PlanRecord) error {
	fmt.Fprintf(w.out, "%s[%s]%s ", colorGray, rec.Timestamp.Format(time.RFC3339), colorReset)
	fmt.Fprintf(w.out, "%splan=%s%s ", colorBlue, rec.PlanID, colorReset)
	fmt.Fprintf(w.out, "%ssource=%s%s ", colorMagenta, rec.Source, colorReset)
	fmt.Fprintf(w.out, "%scenter=(%.5f,%.5f)%s ", colorGreen, rec.CenterLat, rec.CenterLon, colorReset)
	fmt.Fprintf(w.out, "%sslices=%d n=%d%s ", colorCyan, rec.Slices, rec.N, colorReset)
	fmt.Fprintf(w.out, "%sr0=%.0f rHold=%.0f%s ", colorYellow, rec.R0, rec.RHold, colorReset)
	fmt.Fprintf(w.out, "wps=%d", rec.Waypoints)
	if rec.EstimatedMinutes > 0 {
		fmt.Fprintf(w.out, " %sest=%.1fmin util=%.1f%%%s",
			w.utilizationColor(rec.UtilizationPct), rec.EstimatedMinutes, rec.UtilizationPct, colorReset)
	}
	fmt.Fprintln(w.out)
	return nil
}

// WritePlans outputs multiple plan records.
func (w *ColorStdoutWriter) WritePlans(recs []PlanRecord) error {
	for _, r := range recs {
		_ = w.WritePlan(r)
	}
	return nil
}
