// Writer implementation printing plan records to STDOUT.
package plan

import (
	"encoding/json"
	"fmt"
)

// StdoutWriter prints plan records to STDOUT as JSON lines.
type StdoutWriter struct{}

// WritePlan outputs a single plan record.
func (w *StdoutWriter) WritePlan(rec PlanRecord) error {
	data, _ := json.Marshal(rec)
	fmt.Println(string(data))
	return nil
}

// WritePlans outputs multiple plan records.
func (w *StdoutWriter) WritePlans(recs []PlanRecord) error {
	for _, r := range recs {
		_ = w.WritePlan(r)
	}
	return nil
}
