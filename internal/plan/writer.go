package plan

// PlanWriter is an interface to support different plan audit sinks.
type PlanWriter interface {
	WritePlan(PlanRecord) error
}

// Optional: writers can also support batch mode.
type batchPlanWriter interface {
	WritePlans([]PlanRecord) error
}

// MultiWriter fans plan records out to multiple writers.
type MultiWriter struct {
	writers []PlanWriter
}

// NewMultiWriter creates a new MultiWriter.
func NewMultiWriter(ws ...PlanWriter) *MultiWriter {
	return &MultiWriter{writers: ws}
}

// WritePlan sends a plan record to all writers.
func (mw *MultiWriter) WritePlan(rec PlanRecord) error {
	for _, w := range mw.writers {
		if err := w.WritePlan(rec); err != nil {
			return err
		}
	}
	return nil
}

// WritePlans sends multiple plan records to all writers, using batch mode
// where supported.
func (mw *MultiWriter) WritePlans(recs []PlanRecord) error {
	for _, w := range mw.writers {
		if bw, ok := w.(batchPlanWriter); ok {
			if err := bw.WritePlans(recs); err != nil {
				return err
			}
			continue
		}
		for _, r := range recs {
			if err := w.WritePlan(r); err != nil {
				return err
			}
		}
	}
	return nil
}
