package plan

import (
	"encoding/json"
	"os"
)

// FileWriter appends plan records to a JSONL log file.
type FileWriter struct {
	file *os.File
	enc  *json.Encoder
}

// NewFileWriter creates a FileWriter at path, truncating any existing log.
func NewFileWriter(path string) (*FileWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &FileWriter{file: f, enc: json.NewEncoder(f)}, nil
}

// WritePlan logs a single plan record.
func (f *FileWriter) WritePlan(rec PlanRecord) error {
	return f.enc.Encode(rec)
}

// WritePlans logs multiple plan records.
func (f *FileWriter) WritePlans(recs []PlanRecord) error {
	for _, r := range recs {
		if err := f.WritePlan(r); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the underlying file.
func (f *FileWriter) Close() error {
	return f.file.Close()
}
