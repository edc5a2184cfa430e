package output

import (
	"encoding/json"
	"io"
)

// JSONFormatter writes sample rows as JSON Lines, one object per line.
// The line-oriented form keeps large variable dumps streamable through
// standard tooling without parsing the whole dump at once.
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a JSON Lines formatter writing to w.
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format encodes each sample row on its own line. Keys within a row come
// out in the encoder's sorted order, so "index" leads its components.
func (j *JSONFormatter) Format(rows []map[string]interface{}) error {
	enc := json.NewEncoder(j.writer)
	for _, row := range rows {
		if err := enc.Encode(row); err != nil {
			return err
		}
	}
	return nil
}
