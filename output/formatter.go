package output

import "io"

// Formatter renders variable sample rows to an output destination.
//
// Each row is one sample: an "index" key plus either a single "value" or
// one key per field component (see VariableRows). Implementations pick the
// wire format; SetOutput redirects where it lands.
type Formatter interface {
	// Format writes all rows in the formatter's format.
	Format(rows []map[string]interface{}) error

	// SetOutput changes the destination writer.
	SetOutput(w io.Writer)
}
