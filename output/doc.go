// Package output provides formatters for converting station variables to
// various output formats.
//
// Currently supported formats:
//   - JSON Lines: One JSON object per line
//   - CSV: Comma-separated values with header row
//   - Table: aligned text table for terminals
//
// Example usage:
//
//	formatter := output.NewJSONFormatter(os.Stdout)
//	if err := formatter.Format(output.VariableRows(v)); err != nil {
//	    log.Fatal(err)
//	}
package output
