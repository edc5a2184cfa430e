package output

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// TableFormatter outputs rows as an aligned text table.
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer
func (t *TableFormatter) SetOutput(w io.Writer) {
	t.writer = w
}

// Format renders rows as a table with one header row
func (t *TableFormatter) Format(rows []map[string]interface{}) error {
	cols := columns(rows)
	if len(cols) == 0 {
		return nil
	}

	table := tablewriter.NewWriter(t.writer)
	table.SetHeader(cols)
	table.SetAutoFormatHeaders(false)

	for _, row := range rows {
		record := make([]string, len(cols))
		for i, col := range cols {
			record[i] = formatValue(row[col])
		}
		table.Append(record)
	}

	table.Render()
	return nil
}
