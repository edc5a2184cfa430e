package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVFormatter outputs rows as CSV format
type CSVFormatter struct {
	writer io.Writer
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w}
}

// SetOutput sets the output writer
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// Format writes rows as CSV with a header row
func (c *CSVFormatter) Format(rows []map[string]interface{}) error {
	csvWriter := csv.NewWriter(c.writer)

	cols := columns(rows)
	if len(cols) > 0 {
		if err := csvWriter.Write(cols); err != nil {
			return err
		}
	}

	for _, row := range rows {
		record := make([]string, len(cols))
		for i, col := range cols {
			record[i] = formatValue(row[col])
		}
		if err := csvWriter.Write(record); err != nil {
			return err
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}
	return nil
}

// formatValue converts a value to string for CSV output
func formatValue(v interface{}) string {
	if v == nil {
		return ""
	}

	switch val := v.(type) {
	case string:
		// Sanitize against CSV injection by prefixing characters that
		// could trigger formula execution in spreadsheet applications
		if len(val) > 0 && strings.ContainsRune("=+-@\t\r\n|", rune(val[0])) {
			return "'" + strings.ReplaceAll(val, "'", "''")
		}
		return val
	case int:
		return fmt.Sprintf("%d", val)
	case uint64:
		return fmt.Sprintf("%d", val)
	case float64:
		return fmt.Sprintf("%g", val)
	case bool:
		return fmt.Sprintf("%t", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
