package output

import (
	"fmt"
	"sort"

	"github.com/spacecataz/YooperNet/datafile"
)

// VariableRows converts a variable's samples into rows for the formatters.
//
// One-dimensional variables become {"index", "value"} rows. Two-dimensional
// variables get one column per component ("v0", "v1", ...). Higher-rank data
// is emitted flat, one sample per row, since tables have no good rendering
// for it.
func VariableRows(v *datafile.Variable) []map[string]interface{} {
	if v.IsString() {
		rows := make([]map[string]interface{}, len(v.Strings))
		for i, s := range v.Strings {
			rows[i] = map[string]interface{}{"index": i, "value": s}
		}
		return rows
	}

	if len(v.Shape) == 2 {
		ncomp := int(v.Shape[1])
		if ncomp > 0 && len(v.Values)%ncomp == 0 {
			rows := make([]map[string]interface{}, 0, len(v.Values)/ncomp)
			for i := 0; i+ncomp <= len(v.Values); i += ncomp {
				row := map[string]interface{}{"index": i / ncomp}
				for c := 0; c < ncomp; c++ {
					row[fmt.Sprintf("v%d", c)] = v.Values[i+c]
				}
				rows = append(rows, row)
			}
			return rows
		}
	}

	rows := make([]map[string]interface{}, len(v.Values))
	for i, val := range v.Values {
		rows[i] = map[string]interface{}{"index": i, "value": val}
	}
	return rows
}

// columns extracts the union of column names across rows, with "index"
// leading and the rest sorted for consistent ordering.
func columns(rows []map[string]interface{}) []string {
	seen := make(map[string]bool)
	for _, row := range rows {
		for col := range row {
			seen[col] = true
		}
	}
	if len(seen) == 0 {
		return nil
	}

	hasIndex := seen["index"]
	delete(seen, "index")

	cols := make([]string, 0, len(seen)+1)
	for col := range seen {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	if hasIndex {
		cols = append([]string{"index"}, cols...)
	}
	return cols
}
