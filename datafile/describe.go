package datafile

import (
	"fmt"
	"regexp"
	"strconv"
)

// VarInfo describes a single variable in a container file without loading
// its samples.
type VarInfo struct {
	Key     string   `json:"key"`
	Type    string   `json:"type"`
	Shape   []uint64 `json:"shape,omitempty"`
	Samples uint64   `json:"samples"`
}

// Describe returns metadata for every variable in the file, in key order.
//
// The type names are user-friendly summaries (FLOAT64, INT32, STRING, ...)
// derived from the stored HDF5 datatype. Returns an error wrapping ErrClosed
// after Close.
func (v *View) Describe() ([]VarInfo, error) {
	if v.closed {
		return nil, fmt.Errorf("%w: %s", ErrClosed, v.path)
	}

	infos := make([]VarInfo, 0, len(v.keys))
	for _, key := range v.keys {
		vi := VarInfo{Key: key, Type: "UNKNOWN"}

		desc, err := v.vars[key].Info()
		if err == nil {
			vi.Type = friendlyType(desc)
			vi.Shape = parseShape(desc)
			vi.Samples = 1
			for _, dim := range vi.Shape {
				vi.Samples *= dim
			}
		}
		infos = append(infos, vi)
	}
	return infos, nil
}

// Dataset.Info leads with the datatype as "Dataset: <class> (size=<n> bytes)".
var typePattern = regexp.MustCompile(`^Dataset: ([a-z_0-9]+) \(size=(\d+) bytes\)`)

// friendlyType converts the datatype summary of Dataset.Info into a simple,
// recognizable type name for end users.
func friendlyType(desc string) string {
	m := typePattern.FindStringSubmatch(desc)
	if m == nil {
		return "UNKNOWN"
	}
	class := m[1]
	size, err := strconv.Atoi(m[2])
	if err != nil {
		return "UNKNOWN"
	}

	switch class {
	case "float":
		switch size {
		case 4:
			return "FLOAT32"
		case 8:
			return "FLOAT64"
		}
		return "FLOAT"
	case "integer":
		switch size {
		case 1:
			return "INT8"
		case 2:
			return "INT16"
		case 4:
			return "INT32"
		case 8:
			return "INT64"
		}
		return "INTEGER"
	case "string":
		return "STRING"
	case "compound":
		return "COMPOUND"
	case "array":
		return "ARRAY"
	default:
		return "UNKNOWN"
	}
}
