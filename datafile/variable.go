package datafile

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/scigolib/hdf5"
)

// Variable is one named dataset read from a container file: a key, the
// sample values, the stored shape, and whatever attribute metadata (units,
// axis labels) the station tooling attached to it.
//
// Numeric datasets populate Values with every sample converted to float64,
// in row-major order for multidimensional data. String datasets populate
// Strings instead.
type Variable struct {
	Key     string
	Values  []float64
	Strings []string
	Shape   []uint64
	Attrs   map[string]interface{}
}

// Len returns the number of samples in the variable.
func (vr *Variable) Len() int {
	if vr.IsString() {
		return len(vr.Strings)
	}
	return len(vr.Values)
}

// IsString reports whether the variable holds string samples.
func (vr *Variable) IsString() bool {
	return vr.Strings != nil
}

// readVariable loads a dataset's values, shape and attributes.
func readVariable(ds *hdf5.Dataset, key string) (*Variable, error) {
	v := &Variable{Key: key}

	// Info is the library's only public surface for datatype and shape;
	// a dataset we cannot describe is still readable, so failures here
	// only cost us the shape.
	info, infoErr := ds.Info()
	if infoErr == nil {
		v.Shape = parseShape(info)
	}

	if infoErr == nil && isStringInfo(info) {
		strs, err := ds.ReadStrings()
		if err != nil {
			return nil, fmt.Errorf("failed to read string variable %q: %w", key, err)
		}
		v.Strings = strs
	} else {
		vals, err := ds.Read()
		if err != nil {
			// Without usable Info a string dataset lands here first.
			strs, serr := ds.ReadStrings()
			if serr != nil {
				return nil, fmt.Errorf("failed to read variable %q: %w", key, err)
			}
			v.Strings = strs
		} else {
			v.Values = vals
		}
	}

	if attrs, err := ds.Attributes(); err == nil && len(attrs) > 0 {
		v.Attrs = make(map[string]interface{}, len(attrs))
		for _, a := range attrs {
			val, err := a.ReadValue()
			if err != nil {
				continue
			}
			v.Attrs[strings.TrimRight(a.Name, "\x00")] = val
		}
	}

	return v, nil
}

// Dataset.Info renders the dataspace as "scalar", "1D array [n]",
// "2D array [a x b]" or "ND array [a b ...]".
var shapePattern = regexp.MustCompile(`(\d+)D array \[([^\]]*)\]`)

func parseShape(info string) []uint64 {
	if strings.Contains(info, "scalar") {
		return []uint64{1}
	}
	m := shapePattern.FindStringSubmatch(info)
	if m == nil {
		return nil
	}
	fields := strings.FieldsFunc(m[2], func(r rune) bool {
		return r == ' ' || r == 'x'
	})
	shape := make([]uint64, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return nil
		}
		shape = append(shape, n)
	}
	if len(shape) == 0 {
		return nil
	}
	return shape
}

func isStringInfo(info string) bool {
	return strings.HasPrefix(info, "Dataset: string")
}
