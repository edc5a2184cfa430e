package datafile

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/scigolib/hdf5"
)

// Sentinel errors. Callers branch on these with errors.Is; every error
// returned by this package wraps exactly one of them or comes from the
// operating system.
var (
	// ErrFileNotFound means the path does not resolve to an existing file.
	ErrFileNotFound = errors.New("data file does not exist")

	// ErrBadContainer means the file exists but is not a readable HDF5
	// container.
	ErrBadContainer = errors.New("not a valid HDF5 container")

	// ErrKeyNotFound means no variable with the requested key exists in
	// the open file.
	ErrKeyNotFound = errors.New("no variable with that key")

	// ErrClosed means the operation was attempted after Close.
	ErrClosed = errors.New("data file is closed")
)

// View is a read-only view over one open YooperNet HDF5 file.
//
// A View owns its file handle exclusively from a successful Open until
// Close. It never writes. It is not safe for concurrent use; callers that
// share a View across goroutines must serialize access.
type View struct {
	path   string
	file   *hdf5.File
	vars   map[string]*hdf5.Dataset
	keys   []string
	closed bool
}

// Open opens the HDF5 file at path in read mode and indexes its datasets.
//
// Returns an error wrapping ErrFileNotFound if the path does not exist, and
// one wrapping ErrBadContainer if the file is not a valid HDF5 container.
func Open(path string) (*View, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	f, err := hdf5.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBadContainer, path, err)
	}

	v := &View{
		path: path,
		file: f,
		vars: make(map[string]*hdf5.Dataset),
	}

	f.Walk(func(p string, obj hdf5.Object) {
		ds, ok := obj.(*hdf5.Dataset)
		if !ok {
			return
		}
		key := cleanKey(p)
		if key == "" {
			return
		}
		// HDF5 group maps cannot hold duplicates; keep the first
		// occurrence if the library ever yields one anyway.
		if _, dup := v.vars[key]; dup {
			return
		}
		v.vars[key] = ds
		v.keys = append(v.keys, key)
	})
	sort.Strings(v.keys)

	return v, nil
}

// Path returns the file path this view was opened from.
func (v *View) Path() string {
	return v.path
}

// Keys returns the sorted keys of all datasets in the file. It returns nil
// after Close.
func (v *View) Keys() []string {
	if v.closed {
		return nil
	}
	keys := make([]string, len(v.keys))
	copy(keys, v.keys)
	return keys
}

// Has reports whether a dataset with the given key exists, without reading
// it. It reports false after Close.
func (v *View) Has(key string) bool {
	if v.closed {
		return false
	}
	_, ok := v.vars[key]
	return ok
}

// Get reads the variable stored under key.
//
// Keys are exact-match and case-sensitive. Returns an error wrapping
// ErrKeyNotFound for an empty or absent key and one wrapping ErrClosed
// after Close.
func (v *View) Get(key string) (*Variable, error) {
	ds, err := v.lookup(key)
	if err != nil {
		return nil, err
	}
	return readVariable(ds, key)
}

// GetSlice reads a rectangular region of the variable stored under key,
// starting at start and spanning count elements in each dimension. It is
// meant for large datasets, like the all-sky image stack, that should not
// be loaded whole.
//
// The slice dimensionality must match the dataset's. Same error contract
// as Get; an out-of-bounds selection is rejected by the underlying library.
func (v *View) GetSlice(key string, start, count []uint64) (*Variable, error) {
	ds, err := v.lookup(key)
	if err != nil {
		return nil, err
	}

	raw, err := ds.ReadSlice(start, count)
	if err != nil {
		return nil, fmt.Errorf("failed to read slice of %q: %w", key, err)
	}
	vals, ok := raw.([]float64)
	if !ok {
		return nil, fmt.Errorf("slice of %q: unsupported element type %T", key, raw)
	}

	shape := make([]uint64, len(count))
	copy(shape, count)
	return &Variable{Key: key, Values: vals, Shape: shape}, nil
}

// Close releases the underlying file handle. It is idempotent: second and
// later calls do nothing and return nil. Any Get after Close fails with an
// error wrapping ErrClosed.
func (v *View) Close() error {
	if v.closed {
		return nil
	}
	v.closed = true
	v.vars = nil
	return v.file.Close()
}

func (v *View) lookup(key string) (*hdf5.Dataset, error) {
	if v.closed {
		return nil, fmt.Errorf("%w: %s", ErrClosed, v.path)
	}
	if key == "" {
		return nil, fmt.Errorf("%w: empty key", ErrKeyNotFound)
	}
	ds, ok := v.vars[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q in %s", ErrKeyNotFound, key, v.path)
	}
	return ds, nil
}

// cleanKey turns a walk path like "/images/date" into the key "images/date".
// Object names read back from some writers carry NUL padding, so each path
// component is trimmed.
func cleanKey(p string) string {
	parts := strings.Split(strings.Trim(p, "/"), "/")
	out := parts[:0]
	for _, part := range parts {
		part = strings.TrimRight(part, "\x00")
		if part != "" {
			out = append(out, part)
		}
	}
	return strings.Join(out, "/")
}
