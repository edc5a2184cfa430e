package datafile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacecataz/YooperNet/datafile"
	"github.com/spacecataz/YooperNet/internal/h5test"
)

func TestOpenGetKnownValue(t *testing.T) {
	path := h5test.WriteFloatFile(t, "b", []float64{1.0, 2.0, 3.0})

	view, err := datafile.Open(path)
	require.NoError(t, err)
	defer view.Close()

	v, err := view.Get("b")
	require.NoError(t, err)
	assert.Equal(t, []float64{1.0, 2.0, 3.0}, v.Values)
	assert.Equal(t, "b", v.Key)
	assert.Equal(t, 3, v.Len())
	assert.False(t, v.IsString())
}

func TestOpenFileNotFound(t *testing.T) {
	_, err := datafile.Open(filepath.Join(t.TempDir(), "no_such_file.h5"))
	require.Error(t, err)
	assert.ErrorIs(t, err, datafile.ErrFileNotFound)
}

func TestOpenBadContainer(t *testing.T) {
	// A plain text file renamed with the expected extension.
	path := filepath.Join(t.TempDir(), "fake.h5")
	require.NoError(t, os.WriteFile(path, []byte("this is not an HDF5 file\n"), 0o644))

	_, err := datafile.Open(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, datafile.ErrBadContainer)
}

func TestGetKeyNotFound(t *testing.T) {
	path := h5test.WriteFloatFile(t, "b", []float64{1.0, 2.0, 3.0})

	view, err := datafile.Open(path)
	require.NoError(t, err)
	defer view.Close()

	_, err = view.Get("missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, datafile.ErrKeyNotFound)

	// Keys are case-sensitive exact matches.
	_, err = view.Get("B")
	assert.ErrorIs(t, err, datafile.ErrKeyNotFound)

	// The empty key is never present.
	_, err = view.Get("")
	assert.ErrorIs(t, err, datafile.ErrKeyNotFound)
}

func TestEmptyContainer(t *testing.T) {
	path := h5test.WriteEmptyFile(t)

	view, err := datafile.Open(path)
	require.NoError(t, err)
	defer view.Close()

	assert.Empty(t, view.Keys())

	_, err = view.Get("anything")
	assert.ErrorIs(t, err, datafile.ErrKeyNotFound)
}

func TestCloseIdempotent(t *testing.T) {
	path := h5test.WriteFloatFile(t, "b", []float64{1.0})

	view, err := datafile.Open(path)
	require.NoError(t, err)

	require.NoError(t, view.Close())
	require.NoError(t, view.Close())
	require.NoError(t, view.Close())
}

func TestGetAfterClose(t *testing.T) {
	path := h5test.WriteFloatFile(t, "b", []float64{1.0, 2.0})

	view, err := datafile.Open(path)
	require.NoError(t, err)

	// Valid before close.
	_, err = view.Get("b")
	require.NoError(t, err)

	require.NoError(t, view.Close())

	_, err = view.Get("b")
	assert.ErrorIs(t, err, datafile.ErrClosed)

	_, err = view.GetSlice("b", []uint64{0}, []uint64{1})
	assert.ErrorIs(t, err, datafile.ErrClosed)

	assert.Nil(t, view.Keys())
	assert.False(t, view.Has("b"))
}

func TestStationFileKeys(t *testing.T) {
	path := h5test.WriteStationFile(t)

	view, err := datafile.Open(path)
	require.NoError(t, err)
	defer view.Close()

	keys := view.Keys()
	assert.Equal(t, []string{
		"date",
		"images/aurora img",
		"images/date",
		"magnetic field",
		"pressure",
		"temperature",
	}, keys)

	assert.True(t, view.Has("pressure"))
	assert.True(t, view.Has("images/date"))
	// Groups are containers, not variables.
	assert.False(t, view.Has("images"))
}

func TestGetNestedDataset(t *testing.T) {
	path := h5test.WriteStationFile(t)

	view, err := datafile.Open(path)
	require.NoError(t, err)
	defer view.Close()

	v, err := view.Get("images/date")
	require.NoError(t, err)
	assert.True(t, v.IsString())
	assert.Equal(t, h5test.ImageDates, v.Strings)
}

func TestGetStringVariable(t *testing.T) {
	path := h5test.WriteStationFile(t)

	view, err := datafile.Open(path)
	require.NoError(t, err)
	defer view.Close()

	v, err := view.Get("date")
	require.NoError(t, err)
	assert.Equal(t, h5test.Dates, v.Strings)
	assert.Equal(t, len(h5test.Dates), v.Len())
}

func TestGetShapeAndAttrs(t *testing.T) {
	path := h5test.WriteStationFile(t)

	view, err := datafile.Open(path)
	require.NoError(t, err)
	defer view.Close()

	v, err := view.Get("magnetic field")
	require.NoError(t, err)
	assert.Equal(t, []uint64{4, 3}, v.Shape)
	assert.Equal(t, h5test.Field, v.Values)
	require.Contains(t, v.Attrs, "units")
	assert.Equal(t, "counts", v.Attrs["units"])

	p, err := view.Get("pressure")
	require.NoError(t, err)
	assert.Equal(t, []uint64{4}, p.Shape)
	assert.Equal(t, "hPa", p.Attrs["units"])
}

func TestGetSlice(t *testing.T) {
	path := h5test.WriteStationFile(t)

	view, err := datafile.Open(path)
	require.NoError(t, err)
	defer view.Close()

	// One image frame out of the stack.
	frame, err := view.GetSlice("images/aurora img",
		[]uint64{1, 0, 0, 0}, []uint64{1, 4, 4, 3})
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 4, 4, 3}, frame.Shape)
	require.Len(t, frame.Values, 4*4*3)
	// Frame 1 starts right after the 48 samples of frame 0.
	assert.Equal(t, float64(48%256), frame.Values[0])

	_, err = view.GetSlice("no such key", []uint64{0}, []uint64{1})
	assert.ErrorIs(t, err, datafile.ErrKeyNotFound)

	// Out-of-bounds selections are rejected.
	_, err = view.GetSlice("pressure", []uint64{2}, []uint64{10})
	assert.Error(t, err)
}
