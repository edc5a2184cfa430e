// Package h5test writes small HDF5 fixture files for tests, using the same
// scigolib/hdf5 library the rest of the module reads with.
package h5test

import (
	"path/filepath"
	"testing"

	"github.com/scigolib/hdf5"
	"github.com/stretchr/testify/require"
)

// Canonical contents of the station fixture written by WriteStationFile.
// Shapes follow the real station layout: one timestamp per sample row,
// magnetic field as N x 3 (x, y, z), and a small all-sky image stack.
var (
	Dates = []string{
		"2024_03_01_06_00_00",
		"2024_03_01_06_00_01",
		"2024_03_01_06_00_02",
		"2024_03_01_06_00_03",
	}

	// Raw magnetometer counts, before sensitivity scaling. 4 rows x 3 components.
	Field = []float64{
		1400.0, -170.0, 3590.0,
		1401.5, -169.5, 3591.0,
		1399.0, -171.0, 3589.5,
		1402.0, -170.5, 3590.5,
	}

	Pressure    = []float64{982.1, 982.2, 982.0, 981.9}
	Temperature = []float64{-4.5, -4.4, -4.6, -4.5}

	ImageDates = []string{
		"2024_03_01_06_00_00",
		"2024_03_01_06_00_02",
	}

	// 2 frames, 4x4 pixels, 3 channels.
	ImageDims = []uint64{2, 4, 4, 3}
)

// dateStringSize fits the station time format plus a NUL terminator.
const dateStringSize = 20

// WriteStationFile writes a complete station-shaped fixture into a temp
// directory and returns its path.
func WriteStationFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "station.h5")

	fw, err := hdf5.CreateForWrite(path, hdf5.CreateTruncate)
	require.NoError(t, err)

	writeStrings(t, fw, "/date", Dates)

	field := writeFloats(t, fw, "/magnetic field", []uint64{4, 3}, Field)
	require.NoError(t, field.WriteAttribute("units", "counts"))

	pressure := writeFloats(t, fw, "/pressure", []uint64{4}, Pressure)
	require.NoError(t, pressure.WriteAttribute("units", "hPa"))

	temperature := writeFloats(t, fw, "/temperature", []uint64{4}, Temperature)
	require.NoError(t, temperature.WriteAttribute("units", "C"))

	_, err = fw.CreateGroup("/images")
	require.NoError(t, err)
	writeStrings(t, fw, "/images/date", ImageDates)

	images := make([]float64, ImageDims[0]*ImageDims[1]*ImageDims[2]*ImageDims[3])
	for i := range images {
		images[i] = float64(i % 256)
	}
	writeFloats(t, fw, "/images/aurora img", ImageDims, images)

	require.NoError(t, fw.Close())
	return path
}

// WriteFloatFile writes a fixture holding a single 1-D float64 variable.
func WriteFloatFile(t *testing.T, name string, values []float64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.h5")

	fw, err := hdf5.CreateForWrite(path, hdf5.CreateTruncate)
	require.NoError(t, err)
	writeFloats(t, fw, "/"+name, []uint64{uint64(len(values))}, values)
	require.NoError(t, fw.Close())
	return path
}

// WriteEmptyFile writes a valid container with no variables at all.
func WriteEmptyFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "empty.h5")

	fw, err := hdf5.CreateForWrite(path, hdf5.CreateTruncate)
	require.NoError(t, err)
	require.NoError(t, fw.Close())
	return path
}

func writeFloats(t *testing.T, fw *hdf5.FileWriter, name string, dims []uint64, values []float64) *hdf5.DatasetWriter {
	t.Helper()
	dw, err := fw.CreateDataset(name, hdf5.Float64, dims)
	require.NoError(t, err)
	require.NoError(t, dw.Write(values))
	return dw
}

func writeStrings(t *testing.T, fw *hdf5.FileWriter, name string, values []string) {
	t.Helper()
	dw, err := fw.CreateDataset(name, hdf5.String, []uint64{uint64(len(values))},
		hdf5.WithStringSize(dateStringSize))
	require.NoError(t, err)
	require.NoError(t, dw.Write(values))
}
