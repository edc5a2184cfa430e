package yooper_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacecataz/YooperNet/datafile"
	"github.com/spacecataz/YooperNet/internal/h5test"
	"github.com/spacecataz/YooperNet/station"
	"github.com/spacecataz/YooperNet/yooper"
)

func TestSensitivity(t *testing.T) {
	// Default cycle count: 1000 / (0.3671*200 + 1.5).
	assert.InDelta(t, 1000.0/74.92, yooper.Sensitivity(200), 1e-12)
	assert.InDelta(t, 1000.0/38.21, yooper.Sensitivity(100), 1e-12)
}

func TestLoadStationFile(t *testing.T) {
	path := h5test.WriteStationFile(t)

	d, err := yooper.Load(path)
	require.NoError(t, err)
	defer d.Close()

	// Timestamps converted from the stored strings, UTC.
	require.Len(t, d.Time, len(h5test.Dates))
	want := time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC)
	assert.Equal(t, want, d.Time[0])
	assert.Equal(t, want.Add(3*time.Second), d.Time[3])

	require.Len(t, d.ImageTime, len(h5test.ImageDates))
	assert.Equal(t, want.Add(2*time.Second), d.ImageTime[1])

	// Field scaled from counts to nT at the default cycle count.
	s := yooper.Sensitivity(yooper.DefaultCycleCount)
	require.Len(t, d.B, len(h5test.Field))
	assert.Equal(t, []uint64{4, 3}, d.BShape)
	assert.InDelta(t, h5test.Field[0]*s, d.B[0], 1e-9)
	assert.InDelta(t, h5test.Field[11]*s, d.B[11], 1e-9)

	// Pressure and temperature pass through unscaled.
	assert.Equal(t, h5test.Pressure, d.P)
	assert.Equal(t, h5test.Temperature, d.T)

	// Default station metadata attached.
	assert.Equal(t, "YooperNet", d.Station.Name)
	assert.Equal(t, yooper.DefaultCycleCount, d.CycleCount)
}

func TestLoadWithOptions(t *testing.T) {
	path := h5test.WriteStationFile(t)

	info := station.Default()
	info.Name = "Marquette"

	d, err := yooper.Load(path,
		yooper.WithCycleCount(100),
		yooper.WithStation(info))
	require.NoError(t, err)
	defer d.Close()

	assert.Equal(t, 100, d.CycleCount)
	assert.Equal(t, "Marquette", d.Station.Name)

	s := yooper.Sensitivity(100)
	assert.InDelta(t, h5test.Field[0]*s, d.B[0], 1e-9)
}

func TestImages(t *testing.T) {
	path := h5test.WriteStationFile(t)

	d, err := yooper.Load(path)
	require.NoError(t, err)
	defer d.Close()

	assert.Equal(t, 2, d.NumImages())
	assert.Equal(t, []uint64{4, 4, 3}, d.ImageShape())

	frame, shape, err := d.Image(1)
	require.NoError(t, err)
	assert.Equal(t, []uint64{4, 4, 3}, shape)
	require.Len(t, frame, 4*4*3)
	assert.Equal(t, float64(48%256), frame[0])

	_, _, err = d.Image(2)
	assert.Error(t, err)
	_, _, err = d.Image(-1)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := yooper.Load(filepath.Join(t.TempDir(), "absent.h5"))
	require.Error(t, err)
	assert.ErrorIs(t, err, datafile.ErrFileNotFound)
}

func TestLoadMissingDataset(t *testing.T) {
	// A valid container that is not a station file.
	path := h5test.WriteFloatFile(t, "b", []float64{1.0, 2.0, 3.0})

	_, err := yooper.Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, datafile.ErrKeyNotFound)
}

func TestCloseIdempotent(t *testing.T) {
	path := h5test.WriteStationFile(t)

	d, err := yooper.Load(path)
	require.NoError(t, err)

	require.NoError(t, d.Close())
	require.NoError(t, d.Close())

	_, _, err = d.Image(0)
	assert.ErrorIs(t, err, datafile.ErrClosed)
}
