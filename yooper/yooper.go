// Package yooper loads YooperNet observatory data files.
//
// A station file holds timestamped magnetometer, pressure and temperature
// timeseries plus an all-sky image stack. Load reads the timeseries whole,
// converts the stored timestamps, and scales the raw magnetometer counts to
// nT; the image stack stays on disk and is read frame-by-frame on demand.
package yooper

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/spacecataz/YooperNet/datafile"
	"github.com/spacecataz/YooperNet/station"
)

// TimeLayout is the timestamp format used inside station files
// (e.g. "2024_03_01_06_00_00", always UTC).
const TimeLayout = "2006_01_02_15_04_05"

// DefaultCycleCount is the magnetometer cycle count stations run with
// unless configured otherwise.
const DefaultCycleCount = 200

// Dataset keys inside a station file.
const (
	keyTime        = "date"
	keyField       = "magnetic field"
	keyPressure    = "pressure"
	keyTemperature = "temperature"
	keyImageTime   = "images/date"
	keyImages      = "images/aurora img"
)

// Sensitivity returns the nT-per-count scaling factor for a magnetometer
// running at the given cycle count.
func Sensitivity(cycleCount int) float64 {
	return 1000.0 / (0.3671*float64(cycleCount) + 1.5)
}

// Data is one loaded station file.
type Data struct {
	Path       string
	Station    *station.Info
	CycleCount int

	// Time holds one timestamp per timeseries sample, ImageTime one per
	// all-sky frame.
	Time      []time.Time
	ImageTime []time.Time

	// B is the magnetic field in nT, row-major with Shape BShape
	// (samples x components). P and T are pressure and temperature as
	// stored.
	B      []float64
	BShape []uint64
	P      []float64
	T      []float64

	view       *datafile.View
	imageShape []uint64
}

// Option configures Load.
type Option func(*Data)

// WithCycleCount overrides the magnetometer cycle count used for the
// sensitivity scaling.
func WithCycleCount(n int) Option {
	return func(d *Data) { d.CycleCount = n }
}

// WithStation attaches non-default station metadata.
func WithStation(info *station.Info) Option {
	return func(d *Data) { d.Station = info }
}

// Load opens a station file and extracts its timeseries. The returned Data
// keeps the file open for frame reads; callers must Close it.
//
// Errors from the container layer keep their kind: a missing file surfaces
// datafile.ErrFileNotFound, a file missing a station dataset surfaces
// datafile.ErrKeyNotFound with the key named, and so on.
func Load(path string, opts ...Option) (*Data, error) {
	view, err := datafile.Open(path)
	if err != nil {
		return nil, err
	}

	d := &Data{
		Path:       path,
		Station:    station.Default(),
		CycleCount: DefaultCycleCount,
		view:       view,
	}
	for _, opt := range opts {
		opt(d)
	}

	if err := d.load(); err != nil {
		_ = view.Close()
		return nil, err
	}
	return d, nil
}

func (d *Data) load() error {
	var err error
	if d.Time, err = d.times(keyTime); err != nil {
		return err
	}
	if d.ImageTime, err = d.times(keyImageTime); err != nil {
		return err
	}

	field, err := d.view.Get(keyField)
	if err != nil {
		return err
	}
	d.B = field.Values
	d.BShape = field.Shape
	floats.Scale(Sensitivity(d.CycleCount), d.B)

	p, err := d.view.Get(keyPressure)
	if err != nil {
		return err
	}
	d.P = p.Values

	tv, err := d.view.Get(keyTemperature)
	if err != nil {
		return err
	}
	d.T = tv.Values

	// Locate the image stack but leave it on disk.
	infos, err := d.view.Describe()
	if err != nil {
		return err
	}
	for _, vi := range infos {
		if vi.Key == keyImages {
			d.imageShape = vi.Shape
			break
		}
	}
	if d.imageShape == nil {
		return fmt.Errorf("%w: %q in %s", datafile.ErrKeyNotFound, keyImages, d.Path)
	}
	return nil
}

func (d *Data) times(key string) ([]time.Time, error) {
	v, err := d.view.Get(key)
	if err != nil {
		return nil, err
	}
	if !v.IsString() {
		return nil, fmt.Errorf("variable %q is not a timestamp array", key)
	}

	out := make([]time.Time, len(v.Strings))
	for i, s := range v.Strings {
		ts, err := time.Parse(TimeLayout, s)
		if err != nil {
			return nil, fmt.Errorf("bad timestamp %q in %q: %w", s, key, err)
		}
		out[i] = ts
	}
	return out, nil
}

// NumImages returns the number of all-sky frames in the file.
func (d *Data) NumImages() int {
	if len(d.imageShape) == 0 {
		return 0
	}
	return int(d.imageShape[0])
}

// ImageShape returns the per-frame dimensions (height, width, channels).
func (d *Data) ImageShape() []uint64 {
	if len(d.imageShape) < 2 {
		return nil
	}
	shape := make([]uint64, len(d.imageShape)-1)
	copy(shape, d.imageShape[1:])
	return shape
}

// Image reads the all-sky frame corresponding to ImageTime[i]. The frame is
// returned row-major along with its dimensions.
func (d *Data) Image(i int) ([]float64, []uint64, error) {
	if i < 0 || i >= d.NumImages() {
		return nil, nil, fmt.Errorf("image index %d out of range [0, %d)", i, d.NumImages())
	}

	start := make([]uint64, len(d.imageShape))
	count := make([]uint64, len(d.imageShape))
	start[0] = uint64(i)
	count[0] = 1
	for dim := 1; dim < len(d.imageShape); dim++ {
		count[dim] = d.imageShape[dim]
	}

	frame, err := d.view.GetSlice(keyImages, start, count)
	if err != nil {
		return nil, nil, err
	}
	return frame.Values, d.ImageShape(), nil
}

// Close releases the underlying file view. Idempotent.
func (d *Data) Close() error {
	return d.view.Close()
}
