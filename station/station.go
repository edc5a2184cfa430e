// Package station holds YooperNet station metadata: geographic location and
// the baseline magnetic field at the site.
package station

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Info describes one ground station. The baseline field components are in
// geographic coordinates, in nT.
type Info struct {
	Name string  `toml:"name"`
	Lat  float64 `toml:"lat"`
	Lon  float64 `toml:"lon"`
	BX0  float64 `toml:"bx0"`
	BY0  float64 `toml:"by0"`
	BZ0  float64 `toml:"bz0"`

	// BH is the horizontal field magnitude, B the total.
	BH float64 `toml:"bh"`
	B  float64 `toml:"b"`
}

// Default returns the metadata for the original YooperNet observatory.
func Default() *Info {
	return &Info{
		Name: "YooperNet",
		Lat:  42.397888888,
		Lon:  -83.93491666666667,
		BX0:  19179.0,
		BY0:  -2325.0,
		BZ0:  49177.0,
		BH:   19320.0,
		B:    52836.0,
	}
}

// Load reads station metadata from a TOML file. Fields absent from the file
// keep their Default values, so a station file only needs to list what
// differs from the original site.
func Load(path string) (*Info, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("problem reading station file %s: %w", path, err)
	}

	info := Default()
	if _, err := toml.Decode(string(raw), info); err != nil {
		return nil, fmt.Errorf("problem parsing station file %s: %w", path, err)
	}
	return info, nil
}
