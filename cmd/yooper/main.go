// Command yooper inspects YooperNet station data files: listing the
// variables in a file, dumping one variable's samples, or summarizing a
// whole station file.
package main

import (
	"fmt"
	"math"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/spacecataz/YooperNet/datafile"
	"github.com/spacecataz/YooperNet/output"
	"github.com/spacecataz/YooperNet/station"
	"github.com/spacecataz/YooperNet/yooper"
)

var log = logrus.New()

var (
	keysFormat string
	dumpFormat string
	dumpLimit  int

	stationFile string
	cycleCount  int
)

var rootCmd = &cobra.Command{
	Use:           "yooper",
	Short:         "Inspect YooperNet station data files",
	Long:          "Read HDF5 data files produced by YooperNet ground stations.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var keysCmd = &cobra.Command{
	Use:   "keys <file.h5>",
	Short: "List the variables in a station file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runKeys(args[0], keysFormat)
	},
}

var dumpCmd = &cobra.Command{
	Use:   "dump <file.h5> <key>",
	Short: "Dump one variable's samples",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDump(args[0], args[1], dumpFormat, dumpLimit)
	},
}

var infoCmd = &cobra.Command{
	Use:   "info <file.h5>",
	Short: "Summarize a station file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInfo(args[0], stationFile, cycleCount)
	},
}

func init() {
	keysCmd.Flags().StringVarP(&keysFormat, "format", "f", "table",
		"Output format: table, jsonl, csv")
	dumpCmd.Flags().StringVarP(&dumpFormat, "format", "f", "jsonl",
		"Output format: jsonl, csv, table")
	dumpCmd.Flags().IntVar(&dumpLimit, "limit", 0,
		"Limit number of samples (0 = unlimited)")
	infoCmd.Flags().StringVar(&stationFile, "station", "",
		"Station metadata file (TOML); defaults to the built-in station")
	infoCmd.Flags().IntVar(&cycleCount, "cycle-count", yooper.DefaultCycleCount,
		"Magnetometer cycle count used for sensitivity scaling")

	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(infoCmd)
}

func main() {
	log.SetOutput(os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func newFormatter(format string) (output.Formatter, error) {
	switch format {
	case "jsonl", "json":
		return output.NewJSONFormatter(os.Stdout), nil
	case "csv":
		return output.NewCSVFormatter(os.Stdout), nil
	case "table":
		return output.NewTableFormatter(os.Stdout), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want jsonl, csv or table)", format)
	}
}

func runKeys(path, format string) error {
	formatter, err := newFormatter(format)
	if err != nil {
		return err
	}

	view, err := datafile.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		if err := view.Close(); err != nil {
			log.Warnf("closing %s: %v", path, err)
		}
	}()

	infos, err := view.Describe()
	if err != nil {
		return err
	}

	rows := make([]map[string]interface{}, len(infos))
	for i, vi := range infos {
		rows[i] = map[string]interface{}{
			"key":     vi.Key,
			"type":    vi.Type,
			"shape":   fmt.Sprintf("%v", vi.Shape),
			"samples": vi.Samples,
		}
	}
	return formatter.Format(rows)
}

func runDump(path, key, format string, limit int) error {
	if limit < 0 {
		return fmt.Errorf("--limit must be non-negative, got %d", limit)
	}
	formatter, err := newFormatter(format)
	if err != nil {
		return err
	}

	view, err := datafile.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		if err := view.Close(); err != nil {
			log.Warnf("closing %s: %v", path, err)
		}
	}()

	v, err := view.Get(key)
	if err != nil {
		return err
	}

	rows := output.VariableRows(v)
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return formatter.Format(rows)
}

func runInfo(path, stationPath string, cycles int) error {
	opts := []yooper.Option{yooper.WithCycleCount(cycles)}
	if stationPath != "" {
		info, err := station.Load(stationPath)
		if err != nil {
			return err
		}
		opts = append(opts, yooper.WithStation(info))
	}

	d, err := yooper.Load(path, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if err := d.Close(); err != nil {
			log.Warnf("closing %s: %v", path, err)
		}
	}()

	fmt.Printf("File:        %s\n", d.Path)
	fmt.Printf("Station:     %s (%.4f, %.4f)\n", d.Station.Name, d.Station.Lat, d.Station.Lon)
	fmt.Printf("Cycle count: %d (sensitivity %.4f nT/count)\n",
		d.CycleCount, yooper.Sensitivity(d.CycleCount))
	fmt.Printf("Samples:     %d\n", len(d.Time))
	if len(d.Time) > 0 {
		fmt.Printf("Coverage:    %s to %s\n",
			d.Time[0].Format("2006-01-02 15:04:05"),
			d.Time[len(d.Time)-1].Format("2006-01-02 15:04:05"))
	}
	if len(d.P) > 0 {
		fmt.Printf("Pressure:    %.2f to %.2f\n", floats.Min(d.P), floats.Max(d.P))
	}
	if len(d.T) > 0 {
		fmt.Printf("Temperature: %.2f to %.2f\n", floats.Min(d.T), floats.Max(d.T))
	}
	if mags := fieldMagnitudes(d); len(mags) > 0 {
		fmt.Printf("|B|:         %.1f to %.1f nT\n", floats.Min(mags), floats.Max(mags))
	}
	fmt.Printf("Images:      %d frames of %v\n", d.NumImages(), d.ImageShape())
	return nil
}

// fieldMagnitudes computes per-sample |B| from the row-major field array.
func fieldMagnitudes(d *yooper.Data) []float64 {
	if len(d.BShape) != 2 || d.BShape[1] == 0 {
		return nil
	}
	ncomp := int(d.BShape[1])
	mags := make([]float64, 0, len(d.B)/ncomp)
	for i := 0; i+ncomp <= len(d.B); i += ncomp {
		var sum float64
		for c := 0; c < ncomp; c++ {
			sum += d.B[i+c] * d.B[i+c]
		}
		mags = append(mags, math.Sqrt(sum))
	}
	return mags
}
