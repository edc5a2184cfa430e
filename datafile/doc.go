// Package datafile provides read-only, key-addressable access to the HDF5
// container files produced by YooperNet ground stations.
//
// It uses the scigolib/hdf5 library for the underlying file format and returns
// variables by string key for flexible data access.
//
// # Basic Usage
//
// Reading a variable from a station file:
//
//	view, err := datafile.Open("2024_03_01_station.h5")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer view.Close()
//
//	v, err := view.Get("pressure")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, sample := range v.Values {
//	    fmt.Println(sample)
//	}
//
// # Keys
//
// Keys are exact-match, case-sensitive dataset paths relative to the root
// group, without a leading slash. Datasets nested in groups are addressed
// with slash-separated paths:
//
//	view.Get("pressure")
//	view.Get("images/date")
//
// Only datasets are addressable; groups are containers, not values.
//
// # Errors
//
// All failures are distinguishable with errors.Is against the package
// sentinels:
//
//	v, err := view.Get("presure")
//	if errors.Is(err, datafile.ErrKeyNotFound) {
//	    // typo, retry with a different key
//	}
//
// # Resource Management
//
// Always call Close() when done reading to release the file handle. It is
// safe to call Close multiple times. A View is a single-consumer object;
// concurrent use must be serialized by the caller.
package datafile
