package domain

import (
	"time"

	"github.com/ctessum/sparse"
)

// VariableSeries is one variable's full time range, opened as a single
// virtual time-ordered grid across archive files. Axes are reconciled
// (meters, grid spatial reference) on open; data values are read lazily,
// one time-step slab at a time, never all files at once.
type VariableSeries interface {
	Variable() string
	Axes() *GridAxes
	// Times returns all time steps across the series' files, in source order.
	Times() []time.Time
	// EachSlab calls fn once per time step, in source order, with a
	// (ny, nx) slab of values where fill values appear as NaN. Reads are
	// single-threaded and synchronous by design; parallel raster reads
	// were found to crash on some filesystem configurations.
	EachSlab(fn func(t time.Time, slab *sparse.DenseArray) error) error
	Close() error
}

// SeriesSource discovers and opens variable series from a raster archive.
// The only implementation today reads a local directory of NetCDF files;
// the seam exists so remote or object-store archives can slot in.
type SeriesSource interface {
	// Variables returns the sorted distinct variable identifiers present
	// in the archive. An archive with no files yields an empty slice and
	// no error; callers treat that as "no data, skip".
	Variables() ([]string, error)
	Open(variable string) (VariableSeries, error)
}
