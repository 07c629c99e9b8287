// Package netcdf reads Daymet-style NetCDF raster archives: one file per
// variable per year, discovered by filename convention and opened as lazy
// multi-file time series.
package netcdf

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"

	"github.com/basinworks/daymet-etl/internal/domain"
)

// dataset is a single open archive file for one variable.
type dataset struct {
	path string
	f    *os.File
	nc   *cdf.File

	variable string
	nt       int
	ny       int
	nx       int
}

// openDataset opens one archive file and validates that it contains the
// variable on (time, y, x) axes. A file missing those axes is malformed
// and fails the whole variable; there are no retries.
func openDataset(path, variable string) (*dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	nc, err := cdf.Open(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	d := &dataset{path: path, f: f, nc: nc, variable: variable}
	if err := d.validate(); err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

func (d *dataset) validate() error {
	var found bool
	for _, v := range d.nc.Header.Variables() {
		if v == d.variable {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("variable %q not in file (has: %s)",
			d.variable, strings.Join(d.nc.Header.Variables(), ", "))
	}

	dims := d.nc.Header.Dimensions(d.variable)
	if len(dims) != 3 || dims[0] != "time" || dims[1] != "y" || dims[2] != "x" {
		return fmt.Errorf("variable %q has dimensions %v, want [time y x]", d.variable, dims)
	}
	lengths := d.nc.Header.Lengths(d.variable)
	d.nt, d.ny, d.nx = lengths[0], lengths[1], lengths[2]
	return nil
}

func (d *dataset) Close() error { return d.f.Close() }

// axes reads the x and y coordinate values and their unit metadata. The
// values are returned as stored (Daymet: kilometers); reconciliation to
// meters happens once at the series level.
func (d *dataset) axes() (*domain.GridAxes, error) {
	x, err := d.readFloats("x")
	if err != nil {
		return nil, err
	}
	y, err := d.readFloats("y")
	if err != nil {
		return nil, err
	}
	return &domain.GridAxes{
		X: x, Y: y,
		XUnits: d.attrString("x", "units"),
		YUnits: d.attrString("y", "units"),
	}, nil
}

// times decodes the time axis using its "days since" units attribute.
func (d *dataset) times() ([]time.Time, error) {
	vals, err := d.readFloats("time")
	if err != nil {
		return nil, err
	}
	units := d.attrString("time", "units")
	base, err := parseTimeUnits(units)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.path, err)
	}
	ts := make([]time.Time, len(vals))
	for i, v := range vals {
		ts[i] = base.Add(time.Duration(v * 24 * float64(time.Hour)))
	}
	return ts, nil
}

// parseTimeUnits parses a CF-style "days since <epoch>" units string.
func parseTimeUnits(units string) (time.Time, error) {
	const prefix = "days since "
	if !strings.HasPrefix(units, prefix) {
		return time.Time{}, fmt.Errorf("unsupported time units %q", units)
	}
	epoch := strings.TrimSpace(strings.TrimPrefix(units, prefix))
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02T15:04:05Z", "2006-01-02"} {
		if t, err := time.Parse(layout, epoch); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable time epoch %q", epoch)
}

// slab reads the (ny, nx) hyperslab for one time step, converting fill
// values to NaN. One slab is the most data ever held for a file. The end
// corner is the inclusive index of the last element read.
func (d *dataset) slab(t int) (*sparse.DenseArray, error) {
	r := d.nc.Reader(d.variable, []int{t, 0, 0}, []int{t, d.ny - 1, d.nx - 1})
	buf := r.Zero(-1)
	if _, err := r.Read(buf); err != nil {
		return nil, fmt.Errorf("%s: reading %s[%d]: %w", d.path, d.variable, t, err)
	}
	vals, err := toFloat64s(buf)
	if err != nil {
		return nil, fmt.Errorf("%s: variable %s: %w", d.path, d.variable, err)
	}
	if len(vals) != d.ny*d.nx {
		return nil, fmt.Errorf("%s: %s[%d]: got %d values, want %d",
			d.path, d.variable, t, len(vals), d.ny*d.nx)
	}

	if fill, ok := d.fillValue(); ok {
		for i, v := range vals {
			if v == fill {
				vals[i] = math.NaN()
			}
		}
	}

	arr := sparse.ZerosDense(d.ny, d.nx)
	copy(arr.Elements, vals)
	return arr, nil
}

// fillValue returns the variable's _FillValue or missing_value attribute.
func (d *dataset) fillValue() (float64, bool) {
	for _, name := range []string{"_FillValue", "missing_value"} {
		switch a := d.nc.Header.GetAttribute(d.variable, name).(type) {
		case []float32:
			if len(a) > 0 {
				return float64(a[0]), true
			}
		case []float64:
			if len(a) > 0 {
				return a[0], true
			}
		}
	}
	return 0, false
}

// readFloats reads a whole floating-point variable, e.g. a coordinate axis.
func (d *dataset) readFloats(name string) ([]float64, error) {
	var found bool
	for _, v := range d.nc.Header.Variables() {
		if v == name {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%s: missing coordinate axis %q", d.path, name)
	}
	r := d.nc.Reader(name, nil, nil)
	buf := r.Zero(-1)
	if _, err := r.Read(buf); err != nil {
		return nil, fmt.Errorf("%s: reading %s: %w", d.path, name, err)
	}
	vals, err := toFloat64s(buf)
	if err != nil {
		return nil, fmt.Errorf("%s: axis %s: %w", d.path, name, err)
	}
	return vals, nil
}

func (d *dataset) attrString(v, name string) string {
	if s, ok := d.nc.Header.GetAttribute(v, name).(string); ok {
		return s
	}
	return ""
}

func toFloat64s(buf interface{}) ([]float64, error) {
	switch b := buf.(type) {
	case []float64:
		return b, nil
	case []float32:
		out := make([]float64, len(b))
		for i, v := range b {
			out[i] = float64(v)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", buf)
	}
}
