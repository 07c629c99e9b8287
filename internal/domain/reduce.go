package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/ctessum/sparse"
	"gonum.org/v1/gonum/floats"
)

// MaskedMean computes the arithmetic mean of the masked-in cells of a
// single (ny, nx) time-step slab. NaN cells (fill values) are ignored; a
// slab whose touched cells are all NaN yields NaN rather than zero.
func MaskedMean(slab *sparse.DenseArray, mask *CellMask) (float64, error) {
	if len(slab.Shape) != 2 || slab.Shape[0] != mask.ny || slab.Shape[1] != mask.nx {
		return 0, fmt.Errorf("slab shape %v does not match mask layout (%d, %d)",
			slab.Shape, mask.ny, mask.nx)
	}
	vals := make([]float64, 0, mask.count)
	for j := 0; j < mask.ny; j++ {
		for i := 0; i < mask.nx; i++ {
			if !mask.Touched(j, i) {
				continue
			}
			if v := slab.Get(j, i); !math.IsNaN(v) {
				vals = append(vals, v)
			}
		}
	}
	if len(vals) == 0 {
		return math.NaN(), nil
	}
	return floats.Sum(vals) / float64(len(vals)), nil
}

// ClipAndReduce clips a loaded variable series to a region's geometry under
// the all-touched rule and reduces each time step to its spatial mean,
// preserving source time order. The series axes and region geometry must
// already share a spatial reference.
//
// Failures are classified per the two-tier model: an empty clip extent
// surfaces as ErrEmptyClip and anything else clip-related as a ClipError,
// both recoverable by skipping this variable for this region. Geometry
// library panics on degenerate input are converted to ClipErrors rather
// than aborting the run.
func ClipAndReduce(vs VariableSeries, region Region) (s *DailySeries, err error) {
	defer func() {
		if r := recover(); r != nil {
			s, err = nil, &ClipError{
				Region:   region.Name,
				Variable: vs.Variable(),
				Err:      fmt.Errorf("geometry operation panicked: %v", r),
			}
		}
	}()

	mask, err := ClipAllTouched(vs.Axes(), region.Geom)
	if err != nil {
		return nil, &ClipError{Region: region.Name, Variable: vs.Variable(), Err: err}
	}

	times := vs.Times()
	out := &DailySeries{
		Variable: vs.Variable(),
		Dates:    make([]time.Time, 0, len(times)),
		Values:   make([]float64, 0, len(times)),
	}
	err = vs.EachSlab(func(t time.Time, slab *sparse.DenseArray) error {
		v, err := MaskedMean(slab, mask)
		if err != nil {
			return err
		}
		out.Dates = append(out.Dates, t)
		out.Values = append(out.Values, v)
		return nil
	})
	if err != nil {
		return nil, &ClipError{Region: region.Name, Variable: vs.Variable(), Err: err}
	}
	return out, nil
}
