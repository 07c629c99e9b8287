package domain

import (
	"errors"
	"math"

	"github.com/ctessum/geom"
)

// CellMask records which grid cells of a (ny, nx) layout touch a region
// geometry, along with the number of distinct rows and columns that remain
// after dropping all-empty axes.
type CellMask struct {
	ny, nx   int
	cells    []bool // row-major [y][x]
	count    int
	rowsKept int
	colsKept int
}

// Touched reports whether cell (j, i) intersects the clip geometry.
func (m *CellMask) Touched(j, i int) bool { return m.cells[j*m.nx+i] }

// Count returns the total number of touched cells.
func (m *CellMask) Count() int { return m.count }

// Extent returns the number of distinct rows and columns containing at
// least one touched cell.
func (m *CellMask) Extent() (rows, cols int) { return m.rowsKept, m.colsKept }

// cellSpacing returns the size of the grid cell at index i given the cell
// center coordinates. Edge cells use the spacing to their single neighbor.
func cellSpacing(centers []float64, i int) float64 {
	if i == 0 {
		return centers[1] - centers[0]
	}
	if i == len(centers)-1 {
		return centers[len(centers)-1] - centers[len(centers)-2]
	}
	return (centers[i+1] - centers[i-1]) / 2
}

// ClipAllTouched masks the grid described by axes to the cells whose area
// intersects g at all, not just cells whose center falls inside it. The
// axes must already be reconciled into the same spatial reference as g.
// A single-row or single-column axis carries no spacing information of its
// own; cells are assumed square and sized by the other axis.
// Returns ErrEmptyClip (wrapped) when no cells remain on either axis.
func ClipAllTouched(axes *GridAxes, g geom.Polygonal) (*CellMask, error) {
	if g == nil {
		return nil, errors.New("nil region geometry")
	}
	nx, ny := len(axes.X), len(axes.Y)
	if nx == 0 || ny == 0 {
		return nil, errors.New("grid has an empty spatial axis")
	}
	if nx < 2 && ny < 2 {
		return nil, errors.New("cannot determine cell size from a single-cell grid")
	}
	var fallback float64
	if nx >= 2 {
		fallback = math.Abs(cellSpacing(axes.X, 0))
	} else {
		fallback = math.Abs(cellSpacing(axes.Y, 0))
	}

	gb := g.Bounds()
	m := &CellMask{ny: ny, nx: nx, cells: make([]bool, ny*nx)}
	rowHit := make([]bool, ny)
	colHit := make([]bool, nx)

	for j, y := range axes.Y {
		dy := fallback / 2
		if ny >= 2 {
			dy = math.Abs(cellSpacing(axes.Y, j)) / 2
		}
		if y+dy < gb.Min.Y || y-dy > gb.Max.Y {
			continue
		}
		for i, x := range axes.X {
			dx := fallback / 2
			if nx >= 2 {
				dx = math.Abs(cellSpacing(axes.X, i)) / 2
			}
			if x+dx < gb.Min.X || x-dx > gb.Max.X {
				continue
			}
			cell := &geom.Bounds{
				Min: geom.Point{X: x - dx, Y: y - dy},
				Max: geom.Point{X: x + dx, Y: y + dy},
			}
			isect := g.Intersection(cell)
			if isect == nil || isect.Area() == 0 {
				continue
			}
			m.cells[j*nx+i] = true
			m.count++
			rowHit[j] = true
			colHit[i] = true
		}
	}

	for _, hit := range rowHit {
		if hit {
			m.rowsKept++
		}
	}
	for _, hit := range colHit {
		if hit {
			m.colsKept++
		}
	}
	if m.rowsKept == 0 || m.colsKept == 0 {
		return nil, ErrEmptyClip
	}
	return m, nil
}
