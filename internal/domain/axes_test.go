package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconcileKilometers(t *testing.T) {
	t.Run("kilometer axes scale to meters", func(t *testing.T) {
		a := &GridAxes{
			X: []float64{-0.5, 0.5, 1.5}, XUnits: "km",
			Y: []float64{2, 1, 0}, YUnits: "km",
		}
		ReconcileKilometers(a)

		assert.Equal(t, []float64{-500, 500, 1500}, a.X)
		assert.Equal(t, []float64{2000, 1000, 0}, a.Y)
		assert.Equal(t, "m", a.XUnits)
		assert.Equal(t, "m", a.YUnits)

		// The native kilometer coordinate is recoverable by dividing back.
		assert.Equal(t, 1.5, a.X[2]/1000)
	})

	t.Run("meter axes are untouched", func(t *testing.T) {
		a := &GridAxes{
			X: []float64{500, 1500}, XUnits: "m",
			Y: []float64{1500, 500}, YUnits: "m",
		}
		ReconcileKilometers(a)
		assert.Equal(t, []float64{500, 1500}, a.X)
		assert.Equal(t, []float64{1500, 500}, a.Y)
	})

	t.Run("missing units are treated as kilometers", func(t *testing.T) {
		a := &GridAxes{X: []float64{1}, Y: []float64{1}}
		ReconcileKilometers(a)
		assert.Equal(t, []float64{1000}, a.X)
		assert.Equal(t, "m", a.XUnits)
	})
}
