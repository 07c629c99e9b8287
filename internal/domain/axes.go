package domain

// DaymetProj4 is the spatial reference of the Daymet grid: a Lambert
// Conformal Conic projection with standard parallels 25°N/60°N, origin
// 42.5°N 100°W, spherical WGS84 earth model, units meters, zero false
// easting/northing. It is parsed once at startup and injected; region
// geometries are reprojected into it before any clip.
const DaymetProj4 = "+proj=lcc +lat_1=25 +lat_2=60 +lat_0=42.5 +lon_0=-100 +x_0=0 +y_0=0 +ellps=WGS84 +units=m +no_defs"

// GridAxes holds the spatial coordinate axes of a loaded variable grid.
// X and Y are cell-center coordinates; units metadata travels with the
// values so the kilometer→meter reconciliation is observable.
type GridAxes struct {
	X, Y           []float64
	XUnits, YUnits string
}

// ReconcileKilometers rewrites kilometer axis values as meters in place and
// stamps the unit metadata accordingly. The native kilometer coordinates
// remain recoverable by dividing by 1000. Axes already in meters are left
// untouched.
func ReconcileKilometers(a *GridAxes) {
	if a.XUnits != "m" {
		scale(a.X)
		a.XUnits = "m"
	}
	if a.YUnits != "m" {
		scale(a.Y)
		a.YUnits = "m"
	}
}

func scale(vs []float64) {
	for i := range vs {
		vs[i] *= 1000
	}
}
