// Package domain models Daymet gridded climate data and the spatial
// reduction of it over named sub-basin polygons.
//
// # Data Source
//
// Daymet (https://daymet.ornl.gov) distributes daily surface weather
// variables for North America on a 1 km grid, one NetCDF file per variable
// per year. Filenames encode the variable as the token before the first
// underscore and the year after it:
//
//	tmax_2010.nc, tmax_2011.nc, prcp_2010.nc, ...
//
// Files for the same variable share an identical grid layout across years,
// and the year in the filename sorts lexicographically into chronological
// order (zero-padded four-digit years).
//
// # Coordinate Conventions
//
// Daymet grids are published in a Lambert Conformal Conic projection
// (standard parallels 25°N and 60°N, origin 42.5°N / 100°W, WGS84 sphere)
// whose linear unit is meters, but the x and y coordinate values stored in
// the files are kilometers. Before any spatial operation the axes must be
// rescaled to meters and the projection attached; clipping against
// mismatched references silently produces wrong or empty results. See
// [DaymetProj4] and [ReconcileKilometers].
//
// # Time Conventions
//
// The time axis is daily, encoded as "days since" an epoch given in the
// axis units attribute. Daymet uses a 365-day calendar: leap-year December
// 31 is absent from the source files. No gaps are synthesized here; dates
// present in the output are exactly those present in the files.
//
// # Missing Values
//
// Cells outside the Daymet land mask carry the variable's _FillValue and
// are treated as NaN. The per-time-step spatial mean ignores NaN cells;
// a time step where every clipped cell is NaN yields NaN, which the CSV
// writer emits as an empty field. See [MaskedMean].
package domain
