package domain

import (
	"strings"

	"github.com/ctessum/geom"
)

// Region is a named sub-basin polygon, already reprojected into the grid's
// spatial reference by the vector reader. Immutable after load.
type Region struct {
	Name string
	Geom geom.Polygonal
}

// SanitizeName rewrites a region name into a filesystem-safe token,
// replacing spaces and slashes with underscores.
// "Bear River/Main" → "Bear_River_Main".
func SanitizeName(name string) string {
	r := strings.NewReplacer(" ", "_", "/", "_")
	return r.Replace(name)
}

// OutputFileName returns the per-region CSV filename for a region name.
func OutputFileName(name string) string {
	return SanitizeName(name) + "_timeseries.csv"
}
