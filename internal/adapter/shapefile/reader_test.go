package shapefile

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/ctessum/geom/proj"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basinworks/daymet-etl/internal/domain"
)

// wgs84WKT is the geographic WGS84 definition a typical .prj carries.
const wgs84WKT = `GEOGCS["GCS_WGS_1984",DATUM["D_WGS_1984",SPHEROID["WGS_1984",6378137.0,298.257223563]],PRIMEM["Greenwich",0.0],UNIT["Degree",0.0174532925199433]]`

type basinRow struct {
	geom.Polygon
	Subbasin string
}

// writeBasinShapefile encodes a two-feature lon/lat shapefile straddling
// the grid projection's origin (100°W, 42.5°N), plus its .prj sidecar.
func writeBasinShapefile(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "basins.shp")

	e, err := shp.NewEncoder(path, basinRow{})
	require.NoError(t, err)
	rows := []basinRow{
		{Polygon: lonLatRect(-100.05, 42.45, -99.95, 42.5), Subbasin: "Weber"},
		{Polygon: lonLatRect(-100.05, 42.5, -99.95, 42.55), Subbasin: "Bear River/Main"},
	}
	for _, row := range rows {
		require.NoError(t, e.Encode(row))
	}
	e.Close()

	prj := strings.TrimSuffix(path, ".shp") + ".prj"
	require.NoError(t, os.WriteFile(prj, []byte(wgs84WKT), 0o644))
	return path
}

func lonLatRect(x0, y0, x1, y1 float64) geom.Polygon {
	return geom.Polygon{{
		{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1},
	}}
}

func gridSR(t *testing.T) *proj.SR {
	t.Helper()
	sr, err := proj.Parse(domain.DaymetProj4)
	require.NoError(t, err)
	return sr
}

func TestLoad(t *testing.T) {
	path := writeBasinShapefile(t, t.TempDir())

	regions, err := Load(path, "Subbasin", gridSR(t), slog.Default())
	require.NoError(t, err)
	require.Len(t, regions, 2)
	assert.Equal(t, "Weber", regions[0].Name)
	assert.Equal(t, "Bear River/Main", regions[1].Name)

	// The features straddle the projection origin, so reprojected
	// coordinates are meters within a few kilometers of (0, 0) — not the
	// degree-scale source values.
	for _, r := range regions {
		b := r.Geom.Bounds()
		assert.Less(t, b.Min.X, -1000.0, r.Name)
		assert.Greater(t, b.Max.X, 1000.0, r.Name)
		assert.Greater(t, b.Min.X, -50000.0, r.Name)
		assert.Less(t, b.Max.X, 50000.0, r.Name)
		assert.Greater(t, b.Min.Y, -50000.0, r.Name)
		assert.Less(t, b.Max.Y, 50000.0, r.Name)
	}
	// Weber sits south of the origin latitude, Bear River/Main north of it.
	assert.Less(t, regions[0].Geom.Bounds().Min.Y, 0.0)
	assert.Greater(t, regions[1].Geom.Bounds().Max.Y, 0.0)
}

func TestLoad_MissingIDColumn(t *testing.T) {
	path := writeBasinShapefile(t, t.TempDir())

	_, err := Load(path, "Foo", gridSR(t), slog.Default())
	require.Error(t, err)

	var mce *MissingColumnError
	require.True(t, errors.As(err, &mce))
	assert.Equal(t, "Foo", mce.Column)
	assert.Contains(t, mce.Available, "Subbasin")
	assert.Contains(t, err.Error(), "Subbasin")
}

func TestLoad_NonPolygonGeometry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gauges.shp")

	type gaugeRow struct {
		geom.Point
		Subbasin string
	}
	e, err := shp.NewEncoder(path, gaugeRow{})
	require.NoError(t, err)
	require.NoError(t, e.Encode(gaugeRow{Point: geom.Point{X: -100, Y: 42.5}, Subbasin: "Weber"}))
	e.Close()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gauges.prj"), []byte(wgs84WKT), 0o644))

	_, err = Load(path, "Subbasin", gridSR(t), slog.Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want a polygon")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.shp"), "Subbasin", gridSR(t), slog.Default())
	assert.Error(t, err)
}

func TestCleanField(t *testing.T) {
	assert.Equal(t, "Bear River", cleanField("Bear River\x00\x00\x00"))
	assert.Equal(t, "Weber", cleanField("  Weber  "))
	assert.Equal(t, "Jordan", cleanField("*Jordan"))
	assert.Equal(t, "", cleanField("\x00 \x00"))
}

func TestMissingColumnError(t *testing.T) {
	err := &MissingColumnError{
		Column:    "Subbasin",
		Available: []string{"OBJECTID", "Name", "Area_km2"},
	}
	assert.Equal(t,
		`ID column "Subbasin" not found in shapefile; available columns are: OBJECTID, Name, Area_km2`,
		err.Error())
}
