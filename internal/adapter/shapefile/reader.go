// Package shapefile loads sub-basin polygons from an ESRI shapefile and
// reprojects them into the raster grid's spatial reference.
package shapefile

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/ctessum/geom/proj"

	"github.com/basinworks/daymet-etl/internal/domain"
)

// MissingColumnError reports a configured ID column that the shapefile's
// attribute table does not have. It carries the available column names so
// the operator can pick a valid one.
type MissingColumnError struct {
	Column    string
	Available []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("ID column %q not found in shapefile; available columns are: %s",
		e.Column, strings.Join(e.Available, ", "))
}

// Load reads every feature from the shapefile, takes its name from
// idColumn, and reprojects its polygon into target. Reprojection must
// happen before any clip; clipping against a mismatched spatial reference
// produces geometrically wrong or empty results.
func Load(path, idColumn string, target *proj.SR, logger *slog.Logger) ([]domain.Region, error) {
	dec, err := shp.NewDecoder(path)
	if err != nil {
		return nil, fmt.Errorf("opening shapefile %s: %w", path, err)
	}
	defer dec.Close()

	cols := columnNames(dec)
	if !contains(cols, idColumn) {
		return nil, &MissingColumnError{Column: idColumn, Available: cols}
	}

	srcSR, err := dec.SR()
	if err != nil {
		return nil, fmt.Errorf("reading shapefile spatial reference: %w", err)
	}
	logger.Info("reprojecting shapefile into grid spatial reference",
		"source_projection", srcSR.Name)
	trans, err := srcSR.NewTransform(target)
	if err != nil {
		return nil, fmt.Errorf("building shapefile reprojection: %w", err)
	}

	var regions []domain.Region
	for {
		g, fields, more := dec.DecodeRowFields(idColumn)
		if !more {
			break
		}
		name := cleanField(fields[idColumn])
		gg, err := g.Transform(trans)
		if err != nil {
			return nil, fmt.Errorf("reprojecting region %q: %w", name, err)
		}
		poly, ok := gg.(geom.Polygonal)
		if !ok {
			return nil, fmt.Errorf("region %q: geometry is %T, want a polygon", name, gg)
		}
		regions = append(regions, domain.Region{Name: name, Geom: poly})
	}
	if err := dec.Error(); err != nil {
		return nil, fmt.Errorf("decoding shapefile %s: %w", path, err)
	}
	return regions, nil
}

func columnNames(dec *shp.Decoder) []string {
	fields := dec.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.String()
	}
	return names
}

func contains(ss []string, want string) bool {
	for _, s := range ss {
		if s == want {
			return true
		}
	}
	return false
}

// cleanField strips DBF padding from an attribute value.
func cleanField(s string) string {
	return strings.Trim(s, "\x00* ")
}
