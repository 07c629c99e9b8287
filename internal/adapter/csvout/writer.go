// Package csvout writes per-region time tables as CSV files.
package csvout

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/basinworks/daymet-etl/internal/domain"
)

// Writer emits one {region}_timeseries.csv per region into its directory.
type Writer struct {
	dir string
}

// NewWriter creates a Writer. The directory must already exist.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// WriteTable writes a region's table and returns the path written. Rows
// are ordered by date ascending with a "time" index column followed by one
// column per variable; NaN values become empty fields.
func (w *Writer) WriteTable(region string, table *domain.TimeTable) (string, error) {
	path := filepath.Join(w.dir, domain.OutputFileName(region))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	header := append([]string{"time"}, table.Variables...)
	if err := cw.Write(header); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}

	row := make([]string, len(header))
	for i, date := range table.Dates {
		row[0] = date.Format(domain.DateFormat)
		for c, v := range table.Variables {
			row[c+1] = formatValue(table.Columns[v][i])
		}
		if err := cw.Write(row); err != nil {
			return "", fmt.Errorf("writing %s: %w", path, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}
	return path, nil
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
