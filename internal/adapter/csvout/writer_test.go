package csvout

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basinworks/daymet-etl/internal/domain"
)

func TestWriteTable(t *testing.T) {
	dir := t.TempDir()
	d := func(day int) time.Time {
		return time.Date(2010, time.January, day, 12, 0, 0, 0, time.UTC)
	}
	table := &domain.TimeTable{
		Dates:     []time.Time{d(1), d(2), d(3)},
		Variables: []string{"prcp", "tmax"},
		Columns: map[string][]float64{
			"prcp": {0, 5.5, math.NaN()},
			"tmax": {-1.25, 10, 11},
		},
	}

	path, err := NewWriter(dir).WriteTable("Bear River/Main", table)
	require.NoError(t, err)
	assert.Equal(t, "Bear_River_Main_timeseries.csv", filepath.Base(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"time,prcp,tmax\n"+
			"2010-01-01,0,-1.25\n"+
			"2010-01-02,5.5,10\n"+
			"2010-01-03,,11\n",
		string(raw))
}

func TestWriteTable_MissingDirectory(t *testing.T) {
	w := NewWriter(filepath.Join(t.TempDir(), "nope"))
	_, err := w.WriteTable("Weber", &domain.TimeTable{Variables: []string{"tmax"}})
	assert.Error(t, err)
}
