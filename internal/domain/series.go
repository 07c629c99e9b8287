package domain

import (
	"math"
	"sort"
	"time"
)

// DateFormat is the date index format used in output tables.
const DateFormat = "2006-01-02"

// DailySeries is one variable's (date → spatial mean) column, ordered by
// date ascending. NaN values mark days where every clipped cell was missing.
type DailySeries struct {
	Variable string
	Dates    []time.Time
	Values   []float64
}

// TimeTable is the per-region concatenation of all successfully reduced
// variable series, indexed by date. Only variables that produced a series
// appear as columns; failed variables are absent, never null-filled.
type TimeTable struct {
	Dates     []time.Time
	Variables []string
	Columns   map[string][]float64
}

// Empty reports whether the table has no columns.
func (t *TimeTable) Empty() bool { return t == nil || len(t.Variables) == 0 }

// ConcatSeries aligns the given series on the union of their dates,
// ascending, and returns them as one table. A variable with no value for a
// date another variable covers gets NaN for that date; no dates are
// synthesized beyond the union of what the sources contain.
func ConcatSeries(series []DailySeries) *TimeTable {
	t := &TimeTable{Columns: make(map[string][]float64, len(series))}
	if len(series) == 0 {
		return t
	}

	seen := make(map[int64]struct{})
	for _, s := range series {
		for _, d := range s.Dates {
			seen[d.UTC().Unix()] = struct{}{}
		}
	}
	stamps := make([]int64, 0, len(seen))
	for u := range seen {
		stamps = append(stamps, u)
	}
	sort.Slice(stamps, func(i, j int) bool { return stamps[i] < stamps[j] })

	index := make(map[int64]int, len(stamps))
	t.Dates = make([]time.Time, len(stamps))
	for i, u := range stamps {
		index[u] = i
		t.Dates[i] = time.Unix(u, 0).UTC()
	}

	for _, s := range series {
		col := make([]float64, len(stamps))
		for i := range col {
			col[i] = math.NaN()
		}
		for i, d := range s.Dates {
			col[index[d.UTC().Unix()]] = s.Values[i]
		}
		t.Variables = append(t.Variables, s.Variable)
		t.Columns[s.Variable] = col
	}
	return t
}
