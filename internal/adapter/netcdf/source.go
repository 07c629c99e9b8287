package netcdf

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ctessum/sparse"

	"github.com/basinworks/daymet-etl/internal/domain"
)

// Separator splits the variable identifier from the rest of an archive
// filename: everything before the first occurrence is the identifier.
const Separator = "_"

// DirectorySource implements domain.SeriesSource over a local directory of
// archive files.
type DirectorySource struct {
	dir    string
	logger *slog.Logger
}

// NewDirectorySource creates a source over the given archive directory.
func NewDirectorySource(dir string, logger *slog.Logger) *DirectorySource {
	return &DirectorySource{dir: dir, logger: logger}
}

// Variables scans the archive directory and returns the sorted distinct
// variable identifiers, inferred as the filename token before the first
// separator. A directory with no matching files yields an empty slice,
// not an error.
func (s *DirectorySource) Variables() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("scanning archive directory: %w", err)
	}
	seen := make(map[string]struct{})
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".nc") {
			continue
		}
		stem, _, found := strings.Cut(e.Name(), Separator)
		if !found {
			continue
		}
		seen[stem] = struct{}{}
	}
	vars := make([]string, 0, len(seen))
	for v := range seen {
		vars = append(vars, v)
	}
	sort.Strings(vars)
	return vars, nil
}

// Open locates all files belonging to the variable, validates their year
// ordering and grid layout, and returns them as one virtual time-ordered
// series. Only coordinate axes are read here; data values are read one
// time-step slab at a time during reduction.
func (s *DirectorySource) Open(variable string) (domain.VariableSeries, error) {
	paths, err := filepath.Glob(filepath.Join(s.dir, variable+Separator+"*.nc"))
	if err != nil {
		return nil, fmt.Errorf("matching files for %s: %w", variable, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoFiles, variable)
	}
	// Lexicographic order must equal chronological order; the parsed-year
	// check below turns a violation into a named error instead of a
	// silently scrambled series.
	sort.Strings(paths)
	if err := validateYearOrder(paths); err != nil {
		return nil, fmt.Errorf("variable %s: %w", variable, err)
	}

	ser := &series{variable: variable}
	for _, path := range paths {
		d, err := openDataset(path, variable)
		if err != nil {
			return nil, err
		}
		axes, err := d.axes()
		if err == nil {
			err = checkLayout(ser.axes, axes, path)
		}
		var times []time.Time
		if err == nil {
			times, err = d.times()
		}
		d.Close()
		if err != nil {
			return nil, err
		}
		if ser.axes == nil {
			ser.axes = axes
		}
		ser.files = append(ser.files, seriesFile{path: path, times: times})
		ser.times = append(ser.times, times...)
	}

	domain.ReconcileKilometers(ser.axes)
	s.logger.Debug("opened variable series",
		"variable", variable, "files", len(ser.files), "time_steps", len(ser.times))
	return ser, nil
}

// validateYearOrder parses the year token (between the separator and the
// extension) of each filename and requires a strictly increasing sequence.
func validateYearOrder(paths []string) error {
	prev := 0
	for i, p := range paths {
		name := strings.TrimSuffix(filepath.Base(p), ".nc")
		_, tail, _ := strings.Cut(name, Separator)
		year, err := strconv.Atoi(tail)
		if err != nil {
			return fmt.Errorf("cannot parse year from %s", filepath.Base(p))
		}
		if i > 0 && year <= prev {
			return fmt.Errorf("files out of chronological order: year %d follows %d", year, prev)
		}
		prev = year
	}
	return nil
}

// checkLayout verifies a file's grid matches the series' first file.
// Files of one variable must share an identical layout across years.
func checkLayout(want, got *domain.GridAxes, path string) error {
	if want == nil {
		return nil
	}
	if len(want.X) != len(got.X) || len(want.Y) != len(got.Y) {
		return fmt.Errorf("%s: grid layout differs from earlier files in series", path)
	}
	for i := range want.X {
		if want.X[i] != got.X[i] {
			return fmt.Errorf("%s: x axis differs from earlier files in series", path)
		}
	}
	for i := range want.Y {
		if want.Y[i] != got.Y[i] {
			return fmt.Errorf("%s: y axis differs from earlier files in series", path)
		}
	}
	return nil
}

type seriesFile struct {
	path  string
	times []time.Time
}

// series is a lazily-read multi-file variable grid. It holds file paths
// and coordinate metadata only; EachSlab re-opens one file at a time.
type series struct {
	variable string
	axes     *domain.GridAxes
	times    []time.Time
	files    []seriesFile
}

func (s *series) Variable() string       { return s.variable }
func (s *series) Axes() *domain.GridAxes { return s.axes }
func (s *series) Times() []time.Time     { return s.times }

// EachSlab reads the series strictly sequentially: files in chronological
// order, one open at a time, one time-step slab in memory at a time.
func (s *series) EachSlab(fn func(t time.Time, slab *sparse.DenseArray) error) error {
	for _, sf := range s.files {
		d, err := openDataset(sf.path, s.variable)
		if err != nil {
			return err
		}
		if err := eachFileSlab(d, sf.times, fn); err != nil {
			d.Close()
			return err
		}
		d.Close()
	}
	return nil
}

func eachFileSlab(d *dataset, times []time.Time, fn func(time.Time, *sparse.DenseArray) error) error {
	if d.nt != len(times) {
		return fmt.Errorf("%s: time axis changed between open and read", d.path)
	}
	for t := 0; t < d.nt; t++ {
		slab, err := d.slab(t)
		if err != nil {
			return err
		}
		if err := fn(times[t], slab); err != nil {
			return err
		}
	}
	return nil
}

// Close is a no-op today: file handles are scoped to individual reads, not
// to the series. It satisfies the series-source contract for backends that
// do hold resources.
func (s *series) Close() error { return nil }
