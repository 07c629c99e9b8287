// Command gengrid writes a small synthetic Daymet-style NetCDF archive:
// one file per variable per year, kilometer axes, daily time steps, and a
// fill-value column simulating cells outside the land mask. It exists so
// the pipeline can be exercised end to end without downloading Daymet.
//
// Usage:
//
//	go run ./cmd/gengrid -output_directory data/mock/daymet \
//	  -variables tmax,tmin,prcp -years 2010-2011 -nx 30 -ny 25
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ctessum/cdf"
)

const (
	fillValue = float32(-9999)
	timeUnits = "days since 1980-01-01 00:00:00"
)

var epoch = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// varParams shape each variable's synthetic seasonal curve.
type varParams struct {
	base, amplitude float64
}

var params = map[string]varParams{
	"tmax": {base: 15, amplitude: 15},
	"tmin": {base: 4, amplitude: 12},
	"prcp": {base: 2, amplitude: 1.5},
	"srad": {base: 300, amplitude: 120},
	"vp":   {base: 800, amplitude: 400},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("output_directory", "", "directory to write the synthetic archive into")
	variables := flag.String("variables", "tmax,tmin,prcp", "comma-separated variable identifiers")
	years := flag.String("years", "2010-2011", "inclusive year range, e.g. 2010-2012")
	nx := flag.Int("nx", 30, "grid cells along x")
	ny := flag.Int("ny", 25, "grid cells along y")
	x0 := flag.Float64("x0", 100, "west edge cell center, km")
	y0 := flag.Float64("y0", -400, "north edge cell center, km")
	cell := flag.Float64("cell", 1, "cell size, km")
	flag.Parse()

	if *outDir == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -output_directory")
	}
	firstYear, lastYear, err := parseYears(*years)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return err
	}

	for _, variable := range strings.Split(*variables, ",") {
		variable = strings.TrimSpace(variable)
		for year := firstYear; year <= lastYear; year++ {
			path := filepath.Join(*outDir, fmt.Sprintf("%s_%04d.nc", variable, year))
			if err := writeFile(path, variable, year, *nx, *ny, *x0, *y0, *cell); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			log.Printf("wrote %s", path)
		}
	}
	return nil
}

func parseYears(s string) (int, int, error) {
	lo, hi, found := strings.Cut(s, "-")
	if !found {
		hi = lo
	}
	first, err1 := strconv.Atoi(lo)
	last, err2 := strconv.Atoi(hi)
	if err1 != nil || err2 != nil || last < first {
		return 0, 0, fmt.Errorf("invalid year range %q", s)
	}
	return first, last, nil
}

// writeFile emits one Daymet-style year file: km coordinate axes, a daily
// "days since" time axis (365 days; Daymet drops leap-year December 31),
// and float32 data with a fill-value column along the west edge.
func writeFile(path, variable string, year, nx, ny int, x0, y0, cell float64) error {
	const ndays = 365

	h := cdf.NewHeader([]string{"time", "y", "x"}, []int{ndays, ny, nx})
	h.AddAttribute("", "source", "gengrid synthetic archive")
	h.AddVariable("x", []string{"x"}, []float64{0})
	h.AddAttribute("x", "units", "km")
	h.AddVariable("y", []string{"y"}, []float64{0})
	h.AddAttribute("y", "units", "km")
	h.AddVariable("time", []string{"time"}, []float64{0})
	h.AddAttribute("time", "units", timeUnits)
	h.AddVariable(variable, []string{"time", "y", "x"}, []float32{0})
	h.AddAttribute(variable, "_FillValue", []float32{fillValue})
	h.Define()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	nc, err := cdf.Create(f, h)
	if err != nil {
		return err
	}

	xs := make([]float64, nx)
	for i := range xs {
		xs[i] = x0 + float64(i)*cell
	}
	ys := make([]float64, ny)
	for j := range ys {
		// Daymet y axis descends north to south.
		ys[j] = y0 - float64(j)*cell
	}
	ts := make([]float64, ndays)
	for d := range ts {
		date := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, d)
		ts[d] = date.Sub(epoch).Hours()/24 + 0.5
	}

	if err := writeVar(nc, "x", xs); err != nil {
		return err
	}
	if err := writeVar(nc, "y", ys); err != nil {
		return err
	}
	if err := writeVar(nc, "time", ts); err != nil {
		return err
	}

	p, ok := params[variable]
	if !ok {
		p = varParams{base: 1, amplitude: 1}
	}
	data := make([]float32, ndays*ny*nx)
	for d := 0; d < ndays; d++ {
		season := p.amplitude * math.Sin(2*math.Pi*float64(d)/365)
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				k := (d*ny+j)*nx + i
				if i == 0 {
					data[k] = fillValue
					continue
				}
				data[k] = float32(p.base + season + 0.05*float64(i) - 0.03*float64(j))
			}
		}
	}
	if err := writeVar(nc, variable, data); err != nil {
		return err
	}

	return cdf.UpdateNumRecs(f)
}

func writeVar(nc *cdf.File, name string, data interface{}) error {
	end := nc.Header.Lengths(name)
	start := make([]int, len(end))
	w := nc.Writer(name, start, end)
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("variable %s: %w", name, err)
	}
	return nil
}
