// Command etl extracts per-sub-basin daily time series from a directory of
// Daymet NetCDF files and writes one CSV table per sub-basin.
//
// Usage:
//
//	etl --shapefile_path data/raw/shapefiles/GSLSubbasins_proj.shp \
//	    --netcdf_directory data/raw/daymet \
//	    --output_directory data/processed/timeseries_csv \
//	    --shapefile_id_column Name
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ctessum/geom/proj"

	"github.com/basinworks/daymet-etl/internal/adapter/csvout"
	"github.com/basinworks/daymet-etl/internal/adapter/netcdf"
	"github.com/basinworks/daymet-etl/internal/adapter/shapefile"
	"github.com/basinworks/daymet-etl/internal/config"
	"github.com/basinworks/daymet-etl/internal/domain"
	"github.com/basinworks/daymet-etl/internal/observability"
	"github.com/basinworks/daymet-etl/internal/pipeline"
)

func main() {
	shapefilePath := flag.String("shapefile_path", "", "full path to the input sub-basin shapefile")
	netcdfDirectory := flag.String("netcdf_directory", "", "directory containing the downloaded .nc files")
	outputDirectory := flag.String("output_directory", "", "directory for output CSV files, created if absent")
	idColumn := flag.String("shapefile_id_column", config.DefaultIDColumn,
		"attribute column in the shapefile with unique sub-basin names")
	flag.Parse()

	cfg := config.New(*shapefilePath, *netcdfDirectory, *outputDirectory, *idColumn)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	if err := run(cfg, logger, metrics); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) error {
	if err := os.MkdirAll(cfg.OutputDirectory, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	logger.Info("output directory ready", "path", cfg.OutputDirectory)

	// The Daymet spatial reference is a process-wide constant, parsed once
	// and injected into everything that needs it.
	gridSR, err := proj.Parse(domain.DaymetProj4)
	if err != nil {
		return fmt.Errorf("parsing grid projection: %w", err)
	}

	logger.Info("loading shapefile", "path", cfg.ShapefilePath)
	regions, err := shapefile.Load(cfg.ShapefilePath, cfg.IDColumn, gridSR, logger)
	if err != nil {
		return err
	}
	logger.Info("loaded sub-basins", "count", len(regions))

	source := netcdf.NewDirectorySource(cfg.NetCDFDirectory, logger)
	writer := csvout.NewWriter(cfg.OutputDirectory)
	agg := pipeline.NewAggregator(source, logger, metrics)
	p := pipeline.New(agg, writer, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return p.Run(ctx, regions)
}
