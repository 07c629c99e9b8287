package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/basinworks/daymet-etl/internal/domain"
	"github.com/basinworks/daymet-etl/internal/observability"
)

// Aggregator assembles one region's multi-variable time table: it
// discovers the archive's variables, loads each as a virtual series,
// clips and reduces it against the region polygon, and concatenates the
// surviving daily series aligned by date.
type Aggregator struct {
	source  domain.SeriesSource
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewAggregator creates an Aggregator over the given raster source.
func NewAggregator(source domain.SeriesSource, logger *slog.Logger, metrics *observability.Metrics) *Aggregator {
	return &Aggregator{source: source, logger: logger, metrics: metrics}
}

// ProcessRegion produces the region's time table, or an empty table when
// no variable yielded data. Per-variable failures are recoverable: they
// are logged with region and variable context, counted, and skipped.
// Variables are processed strictly one at a time; each series is acquired,
// reduced, and released before the next is opened.
func (a *Aggregator) ProcessRegion(ctx context.Context, region domain.Region) (*domain.TimeTable, error) {
	vars, err := a.source.Variables()
	if err != nil {
		return nil, err
	}
	if len(vars) == 0 {
		a.logger.Warn("no archive files found, skipping sub-basin", "region", region.Name)
		return &domain.TimeTable{}, nil
	}
	a.logger.Info("found variables", "region", region.Name, "variables", vars)

	var series []domain.DailySeries
	for _, variable := range vars {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s, ok := a.processVariable(region, variable)
		if ok {
			series = append(series, *s)
		}
	}

	if len(series) == 0 {
		a.logger.Warn("no data could be processed for sub-basin", "region", region.Name)
	}
	return domain.ConcatSeries(series), nil
}

// processVariable reduces one variable for one region. Returns false on
// any recoverable failure, which it logs and counts by reason.
func (a *Aggregator) processVariable(region domain.Region, variable string) (*domain.DailySeries, bool) {
	a.logger.Info("processing variable", "region", region.Name, "variable", variable)

	vs, err := a.source.Open(variable)
	if err != nil {
		a.logger.Warn("loading variable failed, skipping",
			"region", region.Name, "variable", variable, "error", err)
		a.metrics.VariablesSkipped.WithLabelValues("load_error").Inc()
		return nil, false
	}
	defer vs.Close()

	s, err := domain.ClipAndReduce(vs, region)
	switch {
	case errors.Is(err, domain.ErrEmptyClip):
		a.logger.Warn("clipping produced no data, sub-basin may be outside the data extent",
			"region", region.Name, "variable", variable)
		a.metrics.VariablesSkipped.WithLabelValues("empty_clip").Inc()
		return nil, false
	case err != nil:
		a.logger.Error("clipping failed, skipping variable",
			"region", region.Name, "variable", variable, "error", err)
		a.metrics.VariablesSkipped.WithLabelValues("clip_error").Inc()
		return nil, false
	}

	a.metrics.VariablesReduced.Inc()
	return s, true
}
