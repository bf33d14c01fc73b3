package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"vainspect/internal/config"
	"vainspect/internal/dataprocessing"
	"vainspect/internal/exporter"
	"vainspect/internal/files"
	"vainspect/internal/report"
	"vainspect/pkg/contracts/domain"
)

// Options controls a single pipeline run.
type Options struct {
	// Rebuild forces the load/merge path even when the cache artifact exists.
	Rebuild bool
	// Out receives the frequency tables. Defaults to stdout.
	Out io.Writer
}

// Pipeline runs the inspection dataset build: load the yearly workbooks (or
// the cached artifact), normalize, filter, derive, report, persist. One
// forward pass, no retries; the only branch is the cache gate.
type Pipeline struct {
	cfg   *config.Config
	paths *config.Paths
	log   *slog.Logger
}

// New creates a pipeline with the given configuration and path layout.
func New(cfg *config.Config, paths *config.Paths, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{cfg: cfg, paths: paths, log: log}
}

// Run executes the full pipeline and returns the processed dataset. Both
// output artifacts are written only after every transform has completed; a
// failure in any stage aborts the run before anything is persisted.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*domain.Dataset, error) {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	ds, cached, err := p.loadStage(opts.Rebuild)
	if err != nil {
		return nil, err
	}

	if !cached {
		res := dataprocessing.Normalize(ds)
		p.log.Debug("normalized dataset",
			slog.Int("dates_failed", res.DatesFailed),
			slog.Int("risks_failed", res.RisksFailed))

		dropped := dataprocessing.FilterPermitted(ds)
		p.log.Info("filtered to permitted facilities",
			slog.Int("kept", ds.Len()),
			slog.Int("dropped", dropped))

		dataprocessing.Derive(ds)
	}

	if err := p.reportStage(ds, opts.Out); err != nil {
		return nil, err
	}

	if err := p.persistStage(ds); err != nil {
		return nil, err
	}

	summary := ds.Summarize()
	p.log.Info("pipeline complete",
		slog.Int("total_records", summary.TotalRecords),
		slog.Int("repeat_violations", summary.RepeatCount),
		slog.Int("corrected_on_site", summary.CorrectedCount),
		slog.Int("priority_violations", summary.PriorityCount),
		slog.Float64("mean_risk_rating", summary.MeanRiskRating))

	return ds, nil
}

// loadStage is the cache gate plus the loader. On a cache hit the artifact is
// already normalized, filtered and derived, so those stages are skipped. The
// check is existence-only: edits to the raw source files after the artifact
// was written are not detected.
func (p *Pipeline) loadStage(rebuild bool) (*domain.Dataset, bool, error) {
	cachePath := p.paths.CleanDataParquet

	if !rebuild && files.Exists(cachePath) {
		p.log.Info("cache hit, skipping load and merge", slog.String("path", cachePath))
		ds, err := exporter.ReadParquet(cachePath)
		if err != nil {
			return nil, false, fmt.Errorf("failed to load cache artifact: %w", err)
		}
		return ds, true, nil
	}

	ds, err := p.loadWorkbooks()
	if err != nil {
		return nil, false, err
	}
	return ds, false, nil
}

// loadWorkbooks reads every configured year's workbook in ascending year
// order and concatenates the rows, preserving file order within each year.
func (p *Pipeline) loadWorkbooks() (*domain.Dataset, error) {
	years := append([]int(nil), p.cfg.Pipeline.Years...)
	sort.Ints(years)
	latest := p.cfg.Pipeline.LatestYear()

	discovery := files.NewDiscovery(p.paths.SourcesDir)
	ds := &domain.Dataset{}

	for _, year := range years {
		info, err := discovery.WorkbookForYear(year, year == latest)
		if err != nil {
			return nil, err
		}

		records, err := dataprocessing.ParseWorkbook(info.Path, year)
		if err != nil {
			return nil, err
		}

		p.log.Info("loaded yearly workbook",
			slog.Int("year", year),
			slog.String("file", info.Name),
			slog.Int("rows", len(records)))

		ds.Records = append(ds.Records, records...)
	}

	return ds, nil
}

func (p *Pipeline) reportStage(ds *domain.Dataset, out io.Writer) error {
	reporter := report.NewReporter(out, p.cfg.Pipeline.TopN)
	if err := reporter.PrintFrequencyTables(ds); err != nil {
		return fmt.Errorf("failed to print frequency tables: %w", err)
	}

	zips := report.ZipFrequencies(ds, p.cfg.Pipeline.TopN)
	if err := report.RenderZipChart(p.paths.ZipChartHTML, zips); err != nil {
		return fmt.Errorf("failed to render zip chart: %w", err)
	}
	return nil
}

func (p *Pipeline) persistStage(ds *domain.Dataset) error {
	if err := exporter.ExportCSV(p.paths.CleanDataCSV, ds); err != nil {
		return fmt.Errorf("failed to export csv: %w", err)
	}
	if err := exporter.ExportParquet(p.paths.CleanDataParquet, ds); err != nil {
		return fmt.Errorf("failed to export parquet: %w", err)
	}
	return nil
}
