package core

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/JonMunkholm/fifastats/internal/config"
	"github.com/JonMunkholm/fifastats/internal/logging"
	"github.com/JonMunkholm/fifastats/internal/report"
	"github.com/JonMunkholm/fifastats/internal/roster"
	"github.com/JonMunkholm/fifastats/internal/tableload"
)

// Service loads the configured datasets and turns them into reports.
// It is safe for concurrent use: every load gets its own Loader, and the
// loaders share one DimensionCache.
type Service struct {
	datasets    []config.Dataset
	layout      roster.Layout
	splitter    tableload.Splitter
	cache       tableload.DimensionCache
	skipBOM     bool
	concurrency int
	strict      bool
	logger      *slog.Logger
	now         func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithCache replaces the dimension cache chosen by configuration.
func WithCache(c tableload.DimensionCache) ServiceOption {
	return func(s *Service) {
		if c != nil {
			s.cache = c
		}
	}
}

// WithLogger sets the logger used for load warnings and table loader debug output.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock sets the time source for run start times.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService builds a Service from validated configuration.
func NewService(cfg *config.Config, opts ...ServiceOption) (*Service, error) {
	splitter, err := tableload.SplitterByName(cfg.CSV.Splitter)
	if err != nil {
		return nil, err
	}

	layout := cfg.Layout()
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	datasets := cfg.Data.Datasets()
	if len(datasets) == 0 {
		return nil, errors.New("no datasets configured")
	}

	var cache tableload.DimensionCache = tableload.NopCache{}
	if cfg.Load.DimensionCache {
		cache = tableload.NewMemoryCache()
	}

	s := &Service{
		datasets:    datasets,
		layout:      layout,
		splitter:    splitter,
		cache:       cache,
		skipBOM:     cfg.CSV.SkipBOM,
		concurrency: max(cfg.Load.MaxConcurrent, 1),
		strict:      cfg.Load.Strict,
		logger:      slog.Default(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// DatasetInfo describes one configured input.
type DatasetInfo struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Datasets lists the configured inputs in report order.
func (s *Service) Datasets() []DatasetInfo {
	out := make([]DatasetInfo, len(s.datasets))
	for i, ds := range s.datasets {
		out[i] = DatasetInfo{Name: ds.Name, Path: ds.Path}
	}
	return out
}

// Cache returns the dimension cache shared by every load.
func (s *Service) Cache() tableload.DimensionCache {
	return s.cache
}

// Run loads every dataset, then builds the report for each.
//
// The recorded load duration covers loading and player extraction for all
// datasets; statistics are computed afterwards. A dataset that cannot be
// read is reported empty unless the service is strict. A field conversion
// failure in any dataset aborts the run.
func (s *Service) Run(ctx context.Context) (*report.Run, error) {
	run := report.NewRun(s.now())
	logger := logging.WithFields(ctx, "run_id", run.ID)
	logger.Info("run started", "datasets", len(s.datasets), "concurrency", s.concurrency)

	start := time.Now()
	results, err := s.loadAll(ctx, s.datasets)
	if err != nil {
		logger.Error("run failed", "error", err)
		return nil, err
	}
	run.SetLoadDuration(time.Since(start))

	for _, res := range results {
		run.Datasets = append(run.Datasets, res.build())
	}

	logger.Info("run finished", "load_ms", run.LoadMillis)
	return run, nil
}

// Dataset loads and reports the single dataset called name.
// Names match exactly first, then case-insensitively.
func (s *Service) Dataset(ctx context.Context, name string) (report.Dataset, error) {
	ds, ok := s.lookup(name)
	if !ok {
		return report.Dataset{}, errors.Wrapf(ErrUnknownDataset, "dataset %q", name)
	}

	results, err := s.loadAll(ctx, []config.Dataset{ds})
	if err != nil {
		return report.Dataset{}, err
	}
	return results[0].build(), nil
}

func (s *Service) lookup(name string) (config.Dataset, bool) {
	for _, ds := range s.datasets {
		if ds.Name == name {
			return ds, true
		}
	}
	for _, ds := range s.datasets {
		if strings.EqualFold(ds.Name, name) {
			return ds, true
		}
	}
	return config.Dataset{}, false
}

// loaded is one dataset after extraction, before statistics.
type loaded struct {
	dataset config.Dataset
	shape   tableload.Shape
	players []roster.Player
	loadErr error
}

func (l loaded) build() report.Dataset {
	out := report.Build(l.dataset.Name, l.dataset.Path, l.players)
	out.Shape = l.shape
	if l.loadErr != nil {
		out.LoadError = l.loadErr.Error()
	}
	return out
}

// loadAll loads datasets with bounded parallelism. Results keep the order
// of datasets regardless of completion order.
func (s *Service) loadAll(ctx context.Context, datasets []config.Dataset) ([]loaded, error) {
	results := make([]loaded, len(datasets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, ds := range datasets {
		g.Go(func() error {
			res, err := s.loadOne(gctx, ds)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) loadOne(ctx context.Context, ds config.Dataset) (loaded, error) {
	loader := tableload.NewLoader(
		tableload.WithSplitter(s.splitter),
		tableload.WithCache(s.cache),
		tableload.WithBOMSkipping(s.skipBOM),
		tableload.WithLogger(s.logger.With("dataset", ds.Name)),
	)

	t, err := loader.Load(ctx, ds.Path)
	defer t.Release()

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return loaded{}, ctxErr
		}
		if s.strict {
			return loaded{}, errors.Wrapf(err, "dataset %q", ds.Name)
		}
		logging.FromContext(ctx).Warn("dataset load failed, reporting it empty",
			"dataset", ds.Name,
			"path", ds.Path,
			"error", err,
		)
		return loaded{dataset: ds, players: []roster.Player{}, loadErr: err}, nil
	}

	players, err := roster.Extract(t, s.layout)
	if err != nil {
		return loaded{}, errors.Wrapf(err, "dataset %q", ds.Name)
	}

	return loaded{dataset: ds, shape: t.Shape(), players: players}, nil
}
