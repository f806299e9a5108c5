package app

import (
	"context"
	"fmt"
	"time"

	"github.com/newthinker/lockup/internal/backtest"
	"github.com/newthinker/lockup/internal/collector"
	"github.com/newthinker/lockup/internal/config"
	"github.com/newthinker/lockup/internal/core"
	"github.com/newthinker/lockup/internal/export"
	"github.com/newthinker/lockup/internal/lockup"
	"github.com/newthinker/lockup/internal/metrics"
	"github.com/newthinker/lockup/internal/notifier"
	"github.com/newthinker/lockup/internal/notifier/webhook"
	"github.com/newthinker/lockup/internal/storage/archive"
	"go.uber.org/zap"
)

// Request selects the data and outputs of one run. Empty fields fall back to config.
type Request struct {
	Path         string
	Symbol       string
	Source       string
	ExportPath   string
	ExportFormat string
}

// Report is the outcome of one run
type Report struct {
	Result     *backtest.Result
	LedgerPath string // empty when export is disabled
	ArchiveKey string // empty when archiving is disabled
}

// Runner loads bars, runs the backtest and publishes the outputs
type Runner struct {
	cfg        *config.Config
	logger     *zap.Logger
	sources    *collector.Registry
	backtester *backtest.Backtester
	results    *archive.Results
	metrics    *metrics.Registry
	notifiers  *notifier.Registry
	now        func() time.Time
}

// New creates a Runner from config. It loads the lockup calendar and opens the
// archive backend when those are configured.
func New(cfg *config.Config, logger *zap.Logger) (*Runner, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	window, err := newLockupWindow(cfg.Lockup, logger)
	if err != nil {
		return nil, err
	}

	store, err := newArchiveStorage(cfg.Archive)
	if err != nil {
		return nil, err
	}

	r := &Runner{
		cfg:     cfg,
		logger:  logger,
		sources: collector.NewRegistry(),
		backtester: backtest.New(
			backtest.WithParams(cfg.Strategy),
			backtest.WithLockupWindow(window),
			backtest.WithLogger(logger.Named("backtest")),
		),
		metrics:   metrics.NewRegistry(),
		notifiers: notifier.NewRegistry(),
		now:       time.Now,
	}
	if store != nil {
		r.results = archive.NewResults(store)
	}
	r.sources.Register(collector.NewCSVFile())

	if hook := cfg.Notify.Webhook; hook.URL != "" {
		w, err := webhook.New(hook.URL, hook.Headers)
		if err != nil {
			return nil, core.WrapError(core.ErrConfigInvalid, err)
		}
		if err := r.notifiers.Register(w); err != nil {
			return nil, err
		}
	}

	logger.Debug("runner ready",
		zap.Strings("sources", r.sources.Names()),
		zap.Strings("notifiers", r.notifiers.Names()),
		zap.Bool("archive", r.results != nil),
	)

	return r, nil
}

// RegisterSource adds a bar source to the runner
func (r *Runner) RegisterSource(s collector.Source) {
	r.sources.Register(s)
}

// RegisterNotifier adds a run-completion notifier
func (r *Runner) RegisterNotifier(n notifier.Notifier) error {
	return r.notifiers.Register(n)
}

// Metrics exposes the registry the runner records into
func (r *Runner) Metrics() *metrics.Registry {
	return r.metrics
}

// Archive returns the result archive, nil when archiving is disabled
func (r *Runner) Archive() *archive.Results {
	return r.results
}

// Run executes one backtest
func (r *Runner) Run(ctx context.Context, req Request) (*Report, error) {
	req = r.withDefaults(req)
	start := r.now()

	report, err := r.run(ctx, req)

	status := "success"
	if err != nil {
		status = "error"
	}
	r.metrics.RecordBacktest(status, r.now().Sub(start).Seconds())
	if path := r.cfg.Metrics.Textfile; path != "" {
		if werr := r.metrics.WriteTextfile(path); werr != nil {
			r.logger.Warn("writing metrics textfile failed",
				zap.String("path", path),
				zap.Error(werr),
			)
		}
	}

	return report, err
}

func (r *Runner) run(ctx context.Context, req Request) (*Report, error) {
	source, ok := r.sources.Get(req.Source)
	if !ok {
		return nil, core.WrapError(core.ErrConfigInvalid, fmt.Errorf("unknown data source %q", req.Source))
	}

	bars, err := source.LoadBars(ctx, req.Path)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, core.WrapError(core.ErrNoData, fmt.Errorf("no data found in %s", req.Path))
	}

	r.logger.Info("loaded bars",
		zap.String("symbol", req.Symbol),
		zap.String("path", req.Path),
		zap.Int("bars", len(bars)),
	)

	result := r.backtester.Run(bars, req.Symbol)
	r.record(result)

	report := &Report{Result: result}

	if req.ExportPath != "" {
		path, err := r.export(result, req.ExportPath, req.ExportFormat)
		if err != nil {
			return report, err
		}
		report.LedgerPath = path
	}

	if r.results != nil {
		key, err := r.results.Save(ctx, result)
		if err != nil {
			return report, err
		}
		report.ArchiveKey = key
	}

	if r.notifiers.Len() > 0 {
		for name, err := range r.notifiers.NotifyAll(ctx, result) {
			r.logger.Warn("notification failed",
				zap.String("notifier", name),
				zap.Error(err),
			)
		}
	}

	r.logger.Info("backtest complete",
		zap.String("run_id", result.RunID),
		zap.String("symbol", result.Symbol),
		zap.Int("trades", len(result.Trades)),
		zap.Float64("pnl", result.TotalPnL),
		zap.Int("wins", result.Wins),
		zap.Int("losses", result.Losses),
	)

	return report, nil
}

func (r *Runner) record(result *backtest.Result) {
	r.metrics.RecordBars(result.Symbol, result.Bars)
	for _, t := range result.Trades {
		r.metrics.RecordTrade(result.Symbol, string(t.ExitReason), t.IsWin())
	}
	r.metrics.SetPnL(result.Symbol, result.TotalPnL, float64(r.now().Unix()))
}

func (r *Runner) export(result *backtest.Result, path, format string) (string, error) {
	saver, err := export.NewLedgerSaver(format)
	if err != nil {
		return "", err
	}
	path = export.WithExtension(path, saver)
	if err := saver.Save(result.Trades, path); err != nil {
		return "", core.WrapError(core.ErrExportFailed, fmt.Errorf("writing %s: %w", path, err))
	}
	r.logger.Debug("exported ledger", zap.String("path", path), zap.String("format", saver.Extension()))
	return path, nil
}

func (r *Runner) withDefaults(req Request) Request {
	if req.Path == "" {
		req.Path = r.cfg.Data.Path
	}
	if req.Symbol == "" {
		req.Symbol = r.cfg.Data.Symbol
	}
	if req.Source == "" {
		req.Source = r.cfg.Data.Source
	}
	if req.Source == "" {
		req.Source = "csv"
	}
	if req.ExportPath == "" {
		req.ExportPath = r.cfg.Export.Path
	}
	if req.ExportFormat == "" {
		req.ExportFormat = r.cfg.Export.Format
	}
	return req
}

func newLockupWindow(cfg config.LockupConfig, logger *zap.Logger) (lockup.Window, error) {
	switch cfg.Source {
	case "", "always":
		return lockup.Always{}, nil
	case "calendar":
		cal, err := lockup.LoadCalendar(cfg.CalendarPath, cfg.MinDays, cfg.MaxDays)
		if err != nil {
			return nil, err
		}
		logger.Debug("loaded lockup calendar",
			zap.String("path", cfg.CalendarPath),
			zap.Int("symbols", cal.Len()),
		)
		return cal, nil
	default:
		return nil, core.WrapError(core.ErrConfigInvalid, fmt.Errorf("unknown lockup source %q", cfg.Source))
	}
}

func newArchiveStorage(cfg config.ArchiveConfig) (archive.Storage, error) {
	switch cfg.Type {
	case "", "none":
		return nil, nil
	case "localfs":
		return archive.NewLocalFS(cfg.Path)
	case "s3":
		return archive.NewS3(archive.S3Config{
			Bucket:    cfg.S3.Bucket,
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Prefix:    cfg.S3.Prefix,
		}), nil
	default:
		return nil, core.WrapError(core.ErrConfigInvalid, fmt.Errorf("unknown archive type %q", cfg.Type))
	}
}
