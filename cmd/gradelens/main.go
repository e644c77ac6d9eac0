package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avasisht/gradelens/internal/adapters/gradestore"
	"github.com/avasisht/gradelens/internal/adapters/page"
	"github.com/avasisht/gradelens/internal/app"
	"github.com/avasisht/gradelens/internal/config"
	"github.com/avasisht/gradelens/internal/domain/extract"
	"github.com/avasisht/gradelens/pkg/logger"
	"github.com/avasisht/gradelens/pkg/metrics"
)

// Metrics server timeout constants.
const (
	metricsReadHeaderTimeout = 5 * time.Second
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	store, cleanup, err := openStore(cfg)
	if err != nil {
		loggerInstance.Error(ctx, "failed to open grade store", logger.Error(err))
		return
	}
	defer cleanup()

	// Optional Prometheus listener.
	if cfg.MetricsAddr != "" {
		go serveMetrics(ctx, cfg.MetricsAddr)
	}

	svc := app.New(
		app.WithLogger(loggerInstance),
		app.WithOpener(page.NewHTTPOpener()),
		app.WithStore(store),
		app.WithBaseURL(cfg.BaseURL),
		app.WithFormFields(cfg.InstructorField, cfg.SubmitField, cfg.ResultsFrame),
		app.WithExtractor(extract.New(
			extract.WithHeaders(cfg.YearHeader, cfg.SemHeader, cfg.CourseHeader),
		)),
		app.WithPoller(page.NewPoller(
			page.WithMaxWait(time.Duration(cfg.MaxWaitSeconds)*time.Second),
			page.WithStableFor(cfg.StableForSeconds),
			page.WithInterval(time.Duration(cfg.PollIntervalMS)*time.Millisecond),
		)),
		app.WithChartPath(cfg.ChartPath),
	)

	if err := svc.Run(ctx, os.Stdin, os.Stdout); err != nil && err != context.Canceled {
		loggerInstance.Error(ctx, "query loop failed", logger.Error(err))
	}
}

// openStore builds the configured grade store backend and its cleanup.
func openStore(cfg *config.Config) (gradestore.Store, func(), error) {
	switch cfg.GradesDriver {
	case config.DriverSQLite:
		s, err := gradestore.OpenSQLite(cfg.GradesPath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	default:
		return gradestore.NewCSVStore(cfg.GradesPath), func() {}, nil
	}
}

// serveMetrics exposes the Prometheus registry until ctx is canceled.
func serveMetrics(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: metricsReadHeaderTimeout,
	}
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()
	logger.Get().Info(ctx, "serving metrics", logger.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Get().Warn(ctx, "metrics server failed", logger.Error(err))
	}
}
