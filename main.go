package main

import (
	"context"
	"embed"
	stderrors "errors"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"perfdash/adapters/excel"
	"perfdash/domain/employee"
	"perfdash/internal/analysis"
	"perfdash/internal/config"
	"perfdash/internal/dashboard"
	"perfdash/internal/errors"
	"perfdash/internal/logging"
	"perfdash/internal/metrics"
	"perfdash/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

//go:embed ui/templates ui/static
var embeddedFiles embed.FS

func main() {
	// Load environment variables from .env file
	envErr := godotenv.Load()

	appConfig, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.Must(appConfig.Log.Level, appConfig.Log.Format)
	defer func() { _ = logger.Sync() }()
	if envErr != nil {
		logger.Debug("no .env file found, using system environment variables")
	}

	gin.SetMode(appConfig.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, appConfig, logger); err != nil {
		logger.Fatal("dashboard stopped", zap.String("code", errors.GetCode(err)), zap.Error(err))
	}
	logger.Info("dashboard stopped cleanly")
}

func run(ctx context.Context, appConfig *config.Config, logger *zap.Logger) error {
	ds, err := loadDataset(ctx, appConfig.Data.File, logger)
	if err != nil {
		return err
	}

	logo, err := ui.LoadAsset(appConfig.Data.LogoFile)
	if err != nil {
		return err
	}

	narrative, err := dashboard.LoadNarrative()
	if err != nil {
		return err
	}

	board := dashboard.NewBoard(ds, boardOptions(appConfig), logger)

	server, err := ui.NewServer(embeddedFiles, ui.Dependencies{
		Board:     board,
		Narrative: narrative,
		Logo:      logo,
		Logger:    logger,
	})
	if err != nil {
		return errors.Wrap(err, "failed to initialize server")
	}

	servers := []*http.Server{{
		Addr:              ":" + appConfig.Server.Port,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}}
	if appConfig.Profiling.Enabled {
		// net/http/pprof registers on the default mux
		servers = append(servers, &http.Server{
			Addr:              ":" + appConfig.Profiling.Port,
			ReadHeaderTimeout: 10 * time.Second,
		})
		logger.Info("profiling enabled",
			zap.String("hint", fmt.Sprintf("go tool pprof -http=:8081 http://localhost:%s/debug/pprof/profile?seconds=30", appConfig.Profiling.Port)))
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		g.Go(func() error {
			logger.Info("listening", zap.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
				return errors.Wrapf(err, "server on %s failed", srv.Addr)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", zap.Duration("timeout", appConfig.Server.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), appConfig.Server.ShutdownTimeout)
		defer cancel()

		var shutdownErr error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				shutdownErr = stderrors.Join(shutdownErr, err)
			}
		}
		return shutdownErr
	})

	return g.Wait()
}

func loadDataset(ctx context.Context, path string, logger *zap.Logger) (*employee.Dataset, error) {
	table, err := excel.NewDataReader(path, logger).ReadTable(ctx)
	if err != nil {
		return nil, err
	}

	ds, err := employee.FromTable(table)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid dataset %s", path)
	}

	metrics.DatasetRecords.Set(float64(ds.Len()))
	logger.Info("dataset loaded",
		zap.String("source", ds.Source()),
		zap.Int("records", ds.Len()),
		zap.Strings("genders", ds.Genders()),
		zap.Strings("marital_statuses", ds.MaritalStatuses()))
	return ds, nil
}

func boardOptions(appConfig *config.Config) dashboard.Options {
	histogram := analysis.DefaultHistogramOptions()
	histogram.Bins = appConfig.Charts.HistogramBins
	histogram.BarGap = appConfig.Charts.BarGap

	return dashboard.Options{
		ChartsFollowFilters: appConfig.Charts.FollowFilters,
		Histogram:           histogram,
	}
}
