package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/andreyxaxa/Media-Pipeline/config"
	"github.com/andreyxaxa/Media-Pipeline/internal/controller/restapi"
	"github.com/andreyxaxa/Media-Pipeline/internal/controller/worker/janitor"
	"github.com/andreyxaxa/Media-Pipeline/internal/infrastructure/codec"
	"github.com/andreyxaxa/Media-Pipeline/internal/infrastructure/processor"
	"github.com/andreyxaxa/Media-Pipeline/internal/repo/filestore"
	"github.com/andreyxaxa/Media-Pipeline/internal/repo/persistent"
	"github.com/andreyxaxa/Media-Pipeline/internal/usecase/asset"
	"github.com/andreyxaxa/Media-Pipeline/internal/usecase/media"
	"github.com/andreyxaxa/Media-Pipeline/pkg/httpserver"
	"github.com/andreyxaxa/Media-Pipeline/pkg/logger"
	"github.com/andreyxaxa/Media-Pipeline/pkg/metrics"
	"github.com/andreyxaxa/Media-Pipeline/pkg/postgres"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func Run(cfg *config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Logger
	l := logger.New(cfg.Log.Level)

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	pipelineMetrics := metrics.New(registry)

	// Repository

	// uploads root
	store, err := filestore.New(cfg.Upload.RootDir, cfg.Upload.PublicPrefix)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - filestore.New: %w", err))
	}

	// postgres
	pg, err := postgres.New(cfg.PG.URL, postgres.MaxPoolSize(cfg.PG.PoolMax))
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - postgres.New: %w", err))
	}
	defer pg.Close()

	// Use-Case

	// media pipeline use-case
	mediaOpts := media.Options{
		MaxSize:     cfg.Upload.MaxSize,
		MaxWidth:    cfg.Upload.MaxWidth,
		ThumbWidth:  cfg.Upload.ThumbWidth,
		ThumbHeight: cfg.Upload.ThumbHeight,
	}
	mediaUseCase := media.New(
		media.NewValidator(cfg.Upload.ImageTypes, cfg.Upload.DocumentTypes),
		store,
		processor.New(),
		codec.NewRegistry(codec.Options{
			JPEGQuality:    cfg.Upload.JPEGQuality,
			WebPQuality:    cfg.Upload.WebPQuality,
			PNGCompression: cfg.Upload.PNGCompression,
		}),
		pipelineMetrics,
		mediaOpts,
		l,
	)
	l.Info("app - Run - uploads root %s served as /%s (%s)", store.Root(), store.Prefix(), mediaOpts)

	// asset ledger use-case
	assetUseCase := asset.New(mediaUseCase, persistent.NewAssetRepo(pg), pg, l)

	// Temp file janitor
	tempJanitor := janitor.New(mediaUseCase, l, cfg.Janitor.Interval, cfg.Janitor.StaleAfter)

	// HTTP Server
	httpServer := httpserver.New(l,
		httpserver.Port(cfg.HTTP.Port),
		httpserver.Prefork(cfg.HTTP.UsePreforkMode),
		httpserver.BodyLimit(cfg.HTTP.BodyLimit),
		httpserver.WrapErrorHandler(restapi.WrapErrorHandler(cfg)),
	)
	restapi.NewRouter(httpServer.App, cfg, assetUseCase, registry, l)

	// Start Components
	if cfg.Janitor.Enabled {
		err = tempJanitor.Start(ctx)
		if err != nil {
			l.Fatal(fmt.Errorf("app - Run - tempJanitor.Start: %w", err))
		}
	}
	httpServer.Start()

	// Waiting Signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		l.Info("app - Run - signal: %s", s.String())
	case err = <-httpServer.Notify():
		l.Error(fmt.Errorf("app - Run - httpServer.Notify: %w", err))
	}

	// Shutdown
	err = httpServer.Shutdown()
	if err != nil {
		l.Error(fmt.Errorf("app - Run - httpServer.Shutdown: %w", err))
	}

	janitorShutdownCtx, janitorShutdownCancel := context.WithTimeout(ctx, cfg.Janitor.ShutdownTimeout)
	defer janitorShutdownCancel()
	err = tempJanitor.Shutdown(janitorShutdownCtx)
	if err != nil {
		l.Error(fmt.Errorf("app - Run - tempJanitor.Shutdown: %w", err))
	}
}
