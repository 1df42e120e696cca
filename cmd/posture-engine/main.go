package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/miradorstack/tenant-posture/internal/api"
	"github.com/miradorstack/tenant-posture/internal/catalog"
	"github.com/miradorstack/tenant-posture/internal/config"
	"github.com/miradorstack/tenant-posture/internal/dashboard"
	"github.com/miradorstack/tenant-posture/internal/metrics"
	"github.com/miradorstack/tenant-posture/internal/repo"
	"github.com/miradorstack/tenant-posture/internal/services"
	"github.com/miradorstack/tenant-posture/internal/utils"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("failed to load config", slog.String("path", configPath), slog.Any("error", err))
		os.Exit(1)
	}

	logger := utils.NewLogger(os.Stdout, cfg.Logging.Level, cfg.Logging.JSON)
	logger.Info("starting tenant-posture", slog.String("address", cfg.Server.Address))

	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		logger.Error("failed to register metrics", slog.Any("error", err))
		os.Exit(1)
	}

	apiClient := repo.NewAPIClient(
		cfg.Upstream.BaseURL,
		repo.Paths{
			Templates:       cfg.Upstream.TemplatesPath,
			Organization:    cfg.Upstream.OrganizationPath,
			UserCounts:      cfg.Upstream.UserCountsPath,
			GraphRequest:    cfg.Upstream.GraphRequestPath,
			SharepointQuota: cfg.Upstream.SharepointQuotaPath,
		},
		cfg.Upstream.Timeout,
	)
	if cfg.Upstream.BaseURL == "" {
		logger.Warn("management API base URL not set; only inline templates can be aggregated")
	}

	standardsCatalog, err := catalog.Load(cfg.Catalog.Path, logger)
	if err != nil {
		logger.Error("failed to load standards catalog", slog.Any("error", err))
		os.Exit(1)
	}
	if standardsCatalog == nil {
		logger.Info("standards catalog not found; standards keep their keys as labels", slog.String("path", cfg.Catalog.Path))
	} else {
		logger.Info("standards catalog loaded", slog.String("path", cfg.Catalog.Path), slog.Int("entries", standardsCatalog.Len()))
	}

	builder := dashboard.NewBuilder(logger, apiClient, cfg.Dashboard.BuildTimeout)
	postureService := services.NewPostureService(logger, apiClient, builder, standardsCatalog)

	server, err := api.NewServer(cfg.Server, postureService)
	if err != nil {
		logger.Error("failed to create gRPC server", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var metricsServer *http.Server
	if cfg.Server.MetricsAddress != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsServer = &http.Server{
			Addr:         cfg.Server.MetricsAddress,
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 15 * time.Second,
		}
		go func() {
			logger.Info("metrics server listening", slog.String("address", cfg.Server.MetricsAddress))
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server exited", slog.Any("error", err))
				stop()
			}
		}()
	}

	go func() {
		logger.Info("gRPC server listening", slog.String("address", server.Address()))
		if serveErr := server.Start(); serveErr != nil {
			logger.Error("gRPC server exited", slog.Any("error", serveErr))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), server.GracefulTimeout())
	defer cancel()
	server.Shutdown(shutdownCtx)

	if metricsServer != nil {
		metricsCtx, cancelMetrics := context.WithTimeout(context.Background(), 5*time.Second)
		if err := metricsServer.Shutdown(metricsCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("metrics server shutdown", slog.Any("error", err))
		}
		cancelMetrics()
	}

	logger.Info("tenant-posture stopped", slog.Duration("p95", postureService.LatencyP95()))
}
