package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/RealRussianBoi/Shopify-Integrated-PDF-Generator/internal/app"
	"github.com/RealRussianBoi/Shopify-Integrated-PDF-Generator/internal/catalog"
	jobmetrics "github.com/RealRussianBoi/Shopify-Integrated-PDF-Generator/internal/jobs"
	"github.com/RealRussianBoi/Shopify-Integrated-PDF-Generator/internal/platform/cache"
	"github.com/RealRussianBoi/Shopify-Integrated-PDF-Generator/internal/platform/db"
	"github.com/RealRussianBoi/Shopify-Integrated-PDF-Generator/internal/purchase"
	"github.com/RealRussianBoi/Shopify-Integrated-PDF-Generator/jobs"
	"github.com/RealRussianBoi/Shopify-Integrated-PDF-Generator/report"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	// The worker cannot run without Redis, so fail fast here.
	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	metrics := jobmetrics.NewMetrics(nil)

	orderRepo := purchase.NewRepository(pool)
	orderService := purchase.NewService(orderRepo)
	pdfClient := report.NewClient(cfg.GotenbergURL, cfg.GotenbergTimeout)
	renderer := report.NewRenderer(pdfClient)
	documents := jobs.NewDocumentStore(redisClient, cfg.DocumentTTL)
	pdfJob := jobs.NewOrderPDFJob(orderService, renderer, documents, logger, metrics)

	catalogRepo := catalog.NewRepository(pool)
	catalogCache := catalog.NewCache(redisClient, catalogRepo, cfg.CatalogCacheTTL)
	warmupJob := jobs.NewCatalogWarmupJob(catalogRepo, catalogCache, logger, metrics)

	warmupTask, err := jobs.NewCatalogWarmupTask(jobs.CatalogWarmupPayload{})
	if err != nil {
		logger.Error("build warmup task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskOrderPDF, Handler: pdfJob.Handle},
			{Type: jobs.TaskCatalogWarmup, Handler: warmupJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "0 3 * * *", Task: warmupTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
