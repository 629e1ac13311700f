package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"golang.org/x/text/language"

	"github.com/RealRussianBoi/Shopify-Integrated-PDF-Generator/internal/app"
	"github.com/RealRussianBoi/Shopify-Integrated-PDF-Generator/internal/catalog"
	"github.com/RealRussianBoi/Shopify-Integrated-PDF-Generator/internal/masterdata"
	"github.com/RealRussianBoi/Shopify-Integrated-PDF-Generator/internal/observability"
	"github.com/RealRussianBoi/Shopify-Integrated-PDF-Generator/internal/platform/db"
	"github.com/RealRussianBoi/Shopify-Integrated-PDF-Generator/internal/purchase"
	"github.com/RealRussianBoi/Shopify-Integrated-PDF-Generator/jobs"
	"github.com/RealRussianBoi/Shopify-Integrated-PDF-Generator/report"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping server startup")
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

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}

	metrics := observability.NewMetrics()

	orderRepo := purchase.NewRepository(pool)
	orderService := purchase.NewService(orderRepo)
	orderService.SetRecomputeObserver(metrics)

	pdfClient := report.NewClient(cfg.GotenbergURL, cfg.GotenbergTimeout)
	renderer := report.NewRenderer(pdfClient)

	jobClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	orderHandler := purchase.NewHandler(logger, orderService, renderer, jobClient)

	catalogRepo := catalog.NewRepository(pool)
	catalogCache := catalog.NewCache(redisClient, catalogRepo, cfg.CatalogCacheTTL)
	catalogHandler := catalog.NewHandler(logger, catalogCache)

	localeTag, err := language.Parse(cfg.Locale)
	if err != nil {
		logger.Warn("unknown locale, falling back to English", slog.String("locale", cfg.Locale))
		localeTag = language.Und
	}
	masterdataRepo := masterdata.NewRepository(pool)
	masterdataService := masterdata.NewService(masterdataRepo, localeTag)
	masterdataHandler := masterdata.NewHandler(logger, masterdataService)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	documents := jobs.NewDocumentStore(redisClient, cfg.DocumentTTL)
	jobHandler := jobs.NewHandler(inspector, documents, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		PurchaseHandler:   orderHandler,
		CatalogHandler:    catalogHandler,
		MasterDataHandler: masterdataHandler,
		JobHandler:        jobHandler,
		Metrics:           metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
