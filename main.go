package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/text/language"

	"career-roi/config"
	"career-roi/domain"
	httpLayer "career-roi/http"
	"career-roi/logger"
	"career-roi/repository"
	"career-roi/service"
)

func main() {
	configPath := flag.String("config", "", "optional config file (yaml, json or toml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Development); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	if err := run(ctx, cfg); err != nil {
		logger.Fatal(ctx, err)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	catalog, err := repository.NewYAMLCatalogRepository(cfg.Catalog.Path).LoadCatalog(ctx)
	if err != nil {
		return err
	}

	var history repository.CalculationRepository = repository.NewCalculationRepositoryMemory()
	if cfg.Postgres.DSN != "" {
		store, err := repository.NewPostgresStore(ctx, cfg.Postgres.DSN)
		if err != nil {
			return err
		}
		defer store.Close()

		if catalog, err = postgresCatalog(ctx, store, catalog); err != nil {
			return err
		}
		history = store
	}

	var cache repository.Cache = repository.NewMemoryCache()
	if cfg.Cache.RedisAddr != "" {
		redisCache, err := repository.NewRedisCache(ctx, cfg.Cache.RedisAddr)
		if err != nil {
			return err
		}
		defer func() { _ = redisCache.Close() }()
		cache = redisCache
	}

	explainer := service.NewExplanationService(service.ExplanationConfig{
		APIKey:  cfg.OpenAI.APIKey,
		APIURL:  cfg.OpenAI.APIURL,
		Model:   cfg.OpenAI.Model,
		Timeout: cfg.OpenAI.Timeout,
	})
	roiService := service.NewROIService(catalog, history, cache, explainer, cfg.Cache.TTL)
	financingService := service.NewFinancingService(catalog)

	lang, err := language.Parse(cfg.Engine.DefaultLanguage)
	if err != nil {
		return fmt.Errorf("parse engine.default_language: %w", err)
	}
	defaults := httpLayer.Defaults{
		CurrentSalary:    cfg.Engine.DefaultCurrentSalary,
		Location:         cfg.Engine.DefaultLocation,
		TimeHorizonYears: cfg.Engine.DefaultTimeHorizonYears,
		HistoryLimit:     cfg.Engine.HistoryLimit,
		Language:         lang,
	}

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Refill)
	defer rateLimiter.Stop()

	router := httpLayer.NewRouter(httpLayer.Handlers{
		ROI:       httpLayer.NewROIHandler(roiService, defaults),
		Financing: httpLayer.NewFinancingHandler(financingService),
		Catalog:   httpLayer.NewCatalogHandler(catalog),
	}, rateLimiter)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof(ctx, "career ROI API listening on %s (%d careers, explanations enabled: %v)",
			cfg.Server.Addr, catalog.Len(), explainer.Enabled())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("serve: %w", err)
	case sig := <-quit:
		logger.Infof(ctx, "received %s, shutting down", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info(ctx, "server exited")
	return nil
}

// postgresCatalog prepares the schema and returns the stored catalog, seeding it from
// fallback on first start.
func postgresCatalog(ctx context.Context, store *repository.PostgresStore, fallback domain.Catalog) (domain.Catalog, error) {
	if err := store.Migrate(ctx); err != nil {
		return domain.Catalog{}, err
	}

	stored, err := store.LoadCatalog(ctx)
	if err != nil {
		return domain.Catalog{}, err
	}
	if stored.Len() > 0 {
		return stored, nil
	}

	if err := store.SeedCatalog(ctx, fallback); err != nil {
		return domain.Catalog{}, err
	}
	logger.Infof(ctx, "seeded postgres catalog with %d careers", fallback.Len())
	return fallback, nil
}
