package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"refi-advisor/config"
	httpLayer "refi-advisor/http"
	"refi-advisor/logging"
	"refi-advisor/repository"
	"refi-advisor/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("refi-advisor stopped")
	}
}

func run() error {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logging.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		return err
	}

	policy, err := config.LoadPolicy(cfg.Policy.File)
	if err != nil {
		return err
	}

	ctx := context.Background()

	cache, closeCache, err := openCache(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	defer closeCache()

	advisoryRepo, closeRepo, err := openAdvisoryRepository(cfg.Storage)
	if err != nil {
		return err
	}
	defer closeRepo()

	explainer := service.NewExplainer(cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.Timeout, policy.Refinance)

	refinanceService := service.NewRefinanceService(policy, advisoryRepo, cache, explainer, cfg.Cache.TTL)
	loanService := service.NewLoanService(policy.Bounds)
	earlyRepaymentService := service.NewEarlyRepaymentService(policy)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Window)
	defer rateLimiter.Stop()

	router := httpLayer.NewRouter(httpLayer.Handlers{
		Refinance:      httpLayer.NewRefinanceHandler(refinanceService),
		Loan:           httpLayer.NewLoanHandler(loanService),
		EarlyRepayment: httpLayer.NewEarlyRepaymentHandler(earlyRepaymentService),
	}, rateLimiter, cfg.Server.TrustProxy)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", cfg.Server.Addr).
			Str("cache", cfg.Cache.Driver).
			Str("storage", cfg.Storage.Driver).
			Msg("refinance advisor listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case <-quit:
		log.Info().Msg("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("server exited")
	return nil
}

func openCache(ctx context.Context, cfg config.CacheConfig) (repository.CacheRepository, func(), error) {
	if cfg.Driver != "redis" {
		return repository.NewMemoryCache(), func() {}, nil
	}

	cache := repository.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := cache.Ping(ctx); err != nil {
		_ = cache.Close()
		return nil, nil, err
	}
	return cache, func() {
		if err := cache.Close(); err != nil {
			log.Warn().Err(err).Msg("closing redis cache")
		}
	}, nil
}

func openAdvisoryRepository(cfg config.StorageConfig) (repository.AdvisoryRepository, func(), error) {
	if cfg.Driver != "sqlite" {
		return repository.NewAdvisoryRepositoryMemory(service.MaxHistoryLimit), func() {}, nil
	}

	db, err := repository.OpenSQLite(cfg.SQLitePath)
	if err != nil {
		return nil, nil, err
	}
	return repository.NewAdvisoryRepositorySQLite(db), func() {
		if err := db.Close(); err != nil {
			log.Warn().Err(err).Msg("closing sqlite")
		}
	}, nil
}
