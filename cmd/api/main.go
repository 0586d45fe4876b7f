package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog-backend/config"
	"catalog-backend/internal/delivery/http/middleware"
	v1 "catalog-backend/internal/delivery/http/v1"
	"catalog-backend/internal/domain"
	"catalog-backend/internal/infrastructure/cache"
	"catalog-backend/internal/repository/memory"
	pgrepo "catalog-backend/internal/repository/postgres"
	"catalog-backend/internal/usecase"
	"catalog-backend/pkg/clock"
	"catalog-backend/pkg/logger"
	"catalog-backend/pkg/utils"

	"github.com/NYTimes/gziphandler"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/time/rate"
)

const serviceName = "catalog-api"

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	// run owns every resource, so its deferred cleanup finishes before we exit.
	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("Server stopped with error")
	}
}

func run(cfg *config.Config) error {
	log := logger.Get()

	clk := clock.Real{}
	ids := utils.UUIDGenerator{}

	productRepo, pool, err := newProductRepository(context.Background(), cfg, clk, ids)
	if err != nil {
		return err
	}
	if pool != nil {
		defer pool.Close()
	}

	// Product cache, cleanup every 2x TTL
	productCache := cache.NewMemoryCache[domain.Product](cfg.CacheProductTTL, 2*cfg.CacheProductTTL)

	productUC := usecase.NewProductUsecase(productRepo, productCache, cfg.CacheProductTTL, cfg.RequestTimeout)

	mux := http.NewServeMux()
	v1.NewProductHandler(productUC).Register(mux)
	if pool != nil {
		v1.NewSystemHandler(pool).Register(mux)
	} else {
		v1.NewSystemHandler(nil).Register(mux)
	}

	rateLimiter := middleware.NewRateLimiter(
		context.Background(),
		rate.Limit(cfg.RateLimitRPS),
		cfg.RateLimitBurst,
		time.Minute,   // cleanup period
		3*time.Minute, // client TTL
		clk,
	)
	defer rateLimiter.Shutdown()

	// CORS, Request Logger, Rate Limit, Gzip, Tracing (outermost)
	handler := middleware.NewCORSMiddleware(cfg.AllowedOrigin)(mux)
	handler = middleware.RequestLogger(handler)
	handler = rateLimiter.Middleware()(handler)
	handler = gziphandler.GzipHandler(handler)
	handler = middleware.Tracing(serviceName)(handler)

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	logger.ServiceStart(serviceName, cfg.Env, cfg.Port)
	log.Info().Str("api_url", cfg.APIURL).Str("driver", cfg.RepositoryDriver).Msgf("Server starting on %s", addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		return fmt.Errorf("server failed to start: %w", err)
	case <-quit:
	}

	log.Info().Msg("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.ServiceStop(serviceName)
	return nil
}

// newProductRepository picks the storage backend from REPOSITORY_DRIVER. The
// returned pool is nil for the memory driver.
func newProductRepository(ctx context.Context, cfg *config.Config, clk clock.Clock, ids utils.IDGenerator) (domain.ProductRepository, *pgxpool.Pool, error) {
	log := logger.Get()

	if cfg.RepositoryDriver == config.DriverMemory {
		log.Warn().Msg("Using in-memory product repository, data is lost on restart")
		return memory.NewProductRepository(clk, ids), nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgrepo.NewPgxPool(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	log.Info().Msg("Successfully connected to PostgreSQL via pgx")

	if cfg.DBAutoMigrate {
		if err := pgrepo.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("apply schema: %w", err)
		}
		log.Info().Msg("Database schema is up to date")
	}

	return pgrepo.NewProductRepository(pool, clk, ids), pool, nil
}
