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

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gorden73/Explore-with-me-sub000/internal/config"
	"github.com/gorden73/Explore-with-me-sub000/internal/infrastructure/postgres"
	"github.com/gorden73/Explore-with-me-sub000/internal/infrastructure/redis"
	"github.com/gorden73/Explore-with-me-sub000/internal/pkg/logger"
	"github.com/gorden73/Explore-with-me-sub000/internal/security"
	"github.com/gorden73/Explore-with-me-sub000/internal/service/category"
	"github.com/gorden73/Explore-with-me-sub000/internal/service/compilation"
	"github.com/gorden73/Explore-with-me-sub000/internal/service/event"
	"github.com/gorden73/Explore-with-me-sub000/internal/service/rating"
	"github.com/gorden73/Explore-with-me-sub000/internal/service/request"
	"github.com/gorden73/Explore-with-me-sub000/internal/service/user"
	"github.com/gorden73/Explore-with-me-sub000/internal/statsclient"
	"github.com/gorden73/Explore-with-me-sub000/internal/transport/rest"
)

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func main() {
	logger.Init("ewm-main")
	log := logger.Logger

	cfg, err := config.LoadMain()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres pool init failed")
	}
	defer pool.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	if err := pool.Ping(pingCtx); err != nil {
		cancel()
		log.Fatal().Err(err).Msg("postgres unreachable")
	}
	cancel()

	store := postgres.New(pool)

	cache := redis.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.ViewsTTL)
	defer cache.Close()

	stats := statsclient.New(cfg.StatsURL, cfg.StatsAppName, cfg.StatsTimeout)

	clock := systemClock{}
	events := event.New(store, store, store, stats, cache, clock)
	users := user.New(store)
	categories := category.New(store)
	requests := request.New(store, store, store, clock)
	ratings := rating.New(store, store, store)
	compilations := compilation.New(store, events)

	var verifier security.AdminTokenVerifier
	if cfg.AdminJWTSecret != "" {
		verifier = security.NewHS256Verifier(cfg.AdminJWTSecret)
	}

	var limiter rest.RateLimiter
	if cfg.RLEnabled {
		limiter = cache
	}

	handler := rest.NewHandler(users, categories, events, requests, ratings, compilations)
	router := rest.NewRouter(rest.RouterDeps{
		Handler:         handler,
		Store:           store,
		AdminVerifier:   verifier,
		AdminIssuer:     cfg.AdminJWTIssuer,
		Limiter:         limiter,
		RateLimit:       cfg.RLLimit,
		RateLimitWindow: cfg.RLWindow,
	})

	if cfg.OutboxEnabled {
		store.StartOutboxWorker(ctx, cfg.RabbitURL, cfg.RabbitExchange)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Str("env", cfg.AppEnv).Msg("main service listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("main service stopped")
}
