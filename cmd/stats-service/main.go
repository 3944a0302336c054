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
	"github.com/gorden73/Explore-with-me-sub000/internal/pkg/logger"
	"github.com/gorden73/Explore-with-me-sub000/internal/stats"
	"github.com/gorden73/Explore-with-me-sub000/internal/stats/postgres"
	"github.com/gorden73/Explore-with-me-sub000/internal/stats/rest"
)

func main() {
	logger.Init("ewm-stats")
	log := logger.Logger

	cfg, err := config.LoadStats()
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

	repo := postgres.New(pool)
	svc := stats.New(repo)
	router := rest.NewRouter(rest.NewHandler(svc, repo))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Str("env", cfg.AppEnv).Msg("stats service listening")
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
	log.Info().Msg("stats service stopped")
}
