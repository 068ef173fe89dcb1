package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"splinter-planner/internal/config"
	"splinter-planner/internal/constants"
	fxmodules "splinter-planner/internal/fx"
	"splinter-planner/internal/middleware"
	"splinter-planner/internal/poller"
	"splinter-planner/internal/server"
)

func main() {
	fx.New(
		fxmodules.Module,
		fx.Invoke(runServer),
		fx.Invoke(runPoller),
	).Run()
}

func runServer(
	lc fx.Lifecycle,
	plannerServer *server.PlannerServer,
	cfg *config.Config,
	db *sql.DB,
	logger zerolog.Logger,
) {
	mux := http.NewServeMux()
	plannerServer.RegisterRoutes(mux)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	handler := middleware.RequestID(logger)(c.Handler(mux))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: handler,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info().Str("addr", srv.Addr).Msg("server starting")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Fatal().Err(err).Msg("server failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("server shutdown failed")
				return err
			}

			if err := db.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing database connection")
			}
			logger.Info().Msg("server stopped gracefully")
			return nil
		},
	})
}

func runPoller(
	lc fx.Lifecycle,
	battlePoller *poller.BattlePoller,
	cfg *config.Config,
	logger zerolog.Logger,
) {
	if !cfg.PollingEnabled {
		logger.Info().Msg("battle polling disabled")
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info().Dur("interval", cfg.PollInterval).Msg("battle poller starting")
			battlePoller.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("battle poller stopping")
			battlePoller.Stop()
			return nil
		},
	})
}
