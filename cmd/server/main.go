package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"league-tracker/internal/config"
	"league-tracker/internal/constants"
	fxmodules "league-tracker/internal/fx"
	"league-tracker/internal/middleware"
	"league-tracker/internal/server"
	"league-tracker/internal/service"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		fxmodules.Module,
		fx.Invoke(runServer),
		fx.Invoke(runRefreshLoop),
	).Run()
}

func runServer(
	lc fx.Lifecycle,
	apiServer *server.Server,
	cfg *config.Config,
	db *sql.DB,
	logger zerolog.Logger,
) {
	mux := http.NewServeMux()
	apiServer.Register(mux)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
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

// runRefreshLoop keeps the snapshot warm without any HTTP traffic. The
// coordinator's own freshness gate and lock make this safe to run next
// to request-triggered refreshes.
func runRefreshLoop(
	lc fx.Lifecycle,
	cfg *config.Config,
	syncSvc *service.SyncService,
	logger zerolog.Logger,
) {
	if cfg.RefreshInterval <= 0 {
		return
	}

	loopCtx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info().Dur("interval", cfg.RefreshInterval).Msg("starting refresh loop")
			go func() {
				defer close(stopped)

				ticker := time.NewTicker(cfg.RefreshInterval)
				defer ticker.Stop()

				for {
					select {
					case <-loopCtx.Done():
						return
					case <-ticker.C:
						if _, err := syncSvc.Refresh(loopCtx, false); err != nil {
							logger.Error().Err(err).Msg("scheduled refresh failed")
						}
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			<-stopped
			logger.Info().Msg("refresh loop stopped")
			return nil
		},
	})
}
