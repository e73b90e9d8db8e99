package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Aricg/PuckDraft/internal/config"
	"github.com/Aricg/PuckDraft/internal/constants"
	fxmodules "github.com/Aricg/PuckDraft/internal/fx"
	"github.com/Aricg/PuckDraft/internal/repository"
	"github.com/Aricg/PuckDraft/internal/server"
	"github.com/Aricg/PuckDraft/internal/telemetry"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		fxmodules.Module,
		fx.Invoke(runServer),
	).Run()
}

func runServer(
	lc fx.Lifecycle,
	srv *server.Server,
	cfg *config.Config,
	hits *repository.HitCounterRepository,
	tele *telemetry.Client,
	logger zerolog.Logger,
) {
	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: srv.Handler(),
	}

	flushDone := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info().Str("addr", httpSrv.Addr).Msg("server starting")
				if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Fatal().Err(err).Msg("server failed")
				}
			}()
			go flushLoop(hits, tele, logger, flushDone)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("shutting down server")
			close(flushDone)

			shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
			defer cancel()

			if err := hits.Flush(); err != nil {
				logger.Warn().Err(err).Msg("final hit counter flush failed")
			}
			tele.Report(shutdownCtx, hits.Current())

			if err := httpSrv.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("server shutdown failed")
				return err
			}
			logger.Info().Msg("server stopped gracefully")
			return nil
		},
	})
}

// flushLoop persists and reports the hit counter on a fixed interval. It
// runs apart from request handling, so a slow or unreachable telemetry sink
// never delays a response.
func flushLoop(hits *repository.HitCounterRepository, tele *telemetry.Client, logger zerolog.Logger, done <-chan struct{}) {
	ticker := time.NewTicker(constants.HitFlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := hits.Flush(); err != nil {
				logger.Warn().Err(err).Msg("periodic hit counter flush failed")
				continue
			}
			ctx, cancel := context.WithTimeout(context.Background(), constants.TelemetryTimeout)
			tele.Report(ctx, hits.Current())
			cancel()
		case <-done:
			return
		}
	}
}
