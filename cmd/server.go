package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"table-booking/internal/data/migration"
	"table-booking/internal/wire"
	"table-booking/pkg/tracing"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the booking sweeper",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, cleanup, err := bootstrap()
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			logger := rt.logger
			logger.Info("Starting application",
				zap.String("app", rt.config.App.Name),
				zap.String("port", rt.config.App.Port),
				zap.Bool("debug", rt.config.App.Debug),
				zap.String("version", Version),
			)

			if migrateUp {
				if _, err := migration.Up(ctx, rt.db, logger); err != nil {
					return err
				}
			}

			shutdownTracer, err := tracing.InitTracer(ctx, rt.config.App.Name, rt.config.Tracing.Endpoint, logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := shutdownTracer(context.Background()); err != nil {
					logger.Warn("Failed to flush traces", zap.Error(err))
				}
			}()

			notifier := newNotifier(rt.config.Broker, logger)
			defer notifier.Close()

			app := wire.Wiring(rt.repo, rt.config, notifier, rt.clock, logger)

			go func() { _ = app.Sweeper.Run(ctx) }()

			return APIServer(ctx, app.Router, rt.config.App.Port, logger)
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", true, "run database migrations on startup")
	return cmd
}

// APIServer serves handler until ctx is done, then shuts down gracefully
func APIServer(ctx context.Context, handler http.Handler, port string, logger *zap.Logger) error {
	addr := fmt.Sprintf(":%s", port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
