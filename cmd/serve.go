package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/wire"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/pkg/metrics"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

func runServer(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer rt.close()

	config, logger := rt.config, rt.logger
	logger.Info("Starting application",
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.String("storage", config.App.StorageDriver),
	)

	var m *metrics.Metrics
	if config.Metrics.Enabled {
		m = metrics.New(config.App.Name)
	}

	// Wire all dependencies
	app := wire.Wiring(rt.repo, config, m, logger)

	if config.App.SeasonFile != "" {
		table, err := app.Service.Season.ImportFile(ctx, config.App.SeasonFile)
		if err != nil {
			logger.Error("Failed to import season file",
				zap.Error(err),
				zap.String("path", config.App.SeasonFile),
			)
			return err
		}
		logger.Info("Season file imported", zap.String("name", table.Name))
	}

	if config.Payment.CallbackSecret == "" {
		logger.Warn("PAYMENT_CALLBACK_SECRET is empty, payment callbacks are disabled")
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", config.App.Port),
		Handler:           app.Router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      config.Reserve.Timeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		// Start server
		logger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error("Server error", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.App.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	logger.Info("Server stopped gracefully")
	return nil
}
