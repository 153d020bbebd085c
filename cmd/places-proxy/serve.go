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

	"github.com/Sternrassler/places-client/pkg/client"
	"github.com/Sternrassler/places-client/pkg/logging"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func cmdServe() *cobra.Command {
	var (
		port       string
		maxRetries int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP search proxy",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.NewLogger("places-proxy")

			a, err := newApp()
			if err != nil {
				logger.Error().Err(err).Msg("Failed to start")
				return err
			}
			defer a.Close()

			if a.redis != nil {
				if err := a.redis.Ping(cmd.Context()).Err(); err != nil {
					return fmt.Errorf("connect to redis: %w", err)
				}
				logger.Info().Msg("Connected to Redis")
			}

			retry := client.DefaultRetryConfig()
			retry.MaxAttempts = maxRetries

			srv := &server{
				svc:    a.svc,
				redis:  a.redis,
				retry:  retry,
				logger: logger,
			}

			httpServer := &http.Server{
				Addr:              ":" + port,
				Handler:           srv.routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Info().
					Str("addr", httpServer.Addr).
					Str("base_url", a.client.BaseURL()).
					Msg("Starting places proxy")
				errCh <- httpServer.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("server failed: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			logger.Info().Msg("Shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&port, "port", envOr("PORT", "8080"), "Listen port")
	cmd.Flags().IntVar(&maxRetries, "max-retries", client.DefaultRetryConfig().MaxAttempts, "Attempts per upstream query")

	return cmd
}

func envOr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
