package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/Sternrassler/places-client/pkg/client"
	"github.com/Sternrassler/places-client/pkg/logging"
	"github.com/Sternrassler/places-client/pkg/search"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

func main() {
	if err := cmdRoot().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func cmdRoot() *cobra.Command {
	var (
		logLevel  string
		logPretty bool
	)

	cmd := &cobra.Command{
		Use:           "places-proxy",
		Short:         "Place-search client and HTTP proxy",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg := logging.ConfigFromEnv()
			if cmd.Flags().Changed("log-level") {
				cfg.Level = logging.LogLevel(strings.ToLower(logLevel))
			}
			if cmd.Flags().Changed("log-pretty") {
				cfg.Pretty = logPretty
			}
			cfg.Output = cmd.ErrOrStderr()
			logging.Setup(cfg)
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&logPretty, "log-pretty", false, "Human-readable log output")

	cmd.AddCommand(cmdServe())
	cmd.AddCommand(cmdSearch())

	return cmd
}

// app holds the long-lived dependencies of a command.
type app struct {
	client *client.Client
	svc    *search.Service
	redis  *redis.Client
}

// newApp builds the client and search service from the environment.
func newApp(opts ...search.Option) (*app, error) {
	cfg, err := client.ConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	c, err := client.New(cfg)
	if err != nil {
		if cfg.Redis != nil {
			cfg.Redis.Close()
		}
		return nil, fmt.Errorf("create client: %w", err)
	}

	return &app{
		client: c,
		svc:    search.New(c, opts...),
		redis:  cfg.Redis,
	}, nil
}

// Close releases the client and the Redis connection.
func (a *app) Close() {
	a.client.Close()
	if a.redis != nil {
		a.redis.Close()
	}
}
