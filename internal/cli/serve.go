package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/ianfhunter/enigma/internal/server"
	"github.com/ianfhunter/enigma/pkg/cache"
	"github.com/ianfhunter/enigma/pkg/engine"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		redis   string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the puzzle HTTP API",
		Long: `Run the puzzle HTTP API.

The server exposes puzzle generation, solving, validation, and reveal
endpoints under /v1. With --redis (or redis.addr in config.toml) puzzles
are cached in Redis so multiple instances share one cache; otherwise the
local file cache is used.

The server shuts down gracefully on SIGINT/SIGTERM.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redis, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", c.Config.Server.Addr, "listen address")
	cmd.Flags().StringVar(&redis, "redis", c.Config.Redis.Addr, "redis address for the shared cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe builds the cache and runner, then serves until ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, addr, redis string, noCache bool) error {
	pc, err := c.serverCache(ctx, redis, noCache)
	if err != nil {
		return err
	}

	runner := engine.NewRunner(pc, nil, c.Logger)
	defer runner.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(runner, c.Logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Infof("listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// serverCache picks redis when configured, the file cache otherwise.
func (c *CLI) serverCache(ctx context.Context, redis string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redis != "" {
		rc, err := cache.NewRedisCache(ctx, redis, c.Config.Redis.Password, c.Config.Redis.DB)
		if err != nil {
			return nil, fmt.Errorf("connect to redis %s: %w", redis, err)
		}
		return rc, nil
	}
	return newCache(false)
}
