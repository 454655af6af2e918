package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/circlepack/pkg/cache"
	"github.com/matzehuels/circlepack/pkg/server"
	"github.com/matzehuels/circlepack/pkg/store"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		redis   string
		mongo   string
		mongoDB string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the circlepack HTTP API server",
		Long: `Run the circlepack HTTP API server.

The server exposes the packing engines under /v1 and persists saved
packings. Backends are chosen by flags (or the config file):

  --redis    layout cache in redis (default: local file cache)
  --mongo    packing store in MongoDB (default: in-memory)

Prometheus metrics are served at /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redis, mongo, mongoDB, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", c.Config.Serve.Addr, "listen address")
	cmd.Flags().StringVar(&redis, "redis", c.Config.Serve.Redis, "redis address for the layout cache")
	cmd.Flags().StringVar(&mongo, "mongo", c.Config.Serve.MongoURI, "MongoDB URI for the packing store")
	cmd.Flags().StringVar(&mongoDB, "mongo-db", c.Config.Serve.MongoDatabase, "MongoDB database name")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable layout caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, redisAddr, mongoURI, mongoDB string, noCache bool) error {
	ca, err := c.serveCache(ctx, redisAddr, noCache)
	if err != nil {
		return err
	}
	defer ca.Close()

	st, err := c.serveStore(ctx, mongoURI, mongoDB)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = st.Close(closeCtx)
	}()

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(st, ca, c.Logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("serving", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// serveCache picks the layout cache backend: redis when configured, file
// cache otherwise, null cache when disabled.
func (c *CLI) serveCache(ctx context.Context, redisAddr string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, redisAddr)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.Logger.Info("layout cache", "backend", "redis", "addr", redisAddr)
		return cache.NewScoped(rc, appName+":"), nil
	}
	return newCache(false)
}

// serveStore picks the packing store backend: MongoDB when configured,
// in-memory otherwise.
func (c *CLI) serveStore(ctx context.Context, mongoURI, mongoDB string) (store.Store, error) {
	if mongoURI == "" {
		printWarning("No MongoDB configured, packings are kept in memory")
		return store.NewMemoryStore(), nil
	}
	ms, err := store.NewMongoStore(ctx, mongoURI, mongoDB)
	if err != nil {
		return nil, fmt.Errorf("connect MongoDB: %w", err)
	}
	c.Logger.Info("packing store", "backend", "mongodb", "db", mongoDB)
	return ms, nil
}
