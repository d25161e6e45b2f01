package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/dimchain/dimchain/internal/api"
	"github.com/dimchain/dimchain/pkg/cache"
	"github.com/dimchain/dimchain/pkg/pipeline"
	"github.com/dimchain/dimchain/pkg/store"
)

// serveCommand creates the HTTP API command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisAddr string
		mongoURI  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dimensioning HTTP API",
		Long: `Serve runs the HTTP API backed by the same pipeline as the
dimension command. With --redis, pass results are cached in Redis so
several replicas share one cache; otherwise the local file cache is
used. With --mongo-uri, completed runs are persisted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			backend, err := serveCache(ctx, redisAddr)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(backend, nil, logger)
			defer runner.Close()

			var st store.Store
			if mongoURI != "" {
				ms, err := store.NewMongoStore(ctx, mongoURI, "", "")
				if err != nil {
					return err
				}
				st = ms
				defer ms.Close(context.Background())
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           api.NewServer(runner, st, logger).Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			logger.Info("serving", "addr", addr, "redis", redisAddr != "", "store", st != nil)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address for shared caching (host:port)")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "", "MongoDB connection string for run persistence")

	return cmd
}

// serveCache picks the cache backend for server mode.
func serveCache(ctx context.Context, redisAddr string) (cache.Cache, error) {
	if redisAddr != "" {
		return cache.NewRedisCache(ctx, redisAddr, "", 0)
	}
	return newCache(false)
}
