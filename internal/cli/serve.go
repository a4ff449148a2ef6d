package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/mhartmann/schemap/pkg/server"
	"github.com/mhartmann/schemap/pkg/store"
)

// serveCommand creates the serve command for running the HTTP layout API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		mongoURL string
		mongoDB  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP layout API",
		Long: `Run the HTTP layout API.

The API computes layouts for posted schemas and stores named snapshots.
Snapshots live in memory by default; point --mongo-url at a MongoDB instance
to persist them across restarts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, mongoURL, mongoDB)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, then :8466)")
	cmd.Flags().StringVar(&mongoURL, "mongo-url", "", "MongoDB connection URL for snapshot persistence")
	cmd.Flags().StringVar(&mongoDB, "mongo-db", "schemap", "MongoDB database name")

	return cmd
}

// runServe builds the server and blocks until the context is cancelled.
func (c *CLI) runServe(ctx context.Context, addr, mongoURL, mongoDB string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.ServerAddr()
	}

	var snapshots store.Store
	if mongoURL != "" {
		snapshots, err = store.NewMongoStore(ctx, mongoURL, mongoDB)
		if err != nil {
			return err
		}
		c.Logger.Info("snapshot store", "backend", "mongodb", "database", mongoDB)
	} else {
		snapshots = store.NewMemoryStore()
		c.Logger.Info("snapshot store", "backend", "memory")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = snapshots.Close(shutdownCtx)
	}()

	srv := server.New(c.newEngine(cfg), snapshots, server.WithLogger(c.Logger))
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
