package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Kerhoff/wishlists/internal/api"
	"github.com/Kerhoff/wishlists/internal/config"
	"github.com/Kerhoff/wishlists/internal/metrics"
	"github.com/Kerhoff/wishlists/internal/repository"
	"github.com/Kerhoff/wishlists/internal/repository/memory"
	"github.com/Kerhoff/wishlists/internal/repository/postgres"
	"github.com/Kerhoff/wishlists/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (default)",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, l, err := setup()
	if err != nil {
		return err
	}
	l.Info("Starting wishlist service...")

	ctx := cmd.Context()

	// Storage
	var store repository.Store
	switch cfg.Storage {
	case config.StorageMemory:
		l.Warn("Using in-memory storage; data is lost on exit")
		store = memory.NewStore(l)
	default:
		db, err := config.NewDatabase(ctx, cfg.DatabaseURL, l)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		if err := db.Migrate(); err != nil {
			return err
		}
		store = postgres.NewStore(db.DB, l)
	}

	svc := service.New(store, l)
	m := metrics.New()

	servers := []*http.Server{{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewServer(svc, l, m).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}}
	if cfg.PrometheusPort != "" {
		mux := http.NewServeMux()
		mux.Handle("GET /metrics", m.Handler())
		servers = append(servers, &http.Server{
			Addr:              ":" + cfg.PrometheusPort,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		g.Go(func() error {
			l.Infof("HTTP server listening on %s", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("HTTP server on %s: %w", srv.Addr, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		l.Info("Shutting down HTTP servers...")
		return shutdown(l, servers, cfg.ShutdownTimeout)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	l.Info("Wishlist service stopped")
	return nil
}

func shutdown(l *logrus.Logger, servers []*http.Server, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var errs []error
	for _, srv := range servers {
		if err := srv.Shutdown(ctx); err != nil {
			l.WithError(err).Errorf("Failed to shut down server on %s", srv.Addr)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
