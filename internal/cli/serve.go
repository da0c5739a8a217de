package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"kennel-console/internal/adapters/breeds/dogapi"
	pg "kennel-console/internal/adapters/storage/postgres"
	"kennel-console/internal/router"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Levanta la API HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), rootOpts, migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "aplica el schema antes de arrancar (solo Postgres)")

	return cmd
}

func serve(parent context.Context, opts *RootOptions, migrate bool) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, log := opts.Config, opts.Logger
	ropts := router.Options{
		Logger:            log,
		DefaultPerDayRate: cfg.Billing.DefaultPerDayRate,
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.DB.DSN != "" {
		db, err := pg.Open(cfg.DB.DSN)
		if err != nil {
			return fmt.Errorf("open postgres: %w", err)
		}
		defer db.Close()

		if migrate {
			if err := pg.Migrate(ctx, db); err != nil {
				return err
			}
			log.Info("schema applied", nil)
		}

		feed := pg.NewFeed(cfg.DB.DSN, pg.FeedOptions{Logger: log})
		g.Go(func() error { return feed.Run(gctx) })

		ropts.DB = db
		ropts.Feed = feed
		log.Info("using postgres store", nil)
	} else {
		log.Warn("DB_DSN not set, using in-memory store", nil)
	}

	breeds, err := dogapi.NewClient(dogapi.Config{
		BaseURL: cfg.DogAPI.BaseURL,
		APIKey:  cfg.DogAPI.APIKey,
		Timeout: cfg.DogAPI.Timeout,
	})
	if err != nil {
		log.Warn("breed search disabled", map[string]any{"error": err})
	} else {
		ropts.Breeds = breeds
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.NewRouter(ropts),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		BaseContext:  func(_ net.Listener) context.Context { return gctx },
	}

	g.Go(func() error {
		log.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("shutting down", nil)
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
