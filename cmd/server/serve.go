package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/recallify/catalog-service/app/database"
	"github.com/recallify/catalog-service/app/server"
	"github.com/recallify/catalog-service/models"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(ctx context.Context) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if cfg.Migrate.OnStart {
		if err := database.Migrate(cfg.Postgres.DSN(), database.Up, log); err != nil {
			return err
		}
	}

	db, closeDB, err := database.New(cfg.Postgres, cfg.Log.SQLLevel, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeDB(); err != nil {
			log.Warn("failed to close database", zap.Error(err))
		}
	}()

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      server.NewHandler(models.NewCatalogRepository(db), database.NewPinger(db), log),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Info("server stopped")
	return nil
}
