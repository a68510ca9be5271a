package app

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansel1/merry"
	"github.com/fpawel/evictdash/internal/loader"
	"github.com/fpawel/evictdash/internal/web"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func (a *app) setupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Create the database file and its tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withDB(cmd.Context(), func(ctx context.Context, db *sqlx.DB) error {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Database %s is ready.\n", a.config.DB.File)
				return err
			})
		},
	}
}

func (a *app) loadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <file.csv>",
		Short: "Load counties, demographics, housing and evictions from a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDB(cmd.Context(), func(ctx context.Context, db *sqlx.DB) error {
				r, err := loader.LoadFile(ctx, db, args[0], commandLog(cmd))
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d of %d rows from %s, %d failed.\n",
					r.Inserted, r.Rows, args[0], r.Failed)
				return err
			})
		},
	}
}

func (a *app) serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.config.Addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.withDB(ctx, func(ctx context.Context, db *sqlx.DB) error {
				return serve(ctx, addr, web.NewHTTPService(db, log.New("unit", "http"), a.config.AllowedOrigins))
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides the config")
	return cmd
}

func serve(ctx context.Context, addr string, s *web.APIService) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info("listen", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return merry.Append(err, addr)
	case <-ctx.Done():
	}

	log.Info("shutdown", "addr", addr)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return merry.Append(err, "shutdown")
	}
	if err := <-errCh; err != nil && err != http.ErrServerClosed {
		return merry.Wrap(err)
	}
	return nil
}

func (a *app) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := marshalConfig(a.configFile, a.config)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
}
