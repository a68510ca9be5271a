package app

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ansel1/merry"
	"github.com/fpawel/evictdash/internal/data"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

type evictionFlags struct {
	fips, year, filings int64
}

func (f *evictionFlags) bind(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&f.fips, "fips", 0, "county FIPS code")
	cmd.Flags().Int64Var(&f.year, "year", 0, "eviction year")
	cmd.Flags().Int64Var(&f.filings, "filings", 0, "number of eviction filings")
	for _, name := range []string{"fips", "year", "filings"} {
		_ = cmd.MarkFlagRequired(name)
	}
}

func parseEvictionID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, merry.Errorf("invalid eviction id: %q", s)
	}
	return id, nil
}

func (a *app) evictionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evictions",
		Short: "Manage eviction records",
	}
	cmd.AddCommand(
		a.evictionsListCmd(),
		a.evictionsGetCmd(),
		a.evictionsAddCmd(),
		a.evictionsUpdateCmd(),
		a.evictionsDeleteCmd(),
	)
	return cmd
}

func (a *app) evictionsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List eviction records, most filings first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withDB(cmd.Context(), func(ctx context.Context, db *sqlx.DB) error {
				xs, err := data.ListEvictions(ctx, db)
				if err != nil {
					return err
				}
				if len(xs) == 0 {
					_, err := fmt.Fprintln(cmd.OutOrStdout(), "No eviction records found.")
					return err
				}
				return printRows(cmd.OutOrStdout(), evictionCols, xs)
			})
		},
	}
}

func (a *app) evictionsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one eviction record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEvictionID(args[0])
			if err != nil {
				return err
			}
			return a.withDB(cmd.Context(), func(ctx context.Context, db *sqlx.DB) error {
				x, ok, err := data.GetEviction(ctx, db, id)
				if err != nil {
					return err
				}
				if !ok {
					return merry.Errorf("eviction record %d not found", id)
				}
				return printRows(cmd.OutOrStdout(), evictionCols, []data.EvictionRecord{x})
			})
		},
	}
}

func (a *app) evictionsAddCmd() *cobra.Command {
	var f evictionFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an eviction record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withDB(cmd.Context(), func(ctx context.Context, db *sqlx.DB) error {
				id, err := data.AddEviction(ctx, db, f.fips, f.year, f.filings)
				if err != nil {
					return err
				}
				commandLog(cmd).Info("eviction record added", "eviction_id", id, "fips", f.fips)
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Eviction record %d added.\n", id)
				return err
			})
		},
	}
	f.bind(cmd)
	return cmd
}

func (a *app) evictionsUpdateCmd() *cobra.Command {
	var f evictionFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace fips, year and filings of an eviction record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEvictionID(args[0])
			if err != nil {
				return err
			}
			return a.withDB(cmd.Context(), func(ctx context.Context, db *sqlx.DB) error {
				if err := data.UpdateEviction(ctx, db, id, f.fips, f.year, f.filings); err != nil {
					return err
				}
				commandLog(cmd).Info("eviction record updated", "eviction_id", id)
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Eviction record %d updated.\n", id)
				return err
			})
		},
	}
	f.bind(cmd)
	return cmd
}

func (a *app) evictionsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an eviction record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEvictionID(args[0])
			if err != nil {
				return err
			}
			return a.withDB(cmd.Context(), func(ctx context.Context, db *sqlx.DB) error {
				if err := data.DeleteEviction(ctx, db, id); err != nil {
					return err
				}
				commandLog(cmd).Info("eviction record deleted", "eviction_id", id)
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Eviction record %d deleted.\n", id)
				return err
			})
		},
	}
}

func (a *app) countiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "counties",
		Short: "List counties by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withDB(cmd.Context(), func(ctx context.Context, db *sqlx.DB) error {
				xs, err := data.ListCounties(ctx, db)
				if err != nil {
					return err
				}
				if len(xs) == 0 {
					_, err := fmt.Fprintln(cmd.OutOrStdout(), "No counties found.")
					return err
				}
				return printRows(cmd.OutOrStdout(), countyCols, xs)
			})
		},
	}
}
