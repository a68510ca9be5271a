package app

import (
	"context"
	"fmt"
	"io"

	"github.com/fpawel/evictdash/internal/data"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

func (a *app) queryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run an analytical query",
	}
	cmd.AddCommand(
		a.hotspotCmd(),
		a.leadersCmd(),
		a.disparityCmd(),
		a.affordabilityCmd(),
		a.stateCmd(),
	)
	return cmd
}

// printResult prints xs as a table, or notice when xs is empty.
func printResult[T any](w io.Writer, cols []column[T], xs []T, notice string) error {
	if len(xs) == 0 {
		_, err := fmt.Fprintln(w, notice)
		return err
	}
	return printRows(w, cols, xs)
}

func (a *app) hotspotCmd() *cobra.Command {
	var income, rentBurden float64
	cmd := &cobra.Command{
		Use:   "hotspot",
		Short: "Counties below an income threshold and above a rent burden threshold",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withDB(cmd.Context(), func(ctx context.Context, db *sqlx.DB) error {
				xs, err := data.BarrierHotspots(ctx, db, income, rentBurden)
				if err != nil {
					return err
				}
				return printResult(cmd.OutOrStdout(), hotspotCols, xs,
					"No results found for the selected thresholds.")
			})
		},
	}
	cmd.Flags().Float64Var(&income, "income", data.DefaultIncomeThreshold, "median household income below")
	cmd.Flags().Float64Var(&rentBurden, "rent-burden", data.DefaultRentBurdenThreshold, "rent burdened percent above")
	return cmd
}

func (a *app) leadersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leaders",
		Short: fmt.Sprintf("Top %d counties by eviction filings", data.TopEvictionLeadersLimit),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withDB(cmd.Context(), func(ctx context.Context, db *sqlx.DB) error {
				xs, err := data.TopEvictionLeaders(ctx, db)
				if err != nil {
					return err
				}
				return printResult(cmd.OutOrStdout(), leaderCols, xs, "No eviction data found.")
			})
		},
	}
}

func (a *app) disparityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disparity",
		Short: "Average filings by share of Black population",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withDB(cmd.Context(), func(ctx context.Context, db *sqlx.DB) error {
				xs, err := data.DemographicDisparity(ctx, db)
				if err != nil {
					return err
				}
				return printResult(cmd.OutOrStdout(), disparityCols, xs,
					"No data found for demographic disparity query.")
			})
		},
	}
}

func (a *app) affordabilityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "affordability",
		Short: "Counties in the top rent quartile and the bottom income quartile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withDB(cmd.Context(), func(ctx context.Context, db *sqlx.DB) error {
				xs, err := data.AffordabilityVsFilings(ctx, db)
				if err != nil {
					return err
				}
				return printResult(cmd.OutOrStdout(), affordabilityCols, xs,
					"No results found for affordability vs. filings.")
			})
		},
	}
}

func (a *app) stateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "state <ABBR>",
		Short: "Average rent burden and total filings of a state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDB(cmd.Context(), func(ctx context.Context, db *sqlx.DB) error {
				xs, err := data.StateSummaries(ctx, db, args[0])
				if err != nil {
					return err
				}
				return printResult(cmd.OutOrStdout(), stateCols, xs, "No results found for that state.")
			})
		},
	}
}

func (a *app) describeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "describe [column...]",
		Short:     "Summary statistics of numeric columns, all of them when none is given",
		ValidArgs: data.SummaryColumns(),
		RunE: func(cmd *cobra.Command, args []string) error {
			columns := args
			if len(columns) == 0 {
				columns = data.SummaryColumns()
			}
			return a.withDB(cmd.Context(), func(ctx context.Context, db *sqlx.DB) error {
				var xs []data.ColumnSummary
				for _, column := range columns {
					x, err := data.Summarize(ctx, db, column)
					if err != nil {
						return err
					}
					if x.Count > 0 {
						xs = append(xs, x)
					}
				}
				return printResult(cmd.OutOrStdout(), summaryCols, xs, "No data found.")
			})
		},
	}
}
