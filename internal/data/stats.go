package data

import (
	"context"
	"math"
	"sort"

	"github.com/ansel1/merry"
	"github.com/jmoiron/sqlx"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// PercentileCont returns the p-th continuous percentile of x, interpolating
// linearly between the two closest ranks, rank = p*(n-1). This is what
// PERCENTILE_CONT computes in PostgreSQL. gonum's stat.LinInterp uses
// rank = p*n and gives different cut-offs on small samples.
// The second result is false for an empty x.
func PercentileCont(p float64, x []float64) (float64, bool) {
	if len(x) == 0 {
		return 0, false
	}
	xs := x
	if !sort.Float64sAreSorted(x) {
		xs = make([]float64, len(x))
		copy(xs, x)
		sort.Float64s(xs)
	}
	rank := p * float64(len(xs)-1)
	lo := math.Floor(rank)
	hi := math.Ceil(rank)
	if lo == hi {
		return xs[int(lo)], true
	}
	return xs[int(lo)] + (rank-lo)*(xs[int(hi)]-xs[int(lo)]), true
}

// ColumnSummary describes the distribution of one numeric column.
type ColumnSummary struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Q25    float64 `json:"q25"`
	Median float64 `json:"median"`
	Q75    float64 `json:"q75"`
	Max    float64 `json:"max"`
}

var summaryColumns = map[string]string{
	"pop_total":               "Demographics",
	"pop_white":               "Demographics",
	"pop_black":               "Demographics",
	"pop_hispanic":            "Demographics",
	"income_median_household": "Demographics",
	"rent_median_gross":       "Housing",
	"rent_burdened_pct":       "Housing",
	"evict_year":              "Evictions",
	"evict_filings":           "Evictions",
}

// SummaryColumns lists the column names accepted by Summarize.
func SummaryColumns() []string {
	xs := make([]string, 0, len(summaryColumns))
	for k := range summaryColumns {
		xs = append(xs, k)
	}
	sort.Strings(xs)
	return xs
}

var ErrUnknownColumn = merry.New("unknown column").WithHTTPCode(400)

// Summarize computes count, mean, standard deviation and quartiles of a
// numeric column, ignoring NULLs. An empty column gives a zero summary with
// Count == 0.
func Summarize(ctx context.Context, db sqlx.QueryerContext, column string) (ColumnSummary, error) {
	table, ok := summaryColumns[column]
	if !ok {
		return ColumnSummary{}, ErrUnknownColumn.Here().Appendf("%q", column)
	}
	var x []float64
	if err := sqlx.SelectContext(ctx, db, &x,
		`SELECT `+column+` FROM `+table+` WHERE `+column+` IS NOT NULL ORDER BY `+column); err != nil {
		return ColumnSummary{}, merry.Appendf(err, "summarize %s", column)
	}
	r := ColumnSummary{Column: column, Count: len(x)}
	if len(x) == 0 {
		return r, nil
	}
	r.Mean, r.StdDev = stat.MeanStdDev(x, nil)
	if len(x) == 1 {
		r.StdDev = 0
	}
	r.Min = floats.Min(x)
	r.Max = floats.Max(x)
	r.Q25, _ = PercentileCont(0.25, x)
	r.Median, _ = PercentileCont(0.5, x)
	r.Q75, _ = PercentileCont(0.75, x)
	return r, nil
}
