package data

import (
	"context"
	"strings"

	"github.com/ansel1/merry"
	"github.com/jmoiron/sqlx"
)

// Default thresholds of BarrierHotspots.
const (
	DefaultIncomeThreshold     = 50000
	DefaultRentBurdenThreshold = 35
)

// BarrierHotspots returns counties with median household income below
// incomeThreshold and rent burdened percentage above rentBurdenThreshold,
// most burdened first.
func BarrierHotspots(ctx context.Context, db sqlx.QueryerContext, incomeThreshold, rentBurdenThreshold float64) (xs []BarrierHotspot, err error) {
	err = sqlx.SelectContext(ctx, db, &xs, `
SELECT c.county_name, c.state_abbr,
       d.income_median_household,
       h.rent_burdened_pct
FROM Counties c
INNER JOIN Demographics d ON c.fips = d.fips
INNER JOIN Housing h ON c.fips = h.fips
WHERE d.income_median_household < ?
  AND h.rent_burdened_pct > ?
ORDER BY h.rent_burdened_pct DESC`, incomeThreshold, rentBurdenThreshold)
	if err != nil {
		return nil, merry.Append(err, "barrier hotspot")
	}
	return
}

const TopEvictionLeadersLimit = 10

func TopEvictionLeaders(ctx context.Context, db sqlx.QueryerContext) (xs []EvictionLeader, err error) {
	err = sqlx.SelectContext(ctx, db, &xs, `
SELECT c.county_name, c.state_abbr, e.evict_filings
FROM Evictions e
INNER JOIN Counties c ON e.fips = c.fips
ORDER BY e.evict_filings DESC
LIMIT ?`, TopEvictionLeadersLimit)
	if err != nil {
		return nil, merry.Append(err, "top eviction leaders")
	}
	return
}

const (
	GroupOver30PctBlack  = "Over 30% Black"
	GroupUnder10PctBlack = "Under 10% Black"
)

// DemographicDisparity compares average eviction filings of counties where
// more than 30% of the population is Black with counties where less than 10%
// is. Counties in neither group, and rows without population, are left out.
func DemographicDisparity(ctx context.Context, db sqlx.QueryerContext) (xs []DisparityGroup, err error) {
	err = sqlx.SelectContext(ctx, db, &xs, `
SELECT group_label, AVG(evict_filings) AS avg_evictions
FROM (SELECT CASE
                 WHEN d.pop_black * 1.0 / d.pop_total > 0.3 THEN ?
                 WHEN d.pop_black * 1.0 / d.pop_total < 0.1 THEN ?
                 END AS group_label,
             e.evict_filings
      FROM Demographics d
      INNER JOIN Evictions e ON d.fips = e.fips)
WHERE group_label IS NOT NULL
GROUP BY group_label
ORDER BY group_label`, GroupOver30PctBlack, GroupUnder10PctBlack)
	if err != nil {
		return nil, merry.Append(err, "demographic disparity")
	}
	return
}

// AffordabilityVsFilings returns counties whose median gross rent is above
// the 75th percentile of all counties and whose median household income is
// below the 25th percentile, most filings first. SQLite has no
// PERCENTILE_CONT so the cut-offs are computed by PercentileCont.
func AffordabilityVsFilings(ctx context.Context, db sqlx.QueryerContext) ([]AffordabilityRow, error) {
	var rents, incomes []float64
	if err := sqlx.SelectContext(ctx, db, &rents,
		`SELECT rent_median_gross FROM Housing WHERE rent_median_gross IS NOT NULL`); err != nil {
		return nil, merry.Append(err, "affordability: rents")
	}
	if err := sqlx.SelectContext(ctx, db, &incomes,
		`SELECT income_median_household FROM Demographics WHERE income_median_household IS NOT NULL`); err != nil {
		return nil, merry.Append(err, "affordability: incomes")
	}
	rentQ75, ok := PercentileCont(0.75, rents)
	if !ok {
		return nil, nil
	}
	incomeQ25, ok := PercentileCont(0.25, incomes)
	if !ok {
		return nil, nil
	}

	var xs []AffordabilityRow
	err := sqlx.SelectContext(ctx, db, &xs, `
SELECT c.county_name, c.state_abbr,
       h.rent_median_gross,
       d.income_median_household,
       e.evict_filings
FROM Counties c
INNER JOIN Housing h ON c.fips = h.fips
INNER JOIN Demographics d ON c.fips = d.fips
INNER JOIN Evictions e ON c.fips = e.fips
WHERE h.rent_median_gross > ?
  AND d.income_median_household < ?
ORDER BY e.evict_filings DESC`, rentQ75, incomeQ25)
	if err != nil {
		return nil, merry.Append(err, "affordability vs filings")
	}
	return xs, nil
}

// StateSummaries returns average rent burden and total eviction filings of the
// state. A state without counties gives an empty result.
func StateSummaries(ctx context.Context, db sqlx.QueryerContext, stateAbbr string) (xs []StateSummary, err error) {
	err = sqlx.SelectContext(ctx, db, &xs, `
SELECT c.state_abbr,
       AVG(h.rent_burdened_pct) AS avg_rent_burden,
       SUM(e.evict_filings)     AS total_evictions
FROM Counties c
INNER JOIN Housing h ON c.fips = h.fips
INNER JOIN Evictions e ON c.fips = e.fips
WHERE c.state_abbr = ?
GROUP BY c.state_abbr`, NormalizeState(stateAbbr))
	if err != nil {
		return nil, merry.Appendf(err, "state summary %q", stateAbbr)
	}
	return
}

// NormalizeState trims and upper-cases a state abbreviation.
func NormalizeState(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
