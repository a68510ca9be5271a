package data

import (
	"context"
	"math"
	"testing"

	"github.com/ansel1/merry"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedFive(t *testing.T) *sqlx.DB {
	db := openTestDB(t)
	seed(t, db,
		seedCounty{fips: 1, name: "Alpha", state: "AL", popTotal: 100, popBlack: 40, income: 30000, rent: 1500, rentBurden: 50, year: 2016, filings: 100},
		seedCounty{fips: 2, name: "Bravo", state: "AL", popTotal: 100, popBlack: 5, income: 40000, rent: 1400, rentBurden: 40, year: 2016, filings: 200},
		seedCounty{fips: 3, name: "Charlie", state: "GA", popTotal: 100, popBlack: 20, income: 60000, rent: 900, rentBurden: 30, year: 2016, filings: 300},
		seedCounty{fips: 4, name: "Delta", state: "GA", popTotal: 100, popBlack: 50, income: 80000, rent: 800, rentBurden: 20, year: 2016, filings: 400},
		seedCounty{fips: 5, name: "Echo", state: "GA", popTotal: 100, popBlack: 0, income: 45000, rent: 1000, rentBurden: 36, year: 2016, filings: 10},
	)
	return db
}

func TestBarrierHotspots(t *testing.T) {
	db := seedFive(t)
	xs, err := BarrierHotspots(context.Background(), db, 50000, 35)
	require.NoError(t, err)
	require.Len(t, xs, 3)
	assert.Equal(t, []string{"Alpha", "Bravo", "Echo"},
		[]string{xs[0].CountyName, xs[1].CountyName, xs[2].CountyName})
	for i, x := range xs {
		assert.Less(t, x.IncomeMedianHousehold, 50000.)
		assert.Greater(t, x.RentBurdenedPct, 35.)
		if i > 0 {
			assert.GreaterOrEqual(t, xs[i-1].RentBurdenedPct, x.RentBurdenedPct)
		}
	}

	xs, err = BarrierHotspots(context.Background(), db, 1000, 99)
	require.NoError(t, err)
	assert.Empty(t, xs)
}

func TestTopEvictionLeaders(t *testing.T) {
	db := seedFive(t)
	ctx := context.Background()

	xs, err := TopEvictionLeaders(ctx, db)
	require.NoError(t, err)
	require.Len(t, xs, 5)
	assert.Equal(t, "Delta", xs[0].CountyName)
	assert.Equal(t, "GA", xs[0].StateAbbr)

	for i := 0; i < 10; i++ {
		_, err := AddEviction(ctx, db, 3, int64(2000+i), int64(i))
		require.NoError(t, err)
	}
	xs, err = TopEvictionLeaders(ctx, db)
	require.NoError(t, err)
	require.Len(t, xs, TopEvictionLeadersLimit)
	for i := 1; i < len(xs); i++ {
		assert.GreaterOrEqual(t, *xs[i-1].Filings, *xs[i].Filings)
	}
}

func TestDemographicDisparity(t *testing.T) {
	db := seedFive(t)
	xs, err := DemographicDisparity(context.Background(), db)
	require.NoError(t, err)
	require.Len(t, xs, 2)

	assert.Equal(t, GroupOver30PctBlack, xs[0].GroupLabel)
	require.NotNil(t, xs[0].AvgEvictions)
	assert.InDelta(t, 250, *xs[0].AvgEvictions, 1e-9)

	assert.Equal(t, GroupUnder10PctBlack, xs[1].GroupLabel)
	require.NotNil(t, xs[1].AvgEvictions)
	assert.InDelta(t, 105, *xs[1].AvgEvictions, 1e-9)
}

func TestDemographicDisparity_ZeroPopulationExcluded(t *testing.T) {
	db := openTestDB(t)
	seed(t, db, seedCounty{fips: 1, name: "Empty", state: "AK", popTotal: 0, filings: 7})
	xs, err := DemographicDisparity(context.Background(), db)
	require.NoError(t, err)
	assert.Empty(t, xs)
}

func TestAffordabilityVsFilings(t *testing.T) {
	db := seedFive(t)
	xs, err := AffordabilityVsFilings(context.Background(), db)
	require.NoError(t, err)
	require.Len(t, xs, 1)
	assert.Equal(t, "Alpha", xs[0].CountyName)
	assert.Equal(t, 1500., xs[0].RentMedianGross)
	assert.Equal(t, 30000., xs[0].IncomeMedianHousehold)
	assert.Equal(t, int64(100), *xs[0].Filings)
}

func TestAffordabilityVsFilings_Empty(t *testing.T) {
	db := openTestDB(t)
	xs, err := AffordabilityVsFilings(context.Background(), db)
	require.NoError(t, err)
	assert.Empty(t, xs)
}

func TestStateSummaries(t *testing.T) {
	db := seedFive(t)
	ctx := context.Background()

	xs, err := StateSummaries(ctx, db, " al ")
	require.NoError(t, err)
	require.Len(t, xs, 1)
	assert.Equal(t, "AL", xs[0].StateAbbr)
	assert.InDelta(t, 45, *xs[0].AvgRentBurden, 1e-9)
	assert.Equal(t, int64(300), *xs[0].TotalEvictions)

	xs, err = StateSummaries(ctx, db, "TX")
	require.NoError(t, err)
	assert.Empty(t, xs)
}

func TestPercentileCont(t *testing.T) {
	for _, tc := range []struct {
		p    float64
		x    []float64
		want float64
	}{
		{0.5, []float64{1, 2, 3, 4}, 2.5},
		{0, []float64{4, 3, 2, 1}, 1},
		{1, []float64{4, 3, 2, 1}, 4},
		{0.75, []float64{800, 900, 1000, 1400, 1500}, 1400},
		{0.25, []float64{10, 20}, 12.5},
		{0.3, []float64{7}, 7},
	} {
		got, ok := PercentileCont(tc.p, tc.x)
		require.True(t, ok)
		assert.InDelta(t, tc.want, got, 1e-9, "p=%v x=%v", tc.p, tc.x)
	}

	_, ok := PercentileCont(0.5, nil)
	assert.False(t, ok)

	x := []float64{3, 1, 2}
	_, _ = PercentileCont(0.5, x)
	assert.Equal(t, []float64{3, 1, 2}, x)
}

func TestSummarize(t *testing.T) {
	db := seedFive(t)
	r, err := Summarize(context.Background(), db, "evict_filings")
	require.NoError(t, err)
	assert.Equal(t, "evict_filings", r.Column)
	assert.Equal(t, 5, r.Count)
	assert.InDelta(t, 202, r.Mean, 1e-9)
	assert.InDelta(t, math.Sqrt(24020), r.StdDev, 1e-9)
	assert.Equal(t, 10., r.Min)
	assert.Equal(t, 100., r.Q25)
	assert.Equal(t, 200., r.Median)
	assert.Equal(t, 300., r.Q75)
	assert.Equal(t, 400., r.Max)
}

func TestSummarize_EmptyAndUnknown(t *testing.T) {
	db := openTestDB(t)
	r, err := Summarize(context.Background(), db, "rent_median_gross")
	require.NoError(t, err)
	assert.Equal(t, 0, r.Count)

	_, err = Summarize(context.Background(), db, "county_name; DROP TABLE Counties")
	require.Error(t, err)
	assert.True(t, merry.Is(err, ErrUnknownColumn))
	assert.Equal(t, 400, merry.HTTPCode(err))
	assert.Contains(t, SummaryColumns(), "evict_filings")
}
