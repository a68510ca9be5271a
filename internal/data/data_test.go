package data

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/ansel1/merry"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := Open(Config{
		File:        filepath.Join(t.TempDir(), "test.sqlite"),
		ForeignKeys: true,
		BusyTimeout: time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

type seedCounty struct {
	fips                     int64
	name, state              string
	popTotal, popBlack       int64
	income, rent, rentBurden float64
	year, filings            int64
}

func seed(t *testing.T, db *sqlx.DB, xs ...seedCounty) {
	t.Helper()
	ctx := context.Background()
	for _, x := range xs {
		require.NoError(t, InsertCounty(ctx, db, County{FIPS: x.fips, Name: x.name, State: x.state}))
		_, err := InsertDemographic(ctx, db, Demographic{
			FIPS:                  x.fips,
			PopTotal:              Int64(x.popTotal),
			PopWhite:              Int64(x.popTotal - x.popBlack),
			PopBlack:              Int64(x.popBlack),
			PopHispanic:           Int64(0),
			IncomeMedianHousehold: Float64(x.income),
		})
		require.NoError(t, err)
		_, err = InsertHousing(ctx, db, Housing{
			FIPS:            x.fips,
			RentMedianGross: Float64(x.rent),
			RentBurdenedPct: Float64(x.rentBurden),
		})
		require.NoError(t, err)
		_, err = AddEviction(ctx, db, x.fips, x.year, x.filings)
		require.NoError(t, err)
	}
}

func TestOpen_Idempotent(t *testing.T) {
	file := filepath.Join(t.TempDir(), "x.sqlite")
	c := Config{File: file, ForeignKeys: true}

	db, err := Open(c)
	require.NoError(t, err)
	require.NoError(t, InsertCounty(context.Background(), db, County{FIPS: 1001, Name: "Autauga", State: "AL"}))
	require.NoError(t, db.Close())

	db, err = Open(c)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, CreateTables(context.Background(), db))

	xs, err := ListCounties(context.Background(), db)
	require.NoError(t, err)
	require.Len(t, xs, 1)
	assert.Equal(t, "Autauga", xs[0].Name)
}

func TestOpen_EmptyFileName(t *testing.T) {
	_, err := Open(Config{})
	require.Error(t, err)
}

func TestConfig_DSN(t *testing.T) {
	assert.Equal(t, "file:a.sqlite?_foreign_keys=1&_busy_timeout=5000",
		Config{File: "a.sqlite", ForeignKeys: true, BusyTimeout: 5 * time.Second}.dsn())
	assert.Equal(t, "file:a.sqlite?_foreign_keys=0&_busy_timeout=0",
		Config{File: "a.sqlite"}.dsn())
}

func TestAddEviction_ThenList(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	seed(t, db, seedCounty{fips: 1001, name: "Autauga", state: "AL", popTotal: 100, year: 2016, filings: 50})

	before, err := ListEvictions(ctx, db)
	require.NoError(t, err)

	id, err := AddEviction(ctx, db, 1001, 2018, 77)
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	after, err := ListEvictions(ctx, db)
	require.NoError(t, err)
	require.Len(t, after, len(before)+1)

	var found []EvictionRecord
	for _, r := range after {
		if r.EvictionID == id {
			found = append(found, r)
		}
	}
	require.Len(t, found, 1)
	assert.Equal(t, int64(1001), found[0].FIPS)
	assert.Equal(t, "Autauga", found[0].CountyName)
	require.NotNil(t, found[0].Year)
	require.NotNil(t, found[0].Filings)
	assert.Equal(t, int64(2018), *found[0].Year)
	assert.Equal(t, int64(77), *found[0].Filings)
}

func TestAddEviction_UnknownCounty(t *testing.T) {
	db := openTestDB(t)
	_, err := AddEviction(context.Background(), db, 99999, 2018, 1)
	require.Error(t, err)
	assert.Equal(t, 409, merry.HTTPCode(err))
}

func TestAddEviction_UnknownCountyWithoutForeignKeys(t *testing.T) {
	db, err := Open(Config{File: filepath.Join(t.TempDir(), "nofk.sqlite")})
	require.NoError(t, err)
	defer db.Close()

	id, err := AddEviction(context.Background(), db, 99999, 2018, 1)
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))
}

func TestListEvictions_OrderedByFilings(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	seed(t, db,
		seedCounty{fips: 1, name: "A", state: "AL", popTotal: 10, filings: 5},
		seedCounty{fips: 2, name: "B", state: "AL", popTotal: 10, filings: 500},
		seedCounty{fips: 3, name: "C", state: "AL", popTotal: 10, filings: 50},
	)
	_, err := AddEviction(ctx, db, 1, 2017, 50)
	require.NoError(t, err)

	xs, err := ListEvictions(ctx, db)
	require.NoError(t, err)
	require.Len(t, xs, 4)
	for i := 1; i < len(xs); i++ {
		assert.GreaterOrEqual(t, *xs[i-1].Filings, *xs[i].Filings)
	}
	assert.Equal(t, "B", xs[0].CountyName)
}

func TestGetEviction(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	seed(t, db, seedCounty{fips: 1, name: "A", state: "AL", popTotal: 10, year: 2016, filings: 5})

	id, err := AddEviction(ctx, db, 1, 2018, 9)
	require.NoError(t, err)

	x, ok, err := GetEviction(ctx, db, id)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, id, x.EvictionID)
	assert.Equal(t, int64(9), *x.Filings)

	_, ok, err = GetEviction(ctx, db, id+100)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpdateEviction_OnlyThatRow(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	seed(t, db,
		seedCounty{fips: 1, name: "A", state: "AL", popTotal: 10, year: 2016, filings: 5},
		seedCounty{fips: 2, name: "B", state: "GA", popTotal: 10, year: 2016, filings: 6},
	)
	before, err := ListEvictions(ctx, db)
	require.NoError(t, err)
	target := before[0]

	require.NoError(t, UpdateEviction(ctx, db, target.EvictionID, 2, 2019, 1234))

	after, err := ListEvictions(ctx, db)
	require.NoError(t, err)
	require.Len(t, after, len(before))
	for _, r := range after {
		if r.EvictionID == target.EvictionID {
			assert.Equal(t, int64(2), r.FIPS)
			assert.Equal(t, "B", r.CountyName)
			assert.Equal(t, int64(2019), *r.Year)
			assert.Equal(t, int64(1234), *r.Filings)
			continue
		}
		var old EvictionRecord
		for _, b := range before {
			if b.EvictionID == r.EvictionID {
				old = b
			}
		}
		assert.Equal(t, old, r)
	}
}

func TestUpdateEviction_MissingIDIsNoop(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	seed(t, db, seedCounty{fips: 1, name: "A", state: "AL", popTotal: 10, year: 2016, filings: 5})
	before, err := ListEvictions(ctx, db)
	require.NoError(t, err)

	require.NoError(t, UpdateEviction(ctx, db, 424242, 1, 2000, 1))

	after, err := ListEvictions(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestUpdateEviction_UnknownCounty(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	seed(t, db, seedCounty{fips: 1, name: "A", state: "AL", popTotal: 10, year: 2016, filings: 5})
	xs, err := ListEvictions(ctx, db)
	require.NoError(t, err)

	err = UpdateEviction(ctx, db, xs[0].EvictionID, 777, 2016, 5)
	require.Error(t, err)
	assert.Equal(t, 409, merry.HTTPCode(err))
}

func TestDeleteEviction(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	seed(t, db,
		seedCounty{fips: 1, name: "A", state: "AL", popTotal: 10, filings: 5},
		seedCounty{fips: 2, name: "B", state: "AL", popTotal: 10, filings: 6},
	)
	before, err := ListEvictions(ctx, db)
	require.NoError(t, err)
	require.Len(t, before, 2)

	require.NoError(t, DeleteEviction(ctx, db, before[0].EvictionID))

	after, err := ListEvictions(ctx, db)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, before[1], after[0])

	require.NoError(t, DeleteEviction(ctx, db, 31337))
	again, err := ListEvictions(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, after, again)
}

func TestListCounties_OrderedByName(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	for _, c := range []County{
		{FIPS: 3, Name: "Cherokee", State: "AL"},
		{FIPS: 1, Name: "Autauga", State: "AL"},
		{FIPS: 2, Name: "Baldwin", State: "AL"},
	} {
		require.NoError(t, InsertCounty(ctx, db, c))
	}
	require.NoError(t, InsertCounty(ctx, db, County{FIPS: 1, Name: "Duplicate", State: "XX"}))

	xs, err := ListCounties(ctx, db)
	require.NoError(t, err)
	require.Len(t, xs, 3)
	assert.Equal(t, []string{"Autauga", "Baldwin", "Cherokee"},
		[]string{xs[0].Name, xs[1].Name, xs[2].Name})
}
