package data

import (
	"context"
	"database/sql"

	"github.com/ansel1/merry"
	"github.com/jmoiron/sqlx"
)

// AddEviction inserts an eviction record and returns its id. The fips value is
// not checked here, a dangling reference is rejected only when foreign keys
// are enforced.
func AddEviction(ctx context.Context, db sqlx.ExtContext, fips, year, filings int64) (int64, error) {
	return InsertEviction(ctx, db, Eviction{FIPS: fips, Year: Int64(year), Filings: Int64(filings)})
}

func InsertEviction(ctx context.Context, db sqlx.ExtContext, e Eviction) (int64, error) {
	r, err := sqlx.NamedExecContext(ctx, db, `
INSERT INTO Evictions (fips, evict_year, evict_filings)
VALUES (:fips, :evict_year, :evict_filings)`, e)
	if err != nil {
		return 0, wrapExecErr(err, "insert eviction")
	}
	return getNewInsertedID(r)
}

// ListEvictions returns all eviction records with county names, largest
// filing count first.
func ListEvictions(ctx context.Context, db sqlx.QueryerContext) (xs []EvictionRecord, err error) {
	err = sqlx.SelectContext(ctx, db, &xs, `
SELECT e.eviction_id, e.fips, c.county_name, e.evict_year, e.evict_filings
FROM Evictions e
INNER JOIN Counties c ON e.fips = c.fips
ORDER BY e.evict_filings DESC, e.eviction_id`)
	if err != nil {
		return nil, merry.Append(err, "list evictions")
	}
	return
}

// GetEviction returns the record with the given id. The second result is
// false when there is no such record.
func GetEviction(ctx context.Context, db sqlx.QueryerContext, id int64) (EvictionRecord, bool, error) {
	var x EvictionRecord
	err := sqlx.GetContext(ctx, db, &x, `
SELECT e.eviction_id, e.fips, c.county_name, e.evict_year, e.evict_filings
FROM Evictions e
INNER JOIN Counties c ON e.fips = c.fips
WHERE e.eviction_id = ?`, id)
	if err == sql.ErrNoRows {
		return EvictionRecord{}, false, nil
	}
	if err != nil {
		return EvictionRecord{}, false, merry.Appendf(err, "get eviction %d", id)
	}
	return x, true, nil
}

// UpdateEviction replaces all fields of the record. A missing id is not an
// error, nothing is changed.
func UpdateEviction(ctx context.Context, db sqlx.ExtContext, id, fips, year, filings int64) error {
	_, err := sqlx.NamedExecContext(ctx, db, `
UPDATE Evictions
 SET fips=:fips,
     evict_year=:evict_year,
     evict_filings=:evict_filings
WHERE eviction_id=:eviction_id`, Eviction{
		EvictionID: id,
		FIPS:       fips,
		Year:       Int64(year),
		Filings:    Int64(filings),
	})
	if err != nil {
		return wrapExecErr(err, "update eviction")
	}
	return nil
}

// DeleteEviction removes the record. A missing id is not an error.
func DeleteEviction(ctx context.Context, db sqlx.ExecerContext, id int64) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM Evictions WHERE eviction_id = ?`, id); err != nil {
		return merry.Appendf(err, "delete eviction %d", id)
	}
	return nil
}

// ListCounties returns the counties ordered by name for selection lists.
func ListCounties(ctx context.Context, db sqlx.QueryerContext) (xs []County, err error) {
	err = sqlx.SelectContext(ctx, db, &xs, `SELECT fips, county_name, state_abbr FROM Counties ORDER BY county_name`)
	if err != nil {
		return nil, merry.Append(err, "list counties")
	}
	return
}

// InsertCounty adds the county unless a county with the same fips exists.
func InsertCounty(ctx context.Context, db sqlx.ExtContext, c County) error {
	_, err := sqlx.NamedExecContext(ctx, db, `
INSERT OR IGNORE INTO Counties (fips, county_name, state_abbr)
VALUES (:fips, :county_name, :state_abbr)`, c)
	if err != nil {
		return merry.Append(err, "insert county")
	}
	return nil
}

func InsertDemographic(ctx context.Context, db sqlx.ExtContext, d Demographic) (int64, error) {
	r, err := sqlx.NamedExecContext(ctx, db, `
INSERT INTO Demographics (fips, pop_total, pop_white, pop_black, pop_hispanic, income_median_household)
VALUES (:fips, :pop_total, :pop_white, :pop_black, :pop_hispanic, :income_median_household)`, d)
	if err != nil {
		return 0, wrapExecErr(err, "insert demographics")
	}
	return getNewInsertedID(r)
}

func InsertHousing(ctx context.Context, db sqlx.ExtContext, h Housing) (int64, error) {
	r, err := sqlx.NamedExecContext(ctx, db, `
INSERT INTO Housing (fips, rent_median_gross, rent_burdened_pct)
VALUES (:fips, :rent_median_gross, :rent_burdened_pct)`, h)
	if err != nil {
		return 0, wrapExecErr(err, "insert housing")
	}
	return getNewInsertedID(r)
}
