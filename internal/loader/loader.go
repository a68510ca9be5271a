package loader

import (
	"context"
	"encoding/csv"
	"io"
	"os"

	"github.com/ansel1/merry"
	"github.com/fpawel/evictdash/internal/data"
	"github.com/fpawel/gohelp"
	"github.com/jmoiron/sqlx"
	"github.com/powerman/structlog"
)

type Result struct {
	Rows     int `json:"rows"`
	Inserted int `json:"inserted"`
	Failed   int `json:"failed"`
}

// LoadFile creates the tables if needed and loads the CSV file.
func LoadFile(ctx context.Context, db *sqlx.DB, filename string, log *structlog.Logger) (Result, error) {
	if err := data.CreateTables(ctx, db); err != nil {
		return Result{}, err
	}
	f, err := os.Open(filename)
	if err != nil {
		return Result{}, merry.Wrap(err)
	}
	defer log.ErrIfFail(f.Close)
	return Load(ctx, db, f, log.New("file", filename))
}

// Load inserts every CSV row into Counties, Demographics, Housing and
// Evictions. A row that cannot be parsed or inserted is logged with its index
// and fips and skipped, rows inserted before it are kept. The whole load is
// committed once at the end.
func Load(ctx context.Context, db *sqlx.DB, r io.Reader, log *structlog.Logger) (Result, error) {
	var result Result

	rd := csv.NewReader(r)
	rd.ReuseRecord = true
	columns, err := rd.Read()
	if err == io.EOF {
		return result, merry.New("csv is empty")
	}
	if err != nil {
		return result, merry.Append(err, "csv header")
	}
	h, err := parseHeader(columns)
	if err != nil {
		return result, err
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return result, merry.Wrap(err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	for index := 0; ; index++ {
		if err := ctx.Err(); err != nil {
			return result, merry.Wrap(err)
		}
		row, err := rd.Read()
		if err == io.EOF {
			break
		}
		result.Rows++
		if _, ok := err.(*csv.ParseError); ok {
			result.Failed++
			gohelp.LogPrependSuffixKeys(log, "row", index).PrintErr(err)
			continue
		}
		if err != nil {
			return result, merry.Append(err, "csv")
		}
		x, err := h.decode(row)
		if err != nil {
			result.Failed++
			if fips, ok := h.fips(row); ok {
				gohelp.LogPrependSuffixKeys(log, "row", index, "fips", fips).PrintErr(err)
			} else {
				gohelp.LogPrependSuffixKeys(log, "row", index).PrintErr(err)
			}
			continue
		}
		if err := insertRecord(ctx, tx, x); err != nil {
			result.Failed++
			gohelp.LogPrependSuffixKeys(log, "row", index, "fips", x.FIPS).PrintErr(err)
			continue
		}
		result.Inserted++
	}

	err = tx.Commit()
	tx = nil
	if err != nil {
		return result, merry.Append(err, "commit")
	}
	log.Info("data loaded", "rows", result.Rows, "inserted", result.Inserted, "failed", result.Failed)
	return result, nil
}

func insertRecord(ctx context.Context, tx *sqlx.Tx, x Record) error {
	if err := data.InsertCounty(ctx, tx, x.County()); err != nil {
		return err
	}
	if _, err := data.InsertDemographic(ctx, tx, x.Demographic()); err != nil {
		return err
	}
	if _, err := data.InsertHousing(ctx, tx, x.Housing()); err != nil {
		return err
	}
	if _, err := data.InsertEviction(ctx, tx, x.Eviction()); err != nil {
		return err
	}
	return nil
}
