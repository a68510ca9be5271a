package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ansel1/merry"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

//go:generate go run github.com/fpawel/gotools/cmd/sqlstr/...

// Config describes the database file. It is passed to Open explicitly,
// there is no package level file name.
type Config struct {
	File        string        `yaml:"file" toml:"file" comment:"SQLite database file"`
	ForeignKeys bool          `yaml:"foreign_keys" toml:"foreign_keys" comment:"enforce fips references to Counties"`
	BusyTimeout time.Duration `yaml:"busy_timeout" toml:"busy_timeout" comment:"how long to wait for a locked database file"`
}

func (c Config) dsn() string {
	fk := 0
	if c.ForeignKeys {
		fk = 1
	}
	return fmt.Sprintf("file:%s?_foreign_keys=%d&_busy_timeout=%d",
		c.File, fk, c.BusyTimeout.Milliseconds())
}

// Open opens the database file and makes sure the four tables exist.
func Open(c Config) (*sqlx.DB, error) {
	if c.File == "" {
		return nil, merry.New("database file name is empty")
	}
	db, err := openSqliteDBx(c.dsn())
	if err != nil {
		return nil, merry.Append(err, c.File)
	}
	if err := CreateTables(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// CreateTables executes the schema script. It is idempotent.
func CreateTables(ctx context.Context, db sqlx.ExecerContext) error {
	if _, err := db.ExecContext(ctx, SQLCreate); err != nil {
		return merry.Append(err, "create tables")
	}
	return nil
}

func openSqliteDB(dsn string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	conn.SetMaxIdleConns(1)
	conn.SetMaxOpenConns(1)
	conn.SetConnMaxLifetime(0)
	return conn, err
}

func openSqliteDBx(dsn string) (*sqlx.DB, error) {
	conn, err := openSqliteDB(dsn)
	if err != nil {
		return nil, err
	}
	return sqlx.NewDb(conn, "sqlite3"), nil
}

func getNewInsertedID(r sql.Result) (int64, error) {
	id, err := r.LastInsertId()
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, merry.New("was not inserted")
	}
	return id, nil
}

// IsForeignKeyViolation reports whether err was caused by a fips value
// missing from Counties.
func IsForeignKeyViolation(err error) bool {
	var e sqlite3.Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Code == sqlite3.ErrConstraint && e.ExtendedCode == sqlite3.ErrConstraintForeignKey
}

func wrapExecErr(err error, msg string) error {
	if IsForeignKeyViolation(err) {
		return merry.WithHTTPCode(merry.Append(err, msg), 409)
	}
	return merry.Append(err, msg)
}
