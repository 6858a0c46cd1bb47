// Package store owns the on-device SQLite database. It opens the file,
// configures pragmas, and applies the embedded schema migrations exactly
// once (goose tracks applied versions, so repeated Open calls against the
// same file never re-run DDL).
package store

import (
	"database/sql"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver

	"github.com/jsteiner/chargelog/internal/domain"
	"github.com/jsteiner/chargelog/migrations"
)

// DB wraps the SQLite connection handle. It satisfies the repo layer's db
// interface through the embedded *sql.DB.
type DB struct {
	*sql.DB
}

// Open opens (creating if necessary) the SQLite database at path and brings
// the schema up to date. Pass ":memory:" for an ephemeral store in tests.
//
// The pool is limited to a single connection: the application is a
// single-user local log with strictly sequential writes, and one connection
// also keeps in-memory databases coherent across statements.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &domain.StoreError{Op: "store.Open", Err: err}
	}
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, &domain.StoreError{Op: "store.Open", Err: err}
		}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &domain.StoreError{Op: "store.Open", Err: err}
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{db}, nil
}

// migrate applies all embedded goose migrations that are not yet recorded in
// the goose version table. Idempotent by construction.
func migrate(db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return &domain.StoreError{Op: "store.migrate", Err: err}
	}
	if err := goose.Up(db, "."); err != nil {
		return &domain.StoreError{Op: "store.migrate", Err: err}
	}
	return nil
}
