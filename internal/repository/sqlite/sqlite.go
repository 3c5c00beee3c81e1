// Package sqlite implements repository.Store on SQLite through database/sql.
//
// DRIVER:
// modernc.org/sqlite is a pure Go port of SQLite, so the binary builds without
// CGo and cross-compiles like any other Go program.
//
// SCHEMA:
// Tables live in migrations/*.sql, embedded into the binary and applied by
// golang-migrate on every New(). Applied versions are tracked in schema_migrations,
// so each file runs exactly once per database.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	sqlitedrv "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/sakif/starwars-api/internal/repository"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// compile-time check that *DB implements repository.Store
var _ repository.Store = (*DB)(nil)

// querier is the subset of *sql.DB and *sql.Tx the repository methods use.
// Methods run against q, so the same code works inside and outside WithTx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// DB wraps a sql.DB connection pool and provides repository methods.
// A DB returned to a WithTx callback has tx set and routes every query through it.
type DB struct {
	conn *sql.DB
	q    querier
	tx   *sql.Tx
}

// New opens a SQLite database and brings its schema up to date.
//
// dbPath examples:
//   - "/tmp/test.db"  → file-based database (persistent)
//   - ":memory:"      → in-memory database (great for tests, lost on close)
//
// ONE CONNECTION:
// SQLite allows a single writer at a time, and every ":memory:" connection is a
// separate empty database. Capping the pool at one connection makes both facts
// harmless: writers queue in the pool instead of failing with SQLITE_BUSY, and
// tests see one database. It also serialises the check-then-insert favorite
// transactions.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets other processes (sqlite3 shell, a second server) read the file
	// while this one writes. Inside this process reads still wait for the one
	// connection, including behind an open transaction.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are OFF by default in SQLite (for backwards compatibility).
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn, q: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate applies every embedded migration that has not run yet.
//
// The migrate instance is deliberately not closed: its database driver owns
// db.conn and would close our pool with it. Only the source is released.
func (db *DB) migrate() error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("loading embedded migrations: %w", err)
	}
	defer src.Close()

	driver, err := migratesqlite.WithInstance(db.conn, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("creating migrate driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}

// WithTx runs fn inside a single transaction.
// fn's error is returned unchanged so callers can still errors.Is it.
func (db *DB) WithTx(ctx context.Context, fn func(tx repository.Store) error) error {
	if db.tx != nil {
		return fn(db)
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning transaction: %w", err)
	}

	if err := fn(&DB{conn: db.conn, q: tx, tx: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing transaction: %w", err)
	}
	return nil
}

// isUniqueViolation reports whether err came from a UNIQUE constraint or index.
func isUniqueViolation(err error) bool {
	var se *sqlitedrv.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
