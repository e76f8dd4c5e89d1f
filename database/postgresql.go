package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vefforritun/verkefni-api/logging"
)

// MaxTasks is the hard ceiling on how many tasks a single list query
// may return.
const MaxTasks = 100

// queryTimeout bounds every single data-access call.
const queryTimeout = 5 * time.Second

var (
	// ErrNotFound signals a lookup that matched zero (or more than one)
	// rows.
	ErrNotFound = errors.New("not found")

	// ErrNoFields signals a conditional update with nothing to update.
	ErrNoFields = errors.New("no fields to update")

	// ErrNotOpen signals use of a database whose pool is not open.
	ErrNotOpen = errors.New("database is not open")
)

// Database is the single point of contact with PostgreSQL. It owns the
// connection pool and is handed to handlers explicitly; there is no
// package-level instance.
type Database struct {
	connectionString string
	pool             *pgxpool.Pool
}

// New creates a database handle. Open must be called before use.
func New(connectionString string) *Database {
	return &Database{connectionString: connectionString}
}

// Open creates the connection pool, pings it and creates tables if they
// do not exist yet. Any failure closes the pool again; nothing is
// retried.
func (d *Database) Open(ctx context.Context) error {
	pool, err := pgxpool.New(ctx, d.connectionString)
	if err != nil {
		return fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("cannot connect to PostgreSQL: %w", err)
	}

	d.pool = pool

	if err := d.createTables(ctx); err != nil {
		d.Close()
		return fmt.Errorf("failed to create tables: %w", err)
	}

	logging.Logger.Info("Connected to PostgreSQL successfully")
	return nil
}

// createTables creates the schema if it does not exist.
func (d *Database) createTables(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		name VARCHAR(64) NOT NULL,
		username VARCHAR(64) UNIQUE NOT NULL,
		password TEXT NOT NULL,
		admin BOOLEAN NOT NULL DEFAULT FALSE
	);

	CREATE TABLE IF NOT EXISTS task_types (
		id SERIAL PRIMARY KEY,
		name VARCHAR(64) NOT NULL,
		slug VARCHAR(64) UNIQUE NOT NULL,
		description TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS task_tags (
		id SERIAL PRIMARY KEY,
		name VARCHAR(64) NOT NULL,
		slug VARCHAR(64) UNIQUE NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tasks (
		id SERIAL PRIMARY KEY,
		name VARCHAR(64) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		date TIMESTAMP NOT NULL,
		task_type_id INTEGER NOT NULL REFERENCES task_types(id),
		task_tag_id INTEGER NOT NULL REFERENCES task_tags(id),
		user_id INTEGER NOT NULL REFERENCES users(id)
	)
	`
	_, err := d.pool.Exec(ctx, query)
	return err
}

// Close releases the pool. Closing a database that is not open is an
// error, not a panic.
func (d *Database) Close() error {
	if d.pool == nil {
		logging.Logger.Error("unable to close database connection that is not open")
		return ErrNotOpen
	}
	d.pool.Close()
	d.pool = nil
	logging.Logger.Info("Database connection closed")
	return nil
}

// query acquires one connection, runs the statement under the per-call
// timeout and hands the rows to scan. The connection is released
// unconditionally and every failure is logged here so callers only have
// to translate the error.
func (d *Database) query(ctx context.Context, sql string, args []any, scan func(pgx.Rows) error) error {
	if d.pool == nil {
		logging.Logger.Error("attempted to use a database that is not open")
		return ErrNotOpen
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	conn, err := d.pool.Acquire(ctx)
	if err != nil {
		logging.Logger.Errorf("error connecting to db: %v", err)
		return fmt.Errorf("error acquiring connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		logging.Logger.Errorf("error running query: %v", err)
		return fmt.Errorf("error running query: %w", err)
	}
	defer rows.Close()

	if err := scan(rows); err != nil {
		logging.Logger.Errorf("error scanning rows: %v", err)
		return fmt.Errorf("error scanning rows: %w", err)
	}

	if err := rows.Err(); err != nil {
		logging.Logger.Errorf("error reading rows: %v", err)
		return fmt.Errorf("error reading rows: %w", err)
	}

	return nil
}

// exec is the statement counterpart of query and returns the number of
// affected rows.
func (d *Database) exec(ctx context.Context, sql string, args ...any) (int64, error) {
	if d.pool == nil {
		logging.Logger.Error("attempted to use a database that is not open")
		return 0, ErrNotOpen
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	conn, err := d.pool.Acquire(ctx)
	if err != nil {
		logging.Logger.Errorf("error connecting to db: %v", err)
		return 0, fmt.Errorf("error acquiring connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, sql, args...)
	if err != nil {
		logging.Logger.Errorf("error running statement: %v", err)
		return 0, fmt.Errorf("error running statement: %w", err)
	}

	return tag.RowsAffected(), nil
}
