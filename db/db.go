// Package db is the database access layer for staff-core. It wraps
// database/sql with context-aware helpers, unified error mapping across
// the supported drivers (MySQL in production, SQLite in tests, Postgres
// as an alternative backend), hook dispatch for query logging, and
// transaction management. All SQL lives in the repositories — this
// package never builds queries on its own.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Config holds the options for opening and managing the connection pool.
type Config struct {
	// DSN is the driver-specific data-source name.
	DSN string

	// DriverName is "mysql", "postgres", or "sqlite3".
	DriverName string

	// Pool settings. Zero values keep the database/sql defaults.
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration

	// DefaultTimeout is applied to statements whose context carries no
	// deadline. Zero disables the default timeout.
	DefaultTimeout time.Duration

	// Hooks run around every statement. Nil entries are skipped.
	Hooks []Hook
}

// DB is a thin, concurrency-safe wrapper around *sql.DB. Every logical
// repository operation borrows a pooled connection for the duration of
// its statement and releases it before returning; nothing in this
// package holds a connection across calls.
type DB struct {
	sqldb  *sql.DB
	cfg    Config
	hooks  hookChain
	errMap ErrorMapper
}

// Open opens the database described by cfg and verifies connectivity.
// The caller owns the returned DB and must Close it on shutdown.
func Open(cfg Config) (*DB, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("staffcore/db: DSN must not be empty")
	}
	if cfg.DriverName == "" {
		return nil, fmt.Errorf("staffcore/db: DriverName must not be empty")
	}

	sqldb, err := sql.Open(cfg.DriverName, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("staffcore/db: open: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqldb.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		sqldb.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	d := &DB{
		sqldb:  sqldb,
		cfg:    cfg,
		hooks:  newHookChain(cfg.Hooks),
		errMap: DefaultErrorMapper(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqldb.PingContext(ctx); err != nil {
		_ = sqldb.Close()
		return nil, &DBError{Sentinel: ErrConnectionFailed, Cause: err, Message: "ping"}
	}

	return d, nil
}

// MustOpen is like Open but panics on error. For main() initialisation.
func MustOpen(cfg Config) *DB {
	d, err := Open(cfg)
	if err != nil {
		panic(err)
	}
	return d
}

// Raw returns the underlying *sql.DB for cases the wrapper does not cover.
func (d *DB) Raw() *sql.DB { return d.sqldb }

// SetErrorMapper replaces the default error mapper, typically with a
// driver-specific chain installed by OpenWithDriver.
func (d *DB) SetErrorMapper(m ErrorMapper) { d.errMap = m }

// Close closes all pooled connections. Safe to call more than once.
func (d *DB) Close() error { return d.sqldb.Close() }

// Ping verifies that the database is reachable.
func (d *DB) Ping(ctx context.Context) error {
	if err := d.sqldb.PingContext(ctx); err != nil {
		return &DBError{Sentinel: ErrConnectionFailed, Cause: err}
	}
	return nil
}

// Stats returns pool statistics.
func (d *DB) Stats() sql.DBStats { return d.sqldb.Stats() }

// Exec runs a statement that returns no rows (INSERT, UPDATE, DELETE).
func (d *DB) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	ctx, cancel := d.applyDefaultTimeout(ctx)
	defer cancel()
	start := time.Now()
	d.hooks.Before(ctx, query, args)
	res, err := d.sqldb.ExecContext(ctx, query, args...)
	err = d.mapErr(err)
	d.hooks.After(ctx, query, args, time.Since(start), err)
	return res, err
}

// Query runs a query that returns rows. The caller must close them.
func (d *DB) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	ctx, cancel := d.applyDefaultTimeout(ctx)
	defer cancel()
	start := time.Now()
	d.hooks.Before(ctx, query, args)
	rows, err := d.sqldb.QueryContext(ctx, query, args...)
	err = d.mapErr(err)
	d.hooks.After(ctx, query, args, time.Since(start), err)
	return rows, err
}

// QueryRow runs a query expected to return at most one row. Scan on the
// returned Row yields ErrNotFound when no row matches.
func (d *DB) QueryRow(ctx context.Context, query string, args ...any) *Row {
	ctx, cancel := d.applyDefaultTimeout(ctx)
	start := time.Now()
	d.hooks.Before(ctx, query, args)
	raw := d.sqldb.QueryRowContext(ctx, query, args...)
	d.hooks.After(ctx, query, args, time.Since(start), nil) // err unknown until Scan
	return &Row{raw: raw, errMap: d.errMap, cancel: cancel}
}

func (d *DB) applyDefaultTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if d.cfg.DefaultTimeout == 0 {
		return ctx, func() {}
	}
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {} // caller already set a deadline
	}
	return context.WithTimeout(ctx, d.cfg.DefaultTimeout)
}

func (d *DB) mapErr(err error) error {
	if err == nil {
		return nil
	}
	return d.errMap.Map(err)
}

// Row wraps *sql.Row so Scan errors pass through the unified mapper.
type Row struct {
	raw    *sql.Row
	errMap ErrorMapper
	cancel context.CancelFunc
}

// Scan copies the matched row into dest. Returns ErrNotFound when the
// query matched nothing.
func (r *Row) Scan(dest ...any) error {
	err := r.raw.Scan(dest...)
	if r.cancel != nil {
		r.cancel()
	}
	return r.errMap.Map(err)
}
