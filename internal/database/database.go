// Package database opens the configured catalog store and hands back a
// handle with an explicit lifecycle: open at process start, Close at shutdown.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/lib/pq" // Register the PostgreSQL driver with database/sql.
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/aoideee/locallibrary/internal/data"
	"github.com/aoideee/locallibrary/internal/data/docsql"
	"github.com/aoideee/locallibrary/internal/data/memory"
	"github.com/aoideee/locallibrary/internal/data/mongodb"
)

// Supported drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// Config selects and parameterizes a store.
type Config struct {
	Driver string // memory, sqlite, postgres or mongo
	DSN    string // file path for sqlite, connection URI otherwise

	// MongoDatabase names the database holding the catalog collections.
	MongoDatabase string

	// Pool settings apply to the SQL drivers only.
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration

	// ConnectTimeout bounds the initial connection and ping.
	ConnectTimeout time.Duration
}

// Handle is an open store.
type Handle struct {
	Models data.Models
	Driver string
	close  func(context.Context) error
}

// Close releases the underlying connections.
func (h *Handle) Close(ctx context.Context) error {
	if h.close == nil {
		return nil
	}
	return h.close(ctx)
}

// Open connects to the store described by cfg.
func Open(ctx context.Context, cfg Config) (*Handle, error) {
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	switch cfg.Driver {
	case DriverMemory, "":
		return &Handle{Models: memory.NewModels(), Driver: DriverMemory}, nil

	case DriverSQLite:
		path := cfg.DSN
		if path == "" {
			path = "./data/catalog.db"
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		db, err := openSQL(ctx, docsql.SQLite.DriverName, path)
		if err != nil {
			return nil, err
		}
		// A single connection serializes writers and keeps ":memory:" databases shared.
		db.SetMaxOpenConns(1)
		return newSQLHandle(ctx, db, docsql.SQLite, DriverSQLite)

	case DriverPostgres:
		db, err := openSQL(ctx, docsql.Postgres.DriverName, cfg.DSN)
		if err != nil {
			return nil, err
		}
		if cfg.MaxOpenConns > 0 {
			db.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		if cfg.MaxIdleConns > 0 {
			db.SetMaxIdleConns(cfg.MaxIdleConns)
		}
		if cfg.MaxIdleTime > 0 {
			db.SetConnMaxIdleTime(cfg.MaxIdleTime)
		}
		return newSQLHandle(ctx, db, docsql.Postgres, DriverPostgres)

	case DriverMongo:
		name := cfg.MongoDatabase
		if name == "" {
			name = "local_library"
		}
		store, err := mongodb.Connect(ctx, cfg.DSN, name)
		if err != nil {
			return nil, err
		}
		return &Handle{Models: store.Models(), Driver: DriverMongo, close: store.Close}, nil
	}

	return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}

// openSQL opens a pool, then pings it so a bad DSN fails at startup.
func openSQL(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return db, nil
}

func newSQLHandle(ctx context.Context, db *sql.DB, dialect docsql.Dialect, driver string) (*Handle, error) {
	store, err := docsql.New(ctx, db, dialect)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Handle{
		Models: store.Models(),
		Driver: driver,
		close:  func(context.Context) error { return store.Close() },
	}, nil
}
