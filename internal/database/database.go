// Package database provides SQL persistence for profile-scoped key/value
// preferences on SQLite or PostgreSQL.
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a preference key has no stored value.
var ErrNotFound = errors.New("preference not found")

// Database wraps the connection and provides persistence operations.
type Database struct {
	db *sql.DB
	qb *QueryBuilder
}

// Open opens or creates the SQLite database at the given path.
func Open(path string) (*Database, error) {
	return OpenWithConfig(DefaultConfig(path))
}

// OpenWithConfig opens a database for the configured driver and runs migrations.
func OpenWithConfig(cfg Config) (*Database, error) {
	var dialect Dialect
	switch cfg.Driver {
	case "", string(DialectSQLite):
		dialect = NewDialect(DialectSQLite)
		if cfg.SQLitePath == "" {
			return nil, errors.New("sqlite path is required")
		}
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	case string(DialectPostgres):
		dialect = NewDialect(DialectPostgres)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	db, err := sql.Open(dialect.DriverName(), dialect.DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, ok := dialect.(*PostgresDialect); ok {
		db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.Postgres.ConnMaxLifetime)
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
	}

	for _, stmt := range dialect.InitStatements() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("init statement %q failed: %w", stmt, err)
		}
	}

	d := &Database{db: db, qb: NewQueryBuilder(dialect)}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return d, nil
}

// Close closes the database connection.
func (d *Database) Close() error {
	return d.db.Close()
}

func (d *Database) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS prefs (
			profile TEXT NOT NULL,
			pref_key TEXT NOT NULL,
			value TEXT NOT NULL,
			PRIMARY KEY (profile, pref_key)
		)`,
	}
	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}
