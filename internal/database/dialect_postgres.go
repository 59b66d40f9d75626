package database

import (
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresDialect implements Dialect for PostgreSQL databases.
type PostgresDialect struct{}

// DriverName returns "postgres" for the lib/pq driver.
func (d *PostgresDialect) DriverName() string {
	return "postgres"
}

// DSN renders a lib/pq key/value connection string.
func (d *PostgresDialect) DSN(cfg Config) string {
	pg := cfg.Postgres
	dsn := fmt.Sprintf("host=%s port=%d dbname=%s sslmode=%s", pg.Host, pg.Port, pg.Database, pg.SSLMode)
	if pg.User != "" {
		dsn += " user=" + pg.User
	}
	if pg.Password != "" {
		dsn += " password=" + pg.Password
	}
	return dsn
}

// Placeholder returns "$N" for the given position.
func (d *PostgresDialect) Placeholder(position int) string {
	return fmt.Sprintf("$%d", position)
}

// InitStatements returns nothing; PostgreSQL needs no session setup here.
func (d *PostgresDialect) InitStatements() []string {
	return nil
}
