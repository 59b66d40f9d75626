package database

import "fmt"

// Dialect abstracts the SQL differences between SQLite and PostgreSQL.
type Dialect interface {
	// DriverName returns the driver name for sql.Open().
	DriverName() string

	// DSN builds the data source name from the connection config.
	DSN(cfg Config) string

	// Placeholder returns the parameter placeholder for the given position (1-indexed).
	// SQLite: "?" (ignores position), PostgreSQL: "$1", "$2", etc.
	Placeholder(position int) string

	// InitStatements run once per connection pool before migrations.
	InitStatements() []string
}

// DialectType identifies the database dialect.
type DialectType string

const (
	DialectSQLite   DialectType = "sqlite"
	DialectPostgres DialectType = "postgres"
)

// NewDialect creates a new Dialect for the given type.
func NewDialect(dialectType DialectType) Dialect {
	switch dialectType {
	case DialectPostgres:
		return &PostgresDialect{}
	default:
		return &SQLiteDialect{}
	}
}

// upsert builds an INSERT that replaces value on a key conflict.
// Both SQLite (3.24+) and PostgreSQL accept ON CONFLICT ... DO UPDATE.
func upsert(table string, keys []string, value string) string {
	cols := ""
	marks := ""
	for _, k := range keys {
		cols += k + ", "
		marks += "?, "
	}
	conflict := ""
	for i, k := range keys {
		if i > 0 {
			conflict += ", "
		}
		conflict += k
	}
	return fmt.Sprintf("INSERT INTO %s (%s%s) VALUES (%s?) ON CONFLICT (%s) DO UPDATE SET %s = excluded.%s",
		table, cols, value, marks, conflict, value, value)
}
