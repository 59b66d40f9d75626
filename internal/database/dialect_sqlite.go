package database

// SQLiteDialect implements Dialect for SQLite databases.
type SQLiteDialect struct{}

// DriverName returns "sqlite" for the modernc.org/sqlite driver.
func (d *SQLiteDialect) DriverName() string {
	return "sqlite"
}

// DSN is the database file path.
func (d *SQLiteDialect) DSN(cfg Config) string {
	return cfg.SQLitePath
}

// Placeholder returns "?" for all positions.
func (d *SQLiteDialect) Placeholder(position int) string {
	return "?"
}

// InitStatements returns SQLite PRAGMA statements for optimal operation.
func (d *SQLiteDialect) InitStatements() []string {
	return []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
}
