package database

import (
	"strings"
)

// QueryBuilder converts SQL queries with ? placeholders to dialect-specific format.
type QueryBuilder struct {
	dialect Dialect
}

// NewQueryBuilder creates a new QueryBuilder for the given dialect.
func NewQueryBuilder(dialect Dialect) *QueryBuilder {
	return &QueryBuilder{dialect: dialect}
}

// Build converts a query with ? placeholders to dialect-specific placeholders.
//
//	input:    "SELECT value FROM prefs WHERE profile = ? AND key = ?"
//	Postgres: "SELECT value FROM prefs WHERE profile = $1 AND key = $2"
func (qb *QueryBuilder) Build(query string) string {
	if _, ok := qb.dialect.(*SQLiteDialect); ok {
		return query
	}

	var result strings.Builder
	position := 1
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			result.WriteString(qb.dialect.Placeholder(position))
			position++
		} else {
			result.WriteByte(query[i])
		}
	}
	return result.String()
}
