package prefs

import (
	"errors"

	"github.com/lawnchairsociety/dungeonkit/internal/database"
)

// SQLStore persists preferences as rows scoped to one profile.
type SQLStore struct {
	*buffered
	db *database.Database
}

type sqlBackend struct {
	db      *database.Database
	profile string
}

// NewSQLStore wraps an open database. The caller keeps ownership of db.
func NewSQLStore(db *database.Database, profile string) *SQLStore {
	return &SQLStore{buffered: newBuffered(&sqlBackend{db: db, profile: profile}), db: db}
}

// Close closes the underlying database.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (b *sqlBackend) name() string { return "sql" }

func (b *sqlBackend) load(key string) (string, bool, error) {
	v, err := b.db.GetPref(b.profile, key)
	if errors.Is(err, database.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (b *sqlBackend) flush(values map[string]string) error {
	return b.db.PutPrefs(b.profile, values)
}
