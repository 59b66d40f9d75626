package database

import (
	"database/sql"
	"errors"
	"fmt"
)

// PutPrefs stores every entry in one transaction.
func (d *Database) PutPrefs(profile string, values map[string]string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	q := d.qb.Build(upsert("prefs", []string{"profile", "pref_key"}, "value"))
	for k, v := range values {
		if _, err := tx.Exec(q, profile, k, v); err != nil {
			return fmt.Errorf("failed to store pref %s: %w", k, err)
		}
	}
	return tx.Commit()
}

// GetPref returns the value stored under (profile, key), or ErrNotFound.
func (d *Database) GetPref(profile, key string) (string, error) {
	var value string
	err := d.db.QueryRow(d.qb.Build(`SELECT value FROM prefs WHERE profile = ? AND pref_key = ?`), profile, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to load pref %s: %w", key, err)
	}
	return value, nil
}

// LoadPrefs returns every value stored for profile.
func (d *Database) LoadPrefs(profile string) (map[string]string, error) {
	rows, err := d.db.Query(d.qb.Build(`SELECT pref_key, value FROM prefs WHERE profile = ?`), profile)
	if err != nil {
		return nil, fmt.Errorf("failed to load prefs: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, rows.Err()
}

// Profiles lists every profile with stored values, sorted.
func (d *Database) Profiles() ([]string, error) {
	rows, err := d.db.Query(`SELECT DISTINCT profile FROM prefs ORDER BY profile`)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// CopyPrefs copies every profile from src into dst, overwriting keys that
// already exist there. With dryRun set nothing is written. It returns the
// number of values copied.
func CopyPrefs(src, dst *Database, dryRun bool) (int64, error) {
	profiles, err := src.Profiles()
	if err != nil {
		return 0, err
	}

	var total int64
	for _, p := range profiles {
		values, err := src.LoadPrefs(p)
		if err != nil {
			return total, fmt.Errorf("profile %s: %w", p, err)
		}
		if !dryRun {
			if err := dst.PutPrefs(p, values); err != nil {
				return total, fmt.Errorf("profile %s: %w", p, err)
			}
		}
		total += int64(len(values))
	}
	return total, nil
}
