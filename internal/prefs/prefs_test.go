package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/quasilyte/gdata/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawnchairsociety/dungeonkit/internal/database"
)

// exerciseStore checks the behavior every backend shares.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()

	assert.False(t, s.HasKey(KeyName))
	assert.Equal(t, "fallback", s.GetString(KeyName, "fallback"))
	assert.Equal(t, 7, s.GetInt(KeySTR, 7))

	s.SetString(KeyName, "Elena")
	s.SetInt(KeySTR, 15)
	s.SetString(KeyAppearance, "not a number")

	// Visible before Save
	assert.True(t, s.HasKey(KeyName))
	assert.Equal(t, "Elena", s.GetString(KeyName, ""))
	assert.Equal(t, 15, s.GetInt(KeySTR, 0))
	assert.Equal(t, 3, s.GetInt(KeyAppearance, 3))

	require.NoError(t, s.Save())
	assert.Equal(t, "Elena", s.GetString(KeyName, ""))
	assert.Equal(t, 15, s.GetInt(KeySTR, 0))

	s.SetInt(KeySTR, 8)
	require.NoError(t, s.Save())
	assert.Equal(t, 8, s.GetInt(KeySTR, 0))
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	exerciseStore(t, s)
	assert.Equal(t, 2, s.Saves())
	assert.Equal(t, "8", s.Saved()[KeySTR])

	// Saving with nothing pending does not count
	require.NoError(t, s.Save())
	assert.Equal(t, 2, s.Saves())
}

func TestSQLStore_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")

	db, err := database.Open(path)
	require.NoError(t, err)
	s := NewSQLStore(db, "hero")
	exerciseStore(t, s)

	// Unsaved values are lost on close
	s.SetString(KeyLineage, "2")
	require.NoError(t, s.Close())

	db, err = database.Open(path)
	require.NoError(t, err)
	reopened := NewSQLStore(db, "hero")
	defer reopened.Close()

	assert.Equal(t, "Elena", reopened.GetString(KeyName, ""))
	assert.Equal(t, 8, reopened.GetInt(KeySTR, 0))
	assert.False(t, reopened.HasKey(KeyLineage))

	other := NewSQLStore(db, "villain")
	assert.False(t, other.HasKey(KeyName))
}

func TestGDataStore(t *testing.T) {
	appName := fmt.Sprintf("dungeonkit_prefs_test_%d", time.Now().UnixNano())
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Skipf("Cannot create gdata manager for testing: %v", err)
	}
	t.Cleanup(func() {
		if home, err := os.UserHomeDir(); err == nil {
			os.RemoveAll(filepath.Join(home, ".local", "share", appName))
		}
	})

	s := NewGDataStoreWithManager(m, "hero")
	exerciseStore(t, s)

	reopened := NewGDataStoreWithManager(m, "hero")
	assert.Equal(t, "Elena", reopened.GetString(KeyName, ""))
	assert.False(t, NewGDataStoreWithManager(m, "other").HasKey(KeyName))
}

func TestOpen(t *testing.T) {
	s, closeFn, err := Open(Config{Driver: DriverMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)
	require.NoError(t, closeFn())

	cfg := DefaultConfig()
	cfg.Database.SQLitePath = filepath.Join(t.TempDir(), "p.db")
	s, closeFn, err = Open(cfg)
	require.NoError(t, err)
	assert.IsType(t, &SQLStore{}, s)
	require.NoError(t, closeFn())

	_, _, err = Open(Config{Driver: "redis"})
	assert.Error(t, err)
}
