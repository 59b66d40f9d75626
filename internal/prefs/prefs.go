// Package prefs is the key/value store the character flow saves into.
// Values are visible to reads as soon as they are set; Save makes them
// durable.
package prefs

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/lawnchairsociety/dungeonkit/internal/logger"
)

// Keys written by character finalization.
const (
	KeyName       = "CharacterName"
	KeyLineage    = "CharacterLineage"
	KeyCalling    = "CharacterCalling"
	KeyBackground = "CharacterBackground"
	KeySTR        = "CharacterSTR"
	KeyDEX        = "CharacterDEX"
	KeyCON        = "CharacterCON"
	KeyINT        = "CharacterINT"
	KeyWIS        = "CharacterWIS"
	KeyCHA        = "CharacterCHA"
	KeyAppearance = "CharacterAppearance"
)

// ScoreKeys lists the ability keys in ability order.
var ScoreKeys = [6]string{KeySTR, KeyDEX, KeyCON, KeyINT, KeyWIS, KeyCHA}

// Store is a string/int preference store.
type Store interface {
	SetString(key, value string)
	SetInt(key string, value int)
	// GetString returns def when the key is absent.
	GetString(key, def string) string
	// GetInt returns def when the key is absent or not an integer.
	GetInt(key string, def int) int
	HasKey(key string) bool
	Save() error
}

// backend is the durable side of a buffered store.
type backend interface {
	name() string
	load(key string) (string, bool, error)
	flush(values map[string]string) error
}

// buffered keeps unsaved writes in memory in front of a backend.
type buffered struct {
	mu      sync.Mutex
	pending map[string]string
	b       backend
}

func newBuffered(b backend) *buffered {
	return &buffered{pending: make(map[string]string), b: b}
}

func (s *buffered) SetString(key, value string) {
	s.mu.Lock()
	s.pending[key] = value
	s.mu.Unlock()
}

func (s *buffered) SetInt(key string, value int) {
	s.SetString(key, strconv.Itoa(value))
}

func (s *buffered) lookup(key string) (string, bool) {
	s.mu.Lock()
	v, ok := s.pending[key]
	s.mu.Unlock()
	if ok {
		return v, true
	}
	v, ok, err := s.b.load(key)
	if err != nil {
		logger.Warning("Preference read failed", "store", s.b.name(), "key", key, "error", err)
		return "", false
	}
	return v, ok
}

func (s *buffered) GetString(key, def string) string {
	if v, ok := s.lookup(key); ok {
		return v
	}
	return def
}

func (s *buffered) GetInt(key string, def int) int {
	v, ok := s.lookup(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func (s *buffered) HasKey(key string) bool {
	_, ok := s.lookup(key)
	return ok
}

func (s *buffered) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pending) == 0 {
		return nil
	}
	if err := s.b.flush(s.pending); err != nil {
		return fmt.Errorf("save %s prefs: %w", s.b.name(), err)
	}
	s.pending = make(map[string]string)
	return nil
}
