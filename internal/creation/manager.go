// Package creation runs the character-creation flow and loads the saved
// character back for the game scene.
package creation

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/lawnchairsociety/dungeonkit/internal/character"
	"github.com/lawnchairsociety/dungeonkit/internal/logger"
	"github.com/lawnchairsociety/dungeonkit/internal/namefilter"
	"github.com/lawnchairsociety/dungeonkit/internal/pointbuy"
	"github.com/lawnchairsociety/dungeonkit/internal/prefs"
	"github.com/lawnchairsociety/dungeonkit/internal/stats"
)

// Scene names handed to the caller after finalize or a failed load.
const (
	SceneGame     = "GameScene"
	SceneCreation = "CharacterCreation"
)

var (
	ErrNameRejected = errors.New("character name rejected")
	ErrInvalidIndex = errors.New("selection index out of range")
)

// RandomNames is the pool Randomize draws from.
var RandomNames = []string{"Aelar", "Borin", "Cedric", "Diana", "Elena", "Fargrim", "Gwen", "Hector"}

// Config tunes a Manager. Zero values fall back to defaults.
type Config struct {
	Options      character.Options
	RefundPolicy pointbuy.RefundPolicy
	NameFilter   *namefilter.NameFilter
}

// Manager owns the in-progress character and its point-buy ledger.
type Manager struct {
	data    *character.Data
	ledger  *pointbuy.Ledger
	options character.Options
	names   *namefilter.NameFilter
	rng     *rand.Rand
}

// NewManager starts a fresh flow: default record, all abilities at the
// point-buy floor and the full budget available.
func NewManager(cfg Config, rng *rand.Rand) *Manager {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	opts := cfg.Options
	if opts == (character.Options{}) {
		opts = character.DefaultOptions
	}
	names := cfg.NameFilter
	if names == nil {
		names = namefilter.New(namefilter.DefaultConfig())
	}

	m := &Manager{
		data:    character.NewData(),
		ledger:  pointbuy.New(),
		options: opts,
		names:   names,
		rng:     rng,
	}
	m.ledger.SetRefundPolicy(cfg.RefundPolicy)
	m.syncScores()
	return m
}

func (m *Manager) syncScores() {
	m.data.Scores = m.ledger.Values()
}

// Data returns a copy of the in-progress record.
func (m *Manager) Data() character.Data {
	return *m.data
}

// Remaining returns the unspent point-buy budget.
func (m *Manager) Remaining() int {
	return m.ledger.Remaining()
}

// Options returns the appearance option counts in use.
func (m *Manager) Options() character.Options {
	return m.options
}

// SetName stores the normalized name. Validation happens at Finalize.
func (m *Manager) SetName(name string) {
	m.data.Name = namefilter.Normalize(name)
}

// SetLineage selects a lineage by ordinal.
func (m *Manager) SetLineage(i int) error {
	l := character.Lineage(i)
	if !l.Valid() {
		return fmt.Errorf("%w: lineage %d", ErrInvalidIndex, i)
	}
	m.data.Lineage = l
	return nil
}

// SetCalling selects a calling by ordinal.
func (m *Manager) SetCalling(i int) error {
	c := character.Calling(i)
	if !c.Valid() {
		return fmt.Errorf("%w: calling %d", ErrInvalidIndex, i)
	}
	m.data.Calling = c
	return nil
}

// SetBackground selects a background by ordinal.
func (m *Manager) SetBackground(i int) error {
	b := character.Background(i)
	if !b.Valid() {
		return fmt.Errorf("%w: background %d", ErrInvalidIndex, i)
	}
	m.data.Background = b
	return nil
}

// ChangeAppearance cycles one part by dir, wrapping at its option count.
func (m *Manager) ChangeAppearance(p character.Part, dir int) {
	if !p.Valid() {
		return
	}
	m.data.Appearance.Cycle(p, dir, m.options[p])
}

// IncreaseAttribute spends points on a; it reports whether the score changed.
func (m *Manager) IncreaseAttribute(a stats.Ability) bool {
	ok := m.ledger.Increase(a)
	m.syncScores()
	return ok
}

// DecreaseAttribute refunds one step of a; it reports whether the score changed.
func (m *Manager) DecreaseAttribute(a stats.Ability) bool {
	ok := m.ledger.Decrease(a)
	m.syncScores()
	return ok
}

// CanIncreaseAttribute reports whether the budget covers the next step of a.
func (m *Manager) CanIncreaseAttribute(a stats.Ability) bool {
	return m.ledger.CanIncrease(a)
}

// CanDecreaseAttribute reports whether a is above the point-buy floor.
func (m *Manager) CanDecreaseAttribute(a stats.Ability) bool {
	return m.ledger.CanDecrease(a)
}

// Randomize rerolls appearance, name, selections and attributes.
func (m *Manager) Randomize() error {
	for _, p := range character.Parts() {
		if n := m.options[p]; n > 0 {
			m.data.Appearance[p] = m.rng.Intn(n)
		}
	}
	m.data.Name = RandomNames[m.rng.Intn(len(RandomNames))]
	m.data.Lineage = character.Lineage(m.rng.Intn(len(character.Lineages())))
	m.data.Calling = character.Calling(m.rng.Intn(len(character.Callings())))
	m.data.Background = character.Background(m.rng.Intn(len(character.Backgrounds())))

	err := m.ledger.Randomize(m.rng)
	m.syncScores()
	if err != nil {
		logger.Warning("Attribute randomization stopped early", "remaining", m.ledger.Remaining(), "error", err)
	}
	return err
}

// Finalize validates the name, writes the record to store and saves it.
// It returns the scene to load next. Nothing is written when the name is
// rejected.
func (m *Manager) Finalize(store prefs.Store) (string, error) {
	if res := m.names.Check(m.data.Name); !res.Allowed {
		return "", fmt.Errorf("%w: %s", ErrNameRejected, res.Reason)
	}

	if left := m.ledger.Remaining(); left > 0 {
		logger.Info("Character finalized with unspent points", "points", left)
	}

	if err := Save(store, m.data); err != nil {
		return "", err
	}

	logger.Audit("Character created", "name", m.data.Name, "lineage", m.data.Lineage.ID(),
		"calling", m.data.Calling.ID(), "background", m.data.Background.ID(), "scores", m.data.Scores.String())
	return SceneGame, nil
}

// saveMu keeps one record's keys together when sessions share a store.
var saveMu sync.Mutex

// Save writes every character key and flushes the store.
func Save(store prefs.Store, d *character.Data) error {
	saveMu.Lock()
	defer saveMu.Unlock()

	store.SetString(prefs.KeyName, d.Name)
	store.SetInt(prefs.KeyLineage, int(d.Lineage))
	store.SetInt(prefs.KeyCalling, int(d.Calling))
	store.SetInt(prefs.KeyBackground, int(d.Background))
	for i, key := range prefs.ScoreKeys {
		store.SetInt(key, d.Scores.Get(stats.Ability(i)))
	}
	store.SetString(prefs.KeyAppearance, d.Appearance.Serialize())

	if err := store.Save(); err != nil {
		return fmt.Errorf("failed to save character: %w", err)
	}
	return nil
}
