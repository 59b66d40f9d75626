package creation

import (
	"errors"

	"github.com/lawnchairsociety/dungeonkit/internal/character"
	"github.com/lawnchairsociety/dungeonkit/internal/logger"
	"github.com/lawnchairsociety/dungeonkit/internal/pointbuy"
	"github.com/lawnchairsociety/dungeonkit/internal/prefs"
	"github.com/lawnchairsociety/dungeonkit/internal/stats"
)

// ErrNoCharacter means no character has been finalized; the caller should
// go to SceneCreation.
var ErrNoCharacter = errors.New("no saved character")

// Load reads the saved character. Missing or out-of-range fields fall back
// to the record defaults. An appearance that is malformed or has an index
// outside opts is ignored. Scores are kept as saved even when they could not
// have been bought; that only logs a warning. A zero opts means the defaults.
func Load(store prefs.Store, opts character.Options) (*character.Data, error) {
	if !store.HasKey(prefs.KeyName) {
		return nil, ErrNoCharacter
	}
	if opts == (character.Options{}) {
		opts = character.DefaultOptions
	}

	d := character.NewData()
	d.Name = store.GetString(prefs.KeyName, d.Name)

	if l := character.Lineage(store.GetInt(prefs.KeyLineage, int(d.Lineage))); l.Valid() {
		d.Lineage = l
	} else {
		logger.Warning("Saved lineage out of range", "value", int(l))
	}
	if c := character.Calling(store.GetInt(prefs.KeyCalling, int(d.Calling))); c.Valid() {
		d.Calling = c
	} else {
		logger.Warning("Saved calling out of range", "value", int(c))
	}
	if b := character.Background(store.GetInt(prefs.KeyBackground, int(d.Background))); b.Valid() {
		d.Background = b
	} else {
		logger.Warning("Saved background out of range", "value", int(b))
	}

	for i, key := range prefs.ScoreKeys {
		a := stats.Ability(i)
		d.Scores.Set(a, store.GetInt(key, d.Scores.Get(a)))
	}
	if err := pointbuy.New().Load(d.Scores); err != nil {
		logger.Warning("Saved scores do not fit the point-buy rules", "scores", d.Scores.String(), "error", err)
	}

	if store.HasKey(prefs.KeyAppearance) {
		raw := store.GetString(prefs.KeyAppearance, "")
		var a character.Appearance
		switch {
		case !a.Deserialize(raw):
			logger.Warning("Ignoring malformed saved appearance", "value", raw)
		case !a.Fits(opts):
			logger.Warning("Ignoring saved appearance outside the option counts", "value", raw)
		default:
			d.Appearance = a
		}
	}

	return d, nil
}

// PlayerPrefab picks the player prefab for d by calling ordinal.
func PlayerPrefab(d *character.Data, prefabs []string) (string, bool) {
	i := int(d.Calling)
	if i < 0 || i >= len(prefabs) {
		return "", false
	}
	return prefabs[i], true
}
