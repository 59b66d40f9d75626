package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/lawnchairsociety/dungeonkit/internal/character"
	"github.com/lawnchairsociety/dungeonkit/internal/config"
	"github.com/lawnchairsociety/dungeonkit/internal/creation"
	"github.com/lawnchairsociety/dungeonkit/internal/logger"
	"github.com/lawnchairsociety/dungeonkit/internal/prefs"
)

func main() {
	configFile := flag.String("config", "data/dungeonkit.yaml", "Path to config YAML file")
	loggingConfig := flag.String("logging", "data/logging.yaml", "Path to logging config YAML file")
	profile := flag.String("profile", "", "Storage profile (default: config storage.profile)")
	flag.Parse()

	logConfig, _ := logger.LoadConfig(*loggingConfig)
	logger.Initialize(logConfig)

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *profile != "" {
		cfg.Storage.Profile = *profile
	}
	if path := cfg.Creation.CatalogTextPath; path != "" {
		if err := character.LoadCatalogText(path); err != nil {
			logger.Warning("Failed to load catalog text, using built-in labels", "path", path, "error", err)
		}
	}

	store, closeStore, err := prefs.Open(cfg.Storage.PrefsConfig())
	if err != nil {
		log.Fatalf("Failed to open preference store: %v", err)
	}
	defer closeStore()

	out, code := describe(store, cfg.Creation.Options(), cfg.Creation.PlayerPrefabs)
	fmt.Print(out)
	if code != 0 {
		closeStore()
		os.Exit(code)
	}
}

// describe renders the saved character for store. With nothing saved it
// names the creation scene and returns exit code 2.
func describe(store prefs.Store, opts character.Options, prefabs []string) (string, int) {
	d, err := creation.Load(store, opts)
	if errors.Is(err, creation.ErrNoCharacter) {
		return creation.SceneCreation + "\n", 2
	}
	if err != nil {
		return fmt.Sprintf("Error loading character: %v\n", err), 1
	}

	out := d.Summary() + "\n"
	out += fmt.Sprintf("Scores: %s\n", d.Scores.String())
	out += fmt.Sprintf("Appearance: %s\n", d.Appearance.Serialize())
	if prefab, ok := creation.PlayerPrefab(d, prefabs); ok {
		out += fmt.Sprintf("Prefab: %s\n", prefab)
	} else {
		logger.Warning("No player prefab for calling", "calling", d.Calling.ID())
		out += "Prefab: (none)\n"
	}
	return out, 0
}
