package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/lawnchairsociety/dungeonkit/internal/config"
	"github.com/lawnchairsociety/dungeonkit/internal/geom"
	"github.com/lawnchairsociety/dungeonkit/internal/interior"
	"github.com/lawnchairsociety/dungeonkit/internal/logger"
	"github.com/lawnchairsociety/dungeonkit/internal/room"
	"github.com/lawnchairsociety/dungeonkit/internal/snapshot"
	"github.com/lawnchairsociety/dungeonkit/internal/world"
)

func main() {
	configFile := flag.String("config", "data/dungeonkit.yaml", "Path to config YAML file")
	loggingConfig := flag.String("logging", "data/logging.yaml", "Path to logging config YAML file")
	seed := flag.Int64("seed", 0, "Layout seed (default: config seed, else random)")
	count := flag.Int("count", -1, "Number of interior items (-1 uses config)")
	outputFile := flag.String("out", "", "Write a layout snapshot to this path")
	scale := flag.Int("scale", 2, "Map characters per world unit")
	quiet := flag.Bool("quiet", false, "Do not print the map")
	flag.Parse()

	logConfig, _ := logger.LoadConfig(*loggingConfig)
	logger.Initialize(logConfig)

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *count >= 0 {
		cfg.Interior.Count = *count
	}

	layoutSeed := *seed
	if layoutSeed == 0 {
		layoutSeed = cfg.Interior.Seed
	}
	if layoutSeed == 0 {
		layoutSeed = time.Now().UnixNano()
		logger.Info("Layout seed selected", "seed", layoutSeed, "random", true)
	} else {
		logger.Info("Layout seed selected", "seed", layoutSeed, "random", false)
	}

	catalog := interior.DefaultCatalog()
	if cfg.Interior.CatalogPath != "" {
		catalog, err = interior.LoadCatalog(cfg.Interior.CatalogPath)
		if err != nil {
			log.Fatalf("Failed to load prefab catalog: %v", err)
		}
	}

	layout, report, err := generate(cfg, catalog, layoutSeed)
	if err != nil {
		log.Fatalf("Failed to generate room: %v", err)
	}
	logger.Info("Room furnished",
		"requested", report.Requested,
		"placed", report.Placed,
		"skipped", report.Skipped)

	if !*quiet {
		fmt.Println(snapshot.Render(layout, *scale))
		fmt.Printf("Seed %d: %d of %d items placed\n", layoutSeed, report.Placed, report.Requested)
	}

	if *outputFile != "" {
		if err := snapshot.Validate(layout); err != nil {
			log.Fatalf("Generated layout is invalid: %v", err)
		}
		if err := snapshot.Write(*outputFile, layout); err != nil {
			log.Fatalf("Failed to write snapshot: %v", err)
		}
		logger.Info("Layout snapshot written", "path", *outputFile)
	}

	if report.Skipped > 0 {
		os.Exit(3)
	}
}

// generate builds a room from cfg and scatters catalog items over its floor.
// An interior count of zero or less yields an empty room.
func generate(cfg *config.Config, catalog *interior.Catalog, seed int64) (snapshot.Layout, interior.Report, error) {
	floor, err := catalog.Floor.Prefab()
	if err != nil {
		return snapshot.Layout{}, interior.Report{}, err
	}
	wall, err := catalog.Wall.Prefab()
	if err != nil {
		return snapshot.Layout{}, interior.Report{}, err
	}
	items, err := catalog.ItemPrefabs()
	if err != nil {
		return snapshot.Layout{}, interior.Report{}, err
	}

	w := world.New()
	gen := room.NewGenerator(w, nil)
	gen.Size = geom.V(cfg.Room.Width, cfg.Room.Height)
	gen.WallThickness = cfg.Room.WallThickness
	gen.AddColliders = cfg.Room.AddColliders
	gen.IsTrigger = cfg.Room.IsTrigger
	gen.FloorPrefab = floor
	gen.WallPrefab = wall

	r, err := gen.GenerateRoom()
	if err != nil {
		return snapshot.Layout{}, interior.Report{}, err
	}
	// The floor only marks the spawn area, it must not block items.
	if r.Floor.Collider == nil {
		r.Floor.Collider = world.BoxCollider(true)
	}

	owner := w.NewNode("Interior", r.Root.Position, r.Root)
	spawner := interior.NewSpawner(w, owner, rand.New(rand.NewSource(seed)))
	spawner.Prefabs = items
	spawner.Count = cfg.Interior.Count
	spawner.SpawnArea = r.Floor
	spawner.MinDistance = cfg.Interior.MinDistance
	spawner.RandomRotation = cfg.Interior.RandomRotation
	if cfg.Interior.MaxAttempts > 0 {
		spawner.MaxAttempts = cfg.Interior.MaxAttempts
	}

	// A non-positive count aborts spawning (the spawner warns) but still
	// leaves a valid empty room.
	report, err := spawner.SpawnInteriorItems()
	if err != nil && !errors.Is(err, interior.ErrInvalidCount) {
		return snapshot.Layout{}, report, err
	}

	return snapshot.FromRoom(r, cfg.Room.WallThickness, report.Items, seed), report, nil
}
