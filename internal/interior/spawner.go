// Package interior scatters furniture prefabs inside a spawn area, keeping
// each item a minimum distance from everything solid already in the world.
package interior

import (
	"errors"
	"math/rand"

	"github.com/lawnchairsociety/dungeonkit/internal/geom"
	"github.com/lawnchairsociety/dungeonkit/internal/logger"
	"github.com/lawnchairsociety/dungeonkit/internal/placement"
	"github.com/lawnchairsociety/dungeonkit/internal/world"
)

var (
	ErrNoPrefabs    = errors.New("no interior prefabs assigned")
	ErrInvalidCount = errors.New("number of items to spawn must be greater than zero")
	ErrNoSpawnArea  = errors.New("no spawn area defined and owner has no collider")
)

// Defaults for a new Spawner.
const (
	DefaultCount       = 5
	DefaultMinDistance = 1.0
)

// Spawner places interior items as children of its owner node.
type Spawner struct {
	Prefabs        []*world.Prefab
	Count          int
	SpawnArea      *world.Node // nil falls back to the owner's collider
	MinDistance    float64
	RandomRotation bool
	MaxAttempts    int

	world   *world.World
	owner   *world.Node
	rng     *rand.Rand
	sampler *placement.Sampler
}

// Report summarizes one SpawnInteriorItems call.
type Report struct {
	Requested int
	Placed    int
	Skipped   int
	Items     []*world.Node
}

// NewSpawner returns a spawner with default settings. rng drives prefab
// choice, positions and rotations; nil seeds one from the global source.
func NewSpawner(w *world.World, owner *world.Node, rng *rand.Rand) *Spawner {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Spawner{
		Count:          DefaultCount,
		MinDistance:    DefaultMinDistance,
		RandomRotation: true,
		MaxAttempts:    placement.DefaultMaxAttempts,
		world:          w,
		owner:          owner,
		rng:            rng,
		sampler:        placement.NewSampler(rng),
	}
}

// area resolves the spawn rectangle and the node that provides it.
func (s *Spawner) area() (geom.Rect, *world.Node, bool) {
	src := s.SpawnArea
	if src == nil {
		src = s.owner
	}
	if src == nil {
		return geom.Rect{}, nil, false
	}
	r, ok := src.Bounds()
	return r, src, ok
}

// SpawnInteriorItems validates the configuration and then tries to place
// Count items. Validation failures change nothing. Items that cannot be
// placed within MaxAttempts are skipped and counted in the report.
func (s *Spawner) SpawnInteriorItems() (Report, error) {
	if len(s.Prefabs) == 0 {
		logger.Warning("No interior prefabs assigned to the spawner")
		return Report{}, ErrNoPrefabs
	}
	if s.Count <= 0 {
		logger.Warning("Number of items to spawn must be greater than zero", "count", s.Count)
		return Report{}, ErrInvalidCount
	}
	area, areaNode, ok := s.area()
	if !ok {
		logger.Error("No spawn area defined and no collider found on the spawner")
		return Report{}, ErrNoSpawnArea
	}

	occ := world.Occupancy{World: s.world, Ignore: []*world.Node{areaNode, s.owner}}
	report := Report{Requested: s.Count}
	var placed []geom.Vec2

	for i := 0; i < s.Count; i++ {
		prefab := s.Prefabs[s.rng.Intn(len(s.Prefabs))]
		if prefab == nil {
			logger.Warning("A prefab in the interior prefab list is nil")
			report.Skipped++
			continue
		}

		pos, err := s.sampler.Sample(placement.Request{
			Area:        area,
			MinDistance: s.MinDistance,
			MaxAttempts: s.MaxAttempts,
			Existing:    placed,
		}, occ)
		if err != nil {
			logger.Warning("Failed to find a valid position for an interior item",
				"prefab", prefab.ID, "attempts", s.MaxAttempts)
			report.Skipped++
			continue
		}

		rotation := prefab.Rotation
		if s.RandomRotation {
			rotation = float64(s.rng.Intn(360))
		}
		item := s.world.Instantiate(prefab, pos, rotation, s.owner)
		placed = append(placed, pos)
		report.Items = append(report.Items, item)
		report.Placed++
	}

	logger.Debug("Interior items spawned", "placed", report.Placed, "skipped", report.Skipped)
	return report, nil
}

// RemoveAllSpawnedItems destroys every child of the owner except the spawn
// area node. It returns how many children were removed.
func (s *Spawner) RemoveAllSpawnedItems() int {
	if s.owner == nil {
		return 0
	}
	removed := 0
	for _, child := range s.owner.Children() {
		if child == s.SpawnArea {
			continue
		}
		s.world.Destroy(child)
		removed++
	}
	return removed
}
