package interior

import (
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawnchairsociety/dungeonkit/internal/geom"
	"github.com/lawnchairsociety/dungeonkit/internal/logger"
	"github.com/lawnchairsociety/dungeonkit/internal/world"
)

func init() {
	logger.Disable()
}

// newRoomSpawner returns a spawner whose owner carries a 10x8 box collider
// centered at (5,4), so the spawn area is [0,10]x[0,8].
func newRoomSpawner(t *testing.T, seed int64) (*world.World, *Spawner) {
	t.Helper()
	w := world.New()
	owner := w.NewNode("InteriorSpawner", geom.V(5, 4), nil)
	owner.Scale = geom.V(10, 8)
	owner.Collider = world.BoxCollider(false)

	s := NewSpawner(w, owner, rand.New(rand.NewSource(seed)))
	s.Prefabs = []*world.Prefab{{ID: "crate", Name: "Crate"}}
	return w, s
}

func TestSpawnInteriorItems_Validation(t *testing.T) {
	t.Run("no prefabs", func(t *testing.T) {
		w, s := newRoomSpawner(t, 1)
		s.Prefabs = nil
		_, err := s.SpawnInteriorItems()
		assert.ErrorIs(t, err, ErrNoPrefabs)
		assert.Equal(t, 1, w.Count())
	})

	t.Run("zero count", func(t *testing.T) {
		w, s := newRoomSpawner(t, 1)
		s.Count = 0
		_, err := s.SpawnInteriorItems()
		assert.ErrorIs(t, err, ErrInvalidCount)
		assert.Equal(t, 1, w.Count())
	})

	t.Run("no spawn area", func(t *testing.T) {
		w, s := newRoomSpawner(t, 1)
		s.owner.Collider = nil
		_, err := s.SpawnInteriorItems()
		assert.ErrorIs(t, err, ErrNoSpawnArea)
		assert.Equal(t, 1, w.Count())
	})
}

func TestSpawnInteriorItems_PlacesWithSpacing(t *testing.T) {
	w, s := newRoomSpawner(t, 42)

	report, err := s.SpawnInteriorItems()
	require.NoError(t, err)
	assert.Equal(t, 5, report.Requested)
	assert.Equal(t, 5, report.Placed)
	assert.Equal(t, 0, report.Skipped)
	assert.Len(t, report.Items, 5)
	assert.Equal(t, 6, w.Count())

	area := geom.R(0, 0, 10, 8)
	for i, a := range report.Items {
		assert.True(t, area.Contains(a.Position), "item %d outside area: %v", i, a.Position)
		assert.Equal(t, s.owner, a.Parent())
		assert.GreaterOrEqual(t, a.Rotation, 0.0)
		assert.Less(t, a.Rotation, 360.0)
		assert.Equal(t, math.Trunc(a.Rotation), a.Rotation)
		for _, b := range report.Items[i+1:] {
			assert.Greater(t, a.Position.Dist(b.Position), 1.0)
		}
	}
}

func TestSpawnInteriorItems_SolidOccupantBlocks(t *testing.T) {
	w, s := newRoomSpawner(t, 7)
	blocker := w.NewNode("Boulder", geom.V(5, 4), nil)
	blocker.Scale = geom.V(12, 10)
	blocker.Collider = world.BoxCollider(false)

	report, err := s.SpawnInteriorItems()
	require.NoError(t, err)
	assert.Equal(t, 0, report.Placed)
	assert.Equal(t, 5, report.Skipped)
	assert.Empty(t, s.owner.Children())
}

func TestSpawnInteriorItems_TriggerDoesNotBlock(t *testing.T) {
	w, s := newRoomSpawner(t, 7)
	zone := w.NewNode("Zone", geom.V(5, 4), nil)
	zone.Scale = geom.V(12, 10)
	zone.Collider = world.BoxCollider(true)

	report, err := s.SpawnInteriorItems()
	require.NoError(t, err)
	assert.Equal(t, 5, report.Placed)
}

func TestSpawnInteriorItems_ZeroDistanceIgnoresOccupants(t *testing.T) {
	w, s := newRoomSpawner(t, 7)
	blocker := w.NewNode("Boulder", geom.V(5, 4), nil)
	blocker.Scale = geom.V(12, 10)
	blocker.Collider = world.BoxCollider(false)
	s.MinDistance = 0
	s.MaxAttempts = 1

	report, err := s.SpawnInteriorItems()
	require.NoError(t, err)
	assert.Equal(t, 5, report.Placed)
}

func TestSpawnInteriorItems_CollidersOfSpawnedItemsBlock(t *testing.T) {
	// A 2x2 area with items whose colliders cover it cannot hold a second item.
	w := world.New()
	owner := w.NewNode("Spawner", geom.V(1, 1), nil)
	owner.Scale = geom.V(2, 2)
	owner.Collider = world.BoxCollider(false)

	s := NewSpawner(w, owner, rand.New(rand.NewSource(3)))
	s.Prefabs = []*world.Prefab{{ID: "rock", Collider: world.CircleCollider(3, false)}}
	s.Count = 3
	s.MinDistance = 0.1

	report, err := s.SpawnInteriorItems()
	require.NoError(t, err)
	assert.Equal(t, 1, report.Placed)
	assert.Equal(t, 2, report.Skipped)
}

func TestSpawnInteriorItems_ExplicitSpawnArea(t *testing.T) {
	w := world.New()
	owner := w.NewNode("Spawner", geom.Vec2{}, nil)
	area := w.NewNode("SpawnArea", geom.V(20, 20), owner)
	area.Scale = geom.V(4, 4)
	area.Collider = world.BoxCollider(false)

	s := NewSpawner(w, owner, rand.New(rand.NewSource(11)))
	s.Prefabs = []*world.Prefab{{ID: "chair"}}
	s.SpawnArea = area
	s.Count = 3
	s.MinDistance = 0.5

	report, err := s.SpawnInteriorItems()
	require.NoError(t, err)
	assert.Equal(t, 3, report.Placed)
	for _, item := range report.Items {
		assert.True(t, geom.R(18, 18, 22, 22).Contains(item.Position))
	}

	removed := s.RemoveAllSpawnedItems()
	assert.Equal(t, 3, removed)
	children := owner.Children()
	require.Len(t, children, 1)
	assert.Equal(t, area, children[0])
	assert.Equal(t, 2, w.Count())
}

func TestSpawnInteriorItems_FixedRotationAndNilPrefab(t *testing.T) {
	_, s := newRoomSpawner(t, 5)
	s.Prefabs = []*world.Prefab{{ID: "statue", Rotation: 90}}
	s.RandomRotation = false

	report, err := s.SpawnInteriorItems()
	require.NoError(t, err)
	for _, item := range report.Items {
		assert.Equal(t, 90.0, item.Rotation)
	}

	_, s = newRoomSpawner(t, 5)
	s.Prefabs = []*world.Prefab{nil}
	report, err = s.SpawnInteriorItems()
	require.NoError(t, err)
	assert.Equal(t, 0, report.Placed)
	assert.Equal(t, 5, report.Skipped)
}

func TestCatalog(t *testing.T) {
	prefabs, err := DefaultCatalog().ItemPrefabs()
	require.NoError(t, err)
	require.Len(t, prefabs, 6)
	assert.Equal(t, world.ShapeCircle, prefabs[0].Collider.Shape)
	assert.Equal(t, 0.4, prefabs[0].Collider.Radius)
	assert.True(t, prefabs[5].Collider.Trigger)

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := `
items:
  - id: altar
    name: Altar
    scale: {x: 2, y: 1}
    collider:
      shape: box
  - id: brazier
    collider:
      shape: circle
      radius: 0.3
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	cat, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, "floor", cat.Floor.ID)

	prefabs, err = cat.ItemPrefabs()
	require.NoError(t, err)
	require.Len(t, prefabs, 2)
	assert.Equal(t, geom.V(2, 1), prefabs[0].Scale)
	assert.Equal(t, geom.V(1, 1), prefabs[0].Collider.Size)
	assert.Equal(t, "brazier", prefabs[1].Name)
}

func TestLoadCatalog_Errors(t *testing.T) {
	cases := map[string]string{
		"bad shape":  "items:\n  - id: x\n    collider:\n      shape: hexagon\n",
		"no radius":  "items:\n  - id: x\n    collider:\n      shape: circle\n",
		"duplicate":  "items:\n  - id: x\n  - id: x\n",
		"missing id": "items:\n  - name: Nameless\n",
		"bad yaml":   "items: [",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "catalog.yaml")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
			_, err := LoadCatalog(path)
			assert.Error(t, err)
		})
	}

	_, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
