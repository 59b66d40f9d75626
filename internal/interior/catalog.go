package interior

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lawnchairsociety/dungeonkit/internal/geom"
	"github.com/lawnchairsociety/dungeonkit/internal/world"
)

// PrefabDef is the YAML form of a prefab.
type PrefabDef struct {
	ID       string       `yaml:"id"`
	Name     string       `yaml:"name"`
	Rotation float64      `yaml:"rotation"`
	Scale    *geom.Vec2   `yaml:"scale,omitempty"`
	Collider *ColliderDef `yaml:"collider,omitempty"`
}

// ColliderDef is the YAML form of a collider.
type ColliderDef struct {
	Shape   string    `yaml:"shape"` // "box" or "circle"
	Size    geom.Vec2 `yaml:"size"`
	Radius  float64   `yaml:"radius"`
	Offset  geom.Vec2 `yaml:"offset"`
	Trigger bool      `yaml:"trigger"`
}

// Catalog holds the room prefabs and the interior item pool.
type Catalog struct {
	Floor PrefabDef   `yaml:"floor"`
	Wall  PrefabDef   `yaml:"wall"`
	Items []PrefabDef `yaml:"items"`
}

// DefaultCatalog returns the built-in prefabs.
func DefaultCatalog() *Catalog {
	circle := func(r float64) *ColliderDef { return &ColliderDef{Shape: "circle", Radius: r} }
	return &Catalog{
		Floor: PrefabDef{ID: "floor", Name: "Floor"},
		Wall:  PrefabDef{ID: "wall", Name: "Wall"},
		Items: []PrefabDef{
			{ID: "crate", Name: "Crate", Collider: circle(0.4)},
			{ID: "barrel", Name: "Barrel", Collider: circle(0.35)},
			{ID: "table", Name: "Table", Collider: &ColliderDef{Shape: "box", Size: geom.V(1.2, 0.8)}},
			{ID: "chair", Name: "Chair", Collider: circle(0.25)},
			{ID: "bookshelf", Name: "Bookshelf", Collider: &ColliderDef{Shape: "box", Size: geom.V(1.5, 0.4)}},
			{ID: "rug", Name: "Rug", Collider: &ColliderDef{Shape: "box", Size: geom.V(2, 1.2), Trigger: true}},
		},
	}
}

// LoadCatalog reads a catalog from YAML. Sections missing from the file
// keep their built-in values.
func LoadCatalog(filename string) (*Catalog, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	cat := DefaultCatalog()
	var parsed Catalog
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}
	if parsed.Floor.ID != "" {
		cat.Floor = parsed.Floor
	}
	if parsed.Wall.ID != "" {
		cat.Wall = parsed.Wall
	}
	if len(parsed.Items) > 0 {
		cat.Items = parsed.Items
	}

	if _, err := cat.ItemPrefabs(); err != nil {
		return nil, err
	}
	return cat, nil
}

// ItemPrefabs converts the item pool into world prefabs.
func (c *Catalog) ItemPrefabs() ([]*world.Prefab, error) {
	out := make([]*world.Prefab, 0, len(c.Items))
	seen := make(map[string]bool)
	for _, def := range c.Items {
		if def.ID == "" {
			return nil, errors.New("catalog item without id")
		}
		if seen[def.ID] {
			return nil, fmt.Errorf("duplicate catalog item id: %s", def.ID)
		}
		seen[def.ID] = true
		p, err := def.Prefab()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Prefab converts a definition into a world prefab.
func (d PrefabDef) Prefab() (*world.Prefab, error) {
	p := &world.Prefab{ID: d.ID, Name: d.Name, Rotation: d.Rotation}
	if p.Name == "" {
		p.Name = d.ID
	}
	if d.Scale != nil {
		p.Scale = *d.Scale
	}
	if d.Collider != nil {
		c, err := d.Collider.collider()
		if err != nil {
			return nil, fmt.Errorf("prefab %s: %w", d.ID, err)
		}
		p.Collider = c
	}
	return p, nil
}

func (d *ColliderDef) collider() (*world.Collider, error) {
	switch d.Shape {
	case "circle":
		if d.Radius <= 0 {
			return nil, errors.New("circle collider needs a positive radius")
		}
		c := world.CircleCollider(d.Radius, d.Trigger)
		c.Offset = d.Offset
		return c, nil
	case "box", "":
		c := world.BoxCollider(d.Trigger)
		if d.Size != (geom.Vec2{}) {
			c.Size = d.Size
		}
		c.Offset = d.Offset
		return c, nil
	default:
		return nil, fmt.Errorf("unknown collider shape: %s", d.Shape)
	}
}
