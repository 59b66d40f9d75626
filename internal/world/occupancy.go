package world

import "github.com/lawnchairsociety/dungeonkit/internal/geom"

// Occupancy adapts a World to placement queries. Trigger colliders and the
// ignored nodes (typically the spawn area and the spawner itself) never block.
type Occupancy struct {
	World  *World
	Ignore []*Node
}

// Blocked implements placement.Occupancy.
func (o Occupancy) Blocked(center geom.Vec2, radius float64) bool {
	for _, n := range o.World.OverlapCircle(center, radius) {
		if n.Collider.Trigger || o.ignored(n) {
			continue
		}
		return true
	}
	return false
}

func (o Occupancy) ignored(n *Node) bool {
	for _, ig := range o.Ignore {
		if ig == n {
			return true
		}
	}
	return false
}
