package world

import (
	"math"

	"github.com/lawnchairsociety/dungeonkit/internal/geom"
)

// Shape is the geometry of a collider.
type Shape int

const (
	ShapeBox Shape = iota
	ShapeCircle
)

// String returns the shape name used in exports.
func (s Shape) String() string {
	switch s {
	case ShapeBox:
		return "box"
	case ShapeCircle:
		return "circle"
	default:
		return "unknown"
	}
}

// Collider is a 2D occupancy region attached to a node. Sizes are in local
// units and get multiplied by the node scale.
type Collider struct {
	Shape   Shape     `yaml:"-"`
	Size    geom.Vec2 `yaml:"size"`   // box only
	Radius  float64   `yaml:"radius"` // circle only
	Offset  geom.Vec2 `yaml:"offset"`
	Trigger bool      `yaml:"trigger"`
}

// BoxCollider returns a unit box collider, which spans the node scale exactly.
func BoxCollider(trigger bool) *Collider {
	return &Collider{Shape: ShapeBox, Size: geom.V(1, 1), Trigger: trigger}
}

// CircleCollider returns a circle collider of the given local radius.
func CircleCollider(radius float64, trigger bool) *Collider {
	return &Collider{Shape: ShapeCircle, Radius: radius, Trigger: trigger}
}

// Prefab is a template for instantiated nodes.
type Prefab struct {
	ID       string
	Name     string
	Rotation float64
	Scale    geom.Vec2
	Collider *Collider
}

func (p *Prefab) scale() geom.Vec2 {
	if p.Scale == (geom.Vec2{}) {
		return geom.V(1, 1)
	}
	return p.Scale
}

// Node is an object in the world. Position is in world space.
type Node struct {
	Name     string
	PrefabID string
	Position geom.Vec2
	Rotation float64
	Scale    geom.Vec2
	Collider *Collider

	id       int
	world    *World
	parent   *Node
	children []*Node
}

// ID returns the world-unique identifier of the node.
func (n *Node) ID() int {
	return n.id
}

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a copy of the direct children.
func (n *Node) Children() []*Node {
	if n.world != nil {
		n.world.mu.RLock()
		defer n.world.mu.RUnlock()
	}
	return append([]*Node(nil), n.children...)
}

// Bounds returns the world-space bounding rectangle of the collider. Rotated
// boxes report the axis-aligned rectangle enclosing them.
func (n *Node) Bounds() (geom.Rect, bool) {
	if n.Collider == nil {
		return geom.Rect{}, false
	}
	c := n.center()
	switch n.Collider.Shape {
	case ShapeCircle:
		r := n.radius()
		return geom.CenteredRect(c, geom.V(2*r, 2*r)), true
	default:
		size := n.boxSize()
		sin, cos := math.Sincos(n.Rotation * math.Pi / 180)
		sin, cos = math.Abs(sin), math.Abs(cos)
		return geom.CenteredRect(c, geom.V(size.X*cos+size.Y*sin, size.X*sin+size.Y*cos)), true
	}
}

// center is the collider center in world space. The offset turns with the node.
func (n *Node) center() geom.Vec2 {
	return n.Position.Add(n.Collider.Offset.Rotate(n.Rotation))
}

func (n *Node) boxSize() geom.Vec2 {
	return geom.V(n.Collider.Size.X*math.Abs(n.Scale.X), n.Collider.Size.Y*math.Abs(n.Scale.Y))
}

func (n *Node) radius() float64 {
	return n.Collider.Radius * math.Max(math.Abs(n.Scale.X), math.Abs(n.Scale.Y))
}

func (n *Node) overlapsCircle(center geom.Vec2, radius float64) bool {
	c := n.center()
	switch n.Collider.Shape {
	case ShapeCircle:
		reach := radius + n.radius()
		return center.DistSq(c) <= reach*reach
	default:
		// Move the disc into the box frame so the box is axis-aligned at the origin.
		local := center.Sub(c).Rotate(-n.Rotation)
		return geom.CenteredRect(geom.Vec2{}, n.boxSize()).CircleOverlaps(local, radius)
	}
}
