// Package room builds a rectangular 2D room: a floor scaled to the room size
// and four walls wrapped around it.
package room

import (
	"errors"

	"github.com/lawnchairsociety/dungeonkit/internal/geom"
	"github.com/lawnchairsociety/dungeonkit/internal/logger"
	"github.com/lawnchairsociety/dungeonkit/internal/world"
)

// ErrMissingPrefab is returned when the floor or wall prefab is not assigned.
var ErrMissingPrefab = errors.New("floor or wall prefab is not assigned")

// Default room dimensions.
const (
	DefaultWidth         = 10.0
	DefaultHeight        = 8.0
	DefaultWallThickness = 0.2
)

// Wall indices into Room.Walls.
const (
	TopWall = iota
	BottomWall
	LeftWall
	RightWall
)

var wallNames = [4]string{"TopWall", "BottomWall", "LeftWall", "RightWall"}

// Room is the result of a generation pass.
type Room struct {
	Root  *world.Node
	Floor *world.Node
	Walls [4]*world.Node
}

// Interior returns the floor area in world space.
func (r *Room) Interior() geom.Rect {
	return geom.CenteredRect(r.Floor.Position, r.Floor.Scale)
}

// Generator creates rooms under an owner node.
type Generator struct {
	Size          geom.Vec2
	WallThickness float64
	FloorPrefab   *world.Prefab
	WallPrefab    *world.Prefab
	AddColliders  bool
	IsTrigger     bool

	world     *world.World
	owner     *world.Node
	generated *Room
}

// NewGenerator returns a generator with the default 10x8 room, 0.2 walls and
// colliders enabled. owner may be nil, in which case rooms are built at the origin.
func NewGenerator(w *world.World, owner *world.Node) *Generator {
	return &Generator{
		Size:          geom.V(DefaultWidth, DefaultHeight),
		WallThickness: DefaultWallThickness,
		AddColliders:  true,
		world:         w,
		owner:         owner,
	}
}

// Generated returns the current room, or nil.
func (g *Generator) Generated() *Room {
	return g.generated
}

// GenerateRoom clears any previous room and builds a new one. Nothing is
// created when a prefab is missing.
func (g *Generator) GenerateRoom() (*Room, error) {
	g.ClearRoom()

	if g.FloorPrefab == nil || g.WallPrefab == nil {
		logger.Error("Floor or Wall prefab is not assigned")
		return nil, ErrMissingPrefab
	}

	origin := geom.Vec2{}
	if g.owner != nil {
		origin = g.owner.Position
	}

	r := &Room{}
	r.Root = g.world.NewNode("GeneratedRoom2D", origin, g.owner)

	r.Floor = g.world.Instantiate(g.FloorPrefab, origin, 0, r.Root)
	r.Floor.Name = "Floor"
	r.Floor.Scale = g.Size

	w, h, t := g.Size.X, g.Size.Y, g.WallThickness
	placements := [4]struct{ pos, scale geom.Vec2 }{
		TopWall:    {geom.V(0, h/2+t/2), geom.V(w+t*2, t)},
		BottomWall: {geom.V(0, -h/2-t/2), geom.V(w+t*2, t)},
		LeftWall:   {geom.V(-w/2-t/2, 0), geom.V(t, h+t*2)},
		RightWall:  {geom.V(w/2+t/2, 0), geom.V(t, h+t*2)},
	}
	for i, p := range placements {
		r.Walls[i] = g.createWall(wallNames[i], origin.Add(p.pos), p.scale, r.Root)
	}

	g.generated = r
	logger.Debug("Room generated", "width", w, "height", h, "wall_thickness", t)
	return r, nil
}

func (g *Generator) createWall(name string, pos, scale geom.Vec2, parent *world.Node) *world.Node {
	wall := g.world.Instantiate(g.WallPrefab, pos, 0, parent)
	wall.Name = name
	wall.Scale = scale

	if g.AddColliders && wall.Collider == nil {
		wall.Collider = world.BoxCollider(g.IsTrigger)
	}
	return wall
}

// ClearRoom destroys the generated room, if any.
func (g *Generator) ClearRoom() {
	if g.generated != nil {
		g.world.Destroy(g.generated.Root)
	}
	g.generated = nil
}
