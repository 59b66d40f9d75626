// Package world holds the scene graph that generated rooms and spawned
// interior items live in, and answers overlap queries against it.
package world

import (
	"sort"
	"sync"

	"github.com/lawnchairsociety/dungeonkit/internal/geom"
)

// World is a flat index of nodes plus their parent/child links.
type World struct {
	mu     sync.RWMutex
	nodes  map[int]*Node
	nextID int
}

// New creates an empty world.
func New() *World {
	return &World{
		nodes: make(map[int]*Node),
	}
}

// NewNode creates an empty node at the given position, optionally parented.
func (w *World) NewNode(name string, position geom.Vec2, parent *Node) *Node {
	w.mu.Lock()
	defer w.mu.Unlock()

	n := &Node{
		Name:     name,
		Position: position,
		Scale:    geom.V(1, 1),
	}
	w.addLocked(n, parent)
	return n
}

// Instantiate creates a node from a prefab at the given position and Z
// rotation (degrees), parented under parent. The prefab's collider is copied.
func (w *World) Instantiate(p *Prefab, position geom.Vec2, rotation float64, parent *Node) *Node {
	w.mu.Lock()
	defer w.mu.Unlock()

	n := &Node{
		Name:     p.Name,
		PrefabID: p.ID,
		Position: position,
		Rotation: rotation,
		Scale:    p.scale(),
	}
	if p.Collider != nil {
		c := *p.Collider
		n.Collider = &c
	}
	w.addLocked(n, parent)
	return n
}

func (w *World) addLocked(n *Node, parent *Node) {
	w.nextID++
	n.id = w.nextID
	n.world = w
	w.nodes[n.id] = n
	if parent != nil {
		n.parent = parent
		parent.children = append(parent.children, n)
	}
}

// Destroy removes a node and its whole subtree from the world.
func (w *World) Destroy(n *Node) {
	if n == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	if n.parent != nil {
		siblings := n.parent.children
		for i, c := range siblings {
			if c == n {
				n.parent.children = append(siblings[:i:i], siblings[i+1:]...)
				break
			}
		}
		n.parent = nil
	}
	w.destroyLocked(n)
}

func (w *World) destroyLocked(n *Node) {
	for _, c := range n.children {
		c.parent = nil
		w.destroyLocked(c)
	}
	n.children = nil
	delete(w.nodes, n.id)
	n.world = nil
}

// Count returns the number of live nodes.
func (w *World) Count() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.nodes)
}

// OverlapCircle returns every node whose collider touches the closed disc of
// the given radius around center, triggers included, in creation order.
func (w *World) OverlapCircle(center geom.Vec2, radius float64) []*Node {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.sortedLocked(func(n *Node) bool {
		return n.Collider != nil && n.overlapsCircle(center, radius)
	})
}

func (w *World) sortedLocked(keep func(*Node) bool) []*Node {
	out := make([]*Node, 0, len(w.nodes))
	for _, n := range w.nodes {
		if keep(n) {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}
