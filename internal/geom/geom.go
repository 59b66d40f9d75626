// Package geom provides the small 2D vector and rectangle types used by the
// room builder and the placement sampler.
package geom

import "math"

// Vec2 is an immutable 2D coordinate.
type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// V is shorthand for Vec2{x, y}.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Dist returns the Euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 {
	return math.Sqrt(v.DistSq(o))
}

// DistSq returns the squared Euclidean distance between v and o.
func (v Vec2) DistSq(o Vec2) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	return dx*dx + dy*dy
}

// Rotate returns v turned counter-clockwise by deg degrees.
func (v Vec2) Rotate(deg float64) Vec2 {
	if deg == 0 {
		return v
	}
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return Vec2{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
}

// Rect is an axis-aligned rectangle given by its min and max corners.
type Rect struct {
	Min Vec2 `json:"min" yaml:"min"`
	Max Vec2 `json:"max" yaml:"max"`
}

// R builds a Rect from corner coordinates, normalizing the corner order.
func R(x0, y0, x1, y1 float64) Rect {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return Rect{Min: V(x0, y0), Max: V(x1, y1)}
}

// CenteredRect returns the rectangle of the given size centered on c.
func CenteredRect(c, size Vec2) Rect {
	half := size.Scale(0.5)
	return R(c.X-half.X, c.Y-half.Y, c.X+half.X, c.Y+half.Y)
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the vertical extent.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return V((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// ClosestPoint returns the point of r nearest to p.
func (r Rect) ClosestPoint(p Vec2) Vec2 {
	return V(Clamp(p.X, r.Min.X, r.Max.X), Clamp(p.Y, r.Min.Y, r.Max.Y))
}

// CircleOverlaps reports whether the closed disc (c, radius) touches r.
func (r Rect) CircleOverlaps(c Vec2, radius float64) bool {
	return c.DistSq(r.ClosestPoint(c)) <= radius*radius
}

// Clamp limits value to the range [lo, hi].
func Clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
