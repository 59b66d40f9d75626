// Package placement picks spawn positions inside an area by rejection
// sampling under a minimum-distance constraint.
package placement

import (
	"errors"
	"math/rand"

	"github.com/lawnchairsociety/dungeonkit/internal/geom"
)

// ErrAttemptsExhausted is returned when no draw satisfied the distance
// constraint within the attempt budget.
var ErrAttemptsExhausted = errors.New("placement attempts exhausted")

// DefaultMaxAttempts is the attempt budget used when a request leaves it unset
// in configuration.
const DefaultMaxAttempts = 30

// Occupancy answers spatial queries against everything already placed in the
// environment. Implementations decide which occupants count.
type Occupancy interface {
	// Blocked reports whether any relevant occupant overlaps the closed disc
	// of the given radius around center.
	Blocked(center geom.Vec2, radius float64) bool
}

// Request describes a single placement. It is built per spawn call and
// discarded afterwards.
type Request struct {
	Area        geom.Rect
	MinDistance float64
	MaxAttempts int
	Existing    []geom.Vec2
}

// Sampler draws candidate points from its own random source.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler creates a sampler. A nil rng gets a source seeded from the
// global generator.
func NewSampler(rng *rand.Rand) *Sampler {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Sampler{rng: rng}
}

// Sample returns the first uniformly drawn point in req.Area that keeps
// req.MinDistance from every existing point and from every occupant reported
// by occ. occ may be nil. A non-positive MinDistance accepts the first draw.
func (s *Sampler) Sample(req Request, occ Occupancy) (geom.Vec2, error) {
	attempts := req.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	for i := 0; i < attempts; i++ {
		p := s.Draw(req.Area)
		if req.MinDistance <= 0 || s.clear(p, req, occ) {
			return p, nil
		}
	}
	return geom.Vec2{}, ErrAttemptsExhausted
}

// Draw returns a uniformly distributed point in area. Degenerate axes always
// yield their single coordinate.
func (s *Sampler) Draw(area geom.Rect) geom.Vec2 {
	return geom.V(
		area.Min.X+s.rng.Float64()*area.Width(),
		area.Min.Y+s.rng.Float64()*area.Height(),
	)
}

// clear runs the circular containment test: a candidate is rejected when
// anything lies at distance <= MinDistance.
func (s *Sampler) clear(p geom.Vec2, req Request, occ Occupancy) bool {
	limit := req.MinDistance * req.MinDistance
	for _, q := range req.Existing {
		if p.DistSq(q) <= limit {
			return false
		}
	}
	if occ != nil && occ.Blocked(p, req.MinDistance) {
		return false
	}
	return true
}
