package placement

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawnchairsociety/dungeonkit/internal/geom"
)

// countingOccupancy records how many queries were made.
type countingOccupancy struct {
	calls   int
	blocked bool
}

func (c *countingOccupancy) Blocked(geom.Vec2, float64) bool {
	c.calls++
	return c.blocked
}

func TestSample_NonPositiveDistanceAcceptsFirstDraw(t *testing.T) {
	for _, d := range []float64{0, -1, -0.5} {
		occ := &countingOccupancy{blocked: true}
		s := NewSampler(rand.New(rand.NewSource(7)))
		req := Request{
			Area:        geom.R(0, 0, 10, 8),
			MinDistance: d,
			MaxAttempts: 30,
			Existing:    []geom.Vec2{geom.V(5, 4)},
		}

		// The same seed must produce the same first draw.
		want := NewSampler(rand.New(rand.NewSource(7))).Draw(req.Area)

		p, err := s.Sample(req, occ)
		require.NoError(t, err)
		assert.Equal(t, want, p)
		assert.Zero(t, occ.calls, "distance check should be skipped")
	}
}

func TestSample_EmptyExclusionSetAlwaysSucceeds(t *testing.T) {
	area := geom.R(0, 0, 10, 8)
	for seed := int64(0); seed < 200; seed++ {
		s := NewSampler(rand.New(rand.NewSource(seed)))
		p, err := s.Sample(Request{Area: area, MinDistance: 1, MaxAttempts: 30}, nil)
		require.NoError(t, err)
		assert.True(t, area.Contains(p), "point %v outside area", p)
	}
}

func TestSample_AcceptedPointsKeepMinimumDistance(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	area := geom.R(0, 0, 10, 8)
	const d = 1.5

	for trial := 0; trial < 100; trial++ {
		existing := make([]geom.Vec2, 0, 6)
		for i := 0; i < 6; i++ {
			existing = append(existing, geom.V(rng.Float64()*10, rng.Float64()*8))
		}
		p, err := NewSampler(rng).Sample(Request{Area: area, MinDistance: d, MaxAttempts: 30, Existing: existing}, nil)
		if err != nil {
			require.ErrorIs(t, err, ErrAttemptsExhausted)
			continue
		}
		for _, q := range existing {
			assert.GreaterOrEqual(t, p.Dist(q), d)
		}
	}
}

func TestSample_ExhaustsAttempts(t *testing.T) {
	occ := &countingOccupancy{blocked: true}
	s := NewSampler(rand.New(rand.NewSource(1)))

	_, err := s.Sample(Request{Area: geom.R(0, 0, 10, 8), MinDistance: 1, MaxAttempts: 12}, occ)
	assert.ErrorIs(t, err, ErrAttemptsExhausted)
	assert.Equal(t, 12, occ.calls)
}

func TestSample_NonPositiveAttemptsDrawsOnce(t *testing.T) {
	occ := &countingOccupancy{blocked: true}
	s := NewSampler(rand.New(rand.NewSource(1)))

	_, err := s.Sample(Request{Area: geom.R(0, 0, 1, 1), MinDistance: 1, MaxAttempts: 0}, occ)
	assert.ErrorIs(t, err, ErrAttemptsExhausted)
	assert.Equal(t, 1, occ.calls)
}

func TestSample_DegenerateArea(t *testing.T) {
	s := NewSampler(rand.New(rand.NewSource(3)))
	area := geom.R(2, 3, 2, 3)
	for i := 0; i < 10; i++ {
		p, err := s.Sample(Request{Area: area, MinDistance: 0, MaxAttempts: 5}, nil)
		require.NoError(t, err)
		assert.Equal(t, geom.V(2, 3), p)
	}

	line := geom.R(0, 5, 10, 5)
	p, err := s.Sample(Request{Area: line, MaxAttempts: 1}, nil)
	require.NoError(t, err)
	assert.Equal(t, 5.0, p.Y)
}

func TestSample_DegenerateAreaBlockedByExistingPoint(t *testing.T) {
	s := NewSampler(rand.New(rand.NewSource(3)))
	req := Request{
		Area:        geom.R(2, 3, 2, 3),
		MinDistance: 1,
		MaxAttempts: 30,
		Existing:    []geom.Vec2{geom.V(2, 3)},
	}
	_, err := s.Sample(req, nil)
	assert.ErrorIs(t, err, ErrAttemptsExhausted)
}

func TestSample_BoundaryDistanceIsRejected(t *testing.T) {
	// The containment test is inclusive: a point exactly d away is blocked.
	s := NewSampler(rand.New(rand.NewSource(3)))
	req := Request{
		Area:        geom.R(0, 0, 0, 0),
		MinDistance: 1,
		MaxAttempts: 3,
		Existing:    []geom.Vec2{geom.V(1, 0)},
	}
	_, err := s.Sample(req, nil)
	assert.ErrorIs(t, err, ErrAttemptsExhausted)
}
