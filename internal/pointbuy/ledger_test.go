package pointbuy

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawnchairsociety/dungeonkit/internal/stats"
)

func TestCost(t *testing.T) {
	tests := []struct {
		value int
		want  int
	}{
		{0, 1}, {8, 1}, {12, 1}, {13, 1},
		{14, 2},
		{15, 3}, {16, 3}, {30, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Cost(tt.value), "Cost(%d)", tt.value)
	}
}

func TestCost_MonotonicWithThreeOutputs(t *testing.T) {
	seen := map[int]bool{}
	prev := Cost(-5)
	for v := -5; v <= 40; v++ {
		c := Cost(v)
		assert.GreaterOrEqual(t, c, prev, "Cost must not decrease at %d", v)
		prev = c
		seen[c] = true
	}
	assert.Equal(t, map[int]bool{1: true, 2: true, 3: true}, seen)
}

func TestCostToReach(t *testing.T) {
	assert.Equal(t, 0, CostToReach(8, 8))
	assert.Equal(t, 5, CostToReach(8, 13))
	assert.Equal(t, 6, CostToReach(8, 14))
	assert.Equal(t, 8, CostToReach(8, 15))
	assert.Equal(t, 11, CostToReach(8, 16))
}

func TestNew(t *testing.T) {
	l := New()
	assert.Equal(t, stats.Uniform(8), l.Values())
	assert.Equal(t, 27, l.Remaining())
	assert.Equal(t, 0, l.Spent())
	assert.Equal(t, 8, l.Floor())
}

func raise(t *testing.T, l *Ledger, a stats.Ability, to int) {
	t.Helper()
	for l.Value(a) < to {
		require.True(t, l.Increase(a), "could not raise %s to %d", a, to)
	}
}

func TestIncrease_ChargesCostOfValueBeingLeft(t *testing.T) {
	l := New()
	raise(t, l, stats.Strength, 13)
	require.Equal(t, 22, l.Remaining())

	assert.True(t, l.Increase(stats.Strength))
	assert.Equal(t, 14, l.Value(stats.Strength))
	assert.Equal(t, 21, l.Remaining(), "13 -> 14 costs 1")

	assert.True(t, l.Increase(stats.Strength))
	assert.Equal(t, 19, l.Remaining(), "14 -> 15 costs 2")

	assert.True(t, l.Increase(stats.Strength))
	assert.Equal(t, 16, l.Remaining(), "15 -> 16 costs 3")
}

func TestIncrease_FailsWhenBudgetBelowCost(t *testing.T) {
	l := NewWithBudget(10, 8)
	raise(t, l, stats.Strength, 15) // 8 points
	require.Equal(t, 2, l.Remaining())

	assert.False(t, l.CanIncrease(stats.Strength))
	assert.False(t, l.Increase(stats.Strength))
	assert.Equal(t, 15, l.Value(stats.Strength))
	assert.Equal(t, 2, l.Remaining())

	// Cheaper abilities can still be bought.
	assert.True(t, l.Increase(stats.Dexterity))
}

func TestIncrease_NoOpWhenBudgetExhausted(t *testing.T) {
	l := NewWithBudget(1, 8)
	require.True(t, l.Increase(stats.Wisdom))
	assert.False(t, l.Increase(stats.Wisdom))
	assert.False(t, l.Increase(stats.Charisma))
	assert.Equal(t, 0, l.Remaining())
}

func TestIncrease_InvalidAbility(t *testing.T) {
	l := New()
	assert.False(t, l.Increase(stats.Ability(6)))
	assert.False(t, l.Decrease(stats.Ability(-1)))
	assert.Equal(t, 27, l.Remaining())
}

func TestDecrease_AtFloorIsNoOp(t *testing.T) {
	l := New()
	for _, a := range stats.All() {
		assert.False(t, l.CanDecrease(a))
		assert.False(t, l.Decrease(a))
	}
	assert.Equal(t, 27, l.Remaining())
	assert.Equal(t, stats.Uniform(8), l.Values())
}

func TestDecrease_MirrorRefundsExactCharge(t *testing.T) {
	l := New()
	raise(t, l, stats.Constitution, 16)
	require.Equal(t, 27-11, l.Remaining())

	for l.Decrease(stats.Constitution) {
	}
	assert.Equal(t, 8, l.Value(stats.Constitution))
	assert.Equal(t, 27, l.Remaining())
	assert.Equal(t, 0, l.Spent())
}

func TestDecrease_LegacyRefund(t *testing.T) {
	l := New()
	l.SetRefundPolicy(RefundLegacy)
	raise(t, l, stats.Intelligence, 16)
	before := l.Remaining()

	require.True(t, l.Decrease(stats.Intelligence)) // Cost(16)-1 = 2
	assert.Equal(t, before+2, l.Remaining())
	require.True(t, l.Decrease(stats.Intelligence)) // Cost(15)-1 = 2
	assert.Equal(t, before+4, l.Remaining())
	require.True(t, l.Decrease(stats.Intelligence)) // Cost(14)-1 = 1
	assert.Equal(t, before+5, l.Remaining())
	require.True(t, l.Decrease(stats.Intelligence)) // Cost(13)-1 = 0
	assert.Equal(t, before+5, l.Remaining())
}

func TestParseRefundPolicy(t *testing.T) {
	p, err := ParseRefundPolicy("")
	require.NoError(t, err)
	assert.Equal(t, RefundMirror, p)

	p, err = ParseRefundPolicy("legacy")
	require.NoError(t, err)
	assert.Equal(t, RefundLegacy, p)

	_, err = ParseRefundPolicy("generous")
	assert.Error(t, err)
}

func TestSpentMatchesSumOfCharges(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 50; trial++ {
		l := New()
		charged := 0
		for i := 0; i < 60; i++ {
			a := stats.Ability(rng.Intn(stats.Count))
			cost := Cost(l.Value(a))
			if l.Increase(a) {
				charged += cost
			}
			require.GreaterOrEqual(t, l.Remaining(), 0)
		}
		assert.LessOrEqual(t, charged, 27)
		assert.Equal(t, charged, l.Spent())
		assert.Equal(t, 27-charged, l.Remaining())
	}
}

func TestRandomize_SpendsEntireBudget(t *testing.T) {
	for seed := int64(0); seed < 100; seed++ {
		l := New()
		raise(t, l, stats.Strength, 12)

		require.NoError(t, l.Randomize(rand.New(rand.NewSource(seed))))
		assert.Equal(t, 0, l.Remaining())
		assert.Equal(t, 27, l.Spent())

		cost := 0
		for _, a := range stats.All() {
			v := l.Value(a)
			assert.GreaterOrEqual(t, v, 8)
			cost += CostToReach(8, v)
		}
		assert.Equal(t, 27, cost)
	}
}

func TestRandomize_CapStopsUnreachableBudget(t *testing.T) {
	// Floor 15 makes every step cost 3, so a budget of 2 can never be spent.
	l := NewWithBudget(2, 15)
	err := l.Randomize(rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrRandomizeCapped)
	assert.Equal(t, 2, l.Remaining())
}

func TestLoad(t *testing.T) {
	l := New()
	scores := stats.Scores{15, 14, 13, 8, 10, 8}
	require.NoError(t, l.Load(scores))
	assert.Equal(t, scores, l.Values())
	assert.Equal(t, 27-(8+6+5+0+2+0), l.Remaining())

	// Over budget.
	err := l.Load(stats.Scores{15, 15, 15, 15, 8, 8})
	assert.Error(t, err)
	assert.Equal(t, scores, l.Values(), "failed load must not modify the ledger")

	// Below floor.
	assert.Error(t, l.Load(stats.Scores{7, 8, 8, 8, 8, 8}))
}

func TestCostTable(t *testing.T) {
	assert.Contains(t, CostTable(), "14 -> 15 |   2")
}
