// Package pointbuy implements the point-buy attribute economy used during
// character creation: six scores bought up from a floor against a shared
// budget, with a stepped per-increment cost.
package pointbuy

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/lawnchairsociety/dungeonkit/internal/stats"
)

// Point buy constants
const (
	Budget   = 27 // Total points to spend
	MinScore = 8  // Floor for every ability

	// MaxRandomizeAttempts bounds the random distribution loop.
	MaxRandomizeAttempts = 10000
)

// ErrRandomizeCapped is returned when Randomize stops at its attempt cap
// with points still unspent.
var ErrRandomizeCapped = errors.New("randomize stopped before spending all points")

// Cost is the price of raising an ability one step from value.
// 1 up to 13, 2 at 14, 3 from 15 on.
func Cost(value int) int {
	switch {
	case value <= 13:
		return 1
	case value == 14:
		return 2
	default:
		return 3
	}
}

// CostToReach sums the step costs needed to raise an ability from floor to value.
func CostToReach(floor, value int) int {
	total := 0
	for v := floor; v < value; v++ {
		total += Cost(v)
	}
	return total
}

// RefundPolicy selects how Decrease computes its refund.
type RefundPolicy int

const (
	// RefundMirror refunds Cost(value-1): exactly what Increase charged to
	// reach the value being vacated.
	RefundMirror RefundPolicy = iota
	// RefundLegacy refunds Cost(value)-1. Kept for compatibility with saves
	// edited under the older rule; it does not mirror Increase.
	RefundLegacy
)

func (p RefundPolicy) String() string {
	if p == RefundLegacy {
		return "legacy"
	}
	return "mirror"
}

// ParseRefundPolicy maps "mirror" / "legacy" to a policy.
func ParseRefundPolicy(s string) (RefundPolicy, error) {
	switch s {
	case "", "mirror":
		return RefundMirror, nil
	case "legacy":
		return RefundLegacy, nil
	default:
		return RefundMirror, fmt.Errorf("unknown refund policy: %s", s)
	}
}

// Ledger tracks six ability values against a shared budget.
type Ledger struct {
	values  stats.Scores
	budget  int
	total   int
	floor   int
	policy  RefundPolicy
	charged int
}

// New returns a ledger with the standard 27 point budget and floor of 8.
func New() *Ledger {
	return NewWithBudget(Budget, MinScore)
}

// NewWithBudget returns a ledger with a custom budget and floor.
func NewWithBudget(budget, floor int) *Ledger {
	l := &Ledger{total: budget, floor: floor}
	l.Reset()
	return l
}

// SetRefundPolicy changes how future decrements are refunded.
func (l *Ledger) SetRefundPolicy(p RefundPolicy) {
	l.policy = p
}

// Reset puts every ability back to the floor and restores the full budget.
func (l *Ledger) Reset() {
	l.values = stats.Uniform(l.floor)
	l.budget = l.total
	l.charged = 0
}

// Increase raises a by one, charging the cost of the value being left.
// It is a no-op when the budget is exhausted or cannot cover the step.
func (l *Ledger) Increase(a stats.Ability) bool {
	if !a.Valid() || l.budget <= 0 {
		return false
	}
	cost := Cost(l.values.Get(a))
	if l.budget < cost {
		return false
	}
	l.values.Set(a, l.values.Get(a)+1)
	l.budget -= cost
	l.charged += cost
	return true
}

// Decrease lowers a by one and refunds according to the refund policy.
// It is a no-op at or below the floor.
func (l *Ledger) Decrease(a stats.Ability) bool {
	if !a.Valid() {
		return false
	}
	current := l.values.Get(a)
	if current <= l.floor {
		return false
	}
	refund := l.refund(current)
	l.values.Set(a, current-1)
	l.budget += refund
	l.charged -= refund
	return true
}

func (l *Ledger) refund(current int) int {
	if l.policy == RefundLegacy {
		return Cost(current) - 1
	}
	return Cost(current - 1)
}

// Randomize resets the ledger and spends the whole budget on uniformly chosen
// abilities. It gives up after MaxRandomizeAttempts picks and returns
// ErrRandomizeCapped with the ledger left in its partially spent state.
func (l *Ledger) Randomize(rng *rand.Rand) error {
	l.Reset()
	for attempts := 0; l.budget > 0; attempts++ {
		if attempts >= MaxRandomizeAttempts {
			return ErrRandomizeCapped
		}
		l.Increase(stats.Ability(rng.Intn(stats.Count)))
	}
	return nil
}

// Load rebuilds the ledger from persisted values by replaying increments from
// the floor. It fails, leaving the ledger untouched, when a value is below the
// floor or the values cost more than the budget.
func (l *Ledger) Load(values stats.Scores) error {
	cost := 0
	for _, a := range stats.All() {
		v := values.Get(a)
		if v < l.floor {
			return fmt.Errorf("%s cannot be below %d", a, l.floor)
		}
		cost += CostToReach(l.floor, v)
	}
	if cost > l.total {
		return fmt.Errorf("allocation costs %d points, but only %d available", cost, l.total)
	}

	l.values = values
	l.budget = l.total - cost
	l.charged = cost
	return nil
}

// Value returns the current value of a.
func (l *Ledger) Value(a stats.Ability) int {
	return l.values.Get(a)
}

// Values returns a copy of all six values.
func (l *Ledger) Values() stats.Scores {
	return l.values
}

// Remaining returns the unspent budget.
func (l *Ledger) Remaining() int {
	return l.budget
}

// Spent returns the net points charged so far.
func (l *Ledger) Spent() int {
	return l.charged
}

// Floor returns the minimum value of every ability.
func (l *Ledger) Floor() int {
	return l.floor
}

// CanIncrease reports whether Increase(a) would succeed.
func (l *Ledger) CanIncrease(a stats.Ability) bool {
	return a.Valid() && l.budget > 0 && l.budget >= Cost(l.values.Get(a))
}

// CanDecrease reports whether Decrease(a) would succeed.
func (l *Ledger) CanDecrease(a stats.Ability) bool {
	return a.Valid() && l.values.Get(a) > l.floor
}

// CostTable returns a formatted string showing the step costs.
func CostTable() string {
	return `Step     | Cost
---------+-----
 8 -> 14 |   1 each
14 -> 15 |   2
15 ->    |   3 each`
}
