// Package optimizer searches for the cost-optimal combination of
// mitigation strategies against a simulated working-capital gap. It is
// a pure two-phase pipeline: per-strategy effectiveness evaluation,
// then an exhaustive power-set search with pairwise interaction
// discounts.
package optimizer

import (
	"errors"

	"github.com/brfiscal/spedsim/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrNoStrategySelected is returned when no activation flag is set.
// At this validation boundary an empty selection is an input error;
// simulation.Session deliberately converts it into an empty outcome
// for the lenient caller path.
var ErrNoStrategySelected = errors.New("no mitigation strategy selected")

// OptimizerError wraps failures of an optimization run with the
// operation that produced them.
type OptimizerError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *OptimizerError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *OptimizerError) Unwrap() error {
	return e.Cause
}

// StrategyResult is the evaluation of a single strategy against the
// baseline capital gap. Immutable once computed for a run.
type StrategyResult struct {
	Strategy domain.Strategy `json:"estrategia"`

	// EffectivenessPercent is the share of the capital gap this
	// strategy mitigates on its own, 0-100.
	EffectivenessPercent decimal.Decimal `json:"efetividade"`

	// Cost is the monetary cost of achieving that mitigation.
	Cost decimal.Decimal `json:"custo"`

	// CostBenefitRatio is Cost / EffectivenessPercent; Unbounded when
	// effectiveness is zero.
	CostBenefitRatio decimal.Decimal `json:"custoBeneficio"`
	Unbounded        bool            `json:"ilimitado"`
}

// CombinationResult is one evaluated subset of active strategies.
type CombinationResult struct {
	Strategies []domain.Strategy `json:"estrategias"`

	// EffectivenessTotal is the interaction-discounted sum of member
	// effectiveness, capped at 100.
	EffectivenessTotal decimal.Decimal `json:"efetividadeTotal"`

	// CostTotal is the raw (undiscounted) sum of member costs.
	CostTotal decimal.Decimal `json:"custoTotal"`

	// CostBenefitRatio is CostTotal / EffectivenessTotal; Unbounded
	// (conceptually infinite) when effectiveness is zero.
	CostBenefitRatio decimal.Decimal `json:"custoBeneficio"`
	Unbounded        bool            `json:"ilimitado"`
}

// Result is the full output of an optimization run: the winning
// combination, the per-strategy effectiveness table, and the complete
// ranked list of every evaluated subset for inspection and audit.
type Result struct {
	// Best is the combination with the minimum finite cost-benefit
	// ratio, or nil when no combination achieves any effectiveness
	// (e.g. a zero capital gap).
	Best *CombinationResult `json:"melhorCombinacao"`

	Strategies []StrategyResult    `json:"estrategias"`
	Ranking    []CombinationResult `json:"ranking"`
}

func newCombinationResult(strategies []domain.Strategy, effectiveness, cost decimal.Decimal) CombinationResult {
	c := CombinationResult{
		Strategies:         strategies,
		EffectivenessTotal: effectiveness,
		CostTotal:          cost,
	}
	if effectiveness.IsZero() {
		c.Unbounded = true
	} else {
		c.CostBenefitRatio = cost.Div(effectiveness)
	}
	return c
}
