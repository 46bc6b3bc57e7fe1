package optimizer

import (
	"github.com/brfiscal/spedsim/internal/domain"
	"github.com/shopspring/decimal"
)

// defaultInteraction applies to any strategy pair without an explicit
// entry: a mild 10% double-counting discount.
var defaultInteraction = decimal.NewFromFloat(0.9)

type strategyPair struct {
	a, b domain.Strategy
}

// interactionMatrix holds the pairwise interaction factors in [0, 1].
// 1.0 means the two strategies mitigate independent slices of the gap;
// lower values discount overlapping cash-flow benefits. Entries are
// stored once and looked up in both orders, so the matrix is symmetric
// by construction.
var interactionMatrix = map[strategyPair]decimal.Decimal{
	{domain.StrategyPriceAdjustment, domain.StrategyWorkingCapitalLoan}:    decimal.NewFromFloat(1.0),
	{domain.StrategyPriceAdjustment, domain.StrategyProductMixShift}:       decimal.NewFromFloat(0.7),
	{domain.StrategyPriceAdjustment, domain.StrategyPaymentMethodShift}:    decimal.NewFromFloat(0.85),
	{domain.StrategyPriceAdjustment, domain.StrategyTermRenegotiation}:     decimal.NewFromFloat(0.95),
	{domain.StrategyTermRenegotiation, domain.StrategyReceivablesAdvance}:  decimal.NewFromFloat(0.8),
	{domain.StrategyReceivablesAdvance, domain.StrategyPaymentMethodShift}: decimal.NewFromFloat(0.75),
	{domain.StrategyReceivablesAdvance, domain.StrategyWorkingCapitalLoan}: decimal.NewFromFloat(0.85),
	{domain.StrategyWorkingCapitalLoan, domain.StrategyPaymentMethodShift}: decimal.NewFromFloat(1.0),
	{domain.StrategyWorkingCapitalLoan, domain.StrategyProductMixShift}:    decimal.NewFromFloat(1.0),
}

// InteractionFactor returns the pairwise interaction factor for two
// distinct strategies, defaulting to 0.9 for pairs without an explicit
// entry.
func InteractionFactor(a, b domain.Strategy) decimal.Decimal {
	if a == b {
		return decimal.NewFromInt(1)
	}
	if f, ok := interactionMatrix[strategyPair{a, b}]; ok {
		return f
	}
	if f, ok := interactionMatrix[strategyPair{b, a}]; ok {
		return f
	}
	return defaultInteraction
}
