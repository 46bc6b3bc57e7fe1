package optimizer

import (
	"github.com/brfiscal/spedsim/internal/domain"
	"github.com/shopspring/decimal"
)

var daysPerYear = decimal.NewFromInt(360)
var daysPerMonth = decimal.NewFromInt(30)

// evaluateStrategy computes one strategy's standalone mitigation and
// cost against the baseline capital gap. Inputs are already
// normalized. Mitigation below zero (a self-defeating parameter set)
// floors at zero rather than penalizing the combination search.
func evaluateStrategy(s domain.Strategy, flat domain.FlatRecord, cfg domain.StrategyConfig, gap decimal.Decimal) StrategyResult {
	var mitigation, cost decimal.Decimal

	switch s {
	case domain.StrategyPriceAdjustment:
		// Extra revenue from the price increase, net of the demand lost
		// to price elasticity. The demand loss is the strategy's cost.
		extra := flat.AnnualRevenue.Mul(cfg.PriceIncreasePercent)
		lost := extra.Mul(cfg.PriceElasticity)
		mitigation = extra.Sub(lost)
		cost = lost

	case domain.StrategyTermRenegotiation:
		// Extending supplier terms frees the daily purchase volume for
		// each extra day, against a compensation discount on purchases.
		purchases := flat.AnnualRevenue.Mul(decimal.NewFromInt(1).Sub(flat.Margin))
		mitigation = purchases.Div(daysPerYear).Mul(cfg.ExtraPaymentDays)
		cost = purchases.Mul(cfg.SupplierCompensation)

	case domain.StrategyReceivablesAdvance:
		// Discounting a share of the open receivables book for cash.
		receivables := flat.AnnualRevenue.Mul(flat.TermSaleShare).Mul(flat.ReceivableDays).Div(daysPerYear)
		anticipated := receivables.Mul(cfg.AnticipationShare)
		months := flat.ReceivableDays.Div(daysPerMonth)
		mitigation = anticipated
		cost = anticipated.Mul(cfg.AnticipationMonthlyFee).Mul(months)

	case domain.StrategyWorkingCapitalLoan:
		// A loan covering part of the gap; cost is simple interest over
		// the term.
		loan := gap.Mul(cfg.LoanGapCoverage)
		mitigation = loan
		cost = loan.Mul(cfg.LoanMonthlyInterest).Mul(cfg.LoanTermMonths)

	case domain.StrategyProductMixShift:
		// Shifting revenue toward higher-margin items; the transition
		// cost covers repricing and catalog work on the shifted volume.
		shifted := flat.AnnualRevenue.Mul(cfg.MixShiftShare)
		mitigation = shifted.Mul(cfg.MixMarginGain)
		cost = shifted.Mul(cfg.MixTransitionCost)

	case domain.StrategyPaymentMethodShift:
		// Migrating term sales to cash shrinks the receivables book by
		// the receipt cycle's worth of the migrated volume.
		migrated := flat.AnnualRevenue.Mul(flat.TermSaleShare).Mul(cfg.PaymentShiftShare)
		mitigation = migrated.Mul(flat.ReceivableDays).Div(daysPerYear)
		cost = migrated.Mul(cfg.CashIncentive)
	}

	if mitigation.Sign() < 0 {
		mitigation = decimal.Zero
	}

	result := StrategyResult{Strategy: s, Cost: cost}
	result.EffectivenessPercent = effectivenessPercent(mitigation, gap)
	if result.EffectivenessPercent.IsZero() {
		result.Unbounded = true
	} else {
		result.CostBenefitRatio = cost.Div(result.EffectivenessPercent)
	}
	return result
}

// effectivenessPercent expresses a mitigation amount as a percentage
// of the capital gap, capped at 100. A zero gap means there is nothing
// to mitigate: every strategy scores zero.
func effectivenessPercent(mitigation, gap decimal.Decimal) decimal.Decimal {
	if gap.IsZero() || mitigation.Sign() <= 0 {
		return decimal.Zero
	}
	pct := mitigation.Div(gap).Mul(hundred)
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct
}
