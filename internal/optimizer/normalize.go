package optimizer

import (
	"github.com/brfiscal/spedsim/internal/domain"
	"github.com/shopspring/decimal"
)

// shareTolerance is the maximum drift allowed between complementary
// percentage pairs before they are rebalanced to sum to exactly 1.
var shareTolerance = decimal.NewFromFloat(0.001)

var one = decimal.NewFromInt(1)
var hundred = decimal.NewFromInt(100)

// asFraction normalizes a percentage-like value: inputs greater than 1
// are assumed to be on a 0-100 scale and divided by 100, then the
// result is clamped to [0, 1]. Hand-edited inputs mix both scales
// freely.
func asFraction(d decimal.Decimal) decimal.Decimal {
	if d.GreaterThan(one) {
		d = d.Div(hundred)
	}
	if d.Sign() < 0 {
		return decimal.Zero
	}
	if d.GreaterThan(one) {
		return one
	}
	return d
}

// normalizeRecord returns a copy of the flat record with percentage
// fields on the 0-1 scale and the cash/term sale shares rebalanced to
// sum to exactly 1 when they drift beyond the tolerance.
func normalizeRecord(f domain.FlatRecord) domain.FlatRecord {
	f.Margin = asFraction(f.Margin)
	f.CashSaleShare = asFraction(f.CashSaleShare)
	f.TermSaleShare = asFraction(f.TermSaleShare)

	sum := f.CashSaleShare.Add(f.TermSaleShare)
	if sum.Sub(one).Abs().GreaterThan(shareTolerance) {
		if sum.IsZero() {
			// Nothing known about the split; assume all cash.
			f.CashSaleShare = one
			f.TermSaleShare = decimal.Zero
		} else {
			f.CashSaleShare = f.CashSaleShare.Div(sum)
			f.TermSaleShare = one.Sub(f.CashSaleShare)
		}
	}
	return f
}

// normalizeConfig returns a copy of the strategy config with every
// percentage-like parameter on the 0-1 scale. Day and month counts are
// left untouched.
func normalizeConfig(c domain.StrategyConfig) domain.StrategyConfig {
	c.PriceIncreasePercent = asFraction(c.PriceIncreasePercent)
	c.PriceElasticity = asFraction(c.PriceElasticity)
	c.SupplierCompensation = asFraction(c.SupplierCompensation)
	c.AnticipationShare = asFraction(c.AnticipationShare)
	c.AnticipationMonthlyFee = asFraction(c.AnticipationMonthlyFee)
	c.LoanGapCoverage = asFraction(c.LoanGapCoverage)
	c.LoanMonthlyInterest = asFraction(c.LoanMonthlyInterest)
	c.MixShiftShare = asFraction(c.MixShiftShare)
	c.MixMarginGain = asFraction(c.MixMarginGain)
	c.MixTransitionCost = asFraction(c.MixTransitionCost)
	c.PaymentShiftShare = asFraction(c.PaymentShiftShare)
	c.CashIncentive = asFraction(c.CashIncentive)
	return c
}
