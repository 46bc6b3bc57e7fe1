package optimizer

import (
	"errors"
	"reflect"
	"testing"

	"github.com/brfiscal/spedsim/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord() domain.FlatRecord {
	return domain.FlatRecord{
		CompanyName:    "ACME",
		AnnualRevenue:  decimal.NewFromInt(1200000),
		Margin:         decimal.NewFromFloat(0.3),
		CashSaleShare:  decimal.NewFromFloat(0.4),
		TermSaleShare:  decimal.NewFromFloat(0.6),
		ReceivableDays: decimal.NewFromInt(45),
		PayableDays:    decimal.NewFromInt(30),
	}
}

func testBaseline() domain.BaselineImpact {
	return domain.BaselineImpact{
		Year:                     2029,
		WorkingCapitalDifference: decimal.NewFromInt(-100000),
	}
}

func loanOnlyConfig() domain.StrategyConfig {
	return domain.StrategyConfig{
		WorkingCapitalLoanActive: true,
		LoanGapCoverage:          decimal.NewFromFloat(0.8),
		LoanMonthlyInterest:      decimal.NewFromFloat(0.02),
		LoanTermMonths:           decimal.NewFromInt(12),
	}
}

func TestNoStrategySelected(t *testing.T) {
	_, err := OptimalCombination(testRecord(), domain.StrategyConfig{}, testBaseline())
	if !errors.Is(err, ErrNoStrategySelected) {
		t.Fatalf("Expected ErrNoStrategySelected, got %v", err)
	}
}

func TestNestedRecordFailsFast(t *testing.T) {
	raw := map[string]any{"empresa": map[string]any{"nome": "ACME"}}
	cfg := map[string]any{"capitalGiroAtivar": true}

	_, err := OptimalCombinationRaw(raw, cfg, testBaseline())
	require.Error(t, err)

	var structural *domain.StructuralError
	assert.True(t, errors.As(err, &structural), "expected a structural error, got %v", err)

	var opErr *OptimizerError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, "decode_record", opErr.Operation)
}

func TestNestedStrategyConfigFailsFast(t *testing.T) {
	raw := map[string]any{"faturamento": 1200000.0}
	cfg := map[string]any{"estrategias": map[string]any{"capitalGiroAtivar": true}}

	_, err := OptimalCombinationRaw(raw, cfg, testBaseline())
	var structural *domain.StructuralError
	require.True(t, errors.As(err, &structural))
}

func TestSingletonUsesRawEffectiveness(t *testing.T) {
	result, err := OptimalCombination(testRecord(), loanOnlyConfig(), testBaseline())
	require.NoError(t, err)

	require.Len(t, result.Strategies, 1)
	require.Len(t, result.Ranking, 1)

	single := result.Strategies[0]
	combo := result.Ranking[0]

	// 80% gap coverage: loan of 80000 against a 100000 gap.
	assert.True(t, single.EffectivenessPercent.Equal(decimal.NewFromInt(80)),
		"effectiveness: %s", single.EffectivenessPercent)
	// Interaction factor for a singleton is 1.0: totals equal the raw figures.
	assert.True(t, combo.EffectivenessTotal.Equal(single.EffectivenessPercent))
	assert.True(t, combo.CostTotal.Equal(single.Cost))
	// Cost: 80000 * 2% * 12 months.
	assert.True(t, combo.CostTotal.Equal(decimal.NewFromInt(19200)), "cost: %s", combo.CostTotal)

	require.NotNil(t, result.Best)
	assert.True(t, result.Best.CostBenefitRatio.Equal(decimal.NewFromInt(240)))
}

func TestPairDiscountNeverExceedsSum(t *testing.T) {
	cfg := loanOnlyConfig()
	cfg.PriceAdjustmentActive = true
	cfg.PriceIncreasePercent = decimal.NewFromFloat(0.05)
	cfg.PriceElasticity = decimal.NewFromFloat(0.3)

	result, err := OptimalCombination(testRecord(), cfg, testBaseline())
	require.NoError(t, err)
	require.Len(t, result.Ranking, 3)

	var price, loan StrategyResult
	for _, s := range result.Strategies {
		switch s.Strategy {
		case domain.StrategyPriceAdjustment:
			price = s
		case domain.StrategyWorkingCapitalLoan:
			loan = s
		}
	}

	for _, combo := range result.Ranking {
		if len(combo.Strategies) != 2 {
			continue
		}
		sum := price.EffectivenessPercent.Add(loan.EffectivenessPercent)
		assert.True(t, combo.EffectivenessTotal.LessThanOrEqual(sum),
			"discounted total %s must not exceed raw sum %s", combo.EffectivenessTotal, sum)
		assert.True(t, combo.EffectivenessTotal.LessThanOrEqual(decimal.NewFromInt(100)))
	}
}

func TestEffectivenessCappedAt100(t *testing.T) {
	cfg := loanOnlyConfig()
	cfg.LoanGapCoverage = decimal.NewFromInt(1) // full gap
	cfg.PriceAdjustmentActive = true
	cfg.PriceIncreasePercent = decimal.NewFromFloat(0.10)
	cfg.PriceElasticity = decimal.Zero

	result, err := OptimalCombination(testRecord(), cfg, testBaseline())
	require.NoError(t, err)

	for _, combo := range result.Ranking {
		assert.True(t, combo.EffectivenessTotal.LessThanOrEqual(decimal.NewFromInt(100)),
			"combination %v exceeds the cap: %s", combo.Strategies, combo.EffectivenessTotal)
	}
}

func TestPowerSetSize(t *testing.T) {
	cfg := domain.StrategyConfig{
		PriceAdjustmentActive:    true,
		TermRenegotiationActive:  true,
		ReceivablesAdvanceActive: true,
		WorkingCapitalLoanActive: true,
		ProductMixShiftActive:    true,
		PaymentMethodShiftActive: true,
		PriceIncreasePercent:     decimal.NewFromFloat(0.05),
		PriceElasticity:          decimal.NewFromFloat(0.3),
		ExtraPaymentDays:         decimal.NewFromInt(15),
		SupplierCompensation:     decimal.NewFromFloat(0.01),
		AnticipationShare:        decimal.NewFromFloat(0.5),
		AnticipationMonthlyFee:   decimal.NewFromFloat(0.025),
		LoanGapCoverage:          decimal.NewFromFloat(0.8),
		LoanMonthlyInterest:      decimal.NewFromFloat(0.02),
		LoanTermMonths:           decimal.NewFromInt(12),
		MixShiftShare:            decimal.NewFromFloat(0.2),
		MixMarginGain:            decimal.NewFromFloat(0.1),
		MixTransitionCost:        decimal.NewFromFloat(0.01),
		PaymentShiftShare:        decimal.NewFromFloat(0.3),
		CashIncentive:            decimal.NewFromFloat(0.02),
	}

	result, err := OptimalCombination(testRecord(), cfg, testBaseline())
	require.NoError(t, err)
	assert.Len(t, result.Ranking, 63, "6 active strategies enumerate 2^6-1 subsets")
	require.NotNil(t, result.Best)

	// Ranking is sorted ascending by ratio with unbounded entries last.
	for i := 1; i < len(result.Ranking); i++ {
		prev, cur := result.Ranking[i-1], result.Ranking[i]
		if prev.Unbounded {
			assert.True(t, cur.Unbounded, "bounded entry after unbounded one")
			continue
		}
		if !cur.Unbounded {
			assert.True(t, prev.CostBenefitRatio.LessThanOrEqual(cur.CostBenefitRatio))
		}
	}
}

func TestDeterminism(t *testing.T) {
	cfg := loanOnlyConfig()
	cfg.ProductMixShiftActive = true
	cfg.MixShiftShare = decimal.NewFromFloat(0.2)
	cfg.MixMarginGain = decimal.NewFromFloat(0.1)
	cfg.MixTransitionCost = decimal.NewFromFloat(0.01)

	a, err := OptimalCombination(testRecord(), cfg, testBaseline())
	require.NoError(t, err)
	b, err := OptimalCombination(testRecord(), cfg, testBaseline())
	require.NoError(t, err)

	assert.True(t, reflect.DeepEqual(a.Best.Strategies, b.Best.Strategies))
	assert.True(t, reflect.DeepEqual(a.Ranking, b.Ranking), "full ranking must be reproducible")
}

func TestZeroGapYieldsNoWinner(t *testing.T) {
	baseline := domain.BaselineImpact{WorkingCapitalDifference: decimal.NewFromInt(50000)}
	result, err := OptimalCombination(testRecord(), loanOnlyConfig(), baseline)
	require.NoError(t, err)

	assert.Nil(t, result.Best, "nothing to mitigate: no finite ratio exists")
	require.Len(t, result.Ranking, 1)
	assert.True(t, result.Ranking[0].Unbounded)
}

func TestPercentScaleNormalization(t *testing.T) {
	cfg := loanOnlyConfig()
	cfg.LoanGapCoverage = decimal.NewFromInt(80) // 0-100 scale input
	result, err := OptimalCombination(testRecord(), cfg, testBaseline())
	require.NoError(t, err)
	assert.True(t, result.Strategies[0].EffectivenessPercent.Equal(decimal.NewFromInt(80)),
		"80 on the 0-100 scale must behave like 0.8")
}

func TestShareRebalancing(t *testing.T) {
	flat := testRecord()
	flat.CashSaleShare = decimal.NewFromFloat(0.5)
	flat.TermSaleShare = decimal.NewFromFloat(0.3) // drift > 0.001

	cfg := domain.StrategyConfig{
		PaymentMethodShiftActive: true,
		PaymentShiftShare:        decimal.NewFromFloat(0.5),
		CashIncentive:            decimal.NewFromFloat(0.02),
	}

	result, err := OptimalCombination(flat, cfg, testBaseline())
	require.NoError(t, err)

	// Rebalanced term share is 0.3/0.8 = 0.375; migrated volume is
	// 1200000*0.375*0.5 = 225000; freed capital 225000*45/360 = 28125.
	assert.True(t, result.Strategies[0].EffectivenessPercent.Equal(decimal.NewFromFloat(28.125)),
		"effectiveness: %s", result.Strategies[0].EffectivenessPercent)
}

func TestInteractionFactorLookup(t *testing.T) {
	cases := []struct {
		a, b domain.Strategy
		want decimal.Decimal
	}{
		{domain.StrategyPriceAdjustment, domain.StrategyWorkingCapitalLoan, decimal.NewFromFloat(1.0)},
		{domain.StrategyWorkingCapitalLoan, domain.StrategyPriceAdjustment, decimal.NewFromFloat(1.0)},
		{domain.StrategyPriceAdjustment, domain.StrategyProductMixShift, decimal.NewFromFloat(0.7)},
		{domain.StrategyTermRenegotiation, domain.StrategyProductMixShift, decimal.NewFromFloat(0.9)},
	}
	for _, c := range cases {
		if got := InteractionFactor(c.a, c.b); !got.Equal(c.want) {
			t.Errorf("InteractionFactor(%s, %s) = %s, want %s", c.a, c.b, got, c.want)
		}
	}
}
