package simulation

import (
	"testing"

	"github.com/brfiscal/spedsim/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord() domain.FlatRecord {
	return domain.FlatRecord{
		CompanyName:    "Comercial Horizonte LTDA",
		CNPJ:           "12345678000190",
		AnnualRevenue:  decimal.NewFromInt(1200000),
		Margin:         decimal.NewFromFloat(0.3),
		CashSaleShare:  decimal.NewFromFloat(0.5),
		TermSaleShare:  decimal.NewFromFloat(0.5),
		ReceivableDays: decimal.NewFromInt(36),
		PayableDays:    decimal.NewFromInt(30),
		TaxDebits:      decimal.NewFromInt(240000),
		TaxCredits:     decimal.NewFromInt(120000),
	}
}

func TestTransitionPhase(t *testing.T) {
	cases := []struct {
		year int
		want string
	}{
		{2025, "0"},
		{2026, "0.01"},
		{2027, "0.1"},
		{2028, "0.1"},
		{2029, "0.2"},
		{2030, "0.4"},
		{2031, "0.6"},
		{2032, "0.8"},
		{2033, "1"},
		{2040, "1"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, TransitionPhase(c.year).String(), "year %d", c.year)
	}
}

func TestPilotYearImpact(t *testing.T) {
	model := NewDualSystemModel()
	impact := model.CalculateWorkingCapitalImpact(testRecord(), 2026, DefaultSectorParams())

	// Derived current rate is (240000-120000)/1200000 = 10%.
	// Effective 2026 rate: 0.1 + (0.265-0.1)*0.01 = 0.10165.
	assert.Equal(t, 2026, impact.Year)
	assert.True(t, impact.CurrentSystemTax.Equal(decimal.NewFromInt(120000)),
		"current tax = %s", impact.CurrentSystemTax)
	assert.True(t, impact.DualSystemTax.Equal(decimal.NewFromInt(121980)),
		"dual tax = %s", impact.DualSystemTax)

	// Cycle factor 1 + 0.5*36/360 = 1.05, difference = -1980 * 1.05.
	assert.True(t, impact.WorkingCapitalDifference.Equal(decimal.NewFromInt(-2079)),
		"difference = %s", impact.WorkingCapitalDifference)
	assert.True(t, impact.PercentImpact.Equal(decimal.NewFromFloat(-0.17325)),
		"percent = %s", impact.PercentImpact)
	assert.True(t, impact.CapitalGap().Equal(decimal.NewFromInt(2079)))
}

func TestFullAdoptionImpact(t *testing.T) {
	model := NewDualSystemModel()
	impact := model.CalculateWorkingCapitalImpact(testRecord(), 2033, DefaultSectorParams())

	assert.True(t, impact.DualSystemTax.Equal(decimal.NewFromInt(318000)),
		"dual tax = %s", impact.DualSystemTax)
	assert.True(t, impact.WorkingCapitalDifference.Equal(decimal.NewFromInt(-207900)),
		"difference = %s", impact.WorkingCapitalDifference)
}

func TestPreTransitionYearHasNoImpact(t *testing.T) {
	model := NewDualSystemModel()
	impact := model.CalculateWorkingCapitalImpact(testRecord(), 2025, DefaultSectorParams())

	assert.True(t, impact.WorkingCapitalDifference.IsZero())
	assert.True(t, impact.CapitalGap().IsZero())
}

func TestExplicitSectorRateOverridesDerived(t *testing.T) {
	model := NewDualSystemModel()
	sector := &SectorParams{
		Name:        "servicos",
		DualRate:    decimal.NewFromFloat(0.265),
		CurrentRate: decimal.NewFromFloat(0.08),
	}
	impact := model.CalculateWorkingCapitalImpact(testRecord(), 2026, sector)

	assert.True(t, impact.CurrentSystemTax.Equal(decimal.NewFromInt(96000)),
		"current tax = %s", impact.CurrentSystemTax)
}

func TestNilSectorFallsBackToDefault(t *testing.T) {
	model := NewDualSystemModel()
	withNil := model.CalculateWorkingCapitalImpact(testRecord(), 2030, nil)
	withDefault := model.CalculateWorkingCapitalImpact(testRecord(), 2030, DefaultSectorParams())

	assert.True(t, withNil.WorkingCapitalDifference.Equal(withDefault.WorkingCapitalDifference))
}

func TestZeroRevenueDoesNotDivide(t *testing.T) {
	model := NewDualSystemModel()
	flat := testRecord()
	flat.AnnualRevenue = decimal.Zero

	impact := model.CalculateWorkingCapitalImpact(flat, 2033, DefaultSectorParams())
	assert.True(t, impact.PercentImpact.IsZero())
	assert.True(t, impact.WorkingCapitalDifference.IsZero())
}

func TestProjectCoversRequestedYears(t *testing.T) {
	model := NewDualSystemModel()
	impacts := Project(model, testRecord(), 2026, 8, DefaultSectorParams())

	require.Len(t, impacts, 8)
	assert.Equal(t, 2026, impacts[0].Year)
	assert.Equal(t, 2033, impacts[7].Year)

	// Impact deepens as the phase advances.
	assert.True(t, impacts[7].CapitalGap().GreaterThan(impacts[0].CapitalGap()))

	assert.Nil(t, Project(model, testRecord(), 2026, 0, nil))
}
