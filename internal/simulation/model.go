// Package simulation projects the working-capital impact of the
// Brazilian IVA-dual tax transition over the phase-in years and drives
// mitigation runs against it.
package simulation

import (
	"github.com/brfiscal/spedsim/internal/domain"
	"github.com/shopspring/decimal"
)

// Logger is the minimal logging surface used by simulation engines.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// SectorParams tunes the impact model per economic sector.
type SectorParams struct {
	Name string `json:"nome" yaml:"nome"`

	// DualRate is the combined CBS+IBS rate under the dual system.
	DualRate decimal.Decimal `json:"aliquotaDual" yaml:"aliquota_dual"`

	// CurrentRate is the combined current-system rate. Zero means
	// derive it from the flat record's tax figures.
	CurrentRate decimal.Decimal `json:"aliquotaAtual" yaml:"aliquota_atual"`
}

// DefaultSectorParams returns the generic-sector calibration: the
// reference 26.5% dual rate with the current rate derived from the
// company's own figures.
func DefaultSectorParams() *SectorParams {
	return &SectorParams{
		Name:     "geral",
		DualRate: decimal.NewFromFloat(0.265),
	}
}

// ImpactModel computes the baseline working-capital impact for one
// simulation year. The mitigation optimizer consumes its output as a
// black box.
type ImpactModel interface {
	CalculateWorkingCapitalImpact(flat domain.FlatRecord, year int, sector *SectorParams) domain.BaselineImpact
}

// TransitionPhase returns the fraction of the dual system in force for
// a calendar year: the 2026 pilot through full adoption in 2033.
func TransitionPhase(year int) decimal.Decimal {
	switch {
	case year < 2026:
		return decimal.Zero
	case year == 2026:
		return decimal.NewFromFloat(0.01)
	case year <= 2028:
		return decimal.NewFromFloat(0.10)
	case year == 2029:
		return decimal.NewFromFloat(0.20)
	case year == 2030:
		return decimal.NewFromFloat(0.40)
	case year == 2031:
		return decimal.NewFromFloat(0.60)
	case year == 2032:
		return decimal.NewFromFloat(0.80)
	default:
		return decimal.NewFromInt(1)
	}
}

// DualSystemModel is the reference ImpactModel: it blends the current
// and dual tax loads by the year's transition phase and charges the
// receivables cycle for the split-payment timing change.
type DualSystemModel struct {
	logger Logger
}

// NewDualSystemModel creates the reference impact model.
func NewDualSystemModel() *DualSystemModel {
	return &DualSystemModel{}
}

// SetLogger enables debug logging on the model.
func (m *DualSystemModel) SetLogger(l Logger) {
	m.logger = l
}

var daysPerYear = decimal.NewFromInt(360)

// CalculateWorkingCapitalImpact computes the baseline impact for one
// year. With split payment the tax on term sales is collected at
// transaction time rather than on receipt, so the extra load is scaled
// by the share of revenue parked in receivables.
func (m *DualSystemModel) CalculateWorkingCapitalImpact(flat domain.FlatRecord, year int, sector *SectorParams) domain.BaselineImpact {
	if sector == nil {
		sector = DefaultSectorParams()
	}

	currentRate := sector.CurrentRate
	if currentRate.IsZero() && flat.AnnualRevenue.Sign() > 0 {
		currentRate = flat.TaxDebits.Sub(flat.TaxCredits).Div(flat.AnnualRevenue)
		if currentRate.Sign() < 0 {
			currentRate = decimal.Zero
		}
	}

	phase := TransitionPhase(year)
	effectiveRate := currentRate.Add(sector.DualRate.Sub(currentRate).Mul(phase))

	currentTax := flat.AnnualRevenue.Mul(currentRate)
	dualTax := flat.AnnualRevenue.Mul(effectiveRate)

	// Receivables cycle factor: 1 + termShare * receivableDays/360.
	cycleFactor := decimal.NewFromInt(1).
		Add(flat.TermSaleShare.Mul(flat.ReceivableDays).Div(daysPerYear))

	difference := currentTax.Sub(dualTax).Mul(cycleFactor)

	percent := decimal.Zero
	if flat.AnnualRevenue.Sign() > 0 {
		percent = difference.Div(flat.AnnualRevenue).Mul(decimal.NewFromInt(100))
	}

	if m.logger != nil {
		m.logger.Debugf("impact year=%d phase=%s current=%s dual=%s diff=%s",
			year, phase, currentTax.StringFixed(2), dualTax.StringFixed(2), difference.StringFixed(2))
	}

	return domain.BaselineImpact{
		Year:                     year,
		WorkingCapitalDifference: difference,
		PercentImpact:            percent,
		CurrentSystemTax:         currentTax,
		DualSystemTax:            dualTax,
	}
}

// Project runs the impact model over consecutive years starting at
// startYear.
func Project(model ImpactModel, flat domain.FlatRecord, startYear, years int, sector *SectorParams) []domain.BaselineImpact {
	if years <= 0 {
		return nil
	}
	out := make([]domain.BaselineImpact, 0, years)
	for y := startYear; y < startYear+years; y++ {
		out = append(out, model.CalculateWorkingCapitalImpact(flat, y, sector))
	}
	return out
}
