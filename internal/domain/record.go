// Package domain holds the simulation input types shared by the
// impact model, the mitigation optimizer and the I/O layers.
package domain

import "github.com/shopspring/decimal"

// FlatRecord is the canonical single-level simulation input. It is the
// only shape the optimizer accepts; nested payloads must be flattened
// (or rejected) at the system boundary by ParseFlatRecord.
type FlatRecord struct {
	CompanyName string `json:"nome" yaml:"nome"`
	CNPJ        string `json:"cnpj" yaml:"cnpj"`
	State       string `json:"uf" yaml:"uf"`
	Sector      string `json:"setor" yaml:"setor"`
	Regime      string `json:"regime" yaml:"regime"`

	// Annual gross revenue and operating margin.
	AnnualRevenue decimal.Decimal `json:"faturamento" yaml:"faturamento"`
	Margin        decimal.Decimal `json:"margem" yaml:"margem"`

	// Sales split between cash and term, as fractions of revenue.
	// Complementary: rebalanced by the optimizer when they drift.
	CashSaleShare decimal.Decimal `json:"percentVista" yaml:"percent_vista"`
	TermSaleShare decimal.Decimal `json:"percentPrazo" yaml:"percent_prazo"`

	// Average receipt and payment cycles, in days.
	ReceivableDays decimal.Decimal `json:"prazoRecebimento" yaml:"prazo_recebimento"`
	PayableDays    decimal.Decimal `json:"prazoPagamento" yaml:"prazo_pagamento"`

	// Aggregate period tax figures from the SPED extraction.
	TaxDebits  decimal.Decimal `json:"debitos" yaml:"debitos"`
	TaxCredits decimal.Decimal `json:"creditos" yaml:"creditos"`
}

// MonthlyRevenue is the annual revenue spread evenly over 12 months.
func (f *FlatRecord) MonthlyRevenue() decimal.Decimal {
	return f.AnnualRevenue.Div(decimal.NewFromInt(12))
}

// BaselineImpact is the output of the working-capital impact model for
// one simulation year, consumed by the optimizer as its baseline.
type BaselineImpact struct {
	Year int `json:"ano"`

	// Difference in working capital need between the dual IVA system
	// and the current system. Negative means additional capital is
	// required during the transition.
	WorkingCapitalDifference decimal.Decimal `json:"diferencaCapitalGiro"`

	// Impact as a percentage of annual revenue.
	PercentImpact decimal.Decimal `json:"percentualImpacto"`

	// Tax loads under both systems, for inspection.
	CurrentSystemTax decimal.Decimal `json:"impostoAtual"`
	DualSystemTax    decimal.Decimal `json:"impostoDual"`
}

// CapitalGap is the magnitude of the negative working-capital impact.
// A positive difference (transition frees capital) yields zero.
func (b BaselineImpact) CapitalGap() decimal.Decimal {
	if b.WorkingCapitalDifference.Sign() < 0 {
		return b.WorkingCapitalDifference.Neg()
	}
	return decimal.Zero
}
