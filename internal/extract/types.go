// Package extract pulls typed fiscal figures out of indexed SPED
// documents using per-record-type positional field offsets.
package extract

import (
	"github.com/brfiscal/spedsim/internal/sped"
	"github.com/shopspring/decimal"
)

// TaxRegime is the PIS/COFINS assessment regime read from record 0110.
type TaxRegime string

const (
	RegimeUnknown       TaxRegime = "unknown"
	RegimeNonCumulative TaxRegime = "nao_cumulativo"
	RegimeCumulative    TaxRegime = "cumulativo"
	RegimeMixed         TaxRegime = "misto"
)

// Company identifies the reporting entity, from the file header.
type Company struct {
	Name  string `json:"nome"`
	CNPJ  string `json:"cnpj"`
	State string `json:"uf"`
}

// Period is the bookkeeping period covered by the file, ISO dates.
type Period struct {
	Start string `json:"inicio"`
	End   string `json:"fim"`
}

// TaxSummary holds the period totals of one assessed tax. For ICMS the
// figures come from E110, for IPI from E520, for PIS/COFINS from
// M200/M600.
type TaxSummary struct {
	TotalDebits  decimal.Decimal `json:"debitos"`
	TotalCredits decimal.Decimal `json:"creditos"`
	Balance      decimal.Decimal `json:"saldo"`
	AmountDue    decimal.Decimal `json:"aRecolher"`
}

// RateBracket is one per-rate assessment detail row (M210/M610).
type RateBracket struct {
	ContributionCode string          `json:"codigo"`
	GrossRevenue     decimal.Decimal `json:"receitaBruta"`
	Base             decimal.Decimal `json:"baseCalculo"`
	Rate             decimal.Decimal `json:"aliquota"`
	Assessed         decimal.Decimal `json:"contribuicaoApurada"`
}

// Invoice is one fiscal document (C100) with its monetary totals.
type Invoice struct {
	Outbound  bool            `json:"saida"`
	Number    string          `json:"numero"`
	IssueDate string          `json:"emissao"`
	Total     decimal.Decimal `json:"valorTotal"`
	ICMSBase  decimal.Decimal `json:"baseIcms"`
	ICMS      decimal.Decimal `json:"icms"`
	IPI       decimal.Decimal `json:"ipi"`
}

// ExtractedFiscalData is the normalized extraction result for one SPED
// file. Sub-objects for taxes the file does not carry stay nil;
// Regime is RegimeUnknown when no 0110 record exists. Produced once
// per file and owned by the caller.
type ExtractedFiscalData struct {
	Kind    sped.DocumentKind `json:"kind"`
	Company Company           `json:"empresa"`
	Period  Period            `json:"periodo"`

	// Fiscal (EFD ICMS/IPI) figures.
	ICMS *TaxSummary `json:"icms,omitempty"`
	IPI  *TaxSummary `json:"ipi,omitempty"`

	// Contributions (EFD Contribuições) figures.
	PIS            *TaxSummary   `json:"pis,omitempty"`
	COFINS         *TaxSummary   `json:"cofins,omitempty"`
	PISBrackets    []RateBracket `json:"faixasPis,omitempty"`
	COFINSBrackets []RateBracket `json:"faixasCofins,omitempty"`
	Regime         TaxRegime     `json:"regime"`

	Invoices []Invoice `json:"documentos"`
}

// OutboundTotal sums the totals of outbound invoices.
func (d *ExtractedFiscalData) OutboundTotal() decimal.Decimal {
	total := decimal.Zero
	for _, inv := range d.Invoices {
		if inv.Outbound {
			total = total.Add(inv.Total)
		}
	}
	return total
}

// InboundTotal sums the totals of inbound invoices.
func (d *ExtractedFiscalData) InboundTotal() decimal.Decimal {
	total := decimal.Zero
	for _, inv := range d.Invoices {
		if !inv.Outbound {
			total = total.Add(inv.Total)
		}
	}
	return total
}
