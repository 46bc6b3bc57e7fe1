package extract

import (
	"github.com/brfiscal/spedsim/internal/validation"
	"github.com/shopspring/decimal"
)

// Consolidate merges per-file extractions into the nested shape the
// validator scores. Later datasets fill gaps left by earlier ones;
// figures for the same tax are not summed, the first file carrying a
// tax wins.
func Consolidate(datasets ...*ExtractedFiscalData) *validation.NestedFiscalData {
	nested := &validation.NestedFiscalData{
		Credits: make(map[string]decimal.Decimal),
		Debits:  make(map[string]decimal.Decimal),
		Rates:   make(map[string]decimal.Decimal),
		Regimes: make(map[string]string),
		Records: make(map[string][]validation.RecordSample),
		Metadata: &validation.Metadata{
			Source: "sped",
		},
	}

	revenue := decimal.Zero
	for _, data := range datasets {
		if data == nil {
			continue
		}

		if nested.Company.Name == "" {
			nested.Company.Name = data.Company.Name
		}
		if nested.Company.CNPJ == "" {
			nested.Company.CNPJ = data.Company.CNPJ
		}
		revenue = revenue.Add(data.OutboundTotal())

		mergeTax(nested, "icms", data.ICMS)
		mergeTax(nested, "ipi", data.IPI)
		mergeTax(nested, "pis", data.PIS)
		mergeTax(nested, "cofins", data.COFINS)

		mergeBrackets(nested, "pis", data.PISBrackets, data.Period)
		mergeBrackets(nested, "cofins", data.COFINSBrackets, data.Period)
		mergeInvoiceSamples(nested, data)

		if data.Regime != RegimeUnknown && data.Regime != "" {
			for _, tax := range []string{"pis", "cofins"} {
				if _, ok := nested.Regimes[tax]; !ok {
					nested.Regimes[tax] = string(data.Regime)
				}
			}
			if nested.Company.Regime == "" {
				nested.Company.Regime = string(data.Regime)
			}
		}

		for _, inv := range data.Invoices {
			nested.Documents = append(nested.Documents, validation.DocumentEntry{
				Outbound: inv.Outbound,
				Value:    inv.Total,
			})
		}
	}
	nested.Company.Revenue = revenue

	return nested
}

func mergeTax(nested *validation.NestedFiscalData, tax string, summary *TaxSummary) {
	if summary == nil {
		return
	}
	if _, ok := nested.Debits[tax]; !ok {
		nested.Debits[tax] = summary.TotalDebits
	}
	if _, ok := nested.Credits[tax]; !ok {
		nested.Credits[tax] = summary.TotalCredits
	}
}

func mergeBrackets(nested *validation.NestedFiscalData, tax string, brackets []RateBracket, period Period) {
	if len(brackets) == 0 {
		return
	}
	first := brackets[0]
	if _, ok := nested.Rates[tax]; !ok {
		nested.Rates[tax] = first.Rate
	}
	if len(nested.Records[tax]) == 0 {
		nested.Records[tax] = append(nested.Records[tax], validation.RecordSample{
			"valor":    nonZero(first.Assessed),
			"base":     nonZero(first.Base),
			"aliquota": nonZero(first.Rate),
			"codigo":   first.ContributionCode,
			"periodo":  period.Start,
		})
	}
}

// mergeInvoiceSamples derives ICMS and IPI record samples from the
// first invoice carrying each tax.
func mergeInvoiceSamples(nested *validation.NestedFiscalData, data *ExtractedFiscalData) {
	for _, inv := range data.Invoices {
		if data.ICMS != nil && len(nested.Records["icms"]) == 0 && inv.ICMS.Sign() != 0 {
			nested.Records["icms"] = append(nested.Records["icms"], validation.RecordSample{
				"valor":    nonZero(inv.ICMS),
				"base":     nonZero(inv.ICMSBase),
				"aliquota": deriveRate(inv.ICMS, inv.ICMSBase),
				"periodo":  data.Period.Start,
				"origem":   inv.Number,
			})
		}
		if data.IPI != nil && len(nested.Records["ipi"]) == 0 && inv.IPI.Sign() != 0 {
			nested.Records["ipi"] = append(nested.Records["ipi"], validation.RecordSample{
				"valor":   nonZero(inv.IPI),
				"base":    nonZero(inv.Total),
				"periodo": data.Period.Start,
				"origem":  inv.Number,
			})
		}
	}
}

func nonZero(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

func deriveRate(tax, base decimal.Decimal) string {
	if base.IsZero() || tax.IsZero() {
		return ""
	}
	return tax.Div(base).String()
}
