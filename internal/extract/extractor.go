package extract

import (
	"github.com/brfiscal/spedsim/internal/sped"
)

// Extract reads the tax figures relevant to the document's kind.
// Singleton assessment records use first-match-wins within their block;
// item records (invoices, rate brackets) are mapped in full. All
// numeric parsing is lenient: a malformed figure becomes zero, a
// missing optional record becomes a nil sub-object or sentinel, and no
// error is ever returned for data-quality issues.
func Extract(doc *sped.Document, kind sped.DocumentKind) *ExtractedFiscalData {
	data := &ExtractedFiscalData{
		Kind: kind,
		Company: Company{
			Name:  doc.Header.LegalName,
			CNPJ:  doc.Header.CNPJ,
			State: doc.Header.State,
		},
		Period: Period{
			Start: doc.Header.PeriodStart,
			End:   doc.Header.PeriodEnd,
		},
		Regime: RegimeUnknown,
	}

	switch kind {
	case sped.KindFiscal:
		data.ICMS = extractICMS(doc)
		data.IPI = extractIPI(doc)
	case sped.KindContributions:
		data.PIS = extractConsolidation(doc, "M200")
		data.COFINS = extractConsolidation(doc, "M600")
		data.PISBrackets = extractRateBrackets(doc, "M210")
		data.COFINSBrackets = extractRateBrackets(doc, "M610")
		data.Regime = extractRegime(doc)
	}

	data.Invoices = extractInvoices(doc)
	return data
}

func extractICMS(doc *sped.Document) *TaxSummary {
	rec, ok := doc.FindFirst("E110")
	if !ok {
		return nil
	}
	return &TaxSummary{
		TotalDebits:  sped.ParseDecimal(rec.Field(e110TotalDebits)),
		TotalCredits: sped.ParseDecimal(rec.Field(e110TotalCredits)),
		Balance:      sped.ParseDecimal(rec.Field(e110Balance)),
		AmountDue:    sped.ParseDecimal(rec.Field(e110AmountDue)),
	}
}

func extractIPI(doc *sped.Document) *TaxSummary {
	rec, ok := doc.FindFirst("E520")
	if !ok {
		return nil
	}
	balance := sped.ParseDecimal(rec.Field(e520Balance))
	return &TaxSummary{
		TotalDebits:  sped.ParseDecimal(rec.Field(e520TotalDebits)),
		TotalCredits: sped.ParseDecimal(rec.Field(e520TotalCredits)),
		Balance:      balance,
		AmountDue:    balance,
	}
}

func extractConsolidation(doc *sped.Document, code string) *TaxSummary {
	rec, ok := doc.FindFirst(code)
	if !ok {
		return nil
	}
	debits := sped.ParseDecimal(rec.Field(mConsTotalAssessed))
	return &TaxSummary{
		TotalDebits:  debits,
		TotalCredits: sped.ParseDecimal(rec.Field(mConsCreditsUsed)),
		Balance:      debits.Sub(sped.ParseDecimal(rec.Field(mConsCreditsUsed))),
		AmountDue:    sped.ParseDecimal(rec.Field(mConsAmountDue)),
	}
}

func extractRateBrackets(doc *sped.Document, code string) []RateBracket {
	var brackets []RateBracket
	for _, rec := range doc.FindAll(code) {
		brackets = append(brackets, RateBracket{
			ContributionCode: rec.Field(mRateContributionCode),
			GrossRevenue:     sped.ParseDecimal(rec.Field(mRateGrossRevenue)),
			Base:             sped.ParseDecimal(rec.Field(mRateBase)),
			Rate:             sped.ParseDecimal(rec.Field(mRateRate)),
			Assessed:         sped.ParseDecimal(rec.Field(mRateAssessed)),
		})
	}
	return brackets
}

func extractRegime(doc *sped.Document) TaxRegime {
	rec, ok := doc.FindFirst("0110")
	if !ok {
		return RegimeUnknown
	}
	switch rec.Field(regimeCode) {
	case "1":
		return RegimeNonCumulative
	case "2":
		return RegimeCumulative
	case "3":
		return RegimeMixed
	default:
		return RegimeUnknown
	}
}

func extractInvoices(doc *sped.Document) []Invoice {
	var invoices []Invoice
	for _, rec := range doc.FindAll("C100") {
		invoices = append(invoices, Invoice{
			Outbound:  rec.Field(c100Direction) == "1",
			Number:    rec.Field(c100Number),
			IssueDate: sped.ProcessDate(rec.Field(c100IssueDate)),
			Total:     sped.ParseDecimal(rec.Field(c100Total)),
			ICMSBase:  sped.ParseDecimal(rec.Field(c100ICMSBase)),
			ICMS:      sped.ParseDecimal(rec.Field(c100ICMS)),
			IPI:       sped.ParseDecimal(rec.Field(c100IPI)),
		})
	}
	return invoices
}
