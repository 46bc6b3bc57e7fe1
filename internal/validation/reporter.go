package validation

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Scoring weights. Company sub-weights are raw points later scaled by
// the company share of the total score.
const (
	structuralSectionPoints = 5  // per present section, 4 sections
	structuralMaxPoints     = 20
	categoryPresencePoints  = 25 // >= 2 of credits/debits/rates/regimes
	documentValuePoints     = 20
	documentPartialPoints   = 10
	taxPairPoints           = 5 // per tax type with nonzero credit AND debit
	maxScore                = 100

	companyNamePoints    = 25
	companyCNPJPoints    = 25
	companyRevenuePoints = 30
	companyTypePoints    = 10
	companyRegimePoints  = 10
)

// companyScale is the company block's share of the total score.
var companyScale = decimal.NewFromFloat(0.3)

// Coverage thresholds for the record-level field check.
var (
	recordValidThreshold   = decimal.NewFromFloat(0.7)
	recordPartialThreshold = decimal.NewFromFloat(0.4)
)

// expectedRecordFields is the field set a well-formed sampled record is
// checked against, per tax type.
var expectedRecordFields = map[string][]string{
	"icms":   {"valor", "base", "aliquota", "periodo", "origem"},
	"ipi":    {"valor", "base", "aliquota", "periodo", "origem"},
	"pis":    {"valor", "base", "aliquota", "codigo", "periodo"},
	"cofins": {"valor", "base", "aliquota", "codigo", "periodo"},
}

var defaultRecordFields = []string{"valor", "base", "aliquota", "periodo"}

// Validate scores the nested fiscal data and produces a diagnostic
// report. It never panics through to the caller: any panic during
// scoring is converted into a terminal "error" status with the message
// recorded as a problem.
func Validate(data *NestedFiscalData) (report *Report) {
	report = &Report{
		ID:           uuid.NewString(),
		RecordChecks: make(map[string]RecordCheck),
	}

	defer func() {
		if r := recover(); r != nil {
			report.Status = StatusError
			report.Problems = append(report.Problems, fmt.Sprintf("validation aborted: %v", r))
		}
	}()

	if data == nil {
		report.Status = StatusError
		report.Problems = append(report.Problems, "no fiscal data to validate")
		return report
	}

	score := 0
	score += scoreStructure(data, report)
	score += scoreCompany(&data.Company, report)
	score += scoreCategories(data, report)
	score += scoreDocuments(data, report)
	score += scoreTaxPairs(data, report)

	if score > maxScore {
		score = maxScore
	}
	report.Score = score
	report.Status = statusFor(score)

	checkRecords(data, report)
	recommend(data, report)
	return report
}

func statusFor(score int) string {
	switch {
	case score >= 80:
		return StatusExcellent
	case score >= 60:
		return StatusGood
	case score >= 40:
		return StatusRegular
	default:
		return StatusInsufficient
	}
}

// scoreStructure awards up to 20 points for the presence of the four
// major sections.
func scoreStructure(data *NestedFiscalData, report *Report) int {
	points := 0
	if data.Company != (CompanyInfo{}) {
		points += structuralSectionPoints
	} else {
		report.Problems = append(report.Problems, "company section is missing")
	}
	if len(data.Credits) > 0 || len(data.Debits) > 0 {
		points += structuralSectionPoints
	} else {
		report.Problems = append(report.Problems, "no tax credit or debit figures present")
	}
	if len(data.Documents) > 0 {
		points += structuralSectionPoints
	} else {
		report.Alerts = append(report.Alerts, "document list is empty")
	}
	if data.Metadata != nil {
		points += structuralSectionPoints
	} else {
		report.Alerts = append(report.Alerts, "metadata section is missing")
	}
	if points == structuralMaxPoints {
		report.Successes = append(report.Successes, "all structural sections present")
	}
	return points
}

// scoreCompany awards the weighted company sub-scores (name 25, tax id
// 25, revenue 30, type 10, regime 10) scaled to the company share of
// the total.
func scoreCompany(c *CompanyInfo, report *Report) int {
	raw := 0
	if c.Name != "" {
		raw += companyNamePoints
	} else {
		report.Problems = append(report.Problems, "company name is missing")
	}
	if c.CNPJ != "" {
		raw += companyCNPJPoints
	} else {
		report.Problems = append(report.Problems, "company tax id (CNPJ) is missing")
	}
	if c.Revenue.Sign() > 0 {
		raw += companyRevenuePoints
	} else {
		report.Alerts = append(report.Alerts, "company revenue is absent or zero")
	}
	if c.Type != "" {
		raw += companyTypePoints
	}
	if c.Regime != "" {
		raw += companyRegimePoints
	}
	if raw >= companyNamePoints+companyCNPJPoints {
		report.Successes = append(report.Successes, "company identification present")
	}
	scaled := decimal.NewFromInt(int64(raw)).Mul(companyScale).Round(0)
	return int(scaled.IntPart())
}

// scoreCategories awards 25 points when at least two of the four tax
// data categories are populated.
func scoreCategories(data *NestedFiscalData, report *Report) int {
	present := 0
	if len(data.Credits) > 0 {
		present++
	}
	if len(data.Debits) > 0 {
		present++
	}
	if len(data.Rates) > 0 {
		present++
	}
	if len(data.Regimes) > 0 {
		present++
	}
	if present >= 2 {
		report.Successes = append(report.Successes, fmt.Sprintf("%d of 4 tax data categories populated", present))
		return categoryPresencePoints
	}
	report.Alerts = append(report.Alerts, "fewer than 2 tax data categories populated")
	return 0
}

// scoreDocuments computes the document statistics and awards the
// document-value bonus: full points when every document carries a
// value, partial when only some do.
func scoreDocuments(data *NestedFiscalData, report *Report) int {
	stats := DocumentStats{Total: len(data.Documents)}
	for _, doc := range data.Documents {
		if doc.Outbound {
			stats.Outbound++
		} else {
			stats.Inbound++
		}
		if doc.Value.Sign() > 0 {
			stats.WithValue++
		} else {
			stats.WithoutValue++
		}
	}
	report.DocumentStats = stats

	switch {
	case stats.Total == 0:
		return 0
	case stats.WithoutValue == 0:
		report.Successes = append(report.Successes, fmt.Sprintf("all %d documents carry monetary values", stats.Total))
		return documentValuePoints
	case stats.WithValue > 0:
		report.Alerts = append(report.Alerts, fmt.Sprintf("%d of %d documents have no monetary value", stats.WithoutValue, stats.Total))
		return documentPartialPoints
	default:
		report.Problems = append(report.Problems, "no document carries a monetary value")
		return 0
	}
}

// scoreTaxPairs awards 5 points per tax type that has both a nonzero
// credit and a nonzero debit figure.
func scoreTaxPairs(data *NestedFiscalData, report *Report) int {
	seen := make(map[string]bool)
	for tax := range data.Credits {
		seen[tax] = true
	}
	for tax := range data.Debits {
		seen[tax] = true
	}

	taxes := make([]string, 0, len(seen))
	for tax := range seen {
		taxes = append(taxes, tax)
	}
	sort.Strings(taxes)

	points := 0
	for _, tax := range taxes {
		if data.Credits[tax].Sign() > 0 && data.Debits[tax].Sign() > 0 {
			points += taxPairPoints
			report.Successes = append(report.Successes, fmt.Sprintf("%s has both credit and debit figures", tax))
		}
	}
	return points
}

// checkRecords runs the field-coverage sub-check once per populated
// tax-type array, sampling only the first record of each.
func checkRecords(data *NestedFiscalData, report *Report) {
	taxes := make([]string, 0, len(data.Records))
	for tax := range data.Records {
		taxes = append(taxes, tax)
	}
	sort.Strings(taxes)

	for _, tax := range taxes {
		samples := data.Records[tax]
		if len(samples) == 0 {
			continue
		}
		expected := expectedRecordFields[tax]
		if expected == nil {
			expected = defaultRecordFields
		}

		populated := 0
		for _, field := range expected {
			if samples[0][field] != "" {
				populated++
			}
		}
		coverage := decimal.NewFromInt(int64(populated)).Div(decimal.NewFromInt(int64(len(expected))))

		check := RecordCheck{Coverage: coverage}
		switch {
		case coverage.GreaterThanOrEqual(recordValidThreshold):
			check.Status = RecordValid
		case coverage.GreaterThanOrEqual(recordPartialThreshold):
			check.Status = RecordPartiallyValid
			report.Alerts = append(report.Alerts, fmt.Sprintf("%s records are only partially populated", tax))
		default:
			check.Status = RecordInsufficient
			report.Problems = append(report.Problems, fmt.Sprintf("%s records are missing most expected fields", tax))
		}
		report.RecordChecks[tax] = check
	}
}

func recommend(data *NestedFiscalData, report *Report) {
	if data.Company.Revenue.Sign() <= 0 {
		report.Recommendations = append(report.Recommendations, "inform the company's annual revenue to improve simulation accuracy")
	}
	if len(data.Regimes) == 0 {
		report.Recommendations = append(report.Recommendations, "upload an EFD Contribuições file to determine the tax regime")
	}
	if report.DocumentStats.Total == 0 {
		report.Recommendations = append(report.Recommendations, "upload a file containing fiscal documents (block C)")
	}
	if report.Score < 60 {
		report.Recommendations = append(report.Recommendations, "review the uploaded files: key figures are missing for a reliable simulation")
	}
}
