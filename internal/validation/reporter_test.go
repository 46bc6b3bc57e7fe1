package validation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeData() *NestedFiscalData {
	return &NestedFiscalData{
		Company: CompanyInfo{
			Name:    "ACME",
			CNPJ:    "11222333000181",
			Revenue: decimal.NewFromInt(500000),
			Type:    "industria",
			Regime:  "lucro_real",
		},
		Credits: map[string]decimal.Decimal{
			"icms": decimal.NewFromInt(4000),
			"pis":  decimal.NewFromInt(1200),
		},
		Debits: map[string]decimal.Decimal{
			"icms": decimal.NewFromInt(10000),
			"pis":  decimal.NewFromInt(1650),
		},
		Rates:   map[string]decimal.Decimal{"pis": decimal.NewFromFloat(1.65)},
		Regimes: map[string]string{"pis": "nao_cumulativo"},
		Documents: []DocumentEntry{
			{Outbound: true, Value: decimal.NewFromInt(1500)},
			{Outbound: true, Value: decimal.NewFromInt(2300)},
			{Outbound: false, Value: decimal.NewFromInt(800)},
		},
		Metadata: &Metadata{Source: "sped-efd", GeneratedAt: "2026-02-01"},
	}
}

func TestValidateCompleteData(t *testing.T) {
	report := Validate(completeData())

	// 20 structure + 30 company + 25 categories + 20 documents + 10 tax
	// pairs, clamped at 100.
	assert.Equal(t, 100, report.Score)
	assert.Equal(t, StatusExcellent, report.Status)
	assert.Empty(t, report.Problems)
	assert.NotEmpty(t, report.Successes)
	assert.NotEmpty(t, report.ID)
}

func TestDocumentStatistics(t *testing.T) {
	report := Validate(completeData())

	stats := report.DocumentStats
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Outbound)
	assert.Equal(t, 1, stats.Inbound)
	assert.Equal(t, 3, stats.WithValue)
	assert.Equal(t, 0, stats.WithoutValue)
}

func TestCompanyWeighting(t *testing.T) {
	// Only name, tax id, and revenue populated: 25+25+30 = 80 raw
	// points, scaled by 0.3 to 24.
	data := &NestedFiscalData{
		Company: CompanyInfo{
			Name:    "ACME",
			CNPJ:    "11222333000181",
			Revenue: decimal.NewFromInt(500000),
		},
	}
	report := Validate(data)

	// Structure contributes 5 (company section only); everything else
	// scores zero, so the total isolates the company contribution.
	assert.Equal(t, 5+24, report.Score)
	assert.Equal(t, StatusInsufficient, report.Status)
}

func TestCategoryPresenceBonus(t *testing.T) {
	data := &NestedFiscalData{
		Credits: map[string]decimal.Decimal{"icms": decimal.NewFromInt(100)},
	}
	report := Validate(data)
	// One category only: 5 structure points, no 25-point bonus.
	assert.Equal(t, 5, report.Score)

	data.Debits = map[string]decimal.Decimal{"ipi": decimal.NewFromInt(50)}
	report = Validate(data)
	// Two categories: bonus awarded. No credit/debit pair shares a tax
	// type, so no pair points.
	assert.Equal(t, 5+25, report.Score)
}

func TestTaxPairPoints(t *testing.T) {
	data := &NestedFiscalData{
		Credits: map[string]decimal.Decimal{
			"icms":   decimal.NewFromInt(100),
			"cofins": decimal.NewFromInt(300),
		},
		Debits: map[string]decimal.Decimal{
			"icms":   decimal.NewFromInt(200),
			"cofins": decimal.NewFromInt(700),
			"ipi":    decimal.NewFromInt(50), // no matching credit
		},
	}
	report := Validate(data)
	// 5 structure + 25 categories + 2 pairs * 5.
	assert.Equal(t, 5+25+10, report.Score)
}

func TestPartialDocumentValues(t *testing.T) {
	data := completeData()
	data.Documents = append(data.Documents, DocumentEntry{Outbound: true})
	report := Validate(data)

	assert.Equal(t, 1, report.DocumentStats.WithoutValue)
	assert.NotEmpty(t, report.Alerts)
	// Partial bonus instead of full: 20+30+25+10+10.
	assert.Equal(t, 95, report.Score)
	assert.Equal(t, StatusExcellent, report.Status)
}

func TestStatusBuckets(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{100, StatusExcellent}, {80, StatusExcellent},
		{79, StatusGood}, {60, StatusGood},
		{59, StatusRegular}, {40, StatusRegular},
		{39, StatusInsufficient}, {0, StatusInsufficient},
	}
	for _, c := range cases {
		if got := statusFor(c.score); got != c.want {
			t.Errorf("statusFor(%d) = %q, want %q", c.score, got, c.want)
		}
	}
}

func TestValidateNilDataIsContained(t *testing.T) {
	report := Validate(nil)
	require.NotNil(t, report)
	assert.Equal(t, StatusError, report.Status)
	assert.NotEmpty(t, report.Problems)
}

func TestRecordCoverageCheck(t *testing.T) {
	data := completeData()
	data.Records = map[string][]RecordSample{
		"icms": {
			// 4 of 5 expected fields populated: valid (>= 70%).
			{"valor": "100", "base": "1000", "aliquota": "18", "periodo": "2026-01"},
			// Later records are not sampled.
			{},
		},
		"pis": {
			// 2 of 5: partially valid (>= 40%).
			{"valor": "10", "base": "600"},
		},
		"cofins": {
			// 1 of 5: insufficient.
			{"valor": "46"},
		},
	}
	report := Validate(data)

	require.Len(t, report.RecordChecks, 3)
	assert.Equal(t, RecordValid, report.RecordChecks["icms"].Status)
	assert.Equal(t, RecordPartiallyValid, report.RecordChecks["pis"].Status)
	assert.Equal(t, RecordInsufficient, report.RecordChecks["cofins"].Status)
	assert.True(t, report.RecordChecks["icms"].Coverage.Equal(decimal.NewFromFloat(0.8)))
}

func TestRecommendations(t *testing.T) {
	report := Validate(&NestedFiscalData{})
	assert.NotEmpty(t, report.Recommendations)
	assert.Equal(t, StatusInsufficient, report.Status)
}
