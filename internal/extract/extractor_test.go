package extract

import (
	"testing"

	"github.com/brfiscal/spedsim/internal/sped"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fiscalFile = `|0000|017|0|01012026|31012026|ACME LTDA|11222333000181|SP|110042490114|3550308|12345|
|C100|1|0|P001|55|00|1|1001|CHV1|05012026|05012026|1.500,00|0|0,00|0,00|1.450,00|9|0,00|0,00|50,00|1.200,00|216,00|0,00|0,00|75,00|
|C100|0|1|P002|55|00|1|2001|CHV2|08012026|08012026|800,00|0|0,00|0,00|800,00|9|0,00|0,00|0,00|640,00|115,20|0,00|0,00|0,00|
|E110|10.000,00|0,00|0,00|0,00|4.000,00|0,00|0,00|0,00|0,00|6.000,00|0,00|6.000,00|0,00|0,00|
|E520|0,00|1.200,00|400,00|0,00|0,00|0,00|800,00|
`

const contributionsFile = `|0000|006|10|01012026|31012026|ACME LTDA|11222333000181|SP|110042490114|3550308|12345|
|0110|1|1|1||
|M200|16.500,00|4.200,00|0,00|0,00|0,00|0,00|12.300,00|0,00|0,00|0,00|0,00|12.300,00|
|M210|01|100.000,00|100.000,00|0,00|0,00|100.000,00|1,65|0,00|0,00|1.650,00|0,00|0,00|0,00|0,00|1.650,00|
|M210|02|50.000,00|50.000,00|0,00|0,00|50.000,00|0,65|0,00|0,00|325,00|0,00|0,00|0,00|0,00|325,00|
|M600|76.000,00|19.300,00|0,00|0,00|0,00|0,00|56.700,00|0,00|0,00|0,00|0,00|56.700,00|
|M610|01|100.000,00|100.000,00|0,00|0,00|100.000,00|7,60|0,00|0,00|7.600,00|0,00|0,00|0,00|0,00|7.600,00|
`

func parseFile(t *testing.T, text string) (*sped.Document, sped.DocumentKind) {
	t.Helper()
	records := sped.Tokenize(text)
	require.NotEmpty(t, records)
	return sped.Index(records), sped.Classify(records)
}

func TestExtractFiscal(t *testing.T) {
	doc, kind := parseFile(t, fiscalFile)
	require.Equal(t, sped.KindFiscal, kind)

	data := Extract(doc, kind)

	assert.Equal(t, "ACME LTDA", data.Company.Name)
	assert.Equal(t, "11222333000181", data.Company.CNPJ)
	assert.Equal(t, "SP", data.Company.State)
	assert.Equal(t, "2026-01-01", data.Period.Start)

	require.NotNil(t, data.ICMS)
	assert.True(t, data.ICMS.TotalDebits.Equal(decimal.NewFromInt(10000)), "ICMS debits: %s", data.ICMS.TotalDebits)
	assert.True(t, data.ICMS.TotalCredits.Equal(decimal.NewFromInt(4000)))
	assert.True(t, data.ICMS.AmountDue.Equal(decimal.NewFromInt(6000)))

	require.NotNil(t, data.IPI)
	assert.True(t, data.IPI.TotalDebits.Equal(decimal.NewFromInt(1200)))
	assert.True(t, data.IPI.TotalCredits.Equal(decimal.NewFromInt(400)))
	assert.True(t, data.IPI.AmountDue.Equal(decimal.NewFromInt(800)))

	// Fiscal files carry no contributions figures.
	assert.Nil(t, data.PIS)
	assert.Nil(t, data.COFINS)
	assert.Equal(t, RegimeUnknown, data.Regime)
}

func TestExtractInvoices(t *testing.T) {
	doc, kind := parseFile(t, fiscalFile)
	data := Extract(doc, kind)

	require.Len(t, data.Invoices, 2)

	out := data.Invoices[0]
	assert.True(t, out.Outbound)
	assert.Equal(t, "1001", out.Number)
	assert.Equal(t, "2026-01-05", out.IssueDate)
	assert.True(t, out.Total.Equal(decimal.NewFromInt(1500)))
	assert.True(t, out.ICMSBase.Equal(decimal.NewFromInt(1200)))
	assert.True(t, out.ICMS.Equal(decimal.NewFromInt(216)))
	assert.True(t, out.IPI.Equal(decimal.NewFromInt(75)))

	in := data.Invoices[1]
	assert.False(t, in.Outbound)
	assert.True(t, in.Total.Equal(decimal.NewFromInt(800)))

	assert.True(t, data.OutboundTotal().Equal(decimal.NewFromInt(1500)))
	assert.True(t, data.InboundTotal().Equal(decimal.NewFromInt(800)))
}

// Every monetary field in the C100 tail carries a distinct value, so a
// one-column shift in the offsets would read a neighboring field and
// fail.
func TestExtractInvoiceColumnAlignment(t *testing.T) {
	text := "|0000|017|0|01012026|31012026|ACME LTDA|11222333000181|SP|110042490114|3550308|12345|\n" +
		// ...VL_MERC|IND_FRT|VL_FRT|VL_SEG|VL_OUT_DA|VL_BC_ICMS|VL_ICMS|VL_BC_ICMS_ST|VL_ICMS_ST|VL_IPI|
		"|C100|1|0|P001|55|00|1|3001|CHV3|10012026|10012026|2.000,00|0|10,00|20,00|1.900,00|1|30,00|40,00|50,00|1.111,00|222,00|333,00|44,00|55,00|\n"
	doc, kind := parseFile(t, text)
	data := Extract(doc, kind)

	require.Len(t, data.Invoices, 1)
	inv := data.Invoices[0]
	assert.True(t, inv.Total.Equal(decimal.NewFromInt(2000)), "VL_DOC: %s", inv.Total)
	assert.True(t, inv.ICMSBase.Equal(decimal.NewFromInt(1111)), "VL_BC_ICMS: %s", inv.ICMSBase)
	assert.True(t, inv.ICMS.Equal(decimal.NewFromInt(222)), "VL_ICMS: %s", inv.ICMS)
	assert.True(t, inv.IPI.Equal(decimal.NewFromInt(55)), "VL_IPI: %s", inv.IPI)
}

// ALIQ and VL_CONT_APUR sit after the leiaute 006 base-adjustment trio;
// distinct adjusted-base and assessed values catch a regression to the
// pre-006 positions.
func TestExtractBracketColumnAlignment(t *testing.T) {
	text := "|0000|006|10|01012026|31012026|ACME LTDA|11222333000181|SP|110042490114|3550308|12345|\n" +
		// COD_CONT|VL_REC_BRT|VL_BC_CONT|ACRES|REDUC|BC_AJUS|ALIQ|QUANT_BC|ALIQ_QUANT|VL_CONT_APUR|...
		"|M210|01|90.000,00|80.000,00|5.000,00|3.000,00|82.000,00|1,65|0,00|0,00|1.353,00|0,00|0,00|0,00|0,00|1.353,00|\n"
	doc, kind := parseFile(t, text)
	data := Extract(doc, kind)

	require.Len(t, data.PISBrackets, 1)
	bracket := data.PISBrackets[0]
	assert.True(t, bracket.GrossRevenue.Equal(decimal.NewFromInt(90000)))
	assert.True(t, bracket.Base.Equal(decimal.NewFromInt(80000)))
	assert.True(t, bracket.Rate.Equal(decimal.NewFromFloat(1.65)), "ALIQ: %s", bracket.Rate)
	assert.True(t, bracket.Assessed.Equal(decimal.NewFromInt(1353)), "VL_CONT_APUR: %s", bracket.Assessed)
}

func TestExtractContributions(t *testing.T) {
	doc, kind := parseFile(t, contributionsFile)
	require.Equal(t, sped.KindContributions, kind)

	data := Extract(doc, kind)

	require.NotNil(t, data.PIS)
	assert.True(t, data.PIS.TotalDebits.Equal(decimal.NewFromInt(16500)))
	assert.True(t, data.PIS.TotalCredits.Equal(decimal.NewFromInt(4200)))
	assert.True(t, data.PIS.AmountDue.Equal(decimal.NewFromInt(12300)))

	require.NotNil(t, data.COFINS)
	assert.True(t, data.COFINS.AmountDue.Equal(decimal.NewFromInt(56700)))

	require.Len(t, data.PISBrackets, 2)
	assert.Equal(t, "01", data.PISBrackets[0].ContributionCode)
	assert.True(t, data.PISBrackets[0].Rate.Equal(decimal.NewFromFloat(1.65)))
	assert.True(t, data.PISBrackets[1].Assessed.Equal(decimal.NewFromInt(325)))

	require.Len(t, data.COFINSBrackets, 1)
	assert.True(t, data.COFINSBrackets[0].Rate.Equal(decimal.NewFromFloat(7.6)))

	assert.Equal(t, RegimeNonCumulative, data.Regime)
}

func TestExtractFirstMatchWinsForSingletons(t *testing.T) {
	text := fiscalFile + "|E110|99,00|0,00|0,00|0,00|1,00|0,00|0,00|0,00|0,00|98,00|0,00|98,00|0,00|0,00|\n"
	doc, kind := parseFile(t, text)
	data := Extract(doc, kind)

	require.NotNil(t, data.ICMS)
	assert.True(t, data.ICMS.TotalDebits.Equal(decimal.NewFromInt(10000)),
		"a later duplicate E110 must not replace the first")
}

func TestExtractMissingOptionalBlocks(t *testing.T) {
	text := "|0000|006|10|01012026|31012026|ACME LTDA|11222333000181|SP|110042490114|3550308|12345|\n"
	doc, kind := parseFile(t, text)
	data := Extract(doc, kind)

	assert.Nil(t, data.PIS)
	assert.Nil(t, data.COFINS)
	assert.Empty(t, data.PISBrackets)
	assert.Equal(t, RegimeUnknown, data.Regime)
	assert.Empty(t, data.Invoices)
}

func TestExtractCoercesMalformedNumbers(t *testing.T) {
	text := "|0000|017|0|01012026|31012026|ACME LTDA|11222333000181|SP|1|3550308|1|\n" +
		"|E110|garbage|0,00|0,00|0,00|4.000,00|0,00|0,00|0,00|0,00|x|0,00|,|0,00|0,00|\n"
	doc, kind := parseFile(t, text)
	data := Extract(doc, kind)

	require.NotNil(t, data.ICMS)
	assert.True(t, data.ICMS.TotalDebits.IsZero())
	assert.True(t, data.ICMS.TotalCredits.Equal(decimal.NewFromInt(4000)))
	assert.True(t, data.ICMS.AmountDue.IsZero())
}
