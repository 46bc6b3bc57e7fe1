package output

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/brfiscal/spedsim/internal/domain"
	"github.com/brfiscal/spedsim/internal/optimizer"
)

// CSVFormatter formats projection and ranking tables as CSV
type CSVFormatter struct{}

// FormatProjection generates CSV output for the year-by-year impacts
func (cf *CSVFormatter) FormatProjection(projection []domain.BaselineImpact) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Year",
		"Current System Tax",
		"Dual System Tax",
		"Working Capital Difference",
		"Impact %",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for _, impact := range projection {
		row := []string{
			formatInt(impact.Year),
			impact.CurrentSystemTax.StringFixed(2),
			impact.DualSystemTax.StringFixed(2),
			impact.WorkingCapitalDifference.StringFixed(2),
			impact.PercentImpact.StringFixed(4),
		}
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// FormatRanking generates CSV output for the full combination ranking
func (cf *CSVFormatter) FormatRanking(result *optimizer.Result) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Rank",
		"Strategies",
		"Effectiveness %",
		"Total Cost",
		"Cost/Benefit",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for i, combo := range result.Ranking {
		names := make([]string, len(combo.Strategies))
		for j, s := range combo.Strategies {
			names[j] = string(s)
		}
		ratio := combo.CostBenefitRatio.StringFixed(4)
		if combo.Unbounded {
			ratio = ""
		}
		row := []string{
			formatInt(i + 1),
			strings.Join(names, "+"),
			combo.EffectivenessTotal.StringFixed(2),
			combo.CostTotal.StringFixed(2),
			ratio,
		}
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}
