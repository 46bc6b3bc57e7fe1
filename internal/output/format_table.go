package output

import (
	"fmt"
	"strings"

	"github.com/brfiscal/spedsim/internal/domain"
	"github.com/brfiscal/spedsim/internal/optimizer"
	"github.com/shopspring/decimal"
)

// TableFormatter formats an analysis report as a console table
type TableFormatter struct{}

// Format generates a formatted report for console output
func (tf *TableFormatter) Format(report *AnalysisReport) string {
	var sb strings.Builder

	// Header
	sb.WriteString("FISCAL TRANSITION ANALYSIS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Run: %s\n", report.ID))
	if report.SourceFile != "" {
		sb.WriteString(fmt.Sprintf("Source: %s\n", report.SourceFile))
	}
	if report.Company != nil {
		sb.WriteString(fmt.Sprintf("Company: %s (%s)\n", report.Company.CompanyName, report.Company.CNPJ))
	}
	sb.WriteString("\n")

	if report.Validation != nil {
		tf.writeValidation(&sb, report)
	}
	if len(report.Projection) > 0 {
		tf.writeProjection(&sb, report.Projection)
	}
	if report.Mitigation != nil {
		tf.writeMitigation(&sb, report)
	}

	return sb.String()
}

// writeValidation renders the data-quality section
func (tf *TableFormatter) writeValidation(sb *strings.Builder, report *AnalysisReport) {
	v := report.Validation

	sb.WriteString("DATA QUALITY\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Score: %d/100 (%s)\n", v.Score, v.Status))
	sb.WriteString(fmt.Sprintf("Documents: %d (%d outbound, %d inbound, %d without value)\n",
		v.DocumentStats.Total, v.DocumentStats.Outbound, v.DocumentStats.Inbound,
		v.DocumentStats.WithoutValue))

	for _, p := range v.Problems {
		sb.WriteString(fmt.Sprintf("  [problem] %s\n", p))
	}
	for _, a := range v.Alerts {
		sb.WriteString(fmt.Sprintf("  [alert] %s\n", a))
	}
	for _, r := range v.Recommendations {
		sb.WriteString(fmt.Sprintf("  [recommendation] %s\n", r))
	}
	sb.WriteString("\n")
}

// writeProjection renders the year-by-year impact table
func (tf *TableFormatter) writeProjection(sb *strings.Builder, projection []domain.BaselineImpact) {
	numWidth := 15

	sb.WriteString("TRANSITION IMPACT PROJECTION\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%-6s %*s %*s %*s %*s\n",
		"Year",
		numWidth, "Current Tax",
		numWidth, "Dual Tax",
		numWidth, "Capital Diff",
		numWidth, "Impact %"))

	for _, impact := range projection {
		sb.WriteString(fmt.Sprintf("%-6d %*s %*s %*s %*s\n",
			impact.Year,
			numWidth, "R$"+tf.formatDecimal(impact.CurrentSystemTax),
			numWidth, "R$"+tf.formatDecimal(impact.DualSystemTax),
			numWidth, "R$"+tf.formatDecimal(impact.WorkingCapitalDifference),
			numWidth, impact.PercentImpact.StringFixed(2)+"%"))
	}
	sb.WriteString("\n")
}

// writeMitigation renders the optimization section
func (tf *TableFormatter) writeMitigation(sb *strings.Builder, report *AnalysisReport) {
	sb.WriteString("MITIGATION STRATEGIES\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	if report.Mitigation.Empty || report.Mitigation.Result == nil {
		sb.WriteString("No strategy activated.\n\n")
		return
	}

	result := report.Mitigation.Result
	nameWidth := 25
	numWidth := 15

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s\n",
		nameWidth, "Strategy",
		numWidth, "Effectiveness",
		numWidth, "Cost",
		numWidth, "Cost/Benefit"))
	for _, sr := range result.Strategies {
		sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s\n",
			nameWidth, tf.truncate(string(sr.Strategy), nameWidth),
			numWidth, sr.EffectivenessPercent.StringFixed(1)+"%",
			numWidth, "R$"+tf.formatDecimal(sr.Cost),
			numWidth, tf.ratio(sr.CostBenefitRatio, sr.Unbounded)))
	}

	if result.Best != nil {
		sb.WriteString("\nBEST COMBINATION\n")
		sb.WriteString(fmt.Sprintf("  Strategies:    %s\n", tf.strategyList(result.Best.Strategies)))
		sb.WriteString(fmt.Sprintf("  Effectiveness: %s%%\n", result.Best.EffectivenessTotal.StringFixed(1)))
		sb.WriteString(fmt.Sprintf("  Total cost:    R$%s\n", tf.formatDecimal(result.Best.CostTotal)))
		sb.WriteString(fmt.Sprintf("  Cost/benefit:  %s\n", result.Best.CostBenefitRatio.StringFixed(2)))
	} else {
		sb.WriteString("\nNo combination achieves any effectiveness.\n")
	}
	sb.WriteString("\n")
}

// FormatCompact creates a single-line summary of the mitigation result
func (tf *TableFormatter) FormatCompact(result *optimizer.Result) string {
	if result == nil || result.Best == nil {
		return "no effective combination"
	}
	return fmt.Sprintf("%s | %s%% effective | R$%s",
		tf.strategyList(result.Best.Strategies),
		result.Best.EffectivenessTotal.StringFixed(1),
		tf.formatDecimal(result.Best.CostTotal))
}

func (tf *TableFormatter) strategyList(strategies []domain.Strategy) string {
	names := make([]string, len(strategies))
	for i, s := range strategies {
		names[i] = string(s)
	}
	return strings.Join(names, " + ")
}

func (tf *TableFormatter) ratio(r decimal.Decimal, unbounded bool) string {
	if unbounded {
		return "-"
	}
	return r.StringFixed(2)
}

// formatDecimal formats a decimal for display (in thousands/millions)
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
