// Package config parses and validates simulation input files.
package config

import (
	"fmt"
	"os"

	"github.com/brfiscal/spedsim/internal/domain"
	"github.com/brfiscal/spedsim/internal/simulation"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// SimulationInput is the file format for a full simulation run: the
// company record, the sector calibration, the projection window and
// the mitigation strategy configuration.
type SimulationInput struct {
	Company    domain.FlatRecord        `yaml:"empresa" json:"empresa"`
	Sector     *simulation.SectorParams `yaml:"setor,omitempty" json:"setor,omitempty"`
	StartYear  int                      `yaml:"ano_inicial" json:"anoInicial"`
	Years      int                      `yaml:"anos" json:"anos"`
	Strategies domain.StrategyConfig    `yaml:"estrategias" json:"estrategias"`
}

// InputParser handles parsing of simulation input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a simulation input from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*SimulationInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var input SimulationInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	input.applyDefaults()

	if err := ip.ValidateConfiguration(&input); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &input, nil
}

// applyDefaults fills the projection window and sector calibration when
// the file leaves them out.
func (si *SimulationInput) applyDefaults() {
	if si.StartYear == 0 {
		si.StartYear = 2026
	}
	if si.Years == 0 {
		si.Years = 8
	}
	if si.Sector == nil {
		si.Sector = simulation.DefaultSectorParams()
	} else if si.Sector.DualRate.IsZero() {
		si.Sector.DualRate = simulation.DefaultSectorParams().DualRate
	}
}

// ValidateConfiguration validates the loaded input
func (ip *InputParser) ValidateConfiguration(input *SimulationInput) error {
	if err := ip.validateCompany(&input.Company); err != nil {
		return fmt.Errorf("company validation failed: %w", err)
	}
	if err := ip.validateWindow(input); err != nil {
		return fmt.Errorf("projection window validation failed: %w", err)
	}
	if err := ip.validateStrategies(&input.Strategies); err != nil {
		return fmt.Errorf("strategy validation failed: %w", err)
	}
	return nil
}

var one = decimal.NewFromInt(1)

// validateCompany validates the flat company record
func (ip *InputParser) validateCompany(company *domain.FlatRecord) error {
	if company.CompanyName == "" {
		return fmt.Errorf("company name is required")
	}
	if company.AnnualRevenue.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("annual revenue must be positive")
	}
	if company.Margin.LessThan(decimal.Zero) || company.Margin.GreaterThan(one) {
		return fmt.Errorf("margin must be between 0 and 1")
	}
	if company.CashSaleShare.LessThan(decimal.Zero) || company.CashSaleShare.GreaterThan(one) {
		return fmt.Errorf("cash sale share must be between 0 and 1")
	}
	if company.TermSaleShare.LessThan(decimal.Zero) || company.TermSaleShare.GreaterThan(one) {
		return fmt.Errorf("term sale share must be between 0 and 1")
	}
	if company.ReceivableDays.LessThan(decimal.Zero) {
		return fmt.Errorf("receivable days cannot be negative")
	}
	if company.PayableDays.LessThan(decimal.Zero) {
		return fmt.Errorf("payable days cannot be negative")
	}
	if company.TaxDebits.LessThan(decimal.Zero) {
		return fmt.Errorf("tax debits cannot be negative")
	}
	if company.TaxCredits.LessThan(decimal.Zero) {
		return fmt.Errorf("tax credits cannot be negative")
	}
	return nil
}

// validateWindow validates the projection window
func (ip *InputParser) validateWindow(input *SimulationInput) error {
	if input.StartYear < 2026 || input.StartYear > 2033 {
		return fmt.Errorf("start year must be between 2026 and 2033")
	}
	if input.Years <= 0 || input.Years > 20 {
		return fmt.Errorf("projection years must be between 1 and 20")
	}
	if input.Sector != nil {
		if input.Sector.DualRate.LessThanOrEqual(decimal.Zero) || input.Sector.DualRate.GreaterThan(one) {
			return fmt.Errorf("sector dual rate must be between 0 and 1")
		}
		if input.Sector.CurrentRate.LessThan(decimal.Zero) || input.Sector.CurrentRate.GreaterThan(one) {
			return fmt.Errorf("sector current rate must be between 0 and 1")
		}
	}
	return nil
}

// validateStrategies validates the parameters of each active strategy
func (ip *InputParser) validateStrategies(cfg *domain.StrategyConfig) error {
	if cfg.PriceAdjustmentActive {
		if cfg.PriceIncreasePercent.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("price increase percent must be positive")
		}
		if cfg.PriceElasticity.LessThan(decimal.Zero) {
			return fmt.Errorf("price elasticity cannot be negative")
		}
	}
	if cfg.TermRenegotiationActive {
		if cfg.ExtraPaymentDays.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("extra payment days must be positive")
		}
		if cfg.SupplierCompensation.LessThan(decimal.Zero) {
			return fmt.Errorf("supplier compensation cannot be negative")
		}
	}
	if cfg.ReceivablesAdvanceActive {
		if cfg.AnticipationShare.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("anticipation share must be positive")
		}
		if cfg.AnticipationMonthlyFee.LessThan(decimal.Zero) {
			return fmt.Errorf("anticipation fee cannot be negative")
		}
	}
	if cfg.WorkingCapitalLoanActive {
		if cfg.LoanGapCoverage.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("loan gap coverage must be positive")
		}
		if cfg.LoanMonthlyInterest.LessThan(decimal.Zero) {
			return fmt.Errorf("loan interest cannot be negative")
		}
		if cfg.LoanTermMonths.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("loan term months must be positive")
		}
	}
	if cfg.ProductMixShiftActive {
		if cfg.MixShiftShare.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("mix shift share must be positive")
		}
		if cfg.MixMarginGain.LessThan(decimal.Zero) {
			return fmt.Errorf("mix margin gain cannot be negative")
		}
		if cfg.MixTransitionCost.LessThan(decimal.Zero) {
			return fmt.Errorf("mix transition cost cannot be negative")
		}
	}
	if cfg.PaymentMethodShiftActive {
		if cfg.PaymentShiftShare.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("payment shift share must be positive")
		}
		if cfg.CashIncentive.LessThan(decimal.Zero) {
			return fmt.Errorf("cash incentive cannot be negative")
		}
	}
	return nil
}
