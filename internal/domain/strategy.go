package domain

import "github.com/shopspring/decimal"

// Strategy identifies one of the six supported mitigation strategies.
type Strategy string

const (
	StrategyPriceAdjustment    Strategy = "reajuste_precos"
	StrategyTermRenegotiation  Strategy = "renegociacao_prazos"
	StrategyReceivablesAdvance Strategy = "antecipacao_recebiveis"
	StrategyWorkingCapitalLoan Strategy = "capital_giro"
	StrategyProductMixShift    Strategy = "mix_produtos"
	StrategyPaymentMethodShift Strategy = "meios_pagamento"
)

// AllStrategies lists the supported strategies in their canonical
// order. The optimizer's subset enumeration (and therefore its
// tie-break) is stable with respect to this order.
var AllStrategies = []Strategy{
	StrategyPriceAdjustment,
	StrategyTermRenegotiation,
	StrategyReceivablesAdvance,
	StrategyWorkingCapitalLoan,
	StrategyProductMixShift,
	StrategyPaymentMethodShift,
}

// StrategyConfig is the flat parameter set for all six strategies.
// Each strategy is gated by its activation flag; the optimizer only
// considers strategies whose flag is set.
type StrategyConfig struct {
	// Price adjustment: raise prices to recover the tax load, losing
	// some demand to price elasticity.
	PriceAdjustmentActive bool            `json:"reajustePrecosAtivar" yaml:"reajuste_precos_ativar"`
	PriceIncreasePercent  decimal.Decimal `json:"reajustePercentual" yaml:"reajuste_percentual"`
	PriceElasticity       decimal.Decimal `json:"elasticidade" yaml:"elasticidade"`

	// Term renegotiation: extend supplier payment terms against a
	// compensation discount.
	TermRenegotiationActive bool            `json:"renegociacaoPrazosAtivar" yaml:"renegociacao_prazos_ativar"`
	ExtraPaymentDays        decimal.Decimal `json:"diasAdicionais" yaml:"dias_adicionais"`
	SupplierCompensation    decimal.Decimal `json:"compensacaoFornecedor" yaml:"compensacao_fornecedor"`

	// Receivables anticipation: discount term receivables for cash.
	ReceivablesAdvanceActive bool            `json:"antecipacaoRecebiveisAtivar" yaml:"antecipacao_recebiveis_ativar"`
	AnticipationShare        decimal.Decimal `json:"percentualAntecipacao" yaml:"percentual_antecipacao"`
	AnticipationMonthlyFee   decimal.Decimal `json:"taxaAntecipacao" yaml:"taxa_antecipacao"`

	// Working-capital loan covering part of the gap.
	WorkingCapitalLoanActive bool            `json:"capitalGiroAtivar" yaml:"capital_giro_ativar"`
	LoanGapCoverage          decimal.Decimal `json:"percentualCobertura" yaml:"percentual_cobertura"`
	LoanMonthlyInterest      decimal.Decimal `json:"taxaJuros" yaml:"taxa_juros"`
	LoanTermMonths           decimal.Decimal `json:"prazoMeses" yaml:"prazo_meses"`

	// Product-mix shift toward higher-margin items.
	ProductMixShiftActive bool            `json:"mixProdutosAtivar" yaml:"mix_produtos_ativar"`
	MixShiftShare         decimal.Decimal `json:"percentualMix" yaml:"percentual_mix"`
	MixMarginGain         decimal.Decimal `json:"ganhoMargem" yaml:"ganho_margem"`
	MixTransitionCost     decimal.Decimal `json:"custoTransicao" yaml:"custo_transicao"`

	// Payment-method shift from term to cash sales.
	PaymentMethodShiftActive bool            `json:"meiosPagamentoAtivar" yaml:"meios_pagamento_ativar"`
	PaymentShiftShare        decimal.Decimal `json:"percentualMigracao" yaml:"percentual_migracao"`
	CashIncentive            decimal.Decimal `json:"incentivoVista" yaml:"incentivo_vista"`
}

// Active reports whether the given strategy's activation flag is set.
func (c *StrategyConfig) Active(s Strategy) bool {
	switch s {
	case StrategyPriceAdjustment:
		return c.PriceAdjustmentActive
	case StrategyTermRenegotiation:
		return c.TermRenegotiationActive
	case StrategyReceivablesAdvance:
		return c.ReceivablesAdvanceActive
	case StrategyWorkingCapitalLoan:
		return c.WorkingCapitalLoanActive
	case StrategyProductMixShift:
		return c.ProductMixShiftActive
	case StrategyPaymentMethodShift:
		return c.PaymentMethodShiftActive
	default:
		return false
	}
}

// ActiveStrategies returns the active strategies in canonical order.
func (c *StrategyConfig) ActiveStrategies() []Strategy {
	var active []Strategy
	for _, s := range AllStrategies {
		if c.Active(s) {
			active = append(active, s)
		}
	}
	return active
}
