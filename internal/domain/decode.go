package domain

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// StructuralError reports a simulation payload whose shape violates the
// flat-record contract. Callers are responsible for flattening nested
// payloads upstream; the decoder fails fast instead of guessing.
type StructuralError struct {
	Field  string
	Reason string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("structural error at %q: %s", e.Field, e.Reason)
}

// Keys whose presence as a sub-object marks a nested (non-canonical)
// payload.
var nestedMarkers = []string{"empresa", "company", "estrategias", "strategies"}

func checkFlatShape(m map[string]any) error {
	for _, marker := range nestedMarkers {
		if v, ok := m[marker]; ok {
			if _, isMap := v.(map[string]any); isMap {
				return &StructuralError{
					Field:  marker,
					Reason: "nested sub-object present; flatten the record before simulation",
				}
			}
		}
	}
	return nil
}

// ParseFlatRecord decodes a raw payload into the canonical FlatRecord.
// The flat-vs-nested decision is made exactly once, here: a payload
// carrying a nested marker sub-object is rejected with a
// StructuralError. Scalar fields are coerced leniently; non-numeric
// and NaN values become zero.
func ParseFlatRecord(m map[string]any) (*FlatRecord, error) {
	if m == nil {
		return nil, &StructuralError{Field: "", Reason: "nil payload"}
	}
	if err := checkFlatShape(m); err != nil {
		return nil, err
	}

	return &FlatRecord{
		CompanyName:    asString(m["nome"]),
		CNPJ:           asString(m["cnpj"]),
		State:          asString(m["uf"]),
		Sector:         asString(m["setor"]),
		Regime:         asString(m["regime"]),
		AnnualRevenue:  asDecimal(m["faturamento"]),
		Margin:         asDecimal(m["margem"]),
		CashSaleShare:  asDecimal(m["percentVista"]),
		TermSaleShare:  asDecimal(m["percentPrazo"]),
		ReceivableDays: asDecimal(m["prazoRecebimento"]),
		PayableDays:    asDecimal(m["prazoPagamento"]),
		TaxDebits:      asDecimal(m["debitos"]),
		TaxCredits:     asDecimal(m["creditos"]),
	}, nil
}

// ParseStrategyConfig decodes a raw payload into a StrategyConfig,
// applying the same flat-shape contract as ParseFlatRecord.
func ParseStrategyConfig(m map[string]any) (*StrategyConfig, error) {
	if m == nil {
		return nil, &StructuralError{Field: "", Reason: "nil payload"}
	}
	if err := checkFlatShape(m); err != nil {
		return nil, err
	}

	return &StrategyConfig{
		PriceAdjustmentActive: asBool(m["reajustePrecosAtivar"]),
		PriceIncreasePercent:  asDecimal(m["reajustePercentual"]),
		PriceElasticity:       asDecimal(m["elasticidade"]),

		TermRenegotiationActive: asBool(m["renegociacaoPrazosAtivar"]),
		ExtraPaymentDays:        asDecimal(m["diasAdicionais"]),
		SupplierCompensation:    asDecimal(m["compensacaoFornecedor"]),

		ReceivablesAdvanceActive: asBool(m["antecipacaoRecebiveisAtivar"]),
		AnticipationShare:        asDecimal(m["percentualAntecipacao"]),
		AnticipationMonthlyFee:   asDecimal(m["taxaAntecipacao"]),

		WorkingCapitalLoanActive: asBool(m["capitalGiroAtivar"]),
		LoanGapCoverage:          asDecimal(m["percentualCobertura"]),
		LoanMonthlyInterest:      asDecimal(m["taxaJuros"]),
		LoanTermMonths:           asDecimal(m["prazoMeses"]),

		ProductMixShiftActive: asBool(m["mixProdutosAtivar"]),
		MixShiftShare:         asDecimal(m["percentualMix"]),
		MixMarginGain:         asDecimal(m["ganhoMargem"]),
		MixTransitionCost:     asDecimal(m["custoTransicao"]),

		PaymentMethodShiftActive: asBool(m["meiosPagamentoAtivar"]),
		PaymentShiftShare:        asDecimal(m["percentualMigracao"]),
		CashIncentive:            asDecimal(m["incentivoVista"]),
	}, nil
}

func asString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func asBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "true" || t == "1" || t == "sim"
	default:
		return false
	}
}

// asDecimal coerces a scalar to decimal. Hand-edited inputs carry
// strings with decimal commas, JSON numbers arrive as float64, and
// anything unusable (including NaN/Inf) becomes zero.
func asDecimal(v any) decimal.Decimal {
	switch t := v.(type) {
	case decimal.Decimal:
		return t
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(t)
	case int:
		return decimal.NewFromInt(int64(t))
	case int64:
		return decimal.NewFromInt(t)
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return decimal.Zero
		}
		if d, err := decimal.NewFromString(s); err == nil {
			return d
		}
		// Decimal-comma fallback for pt-BR formatted strings.
		s = strings.ReplaceAll(strings.ReplaceAll(s, ".", ""), ",", ".")
		if d, err := decimal.NewFromString(s); err == nil {
			return d
		}
		return decimal.Zero
	default:
		return decimal.Zero
	}
}
