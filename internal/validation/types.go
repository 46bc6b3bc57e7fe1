// Package validation scores the completeness and plausibility of
// normalized fiscal data before it feeds the simulation, producing a
// diagnostic report rather than hard failures.
package validation

import "github.com/shopspring/decimal"

// CompanyInfo is the company section of the nested fiscal data.
type CompanyInfo struct {
	Name    string          `json:"nome" yaml:"nome"`
	CNPJ    string          `json:"cnpj" yaml:"cnpj"`
	Revenue decimal.Decimal `json:"faturamento" yaml:"faturamento"`
	Type    string          `json:"tipo" yaml:"tipo"`
	Regime  string          `json:"regime" yaml:"regime"`
}

// DocumentEntry is one fiscal document in the nested data.
type DocumentEntry struct {
	Outbound bool            `json:"saida" yaml:"saida"`
	Value    decimal.Decimal `json:"valor" yaml:"valor"`
}

// RecordSample is a raw record kept for field-coverage checking,
// keyed by field name.
type RecordSample map[string]string

// Metadata describes the provenance of the nested data.
type Metadata struct {
	Source      string `json:"fonte" yaml:"fonte"`
	GeneratedAt string `json:"geradoEm" yaml:"gerado_em"`
}

// NestedFiscalData is the shape the validator scores: company info,
// credit/debit/rate/regime maps keyed by tax type (icms, ipi, pis,
// cofins), per-tax-type record samples, the document list, and
// metadata. It is produced by the external integration step that
// merges per-file extractions; the validator never mutates it.
type NestedFiscalData struct {
	Company   CompanyInfo                `json:"empresa" yaml:"empresa"`
	Credits   map[string]decimal.Decimal `json:"creditos" yaml:"creditos"`
	Debits    map[string]decimal.Decimal `json:"debitos" yaml:"debitos"`
	Rates     map[string]decimal.Decimal `json:"aliquotas" yaml:"aliquotas"`
	Regimes   map[string]string          `json:"regimes" yaml:"regimes"`
	Records   map[string][]RecordSample  `json:"registros" yaml:"registros"`
	Documents []DocumentEntry            `json:"documentos" yaml:"documentos"`
	Metadata  *Metadata                  `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Report statuses, bucketed by score.
const (
	StatusExcellent    = "excellent"
	StatusGood         = "good"
	StatusRegular      = "regular"
	StatusInsufficient = "insufficient"
	StatusError        = "error"
)

// Record-level coverage classifications.
const (
	RecordValid          = "valid"
	RecordPartiallyValid = "partially valid"
	RecordInsufficient   = "insufficient"
)

// DocumentStats summarizes the document list.
type DocumentStats struct {
	Total        int `json:"total"`
	Outbound     int `json:"saidas"`
	Inbound      int `json:"entradas"`
	WithValue    int `json:"comValor"`
	WithoutValue int `json:"semValor"`
}

// RecordCheck is the field-coverage result for one tax type's sampled
// record.
type RecordCheck struct {
	Coverage decimal.Decimal `json:"cobertura"`
	Status   string          `json:"status"`
}

// Report is the outcome of a validation pass: a 0-100 score, a status
// bucket, categorized findings, and per-category statistics.
type Report struct {
	ID              string                 `json:"id"`
	Score           int                    `json:"score"`
	Status          string                 `json:"status"`
	Problems        []string               `json:"problemas"`
	Alerts          []string               `json:"alertas"`
	Successes       []string               `json:"sucessos"`
	Recommendations []string               `json:"recomendacoes"`
	DocumentStats   DocumentStats          `json:"documentos"`
	RecordChecks    map[string]RecordCheck `json:"registros"`
}
