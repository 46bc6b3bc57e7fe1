// Package output renders analysis reports as console tables, JSON and
// CSV.
package output

import (
	"time"

	"github.com/brfiscal/spedsim/internal/domain"
	"github.com/brfiscal/spedsim/internal/simulation"
	"github.com/brfiscal/spedsim/internal/validation"
	"github.com/google/uuid"
)

// AnalysisReport aggregates the outputs of one analysis run. Sections
// left nil are omitted by the formatters.
type AnalysisReport struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"geradoEm"`
	SourceFile  string    `json:"arquivo,omitempty"`

	Company    *domain.FlatRecord            `json:"empresa,omitempty"`
	Validation *validation.Report            `json:"validacao,omitempty"`
	Projection []domain.BaselineImpact       `json:"projecao,omitempty"`
	Mitigation *simulation.MitigationOutcome `json:"mitigacao,omitempty"`
}

// NewAnalysisReport creates an empty report with a fresh run ID.
func NewAnalysisReport() *AnalysisReport {
	return &AnalysisReport{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
	}
}
