package simulation

import (
	"errors"
	"fmt"

	"github.com/brfiscal/spedsim/internal/domain"
	"github.com/brfiscal/spedsim/internal/optimizer"
)

// SimulationError wraps failures in session operations with the
// operation that failed.
type SimulationError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *SimulationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("simulation %s: %s: %v", e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("simulation %s: %s", e.Operation, e.Message)
}

func (e *SimulationError) Unwrap() error {
	return e.Cause
}

// MitigationOutcome is the result of a mitigation run. Empty is true
// when no strategy was activated, in which case Result is nil.
type MitigationOutcome struct {
	Empty  bool              `json:"vazio"`
	Result *optimizer.Result `json:"resultado,omitempty"`
}

// Session holds the state of one simulation conversation: the company
// record, the last baseline and the last mitigation outcome. Mitigation
// requires a baseline to have been run first.
type Session struct {
	model  ImpactModel
	logger Logger

	lastBaseline *domain.BaselineImpact
	lastOutcome  *MitigationOutcome
}

// NewSession creates a session backed by the given impact model. A nil
// model falls back to the reference DualSystemModel.
func NewSession(model ImpactModel) *Session {
	if model == nil {
		model = NewDualSystemModel()
	}
	return &Session{model: model}
}

// SetLogger enables logging on the session.
func (s *Session) SetLogger(l Logger) {
	s.logger = l
}

// RunBaseline computes and stores the baseline impact for one year.
func (s *Session) RunBaseline(flat domain.FlatRecord, year int, sector *SectorParams) domain.BaselineImpact {
	impact := s.model.CalculateWorkingCapitalImpact(flat, year, sector)
	s.lastBaseline = &impact
	if s.logger != nil {
		s.logger.Infof("baseline year=%d impact=%s%%", year, impact.PercentImpact.StringFixed(2))
	}
	return impact
}

// LastBaseline returns the stored baseline, or nil when none has run.
func (s *Session) LastBaseline() *domain.BaselineImpact {
	return s.lastBaseline
}

// LastOutcome returns the stored mitigation outcome, or nil.
func (s *Session) LastOutcome() *MitigationOutcome {
	return s.lastOutcome
}

// RunMitigation optimizes the strategy combination against the stored
// baseline. A configuration with no active strategy yields an empty
// outcome rather than an error.
func (s *Session) RunMitigation(flat domain.FlatRecord, cfg domain.StrategyConfig) (*MitigationOutcome, error) {
	if s.lastBaseline == nil {
		return nil, &SimulationError{
			Operation: "mitigation",
			Message:   "baseline not computed",
		}
	}

	result, err := optimizer.OptimalCombination(flat, cfg, *s.lastBaseline)
	if err != nil {
		if errors.Is(err, optimizer.ErrNoStrategySelected) {
			outcome := &MitigationOutcome{Empty: true}
			s.lastOutcome = outcome
			if s.logger != nil {
				s.logger.Warnf("mitigation requested with no active strategy")
			}
			return outcome, nil
		}
		return nil, &SimulationError{
			Operation: "mitigation",
			Message:   "optimization failed",
			Cause:     err,
		}
	}

	outcome := &MitigationOutcome{Result: result}
	s.lastOutcome = outcome
	if s.logger != nil && result.Best != nil {
		s.logger.Infof("mitigation best combination: %d strategies, ratio %s",
			len(result.Best.Strategies), result.Best.CostBenefitRatio.StringFixed(2))
	}
	return outcome, nil
}

// Reset clears the stored baseline and outcome.
func (s *Session) Reset() {
	s.lastBaseline = nil
	s.lastOutcome = nil
}
