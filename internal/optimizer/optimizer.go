package optimizer

import (
	"sort"

	"github.com/brfiscal/spedsim/internal/domain"
	"github.com/shopspring/decimal"
)

// OptimalCombination evaluates every active strategy against the
// baseline impact, enumerates all non-empty subsets of the active set,
// applies the pairwise interaction discounts, and returns the subset
// with the minimum finite cost-benefit ratio together with the full
// audit ranking.
//
// Preconditions: at least one activation flag must be set, otherwise
// ErrNoStrategySelected. Shape validation of raw payloads happens in
// OptimalCombinationRaw; this typed entry point trusts its inputs.
// The search is deterministic: subsets are enumerated in ascending
// bitmask order over the canonical strategy order, and the ranking
// sort is stable, so ties resolve to the earliest-enumerated subset.
func OptimalCombination(flat domain.FlatRecord, cfg domain.StrategyConfig, baseline domain.BaselineImpact) (*Result, error) {
	active := cfg.ActiveStrategies()
	if len(active) == 0 {
		return nil, ErrNoStrategySelected
	}

	flat = normalizeRecord(flat)
	cfg = normalizeConfig(cfg)
	gap := baseline.CapitalGap()

	// Phase 1: standalone evaluation, canonical order.
	table := make([]StrategyResult, len(active))
	for i, s := range active {
		table[i] = evaluateStrategy(s, flat, cfg, gap)
	}

	// Phase 2: power-set search. Each member's contribution is scaled
	// by the product of its pairwise factors against every other
	// member; singletons keep factor 1.0.
	n := len(active)
	ranking := make([]CombinationResult, 0, (1<<n)-1)
	for mask := 1; mask < 1<<n; mask++ {
		var members []domain.Strategy
		effectiveness := decimal.Zero
		cost := decimal.Zero

		for i := 0; i < n; i++ {
			if mask&(1<<i) == 0 {
				continue
			}
			factor := decimal.NewFromInt(1)
			for j := 0; j < n; j++ {
				if j == i || mask&(1<<j) == 0 {
					continue
				}
				factor = factor.Mul(InteractionFactor(active[i], active[j]))
			}
			members = append(members, active[i])
			effectiveness = effectiveness.Add(table[i].EffectivenessPercent.Mul(factor))
			cost = cost.Add(table[i].Cost)
		}

		if effectiveness.GreaterThan(hundred) {
			effectiveness = hundred
		}
		ranking = append(ranking, newCombinationResult(members, effectiveness, cost))
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		a, b := ranking[i], ranking[j]
		if a.Unbounded != b.Unbounded {
			return !a.Unbounded
		}
		if a.Unbounded {
			return false
		}
		return a.CostBenefitRatio.LessThan(b.CostBenefitRatio)
	})

	result := &Result{Strategies: table, Ranking: ranking}
	if !ranking[0].Unbounded {
		best := ranking[0]
		result.Best = &best
	}
	return result, nil
}

// OptimalCombinationRaw is the boundary entry point for untyped
// payloads: the flat-vs-nested decision is made once here and a nested
// payload fails fast with a structural error before any evaluation.
func OptimalCombinationRaw(rawFlat, rawConfig map[string]any, baseline domain.BaselineImpact) (*Result, error) {
	flat, err := domain.ParseFlatRecord(rawFlat)
	if err != nil {
		return nil, &OptimizerError{Operation: "decode_record", Message: "simulation record is not in canonical flat shape", Cause: err}
	}
	cfg, err := domain.ParseStrategyConfig(rawConfig)
	if err != nil {
		return nil, &OptimizerError{Operation: "decode_config", Message: "strategy config is not in canonical flat shape", Cause: err}
	}
	return OptimalCombination(*flat, *cfg, baseline)
}
