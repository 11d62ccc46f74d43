// Package madhab resolves per-school rulings and scholarly consensus for
// ingredient categories. The ruling tables are static and never change at
// runtime, so consensus is recomputed per call rather than cached.
package madhab

import (
	"strings"

	"github.com/halalcheck/halalcheck/internal/islamic"
)

// Resolver answers madhab-specific and consensus queries from the static
// category ruling tables.
type Resolver struct{}

// New creates a Resolver.
func New() *Resolver {
	return &Resolver{}
}

// Ruling returns the first reference of the requested school's ruling for the
// ingredient's matched category, or nil when no category matches or the
// school has no entry. Callers treat nil as "no additional context".
func (r *Resolver) Ruling(ingredient string, school islamic.Madhab) *islamic.Reference {
	category, ok := matchCategory(ingredient)
	if !ok {
		return nil
	}
	for _, ruling := range category.rulings {
		if ruling.Madhab != school {
			continue
		}
		if len(ruling.References) == 0 {
			return nil
		}
		ref := ruling.References[0]
		return &ref
	}
	return nil
}

// Consensus aggregates all school rulings for the ingredient's category.
// All rulings agree: unanimous. Any status holding at least half the rulings
// (rounded up): majority. Otherwise divided. No category match: unclear,
// with a consult-a-scholar recommendation and no rulings.
func (r *Resolver) Consensus(ingredient string) islamic.ConsensusAnalysis {
	category, ok := matchCategory(ingredient)
	if !ok {
		return islamic.ConsensusAnalysis{
			Ingredient:     ingredient,
			Level:          islamic.ConsensusUnclear,
			Recommendation: "No recorded scholarly position for this ingredient; consult a qualified scholar.",
		}
	}

	rulings := make([]islamic.MadhabRuling, len(category.rulings))
	copy(rulings, category.rulings)

	return islamic.ConsensusAnalysis{
		Ingredient:     ingredient,
		Category:       category.name,
		Level:          consensusLevel(rulings),
		Rulings:        rulings,
		Recommendation: category.recommendation,
	}
}

func consensusLevel(rulings []islamic.MadhabRuling) islamic.ConsensusLevel {
	if len(rulings) == 0 {
		return islamic.ConsensusUnclear
	}

	counts := make(map[islamic.Status]int)
	for _, ruling := range rulings {
		counts[ruling.Ruling]++
	}

	if len(counts) == 1 {
		return islamic.ConsensusUnanimous
	}

	threshold := (len(rulings) + 1) / 2
	for _, count := range counts {
		if count >= threshold {
			return islamic.ConsensusMajority
		}
	}
	return islamic.ConsensusDivided
}

func matchCategory(ingredient string) (*rulingCategory, bool) {
	normalized := strings.ToLower(strings.TrimSpace(ingredient))
	if normalized == "" {
		return nil, false
	}
	for i := range categories {
		for _, keyword := range categories[i].keywords {
			if strings.Contains(normalized, keyword) {
				return &categories[i], true
			}
		}
	}
	return nil, false
}
