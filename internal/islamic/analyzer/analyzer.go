// Package analyzer resolves ingredient names against the knowledge base
// through a fixed cascade: exact, partial, fuzzy, category keyword, and
// finally the precautionary unknown classification. Resolution never fails;
// the worst case for any input is an honest "unknown, verify manually".
package analyzer

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"golang.org/x/sync/errgroup"

	"github.com/halalcheck/halalcheck/internal/islamic"
	"github.com/halalcheck/halalcheck/internal/islamic/knowledge"
)

// Config carries the analyzer tuning parameters.
type Config struct {
	// FuzzyThreshold is the minimum normalized similarity for a fuzzy match.
	FuzzyThreshold float64
	// SuggestionFloor is the exclusive lower similarity bound for Similar.
	SuggestionFloor float64
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		FuzzyThreshold:  0.7,
		SuggestionFloor: 0.3,
	}
}

// Analyzer resolves ingredient names. It holds no mutable state beyond the
// immutable knowledge base, so one instance is safe for concurrent use.
type Analyzer struct {
	base *knowledge.Base
	cfg  Config
}

// New creates an analyzer over the given knowledge base.
func New(base *knowledge.Base, cfg Config) *Analyzer {
	if cfg.FuzzyThreshold <= 0 {
		cfg.FuzzyThreshold = DefaultConfig().FuzzyThreshold
	}
	if cfg.SuggestionFloor <= 0 {
		cfg.SuggestionFloor = DefaultConfig().SuggestionFloor
	}
	return &Analyzer{base: base, cfg: cfg}
}

var punctuation = regexp.MustCompile(`[^\p{L}\p{N}\s()\-]`)
var whitespace = regexp.MustCompile(`\s+`)

// NormalizeName lowercases, trims, strips punctuation except parentheses and
// hyphens, and collapses whitespace.
func NormalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = punctuation.ReplaceAllString(name, "")
	name = whitespace.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// Similarity returns the normalized Levenshtein similarity of two names:
// (maxLen - distance) / maxLen. It is symmetric and 1.0 for equal inputs.
func Similarity(a, b string) float64 {
	maxLen := max(len(a), len(b))
	if maxLen == 0 {
		return 1.0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return float64(maxLen-dist) / float64(maxLen)
}

// Analyze resolves one ingredient name. The cascade runs in strict order and
// the first success wins. The optional context contributes notes only; it
// never changes the decision.
func (a *Analyzer) Analyze(name string, actx *islamic.AnalysisContext) islamic.EnhancedClassification {
	normalized := NormalizeName(name)

	if entry, ok := a.base.Exact(normalized); ok {
		return islamic.EnhancedClassification{
			IngredientClassification: entry,
			MatchType:                islamic.MatchExact,
		}
	}

	if entry, ok := a.partial(normalized); ok {
		return islamic.EnhancedClassification{
			IngredientClassification: entry,
			MatchType:                islamic.MatchPartial,
		}
	}

	if entry, sim, ok := a.fuzzy(normalized); ok {
		entry.Confidence = int(math.Round(float64(entry.Confidence) * sim))
		return islamic.EnhancedClassification{
			IngredientClassification: entry,
			MatchType:                islamic.MatchFuzzy,
		}
	}

	if entry, ok := a.category(name, normalized); ok {
		return islamic.EnhancedClassification{
			IngredientClassification: entry,
			MatchType:                islamic.MatchCategory,
		}
	}

	return islamic.EnhancedClassification{
		IngredientClassification: knowledge.Unknown(name),
		MatchType:                islamic.MatchUnknown,
		ContextualNotes:          contextNotes(actx),
	}
}

// AnalyzeBulk resolves many names concurrently. The returned slice preserves
// input order. Every name resolves to a classification, so this cannot fail;
// the context is consulted only for cancellation.
func (a *Analyzer) AnalyzeBulk(ctx context.Context, names []string, actx *islamic.AnalysisContext) ([]islamic.EnhancedClassification, error) {
	results := make([]islamic.EnhancedClassification, len(names))

	g, _ := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			results[i] = a.Analyze(name, actx)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Similar returns up to limit stored names whose similarity to the query is
// strictly between the suggestion floor and 1.0, ordered by descending
// similarity. UI suggestion surface only; never part of classification.
func (a *Analyzer) Similar(name string, limit int) []string {
	normalized := NormalizeName(name)
	type scored struct {
		name string
		sim  float64
	}

	var candidates []scored
	for _, entry := range a.base.Entries() {
		sim := Similarity(normalized, knowledge.Normalize(entry.Name))
		if sim > a.cfg.SuggestionFloor && sim < 1.0 {
			candidates = append(candidates, scored{entry.Name, sim})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].sim > candidates[j].sim
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.name
	}
	return names
}

func (a *Analyzer) partial(normalized string) (islamic.IngredientClassification, bool) {
	if normalized == "" {
		return islamic.IngredientClassification{}, false
	}
	for _, entry := range a.base.Entries() {
		stored := knowledge.Normalize(entry.Name)
		if strings.Contains(stored, normalized) || strings.Contains(normalized, stored) {
			return entry, true
		}
	}
	return islamic.IngredientClassification{}, false
}

func (a *Analyzer) fuzzy(normalized string) (islamic.IngredientClassification, float64, bool) {
	for _, entry := range a.base.Entries() {
		sim := Similarity(normalized, knowledge.Normalize(entry.Name))
		if sim >= a.cfg.FuzzyThreshold {
			return entry, sim, true
		}
	}
	return islamic.IngredientClassification{}, 0, false
}

// categoryKeywords maps name fragments to knowledge base categories.
// Slice order is the tie-break: earlier keywords take priority.
var categoryKeywords = []struct {
	keyword  string
	category string
}{
	{"oil", "Plant Oils"},
	{"emulsifier", "Emulsifiers"},
	{"gelatin", "Animal Derivatives"},
	{"flavor", "Flavorings"},
	{"flavour", "Flavorings"},
	{"color", "Colorings"},
	{"colour", "Colorings"},
	{"sweetener", "Sweeteners"},
	{"preservative", "Preservatives"},
	{"enzyme", "Enzymes"},
	{"starch", "Grains"},
	{"vinegar", "Fermentation Products"},
}

func (a *Analyzer) category(original, normalized string) (islamic.IngredientClassification, bool) {
	for _, kw := range categoryKeywords {
		if !strings.Contains(normalized, kw.keyword) {
			continue
		}
		entries := a.base.ByCategory(kw.category)
		if len(entries) == 0 {
			continue
		}
		status := majorityStatus(entries)
		return islamic.IngredientClassification{
			Name:       original,
			Status:     status,
			Category:   kw.category,
			Confidence: 20,
			Reasoning: fmt.Sprintf(
				"No direct match; classified by the prevailing status of the %s category.",
				kw.category,
			),
			RequiresVerification: status != islamic.StatusHalal,
		}, true
	}
	return islamic.IngredientClassification{}, false
}

// majorityStatus returns the most common status among entries. Ties break in
// favor of the status encountered first, preserving table order.
func majorityStatus(entries []islamic.IngredientClassification) islamic.Status {
	counts := make(map[islamic.Status]int)
	var order []islamic.Status
	for _, entry := range entries {
		if counts[entry.Status] == 0 {
			order = append(order, entry.Status)
		}
		counts[entry.Status]++
	}

	best := order[0]
	for _, status := range order[1:] {
		if counts[status] > counts[best] {
			best = status
		}
	}
	return best
}

func contextNotes(actx *islamic.AnalysisContext) string {
	if actx == nil {
		return ""
	}
	var notes []string
	if actx.ManufacturingProcess != "" {
		notes = append(notes, fmt.Sprintf("manufacturing process: %s", actx.ManufacturingProcess))
	}
	if actx.SourceCountry != "" {
		notes = append(notes, fmt.Sprintf("source country: %s", actx.SourceCountry))
	}
	if actx.Madhab != "" && actx.Madhab != islamic.MadhabGeneral {
		notes = append(notes, fmt.Sprintf("assessed for the %s school", actx.Madhab))
	}
	if len(notes) == 0 {
		return ""
	}
	return "Context: " + strings.Join(notes, "; ")
}
