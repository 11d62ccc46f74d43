package workflow

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/halalcheck/halalcheck/internal/islamic"
)

// FinalizeNode returns a state node that folds per-ingredient
// classifications into the product-level verdict. Aggregation is
// commutative, so per-ingredient resolution order never affects the
// outcome. Completion is announced separately via EmitCompleted once the
// caller has persisted the result.
func FinalizeNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		req, err := extractRequest(s)
		if err != nil {
			return s, fmt.Errorf("finalize: %w", err)
		}

		classifications, err := extractClassifications(s)
		if err != nil {
			return s, fmt.Errorf("finalize: %w", err)
		}

		result := Aggregate(req, classifications)

		rt.Logger.InfoContext(
			ctx, "finalize node complete",
			"product", req.ProductName,
			"status", result.OverallStatus,
			"confidence", result.ConfidenceScore,
		)

		s = s.Set(KeyResult, result)
		return s, nil
	})
}

// Aggregate folds classifications into the product verdict. HARAM is
// absorbing: one forbidden ingredient dominates any number of permissible
// ones. With no HARAM, any MASHBOOH makes the product MASHBOOH. Confidence
// is the arithmetic mean, defined as 0 for an empty list.
func Aggregate(req Request, classifications []islamic.EnhancedClassification) islamic.AnalysisResult {
	result := islamic.AnalysisResult{
		ProductName:     req.ProductName,
		OverallStatus:   overallStatus(classifications),
		ConfidenceScore: meanConfidence(classifications),
		Ingredients:     classifications,
		Warnings:        warnings(classifications),
		Recommendations: recommendations(classifications),
		Compliance:      islamic.CountStatuses(classifications),
		CompletedAt:     time.Now(),
	}

	if req.Context != nil && req.Context.IncludeScholarlyDifferences {
		result.ScholarlyNotes = scholarlyNotes(classifications)
	}

	return result
}

func overallStatus(classifications []islamic.EnhancedClassification) islamic.Status {
	status := islamic.StatusHalal
	for _, c := range classifications {
		switch c.Status {
		case islamic.StatusHaram:
			return islamic.StatusHaram
		case islamic.StatusMashbooh, islamic.StatusVerifySource:
			status = islamic.StatusMashbooh
		}
	}
	return status
}

func meanConfidence(classifications []islamic.EnhancedClassification) int {
	if len(classifications) == 0 {
		return 0
	}
	sum := 0
	for _, c := range classifications {
		sum += c.Confidence
	}
	return int(math.Round(float64(sum) / float64(len(classifications))))
}

func warnings(classifications []islamic.EnhancedClassification) []string {
	var warns []string
	for _, c := range classifications {
		if c.Status == islamic.StatusHaram {
			warns = append(warns, fmt.Sprintf("%s is HARAM: %s", c.Name, c.Reasoning))
		}
	}
	return warns
}

func recommendations(classifications []islamic.EnhancedClassification) []string {
	counts := islamic.CountStatuses(classifications)
	var recs []string

	if counts.Haram > 0 {
		recs = append(recs, fmt.Sprintf(
			"Product contains %d prohibited ingredient(s); it cannot be certified in this formulation.",
			counts.Haram,
		))
	}
	if counts.Mashbooh > 0 {
		recs = append(recs, fmt.Sprintf(
			"%d ingredient(s) are doubtful; request source documentation from the supplier.",
			counts.Mashbooh,
		))
	}
	if counts.NeedsVerification > 0 {
		recs = append(recs, fmt.Sprintf(
			"%d ingredient(s) require source verification before certification can proceed.",
			counts.NeedsVerification,
		))
	}

	for _, c := range classifications {
		if c.Status == islamic.StatusHaram && len(c.Alternatives) > 0 {
			recs = append(recs, fmt.Sprintf(
				"Replace %s with a permissible alternative such as %s.",
				c.Name, strings.Join(c.Alternatives, ", "),
			))
		}
	}

	if len(recs) == 0 {
		recs = append(recs, "All ingredients are permissible; the product is eligible for certification.")
	}

	return recs
}

// scholarlyNotes lists non-General school references per ingredient.
func scholarlyNotes(classifications []islamic.EnhancedClassification) []string {
	var notes []string
	for _, c := range classifications {
		for _, ref := range c.References {
			if ref.School == "" || ref.School == islamic.MadhabGeneral {
				continue
			}
			notes = append(notes, fmt.Sprintf(
				"%s (%s): %s - %s", c.Name, ref.School, ref.Citation, ref.Translation,
			))
		}
	}
	return notes
}
