package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/halalcheck/halalcheck/internal/islamic"
)

// ResolveNode returns a state node that fans the ingredient list out through
// the analyzer. Resolution order between ingredients is unspecified, but the
// stored slice preserves request order. Resolution itself cannot fail: every
// name terminates in a classification, precautionary at worst.
func ResolveNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		req, err := extractRequest(s)
		if err != nil {
			return s, fmt.Errorf("resolve: %w", err)
		}

		if len(req.Ingredients) == 0 {
			return s, fmt.Errorf("resolve: %w", ErrEmptyIngredients)
		}

		classifications, err := rt.Analyzer.AnalyzeBulk(ctx, req.Ingredients, req.Context)
		if err != nil {
			return s, fmt.Errorf("resolve: %w: %w", ErrResolveFailed, err)
		}

		unknown := 0
		for _, c := range classifications {
			if c.MatchType == islamic.MatchUnknown {
				unknown++
			}
		}

		rt.Logger.InfoContext(
			ctx, "resolve node complete",
			"product", req.ProductName,
			"ingredients", len(classifications),
			"unknown", unknown,
		)

		s = s.Set(KeyClassifications, classifications)
		return s, nil
	})
}
