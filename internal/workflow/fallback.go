package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/JaimeStill/go-agents/pkg/agent"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/halalcheck/halalcheck/internal/islamic"
	"github.com/halalcheck/halalcheck/pkg/formatting"
)

// fallbackPrompt encodes the conservative classification policy the model
// must follow. Responses outside the JSON schema are discarded wholesale.
const fallbackPrompt = `You are a halal food certification analyst. Classify each ingredient below.

Policy, non-negotiable:
- Meat and animal derivatives are MASHBOOH unless certification is stated.
- Anything alcohol-derived for consumption is HARAM.
- Pork and all swine derivatives are HARAM.
- When in doubt, answer MASHBOOH with requires_verification true. Never guess HALAL.

Respond with ONLY a JSON array, one object per ingredient, in input order:
[{"name": string, "status": "HALAL"|"HARAM"|"MASHBOOH", "confidence": int 0-100, "reasoning": string, "category": string, "requires_verification": bool}]

Ingredients:
%s`

// fallbackClassification is the response schema required from the model.
type fallbackClassification struct {
	Name                 string `json:"name"`
	Status               string `json:"status"`
	Confidence           int    `json:"confidence"`
	Reasoning            string `json:"reasoning"`
	Category             string `json:"category"`
	RequiresVerification bool   `json:"requires_verification"`
}

// FallbackNode returns a state node that sends unresolved ingredients to the
// chat model in a single batch. Model output replaces an unknown entry only
// when it validates against the schema and does not relax the precautionary
// status to HALAL. Any model or parse failure leaves the local
// classifications untouched; the fallback is best-effort by design.
func FallbackNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		classifications, err := extractClassifications(s)
		if err != nil {
			return s, fmt.Errorf("fallback: %w", err)
		}

		var unknownIdx []int
		var names []string
		for i, c := range classifications {
			if c.MatchType == islamic.MatchUnknown {
				unknownIdx = append(unknownIdx, i)
				names = append(names, c.Name)
			}
		}
		if len(unknownIdx) == 0 {
			return s, nil
		}

		parsed, err := consultModel(ctx, rt, names)
		if err != nil {
			rt.Logger.WarnContext(
				ctx, "model fallback unavailable, keeping precautionary classifications",
				"ingredients", len(names),
				"error", err,
			)
			return s, nil
		}

		applied := applyFallback(classifications, unknownIdx, parsed)

		rt.Logger.InfoContext(
			ctx, "fallback node complete",
			"consulted", len(names),
			"applied", applied,
		)

		s = s.Set(KeyClassifications, classifications)
		return s, nil
	})
}

func consultModel(ctx context.Context, rt *Runtime, names []string) ([]fallbackClassification, error) {
	a, err := agent.New(&rt.Agent)
	if err != nil {
		return nil, fmt.Errorf("create agent: %w", err)
	}

	prompt := fmt.Sprintf(fallbackPrompt, "- "+strings.Join(names, "\n- "))

	resp, err := a.Chat(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("chat call: %w", err)
	}

	parsed, err := formatting.Parse[[]fallbackClassification](resp.Content())
	if err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	if len(parsed) != len(names) {
		return nil, fmt.Errorf("response has %d entries, want %d", len(parsed), len(names))
	}

	return parsed, nil
}

// applyFallback merges validated model output into the unknown entries,
// returning how many were applied. Entries that fail validation keep their
// precautionary classification.
func applyFallback(classifications []islamic.EnhancedClassification, unknownIdx []int, parsed []fallbackClassification) int {
	applied := 0
	for n, idx := range unknownIdx {
		fc := parsed[n]

		status := islamic.Status(strings.ToUpper(strings.TrimSpace(fc.Status)))
		if status != islamic.StatusHalal && status != islamic.StatusHaram && status != islamic.StatusMashbooh {
			continue
		}
		if fc.Confidence < 0 || fc.Confidence > 100 {
			continue
		}
		// The model may not overrule the precautionary default upward.
		if status == islamic.StatusHalal {
			continue
		}

		entry := &classifications[idx]
		entry.Status = status
		entry.Confidence = fc.Confidence
		entry.Category = fc.Category
		if fc.Reasoning != "" {
			entry.Reasoning = fc.Reasoning
		}
		entry.RequiresVerification = fc.RequiresVerification || status == islamic.StatusMashbooh
		if status == islamic.StatusHaram && len(entry.References) == 0 {
			entry.References = append(entry.References, islamic.Reference{
				Source:      islamic.SourceContemporaryFatwa,
				Citation:    "Model-assisted assessment",
				Translation: fc.Reasoning,
				School:      islamic.MadhabGeneral,
			})
		}
		applied++
	}
	return applied
}
