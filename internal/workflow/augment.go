package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/halalcheck/halalcheck/internal/islamic"
)

// AugmentNode returns a state node that enriches resolved classifications
// with madhab-specific references and verification-service data. School
// references are appended when the request names a school other than
// General. Verification runs only for entries flagged requires_verification;
// a non-nil result overwrites the entry's confidence and appends its
// references. A nil verification result means "no additional data", never a
// negative determination.
func AugmentNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		req, err := extractRequest(s)
		if err != nil {
			return s, fmt.Errorf("augment: %w", err)
		}

		classifications, err := extractClassifications(s)
		if err != nil {
			return s, fmt.Errorf("augment: %w", err)
		}

		school := req.Madhab()
		augmented := 0
		verified := 0

		for i := range classifications {
			entry := &classifications[i]

			if school != islamic.MadhabGeneral {
				if ref := rt.Madhab.Ruling(entry.Name, school); ref != nil {
					entry.References = append(entry.References, *ref)
					augmented++
				}
			}

			if entry.RequiresVerification {
				if result := rt.Verification.Verify(entry.Name); result != nil {
					entry.Confidence = result.Confidence
					entry.References = append(entry.References, result.References...)
					verified++
				}
			}
		}

		rt.Logger.InfoContext(
			ctx, "augment node complete",
			"madhab", school,
			"school_references", augmented,
			"verified", verified,
		)

		s = s.Set(KeyClassifications, classifications)
		return s, nil
	})
}
