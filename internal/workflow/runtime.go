package workflow

import (
	"log/slog"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/halalcheck/halalcheck/internal/islamic"
	"github.com/halalcheck/halalcheck/internal/islamic/analyzer"
	"github.com/halalcheck/halalcheck/internal/islamic/madhab"
	"github.com/halalcheck/halalcheck/internal/islamic/verification"
	"github.com/halalcheck/halalcheck/pkg/events"
)

// Runtime bundles the dependencies that workflow nodes require. It is
// constructed by higher-level composition code from Infrastructure and
// domain systems. Agent is consulted only when FallbackEnabled is set.
type Runtime struct {
	Agent           gaconfig.AgentConfig
	FallbackEnabled bool
	Analyzer        *analyzer.Analyzer
	Madhab          *madhab.Resolver
	Verification    *verification.Service
	Bus             *events.Bus
	Logger          *slog.Logger
}

// needsFallback reports whether any resolved ingredient remained unknown.
// Used as the resolve → fallback edge condition; always false when no agent
// is configured.
func (rt *Runtime) needsFallback(s state.State) bool {
	if !rt.FallbackEnabled {
		return false
	}

	val, ok := s.Get(KeyClassifications)
	if !ok {
		return false
	}

	classifications, ok := val.([]islamic.EnhancedClassification)
	if !ok {
		return false
	}

	for _, c := range classifications {
		if c.MatchType == islamic.MatchUnknown {
			return true
		}
	}
	return false
}
