package api

import (
	"fmt"

	"github.com/halalcheck/halalcheck/internal/analyses"
	"github.com/halalcheck/halalcheck/internal/applications"
	"github.com/halalcheck/halalcheck/internal/certificates"
	"github.com/halalcheck/halalcheck/internal/documents"
	"github.com/halalcheck/halalcheck/internal/islamic/analyzer"
	"github.com/halalcheck/halalcheck/internal/islamic/knowledge"
	"github.com/halalcheck/halalcheck/internal/islamic/madhab"
	"github.com/halalcheck/halalcheck/internal/islamic/verification"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Analyses     analyses.System
	Applications applications.System
	Certificates certificates.System
	Documents    documents.System
}

// NewDomain creates all domain systems from the API runtime. The Islamic
// ruling pipeline (knowledge base, analyzer, madhab resolver, verification
// service) is assembled here and handed to the analyses system, which owns
// the workflow runtime.
func NewDomain(runtime *Runtime) (*Domain, error) {
	base := knowledge.New()
	if err := base.Load(); err != nil {
		return nil, fmt.Errorf("load knowledge base: %w", err)
	}

	ingredientAnalyzer := analyzer.New(base, analyzer.Config{
		FuzzyThreshold:  runtime.Analysis.FuzzyThreshold,
		SuggestionFloor: runtime.Analysis.SuggestionFloor,
	})

	verifier := verification.New(verification.Config{
		TTL:           runtime.Analysis.VerificationTTLDuration(),
		ConfidenceCap: runtime.Analysis.ConfidenceCap,
	}, runtime.Logger)

	analysesSystem := analyses.New(
		runtime.Database.Connection(),
		runtime.Agent,
		runtime.Analysis.FallbackEnabled,
		ingredientAnalyzer,
		madhab.New(),
		verifier,
		runtime.Bus,
		runtime.Logger,
		runtime.Pagination,
	)

	applicationsSystem := applications.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)
	applicationsSystem.Start(runtime.Bus)

	certificatesSystem := certificates.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	docsSystem := documents.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	return &Domain{
		Analyses:     analysesSystem,
		Applications: applicationsSystem,
		Certificates: certificatesSystem,
		Documents:    docsSystem,
	}, nil
}
