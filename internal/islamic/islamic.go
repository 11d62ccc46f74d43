// Package islamic defines the shared value types for halal classification:
// statuses, citation references, per-school rulings, and the ingredient and
// product level analysis results exchanged between the knowledge base,
// analyzer, resolver, verification, and workflow layers.
package islamic

import "time"

// Status is the halal determination for an ingredient or product.
type Status string

// Classification statuses. VerifySource is product-facing only: it never
// appears on a stored knowledge base entry.
const (
	StatusHalal        Status = "HALAL"
	StatusHaram        Status = "HARAM"
	StatusMashbooh     Status = "MASHBOOH"
	StatusVerifySource Status = "VERIFY_SOURCE"
)

// Source identifies the origin of a citation.
type Source string

// Citation sources in order of traditional authority.
const (
	SourceQuran              Source = "quran"
	SourceHadith             Source = "hadith"
	SourceScholarlyConsensus Source = "scholarly_consensus"
	SourceContemporaryFatwa  Source = "contemporary_fatwa"
)

// Madhab identifies a school of Islamic jurisprudence.
type Madhab string

// Recognized schools. General marks rulings not tied to a single school.
const (
	MadhabHanafi  Madhab = "Hanafi"
	MadhabMaliki  Madhab = "Maliki"
	MadhabShafi   Madhab = "Shafi"
	MadhabHanbali Madhab = "Hanbali"
	MadhabGeneral Madhab = "General"
)

// Valid reports whether m is a recognized school.
func (m Madhab) Valid() bool {
	switch m {
	case MadhabHanafi, MadhabMaliki, MadhabShafi, MadhabHanbali, MadhabGeneral:
		return true
	}
	return false
}

// Reference is an immutable citation supporting a ruling. Translation is
// always populated; Arabic and Transliteration carry the original text when
// available. References are created once in static tables or synthesized at
// request time and only ever appended to classification reference lists.
type Reference struct {
	Source          Source `json:"source"`
	Citation        string `json:"citation"`
	Arabic          string `json:"arabic,omitempty"`
	Transliteration string `json:"transliteration,omitempty"`
	Translation     string `json:"translation"`
	School          Madhab `json:"school,omitempty"`
}

// IngredientClassification is one ingredient's halal determination.
// A HARAM status always carries at least one reference. Confidence is an
// informal 0-100 certainty estimate, not a calibrated probability.
type IngredientClassification struct {
	Name                 string      `json:"name"`
	Status               Status      `json:"status"`
	Category             string      `json:"category"`
	Confidence           int         `json:"confidence"`
	Reasoning            string      `json:"reasoning"`
	References           []Reference `json:"references"`
	Alternatives         []string    `json:"alternatives,omitempty"`
	RequiresVerification bool        `json:"requires_verification"`
}

// MatchType records how the analyzer resolved an ingredient name.
type MatchType string

// Resolution paths in analyzer precedence order.
const (
	MatchExact    MatchType = "exact"
	MatchPartial  MatchType = "partial"
	MatchFuzzy    MatchType = "fuzzy"
	MatchCategory MatchType = "category"
	MatchUnknown  MatchType = "unknown"
)

// EnhancedClassification is a classification plus analyzer resolution metadata.
type EnhancedClassification struct {
	IngredientClassification
	MatchType       MatchType `json:"match_type"`
	ContextualNotes string    `json:"contextual_notes,omitempty"`
}

// MadhabRuling is one school's opinion for an ingredient category.
type MadhabRuling struct {
	Madhab     Madhab      `json:"madhab"`
	Ruling     Status      `json:"ruling"`
	Confidence int         `json:"confidence"`
	Reasoning  string      `json:"reasoning"`
	References []Reference `json:"references"`
	Scholars   []string    `json:"scholars,omitempty"`
}

// ConsensusLevel describes how far the schools agree on a category.
type ConsensusLevel string

// Consensus levels derived by counting ruling agreement at request time.
const (
	ConsensusUnanimous ConsensusLevel = "unanimous"
	ConsensusMajority  ConsensusLevel = "majority"
	ConsensusDivided   ConsensusLevel = "divided"
	ConsensusUnclear   ConsensusLevel = "unclear"
)

// ConsensusAnalysis aggregates per-school rulings for one ingredient.
// It is recomputed per call and never persisted.
type ConsensusAnalysis struct {
	Ingredient     string         `json:"ingredient"`
	Category       string         `json:"category,omitempty"`
	Level          ConsensusLevel `json:"consensus_level"`
	Rulings        []MadhabRuling `json:"rulings,omitempty"`
	Recommendation string         `json:"recommendation"`
}

// VerificationMethod identifies how a verification result was obtained.
type VerificationMethod string

// Verification methods.
const (
	MethodDatabase              VerificationMethod = "database"
	MethodCertificationBody     VerificationMethod = "certification_body"
	MethodScholarlyConsultation VerificationMethod = "scholarly_consultation"
	MethodContemporaryFatwa     VerificationMethod = "contemporary_fatwa"
)

// VerificationResult is the output of a verification lookup. Cached results
// are considered stale once LastVerified is older than the service TTL.
type VerificationResult struct {
	Confidence   int                `json:"confidence"`
	References   []Reference        `json:"references"`
	Method       VerificationMethod `json:"verification_method"`
	LastVerified time.Time          `json:"last_verified"`
	Notes        string             `json:"notes,omitempty"`
}

// AnalysisContext carries optional request modifiers for an analysis.
// StrictnessLevel and the madhab selection adjust augmentation only; they
// never relax the precautionary defaults.
type AnalysisContext struct {
	Madhab                      Madhab `json:"madhab,omitempty"`
	StrictnessLevel             string `json:"strictness_level,omitempty"`
	IncludeScholarlyDifferences bool   `json:"include_scholarly_differences,omitempty"`
	ManufacturingProcess        string `json:"manufacturing_process,omitempty"`
	SourceCountry               string `json:"source_country,omitempty"`
}

// ComplianceCounts summarizes per-status ingredient totals for a product.
type ComplianceCounts struct {
	Total             int `json:"total"`
	Halal             int `json:"halal"`
	Haram             int `json:"haram"`
	Mashbooh          int `json:"mashbooh"`
	NeedsVerification int `json:"needs_verification"`
}

// AnalysisResult is the product-level verdict for one analysis request.
type AnalysisResult struct {
	ProductName     string                   `json:"product_name"`
	OverallStatus   Status                   `json:"overall_status"`
	ConfidenceScore int                      `json:"confidence_score"`
	Ingredients     []EnhancedClassification `json:"ingredients"`
	Warnings        []string                 `json:"warnings,omitempty"`
	Recommendations []string                 `json:"recommendations"`
	Compliance      ComplianceCounts         `json:"islamic_compliance"`
	ScholarlyNotes  []string                 `json:"scholarly_notes,omitempty"`
	CompletedAt     time.Time                `json:"completed_at"`
}

// CountStatuses computes compliance counts over a set of classifications.
func CountStatuses(ingredients []EnhancedClassification) ComplianceCounts {
	counts := ComplianceCounts{Total: len(ingredients)}
	for _, ing := range ingredients {
		switch ing.Status {
		case StatusHalal:
			counts.Halal++
		case StatusHaram:
			counts.Haram++
		default:
			counts.Mashbooh++
		}
		if ing.RequiresVerification {
			counts.NeedsVerification++
		}
	}
	return counts
}
