// Package analyses implements the product analysis domain for HalalCheck.
// It provides types, data access, and business logic for running the
// analysis workflow and storing, querying, and deleting its results.
package analyses

import (
	"time"

	"github.com/google/uuid"

	"github.com/halalcheck/halalcheck/internal/islamic"
)

// Analysis represents a stored product analysis result. It mirrors the
// analyses table schema with the ingredient verdicts and aggregates held
// as JSONB columns.
type Analysis struct {
	ID               uuid.UUID                        `json:"id"`
	ProductName      string                           `json:"product_name"`
	OverallStatus    islamic.Status                   `json:"overall_status"`
	ConfidenceScore  int                              `json:"confidence_score"`
	Madhab           islamic.Madhab                   `json:"madhab"`
	Ingredients      []islamic.EnhancedClassification `json:"ingredients"`
	Warnings         []string                         `json:"warnings,omitempty"`
	Recommendations  []string                         `json:"recommendations"`
	Compliance       islamic.ComplianceCounts         `json:"islamic_compliance"`
	ScholarlyNotes   []string                         `json:"scholarly_notes,omitempty"`
	ExtractionMethod *string                          `json:"extraction_method,omitempty"`
	ModelName        string                           `json:"model_name"`
	ProviderName     string                           `json:"provider_name"`
	AnalyzedAt       time.Time                        `json:"analyzed_at"`
}

// AnalyzeCommand carries the data needed to run and store a product
// analysis. Either Ingredients or LabelText must be provided; when only
// LabelText is set, the ingredient list is located in the raw label text
// before analysis.
type AnalyzeCommand struct {
	ProductName string                   `json:"product_name"`
	Ingredients []string                 `json:"ingredients,omitempty"`
	LabelText   string                   `json:"label_text,omitempty"`
	Context     *islamic.AnalysisContext `json:"context,omitempty"`
}
