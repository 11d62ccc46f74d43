package analyses

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/halalcheck/halalcheck/internal/islamic"
	"github.com/halalcheck/halalcheck/pkg/query"
	"github.com/halalcheck/halalcheck/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "analyses", "a").
	Project("id", "ID").
	Project("product_name", "ProductName").
	Project("overall_status", "OverallStatus").
	Project("confidence_score", "ConfidenceScore").
	Project("madhab", "Madhab").
	Project("ingredients", "Ingredients").
	Project("warnings", "Warnings").
	Project("recommendations", "Recommendations").
	Project("compliance", "Compliance").
	Project("scholarly_notes", "ScholarlyNotes").
	Project("extraction_method", "ExtractionMethod").
	Project("model_name", "ModelName").
	Project("provider_name", "ProviderName").
	Project("analyzed_at", "AnalyzedAt")

var defaultSort = query.SortField{
	Field:      "AnalyzedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for analysis queries.
// Nil fields are ignored. OverallStatus and Madhab use exact matching.
// ProductName uses case-insensitive contains matching.
type Filters struct {
	OverallStatus *string `json:"overall_status,omitempty"`
	Madhab        *string `json:"madhab,omitempty"`
	ProductName   *string `json:"product_name,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("OverallStatus", f.OverallStatus).
		WhereEquals("Madhab", f.Madhab).
		WhereContains("ProductName", f.ProductName)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("overall_status"); s != "" {
		f.OverallStatus = &s
	}

	if m := values.Get("madhab"); m != "" {
		f.Madhab = &m
	}

	if p := values.Get("product_name"); p != "" {
		f.ProductName = &p
	}

	return f
}

func scanAnalysis(s repository.Scanner) (Analysis, error) {
	var a Analysis
	var ingredientsRaw, warningsRaw, recommendationsRaw, complianceRaw, notesRaw []byte

	err := s.Scan(
		&a.ID,
		&a.ProductName,
		&a.OverallStatus,
		&a.ConfidenceScore,
		&a.Madhab,
		&ingredientsRaw,
		&warningsRaw,
		&recommendationsRaw,
		&complianceRaw,
		&notesRaw,
		&a.ExtractionMethod,
		&a.ModelName,
		&a.ProviderName,
		&a.AnalyzedAt,
	)

	if err != nil {
		return a, err
	}

	if err := unmarshalColumn(ingredientsRaw, &a.Ingredients, "ingredients"); err != nil {
		return a, err
	}
	if err := unmarshalColumn(warningsRaw, &a.Warnings, "warnings"); err != nil {
		return a, err
	}
	if err := unmarshalColumn(recommendationsRaw, &a.Recommendations, "recommendations"); err != nil {
		return a, err
	}
	if err := unmarshalColumn(complianceRaw, &a.Compliance, "compliance"); err != nil {
		return a, err
	}
	if err := unmarshalColumn(notesRaw, &a.ScholarlyNotes, "scholarly_notes"); err != nil {
		return a, err
	}

	if a.Ingredients == nil {
		a.Ingredients = []islamic.EnhancedClassification{}
	}
	if a.Recommendations == nil {
		a.Recommendations = []string{}
	}

	return a, nil
}

func unmarshalColumn(raw []byte, target any, column string) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("unmarshal %s: %w", column, err)
	}
	return nil
}
