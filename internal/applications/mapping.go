package applications

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/halalcheck/halalcheck/pkg/query"
	"github.com/halalcheck/halalcheck/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "applications", "ap").
	Project("id", "ID").
	Project("org_id", "OrgID").
	Project("product_name", "ProductName").
	Project("company_name", "CompanyName").
	Project("status", "Status").
	Project("analysis_id", "AnalysisID").
	Project("notes", "Notes").
	Project("submitted_at", "SubmittedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "SubmittedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for application queries.
// Nil fields are ignored. OrgID, Status, and AnalysisID use exact matching.
// ProductName and CompanyName use case-insensitive contains matching.
type Filters struct {
	OrgID       *string    `json:"org_id,omitempty"`
	Status      *string    `json:"status,omitempty"`
	ProductName *string    `json:"product_name,omitempty"`
	CompanyName *string    `json:"company_name,omitempty"`
	AnalysisID  *uuid.UUID `json:"analysis_id,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("OrgID", f.OrgID).
		WhereEquals("Status", f.Status).
		WhereContains("ProductName", f.ProductName).
		WhereContains("CompanyName", f.CompanyName).
		WhereEquals("AnalysisID", f.AnalysisID)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if o := values.Get("org_id"); o != "" {
		f.OrgID = &o
	}

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	if p := values.Get("product_name"); p != "" {
		f.ProductName = &p
	}

	if c := values.Get("company_name"); c != "" {
		f.CompanyName = &c
	}

	if a := values.Get("analysis_id"); a != "" {
		if id, err := uuid.Parse(a); err == nil {
			f.AnalysisID = &id
		}
	}

	return f
}

func scanApplication(s repository.Scanner) (Application, error) {
	var a Application
	err := s.Scan(
		&a.ID,
		&a.OrgID,
		&a.ProductName,
		&a.CompanyName,
		&a.Status,
		&a.AnalysisID,
		&a.Notes,
		&a.SubmittedAt,
		&a.UpdatedAt,
	)
	return a, err
}
