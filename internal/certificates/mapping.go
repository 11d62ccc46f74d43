package certificates

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/halalcheck/halalcheck/pkg/query"
	"github.com/halalcheck/halalcheck/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "certificates", "ct").
	Project("id", "ID").
	Project("number", "Number").
	Project("application_id", "ApplicationID").
	Project("product_name", "ProductName").
	Project("company_name", "CompanyName").
	Project("status", "Status").
	Project("issued_at", "IssuedAt").
	Project("expires_at", "ExpiresAt").
	Project("revoked_at", "RevokedAt").
	Project("revocation_reason", "RevocationReason")

var defaultSort = query.SortField{
	Field:      "IssuedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for certificate queries.
// Nil fields are ignored. Status, Number, and ApplicationID use exact
// matching. ProductName and CompanyName use case-insensitive contains matching.
type Filters struct {
	Status        *string    `json:"status,omitempty"`
	Number        *string    `json:"number,omitempty"`
	ProductName   *string    `json:"product_name,omitempty"`
	CompanyName   *string    `json:"company_name,omitempty"`
	ApplicationID *uuid.UUID `json:"application_id,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Status", f.Status).
		WhereEquals("Number", f.Number).
		WhereContains("ProductName", f.ProductName).
		WhereContains("CompanyName", f.CompanyName).
		WhereEquals("ApplicationID", f.ApplicationID)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	if n := values.Get("number"); n != "" {
		f.Number = &n
	}

	if p := values.Get("product_name"); p != "" {
		f.ProductName = &p
	}

	if c := values.Get("company_name"); c != "" {
		f.CompanyName = &c
	}

	if a := values.Get("application_id"); a != "" {
		if id, err := uuid.Parse(a); err == nil {
			f.ApplicationID = &id
		}
	}

	return f
}

func scanCertificate(s repository.Scanner) (Certificate, error) {
	var c Certificate
	err := s.Scan(
		&c.ID,
		&c.Number,
		&c.ApplicationID,
		&c.ProductName,
		&c.CompanyName,
		&c.Status,
		&c.IssuedAt,
		&c.ExpiresAt,
		&c.RevokedAt,
		&c.RevocationReason,
	)
	return c, err
}
