// Package applications implements the certification application domain for
// HalalCheck. It provides types, data access, and business logic for the
// application review workflow, from submission through certification.
package applications

import (
	"time"

	"github.com/google/uuid"
)

// Status identifies an application's position in the review workflow.
type Status string

// Application workflow statuses. Rejected is terminal; certified is reached
// only from approved when a certificate is issued.
const (
	StatusNew         Status = "new"
	StatusUnderReview Status = "under_review"
	StatusApproved    Status = "approved"
	StatusCertified   Status = "certified"
	StatusRejected    Status = "rejected"
)

var transitions = map[Status][]Status{
	StatusNew:         {StatusUnderReview},
	StatusUnderReview: {StatusApproved, StatusRejected},
	StatusApproved:    {StatusCertified, StatusRejected},
}

// CanTransition reports whether moving from one status to another is a
// valid workflow step.
func CanTransition(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Valid reports whether s is a recognized status.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusUnderReview, StatusApproved, StatusCertified, StatusRejected:
		return true
	}
	return false
}

// Application represents a halal certification application submitted by a
// company for one product. AnalysisID links the ingredient analysis once one
// completes for the application's product.
type Application struct {
	ID          uuid.UUID  `json:"id"`
	OrgID       string     `json:"org_id"`
	ProductName string     `json:"product_name"`
	CompanyName string     `json:"company_name"`
	Status      Status     `json:"status"`
	AnalysisID  *uuid.UUID `json:"analysis_id,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	SubmittedAt time.Time  `json:"submitted_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateCommand carries the data needed to submit a new application.
type CreateCommand struct {
	OrgID       string `json:"org_id,omitempty"`
	ProductName string `json:"product_name"`
	CompanyName string `json:"company_name"`
	Notes       string `json:"notes,omitempty"`
}

// StatusCommand carries a requested status transition. Notes, when present,
// replace the application's notes (rejection reasons, review remarks).
type StatusCommand struct {
	Status Status  `json:"status"`
	Notes  *string `json:"notes,omitempty"`
}
