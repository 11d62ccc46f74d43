// Package certificates implements the halal certificate domain for
// HalalCheck. It provides types, data access, and business logic for
// issuing, verifying, and revoking certificates for approved applications.
package certificates

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// Certificate statuses.
const (
	StatusActive  = "active"
	StatusRevoked = "revoked"
)

// Validity is how long an issued certificate remains valid.
const Validity = 365 * 24 * time.Hour

// Certificate represents an issued halal certificate. Number is the
// public identifier printed on the certificate document.
type Certificate struct {
	ID               uuid.UUID  `json:"id"`
	Number           string     `json:"number"`
	ApplicationID    uuid.UUID  `json:"application_id"`
	ProductName      string     `json:"product_name"`
	CompanyName      string     `json:"company_name"`
	Status           string     `json:"status"`
	IssuedAt         time.Time  `json:"issued_at"`
	ExpiresAt        time.Time  `json:"expires_at"`
	RevokedAt        *time.Time `json:"revoked_at,omitempty"`
	RevocationReason *string    `json:"revocation_reason,omitempty"`
}

// Valid reports whether the certificate is active and unexpired at now.
func (c *Certificate) Valid(now time.Time) bool {
	return c.Status == StatusActive && now.Before(c.ExpiresAt)
}

// RevokeCommand carries the reason for revoking a certificate.
type RevokeCommand struct {
	Reason string `json:"reason"`
}

// VerifyResult is the public verification response for a certificate number.
type VerifyResult struct {
	Valid       bool         `json:"valid"`
	Reason      string       `json:"reason,omitempty"`
	Certificate *Certificate `json:"certificate,omitempty"`
}

const numberAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewNumber generates a certificate number of the form
// HC-{unix millis}-{6 random alphanumerics}.
func NewNumber(now time.Time) string {
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = numberAlphabet[rand.IntN(len(numberAlphabet))]
	}
	return fmt.Sprintf("HC-%d-%s", now.UnixMilli(), suffix)
}
