package certificates_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/halalcheck/halalcheck/internal/certificates"
)

func TestNewNumberFormat(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^HC-\d+-[A-HJ-NP-Z2-9]{6}$`)

	seen := make(map[string]bool)
	for range 20 {
		number := certificates.NewNumber(now)
		if !pattern.MatchString(number) {
			t.Fatalf("number %q does not match HC-{millis}-{suffix}", number)
		}
		seen[number] = true
	}
	if len(seen) < 2 {
		t.Error("expected random suffixes to vary across generations")
	}
}

func TestCertificateValid(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	issued := now.Add(-30 * 24 * time.Hour)

	tests := []struct {
		name string
		cert certificates.Certificate
		want bool
	}{
		{
			name: "active unexpired",
			cert: certificates.Certificate{
				Status:    certificates.StatusActive,
				IssuedAt:  issued,
				ExpiresAt: issued.Add(certificates.Validity),
			},
			want: true,
		},
		{
			name: "revoked",
			cert: certificates.Certificate{
				Status:    certificates.StatusRevoked,
				IssuedAt:  issued,
				ExpiresAt: issued.Add(certificates.Validity),
			},
			want: false,
		},
		{
			name: "expired",
			cert: certificates.Certificate{
				Status:    certificates.StatusActive,
				IssuedAt:  now.Add(-2 * certificates.Validity),
				ExpiresAt: now.Add(-certificates.Validity),
			},
			want: false,
		},
		{
			name: "expires exactly now",
			cert: certificates.Certificate{
				Status:    certificates.StatusActive,
				IssuedAt:  issued,
				ExpiresAt: now,
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cert.Valid(now); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}
