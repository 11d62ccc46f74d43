package applications_test

import (
	"testing"

	"github.com/halalcheck/halalcheck/internal/applications"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from applications.Status
		to   applications.Status
		want bool
	}{
		{applications.StatusNew, applications.StatusUnderReview, true},
		{applications.StatusUnderReview, applications.StatusApproved, true},
		{applications.StatusUnderReview, applications.StatusRejected, true},
		{applications.StatusApproved, applications.StatusCertified, true},
		{applications.StatusApproved, applications.StatusRejected, true},

		{applications.StatusNew, applications.StatusApproved, false},
		{applications.StatusNew, applications.StatusCertified, false},
		{applications.StatusUnderReview, applications.StatusCertified, false},
		{applications.StatusApproved, applications.StatusNew, false},
		{applications.StatusRejected, applications.StatusUnderReview, false},
		{applications.StatusCertified, applications.StatusRejected, false},
		{applications.StatusNew, applications.StatusNew, false},
	}

	for _, tt := range tests {
		if got := applications.CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestStatusValid(t *testing.T) {
	valid := []applications.Status{
		applications.StatusNew,
		applications.StatusUnderReview,
		applications.StatusApproved,
		applications.StatusCertified,
		applications.StatusRejected,
	}
	for _, s := range valid {
		if !s.Valid() {
			t.Errorf("%s.Valid() = false, want true", s)
		}
	}

	for _, s := range []applications.Status{"", "pending", "NEW"} {
		if s.Valid() {
			t.Errorf("%q.Valid() = true, want false", s)
		}
	}
}
