package verification_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/halalcheck/halalcheck/internal/islamic"
	"github.com/halalcheck/halalcheck/internal/islamic/verification"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestVerifyRuleMatch(t *testing.T) {
	svc := verification.New(verification.Config{}, quietLogger())

	result := svc.Verify("E471 Mono- and Diglycerides")
	if result == nil {
		t.Fatal("expected a verification result for e471")
	}
	if result.Confidence != 60 {
		t.Errorf("confidence = %d, want 60", result.Confidence)
	}
	if result.Method != islamic.MethodCertificationBody {
		t.Errorf("method = %s, want %s", result.Method, islamic.MethodCertificationBody)
	}
	if result.LastVerified.IsZero() {
		t.Error("result missing verification timestamp")
	}
}

func TestVerifyNoRule(t *testing.T) {
	svc := verification.New(verification.Config{}, quietLogger())

	if result := svc.Verify("table salt"); result != nil {
		t.Errorf("unmatched ingredient = %+v, want nil", result)
	}
	if svc.CacheSize() != 0 {
		t.Errorf("cache size = %d after miss, want 0", svc.CacheSize())
	}
}

func TestVerifyCacheTTL(t *testing.T) {
	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	current := base
	svc := verification.New(verification.Config{TTL: 30 * 24 * time.Hour}, quietLogger()).
		WithClock(func() time.Time { return current })

	first := svc.Verify("pork gelatin")
	if first == nil {
		t.Fatal("expected a result for gelatin")
	}
	if svc.CacheSize() != 1 {
		t.Fatalf("cache size = %d, want 1", svc.CacheSize())
	}

	current = base.Add(29 * 24 * time.Hour)
	fresh := svc.Verify("pork gelatin")
	if fresh == nil {
		t.Fatal("expected a cached result")
	}
	if !fresh.LastVerified.Equal(base) {
		t.Errorf("fresh hit timestamp = %v, want original %v", fresh.LastVerified, base)
	}

	current = base.Add(31 * 24 * time.Hour)
	stale := svc.Verify("pork gelatin")
	if stale == nil {
		t.Fatal("expected a recomputed result")
	}
	if !stale.LastVerified.Equal(current) {
		t.Errorf("stale recompute timestamp = %v, want %v", stale.LastVerified, current)
	}
}

func TestRequestBodyVerification(t *testing.T) {
	svc := verification.New(verification.Config{ConfidenceCap: 85}, quietLogger())

	result, err := svc.RequestBodyVerification("soy lecithin", "JAKIM")
	if err != nil {
		t.Fatalf("verification failed: %v", err)
	}
	if result.Confidence != 85 {
		t.Errorf("confidence = %d, want cap 85 below credibility 98", result.Confidence)
	}
	if result.Method != islamic.MethodCertificationBody {
		t.Errorf("method = %s, want %s", result.Method, islamic.MethodCertificationBody)
	}
	if svc.CacheSize() != 0 {
		t.Errorf("body verification cached %d entries, want 0", svc.CacheSize())
	}

	hmc, err := svc.RequestBodyVerification("soy lecithin", "HMC")
	if err != nil {
		t.Fatalf("verification failed: %v", err)
	}
	if hmc.Confidence != 85 {
		t.Errorf("HMC confidence = %d, want credibility 85", hmc.Confidence)
	}
}

func TestRequestBodyVerificationUnknownBody(t *testing.T) {
	svc := verification.New(verification.Config{}, quietLogger())

	if _, err := svc.RequestBodyVerification("soy lecithin", "ACME"); err == nil {
		t.Fatal("expected an error for an unknown body")
	}
}

func TestReset(t *testing.T) {
	svc := verification.New(verification.Config{}, quietLogger())

	if svc.Verify("rennet") == nil {
		t.Fatal("expected a result for rennet")
	}
	if svc.CacheSize() != 1 {
		t.Fatalf("cache size = %d, want 1", svc.CacheSize())
	}

	svc.Reset()
	if svc.CacheSize() != 0 {
		t.Errorf("cache size after reset = %d, want 0", svc.CacheSize())
	}
}
