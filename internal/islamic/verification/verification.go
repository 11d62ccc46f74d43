// Package verification simulates external certification-body lookups through
// an ordered rule table, fronted by a time-bounded cache. A nil result means
// "no additional data available", never a negative determination.
package verification

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/halalcheck/halalcheck/internal/islamic"
)

// DefaultTTL is how long a cached verification stays fresh.
const DefaultTTL = 30 * 24 * time.Hour

// DefaultConfidenceCap bounds confidence from external body verification:
// external attestation never exceeds high-confidence-but-not-certain.
const DefaultConfidenceCap = 85

// Config carries the service tuning parameters.
type Config struct {
	TTL           time.Duration
	ConfidenceCap int
}

// Service evaluates verification rules with a TTL cache. The cache map is
// guarded by a mutex: concurrent misses for one key may both compute and both
// write, which is tolerable since rules are deterministic (last write wins).
type Service struct {
	mu     sync.RWMutex
	cache  map[string]islamic.VerificationResult
	cfg    Config
	logger *slog.Logger
	now    func() time.Time
}

// New creates a verification service. Zero config fields take the defaults.
func New(cfg Config, logger *slog.Logger) *Service {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.ConfidenceCap <= 0 {
		cfg.ConfidenceCap = DefaultConfidenceCap
	}
	return &Service{
		cache:  make(map[string]islamic.VerificationResult),
		cfg:    cfg,
		logger: logger.With("system", "verification"),
		now:    time.Now,
	}
}

// WithClock overrides the service clock. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Verify looks up verification data for an ingredient. Fresh cache entries
// are returned as-is; stale entries are discarded and recomputed. When no
// rule matches, Verify returns nil and caches nothing.
func (s *Service) Verify(name string) *islamic.VerificationResult {
	key := strings.ToLower(strings.TrimSpace(name))

	s.mu.RLock()
	cached, ok := s.cache[key]
	s.mu.RUnlock()

	if ok && s.now().Sub(cached.LastVerified) < s.cfg.TTL {
		return &cached
	}

	result := s.evaluate(key)
	if result == nil {
		if ok {
			s.mu.Lock()
			delete(s.cache, key)
			s.mu.Unlock()
		}
		return nil
	}

	s.mu.Lock()
	s.cache[key] = *result
	s.mu.Unlock()

	s.logger.Debug("ingredient verified", "ingredient", key, "method", result.Method)
	return result
}

// RequestBodyVerification simulates a fresh lookup against a named
// certification body. Results are never cached. Confidence is the body's
// credibility capped at the configured maximum. Unknown bodies return an
// error rather than a fabricated attestation.
func (s *Service) RequestBodyVerification(name, bodyName string) (*islamic.VerificationResult, error) {
	body, ok := findBody(bodyName)
	if !ok {
		return nil, fmt.Errorf("unknown certification body %q", bodyName)
	}

	confidence := min(body.credibility, s.cfg.ConfidenceCap)
	result := &islamic.VerificationResult{
		Confidence: confidence,
		Method:     islamic.MethodCertificationBody,
		References: []islamic.Reference{
			{
				Source:      islamic.SourceContemporaryFatwa,
				Citation:    fmt.Sprintf("%s registry lookup", body.name),
				Translation: fmt.Sprintf("%s attests the certification status of %s.", body.name, name),
				School:      islamic.MadhabGeneral,
			},
		},
		LastVerified: s.now(),
		Notes:        fmt.Sprintf("Verified against %s (%s), credibility %d.", body.name, body.region, body.credibility),
	}

	s.logger.Info("certification body verification", "ingredient", name, "body", body.name)
	return result, nil
}

// Reset clears the cache. Test and ops hook.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]islamic.VerificationResult)
}

// CacheSize returns the number of cached entries.
func (s *Service) CacheSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cache)
}

func (s *Service) evaluate(key string) *islamic.VerificationResult {
	for _, rule := range rules {
		if strings.Contains(key, rule.match) {
			result := rule.result
			result.LastVerified = s.now()
			return &result
		}
	}
	return nil
}
