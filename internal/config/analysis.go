package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/halalcheck/halalcheck/internal/islamic"
)

const (
	EnvAnalysisFuzzyThreshold  = "HALALCHECK_ANALYSIS_FUZZY_THRESHOLD"
	EnvAnalysisSuggestionFloor = "HALALCHECK_ANALYSIS_SUGGESTION_FLOOR"
	EnvAnalysisVerificationTTL = "HALALCHECK_ANALYSIS_VERIFICATION_TTL"
	EnvAnalysisConfidenceCap   = "HALALCHECK_ANALYSIS_CONFIDENCE_CAP"
	EnvAnalysisEventHistory    = "HALALCHECK_ANALYSIS_EVENT_HISTORY"
	EnvAnalysisWaitTimeout     = "HALALCHECK_ANALYSIS_WAIT_TIMEOUT"
	EnvAnalysisDefaultMadhab   = "HALALCHECK_ANALYSIS_DEFAULT_MADHAB"
	EnvAnalysisFallbackEnabled = "HALALCHECK_ANALYSIS_FALLBACK_ENABLED"
)

// AnalysisConfig tunes the ingredient analysis pipeline: fuzzy matching
// thresholds, verification cache behavior, event bus sizing, and whether
// the model fallback stage runs for unknown ingredients.
type AnalysisConfig struct {
	FuzzyThreshold  float64 `toml:"fuzzy_threshold"`
	SuggestionFloor float64 `toml:"suggestion_floor"`
	VerificationTTL string  `toml:"verification_ttl"`
	ConfidenceCap   int     `toml:"confidence_cap"`
	EventHistory    int     `toml:"event_history"`
	WaitTimeout     string  `toml:"wait_timeout"`
	DefaultMadhab   string  `toml:"default_madhab"`
	FallbackEnabled bool    `toml:"fallback_enabled"`
}

// VerificationTTLDuration returns VerificationTTL as a time.Duration.
func (c *AnalysisConfig) VerificationTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.VerificationTTL)
	return d
}

// WaitTimeoutDuration returns WaitTimeout as a time.Duration.
func (c *AnalysisConfig) WaitTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.WaitTimeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *AnalysisConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay. The fallback flag always applies.
func (c *AnalysisConfig) Merge(overlay *AnalysisConfig) {
	if overlay.FuzzyThreshold > 0 {
		c.FuzzyThreshold = overlay.FuzzyThreshold
	}
	if overlay.SuggestionFloor > 0 {
		c.SuggestionFloor = overlay.SuggestionFloor
	}
	if overlay.VerificationTTL != "" {
		c.VerificationTTL = overlay.VerificationTTL
	}
	if overlay.ConfidenceCap > 0 {
		c.ConfidenceCap = overlay.ConfidenceCap
	}
	if overlay.EventHistory > 0 {
		c.EventHistory = overlay.EventHistory
	}
	if overlay.WaitTimeout != "" {
		c.WaitTimeout = overlay.WaitTimeout
	}
	if overlay.DefaultMadhab != "" {
		c.DefaultMadhab = overlay.DefaultMadhab
	}
	c.FallbackEnabled = overlay.FallbackEnabled
}

func (c *AnalysisConfig) loadDefaults() {
	if c.FuzzyThreshold <= 0 {
		c.FuzzyThreshold = 0.7
	}
	if c.SuggestionFloor <= 0 {
		c.SuggestionFloor = 0.3
	}
	if c.VerificationTTL == "" {
		c.VerificationTTL = "720h"
	}
	if c.ConfidenceCap <= 0 {
		c.ConfidenceCap = 85
	}
	if c.EventHistory <= 0 {
		c.EventHistory = 100
	}
	if c.WaitTimeout == "" {
		c.WaitTimeout = "30s"
	}
	if c.DefaultMadhab == "" {
		c.DefaultMadhab = string(islamic.MadhabGeneral)
	}
}

func (c *AnalysisConfig) loadEnv() {
	if v := os.Getenv(EnvAnalysisFuzzyThreshold); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.FuzzyThreshold = f
		}
	}
	if v := os.Getenv(EnvAnalysisSuggestionFloor); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.SuggestionFloor = f
		}
	}
	if v := os.Getenv(EnvAnalysisVerificationTTL); v != "" {
		c.VerificationTTL = v
	}
	if v := os.Getenv(EnvAnalysisConfidenceCap); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.ConfidenceCap = n
		}
	}
	if v := os.Getenv(EnvAnalysisEventHistory); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.EventHistory = n
		}
	}
	if v := os.Getenv(EnvAnalysisWaitTimeout); v != "" {
		c.WaitTimeout = v
	}
	if v := os.Getenv(EnvAnalysisDefaultMadhab); v != "" {
		c.DefaultMadhab = v
	}
	if v := os.Getenv(EnvAnalysisFallbackEnabled); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.FallbackEnabled = enabled
		}
	}
}

func (c *AnalysisConfig) validate() error {
	if c.FuzzyThreshold > 1 {
		return fmt.Errorf("fuzzy_threshold must be in (0, 1]: %v", c.FuzzyThreshold)
	}
	if c.SuggestionFloor >= c.FuzzyThreshold {
		return fmt.Errorf("suggestion_floor must be below fuzzy_threshold")
	}
	if _, err := time.ParseDuration(c.VerificationTTL); err != nil {
		return fmt.Errorf("invalid verification_ttl: %w", err)
	}
	if _, err := time.ParseDuration(c.WaitTimeout); err != nil {
		return fmt.Errorf("invalid wait_timeout: %w", err)
	}
	if !islamic.Madhab(c.DefaultMadhab).Valid() {
		return fmt.Errorf("invalid default_madhab: %s", c.DefaultMadhab)
	}
	return nil
}
