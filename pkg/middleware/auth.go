package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
)

// AuthConfig holds OIDC bearer token settings. Authentication is opt-in:
// when disabled, requests pass through without an organization scope.
type AuthConfig struct {
	Enabled  bool   `toml:"enabled"`
	Issuer   string `toml:"issuer"`
	ClientID string `toml:"client_id"`
	OrgClaim string `toml:"org_claim"`
}

// AuthEnv maps auth config fields to environment variable names for override injection.
type AuthEnv struct {
	Enabled  string
	Issuer   string
	ClientID string
	OrgClaim string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *AuthConfig) Finalize(env *AuthEnv) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	if c.Enabled && c.Issuer == "" {
		return fmt.Errorf("auth enabled without issuer")
	}
	return nil
}

// Merge overwrites fields from overlay. The boolean always applies; strings
// only apply when non-empty.
func (c *AuthConfig) Merge(overlay *AuthConfig) {
	c.Enabled = overlay.Enabled

	if overlay.Issuer != "" {
		c.Issuer = overlay.Issuer
	}
	if overlay.ClientID != "" {
		c.ClientID = overlay.ClientID
	}
	if overlay.OrgClaim != "" {
		c.OrgClaim = overlay.OrgClaim
	}
}

func (c *AuthConfig) loadDefaults() {
	if c.OrgClaim == "" {
		c.OrgClaim = "org"
	}
}

func (c *AuthConfig) loadEnv(env *AuthEnv) {
	if env.Enabled != "" {
		if v := os.Getenv(env.Enabled); v != "" {
			if enabled, err := strconv.ParseBool(v); err == nil {
				c.Enabled = enabled
			}
		}
	}
	if env.Issuer != "" {
		if v := os.Getenv(env.Issuer); v != "" {
			c.Issuer = v
		}
	}
	if env.ClientID != "" {
		if v := os.Getenv(env.ClientID); v != "" {
			c.ClientID = v
		}
	}
	if env.OrgClaim != "" {
		if v := os.Getenv(env.OrgClaim); v != "" {
			c.OrgClaim = v
		}
	}
}

type contextKey string

const (
	subjectKey contextKey = "auth.subject"
	orgKey     contextKey = "auth.org"
)

// Subject returns the authenticated token subject, if any.
func Subject(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(subjectKey).(string)
	return v, ok
}

// Organization returns the organization scope extracted from the token's
// configured org claim, if any.
func Organization(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(orgKey).(string)
	return v, ok
}

// Auth returns middleware that verifies OIDC bearer tokens against the
// configured issuer and injects the subject and organization claims into
// the request context. A no-op when the config is disabled.
func Auth(ctx context.Context, cfg *AuthConfig) (func(http.Handler) http.Handler, error) {
	if !cfg.Enabled {
		return func(next http.Handler) http.Handler {
			return next
		}, nil
	}

	provider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc provider: %w", err)
	}

	verifier := provider.Verifier(&oidc.Config{ClientID: cfg.ClientID})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			token, err := verifier.Verify(r.Context(), raw)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			reqCtx := context.WithValue(r.Context(), subjectKey, token.Subject)

			var claims map[string]json.RawMessage
			if err := token.Claims(&claims); err == nil {
				if rawOrg, ok := claims[cfg.OrgClaim]; ok {
					var org string
					if err := json.Unmarshal(rawOrg, &org); err == nil && org != "" {
						reqCtx = context.WithValue(reqCtx, orgKey, org)
					}
				}
			}

			next.ServeHTTP(w, r.WithContext(reqCtx))
		})
	}, nil
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}
