package config

import (
	"fmt"
	"os"

	"github.com/halalcheck/halalcheck/pkg/formatting"
	"github.com/halalcheck/halalcheck/pkg/middleware"
	"github.com/halalcheck/halalcheck/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "HALALCHECK_CORS_ENABLED",
	Origins:          "HALALCHECK_CORS_ORIGINS",
	AllowedMethods:   "HALALCHECK_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "HALALCHECK_CORS_ALLOWED_HEADERS",
	AllowCredentials: "HALALCHECK_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "HALALCHECK_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "HALALCHECK_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "HALALCHECK_PAGINATION_MAX_PAGE_SIZE",
}

var authEnv = &middleware.AuthEnv{
	Enabled:  "HALALCHECK_AUTH_ENABLED",
	Issuer:   "HALALCHECK_AUTH_ISSUER",
	ClientID: "HALALCHECK_AUTH_CLIENT_ID",
	OrgClaim: "HALALCHECK_AUTH_ORG_CLAIM",
}

// APIConfig holds API routing, CORS, auth, and pagination settings.
type APIConfig struct {
	BasePath      string                `toml:"base_path"`
	MaxUploadSize string                `toml:"max_upload_size"`
	CORS          middleware.CORSConfig `toml:"cors"`
	Auth          middleware.AuthConfig `toml:"auth"`
	Pagination    pagination.Config     `toml:"pagination"`
}

func (c *APIConfig) MaxUploadSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxUploadSize)
	if err != nil {
		return 50 * 1024 * 1024 // 50MB fallback
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS and pagination configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Auth.Finalize(authEnv); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}

	c.CORS.Merge(&overlay.CORS)
	c.Auth.Merge(&overlay.Auth)
	c.Pagination.Merge(&overlay.Pagination)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "50MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("HALALCHECK_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("HALALCHECK_API_MAX_UPLOAD_SIZE"); v != "" {
		c.MaxUploadSize = v
	}
}
