// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/halalcheck/halalcheck/internal/config"
	"github.com/halalcheck/halalcheck/internal/infrastructure"
	"github.com/halalcheck/halalcheck/pkg/middleware"
	"github.com/halalcheck/halalcheck/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(ctx context.Context, cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)

	domain, err := NewDomain(runtime)
	if err != nil {
		return nil, fmt.Errorf("build domain: %w", err)
	}

	mux := http.NewServeMux()
	registerRoutes(mux, domain, cfg, runtime)

	auth, err := middleware.Auth(ctx, &cfg.API.Auth)
	if err != nil {
		return nil, fmt.Errorf("build auth middleware: %w", err)
	}

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(auth)
	m.Use(middleware.Logger(runtime.Infrastructure.Logger))

	return m, nil
}
