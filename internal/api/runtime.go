package api

import (
	"github.com/halalcheck/halalcheck/internal/config"
	"github.com/halalcheck/halalcheck/internal/infrastructure"
	"github.com/halalcheck/halalcheck/pkg/pagination"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Agent      gaconfig.AgentConfig
	Analysis   config.AnalysisConfig
	Pagination pagination.Config
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
			Bus:       infra.Bus,
		},
		Agent:      cfg.Agent,
		Analysis:   cfg.Analysis,
		Pagination: cfg.API.Pagination,
	}
}
