package api

import (
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/KHUSHI-P15/Hackout/internal/classify"
	"github.com/KHUSHI-P15/Hackout/internal/config"
	"github.com/KHUSHI-P15/Hackout/internal/infrastructure"
	"github.com/KHUSHI-P15/Hackout/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
	Classify   *classify.Config
	Agent      *gaconfig.AgentConfig
}

// NewRuntime creates an API runtime with a module-scoped logger.
// Agent is nil when no hosted vision provider has been configured.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
		},
		Pagination: cfg.API.Pagination,
		Classify:   &cfg.Classify,
		Agent:      cfg.AgentConfig(),
	}
}
