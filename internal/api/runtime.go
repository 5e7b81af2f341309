package api

import (
	"github.com/brandforge/giftguide/internal/config"
	"github.com/brandforge/giftguide/internal/infrastructure"
	"github.com/brandforge/giftguide/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Config      *config.Config
	Pagination  pagination.Config
	Environment string
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle:  infra.Lifecycle,
			Logger:     infra.Logger.With("module", "api"),
			Database:   infra.Database,
			Storage:    infra.Storage,
			Renderer:   infra.Renderer,
			Dispatcher: infra.Dispatcher,
		},
		Config:      cfg,
		Pagination:  cfg.API.Pagination,
		Environment: cfg.Env(),
	}
}
