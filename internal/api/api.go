// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/brandforge/giftguide/internal/config"
	"github.com/brandforge/giftguide/internal/infrastructure"
	"github.com/brandforge/giftguide/pkg/middleware"
	"github.com/brandforge/giftguide/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	spec, err := specBytes(cfg)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	registerRoutes(mux, domain, runtime, spec)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Infrastructure.Logger))

	return m, nil
}
