package main

import (
	"encoding/json"
	"net/http"

	"github.com/brandforge/giftguide/internal/api"
	"github.com/brandforge/giftguide/internal/config"
	"github.com/brandforge/giftguide/internal/infrastructure"
	"github.com/brandforge/giftguide/pkg/middleware"
	"github.com/brandforge/giftguide/pkg/module"
	"github.com/brandforge/giftguide/web/scalar"
)

// Modules are the HTTP surfaces the service exposes: the guide API and the
// Scalar API reference UI.
type Modules struct {
	API    *module.Module
	Scalar *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	scalarModule := scalar.NewModule("/scalar")
	scalarModule.Use(middleware.Logger(infra.Logger))

	return &Modules{
		API:    apiModule,
		Scalar: scalarModule,
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.Scalar)
}

// buildRouter creates the root router with liveness and readiness probes
// registered outside any module prefix.
func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeProbe(w, http.StatusOK, "ok")
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			writeProbe(w, http.StatusServiceUnavailable, "not ready")
			return
		}
		writeProbe(w, http.StatusOK, "ready")
	})

	return router
}

func writeProbe(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"status": msg})
}
