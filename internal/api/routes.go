package api

import (
	"net/http"

	"github.com/brandforge/giftguide/pkg/openapi"
	"github.com/brandforge/giftguide/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	runtime *Runtime,
	spec []byte,
) {
	routes.Register(
		mux,
		domain.Guides.Handler(runtime.Environment).Routes(),
	)

	mux.Handle("GET /openapi.json", openapi.ServeSpec(spec))
}
