package api

import (
	"github.com/brandforge/giftguide/internal/branding"
	"github.com/brandforge/giftguide/internal/guides"
	"github.com/brandforge/giftguide/internal/pipeline"
	"github.com/brandforge/giftguide/pkg/colorsample"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Guides guides.System
}

// NewDomain creates all domain systems from the API runtime. The branding
// resolvers and pipeline orchestrator are wired here so the guide system
// receives a fully assembled runner.
func NewDomain(runtime *Runtime) *Domain {
	brandingCfg := &runtime.Config.Branding

	logos := branding.NewLogoResolver(brandingCfg, runtime.Logger)
	palettes := branding.NewPaletteResolver(
		brandingCfg,
		colorsample.New(brandingCfg.Sampling),
		runtime.Logger,
	)

	runner := pipeline.New(
		logos,
		palettes,
		runtime.Renderer,
		runtime.Dispatcher,
		runtime.Logger,
	)

	guidesSystem := guides.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runner,
		runtime.Logger,
		runtime.Pagination,
	)

	return &Domain{
		Guides: guidesSystem,
	}
}
