// Package infrastructure provides core service initialization for application
// startup. It assembles the shared dependencies (logging, database, storage,
// rendering, delivery) that the guide domain requires.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/brandforge/giftguide/internal/config"
	"github.com/brandforge/giftguide/pkg/database"
	"github.com/brandforge/giftguide/pkg/delivery"
	"github.com/brandforge/giftguide/pkg/lifecycle"
	"github.com/brandforge/giftguide/pkg/render"
	"github.com/brandforge/giftguide/pkg/storage"
)

// Infrastructure holds the core systems required by the domain modules.
// Dispatcher is nil when no delivery transport is configured; generation
// proceeds and the delivery stage is skipped.
type Infrastructure struct {
	Lifecycle  *lifecycle.Coordinator
	Logger     *slog.Logger
	Database   database.System
	Storage    storage.System
	Renderer   render.System
	Dispatcher delivery.System
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
// The browser binary is resolved here, so a missing browser fails startup
// rather than the first generation request.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	locator, err := render.NewLocator(&cfg.Render)
	if err != nil {
		return nil, fmt.Errorf("renderer init failed: %w", err)
	}

	renderer, err := render.New(&cfg.Render, locator, logger)
	if err != nil {
		return nil, fmt.Errorf("renderer init failed: %w", err)
	}

	var dispatcher delivery.System
	if cfg.Delivery.Configured() {
		dispatcher, err = delivery.New(&cfg.Delivery, logger)
		if err != nil {
			return nil, fmt.Errorf("delivery init failed: %w", err)
		}
	} else {
		logger.Info("delivery not configured, guides will be generated without sending")
	}

	return &Infrastructure{
		Lifecycle:  lc,
		Logger:     logger,
		Database:   db,
		Storage:    store,
		Renderer:   renderer,
		Dispatcher: dispatcher,
	}, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
// Database and storage hooks are registered for startup and shutdown coordination.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	return nil
}
