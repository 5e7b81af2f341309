package config

import (
	"fmt"
	"os"

	"github.com/brandforge/giftguide/pkg/middleware"
	"github.com/brandforge/giftguide/pkg/openapi"
	"github.com/brandforge/giftguide/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "GIFTGUIDE_CORS_ENABLED",
	Origins:          "GIFTGUIDE_CORS_ORIGINS",
	AllowedMethods:   "GIFTGUIDE_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "GIFTGUIDE_CORS_ALLOWED_HEADERS",
	AllowCredentials: "GIFTGUIDE_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "GIFTGUIDE_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "GIFTGUIDE_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "GIFTGUIDE_PAGINATION_MAX_PAGE_SIZE",
}

var openapiEnv = &openapi.ConfigEnv{
	Title:       "GIFTGUIDE_OPENAPI_TITLE",
	Description: "GIFTGUIDE_OPENAPI_DESCRIPTION",
}

// APIConfig holds API routing, CORS, and pagination settings.
type APIConfig struct {
	BasePath   string                `toml:"base_path"`
	CORS       middleware.CORSConfig `toml:"cors"`
	Pagination pagination.Config     `toml:"pagination"`
	OpenAPI    openapi.Config        `toml:"openapi"`
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS and pagination configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.OpenAPI.Finalize(openapiEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("GIFTGUIDE_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
}
