package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/brandforge/giftguide/internal/branding"
	"github.com/brandforge/giftguide/pkg/database"
	"github.com/brandforge/giftguide/pkg/delivery"
	"github.com/brandforge/giftguide/pkg/render"
	"github.com/brandforge/giftguide/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvGiftGuideEnv             = "GIFTGUIDE_ENV"
	EnvGiftGuideShutdownTimeout = "GIFTGUIDE_SHUTDOWN_TIMEOUT"
	EnvGiftGuideVersion         = "GIFTGUIDE_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "GIFTGUIDE_DB_HOST",
	Port:            "GIFTGUIDE_DB_PORT",
	Name:            "GIFTGUIDE_DB_NAME",
	User:            "GIFTGUIDE_DB_USER",
	Password:        "GIFTGUIDE_DB_PASSWORD",
	SSLMode:         "GIFTGUIDE_DB_SSL_MODE",
	MaxOpenConns:    "GIFTGUIDE_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "GIFTGUIDE_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "GIFTGUIDE_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "GIFTGUIDE_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "GIFTGUIDE_STORAGE_CONTAINER_NAME",
	ConnectionString: "GIFTGUIDE_STORAGE_CONNECTION_STRING",
}

var brandingEnv = &branding.Env{
	LogoServiceURL:  "GIFTGUIDE_BRANDING_LOGO_SERVICE_URL",
	ProbeTimeout:    "GIFTGUIDE_BRANDING_PROBE_TIMEOUT",
	DownloadTimeout: "GIFTGUIDE_BRANDING_DOWNLOAD_TIMEOUT",
	MaxLogoSize:     "GIFTGUIDE_BRANDING_MAX_LOGO_SIZE",
}

var renderEnv = &render.Env{
	Mode:        "GIFTGUIDE_RENDER_MODE",
	BinaryPath:  "GIFTGUIDE_RENDER_BINARY_PATH",
	Timeout:     "GIFTGUIDE_RENDER_TIMEOUT",
	MaxSessions: "GIFTGUIDE_RENDER_MAX_SESSIONS",
}

var deliveryEnv = &delivery.Env{
	Host:     "GIFTGUIDE_SMTP_HOST",
	Port:     "GIFTGUIDE_SMTP_PORT",
	Username: "GIFTGUIDE_SMTP_USERNAME",
	Password: "GIFTGUIDE_SMTP_PASSWORD",
	From:     "GIFTGUIDE_SMTP_FROM",
	Timeout:  "GIFTGUIDE_SMTP_TIMEOUT",
}

// Config is the root configuration for the gift guide service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	Storage         storage.Config  `toml:"storage"`
	Branding        branding.Config `toml:"branding"`
	Render          render.Config   `toml:"render"`
	Delivery        delivery.Config `toml:"delivery"`
	API             APIConfig       `toml:"api"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the GIFTGUIDE_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvGiftGuideEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.Branding.Merge(&overlay.Branding)
	c.Render.Merge(&overlay.Render)
	c.Delivery.Merge(&overlay.Delivery)
	c.API.Merge(&overlay.API)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Branding.Finalize(brandingEnv); err != nil {
		return fmt.Errorf("branding: %w", err)
	}
	if err := c.Render.Finalize(renderEnv); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := c.Delivery.Finalize(deliveryEnv); err != nil {
		return fmt.Errorf("delivery: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvGiftGuideShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvGiftGuideVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvGiftGuideEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
