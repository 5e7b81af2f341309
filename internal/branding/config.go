package branding

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/brandforge/giftguide/pkg/colorsample"
	"github.com/brandforge/giftguide/pkg/formatting"
)

// Config holds branding resolution parameters: the logo service endpoint,
// probe and download timeouts, the logo download cap, and the fixed
// color-sampling configuration.
type Config struct {
	LogoServiceURL  string             `toml:"logo_service_url"`
	ProbeTimeout    string             `toml:"probe_timeout"`
	DownloadTimeout string             `toml:"download_timeout"`
	MaxLogoSize     string             `toml:"max_logo_size"`
	Sampling        colorsample.Config `toml:"sampling"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	LogoServiceURL  string
	ProbeTimeout    string
	DownloadTimeout string
	MaxLogoSize     string
}

// ProbeTimeoutDuration returns ProbeTimeout as a time.Duration.
func (c *Config) ProbeTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ProbeTimeout)
	return d
}

// DownloadTimeoutDuration returns DownloadTimeout as a time.Duration.
func (c *Config) DownloadTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.DownloadTimeout)
	return d
}

// MaxLogoSizeBytes returns MaxLogoSize as a byte count.
func (c *Config) MaxLogoSizeBytes() int64 {
	n, _ := formatting.ParseBytes(c.MaxLogoSize)
	return n
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.LogoServiceURL != "" {
		c.LogoServiceURL = overlay.LogoServiceURL
	}
	if overlay.ProbeTimeout != "" {
		c.ProbeTimeout = overlay.ProbeTimeout
	}
	if overlay.DownloadTimeout != "" {
		c.DownloadTimeout = overlay.DownloadTimeout
	}
	if overlay.MaxLogoSize != "" {
		c.MaxLogoSize = overlay.MaxLogoSize
	}
	c.Sampling.Merge(&overlay.Sampling)
}

func (c *Config) loadDefaults() {
	if c.LogoServiceURL == "" {
		c.LogoServiceURL = "https://cdn.brandfetch.io"
	}
	if c.ProbeTimeout == "" {
		c.ProbeTimeout = "5s"
	}
	if c.DownloadTimeout == "" {
		c.DownloadTimeout = "10s"
	}
	if c.MaxLogoSize == "" {
		c.MaxLogoSize = "8MB"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.LogoServiceURL != "" {
		if v := os.Getenv(env.LogoServiceURL); v != "" {
			c.LogoServiceURL = v
		}
	}
	if env.ProbeTimeout != "" {
		if v := os.Getenv(env.ProbeTimeout); v != "" {
			c.ProbeTimeout = v
		}
	}
	if env.DownloadTimeout != "" {
		if v := os.Getenv(env.DownloadTimeout); v != "" {
			c.DownloadTimeout = v
		}
	}
	if env.MaxLogoSize != "" {
		if v := os.Getenv(env.MaxLogoSize); v != "" {
			c.MaxLogoSize = v
		}
	}
}

func (c *Config) validate() error {
	if _, err := url.Parse(c.LogoServiceURL); err != nil {
		return fmt.Errorf("invalid logo_service_url: %w", err)
	}
	if _, err := time.ParseDuration(c.ProbeTimeout); err != nil {
		return fmt.Errorf("invalid probe_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.DownloadTimeout); err != nil {
		return fmt.Errorf("invalid download_timeout: %w", err)
	}
	if _, err := formatting.ParseBytes(c.MaxLogoSize); err != nil {
		return fmt.Errorf("invalid max_logo_size: %w", err)
	}
	if err := c.Sampling.Finalize(); err != nil {
		return fmt.Errorf("sampling: %w", err)
	}
	return nil
}
