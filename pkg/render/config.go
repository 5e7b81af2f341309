package render

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Locator modes select how the browser binary is discovered at startup.
const (
	ModeLocal  = "local"
	ModeStatic = "static"
)

// Config holds renderer parameters: browser discovery, page geometry, and
// session limits.
type Config struct {
	// Mode selects browser discovery: "local" probes well-known install
	// locations and PATH; "static" uses BinaryPath verbatim (packaged binary).
	Mode       string `toml:"mode"`
	BinaryPath string `toml:"binary_path"`
	// PaperWidth and PaperHeight are the fixed page dimensions in inches.
	PaperWidth  float64 `toml:"paper_width"`
	PaperHeight float64 `toml:"paper_height"`
	Timeout     string  `toml:"timeout"`
	// MaxSessions bounds concurrent browser sessions across requests.
	MaxSessions int `toml:"max_sessions"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Mode        string
	BinaryPath  string
	Timeout     string
	MaxSessions string
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
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
	if overlay.Mode != "" {
		c.Mode = overlay.Mode
	}
	if overlay.BinaryPath != "" {
		c.BinaryPath = overlay.BinaryPath
	}
	if overlay.PaperWidth != 0 {
		c.PaperWidth = overlay.PaperWidth
	}
	if overlay.PaperHeight != 0 {
		c.PaperHeight = overlay.PaperHeight
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.MaxSessions != 0 {
		c.MaxSessions = overlay.MaxSessions
	}
}

func (c *Config) loadDefaults() {
	if c.Mode == "" {
		c.Mode = ModeLocal
	}
	if c.PaperWidth == 0 {
		c.PaperWidth = 8.5
	}
	if c.PaperHeight == 0 {
		c.PaperHeight = 11.0
	}
	if c.Timeout == "" {
		c.Timeout = "30s"
	}
	if c.MaxSessions == 0 {
		c.MaxSessions = 4
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Mode != "" {
		if v := os.Getenv(env.Mode); v != "" {
			c.Mode = v
		}
	}
	if env.BinaryPath != "" {
		if v := os.Getenv(env.BinaryPath); v != "" {
			c.BinaryPath = v
		}
	}
	if env.Timeout != "" {
		if v := os.Getenv(env.Timeout); v != "" {
			c.Timeout = v
		}
	}
	if env.MaxSessions != "" {
		if v := os.Getenv(env.MaxSessions); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				c.MaxSessions = n
			}
		}
	}
}

func (c *Config) validate() error {
	if c.Mode != ModeLocal && c.Mode != ModeStatic {
		return fmt.Errorf("invalid mode: %s", c.Mode)
	}
	if c.Mode == ModeStatic && c.BinaryPath == "" {
		return fmt.Errorf("binary_path required for static mode")
	}
	if c.PaperWidth <= 0 || c.PaperHeight <= 0 {
		return fmt.Errorf("paper dimensions must be positive")
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if c.MaxSessions < 1 {
		return fmt.Errorf("max_sessions must be positive")
	}
	return nil
}
