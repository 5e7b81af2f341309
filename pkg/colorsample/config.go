package colorsample

import "fmt"

// Config holds the fixed sampling and merge parameters for color extraction.
// These are tuned once for logo-sized images and are not exposed to callers.
type Config struct {
	// Stride is the pixel step used when walking the image. 1 visits every
	// pixel; 2 visits every other pixel on both axes.
	Stride int `toml:"stride"`
	// MaxClusters bounds the number of distinct color clusters tracked.
	// Overflow pixels are folded into the nearest existing cluster.
	MaxClusters int `toml:"max_clusters"`
	// MergeHue, MergeSaturation, and MergeLightness are perceptual merge
	// distances on their respective axes, each expressed as a fraction of the
	// axis range (hue distance is circular).
	MergeHue        float64 `toml:"merge_hue"`
	MergeSaturation float64 `toml:"merge_saturation"`
	MergeLightness  float64 `toml:"merge_lightness"`
}

// DefaultConfig returns the standard extraction parameters: dense sampling
// with moderate merge distances.
func DefaultConfig() Config {
	return Config{
		Stride:          2,
		MaxClusters:     64,
		MergeHue:        0.05,
		MergeSaturation: 0.15,
		MergeLightness:  0.15,
	}
}

// Finalize applies defaults and validation.
func (c *Config) Finalize() error {
	c.loadDefaults()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Stride != 0 {
		c.Stride = overlay.Stride
	}
	if overlay.MaxClusters != 0 {
		c.MaxClusters = overlay.MaxClusters
	}
	if overlay.MergeHue != 0 {
		c.MergeHue = overlay.MergeHue
	}
	if overlay.MergeSaturation != 0 {
		c.MergeSaturation = overlay.MergeSaturation
	}
	if overlay.MergeLightness != 0 {
		c.MergeLightness = overlay.MergeLightness
	}
}

func (c *Config) loadDefaults() {
	def := DefaultConfig()
	if c.Stride == 0 {
		c.Stride = def.Stride
	}
	if c.MaxClusters == 0 {
		c.MaxClusters = def.MaxClusters
	}
	if c.MergeHue == 0 {
		c.MergeHue = def.MergeHue
	}
	if c.MergeSaturation == 0 {
		c.MergeSaturation = def.MergeSaturation
	}
	if c.MergeLightness == 0 {
		c.MergeLightness = def.MergeLightness
	}
}

func (c *Config) validate() error {
	if c.Stride < 1 {
		return fmt.Errorf("stride must be positive")
	}
	if c.MaxClusters < 2 {
		return fmt.Errorf("max_clusters must be at least 2")
	}
	for name, v := range map[string]float64{
		"merge_hue":        c.MergeHue,
		"merge_saturation": c.MergeSaturation,
		"merge_lightness":  c.MergeLightness,
	} {
		if v <= 0 || v >= 1 {
			return fmt.Errorf("%s must be in (0, 1)", name)
		}
	}
	return nil
}
