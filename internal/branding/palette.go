// Package branding derives a usable brand palette for a company from its
// logo. It owns the logo existence probe, the logo download and color
// sampling step, the palette selection rules, and the fallback-to-default
// policy that keeps every failure in this package non-fatal.
package branding

import "regexp"

// Default palette and placeholder constants. These are the single source for
// all fallback branding values; nothing re-derives them per request.
const (
	DefaultPrimary    = "#0066CC"
	DefaultSecondary  = "#999999"
	DefaultBackground = "#FFFFFF"

	// PlaceholderLogo marks a guide composed without a resolved logo.
	PlaceholderLogo = "placeholder"
)

var hexPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Palette is the set of brand colors applied to a generated guide.
// Primary and Secondary are always present and always valid hex.
// Background is the fixed default white unless explicitly overridden.
// Accent is present only when a third distinct usable sample existed.
type Palette struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Background string `json:"background"`
	Accent     string `json:"accent,omitempty"`
}

// DefaultPalette returns the blanket fallback palette used whenever the
// color pipeline cannot produce brand colors.
func DefaultPalette() Palette {
	return Palette{
		Primary:    DefaultPrimary,
		Secondary:  DefaultSecondary,
		Background: DefaultBackground,
	}
}

// ValidHex reports whether s is a #-prefixed 6-hex-digit color string.
func ValidHex(s string) bool {
	return hexPattern.MatchString(s)
}
