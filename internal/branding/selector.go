package branding

import (
	"slices"
	"sort"

	"github.com/brandforge/giftguide/pkg/colorsample"
)

// Usability thresholds: samples outside these bounds are near-white,
// near-black, or near-gray and read as backgrounds rather than brand colors.
const (
	minUsableLightness  = 0.1
	maxUsableLightness  = 0.9
	minUsableSaturation = 0.1
)

// Select derives a Palette from raw color samples. Pure function: the input
// slice is not mutated and identical input yields identical output.
//
// Samples are ranked by area (most visually prominent first, stable for
// ties), then filtered to usable entries. Fewer than two usable entries fall
// back to the full ranked list so a near-monochrome logo still yields some
// palette rather than the default. Primary and secondary are never left
// unset when any color exists; a single-color logo duplicates its color into
// secondary. Background stays the fixed default white regardless of samples.
func Select(samples []colorsample.Sample) Palette {
	if len(samples) == 0 {
		return DefaultPalette()
	}

	ranked := slices.Clone(samples)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Area > ranked[j].Area
	})

	working := usable(ranked)
	if len(working) < 2 {
		working = ranked
	}

	p := Palette{Background: DefaultBackground}

	p.Primary = working[0].Hex
	p.Secondary = working[0].Hex
	if len(working) > 1 {
		p.Secondary = working[1].Hex
	}
	if len(working) > 2 {
		p.Accent = working[2].Hex
	}

	if !ValidHex(p.Primary) {
		p.Primary = DefaultPrimary
	}
	if !ValidHex(p.Secondary) {
		p.Secondary = DefaultSecondary
	}
	if p.Accent != "" && !ValidHex(p.Accent) {
		// An unusable accent is dropped, not defaulted.
		p.Accent = ""
	}

	return p
}

func usable(ranked []colorsample.Sample) []colorsample.Sample {
	out := make([]colorsample.Sample, 0, len(ranked))
	for _, s := range ranked {
		if s.Lightness > minUsableLightness &&
			s.Lightness < maxUsableLightness &&
			s.Saturation > minUsableSaturation {
			out = append(out, s)
		}
	}
	return out
}
