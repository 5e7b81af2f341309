// Package colorsample extracts prominence-ranked color samples from an image.
// It decodes common raster formats, walks pixels at a fixed stride, and merges
// perceptually close colors in HSL space, yielding one sample per surviving
// cluster ordered by the share of the image it covers.
package colorsample

import (
	"bytes"
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Sample is a single extracted color with its relative prominence and
// derived color-space coordinates. Hue, Saturation, and Lightness are
// normalized to [0, 1]; Area is the fraction of sampled pixels that fell
// into this sample's cluster. Intensity is the perceived luminance.
type Sample struct {
	Hex        string
	Red        uint8
	Green      uint8
	Blue       uint8
	Area       float64
	Hue        float64
	Saturation float64
	Lightness  float64
	Intensity  float64
}

// Sampler produces color samples from raw image bytes. The declared content
// type accompanies the bytes for logging; the actual format is sniffed from
// the data during decode.
type Sampler interface {
	Samples(data []byte, contentType string) ([]Sample, error)
}

// Extractor implements Sampler with stride sampling and HSL cluster merging.
type Extractor struct {
	cfg Config
}

// New creates an Extractor with the given configuration.
func New(cfg Config) *Extractor {
	return &Extractor{cfg: cfg}
}

type cluster struct {
	sumR, sumG, sumB float64
	count            int
	hue              float64
	saturation       float64
	lightness        float64
}

// Samples decodes the image and returns its color samples ordered by area,
// most prominent first. Fully transparent pixels are ignored. An image whose
// pixels are all transparent yields an empty slice, not an error.
func (e *Extractor) Samples(data []byte, contentType string) ([]Sample, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image (%s): %w", contentType, err)
	}

	clusters := e.collect(img)

	total := 0
	for _, c := range clusters {
		total += c.count
	}
	if total == 0 {
		return []Sample{}, nil
	}

	samples := make([]Sample, 0, len(clusters))
	for _, c := range clusters {
		samples = append(samples, c.sample(total))
	}

	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].Area > samples[j].Area
	})

	return samples, nil
}

func (e *Extractor) collect(img image.Image) []*cluster {
	bounds := img.Bounds()
	clusters := make([]*cluster, 0, e.cfg.MaxClusters)

	for y := bounds.Min.Y; y < bounds.Max.Y; y += e.cfg.Stride {
		for x := bounds.Min.X; x < bounds.Max.X; x += e.cfg.Stride {
			r, g, b, a := img.At(x, y).RGBA()
			if a>>8 < 128 {
				continue
			}

			col := colorful.Color{
				R: float64(r>>8) / 255.0,
				G: float64(g>>8) / 255.0,
				B: float64(b>>8) / 255.0,
			}
			h, s, l := col.Hsl()
			h /= 360.0

			if target := e.match(clusters, h, s, l); target != nil {
				target.add(col, h, s, l)
				continue
			}

			if len(clusters) < e.cfg.MaxClusters {
				next := &cluster{hue: h, saturation: s, lightness: l}
				next.add(col, h, s, l)
				clusters = append(clusters, next)
				continue
			}

			nearest(clusters, h, s, l).add(col, h, s, l)
		}
	}

	return clusters
}

// match returns the first cluster within all three merge distances, or nil.
func (e *Extractor) match(clusters []*cluster, h, s, l float64) *cluster {
	for _, c := range clusters {
		if hueDistance(c.hue, h) <= e.cfg.MergeHue &&
			math.Abs(c.saturation-s) <= e.cfg.MergeSaturation &&
			math.Abs(c.lightness-l) <= e.cfg.MergeLightness {
			return c
		}
	}
	return nil
}

func nearest(clusters []*cluster, h, s, l float64) *cluster {
	best := clusters[0]
	bestDist := math.MaxFloat64
	for _, c := range clusters {
		d := hueDistance(c.hue, h) + math.Abs(c.saturation-s) + math.Abs(c.lightness-l)
		if d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}

func hueDistance(a, b float64) float64 {
	d := math.Abs(a - b)
	if d > 0.5 {
		d = 1 - d
	}
	return d
}

func (c *cluster) add(col colorful.Color, h, s, l float64) {
	c.sumR += col.R
	c.sumG += col.G
	c.sumB += col.B
	c.count++

	// Running mean keeps the representative centered as the cluster grows.
	w := 1.0 / float64(c.count)
	c.hue += (h - c.hue) * w
	c.saturation += (s - c.saturation) * w
	c.lightness += (l - c.lightness) * w
}

func (c *cluster) sample(total int) Sample {
	n := float64(c.count)
	mean := colorful.Color{
		R: clamp01(c.sumR / n),
		G: clamp01(c.sumG / n),
		B: clamp01(c.sumB / n),
	}

	h, s, l := mean.Hsl()
	r, g, b := mean.RGB255()

	return Sample{
		Hex:        mean.Hex(),
		Red:        r,
		Green:      g,
		Blue:       b,
		Area:       n / float64(total),
		Hue:        h / 360.0,
		Saturation: s,
		Lightness:  l,
		Intensity:  0.299*mean.R + 0.587*mean.G + 0.114*mean.B,
	}
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
