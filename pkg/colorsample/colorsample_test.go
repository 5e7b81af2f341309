package colorsample_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/brandforge/giftguide/pkg/colorsample"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func solidBlock(c color.RGBA, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestSamples(t *testing.T) {
	extractor := colorsample.New(colorsample.DefaultConfig())

	t.Run("single color image yields one full-area sample", func(t *testing.T) {
		data := encodePNG(t, solidBlock(color.RGBA{R: 200, G: 30, B: 30, A: 255}, 40, 40))

		samples, err := extractor.Samples(data, "image/png")
		if err != nil {
			t.Fatalf("Samples error: %v", err)
		}
		if len(samples) != 1 {
			t.Fatalf("samples = %d, want 1", len(samples))
		}
		if samples[0].Area != 1.0 {
			t.Errorf("area = %f, want 1.0", samples[0].Area)
		}
		if samples[0].Hex != "#c81e1e" {
			t.Errorf("hex = %s, want #c81e1e", samples[0].Hex)
		}
	})

	t.Run("two distinct colors ordered by area", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 40, 40))
		for y := 0; y < 40; y++ {
			for x := 0; x < 40; x++ {
				// top three quarters blue, bottom quarter orange
				if y < 30 {
					img.SetRGBA(x, y, color.RGBA{R: 20, G: 40, B: 220, A: 255})
				} else {
					img.SetRGBA(x, y, color.RGBA{R: 230, G: 140, B: 20, A: 255})
				}
			}
		}
		data := encodePNG(t, img)

		samples, err := extractor.Samples(data, "image/png")
		if err != nil {
			t.Fatalf("Samples error: %v", err)
		}
		if len(samples) != 2 {
			t.Fatalf("samples = %d, want 2", len(samples))
		}
		if samples[0].Area <= samples[1].Area {
			t.Errorf("samples not ordered by area: %f then %f", samples[0].Area, samples[1].Area)
		}
		if samples[0].Blue <= samples[0].Red {
			t.Errorf("dominant sample should be blue, got %+v", samples[0])
		}
	})

	t.Run("hsl coordinates are normalized", func(t *testing.T) {
		data := encodePNG(t, solidBlock(color.RGBA{R: 0, G: 120, B: 60, A: 255}, 16, 16))

		samples, err := extractor.Samples(data, "image/png")
		if err != nil {
			t.Fatalf("Samples error: %v", err)
		}
		s := samples[0]
		for name, v := range map[string]float64{
			"hue":        s.Hue,
			"saturation": s.Saturation,
			"lightness":  s.Lightness,
			"intensity":  s.Intensity,
		} {
			if v < 0 || v > 1 {
				t.Errorf("%s = %f, want within [0, 1]", name, v)
			}
		}
	})

	t.Run("transparent pixels are ignored", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 20, 20))
		for y := 0; y < 20; y++ {
			for x := 0; x < 20; x++ {
				if x < 10 {
					img.SetRGBA(x, y, color.RGBA{R: 10, G: 10, B: 200, A: 255})
				}
				// right half stays zero-alpha
			}
		}
		data := encodePNG(t, img)

		samples, err := extractor.Samples(data, "image/png")
		if err != nil {
			t.Fatalf("Samples error: %v", err)
		}
		if len(samples) != 1 {
			t.Fatalf("samples = %d, want 1", len(samples))
		}
		if samples[0].Area != 1.0 {
			t.Errorf("area = %f, want 1.0 of opaque pixels", samples[0].Area)
		}
	})

	t.Run("invalid bytes return an error", func(t *testing.T) {
		if _, err := extractor.Samples([]byte("not an image"), "image/png"); err == nil {
			t.Error("expected decode error")
		}
	})
}

func TestConfigFinalize(t *testing.T) {
	t.Run("zero config gains defaults", func(t *testing.T) {
		var cfg colorsample.Config
		if err := cfg.Finalize(); err != nil {
			t.Fatalf("Finalize error: %v", err)
		}
		if cfg != colorsample.DefaultConfig() {
			t.Errorf("cfg = %+v, want defaults", cfg)
		}
	})

	t.Run("invalid stride rejected", func(t *testing.T) {
		cfg := colorsample.Config{Stride: -1}
		if err := cfg.Finalize(); err == nil {
			t.Error("expected validation error")
		}
	})
}
