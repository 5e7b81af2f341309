package branding

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/brandforge/giftguide/pkg/colorsample"
)

// PaletteResolver turns a confirmed logo into a brand palette.
type PaletteResolver interface {
	Resolve(ctx context.Context, logo LogoResolution) Palette
}

type paletteResolver struct {
	client   *http.Client
	sampler  colorsample.Sampler
	maxBytes int64
	logger   *slog.Logger
}

// NewPaletteResolver creates a resolver that downloads the logo with the
// configured download timeout, samples its colors, and selects a palette.
// Every failure path collapses to the default palette; resolution never
// surfaces an error.
func NewPaletteResolver(cfg *Config, sampler colorsample.Sampler, logger *slog.Logger) PaletteResolver {
	return &paletteResolver{
		client:   &http.Client{Timeout: cfg.DownloadTimeoutDuration()},
		sampler:  sampler,
		maxBytes: cfg.MaxLogoSizeBytes(),
		logger:   logger.With("system", "palette"),
	}
}

func (r *paletteResolver) Resolve(ctx context.Context, logo LogoResolution) Palette {
	if !logo.Found {
		return DefaultPalette()
	}

	data, contentType, err := r.download(ctx, logo.URL)
	if err != nil {
		return r.fallback(logo.URL, err)
	}

	samples, err := r.sampler.Samples(data, contentType)
	if err != nil {
		return r.fallback(logo.URL, err)
	}

	p := Select(samples)
	r.logger.Debug("palette selected",
		"url", logo.URL,
		"samples", len(samples),
		"primary", p.Primary,
		"secondary", p.Secondary,
	)
	return p
}

func (r *paletteResolver) download(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build download request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("download logo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("download logo: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, r.maxBytes))
	if err != nil {
		return nil, "", fmt.Errorf("read logo body: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/bmp"
	}

	return data, contentType, nil
}

func (r *paletteResolver) fallback(url string, err error) Palette {
	r.logger.Warn("palette extraction failed, using default palette",
		"url", url,
		"error", err,
	)
	return DefaultPalette()
}
