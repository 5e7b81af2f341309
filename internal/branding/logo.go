package branding

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
)

// LogoResolution is the outcome of a logo existence probe. Found is true only
// for a confirmed retrievable logo; Reason carries the failure description
// otherwise. A resolution is never an error: the probe is a liveness check,
// not a content fetch.
type LogoResolution struct {
	URL    string
	Found  bool
	Reason string
}

// LogoResolver confirms a company logo is retrievable for a domain.
type LogoResolver interface {
	Resolve(ctx context.Context, domain string) LogoResolution
}

type logoProber struct {
	client  *http.Client
	baseURL string
	logger  *slog.Logger
}

// NewLogoResolver creates a resolver that probes the configured logo service
// with HEAD requests bounded by the probe timeout.
func NewLogoResolver(cfg *Config, logger *slog.Logger) LogoResolver {
	return &logoProber{
		client:  &http.Client{Timeout: cfg.ProbeTimeoutDuration()},
		baseURL: strings.TrimSuffix(cfg.LogoServiceURL, "/"),
		logger:  logger.With("system", "logo"),
	}
}

// Resolve probes the deterministic logo URL for the domain. Exactly HTTP 200
// confirms existence; any other status, timeout, or network error yields a
// not-found resolution. No retries, no body download.
func (p *logoProber) Resolve(ctx context.Context, domain string) LogoResolution {
	url := fmt.Sprintf("%s/domain:%s", p.baseURL, domain)

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return p.notFound(url, fmt.Sprintf("build probe request: %v", err))
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return p.notFound(url, fmt.Sprintf("probe failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return p.notFound(url, fmt.Sprintf("probe returned status %d", resp.StatusCode))
	}

	p.logger.Debug("logo confirmed", "domain", domain, "url", url)
	return LogoResolution{URL: url, Found: true}
}

func (p *logoProber) notFound(url, reason string) LogoResolution {
	p.logger.Info("logo not found", "url", url, "reason", reason)
	return LogoResolution{URL: url, Reason: reason}
}
